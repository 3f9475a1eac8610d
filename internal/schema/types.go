package schema

import (
	"errors"
	"fmt"
	"slices"

	"github.com/tordrt/coddschema/internal/normalize"
)

// ErrNoColumns is returned when a table without columns is turned into a
// relation
var ErrNoColumns = errors.New("table has no columns")

// Schema represents the tables imported from one database
type Schema struct {
	Tables []Table
}

// Table represents a database table and the keys declared on it
type Table struct {
	Name       string
	Columns    []Column
	PrimaryKey []string
	UniqueKeys [][]string
}

// Column represents a table column
type Column struct {
	Name     string
	Type     string
	Nullable bool
}

// ColumnNames returns the column names in table order
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Keys returns the primary key followed by the unique keys, skipping empty and
// repeated ones
func (t Table) Keys() [][]string {
	var keys [][]string
	add := func(key []string) {
		if len(key) == 0 {
			return
		}
		for _, k := range keys {
			if sameColumns(k, key) {
				return
			}
		}
		keys = append(keys, key)
	}
	add(t.PrimaryKey)
	for _, key := range t.UniqueKeys {
		add(key)
	}
	return keys
}

// Relation converts the table to a relation: every column becomes an
// attribute and every declared key K yields K -> (all columns)
func (t Table) Relation() (*normalize.Relation, error) {
	if len(t.Columns) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoColumns, t.Name)
	}
	attributes := normalize.DescriptorOf(t.ColumnNames()...)

	var fds []normalize.FunctionalDependency
	for _, key := range t.Keys() {
		determinant := normalize.DescriptorOf(key...)
		rest := attributes.Difference(determinant)
		if rest.IsEmpty() {
			continue
		}
		fds = append(fds, normalize.NewDependency(determinant, rest))
	}

	r, err := normalize.NewRelation(t.Name, attributes, normalize.NewDependencySet(fds...))
	if err != nil {
		return nil, fmt.Errorf("failed to build relation for table %s: %w", t.Name, err)
	}
	return r, nil
}

// Relations converts every table of the schema, in order
func (s Schema) Relations() ([]*normalize.Relation, error) {
	relations := make([]*normalize.Relation, 0, len(s.Tables))
	for _, table := range s.Tables {
		r, err := table.Relation()
		if err != nil {
			return nil, err
		}
		relations = append(relations, r)
	}
	return relations, nil
}

func sameColumns(a, b []string) bool {
	a, b = slices.Clone(a), slices.Clone(b)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}

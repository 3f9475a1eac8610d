// Package db reads table definitions (columns, primary key and unique keys)
// from PostgreSQL, MySQL and SQLite so they can be analyzed as relations.
package db

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/tordrt/coddschema/internal/logger"
	"github.com/tordrt/coddschema/internal/schema"
)

// ErrTableNotFound is returned when a requested table does not exist
var ErrTableNotFound = errors.New("table not found")

// Extractor reads table definitions from a database.
// If tables is empty, every base table is extracted
type Extractor interface {
	ExtractTables(ctx context.Context, tables []string) ([]schema.Table, error)
}

// dialect is what each database contributes to extractTables
type dialect interface {
	name() string
	listTables(ctx context.Context) ([]string, error)
	columns(ctx context.Context, table string) ([]schema.Column, error)
	primaryKey(ctx context.Context, table string) ([]string, error)
	uniqueKeys(ctx context.Context, table string) ([][]string, error)
}

// extractTables runs the shared extraction loop over a dialect
func extractTables(ctx context.Context, d dialect, requested []string) ([]schema.Table, error) {
	log := logger.FromContext(ctx).With("database", d.name())

	names := requested
	if len(names) == 0 {
		var err error
		names, err = d.listTables(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get table names: %w", err)
		}
	}
	log.Debug("extracting tables", "count", len(names))

	tables := make([]schema.Table, 0, len(names))
	for _, name := range names {
		table, err := extractTable(ctx, d, name)
		if err != nil {
			return nil, fmt.Errorf("failed to extract table %s: %w", name, err)
		}
		log.Debug("extracted table",
			"table", name,
			"columns", len(table.Columns),
			"unique_keys", len(table.UniqueKeys),
		)
		tables = append(tables, table)
	}
	return tables, nil
}

func extractTable(ctx context.Context, d dialect, name string) (schema.Table, error) {
	table := schema.Table{Name: name}

	columns, err := d.columns(ctx, name)
	if err != nil {
		return table, fmt.Errorf("failed to extract columns: %w", err)
	}
	if len(columns) == 0 {
		return table, ErrTableNotFound
	}
	table.Columns = columns

	table.PrimaryKey, err = d.primaryKey(ctx, name)
	if err != nil {
		return table, fmt.Errorf("failed to extract primary key: %w", err)
	}

	uniqueKeys, err := d.uniqueKeys(ctx, name)
	if err != nil {
		return table, fmt.Errorf("failed to extract unique keys: %w", err)
	}
	// a unique constraint backing the primary key is not a second key
	table.UniqueKeys = slices.DeleteFunc(uniqueKeys, func(key []string) bool {
		return len(key) == 0 || sameKey(key, table.PrimaryKey)
	})
	return table, nil
}

func sameKey(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for _, column := range a {
		if !slices.Contains(b, column) {
			return false
		}
	}
	return true
}

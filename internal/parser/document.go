package parser

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/tordrt/coddschema/internal/normalize"
)

// Document is the YAML/JSON schema file format:
//
//	relations:
//	  - name: Orders
//	    attributes: [OrderID, CustomerID, CustomerName]
//	    dependencies:
//	      - OrderID -> CustomerID
//	      - CustomerID -> CustomerName
type Document struct {
	Relations []RelationSpec `yaml:"relations" json:"relations"`
}

// RelationSpec describes one relation of a Document. Attributes and
// dependencies may be given either as a list or as a single string.
type RelationSpec struct {
	Name         string     `yaml:"name"         json:"name"`
	Attributes   StringList `yaml:"attributes"   json:"attributes"`
	Dependencies StringList `yaml:"dependencies" json:"dependencies"`
}

// StringList decodes from a sequence of strings or from a single string.
type StringList []string

// UnmarshalYAML accepts both "A, B" and ["A", "B"].
func (l *StringList) UnmarshalYAML(unmarshal func(any) error) error {
	var list []string
	if err := unmarshal(&list); err == nil {
		*l = list
		return nil
	}
	var single string
	if err := unmarshal(&single); err != nil {
		return fmt.Errorf("expected a string or a list of strings: %w", err)
	}
	*l = StringList{single}
	return nil
}

// Relation builds the described relation.
func (s RelationSpec) Relation() (*normalize.Relation, error) {
	attributes, err := ParseDescriptor(strings.Join(s.Attributes, ","))
	if err != nil {
		return nil, err
	}
	fds, err := ParseDependencies(strings.Join(s.Dependencies, ";"))
	if err != nil {
		return nil, err
	}
	return normalize.NewRelation(s.Name, attributes, fds)
}

// ParseDocument decodes a YAML or JSON document and builds its relations in
// document order. A nameless relation is called "R" when it is the only one.
func ParseDocument(data []byte) ([]*normalize.Relation, error) {
	var doc Document
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	if len(doc.Relations) == 0 {
		return nil, fmt.Errorf("%w: document has no relations", ErrSyntax)
	}

	seen := make(map[string]int, len(doc.Relations))
	relations := make([]*normalize.Relation, 0, len(doc.Relations))
	for i, spec := range doc.Relations {
		if spec.Name == "" {
			if len(doc.Relations) > 1 {
				return nil, fmt.Errorf("%w: relation %d has no name", ErrSyntax, i)
			}
			spec.Name = "R"
		}
		if prev, dup := seen[spec.Name]; dup {
			return nil, fmt.Errorf("%w: relation %d (%s) has the same name as relation %d", ErrSyntax, i, spec.Name, prev)
		}
		seen[spec.Name] = i

		r, err := spec.Relation()
		if err != nil {
			return nil, fmt.Errorf("relation %d (%s): %w", i, spec.Name, err)
		}
		relations = append(relations, r)
	}
	return relations, nil
}

// LoadDocument reads and parses the document at path.
func LoadDocument(path string) ([]*normalize.Relation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	relations, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return relations, nil
}

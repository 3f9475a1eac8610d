// Package parser reads relations written as attribute lists and functional
// dependencies, either in the line format "A, B -> C" or as YAML/JSON
// documents.
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tordrt/coddschema/internal/normalize"
)

// ErrSyntax is returned for input that is not a valid attribute list or
// dependency.
var ErrSyntax = errors.New("syntax error")

var attributePattern = regexp.MustCompile(`^[A-Za-z0-9_@$%]+$`)

// ParseDescriptor parses a comma separated attribute list such as "A, B, C".
// Whitespace is ignored.
func ParseDescriptor(s string) (normalize.Descriptor, error) {
	tokens := strings.Split(stripSpace(s), ",")
	names := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if !attributePattern.MatchString(token) {
			return normalize.Descriptor{}, fmt.Errorf("%w: invalid attribute %q in %q", ErrSyntax, token, s)
		}
		names = append(names, token)
	}
	return normalize.DescriptorOf(names...), nil
}

// ParseDependency parses "X -> Y" where both sides are attribute lists.
func ParseDependency(s string) (normalize.FunctionalDependency, error) {
	sides := strings.Split(s, "->")
	if len(sides) != 2 {
		return normalize.FunctionalDependency{}, fmt.Errorf("%w: expected exactly one \"->\" in %q", ErrSyntax, s)
	}
	determinant, err := ParseDescriptor(sides[0])
	if err != nil {
		return normalize.FunctionalDependency{}, err
	}
	determinate, err := ParseDescriptor(sides[1])
	if err != nil {
		return normalize.FunctionalDependency{}, err
	}
	return normalize.NewDependency(determinant, determinate), nil
}

// ParseDependencies parses dependencies separated by ";". Blank input yields
// an empty set.
func ParseDependencies(s string) (normalize.DependencySet, error) {
	if stripSpace(s) == "" {
		return normalize.NewDependencySet(), nil
	}
	var fds []normalize.FunctionalDependency
	for _, part := range strings.Split(s, ";") {
		fd, err := ParseDependency(part)
		if err != nil {
			return normalize.DependencySet{}, err
		}
		fds = append(fds, fd)
	}
	return normalize.NewDependencySet(fds...), nil
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

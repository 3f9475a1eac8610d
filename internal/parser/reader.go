package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/tordrt/coddschema/internal/normalize"
)

// ReadRelation reads a relation in the line format:
//
//	# comment
//	A, B, C, D
//	A, B -> C
//	C -> D
//
// The first non-empty line lists the attributes. Each following line holds
// one or more dependencies separated by ";". A blank line or the end of input
// ends the relation. Lines starting with "#" are skipped.
func ReadRelation(name string, r io.Reader) (*normalize.Relation, error) {
	scanner := bufio.NewScanner(r)

	var (
		attributes normalize.Descriptor
		haveAttrs  bool
		fds        = normalize.NewDependencySet()
		lineNo     int
	)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		if line == "" {
			if haveAttrs {
				break
			}
			continue
		}

		if !haveAttrs {
			d, err := ParseDescriptor(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			attributes, haveAttrs = d, true
			continue
		}

		parsed, err := ParseDependencies(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		fds = fds.Union(parsed)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read relation %s: %w", name, err)
	}
	if !haveAttrs {
		return nil, fmt.Errorf("%w: no attribute line for relation %s", ErrSyntax, name)
	}

	return normalize.NewRelation(name, attributes, fds)
}

// Package formatter renders decomposition trees as text, markdown, styled
// terminal output, or one file per relation.
package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tordrt/coddschema/internal/normalize"
)

const (
	formatText     = "text"
	formatMarkdown = "markdown"
	formatStyled   = "styled"
)

// Formats lists the accepted values of New
var Formats = []string{formatText, formatMarkdown, formatStyled}

// Formatter writes analyzed relations
type Formatter interface {
	Format(trees []*normalize.Tree) error
}

// New returns the single-stream formatter for format
func New(format string, w io.Writer) (Formatter, error) {
	switch format {
	case formatText:
		return NewTextFormatter(w), nil
	case formatMarkdown:
		return NewMarkdownFormatter(w), nil
	case formatStyled:
		return NewStyledFormatter(w), nil
	default:
		return nil, fmt.Errorf("invalid format: %s (must be one of %s)", format, strings.Join(Formats, ", "))
	}
}

// properties spells out both checks, e.g. "not legal, lossless"
func properties(d *normalize.Decomposition) string {
	legal, lossless := "legal", "lossless"
	if !d.Legal() {
		legal = "not legal"
	}
	if !d.Lossless() {
		lossless = "lossy"
	}
	return legal + ", " + lossless
}

func childNames(d *normalize.Decomposition) string {
	children := d.Children()
	names := make([]string, len(children))
	for i, c := range children {
		names[i] = c.Name()
	}
	return strings.Join(names, ", ")
}

// describeNode is the one-line trace of a tree node:
//
//	R [2NF] -> R.1, R.2 (legal, lossless)
//	R [3NF] stopped before R.1, R.2 (not legal, lossless)
//	R.1 [BCNF]
func describeNode(n *normalize.Node) string {
	r := n.Relation()
	line := fmt.Sprintf("%s [%s]", r.Name(), r.NormalForm())
	d := n.Decomposition()
	switch {
	case d == nil:
		return line
	case n.Stalled():
		return fmt.Sprintf("%s stopped before %s (%s)", line, childNames(d), properties(d))
	default:
		return fmt.Sprintf("%s -> %s (%s)", line, childNames(d), properties(d))
	}
}

func targetStatus(t *normalize.Tree) string {
	if t.Reached() {
		return t.Target().String() + " reached"
	}
	return t.Target().String() + " not reached"
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tordrt/coddschema/internal/normalize"
)

// TextFormatter formats analyses as compact text
type TextFormatter struct {
	writer io.Writer
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(w io.Writer) *TextFormatter {
	return &TextFormatter{writer: w}
}

// Format writes every tree, separated by a blank line
func (f *TextFormatter) Format(trees []*normalize.Tree) error {
	for i, tree := range trees {
		if i > 0 {
			_, _ = fmt.Fprintln(f.writer)
		}
		f.formatTree(tree)
	}
	return nil
}

func (f *TextFormatter) formatTree(tree *normalize.Tree) {
	r := tree.Root().Relation()
	_, _ = fmt.Fprintf(f.writer, "RELATION %s (%s)\n", r.Name(), r.NormalForm())
	_, _ = fmt.Fprintf(f.writer, "  ATTRIBUTES: %s\n", r.Attributes())
	_, _ = fmt.Fprintf(f.writer, "  DEPENDENCIES: %s\n", orNone(r.Dependencies().String()))
	_, _ = fmt.Fprintf(f.writer, "  MINIMAL COVER: %s\n", orNone(r.MinimalCover().String()))
	_, _ = fmt.Fprintf(f.writer, "  CANDIDATE KEYS: %s\n", r.CandidateKeys())
	_, _ = fmt.Fprintf(f.writer, "  TARGET: %s\n", targetStatus(tree))

	if tree.Root().Decomposition() != nil {
		_, _ = fmt.Fprintln(f.writer)
		_, _ = fmt.Fprintln(f.writer, "  DECOMPOSITION:")
		tree.Walk(func(n *normalize.Node, depth int) bool {
			_, _ = fmt.Fprintf(f.writer, "    %s%s\n", strings.Repeat("  ", depth), describeNode(n))
			return true
		})
	}

	_, _ = fmt.Fprintln(f.writer)
	_, _ = fmt.Fprintln(f.writer, "  RESULT:")
	for _, leaf := range tree.Leaves() {
		_, _ = fmt.Fprintf(f.writer, "    %s %s, keys %s\n", leaf, leaf.NormalForm(), leaf.CandidateKeys())
	}
}

package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tordrt/coddschema/internal/normalize"
)

// MarkdownFormatter formats analyses as markdown
type MarkdownFormatter struct {
	writer io.Writer
}

// NewMarkdownFormatter creates a new markdown formatter
func NewMarkdownFormatter(w io.Writer) *MarkdownFormatter {
	return &MarkdownFormatter{writer: w}
}

// Format writes a document with one section per tree
func (f *MarkdownFormatter) Format(trees []*normalize.Tree) error {
	_, _ = fmt.Fprintln(f.writer, "# Normalization Report")
	_, _ = fmt.Fprintln(f.writer)

	for _, tree := range trees {
		f.formatTree(tree)
	}
	return nil
}

// FormatTree writes a single section (used by the multi-file formatter)
func (f *MarkdownFormatter) FormatTree(tree *normalize.Tree) {
	f.formatTree(tree)
}

func (f *MarkdownFormatter) formatTree(tree *normalize.Tree) {
	r := tree.Root().Relation()
	_, _ = fmt.Fprintf(f.writer, "## %s\n\n", r.Name())

	_, _ = fmt.Fprintf(f.writer, "- **Normal form:** %s\n", r.NormalForm())
	_, _ = fmt.Fprintf(f.writer, "- **Attributes:** %s\n", r.Attributes())
	_, _ = fmt.Fprintf(f.writer, "- **Dependencies:** %s\n", code(r.Dependencies().String()))
	_, _ = fmt.Fprintf(f.writer, "- **Minimal cover:** %s\n", code(r.MinimalCover().String()))
	_, _ = fmt.Fprintf(f.writer, "- **Candidate keys:** %s\n", r.CandidateKeys())
	_, _ = fmt.Fprintf(f.writer, "- **Target:** %s\n", targetStatus(tree))
	_, _ = fmt.Fprintln(f.writer)

	if tree.Root().Decomposition() != nil {
		_, _ = fmt.Fprintln(f.writer, "### Decomposition")
		_, _ = fmt.Fprintln(f.writer)
		tree.Walk(func(n *normalize.Node, depth int) bool {
			_, _ = fmt.Fprintf(f.writer, "%s- %s\n", strings.Repeat("  ", depth), describeNode(n))
			return true
		})
		_, _ = fmt.Fprintln(f.writer)
	}

	_, _ = fmt.Fprintln(f.writer, "### Result")
	_, _ = fmt.Fprintln(f.writer)
	_, _ = fmt.Fprintln(f.writer, "| Relation | Attributes | Minimal cover | Candidate keys | Normal form |")
	_, _ = fmt.Fprintln(f.writer, "|---|---|---|---|---|")
	for _, leaf := range tree.Leaves() {
		_, _ = fmt.Fprintf(f.writer, "| %s | %s | %s | %s | %s |\n",
			leaf.Name(),
			leaf.Attributes(),
			code(leaf.MinimalCover().String()),
			leaf.CandidateKeys(),
			leaf.NormalForm())
	}
	_, _ = fmt.Fprintln(f.writer)
}

func code(s string) string {
	if s == "" {
		return "(none)"
	}
	return "`" + s + "`"
}

package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/tordrt/coddschema/internal/normalize"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func normalFormStyle(nf normalize.NormalForm) lipgloss.Style {
	switch nf {
	case normalize.BCNF:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	case normalize.NF3:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	case normalize.NF2:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	}
}

// StyledFormatter renders analyses for a terminal with lipgloss
type StyledFormatter struct {
	writer io.Writer
}

// NewStyledFormatter creates a new styled formatter
func NewStyledFormatter(w io.Writer) *StyledFormatter {
	return &StyledFormatter{writer: w}
}

// Format writes every tree as a styled block
func (f *StyledFormatter) Format(trees []*normalize.Tree) error {
	for i, t := range trees {
		if i > 0 {
			_, _ = fmt.Fprintln(f.writer)
		}
		_, _ = fmt.Fprintln(f.writer, f.render(t))
	}
	return nil
}

func (f *StyledFormatter) render(t *normalize.Tree) string {
	r := t.Root().Relation()

	var b strings.Builder
	b.WriteString(titleStyle.Render(r.Name()))
	b.WriteString(" ")
	b.WriteString(normalFormStyle(r.NormalForm()).Render(r.NormalForm().String()))
	b.WriteString("\n")

	fields := []struct{ label, value string }{
		{"attributes", r.Attributes().String()},
		{"dependencies", orNone(r.Dependencies().String())},
		{"minimal cover", orNone(r.MinimalCover().String())},
		{"keys", r.CandidateKeys().String()},
		{"target", targetStatus(t)},
	}
	for _, field := range fields {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-14s", field.label)))
		b.WriteString(field.value)
		b.WriteString("\n")
	}

	if t.Root().Decomposition() != nil {
		b.WriteString("\n")
		b.WriteString(styledTree(t.Root()).Enumerator(tree.RoundedEnumerator).String())
		b.WriteString("\n")
	}

	result := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(labelStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("relation", "attributes", "minimal cover", "keys", "form")
	for _, leaf := range t.Leaves() {
		result.Row(
			leaf.Name(),
			leaf.Attributes().String(),
			orNone(leaf.MinimalCover().String()),
			leaf.CandidateKeys().String(),
			leaf.NormalForm().String(),
		)
	}
	b.WriteString("\n")
	b.WriteString(result.String())
	return b.String()
}

func styledTree(n *normalize.Node) *tree.Tree {
	t := tree.Root(styledNode(n))
	for _, child := range n.Children() {
		if child.IsLeaf() {
			t.Child(styledNode(child))
			continue
		}
		t.Child(styledTree(child))
	}
	return t
}

func styledNode(n *normalize.Node) string {
	return normalFormStyle(n.Relation().NormalForm()).Render(describeNode(n))
}

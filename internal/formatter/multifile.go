package formatter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tordrt/coddschema/internal/normalize"
)

// MultiFileFormatter writes an overview plus one file per analyzed relation
type MultiFileFormatter struct {
	OutputDir    string
	OutputFormat string // "text" or "markdown"
}

// NewMultiFileFormatter creates a new multi-file formatter
func NewMultiFileFormatter(outputDir, format string) *MultiFileFormatter {
	return &MultiFileFormatter{
		OutputDir:    outputDir,
		OutputFormat: format,
	}
}

// Format writes _overview plus <relation> files into OutputDir
func (f *MultiFileFormatter) Format(trees []*normalize.Tree) error {
	if f.OutputFormat != formatText && f.OutputFormat != formatMarkdown {
		return fmt.Errorf("invalid format for multi-file output: %s (must be text or markdown)", f.OutputFormat)
	}
	if err := checkFileNames(trees); err != nil {
		return err
	}
	if err := os.MkdirAll(f.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := f.writeFile("_overview", func(w io.Writer) { f.writeOverview(w, trees) }); err != nil {
		return fmt.Errorf("failed to write overview: %w", err)
	}

	for _, tree := range trees {
		name := tree.Root().Relation().Name()
		err := f.writeFile(FileName(name), func(w io.Writer) {
			if f.OutputFormat == formatMarkdown {
				NewMarkdownFormatter(w).FormatTree(tree)
				return
			}
			NewTextFormatter(w).formatTree(tree)
		})
		if err != nil {
			return fmt.Errorf("failed to write file for %s: %w", name, err)
		}
	}
	return nil
}

func (f *MultiFileFormatter) writeFile(base string, write func(io.Writer)) error {
	file, err := os.Create(filepath.Join(f.OutputDir, base+f.getFileExtension()))
	if err != nil {
		return err
	}
	write(file)
	return file.Close()
}

// writeOverview lists the relations alphabetically with their level and
// outcome
func (f *MultiFileFormatter) writeOverview(w io.Writer, trees []*normalize.Tree) {
	sorted := slices.Clone(trees)
	slices.SortFunc(sorted, func(a, b *normalize.Tree) int {
		return strings.Compare(a.Root().Relation().Name(), b.Root().Relation().Name())
	})

	ext := f.getFileExtension()
	if f.OutputFormat == formatMarkdown {
		_, _ = fmt.Fprintf(w, "# Normalization Overview\n\n")
		_, _ = fmt.Fprintf(w, "Each relation has a corresponding file: `<relation>%s`\n\n", ext)
		_, _ = fmt.Fprintf(w, "## Relations\n\n")
		for _, tree := range sorted {
			r := tree.Root().Relation()
			_, _ = fmt.Fprintf(w, "- **%s** (%s): %s, %d resulting relation(s)\n",
				r.Name(), r.NormalForm(), targetStatus(tree), len(tree.Leaves()))
		}
		return
	}

	_, _ = fmt.Fprintf(w, "NORMALIZATION OVERVIEW\n")
	_, _ = fmt.Fprintf(w, "Each relation has a file: <relation>%s\n\n", ext)
	for _, tree := range sorted {
		r := tree.Root().Relation()
		_, _ = fmt.Fprintf(w, "%s (%s): %s, %d resulting relation(s)\n",
			r.Name(), r.NormalForm(), targetStatus(tree), len(tree.Leaves()))
	}
}

// checkFileNames rejects relations whose names map to the same file, which
// would otherwise overwrite each other's report
func checkFileNames(trees []*normalize.Tree) error {
	owners := map[string]string{"_overview": "the overview"}
	for _, tree := range trees {
		name := tree.Root().Relation().Name()
		file := FileName(name)
		if owner, taken := owners[file]; taken {
			return fmt.Errorf("relation %s and %s would both be written to %s", name, owner, file)
		}
		owners[file] = name
	}
	return nil
}

var unsafeFileChars = strings.NewReplacer("/", "_", "\\", "_", ":", "_", " ", "_")

// FileName turns a relation name into a safe file base name
func FileName(relation string) string {
	return unsafeFileChars.Replace(relation)
}

func (f *MultiFileFormatter) getFileExtension() string {
	if f.OutputFormat == formatMarkdown {
		return ".md"
	}
	return ".txt"
}

package formatter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tordrt/coddschema/internal/normalize"
)

func fd(determinant, determinate string) normalize.FunctionalDependency {
	return normalize.NewDependency(normalize.DescriptorOf(determinant), normalize.DescriptorOf(determinate))
}

func buildTree(t *testing.T, name string, target normalize.NormalForm, opts normalize.TreeOptions, attrs []string, fds ...normalize.FunctionalDependency) *normalize.Tree {
	t.Helper()
	r, err := normalize.NewRelation(name, normalize.DescriptorOf(attrs...), normalize.NewDependencySet(fds...))
	require.NoError(t, err)
	tree, err := normalize.NewTree(r, target, opts)
	require.NoError(t, err)
	return tree
}

func chainTree(t *testing.T, opts normalize.TreeOptions) *normalize.Tree {
	return buildTree(t, "R", normalize.BCNF, opts, []string{"A", "B", "C", "D"}, fd("A", "B"), fd("B", "C"), fd("C", "D"))
}

func keyTree(t *testing.T) *normalize.Tree {
	return buildTree(t, "Users", normalize.BCNF, normalize.TreeOptions{}, []string{"id", "email"}, fd("id", "email"))
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextFormatter(&buf).Format([]*normalize.Tree{chainTree(t, normalize.TreeOptions{})}))

	want := `RELATION R (2NF)
  ATTRIBUTES: A, B, C, D
  DEPENDENCIES: A -> B; B -> C; C -> D
  MINIMAL COVER: A -> B; B -> C; C -> D
  CANDIDATE KEYS: {A}
  TARGET: BCNF reached

  DECOMPOSITION:
    R [2NF] -> R.1, R.2 (not legal, lossless)
      R.1 [BCNF]
      R.2 [1NF] -> R.2.1, R.2.2 (legal, lossless)
        R.2.1 [BCNF]
        R.2.2 [BCNF]

  RESULT:
    R.1({B, C}, {B -> C}) BCNF, keys {B}
    R.2.1({A, B}, {A -> B}) BCNF, keys {A}
    R.2.2({A, D}, {}) BCNF, keys {A, D}
`
	assert.Equal(t, want, buf.String())
}

func TestTextFormatter_StalledAndAlreadyNormal(t *testing.T) {
	var buf bytes.Buffer
	trees := []*normalize.Tree{chainTree(t, normalize.TreeOptions{RequireLegal: true}), keyTree(t)}
	require.NoError(t, NewTextFormatter(&buf).Format(trees))

	output := buf.String()
	assert.Contains(t, output, "TARGET: BCNF not reached")
	assert.Contains(t, output, "R [2NF] stopped before R.1, R.2 (not legal, lossless)")
	assert.Contains(t, output, "RELATION Users (BCNF)")
	assert.Contains(t, output, "Users({email, id}, {id -> email}) BCNF, keys {id}")
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("DECOMPOSITION:")))
}

func TestMarkdownFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewMarkdownFormatter(&buf).Format([]*normalize.Tree{chainTree(t, normalize.TreeOptions{}), keyTree(t)}))

	output := buf.String()
	assert.Contains(t, output, "# Normalization Report\n")
	assert.Contains(t, output, "## R\n")
	assert.Contains(t, output, "- **Minimal cover:** `A -> B; B -> C; C -> D`\n")
	assert.Contains(t, output, "### Decomposition\n")
	assert.Contains(t, output, "  - R.2 [1NF] -> R.2.1, R.2.2 (legal, lossless)\n")
	assert.Contains(t, output, "| R.2.2 | A, D | (none) | {A, D} | BCNF |\n")
	assert.Contains(t, output, "## Users\n")
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("### Decomposition")))
}

func TestStyledFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewStyledFormatter(&buf).Format([]*normalize.Tree{chainTree(t, normalize.TreeOptions{})}))

	output := buf.String()
	for _, want := range []string{"R.1", "R.2.1", "R.2.2", "BCNF reached", "minimal cover", "(not legal, lossless)"} {
		assert.Contains(t, output, want)
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	for _, format := range Formats {
		f, err := New(format, &buf)
		require.NoError(t, err, format)
		assert.NotNil(t, f)
	}

	_, err := New("html", &buf)
	assert.ErrorContains(t, err, "invalid format: html")
}

func TestMultiFileFormatter(t *testing.T) {
	trees := []*normalize.Tree{keyTree(t), chainTree(t, normalize.TreeOptions{})}

	t.Run("markdown", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "report")
		require.NoError(t, NewMultiFileFormatter(dir, "markdown").Format(trees))

		overview, err := os.ReadFile(filepath.Join(dir, "_overview.md"))
		require.NoError(t, err)
		assert.Contains(t, string(overview), "- **R** (2NF): BCNF reached, 3 resulting relation(s)\n- **Users** (BCNF)")

		relation, err := os.ReadFile(filepath.Join(dir, "R.md"))
		require.NoError(t, err)
		assert.Contains(t, string(relation), "## R\n")
		assert.FileExists(t, filepath.Join(dir, "Users.md"))
	})

	t.Run("text", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, NewMultiFileFormatter(dir, "text").Format(trees))

		overview, err := os.ReadFile(filepath.Join(dir, "_overview.txt"))
		require.NoError(t, err)
		assert.Contains(t, string(overview), "NORMALIZATION OVERVIEW")

		relation, err := os.ReadFile(filepath.Join(dir, "Users.txt"))
		require.NoError(t, err)
		assert.Contains(t, string(relation), "RELATION Users (BCNF)")
	})

	t.Run("styled is rejected", func(t *testing.T) {
		err := NewMultiFileFormatter(t.TempDir(), "styled").Format(trees)
		assert.ErrorContains(t, err, "invalid format for multi-file output")
	})
}

func TestMultiFileFormatter_FileNameCollision(t *testing.T) {
	spaced := buildTree(t, "a b", normalize.BCNF, normalize.TreeOptions{}, []string{"A"})
	underscored := buildTree(t, "a_b", normalize.BCNF, normalize.TreeOptions{}, []string{"A"})
	dir := filepath.Join(t.TempDir(), "report")

	err := NewMultiFileFormatter(dir, "text").Format([]*normalize.Tree{spaced, underscored})
	assert.ErrorContains(t, err, "relation a_b and a b would both be written to a_b")
	assert.NoDirExists(t, dir)

	overview := buildTree(t, "_overview", normalize.BCNF, normalize.TreeOptions{}, []string{"A"})
	err = NewMultiFileFormatter(t.TempDir(), "markdown").Format([]*normalize.Tree{overview})
	assert.ErrorContains(t, err, "the overview")
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "public_orders", FileName("public/orders"))
	assert.Equal(t, "R.2.1", FileName("R.2.1"))
	assert.Equal(t, "my_table", FileName("my table"))
}

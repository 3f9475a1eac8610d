package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tordrt/coddschema/internal/normalize"
)

func TestParseDescriptor(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "A, B, C", want: "A, B, C"},
		{input: "C,A , B", want: "A, B, C"},
		{input: "order_id, $total, a@b, 50%", want: "$total, 50%, a@b, order_id"},
		{input: "A, A", want: "A"},
		{input: "", wantErr: true},
		{input: "A,,B", wantErr: true},
		{input: "A, B-C", wantErr: true},
		{input: "A;B", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDescriptor(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrSyntax)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseDependency(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "A -> B", want: "A -> B"},
		{input: "B,A->C , D", want: "A, B -> C, D"},
		{input: "A -> B -> C", wantErr: true},
		{input: "A B", wantErr: true},
		{input: "-> B", wantErr: true},
		{input: "A ->", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDependency(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrSyntax)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseDependencies(t *testing.T) {
	fds, err := ParseDependencies("B -> C ;A -> B")
	require.NoError(t, err)
	assert.Equal(t, "A -> B; B -> C", fds.String())

	fds, err = ParseDependencies("   ")
	require.NoError(t, err)
	assert.True(t, fds.IsEmpty())

	_, err = ParseDependencies("A -> B;")
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestReadRelation(t *testing.T) {
	input := `
# orders
OrderID, CustomerID, CustomerName

OrderID -> CustomerID
CustomerID -> CustomerName

ignored -> after blank line
`
	// the first blank line after the attributes ends the relation
	r, err := ReadRelation("Orders", strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "Orders", r.Name())
	assert.Equal(t, "CustomerID, CustomerName, OrderID", r.Attributes().String())
	assert.True(t, r.Dependencies().IsEmpty())

	input = `A, B, C
A -> B
# transitive
B -> C; A -> C
`
	r, err = ReadRelation("R", strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "A -> B; A -> C; B -> C", r.Dependencies().String())
	assert.Equal(t, "A -> B; B -> C", r.MinimalCover().String())
	assert.Equal(t, normalize.NF2, r.NormalForm())
}

func TestReadRelation_Errors(t *testing.T) {
	t.Run("no attributes", func(t *testing.T) {
		_, err := ReadRelation("R", strings.NewReader("# only a comment\n\n"))
		assert.ErrorIs(t, err, ErrSyntax)
	})

	t.Run("bad dependency reports the line", func(t *testing.T) {
		_, err := ReadRelation("R", strings.NewReader("A, B\nA => B\n"))
		assert.ErrorIs(t, err, ErrSyntax)
		assert.ErrorContains(t, err, "line 2")
	})

	t.Run("unknown attribute", func(t *testing.T) {
		_, err := ReadRelation("R", strings.NewReader("A, B\nA -> C\n"))
		assert.ErrorIs(t, err, normalize.ErrUnknownAttribute)
	})
}

func TestParseDocument(t *testing.T) {
	t.Run("yaml with lists and strings", func(t *testing.T) {
		data := []byte(`
relations:
  - name: Orders
    attributes: [OrderID, CustomerID, CustomerName]
    dependencies:
      - OrderID -> CustomerID
      - CustomerID -> CustomerName
  - name: Pairs
    attributes: "A, B"
    dependencies: "A -> B; B -> A"
  - name: Flat
    attributes: A, B
`)
		relations, err := ParseDocument(data)
		require.NoError(t, err)
		require.Len(t, relations, 3)

		assert.Equal(t, "Orders", relations[0].Name())
		assert.Equal(t, normalize.NF2, relations[0].NormalForm())
		assert.Equal(t, "Pairs", relations[1].Name())
		assert.Equal(t, "{A}, {B}", relations[1].CandidateKeys().String())
		assert.Equal(t, "Flat", relations[2].Name())
		assert.True(t, relations[2].Dependencies().IsEmpty())
	})

	t.Run("json", func(t *testing.T) {
		data := []byte(`{"relations": [{"attributes": ["A", "B", "C"], "dependencies": ["A, B -> C", "C -> A"]}]}`)
		relations, err := ParseDocument(data)
		require.NoError(t, err)
		require.Len(t, relations, 1)
		assert.Equal(t, "R", relations[0].Name())
		assert.Equal(t, normalize.NF3, relations[0].NormalForm())
	})
}

func TestParseDocument_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
		wantMsg string
	}{
		{
			name:    "no relations",
			data:    "relations: []",
			wantErr: ErrSyntax,
		},
		{
			name:    "unknown field",
			data:    "relations:\n  - name: R\n    attributes: A\n    keys: A\n",
			wantErr: ErrSyntax,
		},
		{
			name:    "missing name among several",
			data:    "relations:\n  - attributes: A\n  - name: S\n    attributes: B\n",
			wantErr: ErrSyntax,
			wantMsg: "relation 0 has no name",
		},
		{
			name:    "duplicate names",
			data:    "relations:\n  - name: R\n    attributes: A\n  - name: R\n    attributes: B\n",
			wantErr: ErrSyntax,
			wantMsg: "relation 1 (R)",
		},
		{
			name:    "unknown attribute",
			data:    "relations:\n  - name: S\n    attributes: A, B\n    dependencies: A -> Z\n",
			wantErr: normalize.ErrUnknownAttribute,
			wantMsg: "relation 0 (S)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tt.data))
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.ErrorContains(t, err, tt.wantMsg)
			}
		})
	}
}

func TestLoadDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte("relations:\n  - name: R\n    attributes: A, B\n    dependencies: A -> B\n"), 0o644))

	relations, err := LoadDocument(path)
	require.NoError(t, err)
	require.Len(t, relations, 1)
	assert.Equal(t, normalize.BCNF, relations[0].NormalForm())

	_, err = LoadDocument(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

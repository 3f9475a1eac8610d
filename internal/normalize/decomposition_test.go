package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDecomposition_TooFewChildren(t *testing.T) {
	parent := mustRelation(t, "R", "A, B", "A -> B")
	child := mustRelation(t, "R.1", "A, B", "A -> B")

	_, err := NewDecomposition(parent)
	assert.ErrorIs(t, err, ErrTooFewChildren)

	_, err = NewDecomposition(parent, child)
	assert.ErrorIs(t, err, ErrTooFewChildren)

	// the same child twice still counts once
	_, err = NewDecomposition(parent, child, child)
	assert.ErrorIs(t, err, ErrTooFewChildren)
}

func TestDecomposition_ChildrenOrderedByName(t *testing.T) {
	parent := mustRelation(t, "R", "A, B, C", "A -> B")
	second := mustRelation(t, "R.2", "B, C")
	first := mustRelation(t, "R.1", "A, B", "A -> B")

	d, err := NewDecomposition(parent, second, first)
	require.NoError(t, err)
	assert.Equal(t, []string{"R.1", "R.2"}, relationNames(d.Children()))
}

func TestDecomposition_Lossy(t *testing.T) {
	parent := mustRelation(t, "R", "A, B, C", "A -> B")
	left := mustRelation(t, "R.1", "A, B", "A -> B")
	right := mustRelation(t, "R.2", "B, C")

	d, err := NewDecomposition(parent, left, right)
	require.NoError(t, err)
	assert.True(t, d.Legal())
	assert.False(t, d.Lossless())
	assert.Equal(t, "R into R.1, R.2 (legal)", d.String())
}

func TestDecomposition_ThreeChildren(t *testing.T) {
	parent := mustRelation(t, "R", "A, B, C, D", "A -> B", "A -> C", "A -> D")
	d, err := NewDecomposition(parent,
		mustRelation(t, "R.1", "A, B", "A -> B"),
		mustRelation(t, "R.2", "A, C", "A -> C"),
		mustRelation(t, "R.3", "A, D", "A -> D"),
	)
	require.NoError(t, err)
	assert.True(t, d.Legal())
	assert.True(t, d.Lossless())
	assert.Equal(t, "R into R.1, R.2, R.3 (legal, lossless)", d.String())
}

func TestDecomposition_String(t *testing.T) {
	d, err := mustRelation(t, "R", "A, B, C", "A, B -> C", "C -> A").Decompose()
	require.NoError(t, err)
	assert.Equal(t, "R into R.1, R.2 (lossless)", d.String())
}

func TestChildNames(t *testing.T) {
	assert.Equal(t, []string{"R.1", "R.2"}, ChildNames("R", 2))
	assert.Equal(t, []string{"R.2.1", "R.2.2", "R.2.3"}, ChildNames("R.2", 3))
	assert.Empty(t, ChildNames("R", 0))
}

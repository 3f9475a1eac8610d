package normalize

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chain(t *testing.T) *Relation {
	return mustRelation(t, "R", "A, B, C, D", "A -> B", "B -> C", "C -> D")
}

func TestNewTree_Unconstrained(t *testing.T) {
	tree, err := NewTree(chain(t), BCNF, TreeOptions{})
	require.NoError(t, err)

	leaves := tree.Leaves()
	assert.Equal(t, []string{"R.1", "R.2.1", "R.2.2"}, relationNames(leaves))
	for _, leaf := range leaves {
		assert.Equal(t, BCNF, leaf.NormalForm(), leaf.String())
	}
	assert.True(t, tree.Reached())

	var visited []string
	tree.Walk(func(n *Node, depth int) bool {
		visited = append(visited, fmt.Sprintf("%d:%s:%s", depth, n.Relation().Name(), n.Relation().NormalForm()))
		return true
	})
	assert.Equal(t, []string{
		"0:R:2NF",
		"1:R.1:BCNF",
		"1:R.2:1NF",
		"2:R.2.1:BCNF",
		"2:R.2.2:BCNF",
	}, visited)
}

func TestNewTree_WalkSkipsChildren(t *testing.T) {
	tree, err := NewTree(chain(t), BCNF, TreeOptions{})
	require.NoError(t, err)

	var visited []string
	tree.Walk(func(n *Node, _ int) bool {
		visited = append(visited, n.Relation().Name())
		return n.Relation().Name() != "R.2"
	})
	assert.Equal(t, []string{"R", "R.1", "R.2"}, visited)
}

func TestNewTree_RequireLegal(t *testing.T) {
	tree, err := NewTree(chain(t), BCNF, TreeOptions{RequireLegal: true})
	require.NoError(t, err)

	root := tree.Root()
	assert.True(t, root.IsLeaf())
	assert.True(t, root.Stalled())
	require.NotNil(t, root.Decomposition())
	assert.False(t, root.Decomposition().Legal())
	assert.Equal(t, []string{"R"}, relationNames(tree.Leaves()))
	assert.False(t, tree.Reached())
}

func TestNewTree_RequireLossless(t *testing.T) {
	tree, err := NewTree(chain(t), BCNF, TreeOptions{RequireLossless: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"R.1", "R.2.1", "R.2.2"}, relationNames(tree.Leaves()))
	assert.True(t, tree.Reached())
}

func TestNewTree_LegalAndLosslessChain(t *testing.T) {
	r := mustRelation(t, "R", "A, B, C, D", "A -> C", "A, B -> D", "D -> C")
	tree, err := NewTree(r, BCNF, TreeOptions{RequireLegal: true, RequireLossless: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"R.1", "R.2.1", "R.2.2"}, relationNames(tree.Leaves()))
	assert.True(t, tree.Reached())
	tree.Walk(func(n *Node, _ int) bool {
		if d := n.Decomposition(); d != nil {
			assert.True(t, d.Legal(), d.String())
			assert.True(t, d.Lossless(), d.String())
		}
		return true
	})
}

func TestNewTree_TargetAlreadyMet(t *testing.T) {
	r := mustRelation(t, "R", "A, B, C", "A -> B", "B -> C")
	tree, err := NewTree(r, NF2, TreeOptions{})
	require.NoError(t, err)

	assert.True(t, tree.Root().IsLeaf())
	assert.False(t, tree.Root().Stalled())
	assert.Nil(t, tree.Root().Decomposition())
	assert.Equal(t, NF2, tree.Target())
	assert.True(t, tree.Reached())
}

func TestNewTree_InvalidTarget(t *testing.T) {
	_, err := NewTree(chain(t), NormalForm(9), TreeOptions{})
	assert.Error(t, err)
}

func TestNewTree_LeavesReachBCNF(t *testing.T) {
	relations := []*Relation{
		mustRelation(t, "partial", "A, B, C, D", "A, B -> C", "A -> D"),
		mustRelation(t, "overlap", "A, B, C", "A, B -> C", "C -> A"),
		mustRelation(t, "wide", "A, B, C, D, E, F", "A -> B", "C -> D", "A, C -> E", "E -> F"),
		mustRelation(t, "cyclic", "A, B, C, D, E", "A -> B", "B, C -> D", "D -> E", "E -> C"),
		mustRelation(t, "flat", "A, B, C"),
	}

	for _, r := range relations {
		t.Run(r.Name(), func(t *testing.T) {
			tree, err := NewTree(r, BCNF, TreeOptions{})
			require.NoError(t, err)
			for _, leaf := range tree.Leaves() {
				assert.Equal(t, BCNF, leaf.NormalForm(), leaf.String())
			}
			assert.True(t, tree.Reached())
		})
	}
}

package normalize

import (
	"fmt"

	"github.com/tordrt/coddschema/internal/orderedset"
)

// TreeOptions constrains the decompositions a Tree may apply.
type TreeOptions struct {
	// RequireLegal stops at relations whose split would lose a dependency.
	RequireLegal bool
	// RequireLossless stops at relations whose split would not join back.
	RequireLossless bool
}

// Node is one relation in a decomposition tree. It owns its children.
type Node struct {
	relation      *Relation
	decomposition *Decomposition
	children      []*Node
}

// Relation returns the relation of the node.
func (n *Node) Relation() *Relation {
	return n.relation
}

// Decomposition returns the split attempted on the node, or nil if the
// relation already met the target. A non-nil decomposition on a leaf is one
// that was rejected by the tree options.
func (n *Node) Decomposition() *Decomposition {
	return n.decomposition
}

// Children returns the child nodes ordered by relation name.
func (n *Node) Children() []*Node {
	return n.children
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// Stalled reports whether the node stayed below the target because its
// decomposition broke a required property.
func (n *Node) Stalled() bool {
	return n.decomposition != nil && len(n.children) == 0
}

// Walk visits the subtree rooted at n in pre-order. Returning false from fn
// skips the children of that node.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, child := range n.children {
		child.walk(fn, depth+1)
	}
}

// Tree is the recursive decomposition of a relation towards a target normal
// form.
type Tree struct {
	root    *Node
	target  NormalForm
	options TreeOptions
}

// NewTree decomposes root until every leaf meets target, or until a split
// would break a property required by opts. Each relation is split with the
// rule of its own normal form, not the target's.
func NewTree(root *Relation, target NormalForm, opts TreeOptions) (*Tree, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("invalid target normal form %d", int(target))
	}
	node, err := buildNode(root, target, opts)
	if err != nil {
		return nil, err
	}
	return &Tree{root: node, target: target, options: opts}, nil
}

func buildNode(r *Relation, target NormalForm, opts TreeOptions) (*Node, error) {
	node := &Node{relation: r}
	if r.NormalForm().Contains(target) {
		return node, nil
	}

	d, err := r.Decompose()
	if err != nil {
		return nil, fmt.Errorf("failed to decompose %s: %w", r.Name(), err)
	}
	if d == nil {
		return node, nil
	}
	node.decomposition = d

	if (opts.RequireLegal && !d.Legal()) || (opts.RequireLossless && !d.Lossless()) {
		return node, nil
	}
	for _, child := range d.Children() {
		childNode, err := buildNode(child, target, opts)
		if err != nil {
			return nil, err
		}
		node.children = append(node.children, childNode)
	}
	return node, nil
}

// Root returns the node of the initial relation.
func (t *Tree) Root() *Node {
	return t.root
}

// Target returns the normal form the tree aimed for.
func (t *Tree) Target() NormalForm {
	return t.target
}

// Options returns the constraints the tree was built with.
func (t *Tree) Options() TreeOptions {
	return t.options
}

// Walk visits every node in pre-order.
func (t *Tree) Walk(fn func(node *Node, depth int) bool) {
	t.root.Walk(fn)
}

// Leaves returns the relations of the leaf nodes, deduplicated and ordered by
// name.
func (t *Tree) Leaves() []*Relation {
	leaves := orderedset.New(compareRelations)
	t.root.Walk(func(n *Node, _ int) bool {
		if n.IsLeaf() {
			leaves.Insert(n.relation)
		}
		return true
	})
	return leaves.Items()
}

// Reached reports whether every leaf meets the target normal form.
func (t *Tree) Reached() bool {
	for _, leaf := range t.Leaves() {
		if !leaf.NormalForm().Contains(t.target) {
			return false
		}
	}
	return true
}

package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tordrt/coddschema/internal/orderedset"
)

// Decomposition is the result of splitting a parent relation into two or more
// child relations.
type Decomposition struct {
	parent   *Relation
	children orderedset.Set[*Relation]
}

func compareRelations(a, b *Relation) int {
	return strings.Compare(a.name, b.name)
}

// NewDecomposition groups children under parent. Children are ordered by name
// and must number at least two.
func NewDecomposition(parent *Relation, children ...*Relation) (*Decomposition, error) {
	set := orderedset.New(compareRelations, children...)
	if set.Len() < 2 {
		return nil, fmt.Errorf("%w: %s has %d", ErrTooFewChildren, parent.Name(), set.Len())
	}
	return &Decomposition{parent: parent, children: set}, nil
}

// ChildNames returns the names given to the n children of a relation called
// parent: "parent.1", "parent.2", and so on.
func ChildNames(parent string, n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = parent + "." + strconv.Itoa(i+1)
	}
	return names
}

func newBinaryDecomposition(parent *Relation, attrsA Descriptor, fdsA DependencySet, attrsB Descriptor, fdsB DependencySet) (*Decomposition, error) {
	names := ChildNames(parent.name, 2)
	a, err := NewRelation(names[0], attrsA, fdsA)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", names[0], err)
	}
	b, err := NewRelation(names[1], attrsB, fdsB)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", names[1], err)
	}
	return NewDecomposition(parent, a, b)
}

// Parent returns the decomposed relation.
func (d *Decomposition) Parent() *Relation {
	return d.parent
}

// Children returns the child relations ordered by name.
func (d *Decomposition) Children() []*Relation {
	return d.children.Items()
}

// Legal reports whether no dependency is lost: the union of the children's
// minimal covers must be equivalent to the parent's minimal cover.
func (d *Decomposition) Legal() bool {
	union := NewDependencySet()
	for child := range d.children.All() {
		union = union.Union(child.MinimalCover())
	}
	return union.Equivalent(d.parent.MinimalCover())
}

// Lossless reports whether the natural join of the children rebuilds the
// parent: the attributes shared by every child must functionally determine
// all the attributes of at least one child under the parent's dependencies.
func (d *Decomposition) Lossless() bool {
	children := d.children.Items()
	shared := children[0].Attributes()
	for _, child := range children[1:] {
		shared = shared.Intersection(child.Attributes())
	}

	closure := d.parent.MinimalCover().Closure(shared)
	for _, child := range children {
		if closure.ContainsAll(child.Attributes()) {
			return true
		}
	}
	return false
}

// String summarizes the decomposition, e.g.
// "R into R.1, R.2 (legal, lossless)".
func (d *Decomposition) String() string {
	names := d.children.Join(", ", (*Relation).Name)

	var flags []string
	if d.Legal() {
		flags = append(flags, "legal")
	}
	if d.Lossless() {
		flags = append(flags, "lossless")
	}
	if len(flags) == 0 {
		return fmt.Sprintf("%s into %s", d.parent.Name(), names)
	}
	return fmt.Sprintf("%s into %s (%s)", d.parent.Name(), names, strings.Join(flags, ", "))
}

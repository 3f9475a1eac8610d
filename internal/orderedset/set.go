// Package orderedset provides a deterministic, deduplicated and totally ordered
// collection with set algebra, plus combinatorial enumerators over it.
//
// Iteration order is always the order defined by the set's comparison
// function, so every "first element" or "first subset" query is reproducible.
package orderedset

import (
	"cmp"
	"iter"
	"slices"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// Set is an ordered set backed by a gods red-black tree set. The elements
// are also kept as a sorted slice for positional access.
//
// Mutating methods swap in a new tree, so copies of a Set never see each
// other's changes. The zero value is empty and has no order; set algebra
// borrows the order of the other operand.
type Set[T any] struct {
	tree  *treeset.Set
	items []T
	order *ordering[T]
}

// ordering pairs a typed comparison with the untyped comparator the tree
// uses. Sets derived from one another share it.
type ordering[T any] struct {
	compare    func(a, b T) int
	comparator utils.Comparator
}

func newOrdering[T any](compare func(a, b T) int) *ordering[T] {
	return &ordering[T]{
		compare: compare,
		comparator: func(a, b any) int {
			return compare(a.(T), b.(T))
		},
	}
}

// New creates a set ordered by compare containing items.
func New[T any](compare func(a, b T) int, items ...T) Set[T] {
	order := newOrdering(compare)
	return fromTree(treeset.NewWith(order.comparator, values(items)...), order)
}

// NewOrdered creates a set of naturally ordered elements.
func NewOrdered[T cmp.Ordered](items ...T) Set[T] {
	return New(cmp.Compare[T], items...)
}

func fromTree[T any](tree *treeset.Set, order *ordering[T]) Set[T] {
	var items []T
	if tree.Size() > 0 {
		items = make([]T, 0, tree.Size())
		for it := tree.Iterator(); it.Next(); {
			items = append(items, it.Value().(T))
		}
	}
	return Set[T]{tree: tree, items: items, order: order}
}

// sorted builds a set from items that are already ascending and distinct.
func sorted[T any](items []T, order *ordering[T]) Set[T] {
	return Set[T]{
		tree:  treeset.NewWith(order.comparator, values(items)...),
		items: items,
		order: order,
	}
}

func values[T any](items []T) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

// Compare returns the comparison function of the set.
func (s Set[T]) Compare() func(a, b T) int {
	if s.order == nil {
		return nil
	}
	return s.order.compare
}

// Len returns the number of elements.
func (s Set[T]) Len() int {
	return len(s.items)
}

// IsEmpty reports whether the set has no elements.
func (s Set[T]) IsEmpty() bool {
	return len(s.items) == 0
}

// At returns the i-th element in ascending order.
func (s Set[T]) At(i int) T {
	return s.items[i]
}

// First returns the smallest element.
func (s Set[T]) First() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	return s.items[0], true
}

// Items returns a copy of the elements in ascending order.
func (s Set[T]) Items() []T {
	return slices.Clone(s.items)
}

// All iterates the elements in ascending order.
func (s Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range s.items {
			if !yield(item) {
				return
			}
		}
	}
}

// Clone returns an independent copy of the set.
func (s Set[T]) Clone() Set[T] {
	if s.order == nil {
		return Set[T]{}
	}
	return sorted(slices.Clone(s.items), s.order)
}

// with returns an ordering usable for s and other; a zero-value operand
// borrows the ordering of the other one.
func (s Set[T]) with(other Set[T]) *ordering[T] {
	if s.order != nil {
		return s.order
	}
	return other.order
}

// treeFor returns the tree of s under order. gods only combines trees built
// on the same comparator, so a set from another ordering is rebuilt.
func (s Set[T]) treeFor(order *ordering[T]) *treeset.Set {
	if s.tree != nil && s.order == order {
		return s.tree
	}
	return treeset.NewWith(order.comparator, values(s.items)...)
}

// mutable returns a private copy of the tree for an in-place change.
func (s *Set[T]) mutable() *treeset.Set {
	return treeset.NewWith(s.order.comparator, values(s.items)...)
}

// Contains reports whether x is an element of the set.
func (s Set[T]) Contains(x T) bool {
	return s.tree != nil && s.tree.Contains(x)
}

// ContainsAll reports whether every element of other is in s.
func (s Set[T]) ContainsAll(other Set[T]) bool {
	if other.IsEmpty() {
		return true
	}
	if other.Len() > s.Len() || s.tree == nil {
		return false
	}
	return s.tree.Contains(values(other.items)...)
}

// SubsetOf reports whether every element of s is in other.
func (s Set[T]) SubsetOf(other Set[T]) bool {
	return other.ContainsAll(s)
}

// StrictlyContains reports whether other is a proper subset of s.
func (s Set[T]) StrictlyContains(other Set[T]) bool {
	return other.Len() < s.Len() && s.ContainsAll(other)
}

// ProperSubsetOf reports whether s is a proper subset of other.
func (s Set[T]) ProperSubsetOf(other Set[T]) bool {
	return other.StrictlyContains(s)
}

// Equal reports whether both sets hold the same elements.
func (s Set[T]) Equal(other Set[T]) bool {
	if s.Len() != other.Len() {
		return false
	}
	compare := s.with(other)
	if compare == nil {
		return true
	}
	for i := range s.items {
		if compare.compare(s.items[i], other.items[i]) != 0 {
			return false
		}
	}
	return true
}

// Insert adds x and reports whether it was not present.
func (s *Set[T]) Insert(x T) bool {
	return s.InsertAll(x)
}

// InsertAll adds every item and reports whether any was new.
func (s *Set[T]) InsertAll(items ...T) bool {
	fresh := slices.DeleteFunc(slices.Clone(items), s.Contains)
	if len(fresh) == 0 {
		return false
	}
	tree := s.mutable()
	tree.Add(values(fresh)...)
	*s = fromTree(tree, s.order)
	return true
}

// Remove deletes x and reports whether it was present.
func (s *Set[T]) Remove(x T) bool {
	return s.RemoveAll(x)
}

// RemoveAll deletes every item and reports whether any was present.
func (s *Set[T]) RemoveAll(items ...T) bool {
	present := slices.DeleteFunc(slices.Clone(items), func(x T) bool { return !s.Contains(x) })
	if len(present) == 0 {
		return false
	}
	tree := s.mutable()
	tree.Remove(values(present)...)
	*s = fromTree(tree, s.order)
	return true
}

// Clear removes all elements.
func (s *Set[T]) Clear() {
	if s.order == nil {
		*s = Set[T]{}
		return
	}
	*s = sorted[T](nil, s.order)
}

// Union returns the elements in s or other.
func (s Set[T]) Union(other Set[T]) Set[T] {
	order := s.with(other)
	if order == nil {
		return Set[T]{}
	}
	return fromTree(s.treeFor(order).Union(other.treeFor(order)), order)
}

// Intersection returns the elements in both s and other.
func (s Set[T]) Intersection(other Set[T]) Set[T] {
	order := s.with(other)
	if order == nil {
		return Set[T]{}
	}
	return fromTree(s.treeFor(order).Intersection(other.treeFor(order)), order)
}

// Difference returns the elements of s that are not in other.
func (s Set[T]) Difference(other Set[T]) Set[T] {
	order := s.with(other)
	if order == nil {
		return Set[T]{}
	}
	return fromTree(s.treeFor(order).Difference(other.treeFor(order)), order)
}

// SymmetricDifference returns the elements in exactly one of the sets.
func (s Set[T]) SymmetricDifference(other Set[T]) Set[T] {
	return s.Difference(other).Union(other.Difference(s))
}

// Join renders the elements with format, separated by sep.
func (s Set[T]) Join(sep string, format func(T) string) string {
	parts := make([]string, len(s.items))
	for i, item := range s.items {
		parts[i] = format(item)
	}
	return strings.Join(parts, sep)
}

package normalize

import (
	"iter"

	"github.com/tordrt/coddschema/internal/orderedset"
)

// DependencySet is a deduplicated set of functional dependencies kept in
// canonical order.
type DependencySet struct {
	set orderedset.Set[FunctionalDependency]
}

// NewDependencySet creates a set holding fds.
func NewDependencySet(fds ...FunctionalDependency) DependencySet {
	return DependencySet{set: orderedset.New(compareDependencies, fds...)}
}

func (s DependencySet) clone() DependencySet {
	return NewDependencySet(s.set.Items()...)
}

// Len returns the number of dependencies.
func (s DependencySet) Len() int {
	return s.set.Len()
}

// IsEmpty reports whether the set has no dependencies.
func (s DependencySet) IsEmpty() bool {
	return s.set.IsEmpty()
}

// Dependencies returns the dependencies in canonical order.
func (s DependencySet) Dependencies() []FunctionalDependency {
	return s.set.Items()
}

// All iterates the dependencies in canonical order.
func (s DependencySet) All() iter.Seq[FunctionalDependency] {
	return s.set.All()
}

// Contains reports whether fd is a member of the set.
func (s DependencySet) Contains(fd FunctionalDependency) bool {
	return s.set.Contains(fd)
}

// Equal reports whether both sets hold exactly the same dependencies.
func (s DependencySet) Equal(other DependencySet) bool {
	return s.set.Equal(other.set)
}

// Attributes returns every attribute used by some dependency.
func (s DependencySet) Attributes() Descriptor {
	attrs := NewDescriptor()
	for fd := range s.set.All() {
		attrs = attrs.Union(fd.Attributes())
	}
	return attrs
}

// Union returns the dependencies of s and other.
func (s DependencySet) Union(other DependencySet) DependencySet {
	return NewDependencySet().merge(s).merge(other)
}

func (s DependencySet) merge(other DependencySet) DependencySet {
	return DependencySet{set: s.set.Union(other.set)}
}

// Without returns s minus fds.
func (s DependencySet) Without(fds ...FunctionalDependency) DependencySet {
	out := s.clone()
	out.set.RemoveAll(fds...)
	return out
}

// ComposedOf reports whether every dependency only uses attributes of d.
func (s DependencySet) ComposedOf(d Descriptor) bool {
	for fd := range s.set.All() {
		if !fd.ComposedOf(d) {
			return false
		}
	}
	return true
}

// Restrict returns the dependencies composed of attributes of d.
func (s DependencySet) Restrict(d Descriptor) DependencySet {
	out := NewDependencySet()
	for fd := range s.set.All() {
		if fd.ComposedOf(d) {
			out.set.Insert(fd)
		}
	}
	return out
}

// Closure returns the attributes functionally implied by x under s.
//
// Each round picks the first dependency, in canonical order, whose
// determinant is inside the closure and whose determinate is not, adds the
// determinate and starts over from the beginning.
func (s DependencySet) Closure(x Descriptor) Descriptor {
	closure := NewDescriptor().Union(x)
	for {
		extended := false
		for fd := range s.set.All() {
			if fd.determinant.SubsetOf(closure) && !fd.determinate.SubsetOf(closure) {
				closure = closure.Union(fd.determinate)
				extended = true
				break
			}
		}
		if !extended {
			return closure
		}
	}
}

// Implies reports whether fd belongs to the closure of s.
func (s DependencySet) Implies(fd FunctionalDependency) bool {
	return s.Closure(fd.determinant).ContainsAll(fd.determinate)
}

// Covers reports whether every dependency of other is implied by s.
func (s DependencySet) Covers(other DependencySet) bool {
	for fd := range other.set.All() {
		if !s.Implies(fd) {
			return false
		}
	}
	return true
}

// Equivalent reports whether s and other cover each other.
func (s DependencySet) Equivalent(other DependencySet) bool {
	return s.Covers(other) && other.Covers(s)
}

// IsComplete reports whether no proper subset of the determinant of fd already
// determines its determinate. Dependencies with at most one determinant
// attribute are always complete.
func (s DependencySet) IsComplete(fd FunctionalDependency) bool {
	x := fd.determinant
	if x.Len() <= 1 {
		return true
	}
	// a smaller determining subset implies a determining (|X|-1)-subset
	for z := range x.subsets(x.Len() - 1) {
		if s.Closure(z).ContainsAll(fd.determinate) {
			return false
		}
	}
	return true
}

// IsPartial reports whether fd is not complete.
func (s DependencySet) IsPartial(fd FunctionalDependency) bool {
	return !s.IsComplete(fd)
}

// IsElemental reports whether fd is complete and has a single determinate.
func (s DependencySet) IsElemental(fd FunctionalDependency) bool {
	return s.IsComplete(fd) && fd.determinate.IsSingle()
}

// Extraneous returns the determinant attributes of fd that can be dropped
// while still determining its determinate, or false when fd is complete.
//
// The complete core is searched by descending into the first (|X|-1)-subset
// that still determines the determinate.
func (s DependencySet) Extraneous(fd FunctionalDependency) (Descriptor, bool) {
	x := fd.determinant
	if x.Len() <= 1 {
		return NewDescriptor(), false
	}
	for z := range x.subsets(x.Len() - 1) {
		if !s.Closure(z).ContainsAll(fd.determinate) {
			continue
		}
		core := z
		if inner, ok := s.Extraneous(NewDependency(z, fd.determinate)); ok {
			core = z.Difference(inner)
		}
		return x.Difference(core), true
	}
	return NewDescriptor(), false
}

// MinimalCover returns the canonical cover of s: singleton determinates, no
// trivial dependencies, no extraneous determinant attributes and no redundant
// dependencies. The phases run in that order and are not commutative.
func (s DependencySet) MinimalCover() DependencySet {
	cover := NewDependencySet()
	for fd := range s.set.All() {
		cover.set.InsertAll(fd.Split()...)
	}

	for fd := range cover.clone().All() {
		if fd.IsTrivial() {
			cover.set.Remove(fd)
		}
	}

	// extraneous attributes are judged against the set as it was before this
	// phase started rewriting it
	snapshot := cover.clone()
	for fd := range snapshot.All() {
		extraneous, ok := snapshot.Extraneous(fd)
		if !ok {
			continue
		}
		cover.set.Remove(fd)
		cover.set.Insert(NewDependency(fd.determinant.Difference(extraneous), fd.determinate))
	}

	for fd := range cover.clone().All() {
		cover.set.Remove(fd)
		if !cover.Implies(fd) {
			cover.set.Insert(fd)
		}
	}

	return cover
}

// String renders the set as "A -> B; B -> C".
func (s DependencySet) String() string {
	return s.set.Join("; ", FunctionalDependency.String)
}

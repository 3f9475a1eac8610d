package normalize

import (
	"iter"
	"strings"

	"github.com/tordrt/coddschema/internal/orderedset"
)

// Attribute is an atomic named element of a relation schema.
type Attribute string

func compareAttributes(a, b Attribute) int {
	return strings.Compare(string(a), string(b))
}

// Descriptor is an ordered set of attributes.
type Descriptor struct {
	set orderedset.Set[Attribute]
}

// NewDescriptor creates a descriptor holding attrs.
func NewDescriptor(attrs ...Attribute) Descriptor {
	return Descriptor{set: orderedset.New(compareAttributes, attrs...)}
}

// DescriptorOf creates a descriptor from attribute names.
func DescriptorOf(names ...string) Descriptor {
	d := NewDescriptor()
	for _, name := range names {
		d.set.Insert(Attribute(name))
	}
	return d
}

func descriptorFromSet(s orderedset.Set[Attribute]) Descriptor {
	return Descriptor{set: s}
}

// Len returns the number of attributes.
func (d Descriptor) Len() int {
	return d.set.Len()
}

// IsEmpty reports whether the descriptor has no attributes.
func (d Descriptor) IsEmpty() bool {
	return d.set.IsEmpty()
}

// IsSingle reports whether the descriptor holds exactly one attribute.
func (d Descriptor) IsSingle() bool {
	return d.set.Len() == 1
}

// Attributes returns the attributes in ascending order.
func (d Descriptor) Attributes() []Attribute {
	return d.set.Items()
}

// All iterates the attributes in ascending order.
func (d Descriptor) All() iter.Seq[Attribute] {
	return d.set.All()
}

// Names returns the attribute names in ascending order.
func (d Descriptor) Names() []string {
	names := make([]string, 0, d.set.Len())
	for a := range d.set.All() {
		names = append(names, string(a))
	}
	return names
}

// Contains reports whether a belongs to the descriptor.
func (d Descriptor) Contains(a Attribute) bool {
	return d.set.Contains(a)
}

// ContainsAll reports whether other is a subset of d.
func (d Descriptor) ContainsAll(other Descriptor) bool {
	return d.set.ContainsAll(other.set)
}

// SubsetOf reports whether d is a subset of other.
func (d Descriptor) SubsetOf(other Descriptor) bool {
	return other.set.ContainsAll(d.set)
}

// ProperSubsetOf reports whether d is a proper subset of other.
func (d Descriptor) ProperSubsetOf(other Descriptor) bool {
	return other.set.StrictlyContains(d.set)
}

// Union returns the attributes in d or other.
func (d Descriptor) Union(other Descriptor) Descriptor {
	return descriptorFromSet(d.set.Union(other.set))
}

// Intersection returns the attributes in both d and other.
func (d Descriptor) Intersection(other Descriptor) Descriptor {
	return descriptorFromSet(d.set.Intersection(other.set))
}

// Difference returns the attributes of d missing from other.
func (d Descriptor) Difference(other Descriptor) Descriptor {
	return descriptorFromSet(d.set.Difference(other.set))
}

// With returns d plus a.
func (d Descriptor) With(a Attribute) Descriptor {
	return d.Union(NewDescriptor(a))
}

// Equal reports whether both descriptors hold the same attributes.
func (d Descriptor) Equal(other Descriptor) bool {
	return d.set.Equal(other.set)
}

// Compare orders descriptors by cardinality, then by their attributes compared
// pairwise in ascending order.
func (d Descriptor) Compare(other Descriptor) int {
	if d.Len() != other.Len() {
		return d.Len() - other.Len()
	}
	for i := 0; i < d.Len(); i++ {
		if c := compareAttributes(d.set.At(i), other.set.At(i)); c != 0 {
			return c
		}
	}
	return 0
}

// subsets iterates the k-attribute subsets of d in combination order.
func (d Descriptor) subsets(k int) iter.Seq[Descriptor] {
	return func(yield func(Descriptor) bool) {
		for s := range orderedset.Subsets(d.set, k) {
			if !yield(descriptorFromSet(s)) {
				return
			}
		}
	}
}

// key is a canonical string used for memoization.
func (d Descriptor) key() string {
	return d.set.Join("\x00", func(a Attribute) string { return string(a) })
}

// String renders the attributes as "A, B, C".
func (d Descriptor) String() string {
	return d.set.Join(", ", func(a Attribute) string { return string(a) })
}

func compareDescriptors(a, b Descriptor) int {
	return a.Compare(b)
}

// DescriptorSet is an ordered set of descriptors, such as the candidate keys of
// a relation.
type DescriptorSet struct {
	set orderedset.Set[Descriptor]
}

// NewDescriptorSet creates an ordered set of descriptors.
func NewDescriptorSet(ds ...Descriptor) DescriptorSet {
	return DescriptorSet{set: orderedset.New(compareDescriptors, ds...)}
}

// Len returns the number of descriptors.
func (s DescriptorSet) Len() int {
	return s.set.Len()
}

// Descriptors returns the descriptors in canonical order.
func (s DescriptorSet) Descriptors() []Descriptor {
	return s.set.Items()
}

// All iterates the descriptors in canonical order.
func (s DescriptorSet) All() iter.Seq[Descriptor] {
	return s.set.All()
}

// Contains reports whether d is a member.
func (s DescriptorSet) Contains(d Descriptor) bool {
	return s.set.Contains(d)
}

// String renders the descriptors as "{A}, {B, C}".
func (s DescriptorSet) String() string {
	return s.set.Join(", ", func(d Descriptor) string { return "{" + d.String() + "}" })
}

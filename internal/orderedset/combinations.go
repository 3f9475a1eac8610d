package orderedset

import (
	"iter"
	"math/bits"
)

// Combinations lazily enumerates the k-element subsets of a set.
//
// Subsets come out in lexicographic order of element positions: every subset
// holding the smallest element first, then those starting at the second
// smallest, and so on. For {A, B, C} and k = 2 this yields {A, B}, {A, C}, {B, C}.
type Combinations[T any] struct {
	source  Set[T]
	k       int
	indices []int
	started bool
	done    bool
}

// NewCombinations creates an enumerator of the k-subsets of source.
// A k outside [0, source.Len()] enumerates nothing.
func NewCombinations[T any](source Set[T], k int) *Combinations[T] {
	c := &Combinations[T]{source: source, k: k}
	if k < 0 || k > source.Len() {
		c.done = true
	}
	return c
}

// Count returns the number of subsets the enumerator yields in total.
func (c *Combinations[T]) Count() uint64 {
	if c.k < 0 || c.k > c.source.Len() {
		return 0
	}
	return Binomial(c.source.Len(), c.k)
}

// Next returns the next subset, or false once the enumeration is exhausted.
func (c *Combinations[T]) Next() (Set[T], bool) {
	if c.done {
		return Set[T]{}, false
	}
	if !c.started {
		c.started = true
		c.indices = make([]int, c.k)
		for i := range c.indices {
			c.indices[i] = i
		}
		return c.current(), true
	}

	n := c.source.Len()
	i := c.k - 1
	for i >= 0 && c.indices[i] == n-c.k+i {
		i--
	}
	if i < 0 {
		c.done = true
		return Set[T]{}, false
	}
	c.indices[i]++
	for j := i + 1; j < c.k; j++ {
		c.indices[j] = c.indices[j-1] + 1
	}
	return c.current(), true
}

func (c *Combinations[T]) current() Set[T] {
	items := make([]T, c.k)
	for i, idx := range c.indices {
		items[i] = c.source.items[idx]
	}
	if c.source.order == nil {
		return Set[T]{items: items}
	}
	// indices are increasing, so items are already sorted and distinct
	return sorted(items, c.source.order)
}

// All iterates the remaining subsets.
func (c *Combinations[T]) All() iter.Seq[Set[T]] {
	return func(yield func(Set[T]) bool) {
		for {
			subset, ok := c.Next()
			if !ok || !yield(subset) {
				return
			}
		}
	}
}

// Subsets is shorthand for NewCombinations(source, k).All().
func Subsets[T any](source Set[T], k int) iter.Seq[Set[T]] {
	return NewCombinations(source, k).All()
}

// PowerSet iterates every subset of source by ascending cardinality, each
// cardinality in combination order. The empty set comes first.
func PowerSet[T any](source Set[T]) iter.Seq[Set[T]] {
	return func(yield func(Set[T]) bool) {
		for k := 0; k <= source.Len(); k++ {
			for subset := range Subsets(source, k) {
				if !yield(subset) {
					return
				}
			}
		}
	}
}

// Binomial returns C(n, k). It saturates at the maximum uint64 on overflow.
func Binomial(n, k int) uint64 {
	if k < 0 || n < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := uint64(1)
	for i := 1; i <= k; i++ {
		// result * (n-k+i) / i stays integral at every step
		hi, lo := bits.Mul64(result, uint64(n-k+i))
		if hi >= uint64(i) {
			return ^uint64(0)
		}
		result, _ = bits.Div64(hi, lo, uint64(i))
	}
	return result
}

// Factorial returns n!, saturating at the maximum uint64 on overflow.
func Factorial(n int) uint64 {
	if n < 0 {
		return 0
	}
	result := uint64(1)
	for i := 2; i <= n; i++ {
		hi, lo := bits.Mul64(result, uint64(i))
		if hi != 0 {
			return ^uint64(0)
		}
		result = lo
	}
	return result
}

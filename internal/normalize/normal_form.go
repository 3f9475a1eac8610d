package normalize

import (
	"fmt"
	"strings"
)

// NormalForm is a normalization level. Levels are totally ordered and each one
// contains the ones below it: BCNF ⊇ 3NF ⊇ 2NF ⊇ 1NF.
type NormalForm int

const (
	NF1 NormalForm = iota + 1
	NF2
	NF3
	BCNF
)

// NormalForms returns every level in ascending order.
func NormalForms() []NormalForm {
	return []NormalForm{NF1, NF2, NF3, BCNF}
}

// ParseNormalForm reads "1NF", "2NF", "3NF" or "BCNF" (case insensitive).
func ParseNormalForm(s string) (NormalForm, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "1NF", "1":
		return NF1, nil
	case "2NF", "2":
		return NF2, nil
	case "3NF", "3":
		return NF3, nil
	case "BCNF":
		return BCNF, nil
	default:
		return 0, fmt.Errorf("unknown normal form %q (must be 1NF, 2NF, 3NF or BCNF)", s)
	}
}

func (nf NormalForm) String() string {
	switch nf {
	case NF1:
		return "1NF"
	case NF2:
		return "2NF"
	case NF3:
		return "3NF"
	case BCNF:
		return "BCNF"
	default:
		return fmt.Sprintf("NormalForm(%d)", int(nf))
	}
}

// Valid reports whether nf is one of the four known levels.
func (nf NormalForm) Valid() bool {
	return nf >= NF1 && nf <= BCNF
}

// Contains reports whether satisfying nf implies satisfying other.
func (nf NormalForm) Contains(other NormalForm) bool {
	return nf >= other
}

// Compare returns a negative number, zero or a positive number as nf is
// weaker than, equal to or stronger than other.
func (nf NormalForm) Compare(other NormalForm) int {
	return int(nf) - int(other)
}

// Satisfied reports whether r meets the conditions of this level alone,
// evaluated over r's minimal cover.
func (nf NormalForm) Satisfied(r *Relation) bool {
	return nf.rule().satisfied(r)
}

// Decompose splits a relation classified exactly at this level on the first
// dependency, in canonical order, that keeps it from the next level:
//
//   - 1NF splits off a partial dependency of a non-prime attribute;
//   - 2NF splits off a non-prime attribute depending on a non-superkey;
//   - 3NF splits off any dependency whose determinant is not a superkey;
//   - BCNF never decomposes.
//
// A nil decomposition means there was nothing to split.
func (nf NormalForm) Decompose(r *Relation) (*Decomposition, error) {
	decompose := nf.rule().decompose
	if decompose == nil {
		return nil, nil
	}
	return decompose(r)
}

type rule struct {
	satisfied func(*Relation) bool
	decompose func(*Relation) (*Decomposition, error)
}

func (nf NormalForm) rule() rule {
	switch nf {
	case NF1:
		return rule{
			satisfied: func(*Relation) bool { return true },
			decompose: splitPartial,
		}
	case NF2:
		return rule{
			satisfied: func(r *Relation) bool { _, found := partialViolation(r); return !found },
			decompose: splitTransitive,
		}
	case NF3:
		return rule{
			satisfied: func(r *Relation) bool { _, found := transitiveViolation(r); return !found },
			decompose: splitNonKey,
		}
	case BCNF:
		return rule{
			satisfied: func(r *Relation) bool { _, found := nonKeyViolation(r); return !found },
		}
	default:
		return rule{satisfied: func(*Relation) bool { return false }}
	}
}

// Classify returns the strongest level r satisfies, checking 2NF, 3NF and
// BCNF in that order. 1NF is the floor.
func Classify(r *Relation) NormalForm {
	level := NF1
	for _, next := range []NormalForm{NF2, NF3, BCNF} {
		if !next.Satisfied(r) {
			break
		}
		level = next
	}
	return level
}

// partialViolation finds X -> A where X is a proper subset of a candidate key
// and A is not prime.
func partialViolation(r *Relation) (FunctionalDependency, bool) {
	nonPrime := r.NonPrimeAttributes()
	return firstDependency(r.minimalCover, func(fd FunctionalDependency) bool {
		return r.IsStrictlyPrime(fd.determinant) && fd.determinate.SubsetOf(nonPrime)
	})
}

// transitiveViolation finds X -> A where X is not a superkey and A is not
// prime.
func transitiveViolation(r *Relation) (FunctionalDependency, bool) {
	primes := r.PrimeAttributes()
	return firstDependency(r.minimalCover, func(fd FunctionalDependency) bool {
		return !fd.IsTrivial() && !r.IsSuperKey(fd.determinant) && !fd.determinate.SubsetOf(primes)
	})
}

// nonKeyViolation finds X -> A where X is not a superkey.
func nonKeyViolation(r *Relation) (FunctionalDependency, bool) {
	return firstDependency(r.minimalCover, func(fd FunctionalDependency) bool {
		return !fd.IsTrivial() && !r.IsSuperKey(fd.determinant)
	})
}

func firstDependency(fds DependencySet, match func(FunctionalDependency) bool) (FunctionalDependency, bool) {
	for fd := range fds.All() {
		if match(fd) {
			return fd, true
		}
	}
	return FunctionalDependency{}, false
}

// splitPartial moves X -> A into its own relation. The other child keeps the
// remaining dependencies and drops A unless one of them still uses it.
func splitPartial(r *Relation) (*Decomposition, error) {
	fd, found := partialViolation(r)
	if !found {
		return nil, nil
	}
	rest := r.minimalCover.Without(fd)
	attrsB := r.attributes
	if !rest.Attributes().ContainsAll(fd.determinate) {
		attrsB = attrsB.Difference(fd.determinate)
	}
	return newBinaryDecomposition(r, fd.Attributes(), NewDependencySet(fd), attrsB, rest)
}

func splitTransitive(r *Relation) (*Decomposition, error) {
	fd, found := transitiveViolation(r)
	if !found {
		return nil, nil
	}
	return splitAway(r, fd)
}

func splitNonKey(r *Relation) (*Decomposition, error) {
	fd, found := nonKeyViolation(r)
	if !found {
		return nil, nil
	}
	return splitAway(r, fd)
}

// splitAway builds X ∪ A with X -> A, and the relation without A keeping every
// minimal-cover dependency that still fits in it.
func splitAway(r *Relation, fd FunctionalDependency) (*Decomposition, error) {
	attrsB := r.attributes.Difference(fd.determinate)
	return newBinaryDecomposition(r, fd.Attributes(), NewDependencySet(fd), attrsB, r.minimalCover.Restrict(attrsB))
}

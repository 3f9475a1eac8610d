package normalize

import "fmt"

// Relation is a schema R(name, attributes, dependencies) together with the
// values derived from it at construction: minimal cover, candidate keys and
// normal form. A Relation is never modified after NewRelation returns.
type Relation struct {
	name          string
	attributes    Descriptor
	dependencies  DependencySet
	minimalCover  DependencySet
	candidateKeys DescriptorSet
	normalForm    NormalForm
}

// NewRelation validates the schema and derives its minimal cover, candidate
// keys and normal form.
//
// The attribute descriptor must not be empty and every dependency may only
// use attributes of the descriptor.
func NewRelation(name string, attributes Descriptor, dependencies DependencySet) (*Relation, error) {
	if attributes.IsEmpty() {
		return nil, fmt.Errorf("%w: %s", ErrEmptyAttributes, name)
	}
	for fd := range dependencies.All() {
		if missing := fd.Attributes().Difference(attributes); !missing.IsEmpty() {
			return nil, fmt.Errorf("%w: %s in relation %s does not know %s", ErrUnknownAttribute, fd, name, missing)
		}
	}

	r := &Relation{
		name:         name,
		attributes:   NewDescriptor().Union(attributes),
		dependencies: dependencies.clone(),
	}
	r.minimalCover = r.dependencies.MinimalCover()
	r.candidateKeys = r.searchCandidateKeys()
	r.normalForm = Classify(r)
	return r, nil
}

// Name returns the relation name.
func (r *Relation) Name() string {
	return r.name
}

// Attributes returns the attribute descriptor.
func (r *Relation) Attributes() Descriptor {
	return r.attributes
}

// Dependencies returns the dependencies the relation was built with.
func (r *Relation) Dependencies() DependencySet {
	return r.dependencies
}

// MinimalCover returns the canonical cover of the dependencies.
func (r *Relation) MinimalCover() DependencySet {
	return r.minimalCover
}

// CandidateKeys returns the minimal keys in canonical order. There is always
// at least one.
func (r *Relation) CandidateKeys() DescriptorSet {
	return r.candidateKeys
}

// NormalForm returns the strongest normal form the relation satisfies.
func (r *Relation) NormalForm() NormalForm {
	return r.normalForm
}

// PrimeAttributes returns the attributes that belong to some candidate key.
func (r *Relation) PrimeAttributes() Descriptor {
	primes := NewDescriptor()
	for key := range r.candidateKeys.All() {
		primes = primes.Union(key)
	}
	return primes
}

// NonPrimeAttributes returns the attributes outside every candidate key.
func (r *Relation) NonPrimeAttributes() Descriptor {
	return r.attributes.Difference(r.PrimeAttributes())
}

// IsSuperKey reports whether d contains some candidate key.
func (r *Relation) IsSuperKey(d Descriptor) bool {
	for key := range r.candidateKeys.All() {
		if key.SubsetOf(d) {
			return true
		}
	}
	return false
}

// IsCandidateKey reports whether d is one of the candidate keys.
func (r *Relation) IsCandidateKey(d Descriptor) bool {
	return r.candidateKeys.Contains(d)
}

// IsPrime reports whether d lies inside some candidate key.
func (r *Relation) IsPrime(d Descriptor) bool {
	for key := range r.candidateKeys.All() {
		if d.SubsetOf(key) {
			return true
		}
	}
	return false
}

// IsStrictlyPrime reports whether d is a proper subset of some candidate key.
func (r *Relation) IsStrictlyPrime(d Descriptor) bool {
	for key := range r.candidateKeys.All() {
		if d.ProperSubsetOf(key) {
			return true
		}
	}
	return false
}

// Decompose splits the relation with the rule of its own normal form. It
// returns nil when the rule finds nothing to split, which is always the case
// for BCNF relations.
func (r *Relation) Decompose() (*Decomposition, error) {
	return r.normalForm.Decompose(r)
}

// String renders the relation as "R({A, B}, {A -> B})".
func (r *Relation) String() string {
	return fmt.Sprintf("%s({%s}, {%s})", r.name, r.attributes, r.dependencies)
}

func (r *Relation) isSuperKeyByClosure(d Descriptor) bool {
	return r.minimalCover.Closure(d).ContainsAll(r.attributes)
}

func (r *Relation) searchCandidateKeys() DescriptorSet {
	keys := NewDescriptorSet()
	r.collectKeys(r.attributes, &keys, make(map[string]struct{}))
	return keys
}

// collectKeys adds the candidate keys inside the superkey candidate. A
// superkey none of whose (|S|-1)-subsets is a superkey is itself minimal.
// Subsets reached along several paths are only expanded once.
func (r *Relation) collectKeys(candidate Descriptor, keys *DescriptorSet, visited map[string]struct{}) {
	id := candidate.key()
	if _, seen := visited[id]; seen {
		return
	}
	visited[id] = struct{}{}

	if candidate.Len() <= 1 {
		keys.set.Insert(candidate)
		return
	}

	reducible := false
	for subset := range candidate.subsets(candidate.Len() - 1) {
		if r.isSuperKeyByClosure(subset) {
			reducible = true
			r.collectKeys(subset, keys, visited)
		}
	}
	if !reducible {
		keys.set.Insert(candidate)
	}
}

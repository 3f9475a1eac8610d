package normalize

// FunctionalDependency is a pair X -> Y: values of the determinant X fix the
// values of the determinate Y.
type FunctionalDependency struct {
	determinant Descriptor
	determinate Descriptor
}

// NewDependency creates the dependency determinant -> determinate.
func NewDependency(determinant, determinate Descriptor) FunctionalDependency {
	return FunctionalDependency{
		determinant: NewDescriptor().Union(determinant),
		determinate: NewDescriptor().Union(determinate),
	}
}

// Determinant returns the left-hand side.
func (fd FunctionalDependency) Determinant() Descriptor {
	return fd.determinant
}

// Determinate returns the right-hand side.
func (fd FunctionalDependency) Determinate() Descriptor {
	return fd.determinate
}

// IsTrivial reports whether the determinate is a subset of the determinant.
func (fd FunctionalDependency) IsTrivial() bool {
	return fd.determinate.SubsetOf(fd.determinant)
}

// Attributes returns every attribute the dependency mentions.
func (fd FunctionalDependency) Attributes() Descriptor {
	return fd.determinant.Union(fd.determinate)
}

// Split returns X -> A for every attribute A of the determinate.
func (fd FunctionalDependency) Split() []FunctionalDependency {
	out := make([]FunctionalDependency, 0, fd.determinate.Len())
	for a := range fd.determinate.All() {
		out = append(out, NewDependency(fd.determinant, NewDescriptor(a)))
	}
	return out
}

// ComposedOf reports whether both sides only use attributes of d.
func (fd FunctionalDependency) ComposedOf(d Descriptor) bool {
	return fd.determinant.SubsetOf(d) && fd.determinate.SubsetOf(d)
}

// Equal reports whether both dependencies have the same sides.
func (fd FunctionalDependency) Equal(other FunctionalDependency) bool {
	return fd.Compare(other) == 0
}

// Compare orders dependencies by determinant, then by determinate.
func (fd FunctionalDependency) Compare(other FunctionalDependency) int {
	if c := fd.determinant.Compare(other.determinant); c != 0 {
		return c
	}
	return fd.determinate.Compare(other.determinate)
}

// String renders the dependency as "A, B -> C".
func (fd FunctionalDependency) String() string {
	return fd.determinant.String() + " -> " + fd.determinate.String()
}

func compareDependencies(a, b FunctionalDependency) int {
	return a.Compare(b)
}

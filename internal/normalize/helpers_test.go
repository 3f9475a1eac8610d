package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// attrs builds a descriptor from "A, B, C".
func attrs(s string) Descriptor {
	var names []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return DescriptorOf(names...)
}

// dep builds a dependency from "A, B -> C".
func dep(s string) FunctionalDependency {
	sides := strings.Split(s, "->")
	if len(sides) != 2 {
		panic("bad dependency " + s)
	}
	return NewDependency(attrs(sides[0]), attrs(sides[1]))
}

func deps(specs ...string) DependencySet {
	set := NewDependencySet()
	for _, spec := range specs {
		set = set.Union(NewDependencySet(dep(spec)))
	}
	return set
}

func mustRelation(t *testing.T, name, attributes string, specs ...string) *Relation {
	t.Helper()
	r, err := NewRelation(name, attrs(attributes), deps(specs...))
	require.NoError(t, err)
	return r
}

func depStrings(s DependencySet) []string {
	var out []string
	for fd := range s.All() {
		out = append(out, fd.String())
	}
	return out
}

func keyStrings(s DescriptorSet) []string {
	var out []string
	for d := range s.All() {
		out = append(out, d.String())
	}
	return out
}

func relationNames(rs []*Relation) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name()
	}
	return out
}

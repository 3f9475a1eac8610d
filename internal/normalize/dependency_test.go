package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFunctionalDependency_IsTrivial(t *testing.T) {
	assert.True(t, dep("A, B -> A").IsTrivial())
	assert.True(t, dep("A -> A").IsTrivial())
	assert.False(t, dep("A -> B").IsTrivial())
	assert.False(t, dep("A, B -> A, C").IsTrivial())
}

func TestFunctionalDependency_Split(t *testing.T) {
	var got []string
	for _, fd := range dep("A -> C, B").Split() {
		got = append(got, fd.String())
	}
	assert.Equal(t, []string{"A -> B", "A -> C"}, got)
}

func TestFunctionalDependency_Compare(t *testing.T) {
	assert.Negative(t, dep("A -> C").Compare(dep("A, B -> C")))
	assert.Negative(t, dep("A -> B").Compare(dep("A -> C")))
	assert.Negative(t, dep("A -> Z").Compare(dep("B -> A")))
	assert.True(t, dep("B, A -> C").Equal(dep("A, B -> C")))
}

func TestFunctionalDependency_ComposedOf(t *testing.T) {
	assert.True(t, dep("A -> B").ComposedOf(attrs("A, B, C")))
	assert.False(t, dep("A -> D").ComposedOf(attrs("A, B, C")))
	assert.Equal(t, "A, B, C", dep("C, A -> B").Attributes().String())
}

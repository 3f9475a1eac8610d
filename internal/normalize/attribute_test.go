package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescriptor_Compare(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{name: "smaller cardinality first", a: "Z", b: "A, B", want: -1},
		{name: "larger cardinality last", a: "A, B, C", b: "X, Y", want: 1},
		{name: "first differing attribute decides", a: "A, C", b: "B, C", want: -1},
		{name: "later differing attribute decides", a: "A, D", b: "A, C", want: 1},
		{name: "equal", a: "B, A", b: "A, B", want: 0},
		{name: "both empty", a: "", b: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := attrs(tt.a).Compare(attrs(tt.b))
			switch {
			case tt.want < 0:
				assert.Negative(t, got)
			case tt.want > 0:
				assert.Positive(t, got)
			default:
				assert.Zero(t, got)
			}
		})
	}
}

func TestDescriptor_SetOperations(t *testing.T) {
	abc := attrs("A, B, C")
	bd := attrs("B, D")

	assert.Equal(t, "A, B, C, D", abc.Union(bd).String())
	assert.Equal(t, "B", abc.Intersection(bd).String())
	assert.Equal(t, "A, C", abc.Difference(bd).String())
	assert.Equal(t, "A, B, C, E", abc.With("E").String())
	assert.True(t, attrs("A, C").SubsetOf(abc))
	assert.True(t, attrs("A, C").ProperSubsetOf(abc))
	assert.False(t, abc.ProperSubsetOf(abc))
	assert.True(t, abc.ContainsAll(attrs("C")))
	assert.True(t, attrs("B").IsSingle())
	assert.True(t, NewDescriptor().IsEmpty())
	assert.Equal(t, []string{"A", "B", "C"}, abc.Names())
}

func TestDescriptor_Subsets(t *testing.T) {
	var got []string
	for d := range attrs("A, B, C").subsets(2) {
		got = append(got, d.String())
	}
	assert.Equal(t, []string{"A, B", "A, C", "B, C"}, got)
}

func TestDescriptorSet_Order(t *testing.T) {
	set := NewDescriptorSet(attrs("B, C"), attrs("D"), attrs("A, B"), attrs("D"))
	assert.Equal(t, 3, set.Len())
	assert.Equal(t, "{D}, {A, B}, {B, C}", set.String())
	assert.True(t, set.Contains(attrs("A, B")))
}

package gen

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntsFactorZeroIsSorted(t *testing.T) {
	g := New(1)
	assert.Equal(t, Sorted(100), g.Ints(100, 0))
}

func TestIntsRange(t *testing.T) {
	g := New(2)
	data := g.Ints(1000, 1)
	for i, v := range data {
		require.GreaterOrEqual(t, v, 0, "index %d", i)
		require.Less(t, v, 1000, "index %d", i)
	}
	assert.False(t, slices.IsSorted(data))
}

func TestIntsDeterministic(t *testing.T) {
	a := New(42).Ints(500, 0.3)
	b := New(42).Ints(500, 0.3)
	c := New(43).Ints(500, 0.3)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestIntsDisorderFraction(t *testing.T) {
	g := New(7)
	data := g.Ints(100000, 0.1)
	displaced := 0
	for i, v := range data {
		if v != i {
			displaced++
		}
	}
	// A random draw can land on its own index; allow generous slack.
	assert.InDelta(t, 10000, displaced, 800)
}

func TestFactorClamped(t *testing.T) {
	g := New(3)
	assert.Equal(t, Sorted(50), g.Ints(50, -0.5))
	assert.Equal(t, Sorted(50), g.Ints(50, math.NaN()))
	assert.Len(t, g.Ints(50, 3), 50)
}

func TestStringsPadded(t *testing.T) {
	g := New(4)
	data := g.Strings(200, 0, 100)
	require.Len(t, data, 200)
	for _, s := range data {
		require.Len(t, s, 100)
	}
	assert.True(t, slices.IsSorted(data), "zero padding keeps numeric order")
}

func TestHandles(t *testing.T) {
	g := New(5)
	hs := g.Handles(10, 0)
	for i, h := range hs {
		assert.Equal(t, i, h.Value)
	}
}

func TestReversed(t *testing.T) {
	assert.Equal(t, []int{4, 3, 2, 1, 0}, Reversed(5))
	assert.Empty(t, Reversed(0))
}

func TestPad(t *testing.T) {
	assert.Equal(t, "007", Pad(7, 3))
	assert.Equal(t, "1234", Pad(1234, 3))
	assert.Equal(t, "0", Pad(0, 0))
}

// Package gen produces nearly sorted test vectors.
//
// Every generator is parametrised by a disorder factor: the probability that
// position i holds a uniformly random value instead of i. A factor of 0 yields
// a sorted vector, 1 a fully random one.
package gen

import (
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Handle is a reference-holding element used to exercise the move engine.
type Handle struct {
	Value int
}

// Generator is a deterministic source of test vectors.
// It is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// New returns a generator seeded with seed. The same seed always yields the
// same sequence of vectors.
func New(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Ints returns n values where position i is i, or with probability factor a
// random value in [0, n).
func (g *Generator) Ints(n int, factor float64) []int {
	factor = clamp(factor)
	out := make([]int, n)
	for i := range out {
		if g.rng.Float64() < factor {
			out[i] = g.rng.IntN(n)
		} else {
			out[i] = i
		}
	}
	return out
}

// Strings returns the values of Ints rendered in decimal and left-padded with
// zeros to width, so that lexical order equals numeric order.
func (g *Generator) Strings(n int, factor float64, width int) []string {
	ints := g.Ints(n, factor)
	out := make([]string, n)
	for i, v := range ints {
		out[i] = Pad(v, width)
	}
	return out
}

// Handles returns the values of Ints wrapped in freshly allocated handles.
func (g *Generator) Handles(n int, factor float64) []*Handle {
	ints := g.Ints(n, factor)
	out := make([]*Handle, n)
	for i, v := range ints {
		out[i] = &Handle{Value: v}
	}
	return out
}

// Sorted returns [0, 1, ..., n-1].
func Sorted(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// Reversed returns [n-1, ..., 1, 0].
func Reversed(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = n - 1 - i
	}
	return out
}

// Pad formats v in decimal, left-padded with '0' to width characters.
// Values wider than width are returned unpadded.
func Pad(v, width int) string {
	s := strconv.Itoa(v)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

func clamp(f float64) float64 {
	if f < 0 || math.IsNaN(f) {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

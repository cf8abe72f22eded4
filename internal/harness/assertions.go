package harness

import (
	"fmt"
	"slices"

	"github.com/roach88/dmsort"
)

// statFields maps stat names to their accessors.
var statFields = map[string]func(dmsort.Stats) int{
	"len":          func(s dmsort.Stats) int { return s.Len },
	"comparisons":  func(s dmsort.Stats) int { return s.Comparisons },
	"placed":       func(s dmsort.Stats) int { return s.Placed },
	"swaps":        func(s dmsort.Stats) int { return s.Swaps },
	"dropped":      func(s dmsort.Stats) int { return s.Dropped },
	"rollbacks":    func(s dmsort.Stats) int { return s.Rollbacks },
	"restored":     func(s dmsort.Stats) int { return s.Restored },
	"residual":     func(s dmsort.Stats) int { return s.Residual() },
	"shifts":       func(s dmsort.Stats) int { return s.Shifts },
	"moves":        func(s dmsort.Stats) int { return s.Moves },
	"copies":       func(s dmsort.Stats) int { return s.Copies },
	"max_drop_run": func(s dmsort.Stats) int { return s.MaxDropRun },
	"buffer_peak":  func(s dmsort.Stats) int { return s.BufferPeak },
}

var statOps = map[string]func(a, b int) bool{
	"eq": func(a, b int) bool { return a == b },
	"ne": func(a, b int) bool { return a != b },
	"lt": func(a, b int) bool { return a < b },
	"le": func(a, b int) bool { return a <= b },
	"gt": func(a, b int) bool { return a > b },
	"ge": func(a, b int) bool { return a >= b },
}

// run is the typed view of one executed scenario that assertions inspect.
type run[E any] struct {
	input  []E
	output []E
	cmp    func(a, b E) int
	key    func(E) any // value written to Output
	ident  func(E) any // identity used by permutation
	stats  dmsort.Stats
}

func (r *run[E]) check(a Assertion) error {
	switch a.Type {
	case AssertSorted:
		return r.assertSorted()
	case AssertPermutation:
		return r.assertPermutation()
	case AssertMatchesReference:
		return r.assertMatchesReference()
	case AssertStat:
		return assertStat(r.stats, a)
	}
	return fmt.Errorf("unknown assertion type %q", a.Type)
}

func (r *run[E]) assertSorted() error {
	for i := 1; i < len(r.output); i++ {
		if r.cmp(r.output[i], r.output[i-1]) < 0 {
			return &AssertionError{
				Type:     AssertSorted,
				Expected: "non-decreasing output",
				Actual:   fmt.Sprintf("%v before %v at index %d", r.key(r.output[i-1]), r.key(r.output[i]), i),
			}
		}
	}
	return nil
}

// assertPermutation counts identities, so a handle sorted into two slots or
// replaced by nil is caught even when the keys look right.
func (r *run[E]) assertPermutation() error {
	if len(r.input) != len(r.output) {
		return &AssertionError{
			Type:     AssertPermutation,
			Expected: fmt.Sprintf("%d elements", len(r.input)),
			Actual:   fmt.Sprintf("%d elements", len(r.output)),
		}
	}

	counts := make(map[any]int, len(r.input))
	for _, v := range r.input {
		counts[r.ident(v)]++
	}
	for i, v := range r.output {
		id := r.ident(v)
		if counts[id] == 0 {
			return &AssertionError{
				Type:     AssertPermutation,
				Expected: "every output element drawn from the input",
				Actual:   fmt.Sprintf("unexpected or repeated element at index %d", i),
			}
		}
		counts[id]--
	}
	return nil
}

func (r *run[E]) assertMatchesReference() error {
	ref := slices.Clone(r.input)
	slices.SortFunc(ref, r.cmp)

	for i := range ref {
		if r.cmp(ref[i], r.output[i]) != 0 {
			return &AssertionError{
				Type:     AssertMatchesReference,
				Expected: fmt.Sprintf("%v at index %d", r.key(ref[i]), i),
				Actual:   fmt.Sprintf("%v", r.key(r.output[i])),
			}
		}
	}
	return nil
}

func assertStat(st dmsort.Stats, a Assertion) error {
	get, ok := statFields[a.Stat]
	if !ok {
		return fmt.Errorf("unknown stat %q", a.Stat)
	}
	op, ok := statOps[a.Op]
	if !ok {
		return fmt.Errorf("unknown op %q", a.Op)
	}

	got := get(st)
	if !op(got, a.Value) {
		return &AssertionError{
			Type:     AssertStat,
			Expected: fmt.Sprintf("%s %s %d", a.Stat, a.Op, a.Value),
			Actual:   fmt.Sprintf("%s = %d", a.Stat, got),
		}
	}
	return nil
}

// checkExpected compares the output keys with the literal expected output.
func checkExpected(want, got []any) error {
	if len(want) != len(got) {
		return &AssertionError{
			Type:     "expect",
			Expected: fmt.Sprintf("%d elements %v", len(want), want),
			Actual:   fmt.Sprintf("%d elements %v", len(got), got),
		}
	}
	for i := range want {
		if want[i] != got[i] {
			return &AssertionError{
				Type:     "expect",
				Expected: fmt.Sprintf("%v at index %d", want[i], i),
				Actual:   fmt.Sprintf("%v", got[i]),
			}
		}
	}
	return nil
}

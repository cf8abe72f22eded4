package bench

import (
	"cmp"
	"slices"
	"strings"

	"github.com/roach88/dmsort"
	"github.com/roach88/dmsort/internal/gen"
)

// Sorter is one algorithm under test, instantiated for every element kind.
// Each function sorts in place and returns the number of elements that ended
// up merged back from a side buffer, or 0 for algorithms without one.
type Sorter struct {
	Name    string
	Ints    func(x []int) int
	Strings func(x []string) int
	Handles func(x []*gen.Handle) int
}

func compareHandles(a, b *gen.Handle) int {
	return cmp.Compare(a.Value, b.Value)
}

// Builtin returns the named built-in sorter.
func Builtin(name string) (Sorter, bool) {
	switch name {
	case SorterDMSort:
		return Sorter{
			Name:    name,
			Ints:    dmsortWith(cmp.Compare[int]),
			Strings: dmsortWith(strings.Compare),
			Handles: dmsortWith(compareHandles),
		}, true
	case SorterPDQSort:
		return Sorter{
			Name:    name,
			Ints:    pdqsortWith(cmp.Compare[int]),
			Strings: pdqsortWith(strings.Compare),
			Handles: pdqsortWith(compareHandles),
		}, true
	case SorterStable:
		return Sorter{
			Name:    name,
			Ints:    stableWith(cmp.Compare[int]),
			Strings: stableWith(strings.Compare),
			Handles: stableWith(compareHandles),
		}, true
	}
	return Sorter{}, false
}

func dmsortWith[E any](c func(a, b E) int) func([]E) int {
	return func(x []E) int {
		return dmsort.SortFuncWith(x, c, dmsort.EngineAuto).Residual()
	}
}

func pdqsortWith[E any](c func(a, b E) int) func([]E) int {
	return func(x []E) int {
		slices.SortFunc(x, c)
		return 0
	}
}

func stableWith[E any](c func(a, b E) int) func([]E) int {
	return func(x []E) int {
		slices.SortStableFunc(x, c)
		return 0
	}
}

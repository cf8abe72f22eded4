package dmsort

import (
	"cmp"
	"slices"
)

// Recency is the number of consecutive drops tolerated before the scan rolls
// the run back and drops the preceding compacted element instead.
const Recency = 8

// Sort sorts x in ascending order.
//
// Floating point NaNs are ordered before other values, as with cmp.Compare.
func Sort[S ~[]E, E cmp.Ordered](x S) {
	SortFuncWith(x, cmp.Compare[E], EngineAuto)
}

// SortFunc sorts x in ascending order as determined by the cmp function.
// cmp(a, b) must return a negative number when a < b, a positive number when
// a > b and zero when a == b, and it must be a strict weak ordering.
//
// An inconsistent cmp leaves x in an unspecified order but always terminates.
func SortFunc[S ~[]E, E any](x S, cmp func(a, b E) int) {
	SortFuncWith(x, cmp, EngineAuto)
}

// SortFuncWith sorts x like SortFunc using the given engine and returns the
// counters collected during the call. EngineAuto selects EngineFor[E]().
//
// Forcing EngineCopy on a type that holds pointers is safe but leaves stale
// references in the vacated slots until they are overwritten.
func SortFuncWith[S ~[]E, E any](x S, cmp func(a, b E) int, eng Engine) Stats {
	if eng == EngineAuto {
		eng = EngineFor[E]()
	}
	st := Stats{Engine: eng, Len: len(x)}
	if len(x) < 2 {
		return st
	}

	s := &sorter[E]{cmp: cmp, move: eng == EngineMove, st: st}
	var write int
	if s.move {
		write = s.scanMove(x)
	} else {
		write = s.scanCopy(x)
	}
	s.sortDropped()
	s.merge(x, write)
	return s.st
}

// sorter carries the state of a single sort call.
type sorter[E any] struct {
	cmp     func(a, b E) int
	move    bool
	dropped []E
	st      Stats
}

func (s *sorter[E]) less(a, b E) bool {
	s.st.Comparisons++
	return s.cmp(a, b) < 0
}

func (s *sorter[E]) compare(a, b E) int {
	s.st.Comparisons++
	return s.cmp(a, b)
}

// transfer records one element relocation.
func (s *sorter[E]) transfer() {
	if s.move {
		s.st.Moves++
	} else {
		s.st.Copies++
	}
}

// push appends v to the dropped buffer.
func (s *sorter[E]) push(v E) {
	s.dropped = append(s.dropped, v)
	s.transfer()
	s.st.Dropped++
	if len(s.dropped) > s.st.BufferPeak {
		s.st.BufferPeak = len(s.dropped)
	}
}

func (s *sorter[E]) noteRun(n int) {
	if n > s.st.MaxDropRun {
		s.st.MaxDropRun = n
	}
}

func (s *sorter[E]) sortDropped() {
	if len(s.dropped) > 1 {
		slices.SortFunc(s.dropped, s.compare)
	}
}

// merge inserts the sorted dropped buffer into x, whose sorted prefix ends at
// write. Elements of the prefix shift right only as far as needed.
func (s *sorter[E]) merge(x []E, write int) {
	var zero E
	back := len(x)
	for i := len(s.dropped) - 1; i >= 0; i-- {
		last := s.dropped[i]
		// back-write equals the number of buffered elements still pending,
		// so back never meets write while shifting.
		for write > 0 && s.less(last, x[write-1]) {
			back--
			write--
			x[back] = x[write]
			if s.move {
				x[write] = zero
			}
			s.transfer()
			s.st.Shifts++
		}
		back--
		x[back] = last
		if s.move {
			s.dropped[i] = zero
		}
		s.transfer()
	}
	s.dropped = s.dropped[:0]
}

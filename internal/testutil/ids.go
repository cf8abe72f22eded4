package testutil

import "sync"

// FixedIDs returns predetermined run IDs in order.
//
// Thread-safety: FixedIDs is safe for concurrent use via internal mutex.
type FixedIDs struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedIDs creates a generator that returns ids in order.
//
//	ids := NewFixedIDs("run-1", "run-2")
//	ids.NewID() // "run-1"
//	ids.NewID() // "run-2"
//	ids.NewID() // panic: all ids exhausted
func NewFixedIDs(ids ...string) *FixedIDs {
	return &FixedIDs{ids: ids}
}

// NewID returns the next predetermined ID.
//
// Panics once every ID has been consumed, so a test that starts more runs
// than it planned for fails loudly.
func (g *FixedIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.ids) {
		panic("FixedIDs: all ids exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}

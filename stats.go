package dmsort

// Stats holds the counters collected by one SortFuncWith call.
type Stats struct {
	Engine Engine `json:"engine"` // engine that ran (never EngineAuto)
	Len    int    `json:"len"`    // length of the input

	Comparisons int `json:"comparisons"` // comparator calls, including the buffer sort
	Placed      int `json:"placed"`      // elements kept in order by the scan
	Swaps       int `json:"swaps"`       // out-of-order elements resolved by swapping with their predecessor
	Dropped     int `json:"dropped"`     // buffer pushes, including ones later undone by a rollback
	Rollbacks   int `json:"rollbacks"`   // runs of Recency drops that were undone
	Restored    int `json:"restored"`    // elements returned to the slice by rollbacks
	Shifts      int `json:"shifts"`      // prefix elements moved right during the merge

	Moves  int `json:"moves"`  // ownership transfers (move engine)
	Copies int `json:"copies"` // duplications (copy engine)

	MaxDropRun int `json:"max_drop_run"` // longest run of consecutive drops, at most Recency
	BufferPeak int `json:"buffer_peak"`  // largest size of the drop buffer
}

// Residual returns the number of elements that were still in the buffer
// when the scan finished.
func (s Stats) Residual() int {
	return s.Dropped - s.Restored
}

// Package harness replays YAML sort scenarios against dmsort and checks the
// results.
//
// # Scenario Format
//
//	name: reversed-five
//	description: "Fully reversed input drops all but the first element"
//	kind: int            # int | string | handle
//	order: asc           # asc | desc
//	engine: auto         # auto | copy | move
//	input: [5, 4, 3, 2, 1]
//	expect:
//	  output: [1, 2, 3, 4, 5]
//	assertions:
//	  - type: sorted
//	  - type: permutation
//	  - type: stat
//	    stat: dropped
//	    op: eq
//	    value: 4
//
// Instead of input a scenario may generate a nearly sorted vector:
//
//	generate: { size: 1000, factor: 0.05, seed: 3 }
//
// Files are decoded strictly (unknown fields are errors) and then validated
// against the CUE schema embedded in schema.cue.
//
// # Assertion Types
//
//   - sorted: every adjacent pair of the output is in order
//   - permutation: the output holds exactly the input elements (by identity
//     for handles)
//   - matches_reference: the output keys equal those of slices.SortFunc
//   - stat: compares one dmsort.Stats counter against a value
//
// # Golden Snapshots
//
// A snapshot is the canonical JSON of the scenario name, the engine that ran,
// the output keys and the shape counters of the sort. Comparator call counts
// are omitted because they follow the internals of the buffer sort; assert
// them with a stat assertion instead.
package harness

// Package dmsort implements drop-merge sort, an in-place sort for slices that
// are already mostly in order.
//
// A single forward pass keeps every element that is in order relative to the
// compacted prefix, drops the ones that are not into a small side buffer, sorts
// that buffer and merges it back from the right. Only the elements that have to
// move are touched, so a slice with a few percent of misplaced elements sorts in
// close to linear time. On random input the cost approaches a regular sort.
//
// # Engines
//
// Two engines share the same scan and merge structure:
//
//   - The copy engine is used for pointer-free element types (numbers, bools,
//     arrays and structs of those). Dropping an element duplicates it; the stale
//     value left in the slice is overwritten later.
//   - The move engine is used for everything else. Every transfer clears the
//     slot it leaves, so no reference is ever held twice and the garbage
//     collector never sees stale aliases.
//
// The engine is picked per element type; see EngineFor and SortFuncWith.
//
// # Usage
//
//	data := []int{1, 2, 4, 3, 5, 6, 8, 7}
//	dmsort.Sort(data)
//
//	people := []*Person{...}
//	dmsort.SortFunc(people, func(a, b *Person) int {
//	    return cmp.Compare(a.Age, b.Age)
//	})
//
// The sort is not stable: equal elements may change relative order through the
// swap shortcut and the rollback path.
package dmsort

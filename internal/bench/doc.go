// Package bench measures drop-merge sort against general-purpose sorts over
// a sweep of disorder factors.
//
// For every element kind and factor, each sorter sorts Runs freshly generated
// vectors and the mean wall time is recorded. Every output is checked for
// sortedness; a sorter that leaves a vector unsorted fails the whole run.
//
// Timing is sequential. Runs never overlap, since concurrent sorts perturb
// each other's measurements.
package bench

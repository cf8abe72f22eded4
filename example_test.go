package dmsort_test

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/roach88/dmsort"
)

func ExampleSort() {
	data := []int{1, 2, 4, 3, 5, 6, 8, 7, 9}
	dmsort.Sort(data)
	fmt.Println(data)
	// Output: [1 2 3 4 5 6 7 8 9]
}

func ExampleSortFunc() {
	words := []string{"apple", "Banana", "cherry", "Date"}
	dmsort.SortFunc(words, func(a, b string) int {
		return cmp.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	fmt.Println(words)
	// Output: [apple Banana cherry Date]
}

func ExampleSortFuncWith() {
	data := []int{1, 3, 2, 4, 5}
	st := dmsort.SortFuncWith(data, cmp.Compare[int], dmsort.EngineAuto)
	fmt.Println(data, st.Engine, st.Swaps, st.Dropped)
	// Output: [1 2 3 4 5] copy 1 0
}

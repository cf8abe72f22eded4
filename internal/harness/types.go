package harness

import (
	"fmt"

	"github.com/roach88/dmsort"
)

// Result is the outcome of running one scenario.
type Result struct {
	// Pass is true when the expected output and every assertion held.
	Pass bool `json:"pass"`

	// Output holds the sorted keys: ints for int and handle kinds, strings
	// for the string kind.
	Output []any `json:"output"`

	Stats dmsort.Stats `json:"stats"`

	// Errors lists failed checks. Empty when Pass is true.
	Errors []string `json:"errors,omitempty"`
}

func newResult() *Result {
	return &Result{Pass: true, Errors: []string{}}
}

func (r *Result) fail(err error) {
	r.Errors = append(r.Errors, err.Error())
	r.Pass = false
}

// AssertionError describes a failed check.
type AssertionError struct {
	Type     string // assertion type, or "expect" for the expected output
	Expected string
	Actual   string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Type, e.Expected, e.Actual)
}

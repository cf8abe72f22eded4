package cli

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/dmsort"
)

// SortOptions holds flags for the sort command.
type SortOptions struct {
	*RootOptions
	Strings bool   // sort lines as strings instead of integers
	Desc    bool   // descending order
	Stats   bool   // report sort counters
	Engine  string // auto | copy | move
}

// SortResult is the JSON payload of the sort command.
type SortResult struct {
	Values any           `json:"values"`
	Stats  *dmsort.Stats `json:"stats,omitempty"`
}

// NewSortCommand creates the sort command.
func NewSortCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SortOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sort [file]",
		Short: "Sort integers or lines with drop-merge sort",
		Long: `Read whitespace-separated integers (or lines, with --strings) from a
file or stdin, sort them with drop-merge sort and print one value per line.

Examples:
  dmsort sort numbers.txt
  seq 100 -1 1 | dmsort sort --stats
  dmsort sort --strings --desc names.txt
  dmsort sort --format json < numbers.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(cmd, opts, args)
		},
	}

	cmd.Flags().BoolVar(&opts.Strings, "strings", false, "sort lines as strings")
	cmd.Flags().BoolVar(&opts.Desc, "desc", false, "sort in descending order")
	cmd.Flags().BoolVar(&opts.Stats, "stats", false, "report sort counters")
	cmd.Flags().StringVar(&opts.Engine, "engine", "auto", "engine (auto|copy|move)")

	return cmd
}

func runSort(cmd *cobra.Command, opts *SortOptions, args []string) error {
	eng, err := dmsort.ParseEngine(opts.Engine)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --engine", err)
	}

	in := cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open input", err)
		}
		defer f.Close()
		in = f
	}

	logger := newLogger(cmd, opts.RootOptions)
	f := newFormatter(cmd, opts.RootOptions)

	var values any
	var st dmsort.Stats
	var lines []string
	if opts.Strings {
		xs, err := readLines(in)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read input", err)
		}
		st = dmsort.SortFuncWith(xs, order(strings.Compare, opts.Desc), eng)
		values, lines = xs, xs
	} else {
		xs, err := readInts(in)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read input", err)
		}
		st = dmsort.SortFuncWith(xs, order(cmp.Compare[int], opts.Desc), eng)
		values = xs
		lines = make([]string, len(xs))
		for i, x := range xs {
			lines[i] = strconv.Itoa(x)
		}
	}

	logger.Debug("sorted",
		"len", st.Len,
		"engine", st.Engine.String(),
		"dropped", st.Dropped,
		"rollbacks", st.Rollbacks)

	if f.IsJSON() {
		res := SortResult{Values: values}
		if opts.Stats {
			res.Stats = &st
		}
		return f.JSON("ok", res)
	}

	w := bufio.NewWriter(cmd.OutOrStdout())
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if opts.Stats {
		writeStats(f.ErrorWriter(), st)
	}
	return nil
}

func order[E any](c func(a, b E) int, desc bool) func(a, b E) int {
	if !desc {
		return c
	}
	return func(a, b E) int { return c(b, a) }
}

// readInts parses whitespace-separated base-10 integers.
func readInts(r io.Reader) ([]int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)

	out := []int{}
	for sc.Scan() {
		n, err := strconv.Atoi(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("value %d: invalid integer %q", len(out)+1, sc.Text())
		}
		out = append(out, n)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// readLines returns every line of r without its line terminator.
func readLines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	out := []string{}
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func writeStats(w io.Writer, st dmsort.Stats) {
	fmt.Fprintf(w, "engine=%s len=%d comparisons=%d placed=%d swaps=%d dropped=%d rollbacks=%d restored=%d shifts=%d moves=%d copies=%d max_drop_run=%d buffer_peak=%d\n",
		st.Engine, st.Len, st.Comparisons, st.Placed, st.Swaps, st.Dropped, st.Rollbacks,
		st.Restored, st.Shifts, st.Moves, st.Copies, st.MaxDropRun, st.BufferPeak)
}

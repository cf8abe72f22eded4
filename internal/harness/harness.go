package harness

import (
	"cmp"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/roach88/dmsort"
	"github.com/roach88/dmsort/internal/gen"
)

// Harness runs scenarios.
type Harness struct {
	logger *slog.Logger
}

// New returns a harness that logs to logger. A nil logger discards output.
func New(logger *slog.Logger) *Harness {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Harness{logger: logger}
}

// Run executes a scenario with a discarding logger.
func Run(s *Scenario) (*Result, error) {
	return New(nil).Run(s)
}

// Run builds the scenario input, sorts it and evaluates the expected output
// and every assertion. Failed checks are collected in Result.Errors; the
// returned error is reserved for scenarios that cannot be executed.
func (h *Harness) Run(s *Scenario) (*Result, error) {
	eng, err := dmsort.ParseEngine(s.Engine)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}

	var res *Result
	switch s.Kind {
	case KindInt, "":
		res = execute(s, eng, intInput(s), cmp.Compare[int], keyOf[int], keyOf[int])
	case KindString:
		res = execute(s, eng, stringInput(s), strings.Compare, keyOf[string], keyOf[string])
	case KindHandle:
		res = execute(s, eng, handleInput(s), compareHandles, handleValue, handleIdentity)
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidScenario, s.Kind)
	}

	h.logger.Debug("scenario executed",
		"scenario", s.Name,
		"engine", res.Stats.Engine.String(),
		"len", res.Stats.Len,
		"dropped", res.Stats.Dropped,
		"rollbacks", res.Stats.Rollbacks,
		"pass", res.Pass)
	for _, e := range res.Errors {
		h.logger.Info("scenario check failed", "scenario", s.Name, "error", e)
	}
	return res, nil
}

func execute[E any](s *Scenario, eng dmsort.Engine, input []E, compare func(a, b E) int, key, ident func(E) any) *Result {
	if s.Order == OrderDesc {
		asc := compare
		compare = func(a, b E) int { return asc(b, a) }
	}

	r := &run[E]{
		input:  input,
		output: slices.Clone(input),
		cmp:    compare,
		key:    key,
		ident:  ident,
	}
	r.stats = dmsort.SortFuncWith(r.output, compare, eng)

	res := newResult()
	res.Stats = r.stats
	res.Output = make([]any, len(r.output))
	for i, v := range r.output {
		res.Output[i] = key(v)
	}

	if s.Expect != nil {
		if err := checkExpected(s.Expect.Output, res.Output); err != nil {
			res.fail(err)
		}
	}
	for i, a := range s.Assertions {
		if err := r.check(a); err != nil {
			res.fail(fmt.Errorf("assertions[%d]: %w", i, err))
		}
	}
	return res
}

func intInput(s *Scenario) []int {
	if s.Generate != nil {
		return gen.New(s.Generate.Seed).Ints(s.Generate.Size, s.Generate.Factor)
	}
	out := make([]int, len(s.Input))
	for i, v := range s.Input {
		out[i], _ = v.(int)
	}
	return out
}

func stringInput(s *Scenario) []string {
	if s.Generate != nil {
		width := s.Generate.Width
		if width == 0 {
			width = defaultStringWidth
		}
		return gen.New(s.Generate.Seed).Strings(s.Generate.Size, s.Generate.Factor, width)
	}
	out := make([]string, len(s.Input))
	for i, v := range s.Input {
		out[i], _ = v.(string)
	}
	return out
}

func handleInput(s *Scenario) []*gen.Handle {
	if s.Generate != nil {
		return gen.New(s.Generate.Seed).Handles(s.Generate.Size, s.Generate.Factor)
	}
	out := make([]*gen.Handle, len(s.Input))
	for i, v := range s.Input {
		n, _ := v.(int)
		out[i] = &gen.Handle{Value: n}
	}
	return out
}

func keyOf[E any](v E) any { return v }

func compareHandles(a, b *gen.Handle) int {
	return cmp.Compare(a.Value, b.Value)
}

// handleValue returns the wrapped value; a nil handle yields nil so it
// never matches an expected integer.
func handleValue(h *gen.Handle) any {
	if h == nil {
		return nil
	}
	return h.Value
}

func handleIdentity(h *gen.Handle) any { return h }

package bench

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/dmsort/internal/canon"
	"github.com/roach88/dmsort/internal/gen"
)

var (
	// ErrUnsorted is returned when a sorter leaves its input out of order.
	ErrUnsorted = errors.New("output not sorted")

	// ErrUnknownSorter is returned for a sorter name with no implementation.
	ErrUnknownSorter = errors.New("unknown sorter")
)

// Clock reads the current time. Tests substitute a fake to make
// measured durations deterministic.
type Clock interface {
	Now() time.Time
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

// IDGenerator produces run IDs.
type IDGenerator interface {
	NewID() string
}

// UUIDv7Generator generates time-sortable UUIDv7 run IDs.
type UUIDv7Generator struct{}

// NewID returns a fresh hyphenated UUIDv7.
func (UUIDv7Generator) NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Runner executes benchmark sweeps.
type Runner struct {
	Clock  Clock
	IDs    IDGenerator
	Logger *slog.Logger

	// Sorters adds or overrides sorters by name. Names not found here
	// fall back to Builtin.
	Sorters map[string]Sorter
}

// NewRunner returns a runner on the wall clock with UUIDv7 run IDs.
// A nil logger discards all output.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{
		Clock:  wallClock{},
		IDs:    UUIDv7Generator{},
		Logger: logger,
	}
}

// Run executes the sweep described by cfg.
//
// Vectors are generated from cfg.Seed, the factor index and the run index,
// so every sorter sees the same inputs for a given factor.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	sorters := make([]Sorter, 0, len(cfg.Sorters))
	for _, name := range cfg.Sorters {
		s, err := r.lookup(name)
		if err != nil {
			return nil, err
		}
		sorters = append(sorters, s)
	}

	hash, err := canon.Hash(canon.DomainConfig, cfg.canonical())
	if err != nil {
		return nil, fmt.Errorf("hash config: %w", err)
	}

	rep := &Report{
		ID:         r.IDs.NewID(),
		StartedAt:  r.Clock.Now().UTC(),
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
		CPU:        CPUFeatures(),
		ConfigHash: hash,
		Config:     cfg,
	}

	r.Logger.Info("benchmark started",
		"run_id", rep.ID,
		"kinds", cfg.Kinds,
		"sorters", cfg.Sorters,
		"runs", cfg.Runs)

	factors := cfg.FactorPermilles()
	for _, kind := range cfg.Kinds {
		for fi, p := range factors {
			for _, s := range sorters {
				if err := ctx.Err(); err != nil {
					return nil, fmt.Errorf("benchmark %s interrupted: %w", rep.ID, err)
				}

				row, err := r.measure(cfg, kind, s, fi, p)
				if err != nil {
					return nil, err
				}
				rep.Rows = append(rep.Rows, row)

				r.Logger.Debug("measured",
					"kind", kind,
					"factor", row.Factor,
					"sorter", s.Name,
					"mean", row.Mean,
					"dropped", row.Dropped)
			}
		}
		r.Logger.Info("kind complete", "kind", kind, "factors", len(factors))
	}

	return rep, nil
}

func (r *Runner) lookup(name string) (Sorter, error) {
	if s, ok := r.Sorters[name]; ok {
		return s, nil
	}
	if s, ok := Builtin(name); ok {
		return s, nil
	}
	return Sorter{}, fmt.Errorf("%w: %q", ErrUnknownSorter, name)
}

func (r *Runner) measure(cfg Config, kind string, s Sorter, factorIdx, p int) (Row, error) {
	n := cfg.sizeFor(kind)
	factor := float64(p) / 1000

	var total time.Duration
	var dropped int
	for run := range cfg.Runs {
		g := gen.New(vectorSeed(cfg.Seed, factorIdx, run))

		var elapsed time.Duration
		var d int
		var err error
		switch kind {
		case KindInt:
			elapsed, d, err = timeSort(r.Clock, s.Name, s.Ints, g.Ints(n, factor), cmp.Compare[int])
		case KindString:
			elapsed, d, err = timeSort(r.Clock, s.Name, s.Strings, g.Strings(n, factor, cfg.StringWidth), strings.Compare)
		case KindHandle:
			elapsed, d, err = timeSort(r.Clock, s.Name, s.Handles, g.Handles(n, factor), compareHandles)
		default:
			err = fmt.Errorf("unknown kind %q", kind)
		}
		if err != nil {
			return Row{}, fmt.Errorf("%s/%s factor %g run %d: %w", kind, s.Name, factor, run, err)
		}
		total += elapsed
		dropped += d
	}

	mean := total / time.Duration(cfg.Runs)
	return Row{
		Kind:    kind,
		Factor:  factor,
		Sorter:  s.Name,
		Mean:    mean,
		MeanMS:  float64(mean.Microseconds()) / 1000,
		Dropped: dropped / cfg.Runs,
	}, nil
}

func timeSort[E any](clock Clock, name string, fn func([]E) int, x []E, compare func(a, b E) int) (time.Duration, int, error) {
	if fn == nil {
		return 0, 0, fmt.Errorf("%w: %q has no implementation for this kind", ErrUnknownSorter, name)
	}

	start := clock.Now()
	dropped := fn(x)
	elapsed := clock.Now().Sub(start)

	if !slices.IsSortedFunc(x, compare) {
		return 0, 0, fmt.Errorf("%w: %s produced an out-of-order vector of %d elements", ErrUnsorted, name, len(x))
	}
	return elapsed, dropped, nil
}

// vectorSeed derives a per-vector seed. Every sorter sees the same vector
// for the same (factor, run) pair.
func vectorSeed(seed uint64, factorIdx, run int) uint64 {
	return seed ^ uint64(factorIdx)<<32 ^ uint64(run)*0x9e3779b97f4a7c15
}

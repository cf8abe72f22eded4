package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/dmsort/internal/bench"
	"github.com/roach88/dmsort/internal/store"
)

// BenchOptions holds flags for the bench command.
type BenchOptions struct {
	*RootOptions
	Config   string // YAML config file
	Kinds    string // comma-separated kinds
	Sorters  string // comma-separated sorters
	Size     int
	Runs     int
	Step     float64
	Seed     uint64
	Database string // optional SQLite path to record the run
}

// NewBenchCommand creates the bench command.
func NewBenchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BenchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark drop-merge sort over a sweep of disorder factors",
		Long: `Time drop-merge sort against pdqsort and a stable sort on generated
vectors whose disorder factor sweeps from 0 to 1.

Flags override values read from --config. Without --config the sweep uses
factor steps of 0.1 rather than the full 0.01.

Examples:
  dmsort bench
  dmsort bench --kinds int --size 100000 --runs 3
  dmsort bench --config bench.yaml --db runs.db
  dmsort bench --config bench.toml
  dmsort bench --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "benchmark config file (YAML, or TOML by .toml extension)")
	cmd.Flags().StringVar(&opts.Kinds, "kinds", "", "comma-separated element kinds (int,string,handle)")
	cmd.Flags().StringVar(&opts.Sorters, "sorters", "", "comma-separated sorters (dmsort,pdqsort,stable)")
	cmd.Flags().IntVar(&opts.Size, "size", 0, "vector length for int and handle kinds")
	cmd.Flags().IntVar(&opts.Runs, "runs", 0, "runs per factor and sorter")
	cmd.Flags().Float64Var(&opts.Step, "step", 0.1, "disorder factor step")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 1, "generator seed")
	cmd.Flags().StringVar(&opts.Database, "db", "", "SQLite database to record the run")

	return cmd
}

// benchConfig resolves the effective config: defaults, then the config
// file, then any flag the user set explicitly.
func benchConfig(cmd *cobra.Command, opts *BenchOptions) (bench.Config, error) {
	cfg := bench.DefaultConfig()
	cfg.Factors.Step = opts.Step
	if opts.Config != "" {
		var err error
		cfg, err = bench.LoadConfig(opts.Config)
		if err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("kinds") {
		cfg.Kinds = splitList(opts.Kinds)
	}
	if flags.Changed("sorters") {
		cfg.Sorters = splitList(opts.Sorters)
	}
	if flags.Changed("size") {
		cfg.Size = opts.Size
	}
	if flags.Changed("runs") {
		cfg.Runs = opts.Runs
	}
	if flags.Changed("step") {
		cfg.Factors.Step = opts.Step
	}
	if flags.Changed("seed") {
		cfg.Seed = opts.Seed
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func runBench(cmd *cobra.Command, opts *BenchOptions) error {
	cfg, err := benchConfig(cmd, opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid benchmark config", err)
	}

	logger := newLogger(cmd, opts.RootOptions)
	f := newFormatter(cmd, opts.RootOptions)

	// Open the store first so a bad path fails before minutes of timing.
	var st *store.Store
	if opts.Database != "" {
		st, err = store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				logger.Error("error closing database", "error", closeErr)
			}
		}()
	}

	runner := bench.NewRunner(logger)
	rep, err := runner.Run(cmd.Context(), cfg)
	if errors.Is(err, bench.ErrUnknownSorter) {
		return WrapExitError(ExitCommandError, "invalid benchmark config", err)
	}
	if err != nil {
		return WrapExitError(ExitFailure, "benchmark failed", err)
	}

	if st != nil {
		run, err := rep.Record()
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to encode run", err)
		}
		if err := st.WriteRun(cmd.Context(), run); err != nil {
			return WrapExitError(ExitCommandError, "failed to record run", err)
		}
		logger.Info("run recorded", "run_id", rep.ID, "db", opts.Database)
	}

	if f.IsJSON() {
		return f.JSON("ok", rep)
	}
	return rep.WriteText(cmd.OutOrStdout())
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

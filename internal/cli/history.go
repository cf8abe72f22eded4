package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/dmsort/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
	Run      string // show one run with its measurements
}

// RunSummary is one line of history output.
type RunSummary struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	GoVersion  string    `json:"go_version"`
	Platform   string    `json:"platform"`
	CPU        string    `json:"cpu"`
	ConfigHash string    `json:"config_hash"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded benchmark runs",
		Long: `List benchmark runs recorded with "dmsort bench --db", newest first.
With --run, print the measurements of a single run.

Examples:
  dmsort history --db runs.db
  dmsort history --db runs.db --limit 5
  dmsort history --db runs.db --run 0190f3c4-...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "SQLite database path (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of runs (0 for all)")
	cmd.Flags().StringVar(&opts.Run, "run", "", "show the measurements of one run")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(cmd *cobra.Command, opts *HistoryOptions) error {
	if opts.Database == "" {
		return NewExitError(ExitCommandError, "--db must not be empty")
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	f := newFormatter(cmd, opts.RootOptions)
	ctx := cmd.Context()

	if opts.Run != "" {
		run, err := st.ReadRun(ctx, opts.Run)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read run", err)
		}
		if f.IsJSON() {
			return f.JSON("ok", run)
		}
		return writeRunText(cmd, run)
	}

	runs, err := st.ListRuns(ctx, opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	summaries := make([]RunSummary, len(runs))
	for i, r := range runs {
		summaries[i] = RunSummary{
			ID:         r.ID,
			StartedAt:  r.StartedAt,
			GoVersion:  r.GoVersion,
			Platform:   r.Platform,
			CPU:        r.CPU,
			ConfigHash: r.ConfigHash,
		}
	}

	if f.IsJSON() {
		return f.JSON("ok", summaries)
	}

	if len(summaries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tGO\tPLATFORM\tCONFIG")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			s.ID, s.StartedAt.Format(time.RFC3339), s.GoVersion, s.Platform, shortHash(s.ConfigHash))
	}
	return tw.Flush()
}

func writeRunText(cmd *cobra.Command, run *store.Run) error {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "run %s\nstarted %s\n%s %s cpu=%s\nconfig %s\n\n",
		run.ID, run.StartedAt.Format(time.RFC3339), run.GoVersion, run.Platform, run.CPU, run.Config)

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tFACTOR\tSORTER\tMEAN_MS\tDROPPED")
	for _, m := range run.Measurements {
		fmt.Fprintf(tw, "%s\t%.3f\t%s\t%.3f\t%d\n",
			m.Kind, float64(m.FactorPermille)/1000, m.Sorter, float64(m.MeanMicros)/1000, m.Dropped)
	}
	return tw.Flush()
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

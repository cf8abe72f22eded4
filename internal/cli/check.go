package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/dmsort/internal/harness"
	"github.com/roach88/dmsort/internal/store"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Update   bool   // regenerate golden files
	Filter   string // scenario filter (glob pattern)
	Database string // optional SQLite path to record outcomes
}

// ScenarioResult holds the result of a single scenario execution.
type ScenarioResult struct {
	Name        string   `json:"name"`
	Pass        bool     `json:"pass"`
	Engine      string   `json:"engine,omitempty"`
	Fingerprint string   `json:"fingerprint,omitempty"`
	Errors      []string `json:"errors,omitempty"`
}

// CheckResult holds the overall check result.
type CheckResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <scenarios-dir>",
		Short: "Replay sort scenarios and compare golden snapshots",
		Long: `Run every YAML scenario in a directory, evaluate its assertions and
compare its snapshot with golden/<name>.golden next to the scenario file.
Scenarios without a golden file are judged by their assertions alone.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, etc.)

Examples:
  dmsort check ./scenarios
  dmsort check ./scenarios --filter "rollback-*"
  dmsort check ./scenarios --update
  dmsort check ./scenarios --db checks.db --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")
	cmd.Flags().StringVar(&opts.Database, "db", "", "SQLite database to record outcomes")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *CheckOptions, dir string) error {
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return NewExitError(ExitCommandError, fmt.Sprintf("scenarios directory not found: %s", dir))
	}

	files, err := findScenarioFiles(dir, opts.Filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to find scenarios", err)
	}

	logger := newLogger(cmd, opts.RootOptions)
	f := newFormatter(cmd, opts.RootOptions)

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

	result := CheckResult{
		Scenarios: make([]ScenarioResult, 0, len(files)),
		Total:     len(files),
	}

	h := harness.New(logger)
	for _, file := range files {
		sr := checkScenario(h, file, opts)
		result.Scenarios = append(result.Scenarios, sr)
		if sr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}

		if !f.IsJSON() {
			writeScenarioText(cmd.OutOrStdout(), sr, opts.Update)
		}

		if st != nil && sr.Fingerprint != "" {
			if _, err := st.WriteCheck(cmd.Context(), store.Check{
				Scenario:    sr.Name,
				Engine:      sr.Engine,
				Pass:        sr.Pass,
				Fingerprint: sr.Fingerprint,
			}); err != nil {
				return WrapExitError(ExitCommandError, "failed to record check", err)
			}
		}
	}

	logger.Debug("check complete", "passed", result.Passed, "failed", result.Failed)

	if f.IsJSON() {
		status := "ok"
		if result.Failed > 0 {
			status = "error"
		}
		if err := f.JSON(status, result); err != nil {
			return err
		}
	} else if len(files) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No scenarios found.")
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d passed, %d failed, %d total\n",
			result.Passed, result.Failed, result.Total)
	}

	if result.Failed > 0 {
		return &ExitError{
			Code:    ExitFailure,
			Message: fmt.Sprintf("%d of %d scenarios failed", result.Failed, result.Total),
			Silent:  true,
		}
	}
	return nil
}

// findScenarioFiles lists .yaml and .yml files under dir, skipping golden
// directories, optionally filtered by a glob on the file name without its
// extension.
func findScenarioFiles(dir, filter string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "golden" {
				return filepath.SkipDir
			}
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(d.Name(), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})

	return files, err
}

// checkScenario loads, runs and golden-compares one scenario file.
func checkScenario(h *harness.Harness, file string, opts *CheckOptions) ScenarioResult {
	s, err := harness.LoadScenario(file)
	if err != nil {
		return ScenarioResult{
			Name:   filepath.Base(file),
			Errors: []string{fmt.Sprintf("failed to load scenario: %v", err)},
		}
	}

	res, err := h.Run(s)
	if err != nil {
		return ScenarioResult{
			Name:   s.Name,
			Errors: []string{fmt.Sprintf("execution failed: %v", err)},
		}
	}

	sr := ScenarioResult{
		Name:   s.Name,
		Pass:   res.Pass,
		Engine: res.Stats.Engine.String(),
		Errors: res.Errors,
	}
	if fp, err := harness.Fingerprint(s.Name, res); err == nil {
		sr.Fingerprint = fp
	} else {
		sr.Pass = false
		sr.Errors = append(sr.Errors, fmt.Sprintf("fingerprint: %v", err))
	}

	goldenPath := harness.GoldenPath(file)
	if opts.Update {
		if err := harness.WriteGolden(goldenPath, s.Name, res); err != nil {
			sr.Pass = false
			sr.Errors = append(sr.Errors, fmt.Sprintf("failed to update golden file: %v", err))
		}
		return sr
	}

	match, err := harness.CompareGolden(goldenPath, s.Name, res)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// No golden file: assertions alone decide.
	case err != nil:
		sr.Pass = false
		sr.Errors = append(sr.Errors, fmt.Sprintf("golden comparison failed: %v", err))
	case !match:
		sr.Pass = false
		sr.Errors = append(sr.Errors, "snapshot does not match golden file (run with --update to regenerate)")
	}
	return sr
}

func writeScenarioText(w io.Writer, sr ScenarioResult, updated bool) {
	if !sr.Pass {
		fmt.Fprintf(w, "✗ %s\n", sr.Name)
		for _, e := range sr.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
		return
	}
	if updated {
		fmt.Fprintf(w, "✓ %s (golden updated)\n", sr.Name)
		return
	}
	fmt.Fprintf(w, "✓ %s\n", sr.Name)
}

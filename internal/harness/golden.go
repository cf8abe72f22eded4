package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/dmsort/internal/canon"
)

// Snapshot returns the canonical JSON map recorded in golden files.
func Snapshot(name string, res *Result) map[string]any {
	st := res.Stats
	return map[string]any{
		"scenario_name": name,
		"engine":        st.Engine.String(),
		"output":        res.Output,
		"stats": map[string]any{
			"len":          st.Len,
			"placed":       st.Placed,
			"swaps":        st.Swaps,
			"dropped":      st.Dropped,
			"rollbacks":    st.Rollbacks,
			"restored":     st.Restored,
			"residual":     st.Residual(),
			"shifts":       st.Shifts,
			"moves":        st.Moves,
			"copies":       st.Copies,
			"max_drop_run": st.MaxDropRun,
			"buffer_peak":  st.BufferPeak,
		},
	}
}

// MarshalSnapshot returns the canonical JSON bytes of the snapshot.
func MarshalSnapshot(name string, res *Result) ([]byte, error) {
	data, err := canon.Marshal(Snapshot(name, res))
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", name, err)
	}
	return data, nil
}

// Fingerprint returns the domain-separated SHA-256 of the snapshot.
func Fingerprint(name string, res *Result) (string, error) {
	return canon.Hash(canon.DomainSnapshot, Snapshot(name, res))
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, s *Scenario) (*Result, error) {
	t.Helper()

	res, err := Run(s)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, s.Name, res); err != nil {
		return nil, err
	}
	return res, nil
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, name string, res *Result) error {
	t.Helper()

	data, err := MarshalSnapshot(name, res)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}

// GoldenPath returns the golden file for a scenario file: a golden/
// directory next to it, named after the file.
func GoldenPath(scenarioFile string) string {
	dir := filepath.Dir(scenarioFile)
	base := filepath.Base(scenarioFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, "golden", name+".golden")
}

// WriteGolden writes the snapshot of res to path, creating its directory.
func WriteGolden(path, name string, res *Result) error {
	data, err := MarshalSnapshot(name, res)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	return nil
}

// CompareGolden reports whether the golden file at path matches the
// snapshot of res byte for byte.
func CompareGolden(path, name string, res *Result) (bool, error) {
	want, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read golden file: %w", err)
	}
	got, err := MarshalSnapshot(name, res)
	if err != nil {
		return false, err
	}
	return bytes.Equal(want, got), nil
}

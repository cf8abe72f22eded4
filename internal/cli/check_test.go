package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dmsort/internal/store"
)

// copyScenarios copies the harness scenario files, without their golden
// files, into a fresh directory.
func copyScenarios(t *testing.T, names ...string) string {
	t.Helper()
	src := filepath.Join("..", "harness", "testdata", "scenarios")
	dst := t.TempDir()
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(src, name+".yaml"))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dst, name+".yaml"), data, 0644))
	}
	return dst
}

func TestCheckCommandMissingArgs(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCheckCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestCheckCommandNonExistentDir(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCheckCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"/nonexistent/scenarios"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenarios directory not found")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCheckCommandEmptyDir(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCheckCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{t.TempDir()})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No scenarios found")
}

func TestCheckCommandEmptyDirJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewCheckCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{t.TempDir()})

	err := cmd.Execute()
	require.NoError(t, err)

	var response CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &response))
	assert.Equal(t, "ok", response.Status)
}

func TestCheckHelpText(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCheckCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "golden")
	assert.Contains(t, output, "--update")
	assert.Contains(t, output, "--filter")
	assert.Contains(t, output, "scenarios-dir")
}

func TestCheckWithoutGoldenFiles(t *testing.T) {
	dir := copyScenarios(t, "adjacent-swap", "reversed-five")

	code, out, _ := runCLI(t, "", "check", dir)

	require.Equal(t, ExitSuccess, code, out)
	assert.Contains(t, out, "✓ adjacent-swap")
	assert.Contains(t, out, "✓ reversed-five")
	assert.Contains(t, out, "2 passed, 0 failed, 2 total")
}

func TestCheckUpdateThenCompare(t *testing.T) {
	dir := copyScenarios(t, "rollback-twenty", "handles-move-only")

	code, out, _ := runCLI(t, "", "check", dir, "--update")
	require.Equal(t, ExitSuccess, code, out)
	assert.Contains(t, out, "(golden updated)")
	assert.FileExists(t, filepath.Join(dir, "golden", "rollback-twenty.golden"))
	assert.FileExists(t, filepath.Join(dir, "golden", "handles-move-only.golden"))

	code, out, _ = runCLI(t, "", "check", dir)
	require.Equal(t, ExitSuccess, code, out)
	assert.NotContains(t, out, "golden updated")
}

func TestCheckMatchesCommittedGoldens(t *testing.T) {
	dir := filepath.Join("..", "harness", "testdata", "scenarios")

	code, out, _ := runCLI(t, "", "check", dir)
	require.Equal(t, ExitSuccess, code, out)
	assert.Contains(t, out, "0 failed")
}

func TestCheckGoldenMismatch(t *testing.T) {
	dir := copyScenarios(t, "reversed-five")
	code, _, _ := runCLI(t, "", "check", dir, "--update")
	require.Equal(t, ExitSuccess, code)

	golden := filepath.Join(dir, "golden", "reversed-five.golden")
	data, err := os.ReadFile(golden)
	require.NoError(t, err)
	tampered := strings.Replace(string(data), `"dropped":4`, `"dropped":3`, 1)
	require.NotEqual(t, string(data), tampered)
	require.NoError(t, os.WriteFile(golden, []byte(tampered), 0644))

	code, out, errOut := runCLI(t, "", "check", dir)
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, out, "✗ reversed-five")
	assert.Contains(t, out, "does not match golden file")
	assert.Contains(t, out, "0 passed, 1 failed, 1 total")
	assert.Empty(t, errOut, "failures are reported once, on stdout")
}

func TestCheckFailingAssertionJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wrong.yaml"), []byte(`name: wrong
description: "Expects the wrong drop count"
input: [3, 2, 1]
assertions:
  - type: stat
    stat: dropped
    op: eq
    value: 0
`), 0644))

	code, out, _ := runCLI(t, "", "--format", "json", "check", dir)
	assert.Equal(t, ExitFailure, code)

	var resp struct {
		Status string      `json:"status"`
		Data   CheckResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, 1, resp.Data.Failed)
	require.Len(t, resp.Data.Scenarios, 1)
	assert.False(t, resp.Data.Scenarios[0].Pass)
	assert.NotEmpty(t, resp.Data.Scenarios[0].Errors)
}

func TestCheckInvalidScenario(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("name: broken\nbogus: true\n"), 0644))

	code, out, _ := runCLI(t, "", "check", dir)
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, out, "✗ broken.yaml")
	assert.Contains(t, out, "failed to load scenario")
}

func TestCheckFilter(t *testing.T) {
	dir := copyScenarios(t, "rollback-twenty", "rollback-twenty-move", "strings-desc")

	code, out, _ := runCLI(t, "", "check", dir, "--filter", "rollback-*")
	require.Equal(t, ExitSuccess, code, out)
	assert.Contains(t, out, "2 passed, 0 failed, 2 total")
	assert.NotContains(t, out, "strings-desc")
}

func TestCheckRecordsOutcomes(t *testing.T) {
	dir := copyScenarios(t, "adjacent-swap", "strings-desc")
	db := filepath.Join(t.TempDir(), "checks.db")

	for range 2 {
		code, out, _ := runCLI(t, "", "check", dir, "--db", db)
		require.Equal(t, ExitSuccess, code, out)
	}

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()

	checks, err := st.ListChecks(t.Context(), "")
	require.NoError(t, err)
	require.Len(t, checks, 4)
	for i, c := range checks {
		assert.Equal(t, int64(i+1), c.Seq)
		assert.True(t, c.Pass)
		assert.NotEmpty(t, c.Fingerprint)
	}

	swaps, err := st.ListChecks(t.Context(), "adjacent-swap")
	require.NoError(t, err)
	require.Len(t, swaps, 2)
	assert.Equal(t, swaps[0].Fingerprint, swaps[1].Fingerprint)
	assert.Equal(t, "copy", swaps[0].Engine)
}

func TestFindScenarioFiles(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "test1.yaml"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "test2.yml"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "ignore.txt"), []byte(""), 0644))

	files, err := findScenarioFiles(tmpDir, "")
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestFindScenarioFilesWithFilter(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "rollback-a.yaml"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "rollback-b.yaml"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "swap.yaml"), []byte(""), 0644))

	files, err := findScenarioFiles(tmpDir, "rollback-*")
	require.NoError(t, err)
	assert.Len(t, files, 2)

	for _, f := range files {
		assert.True(t, strings.HasPrefix(filepath.Base(f), "rollback-"), f)
	}
}

func TestFindScenarioFilesSkipsGolden(t *testing.T) {
	tmpDir := t.TempDir()
	subDir := filepath.Join(tmpDir, "subdir")
	goldenDir := filepath.Join(tmpDir, "golden")
	require.NoError(t, os.MkdirAll(subDir, 0755))
	require.NoError(t, os.MkdirAll(goldenDir, 0755))

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "root.yaml"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(subDir, "sub.yaml"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(goldenDir, "stray.yaml"), []byte(""), 0644))

	files, err := findScenarioFiles(tmpDir, "")
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestFindScenarioFilesBadPattern(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "a.yaml"), []byte(""), 0644))

	_, err := findScenarioFiles(tmpDir, "[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter pattern")
}

package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalSnapshot(t *testing.T) {
	res, err := Run(loadTestScenario(t, "scenarios", "adjacent-swap"))
	require.NoError(t, err)

	data, err := MarshalSnapshot("adjacent-swap", res)
	require.NoError(t, err)
	assert.Equal(t,
		`{"engine":"copy","output":[1,2,3,4,5],"scenario_name":"adjacent-swap","stats":{"buffer_peak":0,"copies":0,"dropped":0,"len":5,"max_drop_run":0,"moves":0,"placed":5,"residual":0,"restored":0,"rollbacks":0,"shifts":0,"swaps":1}}`,
		string(data))
}

func TestFingerprint(t *testing.T) {
	res, err := Run(loadTestScenario(t, "scenarios", "reversed-five"))
	require.NoError(t, err)

	a, err := Fingerprint("reversed-five", res)
	require.NoError(t, err)
	b, err := Fingerprint("reversed-five", res)
	require.NoError(t, err)
	c, err := Fingerprint("other", res)
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestGoldenPath(t *testing.T) {
	assert.Equal(t,
		filepath.Join("scenarios", "golden", "reversed-five.golden"),
		GoldenPath(filepath.Join("scenarios", "reversed-five.yaml")))
}

func TestWriteAndCompareGolden(t *testing.T) {
	res, err := Run(loadTestScenario(t, "scenarios", "handles-move-only"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "golden", "handles-move-only.golden")
	require.NoError(t, WriteGolden(path, "handles-move-only", res))

	match, err := CompareGolden(path, "handles-move-only", res)
	require.NoError(t, err)
	assert.True(t, match)

	// The committed golden is byte-identical to a freshly written one.
	committed, err := os.ReadFile(filepath.Join("testdata", "golden", "handles-move-only.golden"))
	require.NoError(t, err)
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(committed), string(written))

	match, err = CompareGolden(path, "renamed", res)
	require.NoError(t, err)
	assert.False(t, match)
}

func TestCompareGoldenMissing(t *testing.T) {
	res, err := Run(loadTestScenario(t, "scenarios", "already-sorted"))
	require.NoError(t, err)

	_, err = CompareGolden(filepath.Join(t.TempDir(), "nope.golden"), "already-sorted", res)
	require.ErrorIs(t, err, os.ErrNotExist)
}

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "dmsort.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func testRun(id string, started time.Time) Run {
	return Run{
		ID:         id,
		StartedAt:  started,
		GoVersion:  "go1.25.0",
		Platform:   "linux/amd64",
		CPU:        "avx2,sse4.2",
		ConfigHash: "cafe",
		Config:     `{"runs":5}`,
		Measurements: []Measurement{
			{Kind: "int", FactorPermille: 100, Sorter: "pdqsort", MeanMicros: 900, Dropped: 0},
			{Kind: "int", FactorPermille: 0, Sorter: "dmsort", MeanMicros: 120, Dropped: 0},
			{Kind: "int", FactorPermille: 100, Sorter: "dmsort", MeanMicros: 450, Dropped: 9876},
		},
	}
}

func TestOpenAppliesPragmas(t *testing.T) {
	st := setupTestStore(t)

	require.NoError(t, st.verifyPragma("journal_mode", "wal"))
	require.NoError(t, st.verifyPragma("foreign_keys", "1"))
	require.NoError(t, st.verifyPragma("busy_timeout", "5000"))
	require.NoError(t, st.verifyPragma("user_version", "1"))
	require.NoError(t, st.Ping(context.Background()))
}

func TestOpenExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dmsort.db")
	ctx := context.Background()

	st, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st.WriteRun(ctx, testRun("run-1", time.UnixMilli(1000))))
	require.NoError(t, st.Close())

	st, err = Open(path)
	require.NoError(t, err)
	defer st.Close()

	run, err := st.ReadRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "run-1", run.ID)
}

func TestOpenInvalidPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing", "dir", "dmsort.db"))
	require.Error(t, err)
}

func TestCloseTwiceIsSafe(t *testing.T) {
	st, err := Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.Close())
	assert.NotPanics(t, func() { st.Close() })
}

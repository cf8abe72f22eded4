package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Run is a persisted benchmark run.
type Run struct {
	ID           string        `json:"id"`
	StartedAt    time.Time     `json:"started_at"`
	GoVersion    string        `json:"go_version"`
	Platform     string        `json:"platform"`
	CPU          string        `json:"cpu"`
	ConfigHash   string        `json:"config_hash"`
	Config       string        `json:"config"` // canonical JSON of the bench config
	Measurements []Measurement `json:"measurements,omitempty"`
}

// Measurement is one (kind, factor, sorter) cell of a run.
type Measurement struct {
	Kind           string `json:"kind"`
	FactorPermille int    `json:"factor_permille"`
	Sorter         string `json:"sorter"`
	MeanMicros     int64  `json:"mean_us"`
	Dropped        int    `json:"dropped"`
}

// WriteRun stores a run and its measurements in one transaction.
// Writing a run whose ID already exists is a no-op, so retries are safe.
func (s *Store) WriteRun(ctx context.Context, run Run) error {
	if run.ID == "" {
		return fmt.Errorf("write run: empty id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, go_version, platform, cpu, config_hash, config)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, run.ID, run.StartedAt.UTC().UnixMilli(), run.GoVersion, run.Platform, run.CPU,
		run.ConfigHash, run.Config)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO measurements (run_id, kind, factor_permille, sorter, mean_us, dropped)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare measurement insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range run.Measurements {
		if _, err := stmt.ExecContext(ctx, run.ID, m.Kind, m.FactorPermille, m.Sorter,
			m.MeanMicros, m.Dropped); err != nil {
			return fmt.Errorf("insert measurement %s/%d/%s: %w", m.Kind, m.FactorPermille, m.Sorter, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run %s: %w", run.ID, err)
	}
	return nil
}

// ReadRun loads a run with its measurements.
// Returns ErrNotFound if no run has the given ID.
func (s *Store) ReadRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, go_version, platform, cpu, config_hash, config
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read run %s: %w", id, err)
	}

	ms, err := s.readMeasurements(ctx, id)
	if err != nil {
		return nil, err
	}
	run.Measurements = ms
	return run, nil
}

// ListRuns returns the most recent runs first, without measurements.
// A limit of zero or less returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, go_version, platform, cpu, config_hash, config
		FROM runs
		ORDER BY started_at DESC, id COLLATE BINARY DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func (s *Store) readMeasurements(ctx context.Context, runID string) ([]Measurement, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, factor_permille, sorter, mean_us, dropped
		FROM measurements
		WHERE run_id = ?
		ORDER BY kind COLLATE BINARY, factor_permille, sorter COLLATE BINARY
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query measurements for %s: %w", runID, err)
	}
	defer rows.Close()

	var ms []Measurement
	for rows.Next() {
		var m Measurement
		if err := rows.Scan(&m.Kind, &m.FactorPermille, &m.Sorter, &m.MeanMicros, &m.Dropped); err != nil {
			return nil, fmt.Errorf("scan measurement: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate measurements: %w", err)
	}
	return ms, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var startedMillis int64
	if err := row.Scan(&run.ID, &startedMillis, &run.GoVersion, &run.Platform, &run.CPU,
		&run.ConfigHash, &run.Config); err != nil {
		return nil, err
	}
	run.StartedAt = time.UnixMilli(startedMillis).UTC()
	return &run, nil
}

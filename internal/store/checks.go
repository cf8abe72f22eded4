package store

import (
	"context"
	"fmt"
)

// Check is one recorded scenario outcome.
type Check struct {
	ID          int64
	Seq         int64
	Scenario    string
	Engine      string
	Pass        bool
	Fingerprint string
}

// WriteCheck appends a check outcome and returns it with ID and Seq assigned.
// Seq is one more than the largest sequence already stored.
func (s *Store) WriteCheck(ctx context.Context, c Check) (Check, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Check{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM checks`).Scan(&seq); err != nil {
		return Check{}, fmt.Errorf("next check seq: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO checks (seq, scenario, engine, pass, fingerprint)
		VALUES (?, ?, ?, ?, ?)
	`, seq, c.Scenario, c.Engine, boolToInt(c.Pass), c.Fingerprint)
	if err != nil {
		return Check{}, fmt.Errorf("insert check %s: %w", c.Scenario, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return Check{}, fmt.Errorf("last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Check{}, fmt.Errorf("commit check %s: %w", c.Scenario, err)
	}

	c.ID = id
	c.Seq = seq
	return c, nil
}

// ListChecks returns checks in sequence order.
// An empty scenario name returns checks for every scenario.
func (s *Store) ListChecks(ctx context.Context, scenario string) ([]Check, error) {
	query := `
		SELECT id, seq, scenario, engine, pass, fingerprint
		FROM checks
		ORDER BY seq, id
	`
	args := []any{}
	if scenario != "" {
		query = `
		SELECT id, seq, scenario, engine, pass, fingerprint
		FROM checks
		WHERE scenario = ?
		ORDER BY seq, id
	`
		args = append(args, scenario)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query checks: %w", err)
	}
	defer rows.Close()

	var checks []Check
	for rows.Next() {
		var c Check
		var pass int
		if err := rows.Scan(&c.ID, &c.Seq, &c.Scenario, &c.Engine, &pass, &c.Fingerprint); err != nil {
			return nil, fmt.Errorf("scan check: %w", err)
		}
		c.Pass = pass != 0
		checks = append(checks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate checks: %w", err)
	}
	return checks, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

package bench

import (
	"fmt"

	"github.com/roach88/dmsort/internal/canon"
	"github.com/roach88/dmsort/internal/store"
)

// Record converts the report into its stored form. Factors become permille
// and durations microseconds.
func (r *Report) Record() (store.Run, error) {
	cfg, err := canon.Marshal(r.Config.canonical())
	if err != nil {
		return store.Run{}, fmt.Errorf("canonical config: %w", err)
	}

	run := store.Run{
		ID:         r.ID,
		StartedAt:  r.StartedAt,
		GoVersion:  r.GoVersion,
		Platform:   r.Platform,
		CPU:        r.CPU,
		ConfigHash: r.ConfigHash,
		Config:     string(cfg),
	}
	for _, row := range r.Rows {
		run.Measurements = append(run.Measurements, store.Measurement{
			Kind:           row.Kind,
			FactorPermille: permille(row.Factor),
			Sorter:         row.Sorter,
			MeanMicros:     row.Mean.Microseconds(),
			Dropped:        row.Dropped,
		})
	}
	return run, nil
}

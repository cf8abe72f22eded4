package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Row is the mean timing of one sorter at one factor.
type Row struct {
	Kind    string        `json:"kind"`
	Factor  float64       `json:"factor"`
	Sorter  string        `json:"sorter"`
	Mean    time.Duration `json:"-"`
	MeanMS  float64       `json:"mean_ms"`
	Dropped int           `json:"dropped"`
}

// Report is the outcome of one benchmark run.
type Report struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	GoVersion  string    `json:"go_version"`
	Platform   string    `json:"platform"`
	CPU        string    `json:"cpu"`
	ConfigHash string    `json:"config_hash"`
	Config     Config    `json:"config"`
	Rows       []Row     `json:"rows"`
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// WriteText writes one tab-separated block per kind: a factor column, then
// the mean milliseconds of each sorter in config order.
func (r *Report) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "# run %s %s %s cpu=%s\n",
		r.ID, r.GoVersion, r.Platform, r.CPU); err != nil {
		return err
	}

	for _, kind := range r.Config.Kinds {
		if _, err := fmt.Fprintf(w, "\n# %s n=%d runs=%d (mean ms)\n",
			kind, r.Config.sizeFor(kind), r.Config.Runs); err != nil {
			return err
		}

		var b strings.Builder
		b.WriteString("factor")
		for _, s := range r.Config.Sorters {
			b.WriteString("\t" + s)
		}
		b.WriteByte('\n')

		for _, line := range r.table(kind) {
			b.WriteString(strconv.FormatFloat(line.factor, 'g', -1, 64))
			for _, ms := range line.means {
				b.WriteString("\t" + strconv.FormatFloat(ms, 'f', 3, 64))
			}
			b.WriteByte('\n')
		}
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

type tableLine struct {
	factor float64
	means  []float64
}

// table pivots the rows of one kind into factor lines with one column per
// configured sorter. Missing cells render as zero.
func (r *Report) table(kind string) []tableLine {
	col := make(map[string]int, len(r.Config.Sorters))
	for i, s := range r.Config.Sorters {
		col[s] = i
	}

	var lines []tableLine
	index := make(map[float64]int)
	for _, row := range r.Rows {
		if row.Kind != kind {
			continue
		}
		i, ok := index[row.Factor]
		if !ok {
			i = len(lines)
			index[row.Factor] = i
			lines = append(lines, tableLine{factor: row.Factor, means: make([]float64, len(r.Config.Sorters))})
		}
		if c, ok := col[row.Sorter]; ok {
			lines[i].means[c] = row.MeanMS
		}
	}
	return lines
}

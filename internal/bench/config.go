package bench

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Element kinds a benchmark can sweep.
const (
	KindInt    = "int"
	KindString = "string"
	KindHandle = "handle"
)

// Sorter names.
const (
	SorterDMSort  = "dmsort"
	SorterPDQSort = "pdqsort"
	SorterStable  = "stable"
)

var knownKinds = []string{KindInt, KindString, KindHandle}

// Factors is an inclusive sweep of disorder factors.
type Factors struct {
	From float64 `yaml:"from" toml:"from" json:"from"`
	To   float64 `yaml:"to" toml:"to" json:"to"`
	Step float64 `yaml:"step" toml:"step" json:"step"`
}

// Config describes one benchmark run.
type Config struct {
	Kinds       []string `yaml:"kinds" toml:"kinds" json:"kinds"`
	Size        int      `yaml:"size" toml:"size" json:"size"`
	StringSize  int      `yaml:"string_size" toml:"string_size" json:"string_size"`
	StringWidth int      `yaml:"string_width" toml:"string_width" json:"string_width"`
	Factors     Factors  `yaml:"factors" toml:"factors" json:"factors"`
	Runs        int      `yaml:"runs" toml:"runs" json:"runs"`
	Seed        uint64   `yaml:"seed" toml:"seed" json:"seed"`
	Sorters     []string `yaml:"sorters" toml:"sorters" json:"sorters"`
}

// DefaultConfig returns the full sweep: one million ints and one hundred
// thousand 100-character strings, factors 0 to 1 in steps of 0.01, five runs.
func DefaultConfig() Config {
	return Config{
		Kinds:       []string{KindInt, KindString},
		Size:        1_000_000,
		StringSize:  100_000,
		StringWidth: 100,
		Factors:     Factors{From: 0, To: 1, Step: 0.01},
		Runs:        5,
		Seed:        1,
		Sorters:     []string{SorterDMSort, SorterPDQSort, SorterStable},
	}
}

// LoadConfig reads a YAML config file, or TOML when the file ends in
// ".toml". Fields absent from the file keep their DefaultConfig values;
// unknown fields are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	var err error
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = decodeTOML(path, &cfg)
	} else {
		err = decodeYAML(path, &cfg)
	}
	if err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func decodeYAML(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func decodeTOML(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("parse config %s: unknown fields %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// Validate reports every problem found in c.
func (c Config) Validate() error {
	var errs []error

	if len(c.Kinds) == 0 {
		errs = append(errs, errors.New("kinds: at least one kind is required"))
	}
	for _, k := range c.Kinds {
		if !slices.Contains(knownKinds, k) {
			errs = append(errs, fmt.Errorf("kinds: unknown kind %q", k))
		}
	}
	if len(c.Sorters) == 0 {
		errs = append(errs, errors.New("sorters: at least one sorter is required"))
	}
	if c.Size < 0 || c.StringSize < 0 {
		errs = append(errs, errors.New("size: must not be negative"))
	}
	if c.StringWidth < 0 {
		errs = append(errs, errors.New("string_width: must not be negative"))
	}
	if c.Runs < 1 {
		errs = append(errs, errors.New("runs: must be at least 1"))
	}
	if c.Factors.Step <= 0 || math.IsNaN(c.Factors.Step) {
		errs = append(errs, errors.New("factors.step: must be positive"))
	}
	if c.Factors.From < 0 || c.Factors.To > 1 || c.Factors.From > c.Factors.To {
		errs = append(errs, fmt.Errorf("factors: need 0 <= from <= to <= 1, got %g..%g",
			c.Factors.From, c.Factors.To))
	}

	return errors.Join(errs...)
}

// FactorPermilles expands the sweep into integer thousandths so that
// repeated float addition cannot skip or duplicate the last factor.
func (c Config) FactorPermilles() []int {
	from := permille(c.Factors.From)
	to := permille(c.Factors.To)
	step := max(permille(c.Factors.Step), 1)

	var out []int
	for p := from; p <= to; p += step {
		out = append(out, p)
	}
	return out
}

// sizeFor returns the vector length used for kind.
func (c Config) sizeFor(kind string) int {
	if kind == KindString {
		return c.StringSize
	}
	return c.Size
}

// canonical returns c as a value the canon package can encode.
func (c Config) canonical() map[string]any {
	return map[string]any{
		"kinds":        c.Kinds,
		"size":         c.Size,
		"string_size":  c.StringSize,
		"string_width": c.StringWidth,
		"factors": map[string]any{
			"from_permille": permille(c.Factors.From),
			"to_permille":   permille(c.Factors.To),
			"step_permille": permille(c.Factors.Step),
		},
		"runs":    c.Runs,
		"seed":    c.Seed,
		"sorters": c.Sorters,
	}
}

func permille(f float64) int {
	return int(math.Round(f * 1000))
}

package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/dmsort"
)

// ErrInvalidScenario is wrapped by every load or validation failure.
var ErrInvalidScenario = errors.New("invalid scenario")

// Element kinds.
const (
	KindInt    = "int"
	KindString = "string"
	KindHandle = "handle"
)

// Sort orders.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Assertion types.
const (
	AssertSorted           = "sorted"
	AssertPermutation      = "permutation"
	AssertMatchesReference = "matches_reference"
	AssertStat             = "stat"
)

// Scenario is one sort to replay and check.
type Scenario struct {
	// Name identifies the scenario and names its golden file.
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	// Kind selects the element type. Defaults to int.
	Kind string `yaml:"kind,omitempty"`

	// Order is asc or desc. Defaults to asc.
	Order string `yaml:"order,omitempty"`

	// Engine forces an engine; auto picks by element type.
	Engine string `yaml:"engine,omitempty"`

	// Exactly one of Input and Generate is set.
	Input    []any     `yaml:"input,omitempty"`
	Generate *Generate `yaml:"generate,omitempty"`

	Expect     *Expect     `yaml:"expect,omitempty"`
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Generate describes a generated nearly sorted input.
type Generate struct {
	Size   int     `yaml:"size"`
	Factor float64 `yaml:"factor"`
	Seed   uint64  `yaml:"seed,omitempty"`
	Width  int     `yaml:"width,omitempty"` // string kind only; defaults to 8
}

// Expect holds the exact expected output.
type Expect struct {
	Output []any `yaml:"output"`
}

// Assertion is one check on the result.
type Assertion struct {
	Type  string `yaml:"type"`
	Stat  string `yaml:"stat,omitempty"`
	Op    string `yaml:"op,omitempty"`
	Value int    `yaml:"value,omitempty"`
}

const defaultStringWidth = 8

// LoadScenario reads, decodes and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	s, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseScenario decodes and validates scenario YAML.
//
// The document is decoded twice: strictly into Scenario so unknown fields
// are rejected, and generically so the CUE schema sees exactly what was
// written.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: parse YAML: %w", ErrInvalidScenario, err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse YAML: %w", ErrInvalidScenario, err)
	}
	if err := validateSchema(doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}

	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	return &s, nil
}

func (s *Scenario) applyDefaults() {
	if s.Kind == "" {
		s.Kind = KindInt
	}
	if s.Order == "" {
		s.Order = OrderAsc
	}
	if s.Engine == "" {
		s.Engine = dmsort.EngineAuto.String()
	}
	if s.Generate != nil && s.Generate.Width == 0 {
		s.Generate.Width = defaultStringWidth
	}
}

// Validate checks the rules the schema cannot express: input and generate
// are exclusive, and literal values match the element kind.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if _, err := dmsort.ParseEngine(s.Engine); err != nil {
		return err
	}

	switch {
	case s.Input != nil && s.Generate != nil:
		return errors.New("input and generate are mutually exclusive")
	case s.Input == nil && s.Generate == nil:
		return errors.New("one of input or generate is required")
	}

	if s.Input != nil {
		if err := checkValues("input", s.Kind, s.Input); err != nil {
			return err
		}
	}
	if s.Expect != nil {
		if err := checkValues("expect.output", s.Kind, s.Expect.Output); err != nil {
			return err
		}
	}

	for i, a := range s.Assertions {
		if a.Type == AssertStat {
			if _, ok := statFields[a.Stat]; !ok {
				return fmt.Errorf("assertions[%d]: unknown stat %q", i, a.Stat)
			}
			if _, ok := statOps[a.Op]; !ok {
				return fmt.Errorf("assertions[%d]: unknown op %q", i, a.Op)
			}
		}
	}
	return nil
}

// checkValues verifies that every literal has the Go type decoded YAML uses
// for kind: int for int and handle, string for string.
func checkValues(field, kind string, values []any) error {
	for i, v := range values {
		switch kind {
		case KindInt, KindHandle:
			if _, ok := v.(int); !ok {
				return fmt.Errorf("%s[%d]: %v is not an integer", field, i, v)
			}
		case KindString:
			if _, ok := v.(string); !ok {
				return fmt.Errorf("%s[%d]: %v is not a string", field, i, v)
			}
		default:
			return fmt.Errorf("unknown kind %q", kind)
		}
	}
	return nil
}

package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/varq/pkg/dim"
)

// DefaultTolerance is the relative tolerance used when a case sets none.
const DefaultTolerance = 1e-9

// Scenario defines one quantity and the cases it is evaluated on.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Unit declares the quantity's dimension. Required for inline
	// quantities; optional with Model, where it must agree with the model.
	Unit string `yaml:"unit,omitempty"`

	// Quantity is the inline value: a number, a unit string or a tagged
	// function.
	Quantity yaml.Node `yaml:"quantity,omitempty"`

	// Model is a CUE model directory, relative to the scenario file.
	Model string `yaml:"model,omitempty"`

	// Ref names the quantity inside Model.
	Ref string `yaml:"ref,omitempty"`

	Cases []Case `yaml:"cases"`
}

// Case is a single evaluation.
type Case struct {
	Name   string         `yaml:"name"`
	Inputs []dim.Quantity `yaml:"inputs"`
	Expect dim.Quantity   `yaml:"expect"`

	// Tolerance is relative to the expected value, or absolute when the
	// expected magnitude is below 1.
	Tolerance float64 `yaml:"tolerance,omitempty"`
}

func (s *Scenario) hasInlineQuantity() bool {
	return s.Quantity.Kind != 0
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
// A relative Model path is resolved against the file's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Model != "" && !filepath.IsAbs(scenario.Model) {
		scenario.Model = filepath.Join(filepath.Dir(path), scenario.Model)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadScenarios loads every .yaml and .yml file in dir, sorted by file name.
// It stops at the first file that does not load.
func LoadScenarios(dir string) ([]*Scenario, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch {
	case s.hasInlineQuantity() && s.Model != "":
		return fmt.Errorf("quantity and model are mutually exclusive")
	case s.hasInlineQuantity():
		if s.Unit == "" {
			return fmt.Errorf("unit is required with an inline quantity")
		}
	case s.Model != "":
		if s.Ref == "" {
			return fmt.Errorf("ref is required with model")
		}
	default:
		return fmt.Errorf("one of quantity or model is required")
	}

	if s.Unit != "" {
		if _, err := dim.ParseDimension(s.Unit); err != nil {
			return fmt.Errorf("unit: %w", err)
		}
	}

	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	for i, c := range s.Cases {
		if c.Name == "" {
			return fmt.Errorf("cases[%d]: name is required", i)
		}
		if c.Tolerance < 0 {
			return fmt.Errorf("cases[%d]: tolerance must not be negative", i)
		}
	}

	return nil
}

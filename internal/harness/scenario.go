package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/amida/internal/ladder"
)

// Scenario defines a ladder test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Ladder is a fixed board.
	Ladder *ladder.Ladder `yaml:"ladder,omitempty"`

	// LadderFile names a board on disk, in any format the loader reads.
	// Relative paths are resolved against the scenario file's directory.
	LadderFile string `yaml:"ladder_file,omitempty"`

	// Generate builds the board from a seeded generation request.
	Generate *GenerateStep `yaml:"generate,omitempty"`

	// Traces are expected paths for individual start columns.
	Traces []TraceExpect `yaml:"traces,omitempty"`

	// Assertions validate properties of the board and all of its paths.
	Assertions []Assertion `yaml:"assertions"`
}

// GenerateStep is a generation request with a fixed seed.
type GenerateStep struct {
	Columns      int      `yaml:"columns"`
	Levels       int      `yaml:"levels"`
	RungDensity  float64  `yaml:"rungDensity"`
	AutoDensity  bool     `yaml:"autoDensity"`
	BottomLabels []string `yaml:"bottomLabels,omitempty"`
	DefaultAtari bool     `yaml:"defaultAtari"`
	Seed         int64    `yaml:"seed"`
}

// Request converts the step into a generator request.
func (g GenerateStep) Request() ladder.GenerateRequest {
	return ladder.GenerateRequest{
		Columns:      g.Columns,
		Levels:       g.Levels,
		RungDensity:  g.RungDensity,
		AutoDensity:  g.AutoDensity,
		BottomLabels: g.BottomLabels,
		DefaultAtari: g.DefaultAtari,
	}
}

// TraceExpect is the expected outcome of tracing one start column.
type TraceExpect struct {
	// Start is the column the token is dropped at.
	Start int `yaml:"start"`

	// End is the expected final column. Nil skips the check.
	End *int `yaml:"end,omitempty"`

	// Path is the expected waypoint sequence. Empty skips the check.
	Path ladder.Path `yaml:"path,omitempty"`
}

// Assertion validates a property of the board.
type Assertion struct {
	// Type specifies the assertion type (see the Assert* constants).
	Type string `yaml:"type"`

	// Value is the expected count (used by levels, rung_count, winners).
	Value *int `yaml:"value,omitempty"`

	// Labels are the expected result labels (used by bottom).
	Labels []string `yaml:"labels,omitempty"`
}

// Assertion type constants.
const (
	AssertDisjoint    = "disjoint"
	AssertPermutation = "permutation"
	AssertIdentity    = "identity"
	AssertPathLength  = "path_length"
	AssertLevels      = "levels"
	AssertRungCount   = "rung_count"
	AssertBottom      = "bottom"
	AssertWinners     = "winners"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict fields catch typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Resolve the ladder file relative to the scenario BEFORE validation
	if scenario.LadderFile != "" && !filepath.IsAbs(scenario.LadderFile) {
		scenario.LadderFile = filepath.Join(filepath.Dir(path), scenario.LadderFile)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	sources := 0
	if s.Ladder != nil {
		sources++
	}
	if s.LadderFile != "" {
		sources++
		if _, err := os.Stat(s.LadderFile); os.IsNotExist(err) {
			return fmt.Errorf("ladder file not found: %s", s.LadderFile)
		}
	}
	if s.Generate != nil {
		sources++
	}
	if sources != 1 {
		return fmt.Errorf("exactly one of ladder, ladder_file and generate is required, got %d", sources)
	}

	if len(s.Traces) == 0 && len(s.Assertions) == 0 {
		return fmt.Errorf("traces or assertions are required")
	}

	for i, tr := range s.Traces {
		if tr.End == nil && len(tr.Path) == 0 {
			return fmt.Errorf("traces[%d]: end or path is required", i)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertDisjoint, AssertPermutation, AssertIdentity, AssertPathLength:
	case AssertLevels, AssertRungCount, AssertWinners:
		if a.Value == nil {
			return fmt.Errorf("assertions[%d]: value is required for %s", index, a.Type)
		}
		if *a.Value < 0 {
			return fmt.Errorf("assertions[%d]: value must be non-negative for %s", index, a.Type)
		}
	case AssertBottom:
		if len(a.Labels) == 0 {
			return fmt.Errorf("assertions[%d]: labels list is required for bottom", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}

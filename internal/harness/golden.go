package harness

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/amida/internal/ladder"
)

// Snapshot captures a scenario's board and every traced path.
type Snapshot struct {
	ScenarioName string        `json:"scenario_name"`
	ID           string        `json:"id"`
	Ladder       ladder.Ladder `json:"ladder"`
	Traces       []TraceRecord `json:"traces"`
}

// MarshalSnapshot renders the golden form of a result: indented JSON with
// rungs in (level, leftColumn) order and empty lists written as [].
func MarshalSnapshot(scenarioName string, result *Result) ([]byte, error) {
	l := result.Ladder
	l.Rungs = ladder.SortRungs(l.Rungs)
	if l.Rungs == nil {
		l.Rungs = []ladder.Rung{}
	}
	if l.Top == nil {
		l.Top = []string{}
	}
	if l.Bottom == nil {
		l.Bottom = []string{}
	}

	snapshot := Snapshot{
		ScenarioName: scenarioName,
		ID:           result.ID,
		Ladder:       l,
		Traces:       result.Traces,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RunWithGolden executes a scenario and compares the snapshot against a
// golden file stored in testdata/scenarios/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares the given result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := MarshalSnapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/scenarios/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}

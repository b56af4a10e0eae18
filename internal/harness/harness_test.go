package harness

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/amida/internal/ladder"
)

func intPtr(n int) *int { return &n }

func TestRun_Scenarios(t *testing.T) {
	files, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			scenario, err := LoadScenario(file)
			require.NoError(t, err)

			result, err := Run(scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
			assert.Len(t, result.Traces, result.Ladder.Columns)
		})
	}
}

func TestRunWithGolden(t *testing.T) {
	for _, name := range []string{
		"three_column_single_rung",
		"two_column_double_rung",
		"generate_defaults_no_rungs",
		"four_column_board",
	} {
		t.Run(name, func(t *testing.T) {
			scenario, err := LoadScenario(filepath.Join("testdata/scenarios", name+".yaml"))
			require.NoError(t, err)

			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestRun_ReportsTraceMismatch(t *testing.T) {
	scenario := &Scenario{
		Name:        "wrong_end",
		Description: "Expects the wrong column",
		Ladder: &ladder.Ladder{
			Columns: 3,
			Levels:  1,
			Rungs:   []ladder.Rung{{Level: 0, LeftColumn: 0}},
		},
		Traces: []TraceExpect{
			{Start: 0, End: intPtr(2)},
			{Start: 2, Path: ladder.Path{{X: 2, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "start 0 ends at 2")
	assert.Contains(t, result.Errors[0], "ends at 1")
	assert.Contains(t, result.Errors[1], "(2,0) (2,1)")
}

func TestRun_ReportsOutOfRangeTrace(t *testing.T) {
	scenario := &Scenario{
		Name:        "bad_start",
		Description: "Start outside the board",
		Ladder:      &ladder.Ladder{Columns: 2, Levels: 1},
		Traces:      []TraceExpect{{Start: 5, End: intPtr(5)}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors[0], "OUT_OF_RANGE")
}

func TestRun_CorruptLadderIsAnError(t *testing.T) {
	scenario := &Scenario{
		Name:        "corrupt",
		Description: "Adjacent rungs at one level",
		Ladder: &ladder.Ladder{
			Columns: 3,
			Levels:  1,
			Rungs:   []ladder.Rung{{Level: 0, LeftColumn: 0}, {Level: 0, LeftColumn: 1}},
		},
		Assertions: []Assertion{{Type: AssertDisjoint}},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.True(t, ladder.IsCorruptLadder(err))
}

func TestRun_InvalidGenerateRequest(t *testing.T) {
	scenario := &Scenario{
		Name:        "one_column",
		Description: "Too few columns",
		Generate:    &GenerateStep{Columns: 1, Seed: 1},
		Assertions:  []Assertion{{Type: AssertDisjoint}},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.True(t, ladder.IsInvalidRequest(err))
}

func TestRun_SeedIsDeterministic(t *testing.T) {
	scenario := &Scenario{
		Name:        "seeded",
		Description: "Same seed, same board",
		Generate:    &GenerateStep{Columns: 6, Levels: 18, RungDensity: 0.7, Seed: 99},
		Assertions:  []Assertion{{Type: AssertDisjoint}, {Type: AssertPermutation}},
	}

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	assert.Equal(t, first.Ladder, second.Ladder)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Traces, second.Traces)
}

func TestHarness_PolicyLabels(t *testing.T) {
	h := New(ladder.Policy{WinLabel: "WIN", LoseLabel: "LOSE"})
	scenario := &Scenario{
		Name:        "custom_labels",
		Description: "Policy labels flow through",
		Generate:    &GenerateStep{Columns: 3, Levels: 2, Seed: 5},
		Assertions: []Assertion{
			{Type: AssertBottom, Labels: []string{"WIN", "LOSE", "LOSE"}},
			{Type: AssertWinners, Value: intPtr(1)},
		},
	}

	result, err := h.Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestMarshalSnapshot_SortsRungsAndFillsEmptyLists(t *testing.T) {
	result := &Result{
		Ladder: ladder.Ladder{
			Columns: 3,
			Levels:  2,
			Rungs:   []ladder.Rung{{Level: 1, LeftColumn: 1}, {Level: 0, LeftColumn: 0}},
		},
		ID:     "id",
		Traces: []TraceRecord{},
	}

	data, err := MarshalSnapshot("snap", result)
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"top": []`)
	assert.Contains(t, s, `"bottom": []`)
	assert.Less(t, strings.Index(s, `"level": 0`), strings.Index(s, `"level": 1`))
	assert.Equal(t, ladder.Rung{Level: 1, LeftColumn: 1}, result.Ladder.Rungs[0], "input must not be reordered")
}

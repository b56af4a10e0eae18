package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scenariosDir = filepath.Join("..", "harness", "testdata", "scenarios")

func TestTestCommand_AllScenariosPass(t *testing.T) {
	out, err := execute(t, "test", scenariosDir)
	require.NoError(t, err, out)

	assert.Contains(t, out, "✓ three_column_single_rung\n")
	assert.Contains(t, out, "✓ four_column_board\n")
	assert.Contains(t, out, "Test Summary: 6 passed, 0 failed, 6 total")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestTestCommand_Filter(t *testing.T) {
	out, err := execute(t, "--format", "json", "test", scenariosDir, "--filter", "three_*")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 1, resp.Data.Total)
	require.Len(t, resp.Data.Scenarios, 1)
	assert.Equal(t, "three_column_single_rung", resp.Data.Scenarios[0].Name)
}

func TestTestCommand_NoMatches(t *testing.T) {
	out, err := execute(t, "test", scenariosDir, "--filter", "nothing_*")
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found.")
}

func TestTestCommand_UpdateWritesGolden(t *testing.T) {
	dir := t.TempDir()
	src, err := os.ReadFile(filepath.Join(scenariosDir, "three_column_single_rung.yaml"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "three_column_single_rung.yaml"), src, 0o644))

	out, err := execute(t, "test", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ three_column_single_rung (golden updated)")

	got, err := os.ReadFile(filepath.Join(dir, "golden", "three_column_single_rung.golden"))
	require.NoError(t, err)
	want, err := os.ReadFile(filepath.Join(scenariosDir, "golden", "three_column_single_rung.golden"))
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))

	// A second run compares against the freshly written file.
	_, err = execute(t, "test", dir)
	require.NoError(t, err)
}

func TestTestCommand_GoldenMismatch(t *testing.T) {
	dir := t.TempDir()
	src, err := os.ReadFile(filepath.Join(scenariosDir, "three_column_single_rung.yaml"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "three_column_single_rung.yaml"), src, 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "golden"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "golden", "three_column_single_rung.golden"), []byte("{}\n"), 0o644))

	out, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "snapshot does not match golden file")
}

func TestTestCommand_FailingScenario(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wrong_end.yaml"), []byte(`name: wrong_end
ladder:
  columns: 2
  levels: 1
  rungs: [{level: 0, leftColumn: 0}]
traces:
  - start: 0
    end: 0
`), 0o644))

	out, err := execute(t, "--format", "json", "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
		Error  *CLIError  `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, 1, resp.Data.Failed)
	assert.NotEmpty(t, resp.Data.Scenarios[0].Errors)
}

func TestTestCommand_MissingDir(t *testing.T) {
	_, err := execute(t, "test", filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

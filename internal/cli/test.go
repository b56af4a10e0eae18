package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/amida/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update bool   // regenerate golden files
	Filter string // scenario filter (glob pattern)
}

// ScenarioResult holds the result of a single scenario execution.
type ScenarioResult struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

// TestResult holds the overall test result.
type TestResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run ladder scenarios",
		Long: `Run ladder scenarios with the harness.

Each YAML scenario builds a board (inline, from a ladder file, or generated
from a seed), traces every start column and checks the expected traces and
assertions. When <scenarios-dir>/golden/<name>.golden exists the snapshot
must match it byte for byte.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, etc.)

Examples:
  amida test ./scenarios
  amida test ./scenarios --filter "three_*"
  amida test ./scenarios --update
  amida test ./scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")

	return cmd
}

func runTests(opts *TestOptions, scenariosDir string, cmd *cobra.Command) error {
	if _, err := os.Stat(scenariosDir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("scenarios directory not found: %s", scenariosDir))
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	h := harness.New(cfg.Policy())

	scenarioFiles, err := findScenarioFiles(scenariosDir, opts.Filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to find scenarios", err)
	}

	if len(scenarioFiles) == 0 {
		if opts.Format == "json" {
			return outputTestJSON(cmd, TestResult{
				Scenarios: []ScenarioResult{},
				Total:     0,
			})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No scenarios found.")
		return nil
	}

	result := TestResult{
		Scenarios: make([]ScenarioResult, 0, len(scenarioFiles)),
		Total:     len(scenarioFiles),
	}

	for _, scenarioFile := range scenarioFiles {
		scenResult := runScenario(h, scenarioFile, opts, cmd)
		result.Scenarios = append(result.Scenarios, scenResult)

		if scenResult.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if opts.Format == "json" {
		return outputTestJSON(cmd, result)
	}

	return outputTestText(cmd, result)
}

// findScenarioFiles finds all YAML scenario files in a directory.
func findScenarioFiles(dir string, filter string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(path), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})

	return files, err
}

// runScenario executes a single scenario and returns the result.
func runScenario(h *harness.Harness, scenarioFile string, opts *TestOptions, cmd *cobra.Command) ScenarioResult {
	scenario, err := harness.LoadScenario(scenarioFile)
	if err != nil {
		return fail(opts, cmd, filepath.Base(scenarioFile), fmt.Sprintf("failed to load scenario: %v", err))
	}

	result, err := h.Run(scenario)
	if err != nil {
		return fail(opts, cmd, scenario.Name, fmt.Sprintf("execution failed: %v", err))
	}

	snapshot, err := harness.MarshalSnapshot(scenario.Name, result)
	if err != nil {
		return fail(opts, cmd, scenario.Name, fmt.Sprintf("failed to marshal snapshot: %v", err))
	}

	goldenPath := goldenFilePath(scenarioFile)
	if opts.Update {
		if err := writeGolden(goldenPath, snapshot); err != nil {
			return fail(opts, cmd, scenario.Name, fmt.Sprintf("failed to update golden file: %v", err))
		}
		if !result.Pass {
			return fail(opts, cmd, scenario.Name, result.Errors...)
		}
		return pass(opts, cmd, scenario.Name, " (golden updated)")
	}

	if golden, err := os.ReadFile(goldenPath); err == nil {
		if !bytes.Equal(golden, snapshot) {
			return fail(opts, cmd, scenario.Name, "snapshot does not match golden file (run with --update to regenerate)")
		}
	} else if !os.IsNotExist(err) {
		return fail(opts, cmd, scenario.Name, fmt.Sprintf("golden comparison failed: %v", err))
	}

	if !result.Pass {
		return fail(opts, cmd, scenario.Name, result.Errors...)
	}
	return pass(opts, cmd, scenario.Name, "")
}

func pass(opts *TestOptions, cmd *cobra.Command, name, note string) ScenarioResult {
	if opts.Format != "json" {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s%s\n", name, note)
	}
	return ScenarioResult{Name: name, Pass: true}
}

func fail(opts *TestOptions, cmd *cobra.Command, name string, errs ...string) ScenarioResult {
	if opts.Format != "json" {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "✗ %s\n", name)
		for _, e := range errs {
			fmt.Fprintf(w, "  %s\n", e)
		}
	}
	return ScenarioResult{Name: name, Pass: false, Errors: errs}
}

// goldenFilePath returns the path to the golden file for a scenario.
func goldenFilePath(scenarioFile string) string {
	dir := filepath.Dir(scenarioFile)
	base := filepath.Base(scenarioFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, "golden", name+".golden")
}

func writeGolden(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// outputTestJSON outputs the test result as JSON.
func outputTestJSON(cmd *cobra.Command, result TestResult) error {
	status := "ok"
	if result.Failed > 0 {
		status = "error"
	}

	response := CLIResponse{
		Status: status,
		Data:   result,
	}

	if result.Failed > 0 {
		response.Error = &CLIError{
			Code:    "E_TEST_FAILED",
			Message: fmt.Sprintf("%d scenario(s) failed", result.Failed),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", result.Failed))
	}
	return nil
}

// outputTestText outputs the test result as text.
func outputTestText(cmd *cobra.Command, result TestResult) error {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Test Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", result.Failed))
	}

	fmt.Fprintln(w, "✓ All scenarios passed")
	return nil
}

package harness

import (
	"fmt"

	"github.com/roach88/amida/internal/ladder"
	"github.com/roach88/amida/internal/loader"
)

// Harness runs scenarios against a generator policy.
type Harness struct {
	policy ladder.Policy
}

// New creates a harness whose generated boards follow policy.
func New(policy ladder.Policy) *Harness {
	return &Harness{policy: policy.WithDefaults()}
}

// Run executes a scenario with the default policy.
func Run(scenario *Scenario) (*Result, error) {
	return New(ladder.DefaultPolicy()).Run(scenario)
}

// Run executes a test scenario and returns the result.
//
// Execution flow:
// 1. Build the board (inline, from file, or generated from the seed)
// 2. Trace every start column
// 3. Check trace expectations
// 4. Evaluate assertions
//
// An error is returned only when the board cannot be built or traced;
// failed expectations are reported in the result.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	l, err := h.board(scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to build ladder: %w", err)
	}

	paths, err := ladder.TraceAll(l)
	if err != nil {
		return nil, fmt.Errorf("failed to trace ladder: %w", err)
	}

	id, err := ladder.ID(l)
	if err != nil {
		return nil, err
	}

	result := NewResult()
	result.Ladder = l
	result.ID = id
	for start, p := range paths {
		result.Traces = append(result.Traces, TraceRecord{Start: start, End: p.End(), Path: p})
	}

	for _, msg := range checkTraces(l, scenario.Traces) {
		result.AddError(msg)
	}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, h.policy.WinLabel) {
		result.AddError(msg)
	}

	return result, nil
}

func (h *Harness) board(s *Scenario) (ladder.Ladder, error) {
	switch {
	case s.Ladder != nil:
		if err := ladder.Validate(*s.Ladder); err != nil {
			return ladder.Ladder{}, err
		}
		return *s.Ladder, nil
	case s.LadderFile != "":
		return loader.LoadLadder(s.LadderFile)
	case s.Generate != nil:
		gen := ladder.NewSeededGenerator(s.Generate.Seed, h.policy)
		return gen.Generate(s.Generate.Request())
	default:
		return ladder.Ladder{}, fmt.Errorf("scenario %q has no ladder", s.Name)
	}
}

// checkTraces compares the expected traces with fresh traces of l.
func checkTraces(l ladder.Ladder, expects []TraceExpect) []string {
	var errs []string
	for i, exp := range expects {
		path, err := ladder.Trace(l, exp.Start)
		if err != nil {
			errs = append(errs, fmt.Sprintf("traces[%d]: %v", i, err))
			continue
		}
		if exp.End != nil && path.End() != *exp.End {
			errs = append(errs, (&AssertionError{
				Type:     fmt.Sprintf("traces[%d]", i),
				Expected: fmt.Sprintf("start %d ends at %d", exp.Start, *exp.End),
				Actual:   fmt.Sprintf("ends at %d", path.End()),
			}).Error())
		}
		if len(exp.Path) > 0 && !pathsEqual(path, exp.Path) {
			errs = append(errs, (&AssertionError{
				Type:     fmt.Sprintf("traces[%d]", i),
				Expected: formatPath(exp.Path),
				Actual:   formatPath(path),
			}).Error())
		}
	}
	return errs
}

func pathsEqual(a, b ladder.Path) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

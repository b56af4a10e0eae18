package harness

import "github.com/roach88/amida/internal/ladder"

// TraceRecord is the traced path of one start column.
type TraceRecord struct {
	Start int         `json:"start"`
	End   int         `json:"end"`
	Path  ladder.Path `json:"path"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every trace expectation and assertion holds.
	Pass bool `json:"pass"`

	// Ladder is the board the scenario ran against.
	Ladder ladder.Ladder `json:"ladder"`

	// ID is the content ID of Ladder.
	ID string `json:"id"`

	// Traces holds the path of every start column, indexed by start.
	Traces []TraceRecord `json:"traces"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Traces: []TraceRecord{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

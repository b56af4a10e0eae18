package cli

import (
	"errors"
	"fmt"

	"github.com/roach88/amida/internal/loader"
)

// Process exit codes.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // corrupt ladder, failed scenario
	ExitCommandError = 2 // bad flags, unreadable files or config
)

// ExitError carries the exit code a command failed with.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError without a cause.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError creates an ExitError wrapping err.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode returns the exit code carried by err. Errors that are not an
// ExitError (cobra flag parsing, for one) exit with ExitFailure.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// exitCodeFor maps a CLI error code to an exit code: a ladder that breaks
// its invariants is a validation failure, everything else a command error.
func exitCodeFor(code string) int {
	if code == loader.ErrCodeCorruptLadder {
		return ExitFailure
	}
	return ExitCommandError
}

// reportError writes err through the formatter and returns the matching
// ExitError.
func reportError(f *OutputFormatter, message string, err error) error {
	code := loader.CodeFor(err)
	_ = f.Error(code, fmt.Sprintf("%s: %v", message, err), nil)
	return WrapExitError(exitCodeFor(code), fmt.Sprintf("%s: %s", code, message), err)
}

package ladder

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes ladder errors.
type ErrorCode string

const (
	// CodeInvalidRequest indicates malformed generation parameters.
	CodeInvalidRequest ErrorCode = "INVALID_REQUEST"

	// CodeOutOfRange indicates a trace start index outside [0, columns).
	CodeOutOfRange ErrorCode = "OUT_OF_RANGE"

	// CodeCorruptLadder indicates a ladder whose shape or rung set breaks
	// the structural invariants.
	CodeCorruptLadder ErrorCode = "CORRUPT_LADDER"
)

// Error is a labeled failure returned by the generator and the tracer.
//
// Field names the offending input (e.g. "columns", "rungs[3]") and
// Constraint the rule it broke, so callers can build a user-facing message
// without parsing Error().
type Error struct {
	Code       ErrorCode
	Field      string
	Constraint string
}

// Sentinels for errors.Is. They match any *Error with the same code.
var (
	ErrInvalidRequest = &Error{Code: CodeInvalidRequest}
	ErrOutOfRange     = &Error{Code: CodeOutOfRange}
	ErrCorruptLadder  = &Error{Code: CodeCorruptLadder}
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Constraint)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Constraint)
}

// Is matches a target *Error by code, and by field when the target sets one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Code != e.Code {
		return false
	}
	return t.Field == "" || t.Field == e.Field
}

// IsInvalidRequest returns true if err is an INVALID_REQUEST error.
func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

// IsOutOfRange returns true if err is an OUT_OF_RANGE error.
func IsOutOfRange(err error) bool {
	return errors.Is(err, ErrOutOfRange)
}

// IsCorruptLadder returns true if err is a CORRUPT_LADDER error.
func IsCorruptLadder(err error) bool {
	return errors.Is(err, ErrCorruptLadder)
}

// AsError extracts the *Error from err, if any.
func AsError(err error) (*Error, bool) {
	var le *Error
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}

func invalidRequest(field, format string, args ...any) *Error {
	return &Error{Code: CodeInvalidRequest, Field: field, Constraint: fmt.Sprintf(format, args...)}
}

func outOfRange(field, format string, args ...any) *Error {
	return &Error{Code: CodeOutOfRange, Field: field, Constraint: fmt.Sprintf(format, args...)}
}

func corrupt(field, format string, args ...any) *Error {
	return &Error{Code: CodeCorruptLadder, Field: field, Constraint: fmt.Sprintf(format, args...)}
}

package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/amida/internal/ladder"
)

// Schema is the CUE definition every ladder struct is unified with.
const Schema = `
#Rung: {
	level:      int & >=0
	leftColumn: int & >=0
}

#Ladder: {
	columns: int & >=2
	levels:  int & >=1
	rungs:   *[] | [...#Rung]
	top?: [...string]
	bottom?: [...string]
}
`

// CompileLadderSource compiles CUE source and returns its `ladder` struct.
// filename is only used in error positions.
func CompileLadderSource(src []byte, filename string) (*ladder.Ladder, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	ladderVal := v.LookupPath(cue.ParsePath("ladder"))
	if !ladderVal.Exists() {
		return nil, &CompileError{
			Field:   "ladder",
			Message: "top-level ladder struct is required",
			Pos:     token.NoPos,
		}
	}
	return CompileLadder(ladderVal)
}

// CompileLadder parses a CUE value into a Ladder.
// Uses the CUE SDK's Go API directly (not a CLI subprocess).
//
// The value should be the ladder struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`ladder: { columns: 3, levels: 1 }`)
//	l, err := CompileLadder(v.LookupPath(cue.ParsePath("ladder")))
func CompileLadder(v cue.Value) (*ladder.Ladder, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	src := v
	schema := v.Context().CompileString(Schema, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile ladder schema: %w", err)
	}
	v = schema.LookupPath(cue.ParsePath("#Ladder")).Unify(v)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	l := &ladder.Ladder{}
	var err error

	if l.Columns, err = intField(v, "columns"); err != nil {
		return nil, err
	}
	if l.Levels, err = intField(v, "levels"); err != nil {
		return nil, err
	}

	if err := parseRungs(v, l); err != nil {
		return nil, err
	}

	if l.Top, err = stringsField(v, "top"); err != nil {
		return nil, err
	}
	if l.Bottom, err = stringsField(v, "bottom"); err != nil {
		return nil, err
	}

	if err := ladder.Validate(*l); err != nil {
		return nil, positionValidationError(err, src)
	}
	return l, nil
}

func parseRungs(v cue.Value, l *ladder.Ladder) error {
	rungsVal := v.LookupPath(cue.ParsePath("rungs"))
	if !rungsVal.Exists() {
		return nil
	}

	iter, err := rungsVal.List()
	if err != nil {
		return formatCUEError(err)
	}

	for iter.Next() {
		rv := iter.Value()
		level, err := intField(rv, "level")
		if err != nil {
			return err
		}
		left, err := intField(rv, "leftColumn")
		if err != nil {
			return err
		}
		l.Rungs = append(l.Rungs, ladder.Rung{Level: level, LeftColumn: left})
	}
	return nil
}

func intField(v cue.Value, name string) (int, error) {
	fv := v.LookupPath(cue.ParsePath(name))
	if !fv.Exists() {
		return 0, &CompileError{Field: name, Message: name + " is required", Pos: v.Pos()}
	}
	n, err := fv.Int64()
	if err != nil {
		return 0, formatCUEError(err)
	}
	return int(n), nil
}

func stringsField(v cue.Value, name string) ([]string, error) {
	fv := v.LookupPath(cue.ParsePath(name))
	if !fv.Exists() {
		return nil, nil
	}
	iter, err := fv.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var out []string
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		out = append(out, s)
	}
	return out, nil
}

// positionValidationError attaches the source position of the offending
// field to a ladder validation error. src is the value before schema
// unification so positions point into the user's file.
func positionValidationError(err error, src cue.Value) error {
	le, ok := ladder.AsError(err)
	if !ok {
		return err
	}

	pos := src.Pos()
	var idx int
	if _, scanErr := fmt.Sscanf(le.Field, "rungs[%d]", &idx); scanErr == nil {
		if rv := src.LookupPath(cue.MakePath(cue.Str("rungs"), cue.Index(idx))); rv.Exists() {
			pos = rv.Pos()
		}
	} else if fv := src.LookupPath(cue.ParsePath(le.Field)); fv.Exists() {
		pos = fv.Pos()
	}

	return &CompileError{
		Field:   le.Field,
		Message: le.Constraint,
		Pos:     pos,
		Err:     err,
	}
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
	Err     error
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap exposes the underlying ladder error, if any.
func (e *CompileError) Unwrap() error {
	return e.Err
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}

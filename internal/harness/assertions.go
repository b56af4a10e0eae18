package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/amida/internal/ladder"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// EvaluateAssertions runs every assertion against result and returns the
// failure messages. winLabel is used by the winners assertion.
func EvaluateAssertions(result *Result, assertions []Assertion, winLabel string) []string {
	var errs []string
	for _, a := range assertions {
		if err := evaluate(result, a, winLabel); err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

func evaluate(r *Result, a Assertion, winLabel string) error {
	l := r.Ladder
	switch a.Type {
	case AssertDisjoint:
		return assertDisjoint(l)
	case AssertPermutation:
		return assertPermutation(r)
	case AssertIdentity:
		return assertIdentity(r)
	case AssertPathLength:
		return assertPathLength(r)
	case AssertLevels:
		return expectCount(a, "levels", l.Levels)
	case AssertRungCount:
		return expectCount(a, "rung_count", len(l.Rungs))
	case AssertBottom:
		if !slices.Equal(l.Bottom, a.Labels) {
			return &AssertionError{
				Type:     AssertBottom,
				Expected: fmt.Sprintf("%q", a.Labels),
				Actual:   fmt.Sprintf("%q", l.Bottom),
			}
		}
		return nil
	case AssertWinners:
		n := 0
		for _, b := range l.Bottom {
			if b == winLabel {
				n++
			}
		}
		return expectCount(a, "winners", n)
	default:
		return fmt.Errorf("unknown assertion type: %s", a.Type)
	}
}

func expectCount(a Assertion, name string, got int) error {
	if got != *a.Value {
		return &AssertionError{
			Type:     name,
			Expected: fmt.Sprintf("%d", *a.Value),
			Actual:   fmt.Sprintf("%d", got),
		}
	}
	return nil
}

// assertDisjoint checks the rung set independently of ladder.Validate.
func assertDisjoint(l ladder.Ladder) error {
	for i, a := range l.Rungs {
		for j := i + 1; j < len(l.Rungs); j++ {
			b := l.Rungs[j]
			if a.Level != b.Level {
				continue
			}
			if a.Touches(b.LeftColumn) || a.Touches(b.RightColumn()) {
				return &AssertionError{
					Type:     AssertDisjoint,
					Expected: "no two rungs at one level share a column",
					Actual:   fmt.Sprintf("rungs[%d] %+v and rungs[%d] %+v conflict", i, a, j, b),
				}
			}
		}
	}
	return nil
}

func assertPermutation(r *Result) error {
	seen := make([]bool, r.Ladder.Columns)
	for _, tr := range r.Traces {
		if tr.End < 0 || tr.End >= len(seen) || seen[tr.End] {
			return &AssertionError{
				Type:     AssertPermutation,
				Expected: fmt.Sprintf("every column in [0, %d) reached exactly once", len(seen)),
				Actual:   fmt.Sprintf("column %d reached again from start %d", tr.End, tr.Start),
			}
		}
		seen[tr.End] = true
	}
	return nil
}

func assertIdentity(r *Result) error {
	for _, tr := range r.Traces {
		if tr.End != tr.Start {
			return &AssertionError{
				Type:     AssertIdentity,
				Expected: fmt.Sprintf("start %d ends at %d", tr.Start, tr.Start),
				Actual:   fmt.Sprintf("ends at %d", tr.End),
			}
		}
	}
	return nil
}

func assertPathLength(r *Result) error {
	lo, hi := r.Ladder.Levels+1, 2*r.Ladder.Levels+1
	for _, tr := range r.Traces {
		if n := len(tr.Path); n < lo || n > hi {
			return &AssertionError{
				Type:     AssertPathLength,
				Expected: fmt.Sprintf("between %d and %d waypoints", lo, hi),
				Actual:   fmt.Sprintf("start %d has %d", tr.Start, n),
			}
		}
	}
	return nil
}

func formatPath(p ladder.Path) string {
	parts := make([]string, len(p))
	for i, w := range p {
		parts[i] = fmt.Sprintf("(%d,%d)", w.X, w.Y)
	}
	return strings.Join(parts, " ")
}

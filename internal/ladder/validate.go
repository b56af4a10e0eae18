package ladder

import "fmt"

// MaxGridCells bounds columns*levels. A full trace of a ladder holds
// about 2*columns*levels waypoints, so larger grids are refused up front.
const MaxGridCells = 1 << 22

// CheckShape verifies the grid dimensions of a ladder.
func CheckShape(columns, levels int) error {
	if columns < 2 {
		return corrupt("columns", "must be at least 2, got %d", columns)
	}
	if levels < 1 {
		return corrupt("levels", "must be at least 1, got %d", levels)
	}
	if !gridFits(columns, levels) {
		return corrupt("levels", "grid of %d columns by %d levels exceeds %d cells", columns, levels, MaxGridCells)
	}
	return nil
}

// gridFits reports whether columns*levels <= MaxGridCells without
// overflowing. Both arguments must be positive.
func gridFits(columns, levels int) bool {
	return columns <= MaxGridCells/levels
}

// Validate checks every structural invariant of l: grid shape, rung bounds,
// the disjointness invariant and label counts. Labels may be omitted
// entirely (a replayed trace request carries none) but, when present, must
// have one entry per column.
func Validate(l Ladder) error {
	if err := validateRungs(l.Columns, l.Levels, l.Rungs); err != nil {
		return err
	}
	if len(l.Top) != 0 && len(l.Top) != l.Columns {
		return corrupt("top", "has %d labels for %d columns", len(l.Top), l.Columns)
	}
	if len(l.Bottom) != 0 && len(l.Bottom) != l.Columns {
		return corrupt("bottom", "has %d labels for %d columns", len(l.Bottom), l.Columns)
	}
	return nil
}

// validateRungs checks shape, bounds and disjointness. Each rung claims both
// columns it touches at its level; a second claim on the same (level, column)
// is a conflict, which also catches duplicate rungs.
func validateRungs(columns, levels int, rungs []Rung) error {
	if err := CheckShape(columns, levels); err != nil {
		return err
	}

	claimed := make(map[[2]int]int, 2*len(rungs))
	for i, r := range rungs {
		field := fmt.Sprintf("rungs[%d]", i)
		if r.Level < 0 || r.Level >= levels {
			return corrupt(field, "level %d outside [0, %d)", r.Level, levels)
		}
		if r.LeftColumn < 0 || r.LeftColumn >= columns-1 {
			return corrupt(field, "leftColumn %d outside [0, %d)", r.LeftColumn, columns-1)
		}
		for _, c := range []int{r.LeftColumn, r.RightColumn()} {
			key := [2]int{r.Level, c}
			if prev, ok := claimed[key]; ok {
				return corrupt(field, "column %d already joined by rungs[%d] at level %d", c, prev, r.Level)
			}
			claimed[key] = i
		}
	}
	return nil
}

package ladder

// tracer is a validated, indexed view of a ladder's rungs.
// joins holds {level, left} for every rung joining left and left+1, so its
// size follows the rung count rather than the grid.
type tracer struct {
	columns int
	levels  int
	joins   map[[2]int]struct{}
}

func newTracer(columns, levels int, rungs []Rung) (*tracer, error) {
	if err := validateRungs(columns, levels, rungs); err != nil {
		return nil, err
	}
	t := &tracer{
		columns: columns,
		levels:  levels,
		joins:   make(map[[2]int]struct{}, len(rungs)),
	}
	for _, r := range rungs {
		t.joins[[2]int{r.Level, r.LeftColumn}] = struct{}{}
	}
	return t, nil
}

func (t *tracer) joined(level, left int) bool {
	if left < 0 || left >= t.columns-1 {
		return false
	}
	_, ok := t.joins[[2]int{level, left}]
	return ok
}

// step returns the column after crossing level from column c. Disjointness
// guarantees at most one of the two rungs exists.
func (t *tracer) step(level, c int) int {
	switch {
	case t.joined(level, c):
		return c + 1
	case t.joined(level, c-1):
		return c - 1
	default:
		return c
	}
}

func (t *tracer) checkStart(start int) error {
	if start < 0 || start >= t.columns {
		return outOfRange("start", "must be within [0, %d), got %d", t.columns, start)
	}
	return nil
}

func (t *tracer) path(start int) Path {
	path := make(Path, 0, 2*t.levels+1)
	c := start
	path = append(path, Waypoint{X: c, Y: 0})
	for level := 0; level < t.levels; level++ {
		if next := t.step(level, c); next != c {
			c = next
			path = append(path, Waypoint{X: c, Y: level})
		}
		path = append(path, Waypoint{X: c, Y: level + 1})
	}
	return path
}

func (t *tracer) final(start int) int {
	c := start
	for level := 0; level < t.levels; level++ {
		c = t.step(level, c)
	}
	return c
}

// Trace returns the path a token dropped at column start follows to the
// bottom of l.
//
// The path begins at (start, 0) and ends at (final, Levels). Each level adds
// one descent waypoint, plus one jog waypoint when a rung moves the token, so
// a path has between Levels+1 and 2*Levels+1 waypoints.
//
// Trace never mutates l. It fails with OUT_OF_RANGE for a bad start and with
// CORRUPT_LADDER when l breaks the structural invariants; it never picks
// between conflicting rungs.
func Trace(l Ladder, start int) (Path, error) {
	t, err := newTracer(l.Columns, l.Levels, l.Rungs)
	if err != nil {
		return nil, err
	}
	if err := t.checkStart(start); err != nil {
		return nil, err
	}
	return t.path(start), nil
}

// TraceAll traces every start column of l, indexed by start.
func TraceAll(l Ladder) ([]Path, error) {
	t, err := newTracer(l.Columns, l.Levels, l.Rungs)
	if err != nil {
		return nil, err
	}
	paths := make([]Path, l.Columns)
	for start := range paths {
		paths[start] = t.path(start)
	}
	return paths, nil
}

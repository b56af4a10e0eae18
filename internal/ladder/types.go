package ladder

// Rung is a horizontal connector joining LeftColumn and LeftColumn+1 at Level.
type Rung struct {
	Level      int `json:"level" yaml:"level"`
	LeftColumn int `json:"leftColumn" yaml:"leftColumn"`
}

// RightColumn returns the column joined on the right-hand side.
func (r Rung) RightColumn() int {
	return r.LeftColumn + 1
}

// Touches reports whether the rung is attached to column c.
func (r Rung) Touches(c int) bool {
	return c == r.LeftColumn || c == r.LeftColumn+1
}

// Ladder is one instance of the game board.
//
// Columns, Levels and Rungs are fixed once the ladder is generated. Top holds
// the entry names and may be edited by the caller at any time; Bottom holds
// the results and is fixed at generation.
type Ladder struct {
	Columns int      `json:"columns" yaml:"columns"`
	Levels  int      `json:"levels" yaml:"levels"`
	Rungs   []Rung   `json:"rungs" yaml:"rungs"`
	Top     []string `json:"top" yaml:"top,omitempty"`
	Bottom  []string `json:"bottom" yaml:"bottom,omitempty"`
}

// Waypoint is a point on a traced path. X is the column, Y the level.
// Y == 0 is the top of the board and Y == Levels the bottom.
type Waypoint struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Path is the ordered waypoint sequence from the start column at level 0 to
// the final column at the bottom of the ladder.
type Path []Waypoint

// End returns the final column of the path, or -1 for an empty path.
func (p Path) End() int {
	if len(p) == 0 {
		return -1
	}
	return p[len(p)-1].X
}

// Jogs counts the horizontal moves along the path.
func (p Path) Jogs() int {
	n := 0
	for i := 1; i < len(p); i++ {
		if p[i].Y == p[i-1].Y {
			n++
		}
	}
	return n
}

// GenerateRequest holds the parameters of a single ladder generation.
type GenerateRequest struct {
	// Columns is the number of vertical lines. Must be at least 2.
	Columns int `json:"columns" yaml:"columns"`

	// Levels is the number of rows. Zero selects the policy default
	// (Columns * Policy.LevelsPerColumn); negative values are rejected.
	Levels int `json:"levels" yaml:"levels"`

	// RungDensity is the per-slot probability in [0, 1] of placing a rung
	// before conflict resolution.
	RungDensity float64 `json:"rungDensity" yaml:"rungDensity"`

	// AutoDensity derives the density from the resolved level count
	// (Policy.AutoDensity) and ignores RungDensity.
	AutoDensity bool `json:"autoDensity,omitempty" yaml:"autoDensity,omitempty"`

	// BottomLabels are result labels by position. Missing entries are
	// backfilled by the policy; more than Columns entries is an error.
	BottomLabels []string `json:"bottomLabels,omitempty" yaml:"bottomLabels,omitempty"`

	// DefaultAtari guarantees a winning label among backfilled entries when
	// the supplied labels contain none.
	DefaultAtari bool `json:"defaultAtari" yaml:"defaultAtari"`
}

// Outcome pairs one entry at the top with the result it lands on.
type Outcome struct {
	Start  int    `json:"start" yaml:"start"`
	End    int    `json:"end" yaml:"end"`
	Entry  string `json:"entry" yaml:"entry"`
	Result string `json:"result" yaml:"result"`
}

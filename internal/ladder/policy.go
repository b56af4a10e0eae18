package ladder

import "math"

// Default policy values.
const (
	DefaultLevelsPerColumn = 3
	DefaultRungsPerPair    = 4.0
	DefaultWinLabel        = "あたり"
	DefaultLoseLabel       = "はずれ"
)

// Bounds of an automatically chosen density.
const (
	MinAutoDensity = 0.05
	MaxAutoDensity = 0.60
)

// Policy holds the generator's configurable defaults. The zero value of any
// field selects the package default, so Policy{} behaves like
// DefaultPolicy().
type Policy struct {
	// LevelsPerColumn sets the level count when a request leaves it unset.
	LevelsPerColumn int

	// StartGap keeps the first StartGap levels free of rungs so every token
	// descends a little before its first jog.
	StartGap int

	// RungsPerPair is the expected rung count between two neighbouring
	// columns that automatic density aims for.
	RungsPerPair float64

	// WinLabel and LoseLabel are the default result labels.
	WinLabel  string
	LoseLabel string
}

// DefaultPolicy returns the policy used when no configuration is supplied.
func DefaultPolicy() Policy {
	return Policy{
		LevelsPerColumn: DefaultLevelsPerColumn,
		RungsPerPair:    DefaultRungsPerPair,
		WinLabel:        DefaultWinLabel,
		LoseLabel:       DefaultLoseLabel,
	}
}

// WithDefaults fills every unset field with its package default.
func (p Policy) WithDefaults() Policy {
	if p.LevelsPerColumn < 1 {
		p.LevelsPerColumn = DefaultLevelsPerColumn
	}
	if p.StartGap < 0 {
		p.StartGap = 0
	}
	if math.IsNaN(p.RungsPerPair) || p.RungsPerPair <= 0 {
		p.RungsPerPair = DefaultRungsPerPair
	}
	if p.WinLabel == "" {
		p.WinLabel = DefaultWinLabel
	}
	if p.LoseLabel == "" {
		p.LoseLabel = DefaultLoseLabel
	}
	return p
}

// DefaultLevels returns the level count used for a request with levels unset.
func (p Policy) DefaultLevels(columns int) int {
	return columns * p.WithDefaults().LevelsPerColumn
}

// AutoDensity returns the density that places about RungsPerPair rungs
// between each pair of neighbouring columns over the levels below the start
// gap, clamped to [MinAutoDensity, MaxAutoDensity].
func (p Policy) AutoDensity(levels int) float64 {
	p = p.WithDefaults()
	effective := levels - p.StartGap
	if effective < 1 {
		effective = 1
	}
	d := p.RungsPerPair / float64(effective)
	return min(max(d, MinAutoDensity), MaxAutoDensity)
}

// plan is a generation request with every default resolved.
type plan struct {
	columns  int
	levels   int
	startGap int
	density  float64
	bottom   []string
}

// resolve validates req and resolves all defaults in one place. Nothing
// downstream of resolve consults the policy again.
func (p Policy) resolve(req GenerateRequest) (plan, error) {
	p = p.WithDefaults()

	if req.Columns < 2 {
		return plan{}, invalidRequest("columns", "must be at least 2, got %d", req.Columns)
	}
	if req.Levels < 0 {
		return plan{}, invalidRequest("levels", "must not be negative, got %d", req.Levels)
	}
	if !req.AutoDensity && (math.IsNaN(req.RungDensity) || req.RungDensity < 0 || req.RungDensity > 1) {
		return plan{}, invalidRequest("rungDensity", "must be within [0, 1], got %v", req.RungDensity)
	}
	if len(req.BottomLabels) > req.Columns {
		return plan{}, invalidRequest("bottomLabels", "has %d labels for %d columns", len(req.BottomLabels), req.Columns)
	}

	levels := req.Levels
	if levels == 0 {
		levels = p.DefaultLevels(req.Columns)
	}
	if !gridFits(req.Columns, levels) {
		return plan{}, invalidRequest("levels", "grid of %d columns by %d levels exceeds %d cells", req.Columns, levels, MaxGridCells)
	}
	density := req.RungDensity
	if req.AutoDensity {
		density = p.AutoDensity(levels)
	}

	return plan{
		columns:  req.Columns,
		levels:   levels,
		startGap: p.StartGap,
		density:  density,
		bottom:   p.bottomLabels(req.Columns, req.BottomLabels, req.DefaultAtari),
	}, nil
}

// bottomLabels backfills supplied labels to exactly columns entries.
//
// With no labels, column 0 wins and every other column loses. Otherwise
// supplied labels keep their positions and gaps get the lose label; with
// defaultAtari set and no supplied winner, the first gap gets the win label.
func (p Policy) bottomLabels(columns int, supplied []string, defaultAtari bool) []string {
	out := make([]string, columns)
	if len(supplied) == 0 {
		out[0] = p.WinLabel
		for i := 1; i < columns; i++ {
			out[i] = p.LoseLabel
		}
		return out
	}

	n := copy(out, supplied)
	needWinner := defaultAtari
	for _, s := range supplied {
		if s == p.WinLabel {
			needWinner = false
			break
		}
	}
	for i := n; i < columns; i++ {
		if needWinner {
			out[i] = p.WinLabel
			needWinner = false
			continue
		}
		out[i] = p.LoseLabel
	}
	return out
}

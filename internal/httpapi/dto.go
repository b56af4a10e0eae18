package httpapi

import "github.com/roach88/amida/internal/ladder"

// GenerateRequest is the body of POST /api/generate.
// Nil RungDensity selects the configured density (automatic by default);
// nil Seed a fresh one.
type GenerateRequest struct {
	Columns      int      `json:"columns"`
	Levels       int      `json:"levels"`
	RungDensity  *float64 `json:"rungDensity"`
	BottomLabels []string `json:"bottomLabels"`
	DefaultAtari bool     `json:"defaultAtari"`
	Seed         *int64   `json:"seed"`
}

// GenerateResponse carries the new ladder, its content ID and the seed that
// reproduces it.
type GenerateResponse struct {
	Ladder ladder.Ladder `json:"ladder"`
	ID     string        `json:"id"`
	Seed   int64         `json:"seed"`
}

// TraceRequest is the body of POST /api/trace.
type TraceRequest struct {
	Columns int           `json:"columns"`
	Levels  int           `json:"levels"`
	Rungs   []ladder.Rung `json:"rungs"`
	Start   int           `json:"start"`
}

// TraceResponse is the path a token follows and the column it ends on.
type TraceResponse struct {
	Path     ladder.Path `json:"path"`
	EndIndex int         `json:"endIndex"`
}

// ResolveRequest is the body of POST /api/resolve.
type ResolveRequest struct {
	Ladder ladder.Ladder `json:"ladder"`
}

// ResolveResponse pairs every entry with its result.
type ResolveResponse struct {
	Outcomes []ladder.Outcome `json:"outcomes"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	Field string `json:"field,omitempty"`
}

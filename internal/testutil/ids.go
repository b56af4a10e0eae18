package testutil

// FixedIDGenerator returns the same ID every time.
//
// Used in place of the UUIDv7 request ID generator so HTTP responses and
// logs are byte-identical across test runs.
//
// Thread-safety: FixedIDGenerator is stateless and safe for concurrent use.
type FixedIDGenerator struct {
	id string
}

// NewFixedIDGenerator creates a generator returning id.
// If id is empty, Generate() returns "test-request-default".
func NewFixedIDGenerator(id string) *FixedIDGenerator {
	if id == "" {
		id = "test-request-default"
	}
	return &FixedIDGenerator{id: id}
}

// Generate returns the fixed ID.
func (g *FixedIDGenerator) Generate() string {
	return g.id
}

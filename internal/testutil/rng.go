package testutil

import "sync"

// SequenceRNG replays a fixed sequence of Float64 values for tests.
//
// Values are returned in order and wrap around when exhausted, so a single
// value acts as a constant source. This makes rung placement fully
// predictable: a value below the requested density places a rung (unless the
// slot conflicts), a value at or above it leaves the slot empty.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type SequenceRNG struct {
	mu     sync.Mutex
	values []float64
	idx    int
	draws  int
}

// NewSequenceRNG creates an RNG replaying values. Panics if values is empty.
func NewSequenceRNG(values ...float64) *SequenceRNG {
	if len(values) == 0 {
		panic("SequenceRNG: at least one value is required")
	}
	return &SequenceRNG{values: values}
}

// Float64 returns the next value of the sequence.
//
// Implements ladder.RNG.
func (r *SequenceRNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.values[r.idx]
	r.idx = (r.idx + 1) % len(r.values)
	r.draws++
	return v
}

// Draws returns how many values have been consumed since creation or Reset.
func (r *SequenceRNG) Draws() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.draws
}

// Reset rewinds the sequence to its first value.
func (r *SequenceRNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.idx = 0
	r.draws = 0
}

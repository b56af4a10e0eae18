package ladder

import "math/rand/v2"

// RNG is the random source used for rung placement.
// *rand.Rand from math/rand/v2 satisfies it.
type RNG interface {
	// Float64 returns a pseudo-random number in [0.0, 1.0).
	Float64() float64
}

// Generator builds ladders from generation requests.
//
// A Generator carries no state besides its RNG stream; each Generate call is
// independent of earlier ones. It is not safe for concurrent use when the RNG
// is not (rand.Rand is not), so use one Generator per goroutine.
type Generator struct {
	policy Policy
	rng    RNG
}

// NewGenerator creates a generator drawing from rng.
func NewGenerator(rng RNG, policy Policy) *Generator {
	return &Generator{policy: policy.WithDefaults(), rng: rng}
}

// NewSeededGenerator creates a generator whose output is fully determined by
// seed, so the same request with the same seed yields the same ladder.
func NewSeededGenerator(seed int64, policy Policy) *Generator {
	s := uint64(seed)
	return NewGenerator(rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15)), policy)
}

// Policy returns the resolved policy of the generator.
func (g *Generator) Policy() Policy {
	return g.policy
}

// Generate builds a new ladder.
//
// The realized rung count is probabilistic: RungDensity is the chance that a
// slot is tried, and a tried slot is still rejected when it would touch a
// column already joined at that level. Rungs are only ever appended, in
// (level, leftColumn) order.
func (g *Generator) Generate(req GenerateRequest) (Ladder, error) {
	p, err := g.policy.resolve(req)
	if err != nil {
		return Ladder{}, err
	}

	return Ladder{
		Columns: p.columns,
		Levels:  p.levels,
		Rungs:   placeRungs(p, g.rng),
		Top:     make([]string, p.columns),
		Bottom:  p.bottom,
	}, nil
}

// placeRungs scans every level left to right, drawing one trial per slot.
// Touching only ever involves the immediate left neighbour, so remembering
// whether the previous slot was accepted is enough to keep the level
// disjoint.
func placeRungs(p plan, rng RNG) []Rung {
	slots := p.columns - 1
	rungs := make([]Rung, 0, int(float64(p.levels*slots)*p.density/2)+1)
	for level := p.startGap; level < p.levels; level++ {
		prevTaken := false
		for left := 0; left < slots; left++ {
			hit := rng.Float64() < p.density
			if hit && !prevTaken {
				rungs = append(rungs, Rung{Level: level, LeftColumn: left})
				prevTaken = true
				continue
			}
			prevTaken = false
		}
	}
	return rungs
}

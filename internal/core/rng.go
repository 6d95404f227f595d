package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(seed, 0))}
}

// NewRNGFrom returns a deterministic RNG when seed is non-nil and otherwise
// one seeded from the process-wide source.
func NewRNGFrom(seed *uint64) *RNG {
	if seed != nil {
		return NewRNG(*seed)
	}
	return &RNG{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// Chance reports true with probability p.
func (r *RNG) Chance(p float64) bool {
	return r.r.Float64() < p
}

// IntRange returns a value in [lo, hi]. It returns lo when hi <= lo.
func (r *RNG) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.r.IntN(hi-lo+1)
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }

// Package seq provides the seeded pseudo-random stream used by the optimiser.
// Every random draw in a run goes through a Sequence so that a run is fully
// reproducible from its seed.
package seq

import (
	"math/rand/v2"
)

// pcgIncrement is mixed into the second PCG word so that seed and stream differ.
const pcgIncrement = 0x9e3779b97f4a7c15

// Sequence is a deterministic pseudo-random stream. It is not safe for
// concurrent use; give each goroutine its own Sequence via Split.
type Sequence struct {
	rng *rand.Rand
}

// New creates a Sequence from seed.
func New(seed uint64) *Sequence {
	return &Sequence{rng: rand.New(rand.NewPCG(seed, seed^pcgIncrement))}
}

// RandomSeed returns a fresh seed for callers that did not supply one.
// The returned value should be recorded so the run can be repeated.
func RandomSeed() uint64 {
	return rand.Uint64()
}

// Uint64 returns the next raw value.
func (s *Sequence) Uint64() uint64 {
	return s.rng.Uint64()
}

// Float64 returns a value in [0,1).
func (s *Sequence) Float64() float64 {
	return s.rng.Float64()
}

// IntN returns a value in [0,n). It panics if n <= 0.
func (s *Sequence) IntN(n int) int {
	return s.rng.IntN(n)
}

// Range returns a uniform value in [lo,hi).
func (s *Sequence) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Float64()*(hi-lo)
}

// Jitter returns a uniform value in [-span,span).
func (s *Sequence) Jitter(span float64) float64 {
	return (s.rng.Float64()*2 - 1) * span
}

// Chance reports true with probability p.
func (s *Sequence) Chance(p float64) bool {
	return s.rng.Float64() < p
}

// Split derives an independent child stream. The parent advances by two
// draws, so the children of a given parent are themselves deterministic.
func (s *Sequence) Split() *Sequence {
	a := s.rng.Uint64()
	b := s.rng.Uint64()
	return &Sequence{rng: rand.New(rand.NewPCG(a, b))}
}

package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return NewStream(seed, 0)
}

// NewStream creates a deterministic RNG for one of several independent
// streams sharing a seed. Streams with different ids never overlap in practice,
// so parallel workers can each own one.
func NewStream(seed int64, stream uint64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), stream))}
}

// Spin returns -1 or +1 with equal probability.
func (r *RNG) Spin() int8 {
	if r.r.IntN(2) == 1 {
		return 1
	}
	return -1
}

// IntN returns a random int in [0, n). It panics if n <= 0.
func (r *RNG) IntN(n int) int { return r.r.IntN(n) }

// Float64 returns a random float64 in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// FillSpins fills the buffer with independent ±1 values.
func FillSpins(r *rand.Rand, buf []int8) {
	for i := range buf {
		buf[i] = int8(2*r.IntN(2) - 1)
	}
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }

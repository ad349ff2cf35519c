package mc

import (
	"math"
	"math/rand/v2"

	"ising-mc/internal/core"
)

// Sweep performs exactly N² Metropolis trials on l and returns how many were
// accepted. Each trial picks a uniformly random cell, accepts the flip when it
// lowers the energy and otherwise with probability exp(-cost·beta). The lattice
// is mutated in place. beta is not validated; it should be finite and >= 0.
func Sweep(l *core.Lattice, m core.Model, beta float64, r *rand.Rand) int {
	n := l.Size()
	trials := l.Sites()
	accepted := 0
	for t := 0; t < trials; t++ {
		a := r.IntN(n)
		b := r.IntN(n)
		cost := m.FlipCost(l, a, b)
		if cost < 0 || r.Float64() < math.Exp(-cost*beta) {
			l.Flip(a, b)
			accepted++
		}
	}
	return accepted
}

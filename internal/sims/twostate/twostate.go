// Package twostate implements an ideal system of independent two-level sites.
// A site with spin -1 sits in the ground state (energy 0) and a site with
// spin +1 in the excited state (energy 1); neighbours never interact.
package twostate

import "ising-mc/internal/core"

// Model is the non-interacting two-state rule.
type Model struct{}

// New returns the two-state model.
func New() Model { return Model{} }

// Name returns the model identifier.
func (Model) Name() string { return "twostate" }

// FlipCost is +1 for exciting a ground-state site and -1 for its decay.
func (Model) FlipCost(l *core.Lattice, i, j int) float64 {
	if l.At(i, j) < 0 {
		return 1
	}
	return -1
}

// TotalEnergy counts excited sites.
func (Model) TotalEnergy(l *core.Lattice) float64 {
	excited := 0
	for _, s := range l.Spins() {
		if s > 0 {
			excited++
		}
	}
	return float64(excited)
}

// TotalMagnetization returns the sum of all spins.
func (Model) TotalMagnetization(l *core.Lattice) float64 { return core.TotalMagnetization(l) }

// GroundSpin returns -1.
func (Model) GroundSpin() int8 { return -1 }

func init() {
	core.Register("twostate", New())
}

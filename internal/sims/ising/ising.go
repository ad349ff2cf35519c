// Package ising implements the 2D nearest-neighbour Ising energy rule with
// unit coupling and no external field.
package ising

import "ising-mc/internal/core"

// Model is the nearest-neighbour Ising rule on a periodic square lattice.
type Model struct{}

// New returns the Ising model.
func New() Model { return Model{} }

// Name returns the model identifier.
func (Model) Name() string { return "ising" }

// FlipCost returns 2·s·Σnb, the energy change of flipping (i, j).
func (Model) FlipCost(l *core.Lattice, i, j int) float64 {
	return float64(2 * int(l.At(i, j)) * l.NeighborSum(i, j))
}

// TotalEnergy sums -s·Σnb over every cell and divides by four, which folds
// the double counting of each bond into the quarter normalization.
func (Model) TotalEnergy(l *core.Lattice) float64 {
	n := l.Size()
	energy := 0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			energy += -int(l.At(i, j)) * l.NeighborSum(i, j)
		}
	}
	return float64(energy) / 4
}

// TotalMagnetization returns the sum of all spins.
func (Model) TotalMagnetization(l *core.Lattice) float64 { return core.TotalMagnetization(l) }

// GroundSpin returns +1; the all-down state is degenerate with it.
func (Model) GroundSpin() int8 { return 1 }

func init() {
	core.Register("ising", New())
}

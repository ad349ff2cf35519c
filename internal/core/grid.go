package core

import (
	"errors"
	"fmt"
	"math/rand/v2"

	rngcore "ising-mc/pkg/core"
)

// ErrInvalidSize is returned when a lattice is requested with a non-positive edge length.
var ErrInvalidSize = errors.New("core: lattice size must be positive")

// InitMode selects how a new lattice is populated.
type InitMode int

const (
	// InitRandom sets every cell independently to ±1 with probability ½.
	InitRandom InitMode = iota
	// InitUniform sets every cell to the same spin.
	InitUniform
)

func (m InitMode) String() string {
	switch m {
	case InitRandom:
		return "random"
	case InitUniform:
		return "uniform"
	default:
		return fmt.Sprintf("InitMode(%d)", int(m))
	}
}

// Lattice stores an N×N grid of ±1 spins in row-major order with toroidal
// wrapping on every axis.
type Lattice struct {
	n    int
	data []int8
}

// NewLattice allocates an n×n lattice. For InitUniform every cell is set to
// spin (any positive value means +1, anything else -1); r is only consulted
// for InitRandom and may be nil otherwise.
func NewLattice(n int, mode InitMode, spin int8, r *rand.Rand) (*Lattice, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, n)
	}
	l := &Lattice{n: n, data: make([]int8, n*n)}
	switch mode {
	case InitRandom:
		if r == nil {
			return nil, errors.New("core: random init requires a random source")
		}
		rngcore.FillSpins(r, l.data)
	case InitUniform:
		s := unit(spin)
		for i := range l.data {
			l.data[i] = s
		}
	default:
		return nil, fmt.Errorf("core: unknown init mode %v", mode)
	}
	return l, nil
}

// Size returns the edge length N.
func (l *Lattice) Size() int { return l.n }

// Sites returns N².
func (l *Lattice) Sites() int { return len(l.data) }

// Spins exposes the backing slice. Callers must only read it; mutation goes
// through Set and Flip so the ±1 invariant holds.
func (l *Lattice) Spins() []int8 { return l.data }

// Wrap applies toroidal wrapping to the provided coordinates.
func (l *Lattice) Wrap(i, j int) (int, int) {
	i = (i%l.n + l.n) % l.n
	j = (j%l.n + l.n) % l.n
	return i, j
}

// Index returns the linear slice index for row i and column j after wrapping.
func (l *Lattice) Index(i, j int) int {
	i, j = l.Wrap(i, j)
	return i*l.n + j
}

// At returns the spin at (i, j).
func (l *Lattice) At(i, j int) int8 { return l.data[l.Index(i, j)] }

// Set stores a spin at (i, j). Positive values store +1, everything else -1.
func (l *Lattice) Set(i, j int, s int8) { l.data[l.Index(i, j)] = unit(s) }

// Flip negates the spin at (i, j).
func (l *Lattice) Flip(i, j int) {
	idx := l.Index(i, j)
	l.data[idx] = -l.data[idx]
}

// Neighbors returns the four periodic neighbours of (i, j) in the order
// (i+1, j), (i, j+1), (i-1, j), (i, j-1).
func (l *Lattice) Neighbors(i, j int) [4]int8 {
	return [4]int8{
		l.At(i+1, j),
		l.At(i, j+1),
		l.At(i-1, j),
		l.At(i, j-1),
	}
}

// NeighborSum returns the sum of the four periodic neighbours of (i, j).
func (l *Lattice) NeighborSum(i, j int) int {
	nb := l.Neighbors(i, j)
	return int(nb[0]) + int(nb[1]) + int(nb[2]) + int(nb[3])
}

// Magnetization returns the sum of all spins.
func (l *Lattice) Magnetization() int {
	total := 0
	for _, s := range l.data {
		total += int(s)
	}
	return total
}

// Clone returns a deep copy.
func (l *Lattice) Clone() *Lattice {
	return &Lattice{n: l.n, data: append([]int8(nil), l.data...)}
}

func unit(s int8) int8 {
	if s > 0 {
		return 1
	}
	return -1
}

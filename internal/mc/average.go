package mc

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"ising-mc/internal/core"
)

const (
	// MaxLatticeSize bounds N so N² spin sums stay exact.
	MaxLatticeSize = 1 << 15
	// maxExactSamples is the float64 integer precision limit (2^53).
	maxExactSamples = 1 << 53
)

// Params holds the per-temperature run lengths.
type Params struct {
	Size    int
	EqSteps int
	MCSteps int
}

// Validate checks the preconditions of Average.
func (p Params) Validate() error {
	if p.Size <= 0 {
		return fmt.Errorf("%w: lattice size %d must be positive", ErrInvalidParameter, p.Size)
	}
	if p.EqSteps < 0 {
		return fmt.Errorf("%w: equilibration sweeps %d must not be negative", ErrInvalidParameter, p.EqSteps)
	}
	if p.MCSteps <= 0 {
		return fmt.Errorf("%w: measurement sweeps %d must be positive", ErrInvalidParameter, p.MCSteps)
	}
	if p.Size > MaxLatticeSize {
		return fmt.Errorf("%w: lattice size %d above %d", ErrNumericOverflow, p.Size, MaxLatticeSize)
	}
	if float64(p.MCSteps)*float64(p.Size)*float64(p.Size) > maxExactSamples {
		return fmt.Errorf("%w: %d sweeps of %d² sites", ErrNumericOverflow, p.MCSteps, p.Size)
	}
	return nil
}

// Observables are the thermodynamic averages measured at one temperature,
// normalized per site.
type Observables struct {
	Temperature    float64
	Energy         float64
	Magnetization  float64
	SpecificHeat   float64
	Susceptibility float64
	// Acceptance is the fraction of accepted trials during measurement.
	Acceptance float64
}

// Moments accumulates first and second moments of the total energy and
// magnetization over measurement samples.
type Moments struct {
	E1, E2 float64
	M1, M2 float64
	// Samples counts calls to Add.
	Samples int
}

// Add records one sample.
func (m *Moments) Add(energy, magnetization float64) {
	m.E1 += energy
	m.M1 += magnetization
	m.M2 += magnetization * magnetization
	m.E2 += energy * energy
	m.Samples++
}

// Derive converts the sums into per-site observables at temperature t for a
// lattice with the given number of sites and steps measurement sweeps.
func (m Moments) Derive(t float64, sites, steps int) Observables {
	n1 := 1.0 / (float64(steps) * float64(sites))
	n2 := 1.0 / (float64(steps) * float64(steps) * float64(sites))
	beta := 1.0 / t
	beta2 := beta * beta
	return Observables{
		Temperature:    t,
		Energy:         n1 * m.E1,
		Magnetization:  n1 * m.M1,
		SpecificHeat:   (n1*m.E2 - n2*m.E1*m.E1) * beta2,
		Susceptibility: (n1*m.M2 - n2*m.M1*m.M1) * beta,
	}
}

// Average simulates model at temperature t on a fresh random lattice. It runs
// p.EqSteps discarded sweeps, then p.MCSteps sweeps each followed by a sample
// of the post-sweep state. ctx is checked between sweeps.
func Average(ctx context.Context, p Params, t float64, model core.Model, r *rand.Rand) (Observables, error) {
	if err := p.Validate(); err != nil {
		return Observables{}, err
	}
	if !(t > 0) || math.IsInf(t, 0) {
		return Observables{}, fmt.Errorf("%w: temperature %v must be positive and finite", ErrInvalidParameter, t)
	}
	l, err := core.NewLattice(p.Size, core.InitRandom, 0, r)
	if err != nil {
		return Observables{}, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	beta := 1.0 / t

	for s := 0; s < p.EqSteps; s++ {
		if err := ctx.Err(); err != nil {
			return Observables{}, err
		}
		Sweep(l, model, beta, r)
	}

	var mom Moments
	accepted := 0
	for s := 0; s < p.MCSteps; s++ {
		if err := ctx.Err(); err != nil {
			return Observables{}, err
		}
		accepted += Sweep(l, model, beta, r)
		mom.Add(model.TotalEnergy(l), model.TotalMagnetization(l))
	}

	obs := mom.Derive(t, l.Sites(), p.MCSteps)
	obs.Acceptance = float64(accepted) / (float64(p.MCSteps) * float64(l.Sites()))
	return obs, nil
}

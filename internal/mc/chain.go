package mc

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"

	"ising-mc/internal/core"
	rngcore "ising-mc/pkg/core"
)

const keyTemperature = "temperature"

// TracePoint is one sample of a chain, normalized per site.
type TracePoint struct {
	Step          int     `db:"step"`
	Energy        float64 `db:"energy"`
	Magnetization float64 `db:"magnetization"`
}

// Chain follows a single lattice through successive sweeps at a fixed
// temperature. It is safe for one goroutine to step the chain while others
// take snapshots.
type Chain struct {
	mu sync.Mutex

	model       core.Model
	size        int
	init        InitSpec
	temperature float64

	lattice *core.Lattice
	rng     *rand.Rand
	step    int
}

// InitSpec names the starting configuration of a chain: "random" or "ground".
type InitSpec string

const (
	InitRandom InitSpec = "random"
	InitGround InitSpec = "ground"
)

// NewChain creates a chain of an n×n lattice seeded with seed.
func NewChain(model core.Model, n int, t float64, init InitSpec, seed int64) (*Chain, error) {
	if n <= 0 || n > MaxLatticeSize {
		return nil, fmt.Errorf("%w: lattice size %d", ErrInvalidParameter, n)
	}
	if !(t > 0) || math.IsInf(t, 0) {
		return nil, fmt.Errorf("%w: temperature %v must be positive and finite", ErrInvalidParameter, t)
	}
	if init != InitRandom && init != InitGround {
		return nil, fmt.Errorf("%w: unknown init %q", ErrInvalidParameter, init)
	}
	c := &Chain{model: model, size: n, init: init, temperature: t}
	if err := c.Reset(seed); err != nil {
		return nil, err
	}
	return c, nil
}

// Reset rebuilds the starting configuration and rewinds the step counter.
func (c *Chain) Reset(seed int64) error {
	rng := rngcore.NewRNG(seed).Source()
	var (
		l   *core.Lattice
		err error
	)
	if c.init == InitGround {
		l, err = core.NewLattice(c.size, core.InitUniform, c.model.GroundSpin(), nil)
	} else {
		l, err = core.NewLattice(c.size, core.InitRandom, 0, rng)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	c.mu.Lock()
	c.lattice, c.rng, c.step = l, rng, 0
	c.mu.Unlock()
	return nil
}

// Model returns the energy rule driving the chain.
func (c *Chain) Model() core.Model { return c.model }

// Size returns the lattice edge length.
func (c *Chain) Size() int { return c.size }

// Temperature returns the current temperature.
func (c *Chain) Temperature() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.temperature
}

// Step performs one sweep and returns the resulting sample.
func (c *Chain) Step() TracePoint {
	c.mu.Lock()
	defer c.mu.Unlock()
	Sweep(c.lattice, c.model, 1.0/c.temperature, c.rng)
	c.step++
	return c.pointLocked()
}

// Point returns the sample of the current state without sweeping.
func (c *Chain) Point() TracePoint {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pointLocked()
}

// Snapshot returns a deep copy of the lattice together with its sample.
func (c *Chain) Snapshot() (*core.Lattice, TracePoint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lattice.Clone(), c.pointLocked()
}

func (c *Chain) pointLocked() TracePoint {
	sites := float64(c.lattice.Sites())
	return TracePoint{
		Step:          c.step,
		Energy:        c.model.TotalEnergy(c.lattice) / sites,
		Magnetization: c.model.TotalMagnetization(c.lattice) / sites,
	}
}

// Parameters reports the chain settings and its current sample.
func (c *Chain) Parameters() core.ParameterSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.pointLocked()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Chain",
			Params: []core.Parameter{
				core.StringParam("model", "Model", c.model.Name()),
				core.IntParam("trace_n", "Lattice size", c.size),
				core.StringParam("init", "Initial state", string(c.init)),
				core.FloatParam(keyTemperature, "Temperature", c.temperature),
			},
		},
		{
			Name: "Sample",
			Params: []core.Parameter{
				core.IntParam("step", "Sweep", p.Step),
				core.FloatParam("energy", "Energy", p.Energy),
				core.FloatParam("magnetization", "Magnetization", p.Magnetization),
			},
		},
	}}
}

// ParameterControls exposes the temperature to the HUD.
func (c *Chain) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{{
		Key:    keyTemperature,
		Label:  "Temperature",
		Step:   0.05,
		Min:    0.05,
		Max:    10,
		HasMin: true,
		HasMax: true,
	}}
}

// SetFloatParameter updates the temperature; other keys are rejected.
func (c *Chain) SetFloatParameter(key string, value float64) bool {
	if key != keyTemperature || !(value > 0) || math.IsInf(value, 0) {
		return false
	}
	c.mu.Lock()
	c.temperature = value
	c.mu.Unlock()
	return true
}

// Observer receives a sample and a private copy of the lattice.
type Observer func(p TracePoint, snapshot *core.Lattice) error

// RunTrace sweeps c steps times, recording the initial sample and one sample
// after every sweep. When obs is non-nil it is called for the initial state,
// every every-th step and the final step. An observer error or context
// cancellation stops the run and is returned with the trace so far.
func RunTrace(ctx context.Context, c *Chain, steps, every int, obs Observer) (*Trace, error) {
	if steps < 0 {
		return nil, fmt.Errorf("%w: trace steps %d must not be negative", ErrInvalidParameter, steps)
	}
	if every <= 0 {
		every = 1
	}
	tr := &Trace{
		Model:       c.model.Name(),
		Size:        c.size,
		Temperature: c.Temperature(),
		Points:      make([]TracePoint, 0, steps+1),
	}
	notify := func() error {
		if obs == nil {
			return nil
		}
		snap, p := c.Snapshot()
		return obs(p, snap)
	}

	tr.Points = append(tr.Points, c.Point())
	if err := notify(); err != nil {
		return tr, err
	}
	for s := 1; s <= steps; s++ {
		if err := ctx.Err(); err != nil {
			return tr, err
		}
		p := c.Step()
		tr.Points = append(tr.Points, p)
		if s%every == 0 || s == steps {
			if err := notify(); err != nil {
				return tr, err
			}
		}
	}
	return tr, nil
}

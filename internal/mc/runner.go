package mc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"ising-mc/internal/core"
	rngcore "ising-mc/pkg/core"
)

// SweepResult holds observable sequences aligned by temperature index.
type SweepResult struct {
	Model          string
	Temperatures   []float64
	Energy         []float64
	Magnetization  []float64
	SpecificHeat   []float64
	Susceptibility []float64
	Acceptance     []float64
}

// Len returns the number of temperatures.
func (s *SweepResult) Len() int { return len(s.Temperatures) }

// Point returns the observables at index i.
func (s *SweepResult) Point(i int) Observables {
	return Observables{
		Temperature:    s.Temperatures[i],
		Energy:         s.Energy[i],
		Magnetization:  s.Magnetization[i],
		SpecificHeat:   s.SpecificHeat[i],
		Susceptibility: s.Susceptibility[i],
		Acceptance:     s.Acceptance[i],
	}
}

// NewSweepResult builds a result from points, ordered by temperature.
func NewSweepResult(model string, points []Observables) *SweepResult {
	ordered := append([]Observables(nil), points...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Temperature < ordered[j].Temperature })
	n := len(ordered)
	res := &SweepResult{
		Model:          model,
		Temperatures:   make([]float64, n),
		Energy:         make([]float64, n),
		Magnetization:  make([]float64, n),
		SpecificHeat:   make([]float64, n),
		Susceptibility: make([]float64, n),
		Acceptance:     make([]float64, n),
	}
	for i, p := range ordered {
		res.Temperatures[i] = p.Temperature
		res.Energy[i] = p.Energy
		res.Magnetization[i] = p.Magnetization
		res.SpecificHeat[i] = p.SpecificHeat
		res.Susceptibility[i] = p.Susceptibility
		res.Acceptance[i] = p.Acceptance
	}
	return res
}

// Runner runs Average once per temperature. Temperature i always draws from
// PCG stream i of Seed, so results do not depend on Workers.
type Runner struct {
	Params  Params
	Seed    int64
	Workers int
	Logger  *slog.Logger
}

// Run simulates every temperature and returns the collected observables. A
// failure at any temperature cancels the remaining work and no partial
// result is returned.
func (r *Runner) Run(ctx context.Context, temps []float64, model core.Model) (*SweepResult, error) {
	if len(temps) == 0 {
		return nil, fmt.Errorf("%w: nothing to simulate", ErrEmptyTemperatureSet)
	}
	if err := r.Params.Validate(); err != nil {
		return nil, err
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	sites := int64(r.Params.Size) * int64(r.Params.Size)
	trials := int64(len(temps)) * int64(r.Params.EqSteps+r.Params.MCSteps) * sites
	logger.Info("starting sweep",
		"model", model.Name(),
		"temperatures", len(temps),
		"size", r.Params.Size,
		"workers", workers,
		"trials", humanize.Comma(trials),
	)
	start := time.Now()

	points := make([]Observables, len(temps))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, t := range temps {
		g.Go(func() error {
			obs, err := Average(gctx, r.Params, t, model, streamFor(r.Seed, i))
			if err != nil {
				return fmt.Errorf("temperature %d (T=%.4f): %w", i+1, t, err)
			}
			points[i] = obs
			logger.Debug("temperature done",
				"index", i+1,
				"of", len(temps),
				"T", t,
				"energy", obs.Energy,
				"magnetization", obs.Magnetization,
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Info("sweep finished", "model", model.Name(), "elapsed", time.Since(start).Round(time.Millisecond))
	return NewSweepResult(model.Name(), points), nil
}

// streamFor returns the random stream owned by temperature index i.
func streamFor(seed int64, i int) *rand.Rand {
	return rngcore.NewStream(seed, uint64(i)).Source()
}

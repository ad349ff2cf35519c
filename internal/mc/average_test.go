package mc

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ising-mc/internal/sims/ising"
	"ising-mc/internal/sims/twostate"
	rngcore "ising-mc/pkg/core"
)

func TestParamsValidate(t *testing.T) {
	cases := []struct {
		name string
		p    Params
		err  error
	}{
		{"ok", Params{Size: 4, EqSteps: 0, MCSteps: 1}, nil},
		{"zero size", Params{Size: 0, EqSteps: 1, MCSteps: 1}, ErrInvalidParameter},
		{"negative eq", Params{Size: 4, EqSteps: -1, MCSteps: 1}, ErrInvalidParameter},
		{"zero mc", Params{Size: 4, EqSteps: 1, MCSteps: 0}, ErrInvalidParameter},
		{"huge lattice", Params{Size: MaxLatticeSize + 1, MCSteps: 1}, ErrNumericOverflow},
		{"too many samples", Params{Size: 1 << 14, MCSteps: 1 << 30}, ErrNumericOverflow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.p.Validate()
			if tc.err == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestMomentsDerive(t *testing.T) {
	var m Moments
	m.Add(2, 0)
	m.Add(4, 2)
	require.Equal(t, 2, m.Samples)

	obs := m.Derive(1, 1, 2)
	assert.Equal(t, 3.0, obs.Energy)
	assert.Equal(t, 1.0, obs.Magnetization)
	assert.Equal(t, 1.0, obs.SpecificHeat)
	assert.Equal(t, 1.0, obs.Susceptibility)

	// beta² scales the specific heat and beta the susceptibility
	obs = m.Derive(2, 1, 2)
	assert.Equal(t, 0.25, obs.SpecificHeat)
	assert.Equal(t, 0.5, obs.Susceptibility)
	assert.Equal(t, 2.0, obs.Temperature)
}

func TestMomentsConstantSamplesHaveNoVariance(t *testing.T) {
	var m Moments
	for i := 0; i < 100; i++ {
		m.Add(-16, 16)
	}
	obs := m.Derive(1.5, 16, 100)
	assert.InDelta(t, -1.0, obs.Energy, 1e-12)
	assert.InDelta(t, 1.0, obs.Magnetization, 1e-12)
	assert.InDelta(t, 0, obs.SpecificHeat, 1e-9)
	assert.InDelta(t, 0, obs.Susceptibility, 1e-9)
}

func TestAverageIsReproducible(t *testing.T) {
	p := Params{Size: 8, EqSteps: 10, MCSteps: 1}
	run := func() Observables {
		obs, err := Average(context.Background(), p, 2.0, ising.New(), rngcore.NewRNG(42).Source())
		require.NoError(t, err)
		return obs
	}
	a, b := run(), run()
	assert.Equal(t, a, b)
	assert.Equal(t, 2.0, a.Temperature)
}

func TestAverageRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	r := rngcore.NewRNG(1).Source()
	_, err := Average(ctx, Params{Size: 0, MCSteps: 1}, 1, ising.New(), r)
	require.ErrorIs(t, err, ErrInvalidParameter)
	_, err = Average(ctx, Params{Size: 4, MCSteps: 1}, 0, ising.New(), r)
	require.ErrorIs(t, err, ErrInvalidParameter)
	_, err = Average(ctx, Params{Size: 4, MCSteps: 1}, math.Inf(1), ising.New(), r)
	require.ErrorIs(t, err, ErrInvalidParameter)
	_, err = Average(ctx, Params{Size: 4, MCSteps: 1}, math.NaN(), ising.New(), r)
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestAverageHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Average(ctx, Params{Size: 4, EqSteps: 10, MCSteps: 10}, 1, ising.New(), rngcore.NewRNG(1).Source())
	require.True(t, errors.Is(err, context.Canceled))
}

func TestTwoStateMatchesBoltzmannOccupation(t *testing.T) {
	const temp = 1.0
	obs, err := Average(context.Background(), Params{Size: 16, EqSteps: 50, MCSteps: 200}, temp, twostate.New(), rngcore.NewRNG(11).Source())
	require.NoError(t, err)
	// each site is excited with probability e^-β/(1+e^-β)
	want := 1 / (1 + math.Exp(1/temp))
	assert.InDelta(t, want, obs.Energy, 0.02)
	assert.InDelta(t, 2*want-1, obs.Magnetization, 0.04)
	assert.Greater(t, obs.SpecificHeat, 0.0)
	assert.Greater(t, obs.Acceptance, 0.0)
	assert.Less(t, obs.Acceptance, 1.0)
}

func TestIsingDisordersAtHighTemperature(t *testing.T) {
	obs, err := Average(context.Background(), Params{Size: 8, EqSteps: 20, MCSteps: 100}, 100, ising.New(), rngcore.NewRNG(3).Source())
	require.NoError(t, err)
	assert.InDelta(t, 0, obs.Energy, 0.1)
	assert.InDelta(t, 0, obs.Magnetization, 0.1)
	assert.Greater(t, obs.Acceptance, 0.9)
}

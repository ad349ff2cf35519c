package mc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ising-mc/internal/sims/ising"
	"ising-mc/internal/sims/twostate"
)

func TestRunnerResultsIndependentOfWorkers(t *testing.T) {
	temps := []float64{1.5, 2.0, 2.269, 2.5, 3.0, 3.5}
	run := func(workers int) *SweepResult {
		r := &Runner{Params: Params{Size: 6, EqSteps: 5, MCSteps: 10}, Seed: 99, Workers: workers}
		res, err := r.Run(context.Background(), temps, ising.New())
		require.NoError(t, err)
		return res
	}
	serial := run(1)
	parallel := run(4)
	assert.Equal(t, serial, parallel)
	assert.Equal(t, temps, serial.Temperatures)
	assert.Equal(t, "ising", serial.Model)
	for _, series := range [][]float64{serial.Energy, serial.Magnetization, serial.SpecificHeat, serial.Susceptibility, serial.Acceptance} {
		assert.Len(t, series, len(temps))
	}
}

func TestRunnerMatchesAverageAtEachIndex(t *testing.T) {
	temps := []float64{0.5, 1.0}
	p := Params{Size: 4, EqSteps: 3, MCSteps: 4}
	r := &Runner{Params: p, Seed: 5, Workers: 2}
	res, err := r.Run(context.Background(), temps, twostate.New())
	require.NoError(t, err)
	for i, temp := range temps {
		want, err := Average(context.Background(), p, temp, twostate.New(), streamFor(5, i))
		require.NoError(t, err)
		assert.Equal(t, want, res.Point(i))
	}
}

func TestRunnerRestoresTemperatureOrder(t *testing.T) {
	r := &Runner{Params: Params{Size: 4, EqSteps: 1, MCSteps: 2}, Seed: 1, Workers: 3}
	res, err := r.Run(context.Background(), []float64{3, 1, 2}, ising.New())
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, res.Temperatures)
	assert.Equal(t, 3, res.Len())
}

func TestRunnerAbortsWithoutPartialResults(t *testing.T) {
	r := &Runner{Params: Params{Size: 4, EqSteps: 1, MCSteps: 2}, Seed: 1, Workers: 2}
	res, err := r.Run(context.Background(), []float64{1, 2, -1, 3}, ising.New())
	require.ErrorIs(t, err, ErrInvalidParameter)
	assert.Nil(t, res)
}

func TestRunnerRejectsEmptySet(t *testing.T) {
	r := &Runner{Params: Params{Size: 4, MCSteps: 1}}
	_, err := r.Run(context.Background(), nil, ising.New())
	require.ErrorIs(t, err, ErrEmptyTemperatureSet)
}

func TestRunnerRejectsBadParams(t *testing.T) {
	r := &Runner{Params: Params{Size: -2, MCSteps: 1}}
	_, err := r.Run(context.Background(), []float64{1}, ising.New())
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestRunnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &Runner{Params: Params{Size: 4, EqSteps: 10, MCSteps: 10}, Workers: 2}
	res, err := r.Run(ctx, []float64{1, 2}, ising.New())
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)
}

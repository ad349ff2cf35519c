package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ising-mc/internal/core"
	"ising-mc/internal/mc"
	"ising-mc/internal/sims/ising"
	"ising-mc/internal/sims/twostate"
)

func TestHistoryKeepsNewestSamples(t *testing.T) {
	h := NewHistory(3)
	assert.Equal(t, 0, h.Len())
	for i := 0; i < 5; i++ {
		h.Add(mc.TracePoint{Step: i, Energy: float64(-i), Magnetization: float64(i) / 10})
	}
	assert.Equal(t, 3, h.Len())
	pts := h.Points()
	assert.Equal(t, []int{2, 3, 4}, []int{pts[0].Step, pts[1].Step, pts[2].Step})
	assert.Equal(t, []float64{-2, -3, -4}, h.Energies())
	assert.Equal(t, []float64{0.2, 0.3, 0.4}, h.Magnetizations())

	h.Clear()
	assert.Equal(t, 0, h.Len())
	h.Add(mc.TracePoint{Step: 9})
	assert.Equal(t, 9, h.Points()[0].Step)
}

func TestHistoryZeroCapacity(t *testing.T) {
	h := NewHistory(0)
	h.Add(mc.TracePoint{Step: 1})
	h.Add(mc.TracePoint{Step: 2})
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, 2, h.Points()[0].Step)
}

func TestStripFractionCoversModelEnergies(t *testing.T) {
	isingGround, err := core.NewLattice(8, core.InitUniform, 1, nil)
	require.NoError(t, err)
	checker, err := core.NewLattice(8, core.InitUniform, 1, nil)
	require.NoError(t, err)
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			if (i+j)%2 == 1 {
				checker.Flip(i, j)
			}
		}
	}
	sites := 64.0

	m := ising.New()
	assert.Equal(t, 0.0, stripFraction(m.TotalEnergy(isingGround)/sites, energyLo, energyHi))
	assert.Equal(t, 1.0, stripFraction(m.TotalEnergy(checker)/sites, energyLo, energyHi))

	ts := twostate.New()
	allUp := stripFraction(ts.TotalEnergy(isingGround)/sites, energyLo, energyHi)
	assert.Equal(t, 1.0, allUp)
	half := stripFraction(ts.TotalEnergy(checker)/sites, energyLo, energyHi)
	assert.InDelta(t, 0.75, half, 1e-12)

	assert.Equal(t, 0.5, stripFraction(0, magnetLo, magnetHi))
	assert.Equal(t, 0.0, stripFraction(-3, energyLo, energyHi))
	assert.Equal(t, 1.0, stripFraction(3, energyLo, energyHi))
}

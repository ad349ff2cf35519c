package twostate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ising-mc/internal/core"
	rngcore "ising-mc/pkg/core"
)

func TestGroundStateEnergy(t *testing.T) {
	m := New()
	l, err := core.NewLattice(8, core.InitUniform, m.GroundSpin(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, m.TotalEnergy(l))
	assert.Equal(t, -64.0, m.TotalMagnetization(l))
	assert.Equal(t, 1.0, m.FlipCost(l, 3, 3))
}

func TestExcitedSiteDecays(t *testing.T) {
	m := New()
	l, err := core.NewLattice(3, core.InitUniform, -1, nil)
	require.NoError(t, err)
	l.Set(1, 1, 1)
	assert.Equal(t, -1.0, m.FlipCost(l, 1, 1))
	assert.Equal(t, 1.0, m.TotalEnergy(l))
	// neighbours do not matter
	assert.Equal(t, 1.0, m.FlipCost(l, 0, 1))
}

func TestEnergyCountsExcitedSites(t *testing.T) {
	m := New()
	l, err := core.NewLattice(10, core.InitRandom, 0, rngcore.NewRNG(2).Source())
	require.NoError(t, err)
	// E = (M + N²)/2 since each excited site adds +1 and each ground site -1 to M
	assert.Equal(t, (m.TotalMagnetization(l)+100)/2, m.TotalEnergy(l))
}

func TestFlipCostMatchesEnergyDifference(t *testing.T) {
	m := New()
	l, err := core.NewLattice(4, core.InitRandom, 0, rngcore.NewRNG(8).Source())
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			before := m.TotalEnergy(l)
			cost := m.FlipCost(l, i, j)
			l.Flip(i, j)
			assert.Equal(t, cost, m.TotalEnergy(l)-before)
			l.Flip(i, j)
		}
	}
}

func TestRegistered(t *testing.T) {
	got, err := core.LookupModel("twostate")
	require.NoError(t, err)
	assert.Equal(t, "twostate", got.Name())
}

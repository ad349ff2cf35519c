package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStreamsAreDeterministic(t *testing.T) {
	a := NewStream(7, 3)
	b := NewStream(7, 3)
	for i := 0; i < 64; i++ {
		require.Equal(t, a.Float64(), b.Float64())
	}
}

func TestStreamsDiffer(t *testing.T) {
	a := NewStream(7, 0)
	b := NewStream(7, 1)
	same := 0
	for i := 0; i < 32; i++ {
		if a.Float64() == b.Float64() {
			same++
		}
	}
	require.Less(t, same, 32)
}

func TestFillSpinsProducesOnlyUnitSpins(t *testing.T) {
	buf := make([]int8, 1024)
	FillSpins(NewRNG(1).Source(), buf)
	up := 0
	for _, s := range buf {
		require.Contains(t, []int8{-1, 1}, s)
		if s == 1 {
			up++
		}
	}
	require.InDelta(t, 512, up, 100)
}

func TestSpinIsUnit(t *testing.T) {
	r := NewRNG(42)
	for i := 0; i < 100; i++ {
		s := r.Spin()
		require.True(t, s == 1 || s == -1)
	}
}

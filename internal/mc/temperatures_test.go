package mc

import (
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTemperaturesSortedAndBounded(t *testing.T) {
	ts := TemperatureSpec{Count: 1000, Mean: 2.269, StdDev: 0.64, Low: 1.0, High: 4.0}
	temps, err := GenerateTemperatures(ts, rand.NewPCG(1, 2))
	require.NoError(t, err)
	require.LessOrEqual(t, len(temps), 1000)
	require.Greater(t, len(temps), 800)
	require.True(t, sort.Float64sAreSorted(temps))
	for i, v := range temps {
		require.Greater(t, v, 1.0)
		require.Less(t, v, 4.0)
		if i > 0 {
			require.Greater(t, v, temps[i-1], "not strictly increasing at %d", i)
		}
	}
}

func TestGenerateTemperaturesDeterministic(t *testing.T) {
	ts := TemperatureSpec{Count: 50, Mean: 1, StdDev: 0.64, Low: 0, High: 5.8}
	a, err := GenerateTemperatures(ts, rand.NewPCG(9, 9))
	require.NoError(t, err)
	b, err := GenerateTemperatures(ts, rand.NewPCG(9, 9))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateTemperaturesEmptySet(t *testing.T) {
	ts := TemperatureSpec{Count: 100, Mean: 50, StdDev: 0.01, Low: 1, High: 4}
	temps, err := GenerateTemperatures(ts, rand.NewPCG(1, 1))
	require.ErrorIs(t, err, ErrEmptyTemperatureSet)
	assert.Nil(t, temps)
}

func TestGenerateTemperaturesZeroSpreadCollapses(t *testing.T) {
	ts := TemperatureSpec{Count: 10, Mean: 2, StdDev: 0, Low: 1, High: 4}
	temps, err := GenerateTemperatures(ts, rand.NewPCG(1, 1))
	require.NoError(t, err)
	assert.Equal(t, []float64{2}, temps)
}

func TestTemperatureSpecValidate(t *testing.T) {
	cases := []struct {
		name string
		ts   TemperatureSpec
	}{
		{"zero count", TemperatureSpec{Count: 0, Mean: 2, StdDev: 1, Low: 1, High: 4}},
		{"negative stddev", TemperatureSpec{Count: 10, Mean: 2, StdDev: -1, Low: 1, High: 4}},
		{"negative low", TemperatureSpec{Count: 10, Mean: 2, StdDev: 1, Low: -1, High: 4}},
		{"low equals high", TemperatureSpec{Count: 10, Mean: 2, StdDev: 1, Low: 3, High: 3}},
		{"inverted", TemperatureSpec{Count: 10, Mean: 2, StdDev: 1, Low: 4, High: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := GenerateTemperatures(tc.ts, rand.NewPCG(1, 1))
			require.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}

func TestLinearTemperatures(t *testing.T) {
	temps, err := LinearTemperatures(1.0, 3.0, 4)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.0, 1.5, 2.0, 2.5}, temps)

	_, err = LinearTemperatures(1, 3, 0)
	require.ErrorIs(t, err, ErrInvalidParameter)
	_, err = LinearTemperatures(0, 3, 4)
	require.ErrorIs(t, err, ErrInvalidParameter)
	_, err = LinearTemperatures(3, 1, 4)
	require.ErrorIs(t, err, ErrInvalidParameter)
}

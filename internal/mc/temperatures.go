package mc

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/stat/distuv"
)

// TemperatureSpec describes a temperature set drawn from a normal
// distribution and filtered to the open interval (Low, High).
type TemperatureSpec struct {
	Count  int     `yaml:"count"`
	Mean   float64 `yaml:"mean"`
	StdDev float64 `yaml:"stddev"`
	Low    float64 `yaml:"low"`
	High   float64 `yaml:"high"`
}

// Validate rejects settings that cannot yield a physical set.
func (s TemperatureSpec) Validate() error {
	switch {
	case s.Count <= 0:
		return fmt.Errorf("%w: temperature count %d must be positive", ErrInvalidParameter, s.Count)
	case s.StdDev < 0 || math.IsNaN(s.StdDev):
		return fmt.Errorf("%w: temperature stddev %v must not be negative", ErrInvalidParameter, s.StdDev)
	case s.Low < 0 || math.IsNaN(s.Low):
		return fmt.Errorf("%w: lower temperature bound %v must not be negative", ErrInvalidParameter, s.Low)
	case !(s.Low < s.High):
		return fmt.Errorf("%w: temperature bounds (%v, %v) are empty", ErrInvalidParameter, s.Low, s.High)
	}
	return nil
}

// GenerateTemperatures draws ts.Count samples from Normal(Mean, StdDev),
// keeps those strictly inside (Low, High) and returns them sorted ascending
// with duplicates removed. The result may be shorter than Count.
func GenerateTemperatures(ts TemperatureSpec, src rand.Source) ([]float64, error) {
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	dist := distuv.Normal{Mu: ts.Mean, Sigma: ts.StdDev, Src: src}
	temps := make([]float64, 0, ts.Count)
	for i := 0; i < ts.Count; i++ {
		t := dist.Rand()
		if t > ts.Low && t < ts.High {
			temps = append(temps, t)
		}
	}
	if len(temps) == 0 {
		return nil, fmt.Errorf("%w: none of %d samples around %v fell in (%v, %v)",
			ErrEmptyTemperatureSet, ts.Count, ts.Mean, ts.Low, ts.High)
	}
	slices.Sort(temps)
	return slices.Compact(temps), nil
}

// LinearTemperatures returns count evenly spaced temperatures starting at
// start with spacing (stop-start)/count; stop itself is excluded.
func LinearTemperatures(start, stop float64, count int) ([]float64, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: temperature count %d must be positive", ErrInvalidParameter, count)
	}
	if !(start > 0) || !(start < stop) || math.IsInf(stop, 0) {
		return nil, fmt.Errorf("%w: temperature range [%v, %v) is not positive and increasing", ErrInvalidParameter, start, stop)
	}
	dx := (stop - start) / float64(count)
	temps := make([]float64, count)
	for i := range temps {
		temps[i] = start + float64(i)*dx
	}
	return temps, nil
}

package mc

import "errors"

var (
	// ErrInvalidParameter indicates a non-positive lattice size, a negative or
	// zero sweep count, a non-positive temperature or inverted bounds.
	ErrInvalidParameter = errors.New("mc: invalid parameter")
	// ErrEmptyTemperatureSet indicates every sampled temperature was filtered out.
	ErrEmptyTemperatureSet = errors.New("mc: empty temperature set")
	// ErrNumericOverflow indicates the accumulators cannot hold the requested
	// run without losing integer precision.
	ErrNumericOverflow = errors.New("mc: run exceeds numeric range")
)

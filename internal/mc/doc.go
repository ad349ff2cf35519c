// Package mc runs single-spin-flip Metropolis Monte Carlo on lattice spin
// models.
//
// A sweep is N² trials on uniformly random cells drawn with replacement, so a
// cell may be visited several times or not at all within one sweep. It is
// not a raster pass.
//
// Average runs one temperature: equilibration sweeps are discarded, then every
// measurement sweep is followed by one energy/magnetization sample. Runner
// fans Average out over a temperature set, and Chain/RunTrace follow a single
// configuration through time for snapshot rendering.
package mc

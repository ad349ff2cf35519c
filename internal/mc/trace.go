package mc

import "gonum.org/v1/gonum/stat"

// Trace is the time series of a Chain run.
type Trace struct {
	Model       string
	Size        int
	Temperature float64
	Points      []TracePoint
}

// TraceSummary holds equilibrium estimates from the tail of a trace.
type TraceSummary struct {
	Samples       int
	MeanEnergy    float64
	StdEnergy     float64
	MeanMagnet    float64
	StdMagnet     float64
	MeanAbsMagnet float64
}

// Steps returns the step numbers as floats for plotting.
func (t *Trace) Steps() []float64 {
	out := make([]float64, len(t.Points))
	for i, p := range t.Points {
		out[i] = float64(p.Step)
	}
	return out
}

// Energies returns the per-site energy series.
func (t *Trace) Energies() []float64 {
	out := make([]float64, len(t.Points))
	for i, p := range t.Points {
		out[i] = p.Energy
	}
	return out
}

// Magnetizations returns the per-site magnetization series.
func (t *Trace) Magnetizations() []float64 {
	out := make([]float64, len(t.Points))
	for i, p := range t.Points {
		out[i] = p.Magnetization
	}
	return out
}

// Summary averages the samples after the first burnIn steps. A burnIn at or
// beyond the trace length yields a zero summary.
func (t *Trace) Summary(burnIn int) TraceSummary {
	if burnIn < 0 {
		burnIn = 0
	}
	if burnIn >= len(t.Points) {
		return TraceSummary{}
	}
	tail := t.Points[burnIn:]
	e := make([]float64, len(tail))
	m := make([]float64, len(tail))
	abs := make([]float64, len(tail))
	for i, p := range tail {
		e[i] = p.Energy
		m[i] = p.Magnetization
		abs[i] = p.Magnetization
		if abs[i] < 0 {
			abs[i] = -abs[i]
		}
	}
	s := TraceSummary{Samples: len(tail)}
	s.MeanEnergy, s.StdEnergy = stat.MeanStdDev(e, nil)
	s.MeanMagnet, s.StdMagnet = stat.MeanStdDev(m, nil)
	s.MeanAbsMagnet = stat.Mean(abs, nil)
	return s
}

package ui

import "ising-mc/internal/mc"

// Per-site ranges drawn by the overlay strip. Ising energy per site lies in
// [-1, 1] under the quarter normalization and two-state energy in [0, 1].
const (
	energyLo, energyHi = -1.0, 1.0
	magnetLo, magnetHi = -1.0, 1.0
)

// stripFraction maps v onto [0, 1] across [lo, hi], clamping outliers.
func stripFraction(v, lo, hi float64) float64 {
	frac := (v - lo) / (hi - lo)
	if frac < 0 {
		return 0
	}
	if frac > 1 {
		return 1
	}
	return frac
}

// History is a fixed-capacity ring of recent chain samples.
type History struct {
	points []mc.TracePoint
	start  int
	count  int
}

// NewHistory allocates a ring holding up to capacity samples.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = 1
	}
	return &History{points: make([]mc.TracePoint, capacity)}
}

// Add appends p, evicting the oldest sample when full.
func (h *History) Add(p mc.TracePoint) {
	if h.count < len(h.points) {
		h.points[(h.start+h.count)%len(h.points)] = p
		h.count++
		return
	}
	h.points[h.start] = p
	h.start = (h.start + 1) % len(h.points)
}

// Len returns the number of stored samples.
func (h *History) Len() int { return h.count }

// Clear drops all samples.
func (h *History) Clear() { h.start, h.count = 0, 0 }

// Points returns the samples oldest first.
func (h *History) Points() []mc.TracePoint {
	out := make([]mc.TracePoint, h.count)
	for i := range out {
		out[i] = h.points[(h.start+i)%len(h.points)]
	}
	return out
}

// Energies returns the stored energies oldest first.
func (h *History) Energies() []float64 {
	out := make([]float64, h.count)
	for i, p := range h.Points() {
		out[i] = p.Energy
	}
	return out
}

// Magnetizations returns the stored magnetizations oldest first.
func (h *History) Magnetizations() []float64 {
	out := make([]float64, h.count)
	for i, p := range h.Points() {
		out[i] = p.Magnetization
	}
	return out
}

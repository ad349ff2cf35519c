//go:build !ebiten

package ui

import "ising-mc/internal/mc"

// Overlay keeps the sample history but draws nothing in headless builds.
type Overlay struct {
	history *History
}

// NewOverlay constructs a headless overlay.
func NewOverlay(capacity int) *Overlay { return &Overlay{history: NewHistory(capacity)} }

// Record appends a sample to the history.
func (o *Overlay) Record(p mc.TracePoint) { o.history.Add(p) }

// Clear drops the history.
func (o *Overlay) Clear() { o.history.Clear() }

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any, int, int) {}

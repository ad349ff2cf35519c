//go:build ebiten

package ui

import (
	"image/color"

	"ising-mc/internal/mc"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const overlayHeight = 64

// Overlay draws the recent energy and magnetization history over the bottom
// of the lattice view. Key G toggles it.
type Overlay struct {
	history *History
	visible bool
	pixel   *ebiten.Image
}

// NewOverlay constructs an overlay keeping the last capacity samples.
func NewOverlay(capacity int) *Overlay {
	o := &Overlay{history: NewHistory(capacity), visible: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Record appends a sample to the history.
func (o *Overlay) Record(p mc.TracePoint) { o.history.Add(p) }

// Clear drops the history, e.g. after a reset.
func (o *Overlay) Clear() { o.history.Clear() }

// Update handles the visibility toggle.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		o.visible = !o.visible
	}
}

// Draw paints the history strip across the given width at the bottom of a
// view of the given height.
func (o *Overlay) Draw(screen *ebiten.Image, width, height int) {
	if !o.visible || o.history.Len() < 2 || width <= 0 || height <= overlayHeight {
		return
	}
	top := height - overlayHeight
	o.rect(screen, 0, float64(top), float64(width), overlayHeight, color.RGBA{A: 160})

	energy := color.RGBA{R: 240, G: 120, B: 80, A: 255}
	magnet := color.RGBA{R: 90, G: 180, B: 250, A: 255}
	o.series(screen, o.history.Energies(), energyLo, energyHi, width, top, energy)
	o.series(screen, o.history.Magnetizations(), magnetLo, magnetHi, width, top, magnet)

	face := basicfont.Face7x13
	text.Draw(screen, "E", face, 4, top+14, energy)
	text.Draw(screen, "M", face, 16, top+14, magnet)
}

func (o *Overlay) series(screen *ebiten.Image, values []float64, lo, hi float64, width, top int, c color.Color) {
	n := len(values)
	span := float64(overlayHeight - 4)
	for i, v := range values {
		x := float64(i) * float64(width-2) / float64(n-1)
		y := float64(top) + 2 + (1-stripFraction(v, lo, hi))*span
		o.rect(screen, x, y, 2, 2, c)
	}
}

func (o *Overlay) rect(screen *ebiten.Image, x, y, w, h float64, c color.Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	screen.DrawImage(o.pixel, op)
}

//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"ising-mc/internal/core"
)

// LatticePainter keeps an n×n ebiten image in sync with a lattice.
type LatticePainter struct {
	n   int
	img *ebiten.Image
	buf []byte
}

// NewLatticePainter allocates a painter for an n×n lattice.
func NewLatticePainter(n int) *LatticePainter {
	lp := &LatticePainter{n: n, buf: make([]byte, 4*n*n)}
	lp.img = ebiten.NewImage(n, n)
	return lp
}

// Blit uploads the lattice into the painter image and draws it scaled.
func (lp *LatticePainter) Blit(dst *ebiten.Image, l *core.Lattice, up, down color.Color, scale int) {
	if l == nil || l.Size() != lp.n {
		return
	}
	fillSpinRGBA(lp.buf, l.Spins(), up, down)
	lp.img.WritePixels(lp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(lp.img, op)
}

// Size returns the lattice edge length.
func (lp *LatticePainter) Size() int { return lp.n }

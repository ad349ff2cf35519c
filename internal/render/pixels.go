package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"ising-mc/internal/core"
)

// Default spin colours.
var (
	SpinUp   color.Color = color.RGBA{R: 235, G: 235, B: 240, A: 255}
	SpinDown color.Color = color.RGBA{R: 24, G: 28, B: 48, A: 255}
)

// fillSpinRGBA converts spin data (±1) into RGBA pixels in buf.
func fillSpinRGBA(buf []byte, spins []int8, up, down color.Color) {
	rUp, gUp, bUp, aUp := up.RGBA()
	rDown, gDown, bDown, aDown := down.RGBA()
	for i, s := range spins {
		base := i * 4
		if s > 0 {
			buf[base+0] = uint8(rUp >> 8)
			buf[base+1] = uint8(gUp >> 8)
			buf[base+2] = uint8(bUp >> 8)
			buf[base+3] = uint8(aUp >> 8)
			continue
		}
		buf[base+0] = uint8(rDown >> 8)
		buf[base+1] = uint8(gDown >> 8)
		buf[base+2] = uint8(bDown >> 8)
		buf[base+3] = uint8(aDown >> 8)
	}
}

// SpinImage renders the lattice as an image with each site drawn as a
// scale×scale block.
func SpinImage(l *core.Lattice, scale int, up, down color.Color) *image.RGBA {
	if scale <= 0 {
		scale = 1
	}
	n := l.Size()
	small := make([]byte, 4*n*n)
	fillSpinRGBA(small, l.Spins(), up, down)
	if scale == 1 {
		return &image.RGBA{Pix: small, Stride: 4 * n, Rect: image.Rect(0, 0, n, n)}
	}

	side := n * scale
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	for y := 0; y < side; y++ {
		row := img.Pix[y*img.Stride:]
		src := small[(y/scale)*4*n:]
		for x := 0; x < side; x++ {
			copy(row[x*4:x*4+4], src[(x/scale)*4:(x/scale)*4+4])
		}
	}
	return img
}

// WritePNG saves a rendering of the lattice to path.
func WritePNG(path string, l *core.Lattice, scale int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, SpinImage(l, scale, SpinUp, SpinDown)); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

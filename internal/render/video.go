package render

import (
	"bytes"
	"fmt"
	"image/jpeg"

	"github.com/icza/mjpeg"

	"ising-mc/internal/core"
)

// VideoWriter appends lattice frames to an MJPEG AVI file.
type VideoWriter struct {
	aw      mjpeg.AviWriter
	size    int
	scale   int
	frames  int
	buf     bytes.Buffer
	options jpeg.Options
}

// NewVideoWriter creates path for frames of an n×n lattice drawn at the given
// scale and played back at fps.
func NewVideoWriter(path string, n, scale, fps int) (*VideoWriter, error) {
	if n <= 0 || fps <= 0 {
		return nil, fmt.Errorf("video: invalid size %d or fps %d", n, fps)
	}
	if scale <= 0 {
		scale = 1
	}
	side := int32(n * scale)
	aw, err := mjpeg.New(path, side, side, int32(fps))
	if err != nil {
		return nil, fmt.Errorf("video: %w", err)
	}
	return &VideoWriter{aw: aw, size: n, scale: scale, options: jpeg.Options{Quality: 90}}, nil
}

// AddLattice encodes the lattice as the next frame.
func (v *VideoWriter) AddLattice(l *core.Lattice) error {
	if l.Size() != v.size {
		return fmt.Errorf("video: lattice size %d, writer expects %d", l.Size(), v.size)
	}
	v.buf.Reset()
	if err := jpeg.Encode(&v.buf, SpinImage(l, v.scale, SpinUp, SpinDown), &v.options); err != nil {
		return fmt.Errorf("video: encode frame %d: %w", v.frames, err)
	}
	if err := v.aw.AddFrame(v.buf.Bytes()); err != nil {
		return fmt.Errorf("video: add frame %d: %w", v.frames, err)
	}
	v.frames++
	return nil
}

// Frames returns the number of frames written so far.
func (v *VideoWriter) Frames() int { return v.frames }

// Close finalizes the AVI index.
func (v *VideoWriter) Close() error { return v.aw.Close() }

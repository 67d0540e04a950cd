package raster

import (
	"image"
	"math"
)

// FrameBuffer holds the rendering target as flat slices for cache locality.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8   // RGBA interleaved (straight alpha), len = W*H*4
	ZBuf   []float64 // depth per pixel, larger is nearer, initialized to -inf

	// covered marks pixels already blended by the current quad, so the
	// diagonal shared by its two triangles is not composited twice.
	covered []uint32
	quad    uint32
}

// NewFrameBuffer allocates a transparent color buffer and -inf z-buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	n := w * h
	zbuf := make([]float64, n)
	for i := range zbuf {
		zbuf[i] = math.Inf(-1)
	}
	return &FrameBuffer{
		Width:   w,
		Height:  h,
		Color:   make([]uint8, n*4),
		ZBuf:    zbuf,
		covered: make([]uint32, n),
		quad:    1,
	}
}

// BeginQuad starts a new blended surface.
func (fb *FrameBuffer) BeginQuad() {
	fb.quad++
}

// Image copies the color buffer into an NRGBA image.
func (fb *FrameBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Color)
	return img
}

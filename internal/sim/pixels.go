package sim

import (
	"image"
	"image/color"
)

// PixelBuffer mirrors the colors of one chunk as non-premultiplied RGBA
// bytes. Rows are stored top row first so the slice uploads directly as an
// image, while SetPixel and At take y-up local coordinates.
type PixelBuffer struct {
	W, H    int
	pix     []byte
	changed bool
}

// NewPixelBuffer allocates a transparent buffer with the given dimensions.
func NewPixelBuffer(w, h int) *PixelBuffer {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &PixelBuffer{W: w, H: h, pix: make([]byte, w*h*4)}
}

func (b *PixelBuffer) offset(x, y int) int { return ((b.H-1-y)*b.W + x) * 4 }

// SetPixel writes a color. Writing the color already present is not a change.
func (b *PixelBuffer) SetPixel(x, y int, c color.NRGBA) {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return
	}
	i := b.offset(x, y)
	s := b.pix[i : i+4 : i+4]
	if s[0] == c.R && s[1] == c.G && s[2] == c.B && s[3] == c.A {
		return
	}
	s[0], s[1], s[2], s[3] = c.R, c.G, c.B, c.A
	b.changed = true
}

// At returns the color at a local position.
func (b *PixelBuffer) At(x, y int) color.NRGBA {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return Transparent
	}
	i := b.offset(x, y)
	return color.NRGBA{R: b.pix[i], G: b.pix[i+1], B: b.pix[i+2], A: b.pix[i+3]}
}

// Pix exposes the backing bytes, top row first.
func (b *PixelBuffer) Pix() []byte { return b.pix }

// Changed reports whether a pixel changed since the last flush.
func (b *PixelBuffer) Changed() bool { return b.changed }

// Touch forces the next flush to upload the whole buffer.
func (b *PixelBuffer) Touch() { b.changed = true }

// Clear resets every pixel to transparent.
func (b *PixelBuffer) Clear() {
	clear(b.pix)
	b.changed = true
}

// Image copies the buffer into an image for snapshots and tests.
func (b *PixelBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.W, b.H))
	copy(img.Pix, b.pix)
	return img
}

// Surface is the display side of one chunk. Apply is called at most once per
// flush and only when the buffer changed.
type Surface interface {
	Apply(buf *PixelBuffer)
}

// SurfaceFactory creates the surface for the chunk at index in the chunk grid.
type SurfaceFactory func(index image.Point, w, h int) Surface

// Package term draws a world in a terminal with tcell, two cells per
// character using half blocks.
package term

import (
	"image"
	"image/color"
	"image/draw"

	"pixsim/internal/render"
	"pixsim/internal/sim"
)

// Canvas composes the chunk surfaces of a world into one image.
type Canvas struct {
	cfg sim.Config
	img *image.NRGBA
	// uploads counts chunk uploads since the last Take.
	uploads int
}

// NewCanvas attaches a canvas to every chunk of w.
func NewCanvas(w *sim.World) *Canvas {
	c := &Canvas{}
	c.Attach(w)
	return c
}

// Attach resizes the canvas for w and installs its surfaces.
func (c *Canvas) Attach(w *sim.World) {
	c.cfg = w.Config()
	size := w.Size()
	c.img = image.NewNRGBA(image.Rect(0, 0, size.X, size.Y))
	w.SetSurfaces(func(index image.Point, cw, ch int) sim.Surface {
		return &canvasSurface{canvas: c, at: render.ChunkOrigin(c.cfg, index)}
	})
}

type canvasSurface struct {
	canvas *Canvas
	at     image.Point
}

func (s *canvasSurface) Apply(buf *sim.PixelBuffer) {
	src := buf.Image()
	draw.Draw(s.canvas.img, src.Bounds().Add(s.at), src, image.Point{}, draw.Src)
	s.canvas.uploads++
}

// Size returns the canvas size in cells.
func (c *Canvas) Size() image.Point { return c.img.Rect.Size() }

// At returns the color of the cell at a y-down canvas position, blended onto
// black.
func (c *Canvas) At(x, y int) color.RGBA {
	if !image.Pt(x, y).In(c.img.Rect) {
		return color.RGBA{A: 255}
	}
	n := c.img.NRGBAAt(x, y)
	a := uint32(n.A)
	return color.RGBA{
		R: uint8(uint32(n.R) * a / 255),
		G: uint8(uint32(n.G) * a / 255),
		B: uint8(uint32(n.B) * a / 255),
		A: 255,
	}
}

// Take returns and resets the upload counter.
func (c *Canvas) Take() int {
	n := c.uploads
	c.uploads = 0
	return n
}

//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"pixsim/internal/core"
	"pixsim/internal/sim"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	gridColor  = color.RGBA{R: 70, G: 70, B: 90, A: 110}
	dirtyColor = color.RGBA{R: 255, G: 80, B: 60, A: 200}
	activeTint = color.RGBA{R: 80, G: 220, B: 120, A: 90}
)

// Overlay draws chunk borders, dirty rectangles and active cells on top of
// the world.
type Overlay struct {
	sim   core.Sim
	scale int
	// ShowDirty toggles the dirty rectangles; ShowActive the active cells.
	ShowDirty  bool
	ShowActive bool

	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: max(scale, 1)}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.ShowDirty && !o.ShowActive {
		return
	}
	w := o.sim.World()
	height := w.Size().Y
	for _, c := range w.Chunks() {
		origin := c.Origin()
		o.outline(screen, toScreen(c.Bounds().Add(origin), height), 1, gridColor)
		if o.ShowActive {
			c.Each(func(p image.Point, _ sim.Cell) {
				if c.IsActive(p) {
					cell := toScreen(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))}.Add(origin), height)
					o.fill(screen, image.Rectangle{Min: cell.Min.Mul(o.scale), Max: cell.Max.Mul(o.scale)}, activeTint)
				}
			})
		}
		if o.ShowDirty {
			if r, ok := c.Dirty(); ok {
				o.outline(screen, toScreen(r.Add(origin), height), 1, dirtyColor)
			}
		}
	}
}

// toScreen flips a y-up cell rectangle into y-down screen cells.
func toScreen(r image.Rectangle, height int) image.Rectangle {
	return image.Rect(r.Min.X, height-r.Max.Y, r.Max.X, height-r.Min.Y)
}

func (o *Overlay) fill(screen *ebiten.Image, r image.Rectangle, col color.Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(r.Dx()), float64(r.Dy()))
	op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

// outline draws the border of a cell rectangle t screen pixels thick.
func (o *Overlay) outline(screen *ebiten.Image, cells image.Rectangle, t int, col color.Color) {
	r := image.Rectangle{Min: cells.Min.Mul(o.scale), Max: cells.Max.Mul(o.scale)}
	o.fill(screen, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+t), col)
	o.fill(screen, image.Rect(r.Min.X, r.Max.Y-t, r.Max.X, r.Max.Y), col)
	o.fill(screen, image.Rect(r.Min.X, r.Min.Y, r.Min.X+t, r.Max.Y), col)
	o.fill(screen, image.Rect(r.Max.X-t, r.Min.Y, r.Max.X, r.Max.Y), col)
}

// Package hourglass pours a body of sand through a narrow glass neck.
package hourglass

import (
	"image"
	"image/color"
	"math"

	"pixsim/internal/core"
	"pixsim/internal/sim"
	"pixsim/internal/sims/scene"
)

// Glass is the color of the hourglass body.
var Glass = color.NRGBA{R: 60, G: 72, B: 88, A: 255}

// Config controls the hourglass.
type Config struct {
	World sim.Config
	Seed  int64
	// Neck is the half width of the opening in cells.
	Neck int
	// Fill is the share of the upper bulb's height filled with sand.
	Fill float64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	w := sim.DefaultConfig()
	w.ChunkW, w.ChunkH = 32, 32
	w.ChunksX, w.ChunksY = 2, 3
	return Config{World: w, Seed: 1, Neck: 1, Fill: 0.45}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(m map[string]string) Config {
	c := DefaultConfig()
	if m == nil {
		return c
	}
	c.World = scene.LayoutFromMap(c.World, m)
	c.Seed = scene.SeedFromMap(m, c.Seed)
	if f := scene.FloatFromMap(m, "neck", -1); f >= 1 {
		c.Neck = int(f)
	}
	if f := scene.FloatFromMap(m, "fill", -1); f > 0 && f <= 1 {
		c.Fill = f
	}
	return c
}

// Hourglass is the scenario.
type Hourglass struct {
	*scene.Base
	shape shape
}

type shape struct {
	cx, mid, top int
	neck         int
	slope        float64
}

func newShape(size image.Point, neck int) shape {
	s := shape{cx: size.X / 2, mid: size.Y / 2, top: size.Y - 3, neck: neck}
	if s.mid > 2 {
		s.slope = math.Max(0, float64(size.X/2-3-neck)/float64(s.mid-2))
	}
	return s
}

// halfWidth returns the interior half width of row y.
func (s shape) halfWidth(y int) int {
	d := y - s.mid
	if d < 0 {
		d = -d
	}
	return s.neck + int(float64(d)*s.slope)
}

// Inside reports whether p is inside the glass.
func (s shape) Inside(p image.Point) bool {
	if p.Y < 1 || p.Y > s.top {
		return false
	}
	dx := p.X - s.cx
	if dx < 0 {
		dx = -dx
	}
	return dx <= s.halfWidth(p.Y)
}

// New builds the hourglass.
func New(cfg Config) (*Hourglass, error) {
	h := &Hourglass{shape: newShape(cfg.World.Size(), cfg.Neck)}
	base, err := scene.New("hourglass", cfg.World, cfg.Seed, func(w *sim.World) {
		h.populate(w, cfg.Fill)
	})
	if err != nil {
		return nil, err
	}
	h.Base = base
	return h, nil
}

func (h *Hourglass) populate(w *sim.World, fill float64) {
	size := w.Size()
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			p := image.Pt(x, y)
			if !h.shape.Inside(p) {
				w.Instantiate(w.Pool().Static(Glass), p)
			}
		}
	}
	lo := h.shape.mid + 4
	hi := lo + int(float64(h.shape.top-lo)*fill)
	scene.Fill(w, image.Rect(0, lo, size.X, hi), sim.KindSand)
}

// Neck returns the row of the narrowest opening.
func (h *Hourglass) Neck() int { return h.shape.mid }

func init() {
	core.Register("hourglass", func(m map[string]string) (core.Sim, error) {
		return New(FromMap(m))
	})
}

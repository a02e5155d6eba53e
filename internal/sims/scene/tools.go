package scene

import (
	"errors"
	"image"
	"image/color"
	"math"

	"pixsim/internal/sim"
)

// ejectaSpeed scales an exploded pixel's distance from the center into its
// launch speed.
const ejectaSpeed = 7

// disc calls fn for every grid position within radius of center.
func disc(w *sim.World, center image.Point, radius int, fn func(p image.Point)) {
	r := image.Rect(center.X-radius, center.Y-radius, center.X+radius+1, center.Y+radius+1).Intersect(w.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dx, dy := x-center.X, y-center.Y
			if dx*dx+dy*dy <= radius*radius {
				fn(image.Pt(x, y))
			}
		}
	}
}

// Paint spawns default cells of kind k into the empty slots of a disc and
// returns how many were placed.
func Paint(w *sim.World, k sim.Kind, center image.Point, radius int) int {
	n := 0
	disc(w, center, radius, func(p image.Point) {
		if _, err := w.Spawn(k, p); err == nil {
			n++
		}
	})
	return n
}

// PaintStatic fills the empty slots of a disc with background of color c.
func PaintStatic(w *sim.World, c color.NRGBA, center image.Point, radius int) int {
	n := 0
	disc(w, center, radius, func(p image.Point) {
		if place(w, w.Pool().Static(c), p) {
			n++
		}
	})
	return n
}

// Erase removes every cell in a disc.
func Erase(w *sim.World, center image.Point, radius int) int {
	n := 0
	disc(w, center, radius, func(p image.Point) {
		if w.RemoveAt(p) == nil {
			n++
		}
	})
	return n
}

// FillStatic fills the empty slots of r with background of color c.
func FillStatic(w *sim.World, r image.Rectangle, c color.NRGBA) int {
	n := 0
	r = r.Intersect(w.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if place(w, w.Pool().Static(c), image.Pt(x, y)) {
				n++
			}
		}
	}
	return n
}

// Fill spawns default cells of kind k into the empty slots of r.
func Fill(w *sim.World, r image.Rectangle, k sim.Kind) int {
	n := 0
	r = r.Intersect(w.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if _, err := w.Spawn(k, image.Pt(x, y)); err == nil {
				n++
			}
		}
	}
	return n
}

// Explode clears a disc. Some of the background inside is thrown outward as
// particles carrying its color. It returns how many particles were launched.
func Explode(w *sim.World, center image.Point, radius int) int {
	rng := w.Rand()
	launched := 0
	disc(w, center, radius, func(p image.Point) {
		cell := w.CellAt(p)
		if cell == nil {
			return
		}
		col := cell.Color()
		background := cell.Kind() == sim.KindStatic
		if err := w.RemoveAt(p); err != nil {
			return
		}
		if !background || !rng.Chance(0.2) || !sim.Opaque(col) {
			return
		}
		d := p.Sub(center)
		ej := w.Pool().Particle(float64(d.X)*ejectaSpeed, float64(d.Y)*ejectaSpeed, col)
		if place(w, ej, p) {
			launched++
		}
	})
	return launched
}

// Flame lights a plus of fire centered on p.
func Flame(w *sim.World, p image.Point) int {
	n := 0
	for _, d := range append([]sim.Direction{sim.Stay}, sim.Cardinals[:]...) {
		if _, err := w.Spawn(sim.KindFire, p.Add(d.Offset())); err == nil {
			n++
		}
	}
	return n
}

// Spray launches a particle of color c from p in a random direction at up to
// speed cells per second.
func Spray(w *sim.World, p image.Point, c color.NRGBA, speed float64) bool {
	rng := w.Rand()
	angle := rng.Range(0, 2*math.Pi)
	mag := speed * math.Sqrt(rng.Float64())
	return place(w, w.Pool().Particle(mag*math.Cos(angle), mag*math.Sin(angle), c), p)
}

// place instantiates a pool-built cell, handing it back to the pool when the
// slot is taken.
func place(w *sim.World, cell sim.Cell, p image.Point) bool {
	err := w.Instantiate(cell, p)
	if err == nil {
		return true
	}
	if errors.Is(err, sim.ErrOccupied) || errors.Is(err, sim.ErrOutOfBounds) {
		w.Pool().Put(cell)
	}
	return false
}

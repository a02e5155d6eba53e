package sim

import "math"

// Particle is falling ejecta with a velocity in cells per second. It moves at
// most one cell per step, slides off whatever it hits and bakes into the
// background once it comes to rest while falling.
type Particle struct {
	cellState
	vx, vy float64
	// sub-cell offset from the slot center
	fx, fy float64
	// landAsSand turns the particle into a sand cell instead of baking.
	landAsSand bool
}

func (p *Particle) Kind() Kind { return KindParticle }

// Velocity returns the current velocity in cells per second.
func (p *Particle) Velocity() (vx, vy float64) { return p.vx, p.vy }

// LandAsSand makes the particle convert into sand when it lands.
func (p *Particle) LandAsSand() *Particle {
	p.landAsSand = true
	return p
}

func (p *Particle) Update(n Neighborhood) Result {
	m := n.Materials()
	dt := n.DT()
	p.vy -= m.Gravity * dt
	damp := 1 - m.Drag*dt
	p.vx *= damp
	p.vy *= damp
	p.fx += p.vx * dt
	p.fy += p.vy * dt

	dx, dy := cellStep(p.fx), cellStep(p.fy)
	if dx == 0 && dy == 0 {
		return Result{}
	}
	d := DirectionOf(dx, dy)
	if !n.ExistsAt(d) {
		p.fx = clampHalf(p.fx - float64(dx))
		p.fy = clampHalf(p.fy - float64(dy))
		return Result{Move: d}
	}

	// Blocked: look for room beside the obstruction, as sand would.
	falling := p.vy < 0
	p.fx, p.fy = 0, 0
	p.vx, p.vy = 0, 0
	off := d.Offset()
	sides := [2]Direction{DirectionOf(off.X-1, off.Y), DirectionOf(off.X+1, off.Y)}
	if n.Rand().Bool() {
		sides[0], sides[1] = sides[1], sides[0]
	}
	for _, side := range sides {
		if side != Stay && side != d && !n.ExistsAt(side) {
			return Result{Move: side}
		}
	}
	if !falling {
		return Result{}
	}
	if p.landAsSand {
		s := n.Pool().Sand()
		s.color = p.color
		return Result{Convert: s}
	}
	return Result{Die: DieBake}
}

func cellStep(offset float64) int {
	switch {
	case offset >= 0.5:
		return 1
	case offset <= -0.5:
		return -1
	}
	return 0
}

func clampHalf(v float64) float64 {
	return math.Max(-0.5, math.Min(0.5, v))
}

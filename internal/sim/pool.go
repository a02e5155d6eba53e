package sim

import (
	"fmt"
	"image/color"

	"pixsim/pkg/core"
)

const poolLimit = 1 << 14

// Pool recycles dead cells per variant. Constructors always return a fully
// reset cell, whether it was reused or freshly allocated.
type Pool struct {
	free     [kindCount][]Cell
	recycled int
	rng      *core.RNG
	mat      *Materials
}

// NewPool creates a pool drawing colors and timings from rng and mat.
func NewPool(rng *core.RNG, mat *Materials) *Pool {
	return &Pool{rng: rng, mat: mat}
}

// Put returns a cell that left the grid. The caller must not use it again.
func (p *Pool) Put(c Cell) {
	if c == nil {
		return
	}
	st := c.state()
	if st.chunk != nil {
		panic(fmt.Sprintf("sim: pooling %s cell still placed in chunk %v", c.Kind(), st.chunk.index))
	}
	k := c.Kind()
	if len(p.free[k]) >= poolLimit {
		return
	}
	*st = cellState{}
	p.free[k] = append(p.free[k], c)
}

func (p *Pool) take(k Kind) Cell {
	free := p.free[k]
	if len(free) == 0 {
		return nil
	}
	c := free[len(free)-1]
	free[len(free)-1] = nil
	p.free[k] = free[:len(free)-1]
	p.recycled++
	return c
}

// Len returns the number of idle cells across all variants.
func (p *Pool) Len() int {
	total := 0
	for _, f := range p.free {
		total += len(f)
	}
	return total
}

// Recycled returns how many cells were handed out again.
func (p *Pool) Recycled() int { return p.recycled }

// New builds a default cell of the given kind.
func (p *Pool) New(k Kind) (Cell, error) {
	switch k {
	case KindStatic:
		return p.Static(Rock), nil
	case KindSand:
		return p.Sand(), nil
	case KindWater:
		return p.Water(p.mat.MaxLiquid), nil
	case KindFire:
		return p.Fire(), nil
	case KindEmber:
		return p.Ember(), nil
	case KindParticle:
		return p.Particle(0, 0, gradient(p.rng, p.mat.SandLight, p.mat.SandDark)), nil
	case KindSnow:
		return p.Snow(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownKind, k)
}

// Static returns a background cell of color c.
func (p *Pool) Static(c color.NRGBA) *Static {
	s, _ := p.take(KindStatic).(*Static)
	if s == nil {
		s = &Static{}
	}
	*s = Static{}
	s.color = c
	s.stale = true
	return s
}

// Sand returns a sand cell colored from the sand gradient.
func (p *Pool) Sand() *Sand {
	s, _ := p.take(KindSand).(*Sand)
	if s == nil {
		s = &Sand{}
	}
	*s = Sand{}
	s.color = gradient(p.rng, p.mat.SandLight, p.mat.SandDark)
	return s
}

// Water returns a water cell holding amount of liquid.
func (p *Pool) Water(amount float64) *Water {
	w, _ := p.take(KindWater).(*Water)
	if w == nil {
		w = &Water{}
	}
	*w = Water{newLiquid: amount}
	w.color = w.tint(p.mat)
	return w
}

// Fire returns a fresh fire at the start of its lifetime.
func (p *Pool) Fire() *Fire {
	f, _ := p.take(KindFire).(*Fire)
	if f == nil {
		f = &Fire{}
	}
	*f = Fire{}
	f.start(p.mat)
	return f
}

// Ember returns an ember with a random glow and lifetime.
func (p *Pool) Ember() *Ember {
	e, _ := p.take(KindEmber).(*Ember)
	if e == nil {
		e = &Ember{}
	}
	*e = Ember{
		dieAt:     p.rng.Range(p.mat.EmberLifeMin, p.mat.EmberLifeMax),
		nextBurst: p.rng.Range(0, p.mat.EmberInterval),
	}
	e.color = RGBAf(1, p.rng.Range(0, 0.5), 0, 1)
	return e
}

// Particle returns ejecta launched with velocity (vx, vy) in cells per second.
func (p *Pool) Particle(vx, vy float64, c color.NRGBA) *Particle {
	pt, _ := p.take(KindParticle).(*Particle)
	if pt == nil {
		pt = &Particle{}
	}
	*pt = Particle{vx: vx, vy: vy}
	pt.color = c
	return pt
}

// Snow returns a snowflake.
func (p *Pool) Snow() *Snow {
	s, _ := p.take(KindSnow).(*Snow)
	if s == nil {
		s = &Snow{}
	}
	*s = Snow{}
	g := p.rng.Range(0.5, 1)
	s.color = RGBAf(g, g, g, 1)
	return s
}

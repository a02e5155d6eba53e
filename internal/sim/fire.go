package sim

import (
	"image/color"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Fire rises, fades from the start to the end color over its lifetime and
// then disappears. It spreads upward, ignites flammable static neighbors and
// melts grayscale ones.
type Fire struct {
	cellState
	fade [4]*gween.Tween
	age  float64
	rise float64
}

func (f *Fire) Kind() Kind { return KindFire }

// Age returns the simulated seconds the fire has burned.
func (f *Fire) Age() float64 { return f.age }

func (f *Fire) start(m *Materials) {
	from, to := m.FireStart, m.FireEnd
	life := float32(m.FireLifetime)
	f.fade[0] = gween.New(float32(from.R), float32(to.R), life, ease.Linear)
	f.fade[1] = gween.New(float32(from.G), float32(to.G), life, ease.Linear)
	f.fade[2] = gween.New(float32(from.B), float32(to.B), life, ease.Linear)
	f.fade[3] = gween.New(float32(from.A), float32(to.A), life, ease.Linear)
	f.color = from
	f.age = 0
	f.rise = 0
}

// advance burns the fire for dt seconds and reports whether it burned out.
func (f *Fire) advance(dt float64) (color.NRGBA, bool) {
	var ch [4]uint8
	done := true
	for i, tw := range f.fade {
		v, finished := tw.Update(float32(dt))
		ch[i] = clampByte(v)
		done = done && finished
	}
	f.age += dt
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, done
}

func (f *Fire) Update(n Neighborhood) Result {
	m := n.Materials()
	rng := n.Rand()
	dt := n.DT()

	c, done := f.advance(dt)
	if done {
		return Result{Die: DieClear}
	}
	res := Result{Recolor: true, Color: c}

	if rng.Chance(m.FireSpawnChance) && !n.ExistsAt(North) {
		child := n.Pool().Fire()
		if col, spent := child.advance(f.age + m.FireOffspringAge); spent {
			n.Pool().Put(child)
		} else {
			child.color = col
			res.Edits = append(res.Edits, Edit{Op: EditSpawn, Dir: North, Cell: child})
		}
	}

	for _, d := range Directions {
		s, ok := n.CellAt(d).(*Static)
		if !ok {
			continue
		}
		switch {
		case IsGrayscale(s.color):
			res.Edits = append(res.Edits, Edit{Op: EditClear, Dir: d})
		case m.IsFlammable(s.color) && rng.Chance(m.FireIgniteChance):
			res.Edits = append(res.Edits, Edit{Op: EditReplace, Dir: d, Cell: n.Pool().Ember()})
		}
	}

	f.rise += m.FireBuoyancy * dt
	if f.rise >= 1 {
		f.rise = 1
		if !spawnsNorth(res.Edits) && !n.ExistsAt(North) {
			f.rise = 0
			res.Move = North
			return res
		}
		up := [2]Direction{NorthWest, NorthEast}
		if rng.Bool() {
			up[0], up[1] = up[1], up[0]
		}
		for _, d := range up {
			if !n.ExistsAt(d) {
				f.rise = 0
				res.Move = d
				break
			}
		}
	}
	return res
}

func spawnsNorth(edits []Edit) bool {
	for _, e := range edits {
		if e.Op == EditSpawn && e.Dir == North {
			return true
		}
	}
	return false
}

func clampByte(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v + 0.5)
}

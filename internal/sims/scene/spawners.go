package scene

import (
	"image"
	"image/color"

	"pixsim/internal/sim"
)

// SnowFall drops a snowflake at a random column of the top row with the given
// chance each step.
type SnowFall struct {
	Chance  float64
	Enabled bool
}

func (s *SnowFall) Spawn(w *sim.World) {
	if !s.Enabled || !w.Rand().Chance(s.Chance) {
		return
	}
	size := w.Size()
	w.Spawn(sim.KindSnow, image.Pt(w.Rand().IntN(size.X), size.Y-1))
}

// Sprayer launches a particle from At every Every steps.
type Sprayer struct {
	At      image.Point
	Every   uint64
	Speed   float64
	Color   color.NRGBA
	Enabled bool
}

func (s *Sprayer) Spawn(w *sim.World) {
	if !s.Enabled || s.Every == 0 || w.Frame()%s.Every != 0 {
		return
	}
	Spray(w, s.At, s.Color, s.Speed)
}

// Switch is a spawner that front-ends can turn on and off.
type Switch interface {
	Spawner
	SetEnabled(on bool)
	IsEnabled() bool
}

func (s *SnowFall) SetEnabled(on bool) { s.Enabled = on }
func (s *SnowFall) IsEnabled() bool    { return s.Enabled }

func (s *Sprayer) SetEnabled(on bool) { s.Enabled = on }
func (s *Sprayer) IsEnabled() bool    { return s.Enabled }

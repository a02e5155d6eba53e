// Package sandbox is an empty walled box for painting by hand.
package sandbox

import (
	"image"

	"pixsim/internal/core"
	"pixsim/internal/sim"
	"pixsim/internal/sims/scene"
)

// Config controls the sandbox.
type Config struct {
	World sim.Config
	Seed  int64
	// Walls adds rock side walls to the floor.
	Walls bool
	// SnowChance is the per-step chance of a snowflake; 0 disables snowfall.
	SnowChance float64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{World: sim.DefaultConfig(), Seed: 1, Walls: true}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(m map[string]string) Config {
	c := DefaultConfig()
	if m == nil {
		return c
	}
	c.World = scene.LayoutFromMap(c.World, m)
	c.Seed = scene.SeedFromMap(m, c.Seed)
	c.Walls = scene.BoolFromMap(m, "walls", c.Walls)
	c.SnowChance = scene.FloatFromMap(m, "snow", c.SnowChance)
	return c
}

// Sandbox is an empty box with a rock floor.
type Sandbox struct {
	*scene.Base
	Snow *scene.SnowFall
}

// New builds the sandbox.
func New(cfg Config) (*Sandbox, error) {
	snow := &scene.SnowFall{Chance: cfg.SnowChance, Enabled: cfg.SnowChance > 0}
	base, err := scene.New("sandbox", cfg.World, cfg.Seed, func(w *sim.World) {
		size := w.Size()
		scene.FillStatic(w, image.Rect(0, 0, size.X, 1), sim.Rock)
		if cfg.Walls {
			scene.FillStatic(w, image.Rect(0, 1, 1, size.Y), sim.Rock)
			scene.FillStatic(w, image.Rect(size.X-1, 1, size.X, size.Y), sim.Rock)
		}
	}, snow)
	if err != nil {
		return nil, err
	}
	return &Sandbox{Base: base, Snow: snow}, nil
}

func init() {
	core.Register("sandbox", func(m map[string]string) (core.Sim, error) {
		return New(FromMap(m))
	})
}

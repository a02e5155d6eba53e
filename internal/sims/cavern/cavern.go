// Package cavern carves a noise cave and fills it with every material: wood
// beams with a fire, a water pool, a sand heap, snowfall from the surface and
// a particle fountain.
package cavern

import (
	"image"

	"github.com/ojrac/opensimplex-go"

	"pixsim/internal/core"
	"pixsim/internal/sim"
	"pixsim/internal/sims/scene"
)

// Config controls the cavern.
type Config struct {
	World sim.Config
	Seed  int64

	// Roughness is the noise frequency; larger values carve smaller caves.
	Roughness float64
	// Solidity biases the noise toward rock near the bottom.
	Solidity   float64
	Beams      int
	SnowChance float64
	// SprayEvery is the fountain period in steps; 0 disables it.
	SprayEvery int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		World:      sim.DefaultConfig(),
		Seed:       1,
		Roughness:  0.025,
		Solidity:   0.7,
		Beams:      4,
		SnowChance: 0.3,
		SprayEvery: 6,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(m map[string]string) Config {
	c := DefaultConfig()
	if m == nil {
		return c
	}
	c.World = scene.LayoutFromMap(c.World, m)
	c.Seed = scene.SeedFromMap(m, c.Seed)
	if f := scene.FloatFromMap(m, "roughness", 0); f > 0 {
		c.Roughness = f
	}
	c.Solidity = scene.FloatFromMap(m, "solidity", c.Solidity)
	c.Beams = int(scene.FloatFromMap(m, "beams", float64(c.Beams)))
	c.SnowChance = scene.FloatFromMap(m, "snow", c.SnowChance)
	c.SprayEvery = int(scene.FloatFromMap(m, "spray_every", float64(c.SprayEvery)))
	return c
}

// Cavern is the scenario.
type Cavern struct {
	*scene.Base
	Snow  *scene.SnowFall
	Spray *scene.Sprayer
	cfg   Config
}

// New builds the cavern.
func New(cfg Config) (*Cavern, error) {
	size := cfg.World.Size()
	c := &Cavern{
		cfg:  cfg,
		Snow: &scene.SnowFall{Chance: cfg.SnowChance, Enabled: cfg.SnowChance > 0},
		Spray: &scene.Sprayer{
			At:      image.Pt(size.X/2, size.Y-4),
			Every:   uint64(max(cfg.SprayEvery, 0)),
			Speed:   25,
			Color:   scene.SprayColor,
			Enabled: cfg.SprayEvery > 0,
		},
	}
	base, err := scene.New("cavern", cfg.World, cfg.Seed, c.populate, c.Snow, c.Spray)
	if err != nil {
		return nil, err
	}
	c.Base = base
	return c, nil
}

// solid reports whether the terrain noise puts rock at p.
func (c *Cavern) solid(noise opensimplex.Noise, p image.Point, height int) bool {
	if p.Y == 0 {
		return true
	}
	depth := 1 - float64(p.Y)/float64(height)
	v := noise.Eval2(float64(p.X)*c.cfg.Roughness, float64(p.Y)*c.cfg.Roughness)
	return v+depth*c.cfg.Solidity-0.45 > 0
}

func (c *Cavern) populate(w *sim.World) {
	size := w.Size()
	noise := opensimplex.New(w.Rand().Seed())
	rng := w.Rand()

	var open []image.Point
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			p := image.Pt(x, y)
			if c.solid(noise, p, size.Y) {
				w.Instantiate(w.Pool().Static(sim.Rock), p)
			} else if y < size.Y*3/4 {
				open = append(open, p)
			}
		}
	}
	if len(open) == 0 {
		return
	}

	// Beams hang in open space; the first one is set alight.
	for i := 0; i < c.cfg.Beams; i++ {
		p := open[rng.IntN(len(open))]
		n := scene.FillStatic(w, image.Rect(p.X-6, p.Y, p.X+6, p.Y+2), sim.Wood)
		if i == 0 && n > 0 {
			scene.Flame(w, p.Add(image.Pt(0, 2)))
		}
	}

	pool := lowestOpen(w, open)
	scene.Fill(w, image.Rect(pool.X-10, pool.Y, pool.X+10, pool.Y+6), sim.KindWater)

	heap := open[rng.IntN(len(open))]
	scene.Fill(w, image.Rect(heap.X-4, heap.Y, heap.X+4, heap.Y+8), sim.KindSand)
}

// lowestOpen returns the lowest open slot that is still empty. open is in
// row order.
func lowestOpen(w *sim.World, open []image.Point) image.Point {
	for _, p := range open {
		if !w.TileExistsAt(p) {
			return p
		}
	}
	return open[0]
}

func init() {
	core.Register("cavern", func(m map[string]string) (core.Sim, error) {
		return New(FromMap(m))
	})
}

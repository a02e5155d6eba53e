// Package scene holds what every scenario shares: the world wrapper that
// satisfies core.Sim, the placement tools and the automatic spawners.
package scene

import (
	"pixsim/internal/core"
	"pixsim/internal/sim"
)

// Spawner adds cells before each step.
type Spawner interface {
	Spawn(w *sim.World)
}

// Populate lays out the initial scene after a reset.
type Populate func(w *sim.World)

// Base implements core.Sim around a world. Scenario packages embed it.
type Base struct {
	name     string
	world    *sim.World
	populate Populate
	spawners []Spawner
}

// New builds the world and populates it for seed.
func New(name string, cfg sim.Config, seed int64, populate Populate, spawners ...Spawner) (*Base, error) {
	w, err := sim.New(cfg, seed)
	if err != nil {
		return nil, err
	}
	b := &Base{name: name, world: w, populate: populate, spawners: spawners}
	b.Reset(seed)
	return b, nil
}

func (b *Base) Name() string { return b.name }

func (b *Base) Size() core.Size {
	s := b.world.Size()
	return core.Size{W: s.X, H: s.Y}
}

func (b *Base) World() *sim.World { return b.world }

// Reset empties the world, reseeds it and lays the scene out again.
func (b *Base) Reset(seed int64) {
	b.world.Reset(seed)
	if b.populate != nil {
		b.populate(b.world)
	}
}

// Step runs the spawners and then advances the world one tick.
func (b *Base) Step() {
	for _, s := range b.spawners {
		s.Spawn(b.world)
	}
	b.world.Step()
}

func (b *Base) Flush() int { return b.world.Flush() }

// Spawners returns the automatic spawners, for toggling from front-ends.
func (b *Base) Spawners() []Spawner { return b.spawners }

// SetMaterials swaps the rule constants without touching the grid.
func (b *Base) SetMaterials(m sim.Materials) error {
	cfg := b.world.Config()
	cfg.Materials = m
	_, err := b.world.Reconfigure(cfg)
	return err
}

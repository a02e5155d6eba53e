package core

import (
	"sort"

	"pixsim/internal/sim"
)

// Size describes the dimensions of a simulation grid in cells.
type Size struct {
	W int
	H int
}

// Sim is a runnable scenario: a world plus whatever spawners drive it.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	// Flush uploads changed chunk pixels and returns how many chunks did.
	Flush() int
	World() *sim.World
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// Names returns the registered scenario names in sorted order.
func Names() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

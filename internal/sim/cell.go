package sim

import (
	"fmt"
	"image/color"
	"strings"

	"pixsim/pkg/core"
)

// Kind identifies a material variant.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindStatic
	KindSand
	KindWater
	KindFire
	KindEmber
	KindParticle
	KindSnow
	kindCount
)

var kindNames = [...]string{
	KindEmpty:    "empty",
	KindStatic:   "static",
	KindSand:     "sand",
	KindWater:    "water",
	KindFire:     "fire",
	KindEmber:    "ember",
	KindParticle: "particle",
	KindSnow:     "snow",
}

func (k Kind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// ParseKind resolves a material name such as "sand" or "water".
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return KindEmpty, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Cell is one occupant of a grid slot. The set of implementations is closed:
// Static, Sand, Water, Fire, Ember, Particle and Snow.
type Cell interface {
	Kind() Kind
	Color() color.NRGBA
	Stale() bool
	// Update runs the material rule once for the current step.
	Update(n Neighborhood) Result
	state() *cellState
}

// cellState is the bookkeeping every variant embeds.
type cellState struct {
	color     color.NRGBA
	stale     bool
	lastFrame uint64
	chunk     *Chunk
}

func (s *cellState) state() *cellState { return s }

// Color returns the current display color.
func (s *cellState) Color() color.NRGBA { return s.color }

// Stale reports whether the cell is settled and skipped until woken.
func (s *cellState) Stale() bool { return s.stale }

// Neighborhood is the read-only view a rule gets of the slots around it.
type Neighborhood interface {
	// ExistsAt reports whether the neighbor slot is occupied. Grid
	// boundaries count as occupied.
	ExistsAt(d Direction) bool
	// CellAt returns the neighbor cell, or nil for empty slots and
	// boundaries.
	CellAt(d Direction) Cell
	Rand() *core.RNG
	Frame() uint64
	// DT is the simulated seconds per step.
	DT() float64
	Materials() *Materials
	Pool() *Pool
}

// Death describes how a cell leaves the grid.
type Death uint8

const (
	Alive Death = iota
	// DieBake leaves a static cell with the dying cell's color.
	DieBake
	// DieClear leaves the slot empty.
	DieClear
)

// EditOp is a change a rule requests on a neighboring slot.
type EditOp uint8

const (
	// EditSpawn places Cell into an empty neighbor slot.
	EditSpawn EditOp = iota + 1
	// EditReplace swaps a static neighbor for Cell.
	EditReplace
	// EditClear removes a static neighbor.
	EditClear
)

// Edit targets the neighbor slot in Dir.
type Edit struct {
	Op   EditOp
	Dir  Direction
	Cell Cell
}

// Result is what a rule asks the engine to do after an update. The zero
// value keeps the cell active where it is.
type Result struct {
	Move    Direction
	Recolor bool
	Color   color.NRGBA
	Stale   bool
	// Convert replaces the cell in place with another variant.
	Convert Cell
	Edits   []Edit
	// Wake reactivates the neighbors in the set.
	Wake DirSet
	Die  Death
}

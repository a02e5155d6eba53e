package sim

import (
	"image"

	"pixsim/pkg/core"
)

// neighborhood is the Neighborhood handed to a cell while its chunk steps.
// One value per chunk is reused for every cell.
type neighborhood struct {
	chunk *Chunk
	pos   image.Point
}

func (n *neighborhood) ExistsAt(d Direction) bool {
	dst, q, ok := n.chunk.neighbor(n.pos, d)
	if !ok {
		return true
	}
	return dst.cells[dst.slot(q)] != nil
}

func (n *neighborhood) CellAt(d Direction) Cell {
	dst, q, ok := n.chunk.neighbor(n.pos, d)
	if !ok {
		return nil
	}
	return dst.cells[dst.slot(q)]
}

func (n *neighborhood) Rand() *core.RNG { return n.chunk.world.rng }

func (n *neighborhood) Frame() uint64 { return n.chunk.frame }

func (n *neighborhood) DT() float64 { return n.chunk.world.cfg.DT() }

func (n *neighborhood) Materials() *Materials { return &n.chunk.world.cfg.Materials }

func (n *neighborhood) Pool() *Pool { return n.chunk.world.pool }

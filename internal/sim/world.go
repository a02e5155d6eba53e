package sim

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"image"
	"math"

	"pixsim/pkg/core"
)

// World is the grid of chunks and the single entry point for stepping,
// flushing and placing cells. It is not safe for concurrent use.
type World struct {
	cfg      Config
	rng      *core.RNG
	pool     *Pool
	chunks   []*Chunk
	frame    uint64
	surfaces SurfaceFactory
}

// New builds a world with every chunk empty.
func New(cfg Config, seed int64) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &World{cfg: cfg, rng: core.NewRNG(seed)}
	w.pool = NewPool(w.rng, &w.cfg.Materials)
	w.build()
	return w, nil
}

func (w *World) build() {
	cfg := w.cfg
	w.chunks = make([]*Chunk, cfg.ChunksX*cfg.ChunksY)
	for cy := 0; cy < cfg.ChunksY; cy++ {
		for cx := 0; cx < cfg.ChunksX; cx++ {
			w.chunks[cy*cfg.ChunksX+cx] = newChunk(w, image.Pt(cx, cy), cfg.ChunkW, cfg.ChunkH)
		}
	}
	for _, c := range w.chunks {
		for _, d := range Directions {
			o := c.index.Add(d.Offset())
			c.neighbors[d] = w.Chunk(o.X, o.Y)
		}
	}
	w.attachSurfaces()
}

func (w *World) attachSurfaces() {
	for _, c := range w.chunks {
		c.surface = nil
		if w.surfaces != nil {
			c.surface = w.surfaces(c.index, c.w, c.h)
		}
		c.pixels.Touch()
	}
}

// Config returns the active configuration.
func (w *World) Config() Config { return w.cfg }

// Frame returns the number of steps taken since the last reset.
func (w *World) Frame() uint64 { return w.frame }

// Size returns the global grid dimensions in cells.
func (w *World) Size() image.Point { return w.cfg.Size() }

// Bounds returns the global grid rectangle.
func (w *World) Bounds() image.Rectangle { return image.Rectangle{Max: w.Size()} }

// Rand returns the world's random source.
func (w *World) Rand() *core.RNG { return w.rng }

// Pool returns the cell pool used for every constructor.
func (w *World) Pool() *Pool { return w.pool }

// Materials returns the live rule constants.
func (w *World) Materials() *Materials { return &w.cfg.Materials }

// Chunks returns every chunk, bottom row first.
func (w *World) Chunks() []*Chunk { return w.chunks }

// Chunk returns the chunk at chunk-grid coordinates, or nil.
func (w *World) Chunk(cx, cy int) *Chunk {
	if cx < 0 || cy < 0 || cx >= w.cfg.ChunksX || cy >= w.cfg.ChunksY {
		return nil
	}
	return w.chunks[cy*w.cfg.ChunksX+cx]
}

// SetSurfaces creates a display surface for every chunk and schedules a full
// upload on the next flush.
func (w *World) SetSurfaces(f SurfaceFactory) {
	w.surfaces = f
	w.attachSurfaces()
}

// Reset empties every chunk, restarts the frame counter and reseeds the
// random source.
func (w *World) Reset(seed int64) {
	for _, c := range w.chunks {
		c.clear()
	}
	w.frame = 0
	w.rng.Reseed(seed)
}

// Reconfigure applies cfg. Rule constants change in place; any layout change
// destroys every chunk and rebuilds an empty grid. It reports whether the
// grid was rebuilt.
func (w *World) Reconfigure(cfg Config) (bool, error) {
	if err := cfg.Validate(); err != nil {
		return false, err
	}
	if w.cfg.SameLayout(cfg) {
		w.cfg = cfg
		return false, nil
	}
	for _, c := range w.chunks {
		c.clear()
	}
	w.cfg = cfg
	w.frame = 0
	w.build()
	return true, nil
}

// Step advances the simulation by one tick.
func (w *World) Step() {
	w.frame++
	for _, c := range w.chunks {
		c.Step(w.frame)
	}
}

// Flush pushes changed pixel buffers to their surfaces and returns how many
// chunks were uploaded.
func (w *World) Flush() int {
	n := 0
	for _, c := range w.chunks {
		if c.Flush() {
			n++
		}
	}
	return n
}

// GlobalToChunk maps a global position onto its chunk and local position.
func (w *World) GlobalToChunk(p image.Point) (*Chunk, image.Point, bool) {
	cx, cy := floorDiv(p.X, w.cfg.ChunkW), floorDiv(p.Y, w.cfg.ChunkH)
	c := w.Chunk(cx, cy)
	if c == nil {
		return nil, image.Point{}, false
	}
	return c, image.Pt(floorMod(p.X, w.cfg.ChunkW), floorMod(p.Y, w.cfg.ChunkH)), true
}

// FindChunkAndLocal is GlobalToChunk under the name placement tools use.
func (w *World) FindChunkAndLocal(p image.Point) (*Chunk, image.Point, bool) {
	return w.GlobalToChunk(p)
}

// Instantiate places a caller-built cell at a global position.
func (w *World) Instantiate(cell Cell, p image.Point) error {
	c, local, ok := w.GlobalToChunk(p)
	if !ok {
		return fmt.Errorf("%w: global %v", ErrOutOfBounds, p)
	}
	return c.Place(cell, local)
}

// Spawn builds a default cell of kind k from the pool and places it.
func (w *World) Spawn(k Kind, p image.Point) (Cell, error) {
	cell, err := w.pool.New(k)
	if err != nil {
		return nil, err
	}
	if err := w.Instantiate(cell, p); err != nil {
		w.pool.Put(cell)
		return nil, err
	}
	return cell, nil
}

// RemoveAt removes and recycles the cell at a global position.
func (w *World) RemoveAt(p image.Point) error {
	c, local, ok := w.GlobalToChunk(p)
	if !ok {
		return fmt.Errorf("%w: global %v", ErrOutOfBounds, p)
	}
	return c.Remove(local)
}

// TileExistsAt reports whether a cell occupies a global position. Positions
// outside the grid hold nothing.
func (w *World) TileExistsAt(p image.Point) bool {
	return w.CellAt(p) != nil
}

// CellAt returns the cell at a global position, or nil.
func (w *World) CellAt(p image.Point) Cell {
	c, local, ok := w.GlobalToChunk(p)
	if !ok {
		return nil
	}
	return c.cells[c.slot(local)]
}

// PositionOf returns the global position of a placed cell.
func (w *World) PositionOf(cell Cell) (image.Point, bool) {
	c := cell.state().chunk
	if c == nil {
		return image.Point{}, false
	}
	p, ok := c.where[cell]
	if !ok {
		return image.Point{}, false
	}
	return c.Origin().Add(p), true
}

// WorldToGrid converts world units into a grid position using the
// configured scale.
func (w *World) WorldToGrid(x, y float64) image.Point {
	return WorldToGrid(x, y, w.cfg.PixelsPerUnit)
}

// GridToWorld converts a grid position into world units using the
// configured scale.
func (w *World) GridToWorld(p image.Point) (x, y float64) {
	return GridToWorld(p, w.cfg.PixelsPerUnit)
}

// Digest hashes the grid contents in slot order. Two worlds with the same
// digest hold the same cells with the same colors and liquid amounts.
func (w *World) Digest() uint64 {
	h := fnv.New64a()
	var buf [13]byte
	for _, c := range w.chunks {
		for i, cell := range c.cells {
			if cell == nil {
				continue
			}
			col := cell.Color()
			binary.LittleEndian.PutUint32(buf[0:4], uint32(i))
			buf[4] = byte(cell.Kind())
			buf[5], buf[6], buf[7], buf[8] = col.R, col.G, col.B, col.A
			binary.LittleEndian.PutUint32(buf[9:13], uint32(c.index.Y*w.cfg.ChunksX+c.index.X))
			h.Write(buf[:])
			if water, ok := cell.(*Water); ok {
				var amt [8]byte
				binary.LittleEndian.PutUint64(amt[:], math.Float64bits(water.newLiquid))
				h.Write(amt[:])
			}
		}
	}
	return h.Sum64()
}

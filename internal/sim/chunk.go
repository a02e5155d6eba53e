package sim

import (
	"fmt"
	"image"

	"github.com/zyedidia/generic/mapset"
)

// dirtyMargin is how far beyond an active cell a chunk keeps scanning, so
// slots uncovered by a move are looked at again on the next step.
const dirtyMargin = 2

// Chunk is a fixed-size block of slots. It owns the pixels of its slots and
// tracks which of them need stepping.
type Chunk struct {
	world *World
	index image.Point
	w, h  int

	cells  []Cell
	where  map[Cell]image.Point
	active mapset.Set[image.Point]
	static int

	// dirty is the region scanned by the next Step. touched collects regions
	// marked while this chunk is stepping.
	dirty    image.Rectangle
	touched  image.Rectangle
	stepping bool
	frame    uint64

	pixels    *PixelBuffer
	surface   Surface
	neighbors [9]*Chunk
	hood      neighborhood
}

func newChunk(world *World, index image.Point, w, h int) *Chunk {
	return &Chunk{
		world:  world,
		index:  index,
		w:      w,
		h:      h,
		cells:  make([]Cell, w*h),
		where:  make(map[Cell]image.Point),
		active: mapset.New[image.Point](),
		pixels: NewPixelBuffer(w, h),
	}
}

// Index returns the chunk's coordinates in the chunk grid.
func (c *Chunk) Index() image.Point { return c.index }

// Bounds returns the local slot rectangle.
func (c *Chunk) Bounds() image.Rectangle { return image.Rect(0, 0, c.w, c.h) }

// Origin returns the global position of local slot (0, 0).
func (c *Chunk) Origin() image.Point { return image.Pt(c.index.X*c.w, c.index.Y*c.h) }

// Neighbor returns the adjacent chunk in d, or nil at the grid edge.
func (c *Chunk) Neighbor(d Direction) *Chunk {
	if d == Stay || int(d) >= len(c.neighbors) {
		return nil
	}
	return c.neighbors[d]
}

// Pixels returns the chunk's pixel buffer.
func (c *Chunk) Pixels() *PixelBuffer { return c.pixels }

// At returns the cell at a local position, or nil.
func (c *Chunk) At(p image.Point) Cell {
	if !c.inBounds(p) {
		return nil
	}
	return c.cells[c.slot(p)]
}

// PositionOf returns where the chunk has a cell recorded.
func (c *Chunk) PositionOf(cell Cell) (image.Point, bool) {
	p, ok := c.where[cell]
	return p, ok
}

// Len returns the number of cells in the chunk.
func (c *Chunk) Len() int { return len(c.where) }

// StaticCount returns the number of static cells in the chunk.
func (c *Chunk) StaticCount() int { return c.static }

// ActiveCount returns the number of cells that step every frame.
func (c *Chunk) ActiveCount() int { return c.active.Size() }

// IsActive reports whether the slot at p holds an active cell.
func (c *Chunk) IsActive(p image.Point) bool { return c.active.Has(p) }

// Dirty returns the region the next Step scans, and false when there is none.
func (c *Chunk) Dirty() (image.Rectangle, bool) {
	return c.dirty, !c.dirty.Empty()
}

// Each calls fn for every occupied slot, bottom row first.
func (c *Chunk) Each(fn func(p image.Point, cell Cell)) {
	for i, cell := range c.cells {
		if cell != nil {
			fn(image.Pt(i%c.w, i/c.w), cell)
		}
	}
}

// Place inserts cell at a local position.
func (c *Chunk) Place(cell Cell, p image.Point) error {
	if !c.inBounds(p) {
		return fmt.Errorf("%w: local %v in chunk %v", ErrOutOfBounds, p, c.index)
	}
	if c.cells[c.slot(p)] != nil {
		return fmt.Errorf("%w: local %v in chunk %v", ErrOccupied, p, c.index)
	}
	if cell.state().chunk != nil {
		return fmt.Errorf("%w: %s cell", ErrPlaced, cell.Kind())
	}
	c.put(cell, p)
	return nil
}

// Remove clears the slot at a local position and recycles its cell.
func (c *Chunk) Remove(p image.Point) error {
	if !c.inBounds(p) {
		return fmt.Errorf("%w: local %v in chunk %v", ErrOutOfBounds, p, c.index)
	}
	cell := c.cells[c.slot(p)]
	if cell == nil {
		return fmt.Errorf("%w: local %v in chunk %v", ErrEmpty, p, c.index)
	}
	c.take(p)
	c.wakeAround(p)
	c.world.pool.Put(cell)
	return nil
}

// TryMoveRelative moves cell one step in d, possibly into a neighboring
// chunk. It reports false and leaves the cell alone when the destination is
// occupied or past the grid edge.
func (c *Chunk) TryMoveRelative(cell Cell, d Direction) bool {
	from, ok := c.where[cell]
	if !ok {
		panic(fmt.Sprintf("sim: %s cell not tracked by chunk %v", cell.Kind(), c.index))
	}
	dst, to, ok := c.neighbor(from, d)
	if !ok || dst.cells[dst.slot(to)] != nil {
		return false
	}
	c.take(from)
	c.wakeAround(from)
	dst.put(cell, to)
	return true
}

// Step updates every cell inside the dirty region that has not run this
// frame, then recomputes the region from the cells still active.
func (c *Chunk) Step(frame uint64) {
	if c.dirty.Empty() {
		return
	}
	scan := c.dirty
	c.frame = frame
	c.stepping = true
	c.touched = image.Rectangle{}
	for y := scan.Min.Y; y < scan.Max.Y; y++ {
		for x := scan.Min.X; x < scan.Max.X; x++ {
			p := image.Pt(x, y)
			cell := c.cells[c.slot(p)]
			if cell == nil || cell.Kind() == KindStatic {
				continue
			}
			st := cell.state()
			if st.lastFrame == frame {
				continue
			}
			st.lastFrame = frame
			c.hood.chunk, c.hood.pos = c, p
			c.apply(cell, p, cell.Update(&c.hood))
		}
	}
	c.stepping = false
	c.recomputeDirty()
}

// Flush pushes the pixel buffer to the surface when it changed. It reports
// whether the surface was called.
func (c *Chunk) Flush() bool {
	if c.surface == nil || !c.pixels.changed {
		return false
	}
	c.surface.Apply(c.pixels)
	c.pixels.changed = false
	return true
}

func (c *Chunk) apply(cell Cell, p image.Point, res Result) {
	for _, e := range res.Edits {
		c.edit(p, e)
	}
	if res.Wake != 0 {
		c.wake(p, res.Wake)
	}
	st := cell.state()
	if res.Recolor {
		st.color = res.Color
		c.pixels.SetPixel(p.X, p.Y, res.Color)
	}
	if res.Die != Alive {
		c.kill(cell, p, res.Die)
		return
	}
	if res.Convert != nil {
		c.take(p)
		c.world.pool.Put(cell)
		res.Convert.state().lastFrame = c.frame
		c.put(res.Convert, p)
		return
	}
	if res.Stale {
		st.stale = true
		c.active.Remove(p)
		return
	}
	if st.stale {
		st.stale = false
		c.active.Put(p)
	}
	if res.Move != Stay {
		c.TryMoveRelative(cell, res.Move)
	}
}

func (c *Chunk) kill(cell Cell, p image.Point, how Death) {
	col := cell.Color()
	c.take(p)
	c.world.pool.Put(cell)
	if how == DieBake && Opaque(col) {
		s := c.world.pool.Static(col)
		s.lastFrame = c.frame
		c.put(s, p)
		return
	}
	c.wakeAround(p)
}

// edit applies a neighbor change requested by the cell at p. Edits never
// displace a live cell; a refused edit returns its cell to the pool.
func (c *Chunk) edit(p image.Point, e Edit) {
	dst, q, ok := c.neighbor(p, e.Dir)
	if e.Dir == Stay || !ok {
		c.world.pool.Put(e.Cell)
		return
	}
	occupant := dst.cells[dst.slot(q)]
	switch e.Op {
	case EditSpawn:
		if occupant != nil || e.Cell == nil {
			c.world.pool.Put(e.Cell)
			return
		}
	case EditReplace, EditClear:
		if occupant == nil || occupant.Kind() != KindStatic {
			c.world.pool.Put(e.Cell)
			return
		}
		dst.take(q)
		c.world.pool.Put(occupant)
		dst.wakeAround(q)
		if e.Op == EditClear {
			c.world.pool.Put(e.Cell)
			return
		}
	default:
		c.world.pool.Put(e.Cell)
		return
	}
	if e.Cell != nil {
		e.Cell.state().lastFrame = c.frame
		dst.put(e.Cell, q)
	}
}

func (c *Chunk) wake(p image.Point, set DirSet) {
	for _, d := range Directions {
		if !set.Has(d) {
			continue
		}
		dst, q, ok := c.neighbor(p, d)
		if !ok {
			continue
		}
		dst.activate(q)
	}
}

// wakeAround reactivates every neighbor of p, for slots that just emptied.
func (c *Chunk) wakeAround(p image.Point) {
	for _, d := range Directions {
		if dst, q, ok := c.neighbor(p, d); ok {
			dst.activate(q)
		}
	}
}

func (c *Chunk) activate(p image.Point) {
	cell := c.cells[c.slot(p)]
	if cell == nil || cell.Kind() == KindStatic {
		return
	}
	cell.state().stale = false
	c.active.Put(p)
	c.markDirty(p)
}

// put stores cell at an empty in-bounds slot.
func (c *Chunk) put(cell Cell, p image.Point) {
	i := c.slot(p)
	if c.cells[i] != nil {
		panic(fmt.Sprintf("sim: slot %v in chunk %v already holds %s", p, c.index, c.cells[i].Kind()))
	}
	st := cell.state()
	c.cells[i] = cell
	c.where[cell] = p
	st.chunk = c
	if cell.Kind() == KindStatic {
		c.static++
	} else if !st.stale {
		c.active.Put(p)
	}
	c.pixels.SetPixel(p.X, p.Y, st.color)
	c.markDirty(p)
}

// take clears the slot at p and returns its cell.
func (c *Chunk) take(p image.Point) Cell {
	i := c.slot(p)
	cell := c.cells[i]
	if cell == nil {
		panic(fmt.Sprintf("sim: slot %v in chunk %v is empty", p, c.index))
	}
	if at, ok := c.where[cell]; !ok || at != p {
		panic(fmt.Sprintf("sim: %s cell at %v tracked at %v in chunk %v", cell.Kind(), p, at, c.index))
	}
	c.cells[i] = nil
	delete(c.where, cell)
	c.active.Remove(p)
	if cell.Kind() == KindStatic {
		c.static--
	}
	cell.state().chunk = nil
	c.pixels.SetPixel(p.X, p.Y, Transparent)
	c.markDirty(p)
	return cell
}

func (c *Chunk) markDirty(p image.Point) {
	r := c.around(p)
	if c.stepping {
		c.touched = c.touched.Union(r)
		return
	}
	c.dirty = c.dirty.Union(r)
}

func (c *Chunk) around(p image.Point) image.Rectangle {
	return image.Rect(p.X-dirtyMargin, p.Y-dirtyMargin, p.X+dirtyMargin+1, p.Y+dirtyMargin+1).Intersect(c.Bounds())
}

// recomputeDirty rebuilds the region from the active cells. Every slot that
// empties wakes its neighbors, so a chunk left with no active cells has
// nothing to revisit and goes clean at once.
func (c *Chunk) recomputeDirty() {
	if c.active.Size() == 0 {
		c.dirty = image.Rectangle{}
		c.touched = image.Rectangle{}
		return
	}
	r := c.touched
	c.active.Each(func(p image.Point) {
		r = r.Union(c.around(p))
	})
	c.dirty = r
	c.touched = image.Rectangle{}
}

// neighbor resolves the slot one step from p in d. Crossing an edge lands in
// the adjacent chunk with the crossed axis mirrored; there is no slot past
// the grid edge.
func (c *Chunk) neighbor(p image.Point, d Direction) (*Chunk, image.Point, bool) {
	q := p.Add(d.Offset())
	sx, sy := 0, 0
	switch {
	case q.X < 0:
		sx = -1
	case q.X >= c.w:
		sx = 1
	}
	switch {
	case q.Y < 0:
		sy = -1
	case q.Y >= c.h:
		sy = 1
	}
	if sx == 0 && sy == 0 {
		return c, q, true
	}
	n := c.neighbors[DirectionOf(sx, sy)]
	if n == nil {
		return nil, image.Point{}, false
	}
	if sx != 0 {
		q.X = c.w - 1 - p.X
	}
	if sy != 0 {
		q.Y = c.h - 1 - p.Y
	}
	return n, q, true
}

func (c *Chunk) inBounds(p image.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < c.w && p.Y < c.h
}

func (c *Chunk) slot(p image.Point) int { return p.Y*c.w + p.X }

// clear empties the chunk, returning every cell to the pool.
func (c *Chunk) clear() {
	for i, cell := range c.cells {
		if cell == nil {
			continue
		}
		c.cells[i] = nil
		cell.state().chunk = nil
		c.world.pool.Put(cell)
	}
	c.where = make(map[Cell]image.Point)
	c.active = mapset.New[image.Point]()
	c.static = 0
	c.dirty = image.Rectangle{}
	c.touched = image.Rectangle{}
	c.pixels.Clear()
}

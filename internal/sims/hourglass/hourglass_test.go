package hourglass

import (
	"image"
	"testing"

	"pixsim/internal/sim"
)

func sandCount(w *sim.World, neck int) (total, above int) {
	for _, c := range w.Chunks() {
		origin := c.Origin()
		c.Each(func(p image.Point, cell sim.Cell) {
			if cell.Kind() != sim.KindSand {
				return
			}
			total++
			if origin.Y+p.Y >= neck {
				above++
			}
		})
	}
	return total, above
}

func TestGlassIsClosed(t *testing.T) {
	h, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	w := h.World()
	size := w.Size()
	for x := 0; x < size.X; x++ {
		if c := w.CellAt(image.Pt(x, 0)); c == nil || c.Kind() != sim.KindStatic {
			t.Fatalf("floor open at x=%d", x)
		}
	}
	// every interior row is bounded on both sides
	for y := 1; y <= h.shape.top; y++ {
		hw := h.shape.halfWidth(y)
		for _, x := range []int{h.shape.cx - hw - 1, h.shape.cx + hw + 1} {
			if c := w.CellAt(image.Pt(x, y)); c == nil || c.Kind() != sim.KindStatic {
				t.Fatalf("wall open at (%d,%d)", x, y)
			}
		}
	}
}

func TestSandDrainsThroughNeck(t *testing.T) {
	h, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	w := h.World()
	start, above := sandCount(w, h.Neck())
	if start == 0 || above != start {
		t.Fatalf("initial sand %d, above neck %d", start, above)
	}
	for i := 0; i < 3000; i++ {
		h.Step()
	}
	total, above := sandCount(w, h.Neck())
	if total != start {
		t.Fatalf("sand count changed from %d to %d", start, total)
	}
	if above != 0 {
		t.Fatalf("%d grains still above the neck", above)
	}
	if live := w.Stats().LiveCells; live != 0 {
		t.Fatalf("%d grains still moving", live)
	}
}

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{"neck": "3", "fill": "0.2", "chunks_y": "4"})
	if c.Neck != 3 || c.Fill != 0.2 || c.World.ChunksY != 4 {
		t.Fatalf("FromMap = %+v", c)
	}
	c = FromMap(map[string]string{"neck": "0", "fill": "2"})
	if c.Neck != 1 || c.Fill != 0.45 {
		t.Fatalf("invalid values should keep defaults: %+v", c)
	}
}

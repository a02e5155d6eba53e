package cavern

import (
	"testing"

	"pixsim/internal/core"
)

func smallCavern(t *testing.T, seed string) *Cavern {
	t.Helper()
	c, err := New(FromMap(map[string]string{
		"chunks_x": "2", "chunks_y": "2", "chunk_w": "48", "chunk_h": "48",
		"seed": seed,
	}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestTerrainIsMixed(t *testing.T) {
	c := smallCavern(t, "5")
	st := c.World().Stats()
	cells := c.Size().W * c.Size().H
	if st.StaticCells == 0 || st.StaticCells >= cells {
		t.Fatalf("static cells = %d of %d, want rock and open space", st.StaticCells, cells)
	}
	if st.LiquidTotal <= 0 {
		t.Fatal("cavern should start with a water pool")
	}
	if st.LiveCells == 0 {
		t.Fatal("cavern should start with live cells")
	}
}

func TestSameSeedSameCave(t *testing.T) {
	a, b := smallCavern(t, "5"), smallCavern(t, "5")
	if a.World().Digest() != b.World().Digest() {
		t.Fatal("same seed built different caves")
	}
	for i := 0; i < 120; i++ {
		a.Step()
		b.Step()
	}
	if a.World().Digest() != b.World().Digest() {
		t.Fatal("same seed diverged while stepping")
	}
	other := smallCavern(t, "6")
	if other.World().Digest() == a.World().Digest() {
		t.Fatal("different seeds built the same cave")
	}
}

func TestWaterIsKept(t *testing.T) {
	c := smallCavern(t, "5")
	c.Snow.Enabled = false
	c.Spray.Enabled = false
	start := c.World().LiquidTotal()
	for i := 0; i < 300; i++ {
		c.Step()
	}
	end := c.World().LiquidTotal()
	if end > start+1e-6 || end < 0.9*start {
		t.Fatalf("liquid went from %g to %g", start, end)
	}
}

func TestRegistered(t *testing.T) {
	if _, ok := core.Sims()["cavern"]; !ok {
		t.Fatal("cavern not registered")
	}
}

package sim

import (
	"image"
	"testing"
)

func TestPoolReusesResetCells(t *testing.T) {
	w := newTestWorld(t, 4, 4, 1, 1)
	pool := w.Pool()
	water := pool.Water(0.8)
	if err := w.Instantiate(water, image.Pt(0, 0)); err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	for i := 0; i < 30; i++ {
		w.Step()
	}
	if err := w.RemoveAt(image.Pt(0, 0)); err != nil {
		t.Fatalf("RemoveAt: %v", err)
	}
	again := pool.Water(0.3)
	if again != water {
		t.Fatal("pool should hand back the recycled water cell")
	}
	if again.Settled() || again.Amount() != 0.3 || again.Stale() {
		t.Fatalf("recycled water not reset: settled=%v amount=%g stale=%v", again.Settled(), again.Amount(), again.Stale())
	}
	if pool.Recycled() != 1 {
		t.Fatalf("recycled = %d, want 1", pool.Recycled())
	}
}

func TestPoolRejectsPlacedCells(t *testing.T) {
	w := newTestWorld(t, 4, 4, 1, 1)
	cell, err := w.Spawn(KindSand, image.Pt(1, 1))
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("pooling a placed cell should panic")
		}
	}()
	w.Pool().Put(cell)
}

func TestPoolNewKinds(t *testing.T) {
	w := newTestWorld(t, 4, 4, 1, 1)
	for k := KindStatic; k < kindCount; k++ {
		cell, err := w.Pool().New(k)
		if err != nil {
			t.Fatalf("New(%s): %v", k, err)
		}
		if cell.Kind() != k {
			t.Fatalf("New(%s) built %s", k, cell.Kind())
		}
		parsed, err := ParseKind(k.String())
		if err != nil || parsed != k {
			t.Fatalf("ParseKind(%q) = %s, %v", k.String(), parsed, err)
		}
	}
	if _, err := w.Pool().New(KindEmpty); err == nil {
		t.Fatal("New(empty) should fail")
	}
}

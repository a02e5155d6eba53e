package core

import "testing"

func TestRNGReplaysFromSeed(t *testing.T) {
	a, b := NewRNG(42), NewRNG(42)
	for i := 0; i < 100; i++ {
		if a.IntN(1000) != b.IntN(1000) {
			t.Fatalf("sequences diverged at draw %d", i)
		}
	}
	a.Reseed(42)
	c := NewRNG(42)
	if a.Float64() != c.Float64() {
		t.Fatal("Reseed should restart the sequence")
	}
	if a.Seed() != 42 {
		t.Fatalf("Seed = %d", a.Seed())
	}
}

func TestRNGEdges(t *testing.T) {
	r := NewRNG(1)
	if r.IntN(0) != 0 || r.Uint8n(0) != 0 {
		t.Fatal("empty ranges should return 0")
	}
	if r.Range(3, 3) != 3 {
		t.Fatal("degenerate Range should return lo")
	}
	if r.Chance(0) || !r.Chance(1) {
		t.Fatal("Chance should honor certain outcomes")
	}
	for i := 0; i < 50; i++ {
		if v := r.Range(-1, 1); v < -1 || v >= 1 {
			t.Fatalf("Range out of bounds: %g", v)
		}
	}
}

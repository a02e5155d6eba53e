package bench

import (
	"context"
	"errors"
	"slices"
	"testing"

	"pixsim/internal/sim"
	_ "pixsim/internal/sims/sandbox"
)

func smallSandbox() map[string]string {
	return map[string]string{
		"chunk_w": "16", "chunk_h": "16",
		"chunks_x": "2", "chunks_y": "2",
		"snow": "0.5",
	}
}

func TestRunRecordsEverySeed(t *testing.T) {
	res, err := Run(context.Background(), Options{
		Scenario: "sandbox",
		Params:   smallSandbox(),
		Seeds:    []int64{5, 1, 3},
		Steps:    40,
		Workers:  2,
		Verify:   true,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	var seeds []int64
	for _, r := range res {
		seeds = append(seeds, r.Seed)
		if len(r.Rows) != 40 {
			t.Fatalf("seed %d: %d rows, want 40", r.Seed, len(r.Rows))
		}
		if !r.Matched() {
			t.Fatalf("seed %d did not replay", r.Seed)
		}
		last := r.Rows[len(r.Rows)-1]
		if last.Frame != 40 || last.Scenario != "sandbox" || last.Seed != r.Seed {
			t.Fatalf("last row = %+v", last)
		}
	}
	if !slices.Equal(seeds, []int64{1, 3, 5}) {
		t.Fatalf("seeds = %v, want sorted", seeds)
	}
	if res[0].Rows[0].Flushed == 0 {
		t.Fatal("first flush should upload the initial grid")
	}
}

func TestWorkerCountDoesNotChangeResults(t *testing.T) {
	digests := func(workers int) []uint64 {
		res, err := Run(context.Background(), Options{
			Scenario: "sandbox",
			Params:   smallSandbox(),
			Seeds:    []int64{1, 2, 3, 4},
			Steps:    30,
			Workers:  workers,
		})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		var out []uint64
		for _, r := range res {
			out = append(out, r.Digest)
		}
		return out
	}
	if a, b := digests(1), digests(4); !slices.Equal(a, b) {
		t.Fatalf("digests differ by worker count: %x vs %x", a, b)
	}
}

func TestMaterialsOverride(t *testing.T) {
	base := Options{Scenario: "sandbox", Params: smallSandbox(), Seeds: []int64{1}, Steps: 60}
	plain, err := Run(context.Background(), base)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	m := plainMaterials(t)
	m.SnowFallSpeed *= 4
	base.Materials = &m
	fast, err := Run(context.Background(), base)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if plain[0].Digest == fast[0].Digest {
		t.Fatal("faster snow should change the final grid")
	}
}

func TestUnknownScenario(t *testing.T) {
	if _, err := Run(context.Background(), Options{Scenario: "nope"}); err == nil {
		t.Fatal("expected an error for an unknown scenario")
	}
}

func TestCanceledRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Options{Scenario: "sandbox", Params: smallSandbox(), Seeds: []int64{1, 2}, Steps: 5})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func plainMaterials(t *testing.T) sim.Materials {
	t.Helper()
	return sim.DefaultConfig().Materials
}

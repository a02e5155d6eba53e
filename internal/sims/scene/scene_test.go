package scene

import (
	"image"
	"testing"

	"pixsim/internal/core"
	"pixsim/internal/sim"
)

func smallConfig() sim.Config {
	cfg := sim.DefaultConfig()
	cfg.ChunkW, cfg.ChunkH = 16, 16
	cfg.ChunksX, cfg.ChunksY = 2, 2
	return cfg
}

func newBase(t *testing.T, populate Populate, spawners ...Spawner) *Base {
	t.Helper()
	b, err := New("test", smallConfig(), 3, populate, spawners...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b
}

func TestBaseImplementsSim(t *testing.T) {
	var s core.Sim = newBase(t, nil)
	if s.Size() != (core.Size{W: 32, H: 32}) {
		t.Fatalf("Size = %+v", s.Size())
	}
	if s.Name() != "test" {
		t.Fatalf("Name = %q", s.Name())
	}
}

func TestResetRepopulates(t *testing.T) {
	floor := func(w *sim.World) {
		FillStatic(w, image.Rect(0, 0, 32, 1), sim.Rock)
	}
	b := newBase(t, floor)
	if got := b.World().Stats().StaticCells; got != 32 {
		t.Fatalf("static after New = %d, want 32", got)
	}
	Paint(b.World(), sim.KindSand, image.Pt(10, 10), 2)
	b.Step()
	b.Reset(9)
	st := b.World().Stats()
	if st.StaticCells != 32 || st.TotalCells != 32 || st.Frame != 0 {
		t.Fatalf("stats after reset = %+v", st)
	}
}

func TestPaintAndErase(t *testing.T) {
	b := newBase(t, nil)
	w := b.World()
	placed := Paint(w, sim.KindWater, image.Pt(8, 8), 2)
	if placed != 13 {
		t.Fatalf("radius 2 disc placed %d cells, want 13", placed)
	}
	if again := Paint(w, sim.KindSand, image.Pt(8, 8), 2); again != 0 {
		t.Fatalf("painting over a full disc placed %d cells", again)
	}
	if removed := Erase(w, image.Pt(8, 8), 2); removed != 13 {
		t.Fatalf("erase removed %d cells, want 13", removed)
	}
	if edge := Paint(w, sim.KindSand, image.Pt(0, 0), 1); edge != 3 {
		t.Fatalf("corner disc placed %d cells, want 3", edge)
	}
}

func TestExplodeClearsDisc(t *testing.T) {
	b := newBase(t, nil)
	w := b.World()
	FillStatic(w, w.Bounds(), sim.Wood)
	launched := Explode(w, image.Pt(16, 16), 5)
	if launched == 0 {
		t.Fatal("explosion in solid wood launched nothing")
	}
	particles := 0
	disc(w, image.Pt(16, 16), 5, func(p image.Point) {
		c := w.CellAt(p)
		if c == nil {
			return
		}
		if c.Kind() != sim.KindParticle || c.Color() != sim.Wood {
			t.Fatalf("%s cell left at %v", c.Kind(), p)
		}
		particles++
	})
	if particles != launched {
		t.Fatalf("found %d particles, explode reported %d", particles, launched)
	}
}

func TestFlameIsAPlus(t *testing.T) {
	b := newBase(t, nil)
	w := b.World()
	if n := Flame(w, image.Pt(5, 5)); n != 5 {
		t.Fatalf("Flame placed %d fires, want 5", n)
	}
	for _, p := range []image.Point{{5, 5}, {5, 6}, {6, 5}, {5, 4}, {4, 5}} {
		if c := w.CellAt(p); c == nil || c.Kind() != sim.KindFire {
			t.Fatalf("no fire at %v", p)
		}
	}
	if w.TileExistsAt(image.Pt(6, 6)) {
		t.Fatal("diagonal should stay empty")
	}
}

func TestToolsApply(t *testing.T) {
	for _, tool := range Tools() {
		t.Run(tool.String(), func(t *testing.T) {
			b := newBase(t, func(w *sim.World) {
				FillStatic(w, image.Rect(12, 0, 20, 4), sim.Rock)
			})
			p := image.Pt(16, 12)
			if tool == ToolBomb {
				p = image.Pt(16, 2)
			}
			n := tool.Apply(b.World(), p, 1)
			if tool == ToolBomb {
				if left := b.World().Stats().StaticCells; left != 0 {
					t.Fatalf("bomb left %d static cells", left)
				}
				return
			}
			if n == 0 {
				t.Fatalf("%s created nothing", tool)
			}
		})
	}
}

func TestSpawners(t *testing.T) {
	snow := &SnowFall{Chance: 1, Enabled: true}
	spray := &Sprayer{At: image.Pt(16, 20), Every: 4, Speed: 5, Color: SprayColor, Enabled: true}
	b := newBase(t, nil, snow, spray)
	b.Step()
	counts := map[sim.Kind]int{}
	for _, c := range b.World().Chunks() {
		c.Each(func(_ image.Point, cell sim.Cell) { counts[cell.Kind()]++ })
	}
	if counts[sim.KindSnow] != 1 || counts[sim.KindParticle] != 1 {
		t.Fatalf("after one step: %v, want one snowflake and one particle", counts)
	}

	snow.Enabled, spray.Enabled = false, false
	before := b.World().Stats().TotalCells
	b.Step()
	if after := b.World().Stats().TotalCells; after > before {
		t.Fatalf("disabled spawners added cells: %d -> %d", before, after)
	}
}

func TestParameters(t *testing.T) {
	b := newBase(t, nil)
	snap := b.Parameters()
	p, ok := snap.Lookup("fire_spawn_chance")
	if !ok || p.Value != "0.1" {
		t.Fatalf("fire_spawn_chance = %+v (%v)", p, ok)
	}
	if !b.SetFloatParameter("fire_spawn_chance", 0.5) {
		t.Fatal("SetFloatParameter refused a valid value")
	}
	if b.World().Materials().FireSpawnChance != 0.5 {
		t.Fatal("parameter did not reach the world")
	}
	if b.SetFloatParameter("fire_spawn_chance", 2) || b.SetFloatParameter("settle_steps", 3) {
		t.Fatal("out of range or mistyped values should be refused")
	}
	if !b.SetIntParameter("settle_steps", 3) || b.World().Materials().SettleSteps != 3 {
		t.Fatal("SetIntParameter did not apply")
	}
	if len(b.ParameterControls()) != len(tunables(b.World().Materials())) {
		t.Fatal("every tunable needs a control")
	}
}

func TestLayoutFromMap(t *testing.T) {
	cfg := LayoutFromMap(sim.DefaultConfig(), map[string]string{
		"chunk_w": "32", "chunks_y": "-1", "tps": "x", "ppu": "8",
	})
	if cfg.ChunkW != 32 || cfg.ChunksY != 3 || cfg.TPS != 60 || cfg.PixelsPerUnit != 8 {
		t.Fatalf("layout = %+v", cfg)
	}
	if SeedFromMap(map[string]string{"seed": "42"}, 1) != 42 || SeedFromMap(nil, 1) != 1 {
		t.Fatal("SeedFromMap")
	}
}

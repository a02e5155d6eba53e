package app

import (
	"flag"
	"image"
	"testing"

	"pixsim/internal/sim"
	_ "pixsim/internal/sims/cavern"
	"pixsim/internal/sims/scene"
	_ "pixsim/internal/sims/sandbox"
)

func build(t *testing.T, args ...string) *Setup {
	t.Helper()
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	setup, err := cfg.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return setup
}

func TestBuildAppliesLayoutAndMaterials(t *testing.T) {
	setup := build(t,
		"-set", "world.chunk_w=16", "-set", "world.chunk_h=16",
		"-set", "world.chunks_x=2", "-set", "world.chunks_y=1",
		"-set", "particle.gravity=12",
		"-param", "seed=77", "-scale", "5",
	)
	if got := setup.Sim.Size(); got.W != 32 || got.H != 16 {
		t.Fatalf("size = %+v, want 32x16", got)
	}
	if g := setup.Sim.World().Materials().Gravity; g != 12 {
		t.Fatalf("gravity = %v, want 12", g)
	}
	if setup.Seed != 77 || setup.Settings.Display.Scale != 5 {
		t.Fatalf("seed = %d scale = %d", setup.Seed, setup.Settings.Display.Scale)
	}
}

func TestBuildUnknownSim(t *testing.T) {
	cfg := NewConfig()
	cfg.Sim = "nope"
	if _, err := cfg.Build(); err == nil {
		t.Fatal("expected an error for an unknown scenario")
	}
}

func newSession(t *testing.T, name string) *Session {
	t.Helper()
	setup := build(t, "-sim", name,
		"-set", "world.chunk_w=16", "-set", "world.chunk_h=16",
		"-set", "world.chunks_x=2", "-set", "world.chunks_y=2")
	return NewSession(setup.Sim, setup.Seed, 2, nil)
}

func TestPauseAndStepOnce(t *testing.T) {
	s := newSession(t, "sandbox")
	s.TogglePause()
	if s.Tick() {
		t.Fatal("paused session stepped")
	}
	s.StepOnce()
	if !s.Tick() || s.Tick() {
		t.Fatal("StepOnce should step exactly one tick")
	}
	if f := s.Sim.World().Frame(); f != 1 {
		t.Fatalf("frame = %d, want 1", f)
	}
	s.TogglePause()
	if !s.Tick() {
		t.Fatal("running session did not step")
	}
}

func TestToolsAndBrush(t *testing.T) {
	s := newSession(t, "sandbox")
	if !s.SelectTool(2) || s.Tool != scene.ToolWater {
		t.Fatalf("hotkey 2 selected %v", s.Tool)
	}
	if s.SelectTool(0) || s.SelectTool(9) {
		t.Fatal("out-of-range hotkeys should be refused")
	}
	s.GrowBrush(100)
	if s.Brush != maxBrush {
		t.Fatalf("brush = %d, want clamp to %d", s.Brush, maxBrush)
	}
	s.GrowBrush(-100)
	if s.Brush != 0 {
		t.Fatalf("brush = %d, want 0", s.Brush)
	}
	if n := s.Use(image.Pt(10, 10), false); n != 1 {
		t.Fatalf("radius 0 brush placed %d cells", n)
	}
	if _, ok := s.Sim.World().CellAt(image.Pt(10, 10)).(*sim.Water); !ok {
		t.Fatal("water tool placed no water")
	}
	s.SelectTool(8)
	if n := s.Use(image.Pt(10, 10), true); n != 0 {
		t.Fatal("bomb should not repeat while held")
	}
	if n := s.Erase(image.Pt(10, 10)); n != 1 {
		t.Fatalf("erase removed %d cells", n)
	}
}

func TestResetAndSpawners(t *testing.T) {
	s := newSession(t, "cavern")
	if n := s.ToggleSpawners(); n != 2 {
		t.Fatalf("cavern has %d switchable spawners, want 2", n)
	}
	for i := 0; i < 5; i++ {
		s.Tick()
	}
	s.Reset(4)
	if s.Seed() != 4 || s.Sim.World().Frame() != 0 {
		t.Fatalf("seed = %d frame = %d after reset", s.Seed(), s.Sim.World().Frame())
	}
}

func TestScreenToCell(t *testing.T) {
	cases := []struct {
		x, y, scale, height int
		want                image.Point
	}{
		{0, 0, 3, 10, image.Pt(0, 9)},
		{5, 29, 3, 10, image.Pt(1, 0)},
		{-1, 0, 3, 10, image.Pt(-1, 9)},
		{4, 4, 0, 10, image.Pt(4, 5)},
	}
	for _, tc := range cases {
		if got := ScreenToCell(tc.x, tc.y, tc.scale, tc.height); got != tc.want {
			t.Fatalf("ScreenToCell(%d,%d,%d,%d) = %v, want %v", tc.x, tc.y, tc.scale, tc.height, got, tc.want)
		}
	}
}

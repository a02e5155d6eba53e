package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"pixsim/internal/sim"
)

func TestDefaultsMatchWorldDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := cfg.Sim(), sim.DefaultConfig(); !reflect.DeepEqual(got, want) {
		t.Fatalf("defaults differ:\n got %+v\nwant %+v", got, want)
	}
	if cfg.World.Seed != 1 || cfg.Display.Scale != 3 || !cfg.Display.HUD {
		t.Fatalf("unexpected display/world defaults: %+v %+v", cfg.World, cfg.Display)
	}
}

func TestOverrides(t *testing.T) {
	cfg, err := Load("",
		"fire.spawn_chance=0.25",
		"world.chunks_x=2",
		"sand.light=#ff0000",
		"fire.flammable=[\"#010203\", \"#040506\"]",
	)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s := cfg.Sim()
	if s.Materials.FireSpawnChance != 0.25 || s.ChunksX != 2 {
		t.Fatalf("overrides not applied: %+v", s)
	}
	if s.Materials.SandLight != (color.NRGBA{R: 255, A: 255}) {
		t.Fatalf("sand light = %v", s.Materials.SandLight)
	}
	want := []color.NRGBA{{R: 1, G: 2, B: 3, A: 255}, {R: 4, G: 5, B: 6, A: 255}}
	if !reflect.DeepEqual(s.Materials.Flammable, want) {
		t.Fatalf("flammable = %v", s.Materials.Flammable)
	}
}

func TestBadOverrides(t *testing.T) {
	cases := []string{"no-equals", "=3", "fire.no_such_key=1", "world.tps=fast"}
	for _, kv := range cases {
		t.Run(kv, func(t *testing.T) {
			if _, err := Load("", kv); !errors.Is(err, ErrBadOverride) {
				t.Fatalf("Load(%q) error = %v, want ErrBadOverride", kv, err)
			}
		})
	}
	if _, err := Load("", "world.chunk_w=0"); !errors.Is(err, sim.ErrInvalidConfig) {
		t.Fatalf("zero chunk width error = %v, want ErrInvalidConfig", err)
	}
}

func TestUserFileOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pixsim.yaml")
	data := []byte("world:\n  tps: 30\nsnow:\n  jitter: 0\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path, "world.tps=45")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.World.TPS != 45 || cfg.Snow.Jitter != 0 || cfg.Snow.FallSpeed != 10 {
		t.Fatalf("overlay result: world=%+v snow=%+v", cfg.World, cfg.Snow)
	}

	if err := os.WriteFile(path, []byte("world:\n  tpss: 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("unknown key in user file should fail")
	}
	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file error = %v", err)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("", "fire.start=#11223344")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load written file: %v", err)
	}
	if !reflect.DeepEqual(back, cfg) {
		t.Fatalf("round trip differs:\n got %+v\nwant %+v", back, cfg)
	}
}

func TestParseHex(t *testing.T) {
	cases := []struct {
		in   string
		want Hex
		ok   bool
	}{
		{"#65451b", Hex{R: 0x65, G: 0x45, B: 0x1b, A: 255}, true},
		{"b3b30000", Hex{R: 0xb3, G: 0xb3}, true},
		{"#fff", Hex{}, false},
		{"#gg0000", Hex{}, false},
	}
	for _, tc := range cases {
		got, err := ParseHex(tc.in)
		if (err == nil) != tc.ok {
			t.Fatalf("ParseHex(%q) error = %v", tc.in, err)
		}
		if tc.ok && got != tc.want {
			t.Fatalf("ParseHex(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParamsCarryLayout(t *testing.T) {
	cfg, err := Load("", "world.chunks_x=2", "world.seed=9")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	p := cfg.Params()
	if p["chunks_x"] != "2" || p["seed"] != "9" || p["chunk_w"] != "64" {
		t.Fatalf("params = %v", p)
	}
}

func TestKVList(t *testing.T) {
	var l KVList
	if err := l.Set("walls"); !errors.Is(err, ErrBadOverride) {
		t.Fatalf("Set without '=' returned %v", err)
	}
	for _, kv := range []string{"walls=false", "neck = 2", "walls=true"} {
		if err := l.Set(kv); err != nil {
			t.Fatalf("Set(%q): %v", kv, err)
		}
	}
	m := l.Map()
	if m["walls"] != "true" || m["neck"] != "2" || len(m) != 2 {
		t.Fatalf("map = %v", m)
	}
	if l.String() != "walls=false,neck = 2,walls=true" {
		t.Fatalf("String() = %q", l.String())
	}
}

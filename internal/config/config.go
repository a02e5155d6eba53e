// Package config loads pixsim settings from YAML, merging embedded defaults,
// an optional user file and key=value overrides.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"pixsim/internal/sim"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrBadOverride reports a malformed -set argument.
var ErrBadOverride = errors.New("config: bad override")

// Config holds every setting a front-end needs.
type Config struct {
	World    WorldConfig    `yaml:"world"`
	Water    WaterConfig    `yaml:"water"`
	Sand     SandConfig     `yaml:"sand"`
	Particle ParticleConfig `yaml:"particle"`
	Fire     FireConfig     `yaml:"fire"`
	Ember    EmberConfig    `yaml:"ember"`
	Snow     SnowConfig     `yaml:"snow"`
	Display  DisplayConfig  `yaml:"display"`
}

// WorldConfig holds the grid layout.
type WorldConfig struct {
	ChunkW        int     `yaml:"chunk_w"`
	ChunkH        int     `yaml:"chunk_h"`
	ChunksX       int     `yaml:"chunks_x"`
	ChunksY       int     `yaml:"chunks_y"`
	PixelsPerUnit float64 `yaml:"pixels_per_unit"`
	TPS           int     `yaml:"tps"`
	Seed          int64   `yaml:"seed"`
}

type WaterConfig struct {
	MaxLiquid      float64 `yaml:"max_liquid"`
	MinLiquid      float64 `yaml:"min_liquid"`
	MaxCompression float64 `yaml:"max_compression"`
	MinFlow        float64 `yaml:"min_flow"`
	MaxFlow        float64 `yaml:"max_flow"`
	FlowSpeed      float64 `yaml:"flow_speed"`
	SettleSteps    int     `yaml:"settle_steps"`
	Light          Hex     `yaml:"light"`
	Dark           Hex     `yaml:"dark"`
}

type SandConfig struct {
	StaleAfter int `yaml:"stale_after"`
	Light      Hex `yaml:"light"`
	Dark       Hex `yaml:"dark"`
}

type ParticleConfig struct {
	Gravity float64 `yaml:"gravity"`
	Drag    float64 `yaml:"drag"`
}

type FireConfig struct {
	Buoyancy           float64 `yaml:"buoyancy"`
	Lifetime           float64 `yaml:"lifetime"`
	SpawnChance        float64 `yaml:"spawn_chance"`
	IgniteChance       float64 `yaml:"ignite_chance"`
	OffspringAge       float64 `yaml:"offspring_age"`
	Start              Hex     `yaml:"start"`
	End                Hex     `yaml:"end"`
	Flammable          []Hex   `yaml:"flammable"`
	FlammableTolerance float64 `yaml:"flammable_tolerance"`
}

type EmberConfig struct {
	LifeMin  float64 `yaml:"life_min"`
	LifeMax  float64 `yaml:"life_max"`
	Interval float64 `yaml:"interval"`
}

type SnowConfig struct {
	FallSpeed float64 `yaml:"fall_speed"`
	Jitter    float64 `yaml:"jitter"`
}

// DisplayConfig only affects front-ends.
type DisplayConfig struct {
	Scale    int  `yaml:"scale"`
	HUD      bool `yaml:"hud"`
	HUDWidth int  `yaml:"hud_width"`
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used. Each override has the
// form section.key=value and is applied last.
func Load(path string, overrides ...string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := decodeStrict(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	for _, kv := range overrides {
		if err := cfg.Set(kv); err != nil {
			return nil, err
		}
	}
	if err := cfg.Sim().Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Set applies one section.key=value override.
func (c *Config) Set(kv string) error {
	key, value, ok := strings.Cut(kv, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("%w: %q, want section.key=value", ErrBadOverride, kv)
	}
	path := strings.Split(key, ".")
	leaf := &yaml.Node{Kind: yaml.ScalarNode, Value: strings.TrimSpace(value)}
	if strings.HasPrefix(leaf.Value, "[") {
		var seq yaml.Node
		if err := yaml.Unmarshal([]byte(leaf.Value), &seq); err != nil || len(seq.Content) == 0 {
			return fmt.Errorf("%w: %q: bad list", ErrBadOverride, kv)
		}
		leaf = seq.Content[0]
	}
	node := leaf
	for i := len(path) - 1; i >= 0; i-- {
		node = &yaml.Node{
			Kind:    yaml.MappingNode,
			Content: []*yaml.Node{{Kind: yaml.ScalarNode, Value: path[i]}, node},
		}
	}
	data, err := yaml.Marshal(node)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrBadOverride, kv, err)
	}
	if err := decodeStrict(data, c); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrBadOverride, kv, err)
	}
	return nil
}

func decodeStrict(data []byte, into *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(into)
}

// WriteYAML saves the configuration, for example next to a bench run.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Sim converts the settings into a world configuration.
func (c *Config) Sim() sim.Config {
	flammable := make([]color.NRGBA, len(c.Fire.Flammable))
	for i, h := range c.Fire.Flammable {
		flammable[i] = h.NRGBA()
	}
	return sim.Config{
		ChunkW:        c.World.ChunkW,
		ChunkH:        c.World.ChunkH,
		ChunksX:       c.World.ChunksX,
		ChunksY:       c.World.ChunksY,
		PixelsPerUnit: c.World.PixelsPerUnit,
		TPS:           c.World.TPS,
		Materials: sim.Materials{
			MaxLiquid:      c.Water.MaxLiquid,
			MinLiquid:      c.Water.MinLiquid,
			MaxCompression: c.Water.MaxCompression,
			MinFlow:        c.Water.MinFlow,
			MaxFlow:        c.Water.MaxFlow,
			FlowSpeed:      c.Water.FlowSpeed,
			SettleSteps:    c.Water.SettleSteps,
			WaterLight:     c.Water.Light.NRGBA(),
			WaterDark:      c.Water.Dark.NRGBA(),

			SandStaleAfter: c.Sand.StaleAfter,
			SandLight:      c.Sand.Light.NRGBA(),
			SandDark:       c.Sand.Dark.NRGBA(),

			Gravity: c.Particle.Gravity,
			Drag:    c.Particle.Drag,

			FireBuoyancy:     c.Fire.Buoyancy,
			FireLifetime:     c.Fire.Lifetime,
			FireSpawnChance:  c.Fire.SpawnChance,
			FireIgniteChance: c.Fire.IgniteChance,
			FireOffspringAge: c.Fire.OffspringAge,
			FireStart:        c.Fire.Start.NRGBA(),
			FireEnd:          c.Fire.End.NRGBA(),

			Flammable:          flammable,
			FlammableTolerance: c.Fire.FlammableTolerance,

			EmberLifeMin:  c.Ember.LifeMin,
			EmberLifeMax:  c.Ember.LifeMax,
			EmberInterval: c.Ember.Interval,

			SnowFallSpeed: c.Snow.FallSpeed,
			SnowJitter:    c.Snow.Jitter,
		},
	}
}

// Params returns the world layout as scenario map keys. Scenario-specific
// keys are added by the caller.
func (c *Config) Params() map[string]string {
	return map[string]string{
		"chunk_w":  strconv.Itoa(c.World.ChunkW),
		"chunk_h":  strconv.Itoa(c.World.ChunkH),
		"chunks_x": strconv.Itoa(c.World.ChunksX),
		"chunks_y": strconv.Itoa(c.World.ChunksY),
		"tps":      strconv.Itoa(c.World.TPS),
		"ppu":      strconv.FormatFloat(c.World.PixelsPerUnit, 'g', -1, 64),
		"seed":     strconv.FormatInt(c.World.Seed, 10),
	}
}

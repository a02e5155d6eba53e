package app

import (
	"flag"
	"fmt"
	"maps"

	"pixsim/internal/config"
	"pixsim/internal/core"
	"pixsim/internal/sim"
	"pixsim/internal/sims/scene"
)

// Config holds the command-line options shared by the front-ends.
type Config struct {
	Sim        string
	ConfigPath string
	Overrides  config.KVList
	Params     config.KVList
	Scale      int
	Brush      int
	JSONLog    bool
	Verbose    bool
}

// NewConfig returns the defaults.
func NewConfig() *Config {
	return &Config{Sim: "sandbox", Brush: 2}
}

// Bind registers the options on fs.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, fmt.Sprintf("scenario to run %v", core.Names()))
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "YAML config file layered over the defaults")
	fs.Var(&c.Overrides, "set", "config override in section.key=value form (repeatable)")
	fs.Var(&c.Params, "param", "scenario parameter in key=value form (repeatable)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "screen pixels per cell; 0 uses display.scale")
	fs.IntVar(&c.Brush, "brush", c.Brush, "initial brush radius in cells")
	fs.BoolVar(&c.JSONLog, "log-json", c.JSONLog, "log as JSON")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "debug logging")
}

type materialSetter interface {
	SetMaterials(m sim.Materials) error
}

// Setup is a scenario built from the command line.
type Setup struct {
	Sim      core.Sim
	Settings *config.Config
	Seed     int64
}

// Build loads the YAML configuration and constructs the chosen scenario with
// its layout and rule constants applied.
func (c *Config) Build() (*Setup, error) {
	cfg, err := config.Load(c.ConfigPath, c.Overrides...)
	if err != nil {
		return nil, err
	}
	if c.Scale > 0 {
		cfg.Display.Scale = c.Scale
	}
	factory, ok := core.Sims()[c.Sim]
	if !ok {
		return nil, fmt.Errorf("unknown sim %q, have %v", c.Sim, core.Names())
	}
	params := cfg.Params()
	maps.Copy(params, c.Params.Map())
	s, err := factory(params)
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", c.Sim, err)
	}
	if ms, ok := s.(materialSetter); ok {
		if err := ms.SetMaterials(cfg.Sim().Materials); err != nil {
			return nil, err
		}
	}
	return &Setup{Sim: s, Settings: cfg, Seed: scene.SeedFromMap(params, cfg.World.Seed)}, nil
}

package app

import (
	"fmt"
	"image"
	"log/slog"
	"time"

	"pixsim/internal/core"
	"pixsim/internal/sims/scene"
)

const maxBrush = 16

type spawnerProvider interface {
	Spawners() []scene.Spawner
}

// Session is the input-independent state of a front-end: the running
// scenario, the selected tool and the pause controls.
type Session struct {
	Sim    core.Sim
	Tool   scene.Tool
	Brush  int
	Paused bool

	seed     int64
	stepOnce bool
	log      *slog.Logger
}

// NewSession wraps s, which has already been reset with seed.
func NewSession(s core.Sim, seed int64, brush int, log *slog.Logger) *Session {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Session{Sim: s, Brush: clampBrush(brush), seed: seed, log: log}
}

// Seed returns the seed of the last reset.
func (s *Session) Seed() int64 { return s.seed }

// Tick advances the simulation unless paused and reports whether it stepped.
func (s *Session) Tick() bool {
	if s.Paused && !s.stepOnce {
		return false
	}
	s.stepOnce = false
	s.Sim.Step()
	return true
}

// StepOnce steps a single tick on the next Tick, even when paused.
func (s *Session) StepOnce() { s.stepOnce = true }

func (s *Session) TogglePause() {
	s.Paused = !s.Paused
	s.log.Debug("pause", "paused", s.Paused)
}

// Reset restarts the scenario with seed.
func (s *Session) Reset(seed int64) {
	s.seed = seed
	s.stepOnce = false
	s.Sim.Reset(seed)
	s.log.Info("reset", "sim", s.Sim.Name(), "seed", seed)
}

// Reseed restarts the scenario with a clock-derived seed.
func (s *Session) Reseed() { s.Reset(time.Now().UnixNano()) }

// SelectTool picks the tool with the given 1-based hotkey.
func (s *Session) SelectTool(hotkey int) bool {
	tools := scene.Tools()
	if hotkey < 1 || hotkey > len(tools) {
		return false
	}
	s.Tool = tools[hotkey-1]
	return true
}

// GrowBrush changes the brush radius by delta within bounds.
func (s *Session) GrowBrush(delta int) { s.Brush = clampBrush(s.Brush + delta) }

// Use applies the tool at a cell. held is true for repeats while the button
// stays down; one-shot tools ignore those.
func (s *Session) Use(p image.Point, held bool) int {
	if held && !s.Tool.Continuous() {
		return 0
	}
	return s.Tool.Apply(s.Sim.World(), p, s.Brush)
}

// Erase removes cells around p.
func (s *Session) Erase(p image.Point) int {
	return scene.Erase(s.Sim.World(), p, s.Brush)
}

// ToggleSpawners flips every automatic spawner and reports how many there
// were.
func (s *Session) ToggleSpawners() int {
	sp, ok := s.Sim.(spawnerProvider)
	if !ok {
		return 0
	}
	n := 0
	for _, spawner := range sp.Spawners() {
		if sw, ok := spawner.(scene.Switch); ok {
			sw.SetEnabled(!sw.IsEnabled())
			n++
		}
	}
	s.log.Debug("spawners toggled", "count", n)
	return n
}

// Status is a one-line summary for HUDs and status bars.
func (s *Session) Status() string {
	state := "running"
	if s.Paused {
		state = "paused"
	}
	return fmt.Sprintf("%s  brush %d  %s  seed %d", s.Tool, s.Brush, state, s.seed)
}

// ScreenToCell maps a y-down screen pixel to a y-up cell at the given scale.
func ScreenToCell(x, y, scale, height int) image.Point {
	scale = max(scale, 1)
	return image.Pt(floorDiv(x, scale), height-1-floorDiv(y, scale))
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

func clampBrush(r int) int { return min(max(r, 0), maxBrush) }

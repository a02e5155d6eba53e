//go:build ebiten

package app

import (
	"fmt"
	"image/png"
	"log/slog"
	"os"

	"pixsim/internal/render"
	"pixsim/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var toolKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8,
}

// Game adapts a session to the ebiten.Game interface.
type Game struct {
	*Session
	painter *render.ChunkPainter
	hud     *ui.HUD
	overlay *ui.Overlay

	scale     int
	showHUD   bool
	snapshots int
	log       *slog.Logger
}

// New constructs a Game for the provided session.
func New(s *Session, scale, hudWidth int, showHUD bool, log *slog.Logger) *Game {
	g := &Game{
		Session: s,
		painter: render.NewChunkPainter(),
		hud:     ui.NewHUD(s.Sim, hudWidth),
		overlay: ui.NewOverlay(s.Sim, scale),
		scale:   max(scale, 1),
		showHUD: showHUD,
		log:     log,
	}
	g.painter.Attach(s.Sim.World())
	return g
}

// Update handles input and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.TogglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.StepOnce()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.Reset(g.Seed())
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.Reseed()
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		g.overlay.ShowDirty = !g.overlay.ShowDirty
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		g.overlay.ShowActive = !g.overlay.ShowActive
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.showHUD = !g.showHUD
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		g.ToggleSpawners()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.snapshot()
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		g.GrowBrush(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		g.GrowBrush(1)
	}
	for i, k := range toolKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.SelectTool(i + 1)
		}
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.GrowBrush(int(dy))
	}

	onPanel := false
	if g.showHUD {
		g.hud.SetStatus(g.Status())
		onPanel = g.hud.Update(g.worldWidth())
	}
	if !onPanel {
		g.handleMouse()
	}

	g.Tick()
	return nil
}

func (g *Game) worldWidth() int { return g.Sim.Size().W * g.scale }

func (g *Game) handleMouse() {
	mx, my := ebiten.CursorPosition()
	if mx >= g.worldWidth() {
		return
	}
	p := ScreenToCell(mx, my, g.scale, g.Sim.Size().H)
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.Use(p, false)
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.Use(p, true)
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		g.Erase(p)
	}
}

func (g *Game) snapshot() {
	g.snapshots++
	name := fmt.Sprintf("%s-%d-%04d.png", g.Sim.Name(), g.Seed(), g.snapshots)
	f, err := os.Create(name)
	if err != nil {
		g.log.Error("snapshot", "err", err)
		return
	}
	defer f.Close()
	if err := png.Encode(f, render.Snapshot(g.Sim.World())); err != nil {
		g.log.Error("snapshot", "path", name, "err", err)
		return
	}
	g.log.Info("snapshot saved", "path", name)
}

// Draw uploads changed chunks and renders the world, overlay and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.Sim.Flush()
	g.painter.Draw(screen, g.scale)
	g.overlay.Draw(screen)
	if g.showHUD {
		g.hud.Draw(screen, g.worldWidth(), g.scale)
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.Sim.Size()
	w := s.W * g.scale
	if g.showHUD {
		w += g.hud.Width()
	}
	return w, s.H * g.scale
}

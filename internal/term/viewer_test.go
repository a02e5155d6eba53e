package term

import (
	"flag"
	"image"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"pixsim/internal/app"
	"pixsim/internal/sim"
	_ "pixsim/internal/sims/sandbox"
)

func newViewer(t *testing.T) (*Viewer, tcell.SimulationScreen) {
	t.Helper()
	cfg := app.NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	err := fs.Parse([]string{
		"-set", "world.chunk_w=16", "-set", "world.chunk_h=16",
		"-set", "world.chunks_x=2", "-set", "world.chunks_y=2",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	setup, err := cfg.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(40, 20)
	return New(screen, app.NewSession(setup.Sim, setup.Seed, 0, nil), 60), screen
}

func rgb(c interface{ RGBA() (r, g, b, a uint32) }) tcell.Color {
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}

func TestDrawShowsFloorInBottomHalf(t *testing.T) {
	v, screen := newViewer(t)
	v.Update(time.Now())
	v.Draw()
	// 32 rows fold into 16 lines; the floor is the lower half of line 15.
	r, _, style, _ := screen.GetContent(5, 15)
	if r != upperHalf {
		t.Fatalf("rune = %q, want a half block", r)
	}
	_, bg, _ := style.Decompose()
	if bg != rgb(sim.Rock) {
		t.Fatalf("floor background = %v, want rock", bg)
	}
	r, _, _, _ = screen.GetContent(0, 19)
	if r != ' ' {
		t.Fatalf("status line starts with %q", r)
	}
}

func TestCanvasCountsUploads(t *testing.T) {
	v, _ := newViewer(t)
	v.Update(time.Now())
	if n := v.canvas.Take(); n != 4 {
		t.Fatalf("first flush uploaded %d chunks, want 4", n)
	}
	v.session.TogglePause()
	v.Update(time.Now())
	if n := v.canvas.Take(); n != 0 {
		t.Fatalf("idle flush uploaded %d chunks", n)
	}
}

func TestKeysDriveSession(t *testing.T) {
	v, _ := newViewer(t)
	key := func(r rune) bool {
		return v.Handle(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	key(' ')
	if !v.session.Paused {
		t.Fatal("space should pause")
	}
	key('3')
	if v.session.Tool.String() != "rock" {
		t.Fatalf("tool = %v, want rock", v.session.Tool)
	}
	key(']')
	if v.session.Brush != 1 {
		t.Fatalf("brush = %d, want 1", v.session.Brush)
	}
	if key('q') {
		t.Fatal("q should quit")
	}
	if v.Handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatal("escape should quit")
	}
}

func TestMousePaintsAndErases(t *testing.T) {
	v, _ := newViewer(t)
	v.session.SelectTool(1)
	w := v.session.Sim.World()
	// line 4 upper half is world row 31-8 = 23
	v.Handle(tcell.NewEventMouse(10, 4, tcell.Button1, tcell.ModNone))
	if got := v.CellAt(10, 4); got != image.Pt(10, 23) {
		t.Fatalf("CellAt = %v", got)
	}
	if c := w.CellAt(image.Pt(10, 23)); c == nil || c.Kind() != sim.KindSand {
		t.Fatalf("cell after click = %v, want sand", c)
	}
	v.Handle(tcell.NewEventMouse(10, 4, tcell.ButtonNone, tcell.ModNone))
	v.Handle(tcell.NewEventMouse(10, 4, tcell.Button2, tcell.ModNone))
	if w.TileExistsAt(image.Pt(10, 23)) {
		t.Fatal("right click should erase")
	}
}

package term

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/gdamore/tcell/v2"

	"pixsim/internal/app"
	"pixsim/internal/core"
)

const upperHalf = '▀'

// Viewer runs a session in a terminal screen.
type Viewer struct {
	screen  tcell.Screen
	session *app.Session
	canvas  *Canvas
	timer   *core.FixedStep
	// held is true while the primary button stays down between mouse events.
	held bool
}

// New attaches a viewer to an initialized screen.
func New(screen tcell.Screen, s *app.Session, tps int) *Viewer {
	return &Viewer{
		screen:  screen,
		session: s,
		canvas:  NewCanvas(s.Sim.World()),
		timer:   core.NewFixedStep(tps),
	}
}

// Run polls events and redraws until the context ends or the user quits.
func (v *Viewer) Run(ctx context.Context) error {
	v.screen.EnableMouse()
	defer v.screen.DisableMouse()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !v.Handle(ev) {
				return nil
			}
		case now := <-ticker.C:
			v.Update(now)
			v.Draw()
		}
	}
}

// Update runs the ticks that are due and flushes the world to the canvas.
func (v *Viewer) Update(now time.Time) {
	for n := v.timer.Due(now); n > 0; n-- {
		v.session.Tick()
	}
	v.session.Sim.Flush()
}

// Handle applies one input event and reports whether the viewer should keep
// running.
func (v *Viewer) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.key(ev)
	case *tcell.EventMouse:
		v.mouse(ev)
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *Viewer) key(ev *tcell.EventKey) bool {
	s := v.session
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}
	switch r := ev.Rune(); {
	case r == 'q':
		return false
	case r == ' ':
		s.TogglePause()
	case r == 'n':
		s.StepOnce()
	case r == 'r':
		s.Reset(s.Seed())
	case r == 's':
		s.Reseed()
	case r == 'f':
		s.ToggleSpawners()
	case r == '[':
		s.GrowBrush(-1)
	case r == ']':
		s.GrowBrush(1)
	case r >= '1' && r <= '9':
		s.SelectTool(int(r - '0'))
	}
	return true
}

// CellAt maps a terminal position to the world cell drawn in its upper half.
func (v *Viewer) CellAt(x, y int) image.Point {
	return image.Pt(x, v.canvas.Size().Y-1-2*y)
}

func (v *Viewer) mouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	p := v.CellAt(x, y)
	switch btn := ev.Buttons(); {
	case btn&tcell.Button1 != 0:
		v.session.Use(p, v.held)
		v.held = true
	case btn&tcell.Button2 != 0:
		v.session.Erase(p)
		v.held = false
	default:
		v.held = false
	}
}

// Draw paints the canvas two rows per line and a status line at the bottom.
func (v *Viewer) Draw() {
	width, height := v.screen.Size()
	size := v.canvas.Size()
	rows := min(height-1, (size.Y+1)/2)
	cols := min(width, size.X)
	v.screen.Clear()
	for ty := 0; ty < rows; ty++ {
		for x := 0; x < cols; x++ {
			top := v.canvas.At(x, 2*ty)
			bottom := v.canvas.At(x, 2*ty+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			v.screen.SetContent(x, ty, upperHalf, nil, style)
		}
	}
	st := v.session.Sim.World().Stats()
	status := fmt.Sprintf(" %s | %s | frame %d live %d static %d dirty %d",
		v.session.Sim.Name(), v.session.Status(), st.Frame, st.LiveCells, st.StaticCells, st.DirtyChunks)
	statusStyle := tcell.StyleDefault.Reverse(true)
	for x, r := range []rune(status) {
		if x >= width {
			break
		}
		v.screen.SetContent(x, height-1, r, nil, statusStyle)
	}
	v.screen.Show()
}

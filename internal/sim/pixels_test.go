package sim

import (
	"image"
	"image/color"
	"testing"
)

type recordSurface struct {
	applies int
	last    []byte
}

func (s *recordSurface) Apply(buf *PixelBuffer) {
	s.applies++
	s.last = append(s.last[:0], buf.Pix()...)
}

func TestPixelBufferRowsTopFirst(t *testing.T) {
	b := NewPixelBuffer(3, 2)
	red := color.NRGBA{R: 255, A: 255}
	b.SetPixel(0, 1, red)
	if got := b.Pix()[:4]; got[0] != 255 || got[3] != 255 {
		t.Fatalf("top-left bytes = %v, want red", got)
	}
	if b.At(0, 1) != red || b.At(0, 0) != Transparent {
		t.Fatal("At disagrees with SetPixel")
	}
	if img := b.Image(); img.NRGBAAt(0, 0) != red {
		t.Fatalf("image top-left = %v, want red", img.NRGBAAt(0, 0))
	}
}

func TestPixelBufferChangeTracking(t *testing.T) {
	b := NewPixelBuffer(2, 2)
	if b.Changed() {
		t.Fatal("new buffer should be unchanged")
	}
	b.SetPixel(1, 1, Transparent)
	if b.Changed() {
		t.Fatal("writing the present color is not a change")
	}
	b.SetPixel(5, 5, Rock)
	if b.Changed() {
		t.Fatal("out of range writes are ignored")
	}
	b.SetPixel(1, 1, Rock)
	if !b.Changed() {
		t.Fatal("new color should mark the buffer changed")
	}
}

func TestFlushUploadsOnlyChangedChunks(t *testing.T) {
	w := newTestWorld(t, 4, 4, 2, 1)
	surfaces := make(map[image.Point]*recordSurface)
	w.SetSurfaces(func(index image.Point, cw, ch int) Surface {
		s := &recordSurface{}
		surfaces[index] = s
		return s
	})
	if n := w.Flush(); n != 2 {
		t.Fatalf("first flush uploaded %d chunks, want 2", n)
	}
	if n := w.Flush(); n != 0 {
		t.Fatalf("idle flush uploaded %d chunks, want 0", n)
	}

	cell, err := w.Spawn(KindSand, image.Pt(5, 3))
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if n := w.Flush(); n != 1 {
		t.Fatalf("flush after spawn uploaded %d chunks, want 1", n)
	}
	east := surfaces[image.Pt(1, 0)]
	if east.applies != 2 {
		t.Fatalf("east surface applied %d times, want 2", east.applies)
	}
	// local (1,3) is the top row
	px := east.last[4:8]
	c := cell.Color()
	if px[0] != c.R || px[1] != c.G || px[2] != c.B || px[3] != c.A {
		t.Fatalf("uploaded pixel %v, want %v", px, c)
	}
	if surfaces[image.Pt(0, 0)].applies != 1 {
		t.Fatal("untouched chunk should not upload again")
	}
}

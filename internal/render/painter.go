//go:build ebiten

package render

import (
	"image"

	"pixsim/internal/sim"

	"github.com/hajimehoshi/ebiten/v2"
)

// ChunkPainter keeps one GPU image per chunk and uploads a chunk only when
// the world flushes it.
type ChunkPainter struct {
	cfg     sim.Config
	images  map[image.Point]*ebiten.Image
	scratch []byte
}

// NewChunkPainter creates an empty painter. Call Attach before drawing.
func NewChunkPainter() *ChunkPainter {
	return &ChunkPainter{images: make(map[image.Point]*ebiten.Image)}
}

// Attach drops every image and installs fresh surfaces on w. Call it again
// whenever the world's layout is rebuilt.
func (p *ChunkPainter) Attach(w *sim.World) {
	for _, img := range p.images {
		img.Deallocate()
	}
	clear(p.images)
	p.cfg = w.Config()
	w.SetSurfaces(func(index image.Point, cw, ch int) sim.Surface {
		img := ebiten.NewImage(cw, ch)
		p.images[index] = img
		return &chunkSurface{painter: p, img: img}
	})
}

type chunkSurface struct {
	painter *ChunkPainter
	img     *ebiten.Image
}

func (s *chunkSurface) Apply(buf *sim.PixelBuffer) {
	pix := buf.Pix()
	if cap(s.painter.scratch) < len(pix) {
		s.painter.scratch = make([]byte, len(pix))
	}
	dst := s.painter.scratch[:len(pix)]
	premultiplyRGBA(dst, pix)
	s.img.WritePixels(dst)
}

// Draw paints every chunk image onto screen at the given scale.
func (p *ChunkPainter) Draw(screen *ebiten.Image, scale int) {
	if scale <= 0 {
		scale = 1
	}
	for index, img := range p.images {
		at := ChunkOrigin(p.cfg, index)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(scale), float64(scale))
		op.GeoM.Translate(float64(at.X*scale), float64(at.Y*scale))
		screen.DrawImage(img, op)
	}
}

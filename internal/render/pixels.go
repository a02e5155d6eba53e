package render

import (
	"image"
	"image/draw"

	"pixsim/internal/sim"
)

// premultiplyRGBA converts non-premultiplied RGBA bytes from src into dst,
// which is what ebiten images expect.
func premultiplyRGBA(dst, src []byte) {
	for i := 0; i+3 < len(src) && i+3 < len(dst); i += 4 {
		a := uint32(src[i+3])
		switch a {
		case 0:
			dst[i+0], dst[i+1], dst[i+2], dst[i+3] = 0, 0, 0, 0
		case 255:
			dst[i+0], dst[i+1], dst[i+2], dst[i+3] = src[i+0], src[i+1], src[i+2], 255
		default:
			dst[i+0] = uint8((uint32(src[i+0])*a + 127) / 255)
			dst[i+1] = uint8((uint32(src[i+1])*a + 127) / 255)
			dst[i+2] = uint8((uint32(src[i+2])*a + 127) / 255)
			dst[i+3] = uint8(a)
		}
	}
}

// ChunkOrigin returns the top-left screen pixel of the chunk at index, before
// scaling. Chunk row 0 is at the bottom of the screen.
func ChunkOrigin(cfg sim.Config, index image.Point) image.Point {
	return image.Pt(index.X*cfg.ChunkW, (cfg.ChunksY-1-index.Y)*cfg.ChunkH)
}

// Snapshot composes every chunk's pixel buffer into one top-row-first image.
func Snapshot(w *sim.World) *image.NRGBA {
	cfg := w.Config()
	size := w.Size()
	out := image.NewNRGBA(image.Rect(0, 0, size.X, size.Y))
	for _, c := range w.Chunks() {
		src := c.Pixels().Image()
		at := ChunkOrigin(cfg, c.Index())
		draw.Draw(out, src.Bounds().Add(at), src, image.Point{}, draw.Src)
	}
	return out
}

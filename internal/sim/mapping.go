package sim

import (
	"image"
	"math"
)

// WorldToGrid converts a position in world units into the nearest grid cell.
func WorldToGrid(x, y, pixelsPerUnit float64) image.Point {
	return image.Pt(int(math.Round(x*pixelsPerUnit)), int(math.Round(y*pixelsPerUnit)))
}

// GridToWorld converts a grid cell into world units.
func GridToWorld(p image.Point, pixelsPerUnit float64) (x, y float64) {
	return float64(p.X) / pixelsPerUnit, float64(p.Y) / pixelsPerUnit
}

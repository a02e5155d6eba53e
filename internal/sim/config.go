package sim

import (
	"fmt"
	"image"
	"time"
)

// Config controls the grid layout and the rule constants of a World.
type Config struct {
	ChunkW  int
	ChunkH  int
	ChunksX int
	ChunksY int

	// PixelsPerUnit scales grid coordinates into world units.
	PixelsPerUnit float64
	// TPS is the number of simulation steps per second of simulated time.
	TPS int

	Materials Materials
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		ChunkW:        64,
		ChunkH:        64,
		ChunksX:       4,
		ChunksY:       3,
		PixelsPerUnit: 16,
		TPS:           60,
		Materials:     DefaultMaterials(),
	}
}

// Validate reports layout values that cannot build a grid.
func (c Config) Validate() error {
	if c.ChunkW <= 0 || c.ChunkH <= 0 {
		return fmt.Errorf("%w: chunk size %dx%d", ErrInvalidConfig, c.ChunkW, c.ChunkH)
	}
	if c.ChunksX <= 0 || c.ChunksY <= 0 {
		return fmt.Errorf("%w: chunk grid %dx%d", ErrInvalidConfig, c.ChunksX, c.ChunksY)
	}
	if c.PixelsPerUnit <= 0 {
		return fmt.Errorf("%w: pixels per unit %g", ErrInvalidConfig, c.PixelsPerUnit)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("%w: tps %d", ErrInvalidConfig, c.TPS)
	}
	return nil
}

// SameLayout reports whether two configs share chunk size, chunk grid and
// scale. Any difference requires rebuilding every chunk.
func (c Config) SameLayout(o Config) bool {
	return c.ChunkW == o.ChunkW && c.ChunkH == o.ChunkH &&
		c.ChunksX == o.ChunksX && c.ChunksY == o.ChunksY &&
		c.PixelsPerUnit == o.PixelsPerUnit
}

// Size returns the global grid dimensions in cells.
func (c Config) Size() image.Point {
	return image.Pt(c.ChunkW*c.ChunksX, c.ChunkH*c.ChunksY)
}

// DT returns the simulated seconds covered by one step.
func (c Config) DT() float64 {
	if c.TPS <= 0 {
		return 1.0 / 60
	}
	return 1 / float64(c.TPS)
}

// Tick returns the wall-clock length of one step.
func (c Config) Tick() time.Duration {
	if c.TPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TPS)
}

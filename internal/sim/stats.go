package sim

import (
	"log/slog"

	"gonum.org/v1/gonum/floats"
)

// Stats is a snapshot of the world's bookkeeping.
type Stats struct {
	Frame       uint64  `csv:"frame"`
	LiveCells   int     `csv:"live_cells"`
	StaticCells int     `csv:"static_cells"`
	TotalCells  int     `csv:"total_cells"`
	PooledCells int     `csv:"pooled_cells"`
	Recycled    int     `csv:"recycled"`
	DirtyChunks int     `csv:"dirty_chunks"`
	LiquidTotal float64 `csv:"liquid_total"`
}

// LogValue implements slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("frame", s.Frame),
		slog.Int("live", s.LiveCells),
		slog.Int("static", s.StaticCells),
		slog.Int("total", s.TotalCells),
		slog.Int("pooled", s.PooledCells),
		slog.Int("dirty_chunks", s.DirtyChunks),
		slog.Float64("liquid", s.LiquidTotal),
	)
}

// Stats collects the current counters.
func (w *World) Stats() Stats {
	s := Stats{
		Frame:       w.frame,
		PooledCells: w.pool.Len(),
		Recycled:    w.pool.Recycled(),
		LiquidTotal: w.LiquidTotal(),
	}
	for _, c := range w.chunks {
		s.LiveCells += c.ActiveCount()
		s.StaticCells += c.static
		s.TotalCells += c.Len()
		if _, ok := c.Dirty(); ok {
			s.DirtyChunks++
		}
	}
	return s
}

// LiquidTotal sums the committed liquid of every water cell.
func (w *World) LiquidTotal() float64 {
	var amounts []float64
	for _, c := range w.chunks {
		for _, cell := range c.cells {
			if water, ok := cell.(*Water); ok {
				amounts = append(amounts, water.newLiquid)
			}
		}
	}
	if len(amounts) == 0 {
		return 0
	}
	return floats.Sum(amounts)
}

package telemetry

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes one series of samples.
type Summary struct {
	Name   string
	N      int
	Mean   float64
	StdDev float64
	Min    float64
	P50    float64
	P95    float64
	Max    float64
}

// Summarize computes the summary of xs. xs is not modified.
func Summarize(name string, xs []float64) Summary {
	s := Summary{Name: name, N: len(xs)}
	if len(xs) == 0 {
		return s
	}
	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	s.Mean, s.StdDev = stat.MeanStdDev(sorted, nil)
	if len(sorted) < 2 {
		s.StdDev = 0
	}
	s.Min, s.Max = floats.Min(sorted), floats.Max(sorted)
	s.P50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	s.P95 = stat.Quantile(0.95, stat.Empirical, sorted, nil)
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%-12s n=%-6d mean=%-10.3f sd=%-10.3f min=%-10.3f p50=%-10.3f p95=%-10.3f max=%.3f",
		s.Name, s.N, s.Mean, s.StdDev, s.Min, s.P50, s.P95, s.Max)
}

// Series extracts one column from rows.
func Series(rows []Row, pick func(Row) float64) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = pick(r)
	}
	return out
}

// Report summarizes the columns a bench run cares about.
func Report(rows []Row) []Summary {
	return []Summary{
		Summarize("step_ms", Series(rows, func(r Row) float64 { return float64(r.StepNanos) / 1e6 })),
		Summarize("live", Series(rows, func(r Row) float64 { return float64(r.LiveCells) })),
		Summarize("total", Series(rows, func(r Row) float64 { return float64(r.TotalCells) })),
		Summarize("dirty_chunks", Series(rows, func(r Row) float64 { return float64(r.DirtyChunks) })),
		Summarize("flushed", Series(rows, func(r Row) float64 { return float64(r.Flushed) })),
		Summarize("liquid", Series(rows, func(r Row) float64 { return r.LiquidTotal })),
	}
}

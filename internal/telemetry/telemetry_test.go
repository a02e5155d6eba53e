package telemetry

import (
	"bytes"
	"math"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"pixsim/internal/sim"
)

func sampleRows() []Row {
	return []Row{
		{Scenario: "sandbox", Seed: 1, Stats: sim.Stats{Frame: 1, LiveCells: 10, TotalCells: 40, LiquidTotal: 2.5}, StepNanos: 1000, Flushed: 2},
		{Scenario: "sandbox", Seed: 1, Stats: sim.Stats{Frame: 2, LiveCells: 8, TotalCells: 40, LiquidTotal: 2.5}, StepNanos: 1500, Flushed: 1},
	}
}

func TestRecorderWritesHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	r := NewRecorder(&buf)
	rows := sampleRows()
	if err := r.Write(rows[0]); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := r.Write(rows[1]); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus 2:\n%s", len(lines), buf.String())
	}
	for _, col := range []string{"scenario", "frame", "live_cells", "liquid_total", "step_ns"} {
		if !strings.Contains(lines[0], col) {
			t.Fatalf("header %q lacks %q", lines[0], col)
		}
	}
	if r.Rows() != 2 {
		t.Fatalf("Rows = %d", r.Rows())
	}
}

func TestFileRoundTrip(t *testing.T) {
	for _, name := range []string{"run.csv", "run.csv.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			r, err := Create(path)
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if err := r.Write(sampleRows()...); err != nil {
				t.Fatalf("Write: %v", err)
			}
			if err := r.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}
			got, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			if !slices.Equal(got, sampleRows()) {
				t.Fatalf("rows = %+v", got)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	xs := []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	s := Summarize("x", xs)
	if s.N != 10 || s.Mean != 5.5 || s.Min != 1 || s.Max != 10 {
		t.Fatalf("summary = %+v", s)
	}
	if s.P50 != 5 || s.P95 != 10 {
		t.Fatalf("quantiles p50=%g p95=%g", s.P50, s.P95)
	}
	if math.Abs(s.StdDev-3.0276503540974917) > 1e-9 {
		t.Fatalf("stddev = %g", s.StdDev)
	}
	if xs[0] != 10 {
		t.Fatal("Summarize sorted its input")
	}
	if one := Summarize("one", []float64{4}); one.StdDev != 0 || one.P95 != 4 {
		t.Fatalf("single sample summary = %+v", one)
	}
	if empty := Summarize("none", nil); empty.N != 0 {
		t.Fatalf("empty summary = %+v", empty)
	}
}

func TestReport(t *testing.T) {
	rep := Report(sampleRows())
	if len(rep) == 0 || rep[0].Name != "step_ms" {
		t.Fatalf("report = %+v", rep)
	}
	if math.Abs(rep[0].Mean-0.00125) > 1e-12 {
		t.Fatalf("mean step = %g ms", rep[0].Mean)
	}
}

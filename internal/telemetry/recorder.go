// Package telemetry records per-step world statistics to CSV and summarizes
// them.
package telemetry

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/klauspost/compress/zstd"

	"pixsim/internal/sim"
)

// Row is one recorded step.
type Row struct {
	Scenario string `csv:"scenario"`
	Seed     int64  `csv:"seed"`
	sim.Stats
	StepNanos int64 `csv:"step_ns"`
	Flushed   int   `csv:"flushed"`
}

// Recorder appends rows to a CSV stream. Paths ending in .zst are zstd
// compressed.
type Recorder struct {
	f   *os.File
	enc *zstd.Encoder
	buf *bufio.Writer

	headerWritten bool
	rows          int
}

// Create opens path for writing, truncating any existing file.
func Create(path string) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	r := &Recorder{f: f}
	var w io.Writer = f
	if strings.HasSuffix(path, ".zst") {
		enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("zstd writer: %w", err)
		}
		r.enc = enc
		w = enc
	}
	r.buf = bufio.NewWriterSize(w, 64*1024)
	return r, nil
}

// NewRecorder writes plain CSV to w. Close flushes but does not close w.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{buf: bufio.NewWriter(w)}
}

// Write appends rows, emitting the header before the first batch.
func (r *Recorder) Write(rows ...Row) error {
	if r == nil || len(rows) == 0 {
		return nil
	}
	if !r.headerWritten {
		if err := gocsv.Marshal(rows, r.buf); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		r.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(rows, r.buf); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
	}
	r.rows += len(rows)
	return nil
}

// Rows returns how many rows were written.
func (r *Recorder) Rows() int { return r.rows }

// Close flushes all buffered output.
func (r *Recorder) Close() error {
	if r == nil {
		return nil
	}
	err := r.buf.Flush()
	if r.enc != nil {
		if cerr := r.enc.Close(); err == nil {
			err = cerr
		}
	}
	if r.f != nil {
		if cerr := r.f.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return fmt.Errorf("closing telemetry: %w", err)
	}
	return nil
}

// ReadFile loads rows written by a Recorder.
func ReadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var src io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		defer dec.Close()
		src = dec
	}
	var rows []Row
	if err := gocsv.Unmarshal(src, &rows); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return rows, nil
}

// Package bench runs scenarios headless over many seeds in parallel.
package bench

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"runtime"
	"sort"
	"sync"
	"time"

	"pixsim/internal/core"
	"pixsim/internal/sim"
	"pixsim/internal/telemetry"
)

// ErrDiverged reports a seed whose replay ended on a different grid.
var ErrDiverged = errors.New("bench: replay diverged")

// Options configures a run.
type Options struct {
	Scenario string
	Params   map[string]string
	// Materials replaces the scenario's rule constants when set.
	Materials *sim.Materials
	Seeds     []int64
	Steps     int
	Workers   int
	// Verify replays every seed and compares the final digests.
	Verify bool
	Logger *slog.Logger
}

// Result is the outcome of one seed.
type Result struct {
	Seed    int64
	Rows    []telemetry.Row
	Digest  uint64
	Elapsed time.Duration
	// Replay is the digest of the verification run, when one was made.
	Replay uint64
}

// Matched reports whether the replay reproduced the grid.
func (r Result) Matched() bool { return r.Replay == r.Digest }

type nullSurface struct{}

func (nullSurface) Apply(*sim.PixelBuffer) {}

// Run steps every seed on a worker pool and returns results in seed order.
func Run(ctx context.Context, opts Options) ([]Result, error) {
	factory, ok := core.Sims()[opts.Scenario]
	if !ok {
		return nil, fmt.Errorf("bench: unknown scenario %q", opts.Scenario)
	}
	if opts.Steps <= 0 {
		return nil, fmt.Errorf("bench: steps must be positive, got %d", opts.Steps)
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	jobs := make(chan int64)
	results := make(chan Result)
	errs := make(chan error, len(opts.Seeds))
	var wg sync.WaitGroup

	for i := 0; i < opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range jobs {
				res, err := runSeed(factory, opts, seed)
				if err != nil {
					errs <- err
					continue
				}
				log.Info("seed done", "seed", seed, "elapsed", res.Elapsed.Round(time.Millisecond), "final", res.Rows[len(res.Rows)-1].Stats)
				results <- res
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for _, seed := range opts.Seeds {
			select {
			case jobs <- seed:
			case <-ctx.Done():
				return
			}
		}
	}()

	var all []Result
	for res := range results {
		all = append(all, res)
	}
	close(errs)
	sort.Slice(all, func(i, j int) bool { return all[i].Seed < all[j].Seed })

	var failed []error
	for err := range errs {
		failed = append(failed, err)
	}
	if err := ctx.Err(); err != nil {
		failed = append(failed, err)
	}
	if opts.Verify {
		for _, r := range all {
			if !r.Matched() {
				failed = append(failed, fmt.Errorf("%w: seed %d digest %016x replay %016x", ErrDiverged, r.Seed, r.Digest, r.Replay))
			}
		}
	}
	return all, errors.Join(failed...)
}

func runSeed(factory core.Factory, opts Options, seed int64) (Result, error) {
	start := time.Now()
	rows, digest, err := simulate(factory, opts, seed, true)
	if err != nil {
		return Result{}, err
	}
	res := Result{Seed: seed, Rows: rows, Digest: digest, Replay: digest, Elapsed: time.Since(start)}
	if opts.Verify {
		_, replay, err := simulate(factory, opts, seed, false)
		if err != nil {
			return Result{}, err
		}
		res.Replay = replay
	}
	return res, nil
}

func simulate(factory core.Factory, opts Options, seed int64, record bool) ([]telemetry.Row, uint64, error) {
	s, err := factory(opts.Params)
	if err != nil {
		return nil, 0, fmt.Errorf("seed %d: %w", seed, err)
	}
	w := s.World()
	if opts.Materials != nil {
		cfg := w.Config()
		cfg.Materials = *opts.Materials
		if _, err := w.Reconfigure(cfg); err != nil {
			return nil, 0, fmt.Errorf("seed %d: %w", seed, err)
		}
	}
	w.SetSurfaces(func(image.Point, int, int) sim.Surface { return nullSurface{} })
	s.Reset(seed)

	var rows []telemetry.Row
	if record {
		rows = make([]telemetry.Row, 0, opts.Steps)
	}
	for i := 0; i < opts.Steps; i++ {
		t0 := time.Now()
		s.Step()
		elapsed := time.Since(t0)
		flushed := s.Flush()
		if record {
			rows = append(rows, telemetry.Row{
				Scenario:  s.Name(),
				Seed:      seed,
				Stats:     w.Stats(),
				StepNanos: elapsed.Nanoseconds(),
				Flushed:   flushed,
			})
		}
	}
	return rows, w.Digest(), nil
}

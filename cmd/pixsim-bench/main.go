package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"maps"
	"os"
	"os/signal"
	"runtime"
	"time"

	"pixsim/internal/bench"
	"pixsim/internal/config"
	"pixsim/internal/core"
	_ "pixsim/internal/sims/cavern"
	_ "pixsim/internal/sims/hourglass"
	_ "pixsim/internal/sims/sandbox"
	"pixsim/internal/telemetry"
)

type options struct {
	sim        string
	steps      int
	seeds      int
	firstSeed  int64
	workers    int
	out        string
	read       string
	verify     bool
	configPath string
	saveConfig string
	jsonLog    bool
	verbose    bool
	overrides  config.KVList
	params     config.KVList
}

func main() {
	var o options
	flag.StringVar(&o.sim, "sim", "cavern", "scenario to run")
	flag.IntVar(&o.steps, "steps", 600, "ticks to simulate per seed")
	flag.IntVar(&o.seeds, "seeds", 8, "number of seeds to run")
	flag.Int64Var(&o.firstSeed, "seed", 0, "first seed; defaults to world.seed from the config")
	flag.IntVar(&o.workers, "workers", runtime.NumCPU(), "number of worker goroutines")
	flag.StringVar(&o.out, "out", "", "write per-step telemetry to this .csv or .csv.zst file")
	flag.StringVar(&o.read, "read", "", "summarize an existing telemetry file and exit")
	flag.BoolVar(&o.verify, "verify", false, "replay every seed and compare final grids")
	flag.StringVar(&o.configPath, "config", "", "YAML config file layered over the defaults")
	flag.StringVar(&o.saveConfig, "save-config", "", "write the effective config to this YAML file")
	flag.BoolVar(&o.jsonLog, "log-json", false, "log as JSON")
	flag.BoolVar(&o.verbose, "v", false, "debug logging")
	flag.Var(&o.overrides, "set", "config override in section.key=value form (repeatable)")
	flag.Var(&o.params, "param", "scenario parameter in key=value form (repeatable)")
	flag.Parse()

	if err := run(o); err != nil {
		log.Fatalf("pixsim-bench: %v", err)
	}
}

func run(o options) error {
	logger := config.NewLogger(os.Stderr, o.jsonLog, o.verbose)

	if o.read != "" {
		rows, err := telemetry.ReadFile(o.read)
		if err != nil {
			return fmt.Errorf("reading telemetry %s: %w", o.read, err)
		}
		printReport(o.read, rows)
		return nil
	}

	cfg, err := config.Load(o.configPath, o.overrides...)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if o.saveConfig != "" {
		if err := cfg.WriteYAML(o.saveConfig); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
	}
	if _, ok := core.Sims()[o.sim]; !ok {
		return fmt.Errorf("unknown scenario %q, known: %v", o.sim, core.Names())
	}

	start := cfg.World.Seed
	if o.firstSeed != 0 {
		start = o.firstSeed
	}
	list := make([]int64, o.seeds)
	for i := range list {
		list[i] = start + int64(i)
	}
	scenario := cfg.Params()
	maps.Copy(scenario, o.params.Map())
	materials := cfg.Sim().Materials

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("bench starting", "sim", o.sim, "seeds", len(list), "workers", o.workers, "steps", o.steps, "verify", o.verify)
	began := time.Now()
	results, runErr := bench.Run(ctx, bench.Options{
		Scenario:  o.sim,
		Params:    scenario,
		Materials: &materials,
		Seeds:     list,
		Steps:     o.steps,
		Workers:   o.workers,
		Verify:    o.verify,
		Logger:    logger,
	})
	logger.Info("bench finished", "elapsed", time.Since(began).Round(time.Millisecond), "results", len(results))

	var rows []telemetry.Row
	for _, r := range results {
		rows = append(rows, r.Rows...)
	}
	if o.out != "" && len(rows) > 0 {
		if err := writeRows(o.out, rows); err != nil {
			return fmt.Errorf("writing telemetry %s: %w", o.out, err)
		}
		logger.Info("telemetry written", "path", o.out, "rows", len(rows))
	}
	if len(rows) > 0 {
		printReport(o.sim, rows)
	}
	for _, r := range results {
		fmt.Printf("seed %-6d digest %016x elapsed %s\n", r.Seed, r.Digest, r.Elapsed.Round(time.Millisecond))
	}
	return runErr
}

func writeRows(path string, rows []telemetry.Row) error {
	rec, err := telemetry.Create(path)
	if err != nil {
		return err
	}
	if err := rec.Write(rows...); err != nil {
		rec.Close()
		return err
	}
	return rec.Close()
}

func printReport(title string, rows []telemetry.Row) {
	fmt.Printf("\n%s: %d rows\n", title, len(rows))
	for _, s := range telemetry.Report(rows) {
		fmt.Println(s)
	}
}

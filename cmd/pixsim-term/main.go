package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"pixsim/internal/app"
	"pixsim/internal/config"
	_ "pixsim/internal/sims/cavern"
	_ "pixsim/internal/sims/hourglass"
	_ "pixsim/internal/sims/sandbox"
	"pixsim/internal/term"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	logPath := flag.String("log", "", "log file; the terminal is taken by the view")
	flag.Parse()

	if err := run(cfg, *logPath); err != nil {
		log.Fatalf("pixsim-term: %v", err)
	}
}

// run owns every resource so its deferred cleanup happens before main exits.
func run(cfg *app.Config, logPath string) error {
	var out io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log: %w", err)
		}
		defer f.Close()
		out = f
	}
	logger := config.NewLogger(out, cfg.JSONLog, cfg.Verbose)

	setup, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("startup: %w", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	session := app.NewSession(setup.Sim, setup.Seed, cfg.Brush, logger)
	logger.Info("running", "sim", setup.Sim.Name(), "seed", setup.Seed)
	err = term.New(screen, session, setup.Settings.World.TPS).Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

//go:build ebiten

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"pixsim/internal/app"
	"pixsim/internal/config"
	_ "pixsim/internal/sims/cavern"
	_ "pixsim/internal/sims/hourglass"
	_ "pixsim/internal/sims/sandbox"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	if err := run(cfg); err != nil {
		log.Fatalf("pixsim: %v", err)
	}
}

func run(cfg *app.Config) error {
	logger := config.NewLogger(os.Stderr, cfg.JSONLog, cfg.Verbose)
	setup, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("startup: %w", err)
	}
	settings := setup.Settings
	session := app.NewSession(setup.Sim, setup.Seed, cfg.Brush, logger)
	game := app.New(session, settings.Display.Scale, settings.Display.HUDWidth, settings.Display.HUD, logger)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("pixsim - " + setup.Sim.Name())
	ebiten.SetTPS(settings.World.TPS)
	ebiten.SetWindowSize(w, h)

	logger.Info("running", "sim", setup.Sim.Name(), "seed", setup.Seed, "size", setup.Sim.Size())
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Command worldsim runs the Wildermark world simulation headless,
// advancing turns and printing the narrative feed.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/talgya/wildermark/internal/config"
	"github.com/talgya/wildermark/internal/persistence"
	"github.com/talgya/wildermark/internal/sim"
	"github.com/talgya/wildermark/internal/world"
	"github.com/talgya/wildermark/internal/worldgen"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("bad configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	slog.Info("Wildermark world simulation", "seed", cfg.Seed)

	os.MkdirAll(filepath.Dir(cfg.DBPath), 0755)
	db, err := persistence.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.DBPath)

	var w *world.World
	if db.HasWorld() {
		slog.Info("found saved world, loading...")
		w, err = db.LoadWorld()
		if err != nil {
			slog.Error("failed to load world", "error", err)
			os.Exit(1)
		}
	} else {
		slog.Info("no saved world, generating...")
		gen := worldgen.DefaultConfig(cfg.Seed)
		gen.Width = cfg.WorldWidth
		gen.Height = cfg.WorldHeight
		gen.Countries = cfg.Countries
		gen.Settlements = cfg.Settlements
		w = worldgen.Generate(gen)
		if err := db.SaveWorld(w); err != nil {
			slog.Error("initial save failed", "error", err)
		}
	}

	slog.Info("world ready",
		"turn", w.Turn,
		"settlements", len(w.Locations),
		"characters", len(w.Characters),
		"creatures", len(w.Creatures),
	)

	stop := make(chan struct{})
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		close(stop)
	}()

	target := 0
	if cfg.Turns > 0 {
		target = w.Turn + cfg.Turns
	}

	fmt.Printf("\nWildermark awakens: %d souls across %d settlements. (Ctrl+C to stop)\n\n",
		len(w.Characters), len(w.Locations))

	seen := len(w.News)
run:
	for target == 0 || w.Turn < target {
		select {
		case <-stop:
			break run
		default:
		}

		sim.AdvanceTurn(w)

		for ; seen < len(w.News); seen++ {
			n := w.News[seen]
			fmt.Printf("[turn %d] %s\n", n.Turn, n.Text)
		}

		if cfg.SaveEvery > 0 && w.Turn%cfg.SaveEvery == 0 {
			if err := db.SaveWorld(w); err != nil {
				slog.Error("autosave failed", "error", err)
			}
		}
	}

	slog.Info("final save...")
	if err := db.SaveWorld(w); err != nil {
		slog.Error("final save failed", "error", err)
	}
	fmt.Printf("Simulation stopped at turn %d. World saved.\n", w.Turn)
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

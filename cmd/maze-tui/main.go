package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Maze-Combat/internal/audio"
	"github.com/Garsondee/Maze-Combat/internal/config"
	"github.com/Garsondee/Maze-Combat/internal/maze"
	"github.com/Garsondee/Maze-Combat/internal/tui"
)

func main() {
	var (
		rulesPath = flag.String("config", "", "rules file, .yaml or .toml (defaults when empty)")
		mapPath   = flag.String("map", "", "map file (.yaml document or .txt layout)")
		generate  = flag.Bool("generate", false, "play on a generated maze")
		braid     = flag.Float64("braid", 0.3, "share of dead ends opened in generated mazes")
		seed      = flag.Int64("seed", 0, "RNG seed (0 uses the clock)")
		mute      = flag.Bool("mute", false, "disable sound")
		volume    = flag.Float64("volume", 0.6, "master volume")
		logPath   = flag.String("log", "", "write the process log to this file")
	)
	flag.Parse()

	if err := run(*rulesPath, *mapPath, *generate, *braid, *seed, *mute, *volume, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "maze-tui: %v\n", err)
		os.Exit(1)
	}
}

func run(rulesPath, mapPath string, generate bool, braid float64, seed int64, mute bool, volume float64, logPath string) error {
	// The terminal belongs to the game; the process log goes to a file or
	// nowhere.
	logger := slog.New(slog.DiscardHandler)
	if logPath != "" {
		f, err := os.Create(logPath)
		if err != nil {
			return err
		}
		defer f.Close()
		logger = slog.New(slog.NewTextHandler(f, nil))
	}

	rules, err := config.Load(rulesPath)
	if err != nil {
		return err
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg := tui.Config{
		Rules:  rules,
		Loader: maze.Loader(mapPath, generate, maze.GenConfig{Cols: 31, Rows: 21, Braid: braid, Seed: seed}, rules.TileSize),
		Seed:   seed,
		Logger: logger,
	}
	if !mute {
		player := audio.NewPlayer(volume)
		if err := player.Init(); err != nil {
			logger.Warn("audio unavailable, playing silent", "err", err)
		} else {
			defer player.Close()
			cfg.Audio = player
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	app, err := tui.New(screen, cfg)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

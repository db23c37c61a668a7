package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Maze-Combat/internal/audio"
	"github.com/Garsondee/Maze-Combat/internal/config"
	"github.com/Garsondee/Maze-Combat/internal/game"
	"github.com/Garsondee/Maze-Combat/internal/maze"
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
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	rules, err := config.Load(*rulesPath)
	if err != nil {
		logger.Error("load rules", "err", err)
		os.Exit(1)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	cfg := game.Config{
		Rules:  rules,
		Loader: maze.Loader(*mapPath, *generate, maze.GenConfig{Cols: 31, Rows: 21, Braid: *braid, Seed: *seed}, rules.TileSize),
		Seed:   *seed,
		Logger: logger,
	}
	if !*mute {
		player := audio.NewPlayer(*volume)
		if err := player.Init(); err != nil {
			logger.Warn("audio unavailable, playing silent", "err", err)
		} else {
			defer player.Close()
			cfg.Audio = player
		}
	}

	g, err := game.New(cfg)
	if err != nil {
		logger.Error("start game", "err", err)
		os.Exit(1)
	}

	ebiten.SetWindowTitle("Maze Combat")
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetTPS(rules.TicksPerSecond)
	if err := ebiten.RunGame(g); err != nil {
		logger.Error("game stopped", "err", err)
		os.Exit(1)
	}
}

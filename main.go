package main

import (
	"flag"
	"log"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/hollowkeep/prefabs"
	"github.com/milk9111/hollowkeep/system"
	"go.uber.org/zap"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug overlay and logging")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "keep", "level name in levels/ (basename, .json optional)")
	seed := flag.Uint64("seed", 1, "random seed for mob decisions")
	scale := flag.Int("scale", 4, "window pixels per world pixel")
	watch := flag.Bool("watch", false, "reload prefabs/ when files change")
	flag.Parse()

	logger, err := newLogger(*debug)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("run", uuid.NewString()))

	world, err := system.NewWorld(*levelName, system.Options{Seed: *seed, Logger: logger})
	if err != nil {
		logger.Fatal("load world", zap.Error(err))
	}

	var watcher *prefabs.Watcher
	if *watch {
		watcher, err = prefabs.NewWatcher(logger, "prefabs", "prefabs/scripts")
		if err != nil {
			logger.Warn("prefab watcher disabled", zap.Error(err))
		} else {
			defer watcher.Close()
		}
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	game := NewGame(world, watcher, logger, *debug)
	w, h := game.viewSize()
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(w*max(*scale, 1), h*max(*scale, 1))
	ebiten.SetWindowTitle("hollowkeep")
	ebiten.SetTPS(system.TickRate)

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		logger.Fatal("game", zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	return cfg.Build()
}

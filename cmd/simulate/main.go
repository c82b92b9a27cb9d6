// Command simulate runs a level without a window, replaying a scripted input
// file and logging a state digest at a fixed interval. Two runs with the same
// level, seed and script log the same digests.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/milk9111/hollowkeep/prefabs"
	"github.com/milk9111/hollowkeep/system"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type config struct {
	level    string
	input    string
	seed     uint64
	ticks    int
	every    int
	realtime bool
	watch    bool
	debug    bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.level, "level", "keep", "level name in levels/")
	flag.StringVar(&cfg.input, "input", "patrol", "embedded input script (system/inputs/<name>.yaml)")
	flag.Uint64Var(&cfg.seed, "seed", 1, "random seed")
	flag.IntVar(&cfg.ticks, "ticks", 3600, "ticks to simulate")
	flag.IntVar(&cfg.every, "every", 600, "log a digest every n ticks")
	flag.BoolVar(&cfg.realtime, "realtime", false, "tick at 60Hz instead of as fast as possible")
	flag.BoolVar(&cfg.watch, "watch", false, "reload prefabs/ when files change")
	flag.BoolVar(&cfg.debug, "debug", false, "debug logging")
	flag.Parse()

	logger, err := newLogger(cfg.debug)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("run", uuid.NewString()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	digest, err := run(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("simulate", zap.Error(err))
	}
	fmt.Printf("%016x\n", digest)
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	return cfg.Build()
}

func run(ctx context.Context, cfg config, logger *zap.Logger) (uint64, error) {
	world, err := system.NewWorld(cfg.level, system.Options{Seed: cfg.seed, Logger: logger})
	if err != nil {
		return 0, err
	}
	script, err := system.LoadInputScript(cfg.input)
	if err != nil {
		return 0, err
	}

	var changes chan []string
	if cfg.watch {
		w, err := prefabs.NewWatcher(logger, "prefabs", "prefabs/scripts")
		if err != nil {
			return 0, err
		}
		defer w.Close()
		changes = make(chan []string, 1)
		go forwardChanges(ctx, w, changes, logger)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := 0
	loop := system.NewLoop(func() {
		select {
		case files := <-changes:
			if err := world.ReloadCatalog(files); err != nil {
				logger.Warn("reload prefabs", zap.Error(err))
			}
		default:
		}
		script.Apply(world.Level)
		world.Level.Tick()
		done++
		if cfg.every > 0 && done%cfg.every == 0 {
			logger.Info("digest",
				zap.Int("tick", done),
				zap.String("digest", fmt.Sprintf("%016x", world.Level.Digest())),
				zap.Int("mobs", world.Level.Mobs()),
				zap.Int("respawns", world.Level.Respawns()))
		}
		if done >= cfg.ticks {
			cancel()
		}
	})
	if !cfg.realtime {
		loop.Interval = time.Microsecond
	}
	loop.Start()

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if !cfg.realtime {
			for gctx.Err() == nil {
				loop.Step()
			}
			return gctx.Err()
		}
		return loop.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		loop.Stop()
		return nil
	})
	if err := g.Wait(); err != nil && err != context.Canceled {
		return 0, err
	}

	logger.Info("simulation finished",
		zap.String("level", world.Name()),
		zap.Int("ticks", done),
		zap.Duration("elapsed", time.Since(start)))
	return world.Level.Digest(), nil
}

// forwardChanges hands batches of changed files to the tick goroutine, which
// owns the level.
func forwardChanges(ctx context.Context, w *prefabs.Watcher, out chan<- []string, logger *zap.Logger) {
	t := time.NewTicker(250 * time.Millisecond)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-w.Errors:
			if ok && err != nil {
				logger.Error("prefab watcher", zap.Error(err))
			}
		case <-t.C:
			if files := w.Drain(); len(files) > 0 {
				select {
				case out <- files:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

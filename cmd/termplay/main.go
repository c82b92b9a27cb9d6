// Command termplay runs a level in the terminal.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/milk9111/hollowkeep/system"
	"go.uber.org/zap"
)

func main() {
	levelName := flag.String("level", "keep", "level name in levels/")
	seed := flag.Uint64("seed", 1, "random seed")
	debug := flag.Bool("debug", false, "draw collision boxes")
	logPath := flag.String("log", "", "write logs to this file")
	flag.Parse()

	logger := zap.NewNop()
	if *logPath != "" {
		cfg := zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{*logPath}
		cfg.ErrorOutputPaths = []string{*logPath}
		l, err := cfg.Build()
		if err != nil {
			log.Fatal(err)
		}
		logger = l
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("run", uuid.NewString()))

	world, err := system.NewWorld(*levelName, system.Options{Seed: *seed, Logger: logger})
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	g := newGame(world, screen, logger, *debug)
	g.run()
	screen.Fini()
	os.Exit(0)
}

type game struct {
	world  *system.World
	screen tcell.Screen
	render *cellRenderer
	keys   *keyState
	loop   *system.Loop
	log    *zap.Logger
}

func newGame(world *system.World, screen tcell.Screen, logger *zap.Logger, debug bool) *game {
	g := &game{
		world:  world,
		screen: screen,
		render: &cellRenderer{screen: screen, debug: debug},
		keys:   newKeyState(),
		log:    logger,
	}
	g.loop = system.NewLoop(g.tick)
	return g
}

func (g *game) tick() {
	lvl := g.world.Level
	g.keys.expire(lvl, lvl.Now())
	lvl.Tick()
}

func (g *game) draw() {
	g.screen.Clear()
	g.world.Level.Render(g.render)
	g.screen.Show()
}

// handle processes one event and reports whether the game should exit.
func (g *game) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return true
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'p':
			if !g.loop.Stop() {
				g.loop.Start()
			}
			g.keys.reset()
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'r':
			if err := g.world.Restart(); err != nil {
				g.log.Error("restart", zap.Error(err))
			}
			g.keys.reset()
			return false
		}
		if cmd, ok := keyCommand(ev); ok && g.loop.Running() {
			g.keys.press(g.world.Level, cmd, g.world.Level.Now())
		}
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return false
}

func (g *game) run() {
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	g.loop.Start()
	t := time.NewTicker(time.Second / system.TickRate)
	defer t.Stop()
	for {
		select {
		case ev := <-events:
			if g.handle(ev) {
				return
			}
		case <-t.C:
			g.loop.Step()
			g.draw()
		}
	}
}

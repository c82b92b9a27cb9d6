package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/hollowkeep/obj"
	"github.com/milk9111/hollowkeep/prefabs"
	"github.com/milk9111/hollowkeep/system"
	"go.uber.org/zap"
)

var background = color.RGBA{R: 0x12, G: 0x10, B: 0x1c, A: 0xff}

type Game struct {
	world   *system.World
	loop    *system.Loop
	input   *Input
	render  *ebitenRenderer
	watcher *prefabs.Watcher
	log     *zap.Logger

	pauseUI *ebitenui.UI
	quit    bool
}

func NewGame(world *system.World, watcher *prefabs.Watcher, log *zap.Logger, debug bool) *Game {
	g := &Game{
		world:   world,
		input:   NewInput(),
		render:  newEbitenRenderer(debug),
		watcher: watcher,
		log:     log,
	}
	g.loop = system.NewLoop(func() { g.world.Level.Tick() })
	g.loop.Start()
	g.pauseUI = NewPauseUI(g)
	return g
}

func (g *Game) paused() bool { return !g.loop.Running() }

func (g *Game) resume() {
	if g.loop.Start() {
		g.log.Debug("resumed")
	}
}

func (g *Game) pause() {
	if g.loop.Stop() {
		if s, ok := g.world.Controls().(*obj.CommandState); ok {
			s.Release()
		}
		g.input.Reset()
		g.log.Debug("paused")
	}
}

func (g *Game) restart() {
	if err := g.world.Restart(); err != nil {
		g.log.Error("restart", zap.Error(err))
		return
	}
	g.resume()
}

func (g *Game) Update() error {
	if g.quit || inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if g.paused() {
			g.resume()
		} else {
			g.pause()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.render.debug = !g.render.debug
	}

	g.drainWatcher()

	if g.paused() {
		g.pauseUI.Update()
		return nil
	}
	g.input.Update(g.world.Level)
	g.loop.Step()
	return nil
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	select {
	case err := <-g.watcher.Errors:
		if err != nil {
			g.log.Error("prefab watcher", zap.Error(err))
		}
	default:
	}
	if changed := g.watcher.Drain(); len(changed) > 0 {
		if err := g.world.ReloadCatalog(changed); err != nil {
			g.log.Warn("reload prefabs", zap.Error(err))
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.render.screen = screen
	g.world.Level.Render(g.render)

	if g.render.debug {
		lvl := g.world.Level
		p := lvl.Player()
		hp := 0
		if p != nil && p.Health != nil {
			hp = p.Health.Current
		}
		ebitenutil.DebugPrint(screen, fmt.Sprintf("tick %d  hp %d  mobs %d  fps %.1f",
			lvl.Now(), hp, lvl.Mobs(), ebiten.ActualFPS()))
	}
	if g.paused() {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) viewSize() (int, int) {
	s := g.world.Level.Camera().Spec()
	return int(s.ViewWidth), int(s.ViewHeight)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.viewSize()
}

package obj

import (
	"fmt"
	"math/rand/v2"

	"github.com/milk9111/hollowkeep/assets"
	"github.com/milk9111/hollowkeep/common"
	"github.com/milk9111/hollowkeep/levels"
	"github.com/milk9111/hollowkeep/prefabs"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Options configures a Level. Zero values pick sensible defaults.
type Options struct {
	Catalog  *prefabs.Catalog
	Assets   *assets.Registry
	Logger   *zap.Logger
	Seed     uint64
	Controls Controls
}

// Level owns the terrain grid, every entity and particle, the camera and the
// tick counter. All mutation happens inside Tick; rendering only reads.
type Level struct {
	name   string
	width  int
	height int

	grid        []*Terrain
	fragile     []*Terrain
	entities    []*Entity
	pending     []*Entity
	particles   []*Particle
	decorations []Decoration
	landmarks   []Landmark
	triggers    []*trigger

	boundary common.AABB
	camera   *Camera
	controls Controls
	rng      *rand.Rand
	ids      map[Kind]int
	ticks    int

	player      *Entity
	spawnPoint  common.Coord
	playerProps map[string]any
	gameOver    int
	respawns    int

	catalog *prefabs.Catalog
	assets  *assets.Registry
	log     *zap.Logger
}

// Decoration is a static visual that never interacts with the simulation.
type Decoration struct {
	Frame string
	Box   common.AABB
}

// Landmark is a named, tagged area of the map.
type Landmark struct {
	ID   string
	Box  common.AABB
	Tags []string
}

// TileFeet is the feet position of something standing in tile (x, y).
func TileFeet(x, y int) common.Coord {
	return common.C(float64(x*common.TileSize)+common.TileSize/2, float64((y+1)*common.TileSize))
}

// NewLevel builds a level from parsed map data. Bad terrain cells and
// entities are logged and skipped; bad triggers fail the whole level.
func NewLevel(data *levels.Level, opts Options) (*Level, error) {
	if data == nil {
		return nil, errors.New("obj: nil level data")
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Catalog == nil {
		c, err := prefabs.LoadCatalog()
		if err != nil {
			return nil, err
		}
		opts.Catalog = c
	}
	if opts.Assets == nil {
		opts.Assets = assets.NewRegistry()
	}
	if opts.Controls == nil {
		opts.Controls = &CommandState{}
	}
	opts.Catalog.RegisterFrames(opts.Assets)

	l := &Level{
		name:     data.Name,
		width:    data.Width,
		height:   data.Height,
		grid:     make([]*Terrain, data.Width*data.Height),
		controls: opts.Controls,
		rng:      rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		ids:      make(map[Kind]int),
		catalog:  opts.Catalog,
		assets:   opts.Assets,
		log:      opts.Logger.With(zap.String("level", data.Name)),
	}

	for y := 0; y < data.Height; y++ {
		for x := 0; x < data.Width; x++ {
			desc, ok := data.Cell(x, y)
			if !ok {
				continue
			}
			t, err := NewTerrain(desc, x, y, l.catalog.Terrain)
			if err != nil {
				l.log.Warn("skipping terrain", zap.Error(err))
				continue
			}
			t.lvl = l
			l.grid[y*l.width+x] = t
			if t.Kind == TerrainFragile {
				l.fragile = append(l.fragile, t)
			}
		}
	}

	l.boundary = common.TileRect(0, 0, data.Width, data.Height)
	if b := data.Boundary; b != nil {
		l.boundary = common.TileRect(b.X, b.Y, b.W, b.H)
	}

	for _, m := range data.Landmarks {
		l.landmarks = append(l.landmarks, Landmark{
			ID:   m.ID,
			Box:  common.TileRect(m.X, m.Y, max(m.W, 1), max(m.H, 1)),
			Tags: m.Tags,
		})
	}

	for _, d := range data.Decorations {
		f, ok := l.assets.Frame(d.Frame)
		if !ok {
			l.log.Warn("skipping decoration", zap.String("frame", d.Frame))
			continue
		}
		l.decorations = append(l.decorations, Decoration{
			Frame: d.Frame,
			Box:   common.BoxAt(TileFeet(d.X, d.Y), float64(f.Width), float64(f.Height)),
		})
	}

	for _, d := range data.Entities {
		kind, ok := ParseKind(d.Type)
		if !ok || kind == KindArrow {
			l.log.Warn("skipping entity", zap.String("type", d.Type), zap.Int("x", d.X), zap.Int("y", d.Y))
			continue
		}
		if kind == KindPlayer && l.player != nil {
			l.log.Warn("skipping extra player", zap.Int("x", d.X), zap.Int("y", d.Y))
			continue
		}
		at := TileFeet(d.X, d.Y)
		e, err := l.newEntity(kind, at, d.Props)
		if err != nil {
			l.log.Warn("skipping entity", zap.String("type", d.Type), zap.Error(err))
			continue
		}
		if kind == KindPlayer {
			l.player = e
			l.spawnPoint = at
			l.playerProps = d.Props
		}
		l.entities = append(l.entities, e)
	}

	for _, td := range data.Triggers {
		t, err := l.compileTrigger(td)
		if err != nil {
			return nil, errors.Wrapf(err, "level %q: trigger %q", data.Name, td.ID)
		}
		l.triggers = append(l.triggers, t)
	}

	l.resolveFrames()

	l.camera = NewCamera(l.catalog.Camera)
	l.camera.Reset(l.player, l.boundary)

	l.log.Info("level loaded",
		zap.Int("width", l.width),
		zap.Int("height", l.height),
		zap.Int("entities", len(l.entities)),
		zap.Int("triggers", len(l.triggers)))
	return l, nil
}

// resolveFrames looks up every frame the level can show so a missing asset
// fails at load instead of mid-game.
func (l *Level) resolveFrames() {
	for _, t := range l.grid {
		if t == nil {
			continue
		}
		for _, f := range t.frames() {
			l.assets.MustFrame(f)
		}
	}
	for _, d := range l.decorations {
		l.assets.MustFrame(d.Frame)
	}
	for _, e := range l.entities {
		l.resolveEntityFrames(e)
	}
	fx := l.catalog.Effects
	for _, b := range []prefabs.BurstSpec{fx.Damage, fx.Death, fx.Dust} {
		if b.Count > 0 {
			l.assets.MustFrame(b.Frame)
		}
	}
	l.assets.MustFrame(l.catalog.Arrow.Frame)
	l.assets.MustFrame(curseBeamFrame)
}

func (l *Level) resolveEntityFrames(e *Entity) {
	for _, f := range e.frames() {
		l.assets.MustFrame(f)
	}
}

// SetCatalog swaps species tuning for entities spawned from now on.
func (l *Level) SetCatalog(c *prefabs.Catalog) {
	c.RegisterFrames(l.assets)
	l.catalog = c
	l.camera.spec = c.Camera
	l.log.Info("catalog replaced")
}

// Tick advances the simulation by one fixed step.
func (l *Level) Tick() {
	// Immunity counts down before anything can hit, so every hit this tick
	// ends it with the full window.
	for _, e := range l.entities {
		if !e.removed && e.Health != nil && !e.Health.Dead() {
			e.Health.Tick()
		}
	}
	l.tickTriggers()
	for _, e := range l.entities {
		e.tick()
	}
	l.flush()
	for _, t := range l.fragile {
		if l.Terrain(t.X, t.Y) == t {
			t.tick()
		}
	}
	l.tickParticles()
	l.camera.Update(l.player, l.boundary)
	l.tickGameOver()
	l.ticks++
}

// Spawn creates an entity at the given feet position. It joins the level
// after the current entity phase.
func (l *Level) Spawn(kind Kind, at common.Coord, props map[string]any) (*Entity, error) {
	switch kind {
	case KindPlayer:
		return nil, errors.New("obj: the player is placed by the map")
	case KindArrow:
		return nil, errors.New("obj: arrows are fired, not spawned")
	}
	e, err := l.newEntity(kind, at, props)
	if err != nil {
		return nil, err
	}
	l.queue(e)
	return e, nil
}

func (l *Level) queue(e *Entity) {
	l.resolveEntityFrames(e)
	l.pending = append(l.pending, e)
}

// flush drops removed entities and admits pending ones.
func (l *Level) flush() {
	live := l.entities[:0]
	for _, e := range l.entities {
		if !e.removed {
			live = append(live, e)
		}
	}
	clear(l.entities[len(live):])
	l.entities = live
	for _, e := range l.pending {
		if !e.removed {
			l.entities = append(l.entities, e)
		}
	}
	l.pending = l.pending[:0]
}

// RemoveEntity marks e for removal at the next flush.
func (l *Level) RemoveEntity(e *Entity) {
	if e == nil || e.removed {
		return
	}
	e.removed = true
}

func (l *Level) RemoveTerrain(x, y int) {
	if x < 0 || y < 0 || x >= l.width || y >= l.height {
		return
	}
	if l.grid[y*l.width+x] != nil {
		l.grid[y*l.width+x] = nil
		l.log.Debug("terrain removed", zap.Int("x", x), zap.Int("y", y))
	}
}

func (l *Level) SetBoundary(b common.AABB) {
	l.boundary = b
	l.log.Info("boundary changed", zap.Stringer("boundary", b))
}

func (l *Level) startGameOver() {
	if l.gameOver > 0 {
		return
	}
	l.gameOver = max(l.catalog.Player.RespawnTicks, 1)
	l.log.Info("player died", zap.Int("tick", l.ticks))
}

func (l *Level) tickGameOver() {
	if l.gameOver == 0 {
		return
	}
	l.gameOver--
	if l.gameOver == 0 {
		l.respawn()
	}
}

// respawn replaces the dead player with a fresh one at the spawn point.
func (l *Level) respawn() {
	e, err := l.newEntity(KindPlayer, l.spawnPoint, l.playerProps)
	if err != nil {
		l.log.Error("respawn failed", zap.Error(err))
		return
	}
	if l.player != nil {
		l.RemoveEntity(l.player)
	}
	l.resolveEntityFrames(e)
	l.flush()
	l.entities = append(l.entities, e)
	l.player = e
	l.respawns++
	if s, ok := l.controls.(*CommandState); ok {
		s.Release()
	}
	l.camera.Reset(e, l.boundary)
	l.log.Info("player respawned", zap.String("entity", e.ID), zap.Int("respawns", l.respawns))
}

func (l *Level) nextID(kind Kind) string {
	l.ids[kind]++
	return fmt.Sprintf("%s-%d", kind, l.ids[kind])
}

func (l *Level) Name() string           { return l.name }
func (l *Level) Width() int             { return l.width }
func (l *Level) Height() int            { return l.height }
func (l *Level) Now() int               { return l.ticks }
func (l *Level) Player() *Entity        { return l.player }
func (l *Level) Camera() *Camera        { return l.camera }
func (l *Level) Boundary() common.AABB  { return l.boundary }
func (l *Level) GameOver() bool         { return l.gameOver > 0 }
func (l *Level) Respawns() int          { return l.respawns }
func (l *Level) Logger() *zap.Logger    { return l.log }
func (l *Level) Particles() []*Particle { return l.particles }

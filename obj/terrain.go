package obj

import (
	"github.com/milk9111/hollowkeep/common"
	"github.com/milk9111/hollowkeep/levels"
	"github.com/milk9111/hollowkeep/prefabs"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type TerrainKind int

const (
	TerrainGround TerrainKind = iota
	TerrainSpikes
	TerrainWater
	TerrainFragile
)

var terrainNames = [...]string{"ground", "spikes", "water", "fragile"}

func (k TerrainKind) String() string {
	if k < 0 || int(k) >= len(terrainNames) {
		return "unknown"
	}
	return terrainNames[k]
}

// Terrain is one grid cell. Fragile cells carry a collapse/recover countdown.
type Terrain struct {
	X    int
	Y    int
	Kind TerrainKind

	frame         string
	collapseFrame string
	damage        int
	hurtTop       float64
	permanent     bool
	collapseTicks int
	recoverTicks  int

	collapsing int
	collapsed  bool
	recovering int
	lvl        *Level
}

// NewTerrain builds a cell from its map descriptor.
func NewTerrain(desc levels.Terrain, x, y int, spec prefabs.TerrainSpec) (*Terrain, error) {
	t := &Terrain{X: x, Y: y, permanent: desc.Permanent}
	var ks prefabs.TerrainKindSpec
	switch desc.Type {
	case "ground":
		t.Kind, ks = TerrainGround, spec.Ground
	case "spikes":
		t.Kind, ks = TerrainSpikes, spec.Spikes
	case "water":
		t.Kind, ks = TerrainWater, spec.Water
	case "fragile":
		t.Kind, ks = TerrainFragile, spec.Fragile
	default:
		return nil, errors.Errorf("terrain (%d,%d): unknown type %q", x, y, desc.Type)
	}
	if desc.Permanent && t.Kind != TerrainFragile {
		return nil, errors.Errorf("terrain (%d,%d): only fragile cells can be permanent", x, y)
	}
	t.frame = ks.Frame
	t.collapseFrame = ks.CollapseFrame
	t.damage = ks.Damage
	t.hurtTop = ks.HurtTop
	t.collapseTicks = ks.CollapseTicks
	t.recoverTicks = ks.RecoverTicks
	if t.Kind == TerrainFragile && t.collapseFrame == "" {
		t.collapseFrame = t.frame
	}
	return t, nil
}

func (t *Terrain) Box() common.AABB {
	return common.TileBox(t.X, t.Y)
}

// Solid reports whether the cell currently blocks movement.
func (t *Terrain) Solid() bool {
	switch t.Kind {
	case TerrainGround:
		return true
	case TerrainFragile:
		return !t.collapsed
	}
	return false
}

func (t *Terrain) Standable() bool { return t.Solid() }

func (t *Terrain) Passable() bool { return !t.Solid() }

func (t *Terrain) CollisionBox() (common.AABB, bool) {
	if !t.Solid() {
		return common.AABB{}, false
	}
	return t.Box(), true
}

// HurtBox is the damaging part of a hazard cell.
func (t *Terrain) HurtBox() (common.AABB, bool) {
	switch t.Kind {
	case TerrainSpikes, TerrainWater:
		b := t.Box()
		b.Top += t.hurtTop
		return b, true
	}
	return common.AABB{}, false
}

func (t *Terrain) Damage() int { return t.damage }

func (t *Terrain) Collapsing() bool { return t.collapsing > 0 }
func (t *Terrain) Collapsed() bool  { return t.collapsed }

func (t *Terrain) Frame() string {
	if t.Kind == TerrainFragile && t.collapsing > 0 {
		return t.collapseFrame
	}
	return t.frame
}

func (t *Terrain) frames() []string {
	if t.Kind == TerrainFragile {
		return []string{t.frame, t.collapseFrame}
	}
	return []string{t.frame}
}

// steppedOn runs when e lands on or rests on top of the cell.
func (t *Terrain) steppedOn(e *Entity) {
	if t.Kind != TerrainFragile || e.Kind != KindPlayer {
		return
	}
	if t.collapsing > 0 || t.collapsed {
		return
	}
	t.lvl.collapseRow(t.X, t.Y)
}

func (t *Terrain) startCollapse() {
	if t.Kind != TerrainFragile || t.collapsing > 0 || t.collapsed {
		return
	}
	t.collapsing = t.collapseTicks
}

// tick advances the fragile countdowns.
func (t *Terrain) tick() {
	if t.Kind != TerrainFragile {
		return
	}
	l := t.lvl
	switch {
	case t.collapsing > 0:
		t.collapsing--
		if t.collapsing > 0 {
			return
		}
		l.burst(l.catalog.Effects.Dust, t.Box().Center())
		if t.permanent {
			l.RemoveTerrain(t.X, t.Y)
			return
		}
		t.collapsed = true
		t.recovering = t.recoverTicks
	case t.collapsed:
		if t.recovering > 0 {
			t.recovering--
		}
		if t.recovering > 0 {
			return
		}
		if len(l.EntitiesInArea(t.Box())) > 0 {
			l.log.Debug("fragile recovery blocked", zap.Int("x", t.X), zap.Int("y", t.Y))
			return
		}
		t.collapsed = false
	}
}

// collapseRow starts the collapse at (x, y) and spreads it along the row in
// both directions until a non-fragile cell is met.
func (l *Level) collapseRow(x, y int) {
	start := l.Terrain(x, y)
	if start == nil || start.Kind != TerrainFragile {
		return
	}
	start.startCollapse()
	for _, dir := range []int{-1, 1} {
		for cx := x + dir; ; cx += dir {
			t := l.Terrain(cx, y)
			if t == nil || t.Kind != TerrainFragile {
				break
			}
			t.startCollapse()
		}
	}
}

package obj

import (
	"github.com/milk9111/hollowkeep/common"
	"go.uber.org/zap"
)

// Pursuit keeps a mob within [MinDistance, MaxDistance] pixels of a target,
// but only while both stand on the same unbroken platform. It holds no state
// of its own.
type Pursuit struct {
	MinDistance float64
	MaxDistance float64
}

// Decide returns -1, 0 or +1: the horizontal direction mob should accelerate.
func (g Pursuit) Decide(l *Level, mob, target *Entity) int {
	mx, my, ok := l.Foothold(mob.Box())
	if !ok {
		l.log.Debug("pursuit: no foothold", zap.String("entity", mob.ID))
		return 0
	}
	tx, ty, ok := l.Foothold(target.Box())
	if !ok {
		l.log.Debug("pursuit: target has no foothold", zap.String("entity", mob.ID), zap.String("target", target.ID))
		return 0
	}
	if !l.Connected(mx, my, tx, ty) {
		return 0
	}

	dx := target.Pos.X - mob.Pos.X
	dist := common.Abs(dx)
	side := common.Sign(dx)
	if side == 0 {
		side = int(mob.Facing)
	}
	dir := 0
	switch {
	case dist > g.MaxDistance:
		dir = side
	case dist < g.MinDistance:
		dir = -side
	}
	if dir == 0 {
		return 0
	}

	box := mob.Box()
	edge := common.TileOf(box.Right)
	if dir < 0 {
		edge = common.TileOf(box.Left - 1)
	}
	if !l.standable(edge, my) || !l.passable(edge, my-1) {
		return 0
	}
	return dir
}

// Foothold finds the nearest standable cell at or below box, scanning down
// from the row holding its bottom edge in the column of its center.
func (l *Level) Foothold(box common.AABB) (int, int, bool) {
	x := common.TileOf(box.Center().X)
	for y := common.TileOf(box.Bottom); y < l.height; y++ {
		if y < 0 {
			continue
		}
		if l.standable(x, y) {
			return x, y, true
		}
	}
	return 0, 0, false
}

// Connected reports whether two footholds sit on one unobstructed platform:
// same row, every cell between them standable and the row above passable.
func (l *Level) Connected(ax, ay, bx, by int) bool {
	if ay != by {
		return false
	}
	if ax > bx {
		ax, bx = bx, ax
	}
	for x := ax; x <= bx; x++ {
		if !l.standable(x, ay) || !l.passable(x, ay-1) {
			return false
		}
	}
	return true
}

func (l *Level) standable(x, y int) bool {
	t := l.Terrain(x, y)
	return t != nil && t.Standable()
}

func (l *Level) passable(x, y int) bool {
	t := l.Terrain(x, y)
	return t == nil || t.Passable()
}

package obj

import (
	"math"

	"github.com/milk9111/hollowkeep/common"
)

// move integrates velocity, resolves terrain in row-major order, checks
// hazards, applies gravity if the entity did not land and finally enforces
// the boundary.
func (e *Entity) move() {
	l := e.lvl
	e.OldPos = e.Pos
	e.OldBox = e.Box()
	e.Pos = e.Pos.Add(e.Vel)
	e.OnGround = false

	x0, y0, x1, y1 := e.Box().Grow(common.TileSize, common.TileSize).Tiles()
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			t := l.Terrain(x, y)
			if t == nil {
				continue
			}
			t.Resolve(e)
			if e.removed {
				return
			}
		}
	}

	e.touchHazards()
	if e.removed {
		return
	}

	if !e.OnGround && e.hasGravity() {
		e.Vel.Y = math.Min(e.Vel.Y+Gravity, maxFallSpeed)
	}

	e.onCrossBorder()
}

func (e *Entity) touchHazards() {
	l := e.lvl
	hb := e.HurtBox()
	x0, y0, x1, y1 := hb.Tiles()
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			t := l.Terrain(x, y)
			if t == nil {
				continue
			}
			hz, ok := t.HurtBox()
			if !ok || !hz.Intersects(hb) {
				continue
			}
			if e.Kind == KindArrow {
				l.RemoveEntity(e)
				return
			}
			if e.IsMob() {
				e.Damage(t.damage, nil, false)
				if !e.Alive() {
					return
				}
			}
		}
	}
}

// Resolve applies this cell's swept collision correction to e: one
// horizontal correction tested against the box before movement, then one
// vertical correction against the horizontally corrected box.
func (t *Terrain) Resolve(e *Entity) {
	cb, ok := t.CollisionBox()
	if !ok {
		return
	}
	if e.Kind == KindArrow {
		if e.OldBox.Merge(e.Box()).Intersects(cb) {
			e.lvl.RemoveEntity(e)
		}
		return
	}

	old := e.OldBox
	nb := e.Box()
	if old.Vertical().Overlaps(cb.Vertical()) {
		switch {
		case old.Right <= cb.Left && nb.Right > cb.Left:
			e.Pos.X -= nb.Right - cb.Left
			e.Vel.X = 0
		case old.Left >= cb.Right && nb.Left < cb.Right:
			e.Pos.X += cb.Right - nb.Left
			e.Vel.X = 0
		}
	}

	nb = e.Box()
	if !nb.Horizontal().Overlaps(cb.Horizontal()) {
		return
	}
	switch {
	case old.Bottom <= cb.Top && nb.Bottom >= cb.Top && e.Vel.Y >= 0:
		e.Pos.Y -= nb.Bottom - cb.Top
		e.Vel.Y = 0
		e.OnGround = true
		t.steppedOn(e)
	case old.Top >= cb.Bottom && nb.Top < cb.Bottom && e.Vel.Y < 0:
		e.Pos.Y += cb.Bottom - nb.Top
		e.Vel.Y = 0
	}
}

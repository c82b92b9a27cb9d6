package obj

import (
	"image/color"

	"github.com/milk9111/hollowkeep/assets"
	"github.com/milk9111/hollowkeep/common"
	"golang.org/x/image/colornames"
)

// Renderer is the drawing surface a host hands to Render. Boxes are in
// screen space, already offset by the camera.
type Renderer interface {
	DrawFrame(frame assets.Frame, box common.AABB, flipX bool)
	DrawBox(box common.AABB, c color.Color)
	Debug() bool
}

// Render draws the current state. It never mutates the level.
func (l *Level) Render(r Renderer) {
	view := l.camera.View()
	shift := common.Vec(-view.Left, -view.Top)

	x0, y0, x1, y1 := view.Tiles()
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			t := l.Terrain(x, y)
			if t == nil || t.Collapsed() {
				continue
			}
			r.DrawFrame(l.assets.MustFrame(t.Frame()), t.Box().Offset(shift), false)
		}
	}

	for _, d := range l.decorations {
		if d.Box.Intersects(view) {
			r.DrawFrame(l.assets.MustFrame(d.Frame), d.Box.Offset(shift), false)
		}
	}

	for _, e := range l.entities {
		if e.removed {
			continue
		}
		if e.Flashing() && (l.ticks/4)%2 == 1 {
			continue
		}
		f := l.assets.MustFrame(e.Frame())
		box := common.BoxAt(e.Pos, float64(f.Width), float64(f.Height))
		if e.Kind == KindArrow {
			box = e.Box()
		}
		r.DrawFrame(f, box.Offset(shift), e.Facing == FacingLeft)
		if beam, ok := e.CurseBeam(); ok {
			r.DrawFrame(l.assets.MustFrame(curseBeamFrame), beam.Offset(shift), false)
		}
	}

	for _, p := range l.particles {
		r.DrawFrame(l.assets.MustFrame(p.Frame), p.Box().Offset(shift), false)
	}

	if r.Debug() {
		l.renderDebug(r, view, shift)
	}
}

func (l *Level) renderDebug(r Renderer, view common.AABB, shift common.Vector) {
	r.DrawBox(l.boundary.Offset(shift), colornames.Blue)
	for _, m := range l.landmarks {
		r.DrawBox(m.Box.Offset(shift), colornames.Purple)
	}

	x0, y0, x1, y1 := view.Tiles()
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			t := l.Terrain(x, y)
			if t == nil {
				continue
			}
			if hb, ok := t.HurtBox(); ok {
				r.DrawBox(hb.Offset(shift), colornames.Orange)
			}
			if t.Collapsing() {
				r.DrawBox(t.Box().Offset(shift), colornames.Gold)
			}
		}
	}

	for _, e := range l.entities {
		if e.removed {
			continue
		}
		r.DrawBox(e.Box().Offset(shift), colornames.Lime)
		if e.IsMob() {
			r.DrawBox(e.HurtBox().Offset(shift), colornames.Red)
		}
		if ab, ok := e.AttackBox(); ok {
			r.DrawBox(ab.Offset(shift), colornames.Yellow)
		}
	}

	// Camera anchors are drawn in screen space.
	s := l.camera.Spec()
	r.DrawBox(common.NewAABB(s.FocusLeft, 0, s.FocusLeft+1, s.ViewHeight), colornames.Cyan)
	r.DrawBox(common.NewAABB(s.FocusRight, 0, s.FocusRight+1, s.ViewHeight), colornames.Cyan)
	a := l.camera.anchor()
	r.DrawBox(common.NewAABB(a, 0, a+1, s.ViewHeight), colornames.White)
	r.DrawBox(common.NewAABB(0, s.AnchorY-s.DeadZoneUp, s.ViewWidth, s.AnchorY+s.DeadZoneDown), colornames.Magenta)
}

package obj

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/hollowkeep/common"
	"github.com/milk9111/hollowkeep/prefabs"
)

// AxisState describes what one camera axis did on the last update.
type AxisState int

const (
	Still AxisState = iota
	Accelerating
	Decelerating
)

func (s AxisState) String() string {
	switch s {
	case Accelerating:
		return "accelerating"
	case Decelerating:
		return "decelerating"
	}
	return "still"
}

// Camera tracks the player with a facing-dependent horizontal anchor and a
// vertical anchor that only moves when the player lands or leaves the dead
// zone. Offset is the top-left of the view in world space.
type Camera struct {
	Offset   common.Coord
	Vel      common.Vector
	Facing   Facing
	StateX   AxisState
	StateY   AxisState
	SnappedY float64

	spec    prefabs.CameraSpec
	lastRel float64
}

func NewCamera(spec prefabs.CameraSpec) *Camera {
	return &Camera{spec: spec, Facing: FacingRight}
}

// View is the visible world rectangle.
func (c *Camera) View() common.AABB {
	return common.NewAABB(c.Offset.X, c.Offset.Y, c.Offset.X+c.spec.ViewWidth, c.Offset.Y+c.spec.ViewHeight)
}

func (c *Camera) Spec() prefabs.CameraSpec {
	return c.spec
}

func (c *Camera) anchor() float64 {
	if c.Facing == FacingLeft {
		return c.spec.AnchorLeft
	}
	return c.spec.AnchorRight
}

// Reset places the camera on the player without easing.
func (c *Camera) Reset(player *Entity, boundary common.AABB) {
	c.Vel = common.Vec(0, 0)
	c.StateX, c.StateY = Still, Still
	if player == nil {
		c.Offset = common.C(boundary.Left, boundary.Top)
		c.Offset = c.clamp(c.Offset, boundary)
		return
	}
	c.Facing = player.Facing
	c.SnappedY = player.Pos.Y
	c.Offset = c.clamp(common.C(player.Pos.X-c.anchor(), c.SnappedY-c.spec.AnchorY), boundary)
	c.lastRel = player.Pos.X - c.Offset.X
}

// Update advances the camera one tick toward the player.
func (c *Camera) Update(player *Entity, boundary common.AABB) {
	if player == nil {
		c.Offset = c.clamp(c.Offset, boundary)
		return
	}
	s := c.spec

	if boundary.Width() <= s.ViewWidth {
		c.Vel.X = 0
		c.StateX = Still
	} else {
		rel := player.Pos.X - c.Offset.X
		switch {
		case c.Facing == FacingRight && c.lastRel >= s.FocusLeft && rel < s.FocusLeft:
			c.Facing = FacingLeft
		case c.Facing == FacingLeft && c.lastRel <= s.FocusRight && rel > s.FocusRight:
			c.Facing = FacingRight
		}
		target := cp.Clamp(player.Pos.X-c.anchor(), boundary.Left, boundary.Right-s.ViewWidth)
		c.Offset.X, c.Vel.X, c.StateX = c.ease(c.Offset.X, c.Vel.X, target)
	}

	if boundary.Height() <= s.ViewHeight {
		c.Vel.Y = 0
		c.StateY = Still
	} else {
		relY := player.Pos.Y - c.Offset.Y
		if player.OnGround || relY < s.AnchorY-s.DeadZoneUp || relY > s.AnchorY+s.DeadZoneDown {
			c.SnappedY = player.Pos.Y
		}
		target := cp.Clamp(c.SnappedY-s.AnchorY, boundary.Top, boundary.Bottom-s.ViewHeight)
		c.Offset.Y, c.Vel.Y, c.StateY = c.ease(c.Offset.Y, c.Vel.Y, target)
	}

	c.Offset = c.clamp(c.Offset, boundary)
	c.lastRel = player.Pos.X - c.Offset.X
}

// ease moves pos toward target with a bounded change of velocity per tick
// and a speed cap. Overshooting or crawling below the minimum speed snaps.
func (c *Camera) ease(pos, vel, target float64) (float64, float64, AxisState) {
	s := c.spec
	d := target - pos
	if d == 0 && vel == 0 {
		return target, 0, Still
	}
	desired := cp.Clamp(d*s.Gain, -s.MaxSpeed, s.MaxSpeed)
	nv := vel + cp.Clamp(desired-vel, -s.Accel, s.Accel)
	np := pos + nv
	if (d >= 0 && np >= target) || (d <= 0 && np <= target) ||
		(math.Abs(nv) < s.MinSpeed && math.Abs(d)*s.Gain < s.MinSpeed) {
		return target, 0, Still
	}
	if math.Abs(nv) > math.Abs(vel) {
		return np, nv, Accelerating
	}
	return np, nv, Decelerating
}

// clamp keeps the view inside boundary, centring on any axis where the
// boundary is smaller than the view.
func (c *Camera) clamp(off common.Coord, b common.AABB) common.Coord {
	w, h := c.spec.ViewWidth, c.spec.ViewHeight
	if b.Width() <= w {
		off.X = b.Left + (b.Width()-w)/2
	} else {
		off.X = cp.Clamp(off.X, b.Left, b.Right-w)
	}
	if b.Height() <= h {
		off.Y = b.Top + (b.Height()-h)/2
	} else {
		off.Y = cp.Clamp(off.Y, b.Top, b.Bottom-h)
	}
	return off
}

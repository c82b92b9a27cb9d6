package obj

import (
	"testing"

	"github.com/milk9111/hollowkeep/common"
	"github.com/milk9111/hollowkeep/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCameraSpec = prefabs.CameraSpec{
	ViewWidth:    320,
	ViewHeight:   180,
	FocusLeft:    110,
	FocusRight:   210,
	AnchorLeft:   190,
	AnchorRight:  130,
	AnchorY:      110,
	DeadZoneUp:   40,
	DeadZoneDown: 30,
	Gain:         0.15,
	Accel:        0.3,
	MaxSpeed:     6,
	MinSpeed:     0.05,
}

func cameraSubject(x, y float64) *Entity {
	return &Entity{Pos: common.C(x, y), OldPos: common.C(x, y), Facing: FacingRight, OnGround: true}
}

func TestCameraRightEdgeClamp(t *testing.T) {
	b := common.NewAABB(0, 0, 1024, 288)
	c := NewCamera(testCameraSpec)
	p := cameraSubject(b.Right-testCameraSpec.AnchorRight, 200)

	c.Reset(p, b)
	assert.Equal(t, b.Right-testCameraSpec.ViewWidth, c.Offset.X)
	for i := 0; i < 300; i++ {
		c.Update(p, b)
		require.LessOrEqual(t, c.Offset.X, b.Right-testCameraSpec.ViewWidth)
	}
	assert.Equal(t, b.Right-testCameraSpec.ViewWidth, c.Offset.X)
}

func TestCameraStaysInsideBoundary(t *testing.T) {
	b := common.NewAABB(0, 0, 1600, 480)
	c := NewCamera(testCameraSpec)
	p := cameraSubject(50, 400)
	c.Reset(p, b)
	for i := 0; i < 600; i++ {
		p.OldPos = p.Pos
		p.Pos.X = 800 + 790*float64((i*37)%200-100)/100
		p.Pos.Y = 240 + 230*float64((i*53)%200-100)/100
		p.OnGround = i%3 == 0
		c.Update(p, b)
		require.GreaterOrEqual(t, c.Offset.X, b.Left)
		require.LessOrEqual(t, c.Offset.X, b.Right-testCameraSpec.ViewWidth)
		require.GreaterOrEqual(t, c.Offset.Y, b.Top)
		require.LessOrEqual(t, c.Offset.Y, b.Bottom-testCameraSpec.ViewHeight)
	}
}

func TestCameraCentersInNarrowBoundary(t *testing.T) {
	b := common.NewAABB(100, 0, 300, 120)
	c := NewCamera(testCameraSpec)
	p := cameraSubject(150, 100)
	c.Reset(p, b)
	c.Update(p, b)
	assert.Equal(t, 100+(200-testCameraSpec.ViewWidth)/2, c.Offset.X)
	assert.Equal(t, (120-testCameraSpec.ViewHeight)/2, c.Offset.Y)
	assert.Equal(t, Still, c.StateX)
}

func TestCameraFacingFlipsAtFocusAnchors(t *testing.T) {
	b := common.NewAABB(0, 0, 2000, 288)
	c := NewCamera(testCameraSpec)
	p := cameraSubject(500, 200)
	c.Reset(p, b)
	require.Equal(t, 370.0, c.Offset.X)

	p.Pos.X = 490
	c.Update(p, b)
	assert.Equal(t, FacingRight, c.Facing, "still right of the left focus anchor")

	p.Pos.X = c.Offset.X + testCameraSpec.FocusLeft - 5
	c.Update(p, b)
	assert.Equal(t, FacingLeft, c.Facing)

	for i := 0; i < 200; i++ {
		c.Update(p, b)
	}
	assert.InDelta(t, p.Pos.X-testCameraSpec.AnchorLeft, c.Offset.X, 1e-9)
	assert.Equal(t, Still, c.StateX)

	p.Pos.X = c.Offset.X + testCameraSpec.FocusRight + 5
	c.Update(p, b)
	assert.Equal(t, FacingRight, c.Facing)
}

func TestCameraEasesWithBoundedSpeed(t *testing.T) {
	b := common.NewAABB(0, 0, 4000, 288)
	c := NewCamera(testCameraSpec)
	p := cameraSubject(500, 200)
	c.Reset(p, b)

	p.Pos.X = 1500
	prev := c.Offset.X
	prevVel := 0.0
	sawAccel := false
	for i := 0; i < 400; i++ {
		c.Update(p, b)
		if c.StateX == Still {
			break
		}
		assert.LessOrEqual(t, c.Offset.X-prev, testCameraSpec.MaxSpeed+1e-9)
		assert.LessOrEqual(t, c.Vel.X-prevVel, testCameraSpec.Accel+1e-9)
		if c.StateX == Accelerating {
			sawAccel = true
		}
		prev, prevVel = c.Offset.X, c.Vel.X
	}
	assert.True(t, sawAccel)
	assert.Equal(t, Still, c.StateX)
	assert.Equal(t, 0.0, c.Vel.X)
	assert.Equal(t, p.Pos.X-testCameraSpec.AnchorRight, c.Offset.X)
}

func TestCameraVerticalDeadZone(t *testing.T) {
	b := common.NewAABB(0, 0, 1000, 480)
	c := NewCamera(testCameraSpec)
	p := cameraSubject(300, 200)
	c.Reset(p, b)
	require.Equal(t, 200.0, c.SnappedY)
	require.Equal(t, 90.0, c.Offset.Y)

	p.OnGround = false
	p.Pos.Y = 180
	c.Update(p, b)
	assert.Equal(t, 200.0, c.SnappedY, "small hops do not move the anchor")

	p.Pos.Y = 150
	c.Update(p, b)
	assert.Equal(t, 150.0, c.SnappedY, "leaving the dead zone does")

	p.Pos.Y = 140
	p.OnGround = true
	c.Update(p, b)
	assert.Equal(t, 140.0, c.SnappedY, "landing always does")
}

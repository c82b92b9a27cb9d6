package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAABBOrdersCorners(t *testing.T) {
	b := NewAABB(10, 20, 2, 4)
	require.Equal(t, AABB{Left: 2, Top: 4, Right: 10, Bottom: 20}, b)
	assert.Equal(t, 8.0, b.Width())
	assert.Equal(t, 16.0, b.Height())
	assert.Equal(t, C(6, 12), b.Center())
}

func TestAABBIntersects(t *testing.T) {
	base := NewAABB(0, 0, 16, 16)
	cases := []struct {
		name  string
		other AABB
		want  bool
	}{
		{"overlap", NewAABB(8, 8, 24, 24), true},
		{"inside", NewAABB(4, 4, 8, 8), true},
		{"touching_right_edge", NewAABB(16, 0, 32, 16), false},
		{"touching_bottom_edge", NewAABB(0, 16, 16, 32), false},
		{"apart", NewAABB(40, 40, 50, 50), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, base.Intersects(c.other))
			assert.Equal(t, c.want, c.other.Intersects(base))
		})
	}
}

func TestAABBGrowNeverInverts(t *testing.T) {
	b := NewAABB(0, 0, 10, 4)
	g := b.Grow(-8, -8)
	assert.LessOrEqual(t, g.Left, g.Right)
	assert.LessOrEqual(t, g.Top, g.Bottom)
	assert.Equal(t, 5.0, g.Left)
	assert.Equal(t, 2.0, g.Top)

	grown := b.Grow(2, 1)
	assert.Equal(t, AABB{Left: -2, Top: -1, Right: 12, Bottom: 5}, grown)
}

func TestAABBMirrorX(t *testing.T) {
	b := NewAABB(2, 0, 10, 4)
	m := b.MirrorX(0)
	assert.Equal(t, AABB{Left: -10, Top: 0, Right: -2, Bottom: 4}, m)
	assert.Equal(t, b, m.MirrorX(0))
}

func TestAABBContains(t *testing.T) {
	b := NewAABB(0, 0, 16, 16)
	assert.True(t, b.Contains(C(16, 16)))
	assert.False(t, b.Contains(C(16.5, 8)))
	assert.True(t, b.ContainsBox(NewAABB(1, 1, 15, 15)))
	assert.False(t, b.ContainsBox(NewAABB(1, 1, 17, 15)))
}

func TestAABBTiles(t *testing.T) {
	x0, y0, x1, y1 := NewAABB(0, 0, 32, 16).Tiles()
	assert.Equal(t, []int{0, 0, 1, 0}, []int{x0, y0, x1, y1})

	x0, y0, x1, y1 = NewAABB(-4, 8, 20, 40).Tiles()
	assert.Equal(t, []int{-1, 0, 1, 2}, []int{x0, y0, x1, y1})
}

func TestBoxAtFeet(t *testing.T) {
	b := BoxAt(C(8, 32), 8, 16)
	assert.Equal(t, AABB{Left: 4, Top: 16, Right: 12, Bottom: 32}, b)
	assert.Equal(t, C(8, 32), b.Feet())
}

func TestSegment(t *testing.T) {
	s := NewSegment(5, 1)
	assert.Equal(t, 4.0, s.Length())
	assert.True(t, s.Contains(1))
	assert.True(t, s.Overlaps(NewSegment(4, 9)))
	assert.False(t, s.Overlaps(NewSegment(5, 9)))
}

func TestTileOf(t *testing.T) {
	assert.Equal(t, 0, TileOf(0))
	assert.Equal(t, 0, TileOf(15.9))
	assert.Equal(t, 1, TileOf(16))
	assert.Equal(t, -1, TileOf(-0.5))
	assert.Equal(t, -1, TileOf(-16))
}

func TestCoordVector(t *testing.T) {
	a := C(1, 2)
	v := Vec(3, 4)
	assert.Equal(t, C(4, 6), a.Add(v))
	assert.Equal(t, 5.0, v.Length())
	assert.Equal(t, Vec(3, 4), a.Add(v).Sub(a))
	assert.Equal(t, Vec(6, 8), v.Mult(2))
}

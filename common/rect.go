package common

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

// AABB is an axis-aligned box in world pixels with Left <= Right and
// Top <= Bottom.
type AABB struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// NewAABB builds a box from any two opposite corners.
func NewAABB(x1, y1, x2, y2 float64) AABB {
	return AABB{
		Left:   math.Min(x1, x2),
		Top:    math.Min(y1, y2),
		Right:  math.Max(x1, x2),
		Bottom: math.Max(y1, y2),
	}
}

// BoxAt returns a w*h box whose bottom edge is centered on c.
func BoxAt(c Coord, w, h float64) AABB {
	return NewAABB(c.X-w/2, c.Y-h, c.X+w/2, c.Y)
}

// TileBox returns the box covered by grid cell (x, y).
func TileBox(x, y int) AABB {
	return AABB{
		Left:   float64(x * TileSize),
		Top:    float64(y * TileSize),
		Right:  float64((x + 1) * TileSize),
		Bottom: float64((y + 1) * TileSize),
	}
}

// TileRect returns the box covered by w*h cells starting at (x, y).
func TileRect(x, y, w, h int) AABB {
	return NewAABB(float64(x*TileSize), float64(y*TileSize), float64((x+w)*TileSize), float64((y+h)*TileSize))
}

func (b AABB) Width() float64  { return b.Right - b.Left }
func (b AABB) Height() float64 { return b.Bottom - b.Top }

func (b AABB) Center() Coord {
	return Coord{X: (b.Left + b.Right) / 2, Y: (b.Top + b.Bottom) / 2}
}

// Feet is the bottom-center point.
func (b AABB) Feet() Coord {
	return Coord{X: (b.Left + b.Right) / 2, Y: b.Bottom}
}

func (b AABB) Horizontal() Segment { return Segment{Min: b.Left, Max: b.Right} }
func (b AABB) Vertical() Segment   { return Segment{Min: b.Top, Max: b.Bottom} }

func (b AABB) Offset(v Vector) AABB {
	return AABB{Left: b.Left + v.X, Top: b.Top + v.Y, Right: b.Right + v.X, Bottom: b.Bottom + v.Y}
}

// Grow expands the box by dx on both horizontal sides and dy on both vertical
// sides. Negative growth shrinks it, collapsing to the center line instead of
// inverting.
func (b AABB) Grow(dx, dy float64) AABB {
	out := AABB{Left: b.Left - dx, Top: b.Top - dy, Right: b.Right + dx, Bottom: b.Bottom + dy}
	if out.Left > out.Right {
		m := (b.Left + b.Right) / 2
		out.Left, out.Right = m, m
	}
	if out.Top > out.Bottom {
		m := (b.Top + b.Bottom) / 2
		out.Top, out.Bottom = m, m
	}
	return out
}

// Intersects reports a strictly positive-area overlap. Boxes that only share
// an edge do not intersect.
func (b AABB) Intersects(o AABB) bool {
	return b.Horizontal().Overlaps(o.Horizontal()) && b.Vertical().Overlaps(o.Vertical())
}

func (b AABB) Contains(c Coord) bool {
	return b.BB().ContainsVect(c.Vector())
}

func (b AABB) ContainsBox(o AABB) bool {
	return b.BB().Contains(o.BB())
}

// Merge returns the smallest box containing both.
func (b AABB) Merge(o AABB) AABB {
	return FromBB(b.BB().Merge(o.BB()))
}

// MirrorX reflects the box about the vertical line x = axis.
func (b AABB) MirrorX(axis float64) AABB {
	return AABB{Left: 2*axis - b.Right, Top: b.Top, Right: 2*axis - b.Left, Bottom: b.Bottom}
}

// Tiles returns the inclusive grid range touched by the box interior.
func (b AABB) Tiles() (x0, y0, x1, y1 int) {
	x0, y0 = TileOf(b.Left), TileOf(b.Top)
	x1, y1 = tileBefore(b.Right), tileBefore(b.Bottom)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return
}

// tileBefore returns the tile containing the point just left of/above v, so a
// box ending exactly on a tile edge does not reach into the next tile.
func tileBefore(v float64) int {
	t := TileOf(v)
	if float64(t*TileSize) == v {
		t--
	}
	return t
}

// BB converts to chipmunk's box. World Y grows downward, so Top maps to B.
func (b AABB) BB() cp.BB {
	return cp.BB{L: b.Left, B: b.Top, R: b.Right, T: b.Bottom}
}

func FromBB(bb cp.BB) AABB {
	return AABB{Left: bb.L, Top: bb.B, Right: bb.R, Bottom: bb.T}
}

func (b AABB) String() string {
	return fmt.Sprintf("[%.2f,%.2f %.2f,%.2f]", b.Left, b.Top, b.Right, b.Bottom)
}

package common

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

// Vector is a displacement. It shares chipmunk's vector type so the physics
// helpers (Add, Mult, Length, Lerp) come for free.
type Vector = cp.Vector

func Vec(x, y float64) Vector {
	return cp.Vector{X: x, Y: y}
}

// Coord is an absolute position in world pixels. Y grows downward.
type Coord struct {
	X float64
	Y float64
}

func C(x, y float64) Coord {
	return Coord{X: x, Y: y}
}

func (c Coord) Add(v Vector) Coord {
	return Coord{X: c.X + v.X, Y: c.Y + v.Y}
}

// Sub returns the displacement from o to c.
func (c Coord) Sub(o Coord) Vector {
	return cp.Vector{X: c.X - o.X, Y: c.Y - o.Y}
}

func (c Coord) Distance(o Coord) float64 {
	return math.Hypot(c.X-o.X, c.Y-o.Y)
}

// Tile returns the grid cell containing c.
func (c Coord) Tile() (int, int) {
	return TileOf(c.X), TileOf(c.Y)
}

func (c Coord) Vector() Vector {
	return cp.Vector{X: c.X, Y: c.Y}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", c.X, c.Y)
}

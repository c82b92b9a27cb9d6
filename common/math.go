package common

import "github.com/jakecoffman/cp"

// TileSize is the edge length of one grid cell in world pixels.
const TileSize = 16

func Lerp(a, b, t float64) float64 {
	return cp.Lerp(a, b, t)
}

func Clamp(v, lo, hi float64) float64 {
	return cp.Clamp(v, lo, hi)
}

// Approach moves v toward target by at most step.
func Approach(v, target, step float64) float64 {
	return cp.LerpConst(v, target, step)
}

func Sign(v float64) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

func Abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// TileOf returns the grid index containing world coordinate v.
func TileOf(v float64) int {
	t := int(v / TileSize)
	if v < 0 && float64(t*TileSize) != v {
		t--
	}
	return t
}

package obj

import (
	"slices"

	"github.com/milk9111/hollowkeep/common"
)

// Terrain returns the cell at (x, y), or nil for empty or out-of-map cells.
func (l *Level) Terrain(x, y int) *Terrain {
	if x < 0 || y < 0 || x >= l.width || y >= l.height {
		return nil
	}
	return l.grid[y*l.width+x]
}

// Entities lists every entity that has not been removed.
func (l *Level) Entities() []*Entity {
	out := make([]*Entity, 0, len(l.entities))
	for _, e := range l.entities {
		if !e.removed {
			out = append(out, e)
		}
	}
	return out
}

// EntitiesInArea lists entities whose collision box intersects area.
func (l *Level) EntitiesInArea(area common.AABB) []*Entity {
	var out []*Entity
	for _, e := range l.entities {
		if !e.removed && e.Box().Intersects(area) {
			out = append(out, e)
		}
	}
	return out
}

// EntitiesWithTag lists living entities carrying tag, including ones
// spawned this tick.
func (l *Level) EntitiesWithTag(tag string) []*Entity {
	var out []*Entity
	for _, list := range [][]*Entity{l.entities, l.pending} {
		for _, e := range list {
			if e.Alive() && e.HasTag(tag) {
				out = append(out, e)
			}
		}
	}
	return out
}

func (l *Level) LandmarksWithTag(tag string) []Landmark {
	var out []Landmark
	for _, m := range l.landmarks {
		if slices.Contains(m.Tags, tag) {
			out = append(out, m)
		}
	}
	return out
}

func (l *Level) Landmarks() []Landmark {
	return l.landmarks
}

func (l *Level) Decorations() []Decoration {
	return l.decorations
}

// Mobs counts living non-player mobs.
func (l *Level) Mobs() int {
	n := 0
	for _, e := range l.entities {
		if e.IsMob() && e.Alive() && e.Kind != KindPlayer {
			n++
		}
	}
	return n
}

// overlapsSolid reports whether box intersects any solid cell.
func (l *Level) overlapsSolid(box common.AABB) bool {
	x0, y0, x1, y1 := box.Tiles()
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			t := l.Terrain(x, y)
			if t == nil {
				continue
			}
			if cb, ok := t.CollisionBox(); ok && cb.Intersects(box) {
				return true
			}
		}
	}
	return false
}

// occupied reports whether a living mob other than self stands in box.
func (l *Level) occupied(box common.AABB, self *Entity) bool {
	for _, e := range l.entities {
		if e != self && e.IsMob() && e.Alive() && e.Box().Intersects(box) {
			return true
		}
	}
	return false
}

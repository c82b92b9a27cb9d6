package levels

import (
	"strings"

	"github.com/pkg/errors"
)

// Level is already-parsed map data. Coordinates are in tiles.
type Level struct {
	Name        string             `json:"name"`
	Width       int                `json:"width"`
	Height      int                `json:"height"`
	Rows        []string           `json:"rows"`
	Legend      map[string]Terrain `json:"legend,omitempty"`
	Boundary    *Rect              `json:"boundary,omitempty"`
	Entities    []Entity           `json:"entities,omitempty"`
	Decorations []Decoration       `json:"decorations,omitempty"`
	Landmarks   []Landmark         `json:"landmarks,omitempty"`
	Triggers    []Trigger          `json:"triggers,omitempty"`
}

// Terrain is a cell descriptor.
type Terrain struct {
	Type      string `json:"type"`
	Permanent bool   `json:"permanent,omitempty"`
}

type Entity struct {
	Type  string         `json:"type"`
	X     int            `json:"x"`
	Y     int            `json:"y"`
	Props map[string]any `json:"props,omitempty"`
}

type Decoration struct {
	Frame string `json:"frame"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
}

type Landmark struct {
	ID   string   `json:"id"`
	X    int      `json:"x"`
	Y    int      `json:"y"`
	W    int      `json:"w"`
	H    int      `json:"h"`
	Tags []string `json:"tags,omitempty"`
}

type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type Trigger struct {
	ID        string    `json:"id"`
	Condition Condition `json:"condition"`
	Actions   []Action  `json:"actions"`
	Repeat    bool      `json:"repeat,omitempty"`
}

// Condition.Type is one of enter_area, no_mobs_with_tag or script.
type Condition struct {
	Type   string `json:"type"`
	Area   *Rect  `json:"area,omitempty"`
	Tag    string `json:"tag,omitempty"`
	Source string `json:"source,omitempty"`
	File   string `json:"file,omitempty"`
}

// Action.Type is one of set_boundary, spawn or cure_player.
type Action struct {
	Type   string  `json:"type"`
	Area   *Rect   `json:"area,omitempty"`
	Entity *Entity `json:"entity,omitempty"`
	Amount int     `json:"amount,omitempty"`
}

// DefaultLegend is used for characters a level does not define itself.
var DefaultLegend = map[string]Terrain{
	"#": {Type: "ground"},
	"^": {Type: "spikes"},
	"~": {Type: "water"},
	"=": {Type: "fragile"},
	"%": {Type: "fragile", Permanent: true},
}

// Cell returns the terrain descriptor at (x, y). Characters missing from both
// legends come back with the character itself as type so the caller can
// report them.
func (l *Level) Cell(x, y int) (Terrain, bool) {
	if y < 0 || y >= len(l.Rows) || x < 0 || x >= len(l.Rows[y]) {
		return Terrain{}, false
	}
	ch := string(l.Rows[y][x])
	if ch == "." || ch == " " {
		return Terrain{}, false
	}
	if t, ok := l.Legend[ch]; ok {
		return t, true
	}
	if t, ok := DefaultLegend[ch]; ok {
		return t, true
	}
	return Terrain{Type: ch}, true
}

func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return errors.Errorf("level %q: size must be positive", l.Name)
	}
	if len(l.Rows) != l.Height {
		return errors.Errorf("level %q: %d rows, want %d", l.Name, len(l.Rows), l.Height)
	}
	for i, r := range l.Rows {
		if len(r) != l.Width {
			return errors.Errorf("level %q: row %d has width %d, want %d", l.Name, i, len(r), l.Width)
		}
	}
	seen := make(map[string]bool)
	for _, t := range l.Triggers {
		if t.ID == "" {
			return errors.Errorf("level %q: trigger without id", l.Name)
		}
		if seen[t.ID] {
			return errors.Errorf("level %q: duplicate trigger %q", l.Name, t.ID)
		}
		seen[t.ID] = true
	}
	return nil
}

// rowEntities maps marker characters accepted by FromRows.
var rowEntities = map[byte]string{
	'P': "player",
	's': "scout",
	'a': "archer",
	'w': "witch",
}

// FromRows builds a level from an ASCII picture. Besides terrain characters it
// understands P (player), s (scout), a (archer), w (witch) and T (a one-tile
// landmark tagged "teleport"); those cells are left empty.
func FromRows(rows ...string) *Level {
	l := &Level{Name: "rows", Height: len(rows)}
	for _, r := range rows {
		if len(r) > l.Width {
			l.Width = len(r)
		}
	}
	for y, r := range rows {
		var b strings.Builder
		for x := 0; x < l.Width; x++ {
			if x >= len(r) {
				b.WriteByte('.')
				continue
			}
			c := r[x]
			if kind, ok := rowEntities[c]; ok {
				l.Entities = append(l.Entities, Entity{Type: kind, X: x, Y: y})
				b.WriteByte('.')
				continue
			}
			if c == 'T' {
				l.Landmarks = append(l.Landmarks, Landmark{ID: "T", X: x, Y: y, W: 1, H: 1, Tags: []string{"teleport"}})
				b.WriteByte('.')
				continue
			}
			b.WriteByte(c)
		}
		l.Rows = append(l.Rows, b.String())
	}
	return l
}

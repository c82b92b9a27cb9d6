package main

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/hollowkeep/assets"
	"github.com/milk9111/hollowkeep/common"
)

// One terminal cell covers cellW x cellH world pixels; cells are roughly
// twice as tall as they are wide.
const (
	cellW = 8
	cellH = 16
)

// cellRenderer draws a level onto a tcell screen, one glyph per cell.
type cellRenderer struct {
	screen tcell.Screen
	debug  bool
}

func toTcell(c color.Color) tcell.Color {
	if c == nil {
		return tcell.ColorDefault
	}
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}

// cells returns the cell range covered by box; tiny boxes still get one cell.
func cells(box common.AABB) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor(box.Left / cellW))
	y0 = int(math.Floor(box.Top / cellH))
	x1 = int(math.Ceil(box.Right/cellW)) - 1
	y1 = int(math.Ceil(box.Bottom/cellH)) - 1
	return x0, y0, max(x0, x1), max(y0, y1)
}

func (r *cellRenderer) DrawFrame(f assets.Frame, box common.AABB, flipX bool) {
	glyph := f.Glyph
	if glyph == 0 {
		glyph = '█'
	}
	style := tcell.StyleDefault.Foreground(toTcell(f.Color))
	x0, y0, x1, y1 := cells(box)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			r.screen.SetContent(x, y, glyph, nil, style)
		}
	}
}

func (r *cellRenderer) DrawBox(box common.AABB, c color.Color) {
	style := tcell.StyleDefault.Foreground(toTcell(c))
	x0, y0, x1, y1 := cells(box)
	for x := x0; x <= x1; x++ {
		r.screen.SetContent(x, y0, '·', nil, style)
		r.screen.SetContent(x, y1, '·', nil, style)
	}
	for y := y0; y <= y1; y++ {
		r.screen.SetContent(x0, y, '·', nil, style)
		r.screen.SetContent(x1, y, '·', nil, style)
	}
}

func (r *cellRenderer) Debug() bool { return r.debug }

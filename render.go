package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/hollowkeep/assets"
	"github.com/milk9111/hollowkeep/common"
)

// ebitenRenderer draws frames as solid tinted rectangles. Images are built
// once per frame name.
type ebitenRenderer struct {
	screen *ebiten.Image
	debug  bool
	images map[string]*ebiten.Image
}

func newEbitenRenderer(debug bool) *ebitenRenderer {
	return &ebitenRenderer{debug: debug, images: make(map[string]*ebiten.Image)}
}

func (r *ebitenRenderer) image(f assets.Frame) *ebiten.Image {
	if img, ok := r.images[f.Name]; ok {
		return img
	}
	img := ebiten.NewImage(max(f.Width, 1), max(f.Height, 1))
	if f.Color != nil {
		img.Fill(f.Color)
	}
	r.images[f.Name] = img
	return img
}

func (r *ebitenRenderer) DrawFrame(f assets.Frame, box common.AABB, flipX bool) {
	img := r.image(f)
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	sx, sy := box.Width()/float64(w), box.Height()/float64(h)
	if flipX {
		op.GeoM.Scale(-sx, sy)
		op.GeoM.Translate(box.Right, box.Top)
	} else {
		op.GeoM.Scale(sx, sy)
		op.GeoM.Translate(box.Left, box.Top)
	}
	r.screen.DrawImage(img, op)
}

func (r *ebitenRenderer) DrawBox(box common.AABB, c color.Color) {
	vector.StrokeRect(r.screen, float32(box.Left), float32(box.Top),
		float32(box.Width()), float32(box.Height()), 1, c, false)
}

func (r *ebitenRenderer) Debug() bool { return r.debug }

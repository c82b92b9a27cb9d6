// Command animview previews a species' animation states the way the
// simulation plays them. Left and right cycle through states.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"slices"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/hollowkeep/assets"
	"github.com/milk9111/hollowkeep/component"
	"github.com/milk9111/hollowkeep/prefabs"
	"github.com/pkg/errors"
)

const viewSize = 128

type previewer struct {
	species string
	fsm     *component.StateMachine[string]
	states  []string
	current int
	assets  *assets.Registry
	images  map[string]*ebiten.Image
}

func mobSpec(c *prefabs.Catalog, species string) (*prefabs.MobSpec, error) {
	switch species {
	case "player":
		return &c.Player.MobSpec, nil
	case "scout":
		return &c.Scout.MobSpec, nil
	case "archer":
		return &c.Archer.MobSpec, nil
	case "witch":
		return &c.Witch.MobSpec, nil
	}
	return nil, errors.Errorf("unknown species %q", species)
}

func newPreviewer(species string) (*previewer, error) {
	c, err := prefabs.LoadCatalog()
	if err != nil {
		return nil, err
	}
	spec, err := mobSpec(c, species)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(spec.FSM.States))
	for k := range spec.FSM.States {
		names[k] = k
	}
	fsm, err := prefabs.BuildFSM(spec.FSM, names)
	if err != nil {
		return nil, errors.Wrap(err, species)
	}
	reg := assets.NewRegistry()
	c.RegisterFrames(reg)

	states := make([]string, 0, len(names))
	for k := range names {
		states = append(states, k)
	}
	sort.Strings(states)
	return &previewer{
		species: species,
		fsm:     fsm,
		states:  states,
		current: max(slices.Index(states, fsm.Current()), 0),
		assets:  reg,
		images:  make(map[string]*ebiten.Image),
	}, nil
}

func (p *previewer) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		p.current = (p.current + 1) % len(p.states)
		p.fsm.Set(p.states[p.current], 0, true)
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		p.current = (p.current + len(p.states) - 1) % len(p.states)
		p.fsm.Set(p.states[p.current], 0, true)
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	}
	p.fsm.Next()
	return nil
}

func (p *previewer) image(f assets.Frame) *ebiten.Image {
	if img, ok := p.images[f.Name]; ok {
		return img
	}
	img := ebiten.NewImage(max(f.Width, 1), max(f.Height, 1))
	img.Fill(f.Color)
	p.images[f.Name] = img
	return img
}

func (p *previewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{A: 0xff})
	f := p.assets.MustFrame(p.fsm.Frame())
	img := p.image(f)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(2, 2)
	op.GeoM.Translate(float64(viewSize-2*f.Width)/2, float64(viewSize-2*f.Height)/2)
	screen.DrawImage(img, op)

	a := p.fsm.Animation()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s/%s\n%s %d/%d",
		p.species, p.fsm.Current(), f.Name, a.Index()+1, a.Len()))
}

func (p *previewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewSize, viewSize
}

func main() {
	species := flag.String("species", "player", "player, scout, archer or witch")
	flag.Parse()

	p, err := newPreviewer(*species)
	if err != nil {
		log.Fatal(err)
	}
	ebiten.SetWindowSize(viewSize*4, viewSize*4)
	ebiten.SetWindowTitle("animview: " + *species)
	if err := ebiten.RunGame(p); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}

package prefabs

import (
	"image/color"
	"unicode/utf8"

	"github.com/milk9111/hollowkeep/assets"
	"github.com/pkg/errors"
)

// Catalog bundles every tuning file the simulation reads.
type Catalog struct {
	Player  PlayerSpec
	Scout   ScoutSpec
	Archer  ArcherSpec
	Witch   WitchSpec
	Arrow   ArrowSpec
	Terrain TerrainSpec
	Effects EffectsSpec
	Camera  CameraSpec
}

// LoadCatalog reads and validates all prefab files.
func LoadCatalog() (*Catalog, error) {
	var c Catalog
	var err error
	if c.Player, err = LoadSpec[PlayerSpec]("player.yaml"); err != nil {
		return nil, err
	}
	if c.Scout, err = LoadSpec[ScoutSpec]("scout.yaml"); err != nil {
		return nil, err
	}
	if c.Archer, err = LoadSpec[ArcherSpec]("archer.yaml"); err != nil {
		return nil, err
	}
	if c.Witch, err = LoadSpec[WitchSpec]("witch.yaml"); err != nil {
		return nil, err
	}
	if c.Arrow, err = LoadSpec[ArrowSpec]("arrow.yaml"); err != nil {
		return nil, err
	}
	if c.Terrain, err = LoadSpec[TerrainSpec]("terrain.yaml"); err != nil {
		return nil, err
	}
	if c.Effects, err = LoadSpec[EffectsSpec]("effects.yaml"); err != nil {
		return nil, err
	}
	if c.Camera, err = LoadSpec[CameraSpec]("camera.yaml"); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate reports the first malformed value.
func (c *Catalog) Validate() error {
	for _, m := range []*MobSpec{&c.Player.MobSpec, &c.Scout.MobSpec, &c.Archer.MobSpec, &c.Witch.MobSpec} {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	if c.Scout.StabWindup <= 0 || c.Scout.StabRetryWindup < 0 || c.Scout.StabRetryWindup >= c.Scout.StabWindup {
		return errors.Errorf("prefabs: scout: stab_retry_windup must be in [0, stab_windup)")
	}
	if c.Archer.ChargeSpeed <= 0 || c.Archer.Range <= 0 {
		return errors.New("prefabs: archer: charge_speed and range must be positive")
	}
	ch := c.Witch.Choice
	if ch.Curse < 0 || ch.Summon < 0 || ch.Teleport < 0 || ch.Curse+ch.Summon+ch.Teleport > 100 {
		return errors.New("prefabs: witch: choice weights must be non-negative and sum to at most 100")
	}
	if c.Witch.Curse.Interval <= 0 {
		return errors.New("prefabs: witch: curse interval must be positive")
	}
	if c.Arrow.Collider.Width <= 0 || c.Arrow.Collider.Height <= 0 || c.Arrow.Lifetime <= 0 {
		return errors.New("prefabs: arrow: collider and lifetime must be positive")
	}
	if c.Terrain.Fragile.CollapseTicks <= 0 || c.Terrain.Fragile.RecoverTicks <= 0 {
		return errors.New("prefabs: terrain: fragile countdowns must be positive")
	}
	if c.Camera.ViewWidth <= 0 || c.Camera.ViewHeight <= 0 {
		return errors.New("prefabs: camera: view size must be positive")
	}
	if c.Camera.FocusLeft >= c.Camera.FocusRight {
		return errors.New("prefabs: camera: focus_left must be left of focus_right")
	}
	return nil
}

func (m *MobSpec) Validate() error {
	if m.Name == "" {
		return errors.New("prefabs: species without name")
	}
	if m.Collider.Width <= 0 || m.Collider.Height <= 0 {
		return errors.Errorf("prefabs: %s: collider must have positive size", m.Name)
	}
	if m.Health <= 0 {
		return errors.Errorf("prefabs: %s: health must be positive", m.Name)
	}
	if m.ImmunityTicks < 0 {
		return errors.Errorf("prefabs: %s: immunity_ticks must not be negative", m.Name)
	}
	if m.Pursuit.MinDistance > m.Pursuit.MaxDistance {
		return errors.Errorf("prefabs: %s: pursuit min_distance exceeds max_distance", m.Name)
	}
	if _, ok := m.FSM.States[m.FSM.Initial]; !ok {
		return errors.Errorf("prefabs: %s: fsm initial state %q not defined", m.Name, m.FSM.Initial)
	}
	for name, st := range m.FSM.States {
		if len(st.Frames) == 0 {
			return errors.Errorf("prefabs: %s: fsm state %q has no frames", m.Name, name)
		}
		if _, ok := m.FSM.States[st.Next]; !ok {
			return errors.Errorf("prefabs: %s: fsm state %q has unknown next %q", m.Name, name, st.Next)
		}
	}
	return nil
}

// RegisterFrames adds every frame the catalog declares to reg.
func (c *Catalog) RegisterFrames(reg *assets.Registry) {
	groups := [][]FrameSpec{
		c.Player.Frames, c.Scout.Frames, c.Archer.Frames, c.Witch.Frames,
		c.Arrow.Frames, c.Terrain.Frames, c.Effects.Frames,
	}
	for _, g := range groups {
		for _, f := range g {
			reg.Register(f.Frame())
		}
	}
}

func (f FrameSpec) Frame() assets.Frame {
	out := assets.Frame{Name: f.Name, Width: f.Width, Height: f.Height, Color: color.White, Glyph: '?'}
	if f.Color != nil && f.Color.Color != nil {
		out.Color = f.Color.Color
	}
	if r, _ := utf8.DecodeRuneInString(f.Glyph); r != utf8.RuneError {
		out.Glyph = r
	}
	return out
}

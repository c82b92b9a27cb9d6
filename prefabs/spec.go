package prefabs

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, errors.Wrapf(err, "prefabs: load %s", filename)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, errors.Wrapf(err, "prefabs: unmarshal %s", filename)
	}

	return spec, nil
}

// DecodeProps re-decodes a free-form map (entity props from map data) into a
// typed struct using the same yaml tags as the prefab files.
func DecodeProps[T any](raw map[string]any) (T, error) {
	var zero T
	if len(raw) == 0 {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type ColliderSpec struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
}

type HurtboxSpec struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
}

// HitboxSpec is an attack area relative to the attacker's feet while facing
// right; it is mirrored for left facing.
type HitboxSpec struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	Damage  int     `yaml:"damage"`
}

type KnockbackSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type PursuitSpec struct {
	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`
}

type FrameSpec struct {
	Name   string     `yaml:"name"`
	Width  int        `yaml:"width"`
	Height int        `yaml:"height"`
	Color  *YAMLColor `yaml:"color"`
	Glyph  string     `yaml:"glyph"`
}

type FSMSpec struct {
	Initial string                  `yaml:"initial"`
	States  map[string]FSMStateSpec `yaml:"states"`
}

type FSMStateSpec struct {
	Next          string   `yaml:"next"`
	Frames        []string `yaml:"frames"`
	TicksPerFrame int      `yaml:"ticks_per_frame"`
	Loop          bool     `yaml:"loop"`
}

// MobSpec holds what every living species shares.
type MobSpec struct {
	Name          string       `yaml:"name"`
	Collider      ColliderSpec `yaml:"collider"`
	Hurtbox       HurtboxSpec  `yaml:"hurtbox"`
	Health        int          `yaml:"health"`
	ImmunityTicks int          `yaml:"immunity_ticks"`
	MoveSpeed     float64      `yaml:"move_speed"`
	Accel         float64      `yaml:"accel"`
	Pursuit       PursuitSpec  `yaml:"pursuit"`
	FSM           FSMSpec      `yaml:"fsm"`
	Frames        []FrameSpec  `yaml:"frames"`
}

type PlayerSpec struct {
	MobSpec        `yaml:",inline"`
	AirAccel       float64       `yaml:"air_accel"`
	Friction       float64       `yaml:"friction"`
	AirFriction    float64       `yaml:"air_friction"`
	JumpSpeed      float64       `yaml:"jump_speed"`
	JumpCut        float64       `yaml:"jump_cut"`
	CoyoteTicks    int           `yaml:"coyote_ticks"`
	JumpBuffer     int           `yaml:"jump_buffer"`
	MaxFall        float64       `yaml:"max_fall"`
	MeleeCooldown  int           `yaml:"melee_cooldown"`
	Slash          HitboxSpec    `yaml:"slash"`
	Dive           HitboxSpec    `yaml:"dive"`
	Knockback      KnockbackSpec `yaml:"knockback"`
	DiveBounce     float64       `yaml:"dive_bounce"`
	HurtFlashTicks int           `yaml:"hurt_flash_ticks"`
	RespawnTicks   int           `yaml:"respawn_ticks"`
}

type ScoutSpec struct {
	MobSpec         `yaml:",inline"`
	Attack          HitboxSpec    `yaml:"attack"`
	Knockback       KnockbackSpec `yaml:"knockback"`
	StabWindup      int           `yaml:"stab_windup"`
	StabRetryWindup int           `yaml:"stab_retry_windup"`
	StabCooldown    int           `yaml:"stab_cooldown"`
}

type ArcherSpec struct {
	MobSpec     `yaml:",inline"`
	Range       float64     `yaml:"range"`
	ChargeSpeed int         `yaml:"charge_speed"`
	AttackSpeed int         `yaml:"attack_speed"`
	FireOffset  HurtboxSpec `yaml:"fire_offset"`
}

type CurseSpec struct {
	Prepare       int           `yaml:"prepare"`
	Interval      int           `yaml:"interval"`
	Duration      int           `yaml:"duration"`
	Damage        int           `yaml:"damage"`
	MaxRange      float64       `yaml:"max_range"`
	Cooldown      int           `yaml:"cooldown"`
	AbortCooldown int           `yaml:"abort_cooldown"`
	BeamWidth     float64       `yaml:"beam_width"`
	BeamHeight    float64       `yaml:"beam_height"`
	Knockback     KnockbackSpec `yaml:"knockback"`
}

type SummonSpec struct {
	Prepare       int     `yaml:"prepare"`
	Offset        float64 `yaml:"offset"`
	Cooldown      int     `yaml:"cooldown"`
	AbortCooldown int     `yaml:"abort_cooldown"`
}

type TeleportSpec struct {
	Cooldown int    `yaml:"cooldown"`
	Tag      string `yaml:"tag"`
}

// ChoiceSpec weights are percentages rolled once per idle tick; whatever is
// left over keeps the witch idle.
type ChoiceSpec struct {
	Curse    int `yaml:"curse"`
	Summon   int `yaml:"summon"`
	Teleport int `yaml:"teleport"`
}

type WitchSpec struct {
	MobSpec      `yaml:",inline"`
	IdleCooldown int          `yaml:"idle_cooldown"`
	Choice       ChoiceSpec   `yaml:"choice"`
	Curse        CurseSpec    `yaml:"curse"`
	Summon       SummonSpec   `yaml:"summon"`
	Teleport     TeleportSpec `yaml:"teleport"`
}

type ArrowSpec struct {
	Name      string        `yaml:"name"`
	Collider  ColliderSpec  `yaml:"collider"`
	Speed     float64       `yaml:"speed"`
	Damage    int           `yaml:"damage"`
	Lifetime  int           `yaml:"lifetime"`
	Knockback KnockbackSpec `yaml:"knockback"`
	Frame     string        `yaml:"frame"`
	Frames    []FrameSpec   `yaml:"frames"`
}

type TerrainKindSpec struct {
	Frame         string  `yaml:"frame"`
	CollapseFrame string  `yaml:"collapse_frame"`
	Damage        int     `yaml:"damage"`
	HurtTop       float64 `yaml:"hurt_top"`
	CollapseTicks int     `yaml:"collapse_ticks"`
	RecoverTicks  int     `yaml:"recover_ticks"`
}

type TerrainSpec struct {
	Ground  TerrainKindSpec `yaml:"ground"`
	Spikes  TerrainKindSpec `yaml:"spikes"`
	Water   TerrainKindSpec `yaml:"water"`
	Fragile TerrainKindSpec `yaml:"fragile"`
	Frames  []FrameSpec     `yaml:"frames"`
}

type BurstSpec struct {
	Count    int     `yaml:"count"`
	Lifetime int     `yaml:"lifetime"`
	Speed    float64 `yaml:"speed"`
	Size     float64 `yaml:"size"`
	Gravity  float64 `yaml:"gravity"`
	Frame    string  `yaml:"frame"`
}

type EffectsSpec struct {
	Damage BurstSpec   `yaml:"damage"`
	Death  BurstSpec   `yaml:"death"`
	Dust   BurstSpec   `yaml:"dust"`
	Frames []FrameSpec `yaml:"frames"`
}

type CameraSpec struct {
	ViewWidth    float64 `yaml:"view_width"`
	ViewHeight   float64 `yaml:"view_height"`
	FocusLeft    float64 `yaml:"focus_left"`
	FocusRight   float64 `yaml:"focus_right"`
	AnchorLeft   float64 `yaml:"anchor_left"`
	AnchorRight  float64 `yaml:"anchor_right"`
	AnchorY      float64 `yaml:"anchor_y"`
	DeadZoneUp   float64 `yaml:"dead_zone_up"`
	DeadZoneDown float64 `yaml:"dead_zone_down"`
	Gain         float64 `yaml:"gain"`
	Accel        float64 `yaml:"accel"`
	MaxSpeed     float64 `yaml:"max_speed"`
	MinSpeed     float64 `yaml:"min_speed"`
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return errors.New("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return errors.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

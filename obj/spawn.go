package obj

import (
	"github.com/milk9111/hollowkeep/common"
	"github.com/milk9111/hollowkeep/component"
	"github.com/milk9111/hollowkeep/prefabs"
	"github.com/pkg/errors"
)

// entityProps are the per-instance overrides map data may carry.
type entityProps struct {
	Health      int      `yaml:"health"`
	MinDistance *float64 `yaml:"min_distance"`
	MaxDistance *float64 `yaml:"max_distance"`
	Facing      string   `yaml:"facing"`
	Tags        []string `yaml:"tags"`
}

// newEntity builds a mob of kind standing at at, applying props on top of
// the species spec.
func (l *Level) newEntity(kind Kind, at common.Coord, props map[string]any) (*Entity, error) {
	p, err := prefabs.DecodeProps[entityProps](props)
	if err != nil {
		return nil, errors.Wrapf(err, "obj: %s props", kind)
	}

	e := &Entity{
		Kind:   kind,
		Tags:   p.Tags,
		Pos:    at,
		OldPos: at,
		Facing: FacingRight,
		lvl:    l,
	}

	var mob *prefabs.MobSpec
	switch kind {
	case KindPlayer:
		e.player, err = newPlayerState(&l.catalog.Player)
		mob = &l.catalog.Player.MobSpec
	case KindScout:
		e.scout, err = newScoutState(&l.catalog.Scout)
		mob = &l.catalog.Scout.MobSpec
	case KindArcher:
		e.archer, err = newArcherState(&l.catalog.Archer)
		mob = &l.catalog.Archer.MobSpec
	case KindWitch:
		e.witch, err = newWitchState(&l.catalog.Witch)
		mob = &l.catalog.Witch.MobSpec
	default:
		return nil, errors.Errorf("obj: cannot build %s", kind)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "obj: %s", kind)
	}

	switch p.Facing {
	case "", "right":
	case "left":
		e.Facing = FacingLeft
	default:
		return nil, errors.Errorf("obj: %s: bad facing %q", kind, p.Facing)
	}

	health := mob.Health
	if p.Health > 0 {
		health = p.Health
	}
	e.Health = component.NewHealth(health, mob.ImmunityTicks)
	e.collider = mob.Collider
	e.hurtbox = mob.Hurtbox
	e.pursuit = Pursuit{MinDistance: mob.Pursuit.MinDistance, MaxDistance: mob.Pursuit.MaxDistance}
	if p.MinDistance != nil {
		e.pursuit.MinDistance = *p.MinDistance
	}
	if p.MaxDistance != nil {
		e.pursuit.MaxDistance = *p.MaxDistance
	}
	if e.pursuit.MinDistance > e.pursuit.MaxDistance {
		return nil, errors.Errorf("obj: %s: min_distance exceeds max_distance", kind)
	}

	e.ID = l.nextID(kind)
	e.OldBox = e.Box()
	return e, nil
}

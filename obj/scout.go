package obj

import (
	"github.com/milk9111/hollowkeep/common"
	"github.com/milk9111/hollowkeep/component"
	"github.com/milk9111/hollowkeep/prefabs"
)

type scoutAnim int

const (
	scoutIdle scoutAnim = iota
	scoutStabbing
	scoutStabbed
)

var scoutAnims = map[string]scoutAnim{
	"idle":     scoutIdle,
	"stabbing": scoutStabbing,
	"stabbed":  scoutStabbed,
}

type scoutState struct {
	spec     *prefabs.ScoutSpec
	fsm      *component.StateMachine[scoutAnim]
	windup   int
	cooldown int
}

func newScoutState(spec *prefabs.ScoutSpec) (*scoutState, error) {
	fsm, err := prefabs.BuildFSM(spec.FSM, scoutAnims)
	if err != nil {
		return nil, err
	}
	return &scoutState{spec: spec, fsm: fsm}, nil
}

// AttackBox is the stab area in front of the scout.
func (e *Entity) AttackBox() (common.AABB, bool) {
	if e.scout == nil {
		return common.AABB{}, false
	}
	return e.facingBox(e.scout.spec.Attack, e.Facing), true
}

func (e *Entity) tickScout() {
	s := e.scout
	spec := s.spec
	if s.cooldown > 0 {
		s.cooldown--
	}

	target := e.lvl.Player()
	if target == nil || !target.Alive() {
		s.windup = 0
		e.accelerate(0, spec.MoveSpeed, spec.Accel)
		s.fsm.Next()
		return
	}

	attack := e.facingBox(spec.Attack, e.Facing)
	if s.cooldown == 0 && target.HurtBox().Intersects(attack) {
		e.accelerate(0, spec.MoveSpeed, spec.Accel)
		s.windup++
		s.fsm.Set(scoutStabbing, s.windup, true)
		if s.windup >= spec.StabWindup {
			if target.Damage(spec.Attack.Damage, e, false) {
				knockback(target, e, spec.Knockback)
				s.cooldown = spec.StabCooldown
				s.windup = 0
				s.fsm.Set(scoutStabbed, 0, true)
			} else {
				s.windup = spec.StabRetryWindup
			}
		}
	} else if s.fsm.Current() != scoutStabbed {
		s.windup = 0
		e.face(target)
		e.pursue(target, spec.MoveSpeed, spec.Accel)
	} else {
		e.accelerate(0, spec.MoveSpeed, spec.Accel)
	}
	s.fsm.Next()
}

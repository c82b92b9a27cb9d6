package obj

import (
	"github.com/milk9111/hollowkeep/common"
	"github.com/milk9111/hollowkeep/component"
	"github.com/milk9111/hollowkeep/prefabs"
	"go.uber.org/zap"
)

type archerAnim int

const (
	archerIdle archerAnim = iota
	archerDrawing
	archerShot
)

var archerAnims = map[string]archerAnim{
	"idle":    archerIdle,
	"drawing": archerDrawing,
	"shot":    archerShot,
}

type archerState struct {
	spec     *prefabs.ArcherSpec
	fsm      *component.StateMachine[archerAnim]
	charge   int
	cooldown int
}

func newArcherState(spec *prefabs.ArcherSpec) (*archerState, error) {
	fsm, err := prefabs.BuildFSM(spec.FSM, archerAnims)
	if err != nil {
		return nil, err
	}
	return &archerState{spec: spec, fsm: fsm}, nil
}

// FirePoint is where arrows leave the bow.
func (e *Entity) FirePoint() common.Coord {
	off := e.archer.spec.FireOffset
	return common.C(e.Pos.X+off.OffsetX*float64(e.Facing), e.Pos.Y+off.OffsetY)
}

func (e *Entity) tickArcher() {
	a := e.archer
	spec := a.spec
	if a.cooldown > 0 {
		a.cooldown--
	}

	target := e.lvl.Player()
	if target == nil || !target.Alive() {
		a.charge = 0
		e.accelerate(0, spec.MoveSpeed, spec.Accel)
		a.fsm.Next()
		return
	}

	if common.Abs(target.Pos.X-e.Pos.X) > spec.Range {
		a.charge = max(a.charge-2, 0)
		e.pursue(target, spec.MoveSpeed, spec.Accel)
		a.fsm.Next()
		return
	}

	e.face(target)
	if a.charge > 0 {
		e.accelerate(0, spec.MoveSpeed, spec.Accel)
	} else {
		e.pursue(target, spec.MoveSpeed, spec.Accel)
	}
	if a.cooldown == 0 {
		fire := e.FirePoint()
		switch {
		case target.HurtBox().Vertical().Contains(fire.Y):
			a.charge++
			if a.charge >= spec.ChargeSpeed {
				e.lvl.spawnArrow(e, fire)
				a.charge = 0
				a.cooldown = spec.AttackSpeed
				a.fsm.Set(archerShot, 0, true)
			} else {
				a.fsm.Set(archerDrawing, a.charge, true)
			}
		case a.charge > 0:
			a.charge = spec.ChargeSpeed - 1
			a.fsm.Set(archerDrawing, a.charge, true)
		}
	}
	a.fsm.Next()
}

type arrowState struct {
	spec  *prefabs.ArrowSpec
	owner string
	life  int
}

// spawnArrow queues an arrow centred on at, flying the way owner faces.
func (l *Level) spawnArrow(owner *Entity, at common.Coord) *Entity {
	spec := &l.catalog.Arrow
	e := &Entity{
		ID:       l.nextID(KindArrow),
		Kind:     KindArrow,
		Pos:      common.C(at.X, at.Y+spec.Collider.Height/2),
		Vel:      common.Vec(float64(owner.Facing)*spec.Speed, 0),
		Facing:   owner.Facing,
		collider: spec.Collider,
		lvl:      l,
		arrow:    &arrowState{spec: spec, owner: owner.ID, life: spec.Lifetime},
	}
	l.log.Debug("arrow fired", zap.String("entity", e.ID), zap.String("owner", owner.ID))
	l.queue(e)
	return e
}

func (e *Entity) tickArrow() {
	a := e.arrow
	l := e.lvl
	a.life--
	if a.life <= 0 {
		l.RemoveEntity(e)
		return
	}
	target := l.Player()
	if target == nil || !target.Alive() || !target.HurtBox().Intersects(e.Box()) {
		return
	}
	if target.Damage(a.spec.Damage, e, false) {
		knockback(target, e, a.spec.Knockback)
	}
	l.RemoveEntity(e)
}

package obj

import (
	"github.com/milk9111/hollowkeep/common"
	"github.com/milk9111/hollowkeep/component"
	"github.com/milk9111/hollowkeep/prefabs"
	"go.uber.org/zap"
)

const curseBeamFrame = "curse_beam"

type witchAnim int

const (
	witchIdle witchAnim = iota
	witchCursing
	witchSummoning
)

var witchAnims = map[string]witchAnim{
	"idle":      witchIdle,
	"cursing":   witchCursing,
	"summoning": witchSummoning,
}

type witchAction int

const (
	witchStayIdle witchAction = iota
	witchCurse
	witchSummon
	witchTeleport
)

// witchChoice maps a roll in [0, 100) onto an action using cumulative
// percentage weights.
func witchChoice(roll int, c prefabs.ChoiceSpec) witchAction {
	switch {
	case roll < c.Curse:
		return witchCurse
	case roll < c.Curse+c.Summon:
		return witchSummon
	case roll < c.Curse+c.Summon+c.Teleport:
		return witchTeleport
	}
	return witchStayIdle
}

type witchState struct {
	spec     *prefabs.WitchSpec
	fsm      *component.StateMachine[witchAnim]
	cooldown int
	elapsed  int
	beam     common.AABB
}

func newWitchState(spec *prefabs.WitchSpec) (*witchState, error) {
	fsm, err := prefabs.BuildFSM(spec.FSM, witchAnims)
	if err != nil {
		return nil, err
	}
	return &witchState{spec: spec, fsm: fsm, cooldown: spec.IdleCooldown}, nil
}

// CurseBeam is the area the active curse damages.
func (e *Entity) CurseBeam() (common.AABB, bool) {
	if e.witch == nil || e.witch.fsm.Current() != witchCursing {
		return common.AABB{}, false
	}
	return e.witch.beam, true
}

func (e *Entity) tickWitch() {
	w := e.witch
	spec := w.spec
	target := e.lvl.Player()
	if target != nil && !target.Alive() {
		target = nil
	}

	switch w.fsm.Current() {
	case witchCursing:
		e.tickCurse(target)
	case witchSummoning:
		e.tickSummon(target)
	default:
		if w.cooldown > 0 {
			w.cooldown--
		}
		if target == nil {
			e.accelerate(0, spec.MoveSpeed, spec.Accel)
			break
		}
		e.face(target)
		e.pursue(target, spec.MoveSpeed, spec.Accel)
		if w.cooldown > 0 {
			break
		}
		switch witchChoice(e.lvl.rng.IntN(100), spec.Choice) {
		case witchCurse:
			e.startCurse(target)
		case witchSummon:
			e.startSummon()
		case witchTeleport:
			e.teleport()
		}
	}
	w.fsm.Next()
}

func (e *Entity) startCurse(target *Entity) {
	w := e.witch
	c := target.HurtBox().Center()
	hw, hh := w.spec.Curse.BeamWidth/2, w.spec.Curse.BeamHeight/2
	w.beam = common.NewAABB(c.X-hw, c.Y-hh, c.X+hw, c.Y+hh)
	w.elapsed = 0
	e.Vel.X = 0
	w.fsm.Set(witchCursing, 0, true)
	e.lvl.log.Debug("curse started", zap.String("entity", e.ID), zap.Stringer("beam", w.beam))
}

func (e *Entity) tickCurse(target *Entity) {
	w := e.witch
	spec := w.spec.Curse
	e.accelerate(0, w.spec.MoveSpeed, w.spec.Accel)
	w.elapsed++

	if target == nil {
		e.endAction(spec.Cooldown)
		return
	}
	if e.Pos.Distance(target.Pos) > spec.MaxRange {
		e.lvl.log.Debug("curse aborted", zap.String("entity", e.ID))
		e.endAction(spec.AbortCooldown)
		return
	}
	if w.elapsed > spec.Prepare && (w.elapsed-spec.Prepare)%spec.Interval == 0 &&
		w.beam.Intersects(target.HurtBox()) {
		if target.Damage(spec.Damage, e, false) {
			knockback(target, e, spec.Knockback)
		}
	}
	if w.elapsed >= spec.Duration {
		e.endAction(spec.Cooldown)
	}
}

func (e *Entity) startSummon() {
	w := e.witch
	w.elapsed = 0
	e.Vel.X = 0
	w.fsm.Set(witchSummoning, 0, true)
}

func (e *Entity) tickSummon(target *Entity) {
	w := e.witch
	spec := w.spec.Summon
	l := e.lvl
	e.accelerate(0, w.spec.MoveSpeed, w.spec.Accel)
	w.elapsed++
	if w.elapsed < spec.Prepare {
		return
	}
	if target == nil {
		e.endAction(spec.AbortCooldown)
		return
	}

	collider := l.catalog.Scout.Collider
	for _, dx := range []float64{spec.Offset, -spec.Offset} {
		at := common.C(target.Pos.X+dx, target.Pos.Y)
		box := common.BoxAt(at.Add(common.Vec(collider.OffsetX, collider.OffsetY)), collider.Width, collider.Height)
		if l.overlapsSolid(box) {
			continue
		}
		m, err := l.Spawn(KindScout, at, map[string]any{"tags": []string{"minion"}})
		if err != nil {
			l.log.Warn("summon failed", zap.String("entity", e.ID), zap.Error(err))
			break
		}
		l.log.Debug("summoned", zap.String("entity", e.ID), zap.String("minion", m.ID))
		e.endAction(spec.Cooldown)
		return
	}
	l.log.Debug("summon blocked", zap.String("entity", e.ID))
	e.endAction(spec.AbortCooldown)
}

// teleport moves the witch to a random clear landmark carrying the teleport
// tag. Without one it stays put.
func (e *Entity) teleport() {
	w := e.witch
	l := e.lvl
	var spots []common.Coord
	for _, m := range l.LandmarksWithTag(w.spec.Teleport.Tag) {
		if m.Box.Contains(e.Pos) {
			continue
		}
		at := common.C(m.Box.Center().X, m.Box.Bottom)
		box := e.boxAt(at)
		if l.overlapsSolid(box) || l.occupied(box, e) {
			continue
		}
		spots = append(spots, at)
	}
	if len(spots) == 0 {
		l.log.Debug("no teleport destination", zap.String("entity", e.ID))
		return
	}
	at := spots[l.rng.IntN(len(spots))]
	l.burst(l.catalog.Effects.Dust, e.Box().Center())
	e.Pos = at
	e.Vel = common.Vec(0, 0)
	w.cooldown = w.spec.Teleport.Cooldown
	l.burst(l.catalog.Effects.Dust, e.Box().Center())
	l.log.Debug("teleported", zap.String("entity", e.ID), zap.Stringer("to", at))
}

func (e *Entity) endAction(cooldown int) {
	w := e.witch
	w.cooldown = cooldown
	w.elapsed = 0
	w.fsm.Set(witchIdle, 0, true)
}

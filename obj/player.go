package obj

import (
	"github.com/milk9111/hollowkeep/common"
	"github.com/milk9111/hollowkeep/component"
	"github.com/milk9111/hollowkeep/prefabs"
	"go.uber.org/zap"
)

type playerAnim int

const (
	playerIdle playerAnim = iota
	playerRun
	playerJump
	playerFall
	playerSlash
	playerDive
)

var playerAnims = map[string]playerAnim{
	"idle":  playerIdle,
	"run":   playerRun,
	"jump":  playerJump,
	"fall":  playerFall,
	"slash": playerSlash,
	"dive":  playerDive,
}

// noInput marks an edge that has not happened yet.
const noInput = -1 << 30

// playerState is driven by input edges stamped with the tick they arrived on,
// so buffering and coyote time are exact to the tick.
type playerState struct {
	spec *prefabs.PlayerSpec
	fsm  *component.StateMachine[playerAnim]

	jumpPressed  int
	jumpReleased int
	meleePressed int

	jumping       bool
	jumpStart     int
	airTicks      int
	meleeCooldown int
	flash         int
}

func newPlayerState(spec *prefabs.PlayerSpec) (*playerState, error) {
	fsm, err := prefabs.BuildFSM(spec.FSM, playerAnims)
	if err != nil {
		return nil, err
	}
	return &playerState{
		spec:         spec,
		fsm:          fsm,
		jumpPressed:  noInput,
		jumpReleased: noInput,
		meleePressed: noInput,
	}, nil
}

// Flashing reports whether the hurt flash is showing.
func (e *Entity) Flashing() bool {
	return e.player != nil && e.player.flash > 0
}

func (e *Entity) tickPlayer() {
	p := e.player
	s := p.spec
	l := e.lvl
	now := l.Now()

	if p.flash > 0 {
		p.flash--
	}
	if p.meleeCooldown > 0 {
		p.meleeCooldown--
	}
	if e.OnGround {
		p.airTicks = 0
		p.jumping = false
	}

	dir := 0
	if l.held(CommandLeft) {
		dir--
	}
	if l.held(CommandRight) {
		dir++
	}
	accel, friction := s.Accel, s.Friction
	if !e.OnGround {
		accel, friction = s.AirAccel, s.AirFriction
	}
	if dir != 0 {
		e.Facing = Facing(dir)
		e.accelerate(dir, s.MoveSpeed, accel)
	} else {
		e.Vel.X = common.Approach(e.Vel.X, 0, friction)
	}

	if p.jumpPressed != noInput && now-p.jumpPressed <= s.JumpBuffer && p.airTicks <= s.CoyoteTicks {
		e.Vel.Y = -s.JumpSpeed
		e.OnGround = false
		p.jumpPressed = noInput
		p.airTicks = s.CoyoteTicks + 1
		p.jumping = true
		p.jumpStart = now
	}
	if p.jumping && p.jumpReleased >= p.jumpStart && e.Vel.Y < 0 {
		e.Vel.Y *= s.JumpCut
		p.jumping = false
	}
	if !e.OnGround {
		p.airTicks++
	}
	if s.MaxFall > 0 && e.Vel.Y > s.MaxFall {
		e.Vel.Y = s.MaxFall
	}

	if p.meleePressed == now && p.meleeCooldown == 0 {
		p.meleeCooldown = s.MeleeCooldown
		if l.held(CommandDown) {
			e.dive()
		} else {
			e.slash()
		}
	}

	e.animatePlayer()
}

// dive hits every mob in the area below the player and bounces off them.
func (e *Entity) dive() {
	p := e.player
	s := p.spec
	hit := false
	for _, m := range e.lvl.mobsIn(e.facingBox(s.Dive, e.Facing), e) {
		if m.Damage(s.Dive.Damage, e, false) {
			knockback(m, e, s.Knockback)
			hit = true
		}
	}
	if hit {
		e.Vel.Y = -s.DiveBounce
	}
	p.fsm.Set(playerDive, 0, true)
}

// slash attacks in the facing direction. When nothing is there it checks the
// other side and turns only if that finds a target.
func (e *Entity) slash() {
	p := e.player
	s := p.spec
	l := e.lvl
	targets := l.mobsIn(e.facingBox(s.Slash, e.Facing), e)
	if len(targets) == 0 {
		back := l.mobsIn(e.facingBox(s.Slash, e.Facing.Opposite()), e)
		if len(back) > 0 {
			e.Facing = e.Facing.Opposite()
			targets = back
		}
	}
	for _, m := range targets {
		if m.Damage(s.Slash.Damage, e, false) {
			knockback(m, e, s.Knockback)
		}
	}
	if len(targets) > 0 {
		l.log.Debug("slash", zap.String("entity", e.ID), zap.Int("targets", len(targets)))
	}
	p.fsm.Set(playerSlash, 0, true)
}

// animatePlayer re-asserts the locomotion state unless an attack animation
// is still playing, then advances the machine.
func (e *Entity) animatePlayer() {
	fsm := e.player.fsm
	switch cur := fsm.Current(); {
	case fsm.Interrupted(), cur == playerSlash, cur == playerDive:
	default:
		want := playerIdle
		switch {
		case !e.OnGround && e.Vel.Y < 0:
			want = playerJump
		case !e.OnGround:
			want = playerFall
		case e.Vel.X != 0:
			want = playerRun
		}
		if want != cur {
			fsm.Set(want, 0, false)
		}
	}
	fsm.Next()
}

// mobsIn lists living mobs other than self whose hurt boxes intersect area.
func (l *Level) mobsIn(area common.AABB, self *Entity) []*Entity {
	var out []*Entity
	for _, e := range l.entities {
		if e == self || !e.IsMob() || !e.Alive() || e.Kind == KindPlayer {
			continue
		}
		if e.HurtBox().Intersects(area) {
			out = append(out, e)
		}
	}
	return out
}

package obj

import (
	"slices"

	"github.com/milk9111/hollowkeep/common"
	"github.com/milk9111/hollowkeep/component"
	"github.com/milk9111/hollowkeep/prefabs"
	"go.uber.org/zap"
)

// Gravity is added to vertical velocity on every tick an entity does not land.
const Gravity = 0.25

// maxFallSpeed keeps falling mobs below a tile per tick.
const maxFallSpeed = 8.0

// Kind tags the closed set of entity variants.
type Kind int

const (
	KindPlayer Kind = iota
	KindScout
	KindArcher
	KindWitch
	KindArrow
)

var kindNames = [...]string{"player", "scout", "archer", "witch", "arrow"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

func ParseKind(s string) (Kind, bool) {
	for i, n := range kindNames {
		if n == s {
			return Kind(i), true
		}
	}
	return 0, false
}

type Facing int

const (
	FacingLeft  Facing = -1
	FacingRight Facing = 1
)

func (f Facing) Opposite() Facing { return -f }

// Entity is the shared record for every simulation actor. Exactly one of the
// per-kind payload pointers is set, matching Kind.
type Entity struct {
	ID       string
	Kind     Kind
	Tags     []string
	Pos      common.Coord
	Vel      common.Vector
	OldPos   common.Coord
	OldBox   common.AABB
	OnGround bool
	Facing   Facing
	Health   *component.Health

	collider prefabs.ColliderSpec
	hurtbox  prefabs.HurtboxSpec
	pursuit  Pursuit
	lvl      *Level
	removed  bool

	player *playerState
	scout  *scoutState
	archer *archerState
	witch  *witchState
	arrow  *arrowState
}

// Box is the collision box derived from the feet position.
func (e *Entity) Box() common.AABB {
	return e.boxAt(e.Pos)
}

func (e *Entity) boxAt(at common.Coord) common.AABB {
	c := at.Add(common.Vec(e.collider.OffsetX, e.collider.OffsetY))
	return common.BoxAt(c, e.collider.Width, e.collider.Height)
}

// HurtBox is the region tested for damage-causing contact.
func (e *Entity) HurtBox() common.AABB {
	if e.hurtbox.Width <= 0 || e.hurtbox.Height <= 0 {
		return e.Box()
	}
	c := e.Pos.Add(common.Vec(e.hurtbox.OffsetX, e.hurtbox.OffsetY))
	return common.BoxAt(c, e.hurtbox.Width, e.hurtbox.Height)
}

// facingBox places a right-facing hitbox relative to the feet and mirrors it
// when facing left.
func (e *Entity) facingBox(h prefabs.HitboxSpec, f Facing) common.AABB {
	left := e.Pos.X + h.OffsetX
	bottom := e.Pos.Y + h.OffsetY
	b := common.NewAABB(left, bottom-h.Height, left+h.Width, bottom)
	if f == FacingLeft {
		b = b.MirrorX(e.Pos.X)
	}
	return b
}

func (e *Entity) IsMob() bool {
	return e.Health != nil
}

func (e *Entity) Alive() bool {
	return !e.removed && (e.Health == nil || e.Health.IsAlive())
}

func (e *Entity) Removed() bool {
	return e.removed
}

func (e *Entity) HasTag(tag string) bool {
	return slices.Contains(e.Tags, tag)
}

func (e *Entity) hasGravity() bool {
	return e.Kind != KindArrow
}

// Frame is the visual frame currently shown.
func (e *Entity) Frame() string {
	switch e.Kind {
	case KindPlayer:
		return e.player.fsm.Frame()
	case KindScout:
		return e.scout.fsm.Frame()
	case KindArcher:
		return e.archer.fsm.Frame()
	case KindWitch:
		return e.witch.fsm.Frame()
	case KindArrow:
		return e.arrow.spec.Frame
	}
	return ""
}

// frames lists every frame this entity can show.
func (e *Entity) frames() []string {
	switch e.Kind {
	case KindPlayer:
		return e.player.fsm.Frames()
	case KindScout:
		return e.scout.fsm.Frames()
	case KindArcher:
		return e.archer.fsm.Frames()
	case KindWitch:
		return append(e.witch.fsm.Frames(), curseBeamFrame)
	case KindArrow:
		return []string{e.arrow.spec.Frame}
	}
	return nil
}

// Damage applies amount through Health. It returns false when nothing
// happened; callers apply knockback only on true.
func (e *Entity) Damage(amount int, source *Entity, evenIfInvincible bool) bool {
	if e.Health == nil || e.removed {
		return false
	}
	applied, killed := e.Health.ApplyDamage(amount, evenIfInvincible)
	if !applied {
		return false
	}
	e.onDamage(source)
	if killed {
		e.onDead()
	}
	return true
}

func (e *Entity) Cure(amount int) bool {
	if e.Health == nil || e.removed {
		return false
	}
	return e.Health.Cure(amount)
}

// Kill is unconditional lethal damage, used when falling out of the world.
func (e *Entity) Kill() bool {
	if e.Health == nil || e.Health.Dead() {
		return false
	}
	return e.Damage(e.Health.Current, nil, true)
}

func (e *Entity) onDamage(source *Entity) {
	l := e.lvl
	l.burst(l.catalog.Effects.Damage, e.HurtBox().Center())
	if e.Kind == KindPlayer {
		e.player.flash = e.player.spec.HurtFlashTicks
	}
	src := ""
	if source != nil {
		src = source.ID
	}
	l.log.Debug("damage",
		zap.String("entity", e.ID),
		zap.String("source", src),
		zap.Int("health", e.Health.Current))
}

func (e *Entity) onDead() {
	l := e.lvl
	e.Vel = common.Vec(0, 0)
	l.burst(l.catalog.Effects.Death, e.HurtBox().Center())
	if e.Kind == KindPlayer {
		l.startGameOver()
		return
	}
	l.log.Info("mob died", zap.String("entity", e.ID))
	l.RemoveEntity(e)
}

// onCrossBorder applies the boundary policy after movement.
func (e *Entity) onCrossBorder() {
	l := e.lvl
	b := l.boundary
	box := e.Box()
	if e.Kind == KindArrow {
		if box.Right < b.Left || box.Left > b.Right || box.Bottom < b.Top || box.Top > b.Bottom {
			l.RemoveEntity(e)
		}
		return
	}
	if box.Left < b.Left {
		e.Pos.X += b.Left - box.Left
		e.Vel.X = 0
	} else if box.Right > b.Right {
		e.Pos.X -= box.Right - b.Right
		e.Vel.X = 0
	}
	if box.Top >= b.Bottom {
		e.Kill()
	}
}

// knockback pushes target away from the attacker horizontally and sets its
// vertical speed.
func knockback(target, from *Entity, kb prefabs.KnockbackSpec) {
	dir := float64(common.Sign(target.Pos.X - from.Pos.X))
	if dir == 0 {
		dir = float64(from.Facing)
	}
	target.Vel = common.Vec(dir*kb.X, kb.Y)
	target.OnGround = false
}

// face turns e toward target.
func (e *Entity) face(target *Entity) {
	switch common.Sign(target.Pos.X - e.Pos.X) {
	case -1:
		e.Facing = FacingLeft
	case 1:
		e.Facing = FacingRight
	}
}

// accelerate eases horizontal speed toward dir*speed.
func (e *Entity) accelerate(dir int, speed, rate float64) {
	e.Vel.X = common.Approach(e.Vel.X, float64(dir)*speed, rate)
}

// pursue consults the pursuit goal and accelerates accordingly.
func (e *Entity) pursue(target *Entity, speed, rate float64) {
	e.accelerate(e.pursuit.Decide(e.lvl, e, target), speed, rate)
}

// tick runs one simulation step: movement and terrain, then behaviour.
func (e *Entity) tick() {
	if e.removed || (e.Health != nil && e.Health.Dead()) {
		return
	}
	e.move()
	if e.removed || (e.Health != nil && e.Health.Dead()) {
		return
	}
	switch e.Kind {
	case KindPlayer:
		e.tickPlayer()
	case KindScout:
		e.tickScout()
	case KindArcher:
		e.tickArcher()
	case KindWitch:
		e.tickWitch()
	case KindArrow:
		e.tickArrow()
	}
}

package obj

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func airborneLevel(t *testing.T) *Level {
	return newTestLevel(t,
		"...",
		".P.",
		"...",
		"...",
		"...",
		"...",
		"###",
	)
}

func TestCoyoteJump(t *testing.T) {
	tests := []struct {
		airTicks int
		jumps    bool
	}{
		{airTicks: 0, jumps: true},
		{airTicks: 2, jumps: true},
		{airTicks: 3, jumps: true},
		{airTicks: 4, jumps: false},
	}
	for _, tt := range tests {
		l := airborneLevel(t)
		p := l.Player()
		p.player.airTicks = tt.airTicks
		l.HandleCommand(CommandJump, EdgeDown)
		l.Tick()
		if tt.jumps {
			assert.Equal(t, -p.player.spec.JumpSpeed, p.Vel.Y, "airTicks=%d", tt.airTicks)
		} else {
			assert.Equal(t, Gravity, p.Vel.Y, "airTicks=%d", tt.airTicks)
		}
	}
}

func TestJumpBufferAndCut(t *testing.T) {
	l := newTestLevel(t,
		"...",
		".P.",
		"###",
	)
	p := l.Player()
	spec := p.player.spec

	l.HandleCommand(CommandJump, EdgeDown)
	l.Tick()
	require.Equal(t, -spec.JumpSpeed, p.Vel.Y)

	l.HandleCommand(CommandJump, EdgeUp)
	l.Tick()
	assert.InDelta(t, (-spec.JumpSpeed+Gravity)*spec.JumpCut, p.Vel.Y, 1e-9)

	l.HandleCommand(CommandJump, EdgeDown)
	l.Tick()
	assert.Greater(t, p.Vel.Y, -spec.JumpSpeed, "no jump while airborne past coyote time")
}

func TestJumpPressBufferedBeforeLanding(t *testing.T) {
	l := newTestLevel(t,
		".P.",
		"...",
		"###",
	)
	p := l.Player()
	for i := 0; i < 60; i++ {
		if p.Pos.Y >= 27 && !p.OnGround {
			break
		}
		l.Tick()
	}
	require.False(t, p.OnGround)
	p.player.airTicks = 10
	l.HandleCommand(CommandJump, EdgeDown)
	for i := 0; i < p.player.spec.JumpBuffer && p.Vel.Y >= 0; i++ {
		l.Tick()
	}
	assert.Equal(t, -p.player.spec.JumpSpeed, p.Vel.Y)
}

func TestRepeatEdgesAreIgnored(t *testing.T) {
	l := airborneLevel(t)
	p := l.Player()
	l.HandleCommand(CommandJump, EdgeRepeat)
	assert.Equal(t, noInput, p.player.jumpPressed)
	assert.True(t, l.held(CommandJump))
	l.HandleCommand(CommandJump, EdgeUp)
	assert.False(t, l.held(CommandJump))
}

func TestSlashProbesOppositeDirection(t *testing.T) {
	l := newTestLevel(t,
		"......",
		"..sP..",
		"######",
	)
	p := l.Player()
	scout := firstOf(l, KindScout)
	require.Equal(t, FacingRight, p.Facing)

	l.HandleCommand(CommandMelee, EdgeDown)
	l.Tick()
	assert.Equal(t, FacingLeft, p.Facing, "turned toward the only target")
	assert.Equal(t, scout.Health.Max-1, scout.Health.Current)
	assert.Less(t, scout.Vel.X, 0.0, "knocked away from the player")
	assert.Equal(t, playerSlash, p.player.fsm.Current())
}

func TestSlashWithoutTargetsKeepsFacing(t *testing.T) {
	l := newTestLevel(t,
		"......",
		".P....",
		"######",
	)
	p := l.Player()
	l.HandleCommand(CommandMelee, EdgeDown)
	l.Tick()
	assert.Equal(t, FacingRight, p.Facing)
	assert.Equal(t, p.player.spec.MeleeCooldown, p.player.meleeCooldown)

	l.HandleCommand(CommandMelee, EdgeUp)
	l.HandleCommand(CommandMelee, EdgeDown)
	l.Tick()
	assert.Equal(t, p.player.spec.MeleeCooldown-1, p.player.meleeCooldown, "cooldown blocks a second swing")
}

func TestDiveAttack(t *testing.T) {
	l := newTestLevel(t,
		"......",
		"..P...",
		"......",
		"..s...",
		"######",
	)
	p := l.Player()
	scout := firstOf(l, KindScout)
	p.Pos = scout.Pos
	p.Pos.Y -= 14

	l.HandleCommand(CommandDown, EdgeDown)
	l.HandleCommand(CommandMelee, EdgeDown)
	l.Tick()
	assert.Equal(t, scout.Health.Max-1, scout.Health.Current)
	assert.Equal(t, scout.Health.ImmunityWindow, scout.Health.ImmuneTicks)
	assert.Equal(t, -p.player.spec.DiveBounce, p.Vel.Y)
	assert.Equal(t, playerDive, p.player.fsm.Current())
}

func TestDiveFromGround(t *testing.T) {
	l := newTestLevel(t,
		"......",
		"..P...",
		"######",
	)
	p := l.Player()
	tickN(l, 10)
	require.True(t, p.OnGround)

	l.HandleCommand(CommandDown, EdgeDown)
	l.HandleCommand(CommandMelee, EdgeDown)
	l.Tick()
	assert.Equal(t, playerDive, p.player.fsm.Current())
	assert.True(t, p.OnGround)
	assert.Zero(t, p.Vel.Y, "no bounce without a target")
}

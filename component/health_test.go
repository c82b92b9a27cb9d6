package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthDamageScenario(t *testing.T) {
	h := NewHealth(3, 0)

	applied, killed := h.ApplyDamage(5, false)
	assert.True(t, applied)
	assert.True(t, killed)
	assert.Equal(t, 0, h.Current)
	assert.True(t, h.Dead())

	applied, killed = h.ApplyDamage(1, true)
	assert.False(t, applied)
	assert.False(t, killed)
	assert.False(t, h.Cure(2), "dead entities cannot be cured")
	assert.Equal(t, 0, h.Current)
}

func TestHealthImmunity(t *testing.T) {
	h := NewHealth(5, 2)

	applied, _ := h.ApplyDamage(1, false)
	assert.True(t, applied)
	assert.Equal(t, 2, h.ImmuneTicks)

	applied, _ = h.ApplyDamage(1, false)
	assert.False(t, applied, "immune after a hit")

	applied, _ = h.ApplyDamage(1, true)
	assert.True(t, applied, "evenIfInvincible bypasses immunity")
	assert.Equal(t, 3, h.Current)

	h.Tick()
	h.Tick()
	h.Tick()
	assert.Equal(t, 0, h.ImmuneTicks)

	h.Invincible = true
	applied, _ = h.ApplyDamage(1, false)
	assert.False(t, applied)
}

func TestHealthRejectsNonPositive(t *testing.T) {
	h := NewHealth(3, 0)
	applied, _ := h.ApplyDamage(0, true)
	assert.False(t, applied)
	assert.False(t, h.Cure(0))
	assert.False(t, h.Cure(1), "already full")
}

func TestHealthCureCaps(t *testing.T) {
	h := NewHealth(4, 0)
	h.ApplyDamage(3, false)
	assert.True(t, h.Cure(10))
	assert.Equal(t, 4, h.Current)
}

func TestHealthBoundsProperty(t *testing.T) {
	h := NewHealth(6, 1)
	ops := []int{2, -1, 3, -5, 1, 4, -2, 9}
	for _, op := range ops {
		if op > 0 {
			h.ApplyDamage(op, op%2 == 0)
		} else {
			h.Cure(-op)
		}
		h.Tick()
		assert.GreaterOrEqual(t, h.Current, 0)
		assert.LessOrEqual(t, h.Current, h.Max)
		assert.GreaterOrEqual(t, h.ImmuneTicks, 0)
	}
	assert.True(t, h.Dead())
}

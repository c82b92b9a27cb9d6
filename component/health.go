package component

// Health tracks hit points and the post-hurt immunity window for anything
// that can take damage. Death is one-way.
type Health struct {
	Max            int
	Current        int
	Invincible     bool
	ImmuneTicks    int
	ImmunityWindow int

	dead bool
}

// NewHealth creates a Health component with max/current initialized.
func NewHealth(max, immunityWindow int) *Health {
	if max <= 0 {
		max = 1
	}
	if immunityWindow < 0 {
		immunityWindow = 0
	}
	return &Health{Max: max, Current: max, ImmunityWindow: immunityWindow}
}

// IsAlive reports whether the entity is alive.
func (h *Health) IsAlive() bool {
	return h != nil && !h.dead
}

func (h *Health) Dead() bool {
	return h != nil && h.dead
}

// Immune reports whether ordinary damage would be rejected right now.
func (h *Health) Immune() bool {
	return h != nil && (h.Invincible || h.ImmuneTicks > 0)
}

// ApplyDamage subtracts amount unless the target is dead or immune.
// evenIfInvincible bypasses immunity. killed is true only on the hit that
// brings Current to zero.
func (h *Health) ApplyDamage(amount int, evenIfInvincible bool) (applied, killed bool) {
	if h == nil || h.dead || amount <= 0 {
		return false, false
	}
	if h.Immune() && !evenIfInvincible {
		return false, false
	}
	h.Current -= amount
	if h.Current <= 0 {
		h.Current = 0
		h.dead = true
		killed = true
	}
	h.ImmuneTicks = h.ImmunityWindow
	return true, killed
}

// Cure restores health up to Max. Returns false if nothing changed.
func (h *Health) Cure(amount int) bool {
	if h == nil || h.dead || amount <= 0 || h.Current >= h.Max {
		return false
	}
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
	return true
}

// Tick advances the immunity timer by one tick.
func (h *Health) Tick() {
	if h == nil || h.ImmuneTicks <= 0 {
		return
	}
	h.ImmuneTicks--
}

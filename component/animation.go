package component

// Animation is a resumable frame sequencer. Each named visual frame is shown
// for TicksPerFrame steps; the step index is what callers address with
// SetFrame and what the FSM uses for wind-up bookkeeping.
type Animation struct {
	Frames        []string
	TicksPerFrame int
	Loop          bool

	step int
}

// NewAnimation creates an Animation. ticksPerFrame defaults to 1 if <= 0.
func NewAnimation(frames []string, ticksPerFrame int, loop bool) *Animation {
	if ticksPerFrame <= 0 {
		ticksPerFrame = 1
	}
	return &Animation{Frames: frames, TicksPerFrame: ticksPerFrame, Loop: loop}
}

// Len returns the number of steps in one pass.
func (a *Animation) Len() int {
	if a == nil {
		return 0
	}
	return len(a.Frames) * a.ticksPerFrame()
}

// Index returns the current step.
func (a *Animation) Index() int {
	if a == nil {
		return 0
	}
	return a.step
}

// Frame returns the visual frame id for the current step.
func (a *Animation) Frame() string {
	if a == nil || len(a.Frames) == 0 {
		return ""
	}
	return a.Frames[a.step/a.ticksPerFrame()]
}

// Update advances one step. It reports true when a finite animation has run
// past its last step (it then keeps showing the last frame) or when a looping
// animation wraps.
func (a *Animation) Update() bool {
	n := a.Len()
	if n == 0 {
		return true
	}
	a.step++
	if a.step < n {
		return false
	}
	if a.Loop {
		a.step = 0
	} else {
		a.step = n - 1
	}
	return true
}

// Reset sets the animation back to the first step.
func (a *Animation) Reset() {
	if a == nil {
		return
	}
	a.step = 0
}

// SetFrame jumps to a specific step, clamped to the animation length.
func (a *Animation) SetFrame(i int) {
	if a == nil {
		return
	}
	n := a.Len()
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	a.step = i
}

// Clone returns an independent copy positioned at the same step.
func (a *Animation) Clone() *Animation {
	if a == nil {
		return nil
	}
	c := *a
	c.Frames = append([]string(nil), a.Frames...)
	return &c
}

func (a *Animation) ticksPerFrame() int {
	if a.TicksPerFrame <= 0 {
		return 1
	}
	return a.TicksPerFrame
}

package system

import (
	"context"
	"sync/atomic"
	"time"
)

// TickRate is the simulation's fixed step frequency.
const TickRate = 60

// Loop drives a tick function at a fixed rate. Start and Stop may be called
// any number of times; only the first call of a run changes anything.
type Loop struct {
	Interval time.Duration
	Tick     func()

	running atomic.Bool
	ticks   atomic.Int64
}

func NewLoop(tick func()) *Loop {
	return &Loop{Interval: time.Second / TickRate, Tick: tick}
}

// Start reports whether the loop was stopped before the call.
func (l *Loop) Start() bool {
	return l.running.CompareAndSwap(false, true)
}

// Stop reports whether the loop was running before the call.
func (l *Loop) Stop() bool {
	return l.running.CompareAndSwap(true, false)
}

func (l *Loop) Running() bool {
	return l.running.Load()
}

// Ticks counts steps taken since the loop was created.
func (l *Loop) Ticks() int64 {
	return l.ticks.Load()
}

// Step runs one tick if the loop is running. Hosts that own a frame callback
// call it directly instead of using Run.
func (l *Loop) Step() bool {
	if !l.running.Load() || l.Tick == nil {
		return false
	}
	l.Tick()
	l.ticks.Add(1)
	return true
}

// Run steps the loop on a ticker until ctx is done. Ticks only happen while
// the loop is started.
func (l *Loop) Run(ctx context.Context) error {
	interval := l.Interval
	if interval <= 0 {
		interval = time.Second / TickRate
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			l.Step()
		}
	}
}

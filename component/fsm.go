package component

import (
	"fmt"

	"github.com/pkg/errors"
)

// State binds an animation to the state that follows once it completes.
type State[S comparable] struct {
	Next      S
	Animation *Animation
}

// StateMachine is a table-driven FSM whose transitions are paced by
// animations. Behaviour code re-asserts states with Set; Next runs once per
// tick after behaviour.
type StateMachine[S comparable] struct {
	table       map[S]*State[S]
	current     S
	interrupted bool
}

// NewStateMachine validates the table and clones every animation so machines
// built from the same table never share playback state.
func NewStateMachine[S comparable](initial S, table map[S]State[S]) (*StateMachine[S], error) {
	if len(table) == 0 {
		return nil, errors.New("fsm: empty state table")
	}
	if _, ok := table[initial]; !ok {
		return nil, errors.Errorf("fsm: initial state %v not in table", initial)
	}
	m := &StateMachine[S]{table: make(map[S]*State[S], len(table)), current: initial}
	for s, st := range table {
		if st.Animation == nil || st.Animation.Len() == 0 {
			return nil, errors.Errorf("fsm: state %v has no animation", s)
		}
		if _, ok := table[st.Next]; !ok {
			return nil, errors.Errorf("fsm: state %v transitions to unknown state %v", s, st.Next)
		}
		m.table[s] = &State[S]{Next: st.Next, Animation: st.Animation.Clone()}
	}
	m.table[initial].Animation.Reset()
	return m, nil
}

func (m *StateMachine[S]) Current() S {
	return m.current
}

func (m *StateMachine[S]) Animation() *Animation {
	return m.table[m.current].Animation
}

// Frame is the visual frame id of the current state's animation.
func (m *StateMachine[S]) Frame() string {
	return m.Animation().Frame()
}

// Interrupted reports whether a Set is pending consumption by Next.
func (m *StateMachine[S]) Interrupted() bool {
	return m.interrupted
}

// Set switches to state at animation step index. With interrupt set, the
// following Next leaves the animation where it is.
func (m *StateMachine[S]) Set(state S, index int, interrupt bool) {
	st, ok := m.table[state]
	if !ok {
		panic(fmt.Sprintf("fsm: unknown state %v", state))
	}
	m.current = state
	st.Animation.Reset()
	st.Animation.SetFrame(index)
	if interrupt {
		m.interrupted = true
	}
}

// Next advances the current animation and follows the transition once it
// completes. A pending interrupt is consumed instead.
func (m *StateMachine[S]) Next() {
	if m.interrupted {
		m.interrupted = false
		return
	}
	st := m.table[m.current]
	if !st.Animation.Update() {
		return
	}
	next := m.table[st.Next]
	m.current = st.Next
	next.Animation.Reset()
}

// Frames lists every frame id referenced by the table.
func (m *StateMachine[S]) Frames() []string {
	var out []string
	for _, st := range m.table {
		out = append(out, st.Animation.Frames...)
	}
	return out
}

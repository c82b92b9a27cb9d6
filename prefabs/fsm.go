package prefabs

import (
	"github.com/milk9111/hollowkeep/component"
	"github.com/pkg/errors"
)

// BuildFSM turns a species' fsm block into a state machine. names maps the
// yaml state keys onto the caller's state type; every key must be mapped.
func BuildFSM[S comparable](spec FSMSpec, names map[string]S) (*component.StateMachine[S], error) {
	initial, ok := names[spec.Initial]
	if !ok {
		return nil, errors.Errorf("fsm: unknown initial state %q", spec.Initial)
	}
	table := make(map[S]component.State[S], len(spec.States))
	for key, st := range spec.States {
		s, ok := names[key]
		if !ok {
			return nil, errors.Errorf("fsm: unknown state %q", key)
		}
		next, ok := names[st.Next]
		if !ok {
			return nil, errors.Errorf("fsm: state %q: unknown next %q", key, st.Next)
		}
		table[s] = component.State[S]{
			Next:      next,
			Animation: component.NewAnimation(st.Frames, st.TicksPerFrame, st.Loop),
		}
	}
	for key, s := range names {
		if _, ok := table[s]; !ok {
			return nil, errors.Errorf("fsm: state %q missing from table", key)
		}
	}
	return component.NewStateMachine(initial, table)
}

package system

import (
	"embed"
	"slices"

	"github.com/milk9111/hollowkeep/obj"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed inputs/*.yaml
var InputsFS embed.FS

// InputEvent is one scripted command edge.
type InputEvent struct {
	Tick    int    `yaml:"tick"`
	Command string `yaml:"command"`
	Edge    string `yaml:"edge"`
}

type scriptedEdge struct {
	tick int
	cmd  obj.Command
	edge obj.Edge
}

// InputScript replays command edges against a level, for headless runs and
// determinism checks. With a positive period the events repeat forever.
type InputScript struct {
	period int
	events []scriptedEdge
}

type inputScriptFile struct {
	Period int          `yaml:"period"`
	Events []InputEvent `yaml:"events"`
}

func ParseInputScript(data []byte) (*InputScript, error) {
	var f inputScriptFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "system: parse input script")
	}
	if f.Period < 0 {
		return nil, errors.New("system: input script period must not be negative")
	}
	s := &InputScript{period: f.Period}
	for i, ev := range f.Events {
		cmd, ok := obj.ParseCommand(ev.Command)
		if !ok {
			return nil, errors.Errorf("system: input event %d: unknown command %q", i, ev.Command)
		}
		edge, ok := obj.ParseEdge(ev.Edge)
		if !ok {
			return nil, errors.Errorf("system: input event %d: unknown edge %q", i, ev.Edge)
		}
		if ev.Tick < 0 || (f.Period > 0 && ev.Tick >= f.Period) {
			return nil, errors.Errorf("system: input event %d: tick %d out of range", i, ev.Tick)
		}
		s.events = append(s.events, scriptedEdge{tick: ev.Tick, cmd: cmd, edge: edge})
	}
	slices.SortStableFunc(s.events, func(a, b scriptedEdge) int { return a.tick - b.tick })
	return s, nil
}

// LoadInputScript reads one of the embedded scripts by basename.
func LoadInputScript(name string) (*InputScript, error) {
	data, err := InputsFS.ReadFile("inputs/" + name + ".yaml")
	if err != nil {
		return nil, errors.Wrapf(err, "system: input script %s", name)
	}
	return ParseInputScript(data)
}

// Apply reports every edge scheduled for the level's current tick.
func (s *InputScript) Apply(l *obj.Level) int {
	t := l.Now()
	if s.period > 0 {
		t %= s.period
	}
	n := 0
	for _, ev := range s.events {
		if ev.tick > t {
			break
		}
		if ev.tick == t {
			l.HandleCommand(ev.cmd, ev.edge)
			n++
		}
	}
	return n
}

// Done is true once a one-shot script has nothing left to replay at tick.
func (s *InputScript) Done(tick int) bool {
	return s.period == 0 && (len(s.events) == 0 || tick > s.events[len(s.events)-1].tick)
}

package obj

// Command is an input abstraction one level above raw keys.
type Command int

const (
	CommandLeft Command = iota
	CommandRight
	CommandUp
	CommandDown
	CommandJump
	CommandMelee
)

var commandNames = [...]string{"left", "right", "up", "down", "jump", "melee"}

func (c Command) String() string {
	if c < 0 || int(c) >= len(commandNames) {
		return "unknown"
	}
	return commandNames[c]
}

func ParseCommand(s string) (Command, bool) {
	for i, n := range commandNames {
		if n == s {
			return Command(i), true
		}
	}
	return 0, false
}

// Edge is the transition a host reports for a command.
type Edge int

const (
	EdgeDown Edge = iota
	EdgeUp
	EdgeRepeat
)

var edgeNames = [...]string{"down", "up", "repeat"}

func (e Edge) String() string {
	if e < 0 || int(e) >= len(edgeNames) {
		return "unknown"
	}
	return edgeNames[e]
}

func ParseEdge(s string) (Edge, bool) {
	for i, n := range edgeNames {
		if n == s {
			return Edge(i), true
		}
	}
	return 0, false
}

// Controls answers whether a command is currently held.
type Controls interface {
	Held(Command) bool
}

// CommandState is a Controls built purely from reported edges, for hosts that
// cannot poll key state directly.
type CommandState struct {
	held [len(commandNames)]bool
}

func (s *CommandState) Apply(cmd Command, edge Edge) {
	if cmd < 0 || int(cmd) >= len(s.held) {
		return
	}
	switch edge {
	case EdgeDown, EdgeRepeat:
		s.held[cmd] = true
	case EdgeUp:
		s.held[cmd] = false
	}
}

func (s *CommandState) Held(cmd Command) bool {
	if s == nil || cmd < 0 || int(cmd) >= len(s.held) {
		return false
	}
	return s.held[cmd]
}

// Release drops every held command.
func (s *CommandState) Release() {
	s.held = [len(commandNames)]bool{}
}

// HandleCommand records input edges against the current tick so the player
// can buffer presses with tick precision.
func (l *Level) HandleCommand(cmd Command, edge Edge) {
	if s, ok := l.controls.(*CommandState); ok {
		s.Apply(cmd, edge)
	}
	p := l.player
	if p == nil || p.player == nil || edge == EdgeRepeat {
		return
	}
	now := l.Now()
	switch cmd {
	case CommandJump:
		if edge == EdgeDown {
			p.player.jumpPressed = now
		} else {
			p.player.jumpReleased = now
		}
	case CommandMelee:
		if edge == EdgeDown {
			p.player.meleePressed = now
		}
	}
}

func (l *Level) held(cmd Command) bool {
	return l.controls != nil && l.controls.Held(cmd)
}

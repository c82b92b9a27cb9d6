package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/hollowkeep/obj"
)

// releaseAfter is how many ticks a command stays held after its last key
// event. Terminals report presses and auto-repeat but never releases.
const releaseAfter = 12

// keyCommand maps a key event to a command.
func keyCommand(ev *tcell.EventKey) (obj.Command, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return obj.CommandLeft, true
	case tcell.KeyRight:
		return obj.CommandRight, true
	case tcell.KeyUp:
		return obj.CommandUp, true
	case tcell.KeyDown:
		return obj.CommandDown, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'h':
			return obj.CommandLeft, true
		case 'd', 'l':
			return obj.CommandRight, true
		case 'w', 'k':
			return obj.CommandUp, true
		case 's', 'j':
			return obj.CommandDown, true
		case ' ', 'z':
			return obj.CommandJump, true
		case 'x', 'f':
			return obj.CommandMelee, true
		}
	}
	return 0, false
}

// keyState synthesizes command edges from press-only key events.
type keyState struct {
	lastSeen map[obj.Command]int
}

func newKeyState() *keyState {
	return &keyState{lastSeen: make(map[obj.Command]int)}
}

// press reports a key event seen at tick now.
func (k *keyState) press(l *obj.Level, cmd obj.Command, now int) {
	if _, held := k.lastSeen[cmd]; held {
		l.HandleCommand(cmd, obj.EdgeRepeat)
	} else {
		l.HandleCommand(cmd, obj.EdgeDown)
	}
	k.lastSeen[cmd] = now
}

// expire releases commands with no key event for releaseAfter ticks.
func (k *keyState) expire(l *obj.Level, now int) {
	for cmd, seen := range k.lastSeen {
		if now-seen >= releaseAfter {
			l.HandleCommand(cmd, obj.EdgeUp)
			delete(k.lastSeen, cmd)
		}
	}
}

func (k *keyState) reset() {
	clear(k.lastSeen)
}

package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/hollowkeep/obj"
)

const stickThreshold = 0.3

var keyBindings = map[obj.Command][]ebiten.Key{
	obj.CommandLeft:  {ebiten.KeyA, ebiten.KeyLeft},
	obj.CommandRight: {ebiten.KeyD, ebiten.KeyRight},
	obj.CommandUp:    {ebiten.KeyW, ebiten.KeyUp},
	obj.CommandDown:  {ebiten.KeyS, ebiten.KeyDown},
	obj.CommandJump:  {ebiten.KeySpace},
	obj.CommandMelee: {ebiten.KeyJ, ebiten.KeyX},
}

var padBindings = map[obj.Command]ebiten.StandardGamepadButton{
	obj.CommandLeft:  ebiten.StandardGamepadButtonLeftLeft,
	obj.CommandRight: ebiten.StandardGamepadButtonLeftRight,
	obj.CommandUp:    ebiten.StandardGamepadButtonLeftTop,
	obj.CommandDown:  ebiten.StandardGamepadButtonLeftBottom,
	obj.CommandJump:  ebiten.StandardGamepadButtonRightBottom,
	obj.CommandMelee: ebiten.StandardGamepadButtonRightLeft,
}

var commands = []obj.Command{
	obj.CommandLeft, obj.CommandRight, obj.CommandUp,
	obj.CommandDown, obj.CommandJump, obj.CommandMelee,
}

// Input turns keyboard and gamepad state into command edges. Keys and pad
// buttons bound to the same command merge, so releasing one of two held
// bindings does not release the command.
type Input struct {
	held map[obj.Command]bool
}

func NewInput() *Input {
	return &Input{held: make(map[obj.Command]bool)}
}

// Reset forgets held commands so anything still held is reported again.
func (i *Input) Reset() {
	clear(i.held)
}

// Update polls devices and reports edges to the level.
func (i *Input) Update(l *obj.Level) {
	pads := ebiten.AppendGamepadIDs(nil)
	for _, cmd := range commands {
		now := i.pressed(cmd, pads)
		switch {
		case now && !i.held[cmd]:
			l.HandleCommand(cmd, obj.EdgeDown)
		case !now && i.held[cmd]:
			l.HandleCommand(cmd, obj.EdgeUp)
		}
		i.held[cmd] = now
	}
}

func (i *Input) pressed(cmd obj.Command, pads []ebiten.GamepadID) bool {
	for _, k := range keyBindings[cmd] {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	for _, id := range pads {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		if ebiten.IsStandardGamepadButtonPressed(id, padBindings[cmd]) {
			return true
		}
		x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		switch {
		case cmd == obj.CommandLeft && x < -stickThreshold,
			cmd == obj.CommandRight && x > stickThreshold,
			cmd == obj.CommandUp && y < -stickThreshold,
			cmd == obj.CommandDown && y > stickThreshold:
			return true
		}
	}
	return false
}

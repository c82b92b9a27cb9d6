package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/hollowkeep/assets"
	"github.com/milk9111/hollowkeep/common"
	"github.com/milk9111/hollowkeep/levels"
	"github.com/milk9111/hollowkeep/obj"
	"github.com/milk9111/hollowkeep/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

func simScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	t.Cleanup(s.Fini)
	s.SetSize(80, 24)
	return s
}

func TestDrawFrameCoversCells(t *testing.T) {
	s := simScreen(t)
	r := &cellRenderer{screen: s}

	r.DrawFrame(assets.Frame{Name: "x", Glyph: '#', Color: colornames.Red}, common.NewAABB(8, 16, 24, 32), false)
	for _, x := range []int{1, 2} {
		mainc, _, _, _ := s.GetContent(x, 1)
		assert.Equal(t, '#', mainc)
	}
	mainc, _, _, _ := s.GetContent(3, 1)
	assert.NotEqual(t, '#', mainc)

	r.DrawFrame(assets.Frame{Name: "dot", Glyph: '*'}, common.NewAABB(41, 3, 42, 4), false)
	mainc, _, _, _ = s.GetContent(5, 0)
	assert.Equal(t, '*', mainc, "tiny boxes still take a cell")
}

func TestKeyStateSynthesizesRelease(t *testing.T) {
	controls := &obj.CommandState{}
	l, err := obj.NewLevel(levels.FromRows("P...", "####"), obj.Options{Controls: controls})
	require.NoError(t, err)
	k := newKeyState()

	k.press(l, obj.CommandRight, 0)
	assert.True(t, controls.Held(obj.CommandRight))
	k.press(l, obj.CommandRight, 5)
	k.expire(l, 5+releaseAfter-1)
	assert.True(t, controls.Held(obj.CommandRight))
	k.expire(l, 5+releaseAfter)
	assert.False(t, controls.Held(obj.CommandRight))
}

func TestKeyCommand(t *testing.T) {
	cmd, ok := keyCommand(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	require.True(t, ok)
	assert.Equal(t, obj.CommandJump, cmd)
	cmd, ok = keyCommand(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	require.True(t, ok)
	assert.Equal(t, obj.CommandLeft, cmd)
	_, ok = keyCommand(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone))
	assert.False(t, ok)
}

func TestGameDrawsPlayer(t *testing.T) {
	s := simScreen(t)
	w, err := system.NewWorld("training", system.Options{})
	require.NoError(t, err)
	g := newGame(w, s, zap.NewNop(), false)
	g.loop.Start()
	g.loop.Step()
	g.draw()

	found := false
	for y := 0; y < 24 && !found; y++ {
		for x := 0; x < 80; x++ {
			if mainc, _, _, _ := s.GetContent(x, y); mainc == '@' {
				found = true
				break
			}
		}
	}
	assert.True(t, found)
	assert.True(t, g.handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

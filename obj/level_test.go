package obj

import (
	"testing"

	"github.com/milk9111/hollowkeep/assets"
	"github.com/milk9111/hollowkeep/common"
	"github.com/milk9111/hollowkeep/levels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triggerLevel(t *testing.T, triggers ...levels.Trigger) (*Level, error) {
	data := levels.FromRows(
		"..........",
		".P.....s..",
		"##########",
	)
	data.Triggers = triggers
	return NewLevel(data, Options{Catalog: testCatalog(t)})
}

func TestNewLevelRejectsBadTriggers(t *testing.T) {
	tests := []struct {
		name string
		trig levels.Trigger
	}{
		{"unknown condition", levels.Trigger{ID: "a", Condition: levels.Condition{Type: "moon_phase"}}},
		{"script syntax", levels.Trigger{ID: "a", Condition: levels.Condition{Type: "script", Source: "check := func(w) { return w.tick >"}}},
		{"script without check", levels.Trigger{ID: "a", Condition: levels.Condition{Type: "script", Source: "x := 1"}}},
		{"missing area", levels.Trigger{ID: "a", Condition: levels.Condition{Type: "enter_area"}}},
		{"unknown action", levels.Trigger{
			ID:        "a",
			Condition: levels.Condition{Type: "no_mobs_with_tag", Tag: "x"},
			Actions:   []levels.Action{{Type: "explode"}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := triggerLevel(t, tt.trig)
			assert.Error(t, err)
		})
	}
}

func TestNewLevelSkipsBadEntities(t *testing.T) {
	data := levels.FromRows(
		"....",
		".P..",
		"####",
	)
	data.Entities = append(data.Entities,
		levels.Entity{Type: "dragon", X: 2, Y: 1},
		levels.Entity{Type: "scout", X: 3, Y: 1, Props: map[string]any{"facing": "up"}},
		levels.Entity{Type: "scout", X: 3, Y: 1, Props: map[string]any{"health": 7, "facing": "left", "tags": []any{"guard"}}},
	)
	l, err := NewLevel(data, Options{Catalog: testCatalog(t)})
	require.NoError(t, err)
	require.Len(t, l.Entities(), 2)

	s := firstOf(l, KindScout)
	assert.Equal(t, 7, s.Health.Max)
	assert.Equal(t, FacingLeft, s.Facing)
	assert.True(t, s.HasTag("guard"))
	assert.Equal(t, "scout-1", s.ID)
}

func TestMissingFramePanics(t *testing.T) {
	c := *testCatalog(t)
	c.Arrow.Frame = "no_such_frame"
	assert.Panics(t, func() {
		_, _ = NewLevel(levels.FromRows("P.", "##"), Options{Catalog: &c, Assets: assets.NewRegistry()})
	})
}

func TestScriptTrigger(t *testing.T) {
	l, err := triggerLevel(t, levels.Trigger{
		ID:        "late",
		Condition: levels.Condition{Type: "script", Source: "check := func(w) { return w.tick >= 3 && w.mobs == 1 }"},
		Actions:   []levels.Action{{Type: "set_boundary", Area: &levels.Rect{X: 0, Y: 0, W: 5, H: 3}}},
	})
	require.NoError(t, err)
	full := l.Boundary()

	tickN(l, 3)
	assert.Equal(t, full, l.Boundary())
	l.Tick()
	assert.Equal(t, common.TileRect(0, 0, 5, 3), l.Boundary())
}

func TestScriptTriggerFromFile(t *testing.T) {
	_, err := triggerLevel(t, levels.Trigger{
		ID:        "file",
		Condition: levels.Condition{Type: "script", File: "arena_cleared.tengo"},
	})
	assert.NoError(t, err)

	_, err = triggerLevel(t, levels.Trigger{
		ID:        "file",
		Condition: levels.Condition{Type: "script", File: "missing.tengo"},
	})
	assert.Error(t, err)
}

func TestEnterAreaSpawnsOnce(t *testing.T) {
	l, err := triggerLevel(t, levels.Trigger{
		ID:        "ambush",
		Condition: levels.Condition{Type: "enter_area", Area: &levels.Rect{X: 0, Y: 0, W: 3, H: 3}},
		Actions: []levels.Action{{Type: "spawn", Entity: &levels.Entity{
			Type: "scout", X: 5, Y: 1, Props: map[string]any{"tags": []any{"ambush"}},
		}}},
	})
	require.NoError(t, err)

	l.Tick()
	require.Len(t, l.EntitiesWithTag("ambush"), 1)
	tickN(l, 5)
	assert.Len(t, l.EntitiesWithTag("ambush"), 1, "non-repeating triggers fire once")
}

func TestRepeatingTriggerFiresOnRisingEdge(t *testing.T) {
	l, err := triggerLevel(t, levels.Trigger{
		ID:        "spring",
		Repeat:    true,
		Condition: levels.Condition{Type: "enter_area", Area: &levels.Rect{X: 0, Y: 0, W: 3, H: 3}},
		Actions:   []levels.Action{{Type: "cure_player", Amount: 1}},
	})
	require.NoError(t, err)
	p := l.Player()
	p.Health.Current = 2

	tickN(l, 3)
	assert.Equal(t, 3, p.Health.Current, "held inside: one firing")

	p.Pos.X = TileFeet(5, 1).X
	l.Tick()
	p.Pos.X = TileFeet(1, 1).X
	l.Tick()
	assert.Equal(t, 4, p.Health.Current)
}

func TestNoMobsWithTagTrigger(t *testing.T) {
	l, err := triggerLevel(t, levels.Trigger{
		ID:        "cleared",
		Condition: levels.Condition{Type: "no_mobs_with_tag", Tag: "boss"},
		Actions:   []levels.Action{{Type: "cure_player", Amount: 5}},
	})
	require.NoError(t, err)
	p := l.Player()
	p.Health.Current = 1

	boss, err := l.Spawn(KindScout, TileFeet(8, 1), map[string]any{"tags": []string{"boss"}})
	require.NoError(t, err)
	assert.NotContains(t, l.Entities(), boss, "spawns join after the entity phase")
	assert.Len(t, l.EntitiesWithTag("boss"), 1)

	l.Tick()
	assert.Contains(t, l.Entities(), boss)
	assert.Equal(t, 1, p.Health.Current)

	boss.Kill()
	l.Tick()
	l.Tick()
	assert.Equal(t, p.Health.Max, p.Health.Current)
	assert.NotContains(t, l.Entities(), boss)
}

func TestDamageScenario(t *testing.T) {
	l, err := triggerLevel(t)
	require.NoError(t, err)
	s := firstOf(l, KindScout)
	require.Equal(t, 3, s.Health.Current)

	assert.True(t, s.Damage(5, nil, false))
	assert.Equal(t, 0, s.Health.Current)
	assert.True(t, s.Health.Dead())
	assert.True(t, s.Removed())
	assert.False(t, s.Damage(1, nil, true), "no further damage once dead")
	assert.False(t, s.Cure(1))
	assert.NotEmpty(t, l.Particles(), "death leaves particles")

	l.Tick()
	assert.Nil(t, firstOf(l, KindScout))
}

func TestSpawnRejectsPlayerAndArrow(t *testing.T) {
	l, err := triggerLevel(t)
	require.NoError(t, err)
	_, err = l.Spawn(KindPlayer, TileFeet(2, 1), nil)
	assert.Error(t, err)
	_, err = l.Spawn(KindArrow, TileFeet(2, 1), nil)
	assert.Error(t, err)
}

func TestQueries(t *testing.T) {
	data := levels.FromRows(
		"..T.......",
		".P.....s..",
		"##########",
	)
	l, err := NewLevel(data, Options{Catalog: testCatalog(t)})
	require.NoError(t, err)

	in := l.EntitiesInArea(common.TileRect(0, 0, 3, 3))
	require.Len(t, in, 1)
	assert.Equal(t, KindPlayer, in[0].Kind)
	assert.Len(t, l.EntitiesInArea(common.TileRect(0, 0, 10, 3)), 2)

	marks := l.LandmarksWithTag("teleport")
	require.Len(t, marks, 1)
	assert.Equal(t, common.TileBox(2, 0), marks[0].Box)
	assert.Empty(t, l.LandmarksWithTag("exit"))

	assert.Equal(t, 1, l.Mobs())
	assert.Nil(t, l.Terrain(-1, 0))
	assert.Nil(t, l.Terrain(10, 2))
	assert.Equal(t, TerrainGround, l.Terrain(0, 2).Kind)
}

func TestDeterministicDigest(t *testing.T) {
	run := func() uint64 {
		data, err := levels.Load("keep")
		require.NoError(t, err)
		l, err := NewLevel(data, Options{Catalog: testCatalog(t), Seed: 42})
		require.NoError(t, err)
		for i := 0; i < 900; i++ {
			switch i % 120 {
			case 0:
				l.HandleCommand(CommandRight, EdgeDown)
			case 30:
				l.HandleCommand(CommandJump, EdgeDown)
			case 40:
				l.HandleCommand(CommandJump, EdgeUp)
			case 60:
				l.HandleCommand(CommandMelee, EdgeDown)
			case 61:
				l.HandleCommand(CommandMelee, EdgeUp)
			case 90:
				l.HandleCommand(CommandRight, EdgeUp)
			}
			l.Tick()
		}
		return l.Digest()
	}
	assert.Equal(t, run(), run())
}

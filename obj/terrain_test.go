package obj

import (
	"testing"

	"github.com/milk9111/hollowkeep/levels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTerrainRejectsBadDescriptors(t *testing.T) {
	spec := testCatalog(t).Terrain
	_, err := NewTerrain(levels.Terrain{Type: "lava"}, 0, 0, spec)
	assert.Error(t, err)
	_, err = NewTerrain(levels.Terrain{Type: "ground", Permanent: true}, 0, 0, spec)
	assert.Error(t, err)

	cell, err := NewTerrain(levels.Terrain{Type: "spikes"}, 2, 3, spec)
	require.NoError(t, err)
	assert.False(t, cell.Solid())
	hb, ok := cell.HurtBox()
	require.True(t, ok)
	assert.Equal(t, cell.Box().Top+spec.Spikes.HurtTop, hb.Top)
}

func TestFragileCollapsePropagatesAlongRow(t *testing.T) {
	l := newTestLevel(t,
		".P.....",
		"=====#=",
		".......",
		"#######",
	)
	l.Tick()
	for x := 0; x <= 4; x++ {
		assert.True(t, l.Terrain(x, 1).Collapsing(), "cell %d", x)
		assert.Equal(t, "fragile_cracked", l.Terrain(x, 1).Frame())
	}
	assert.False(t, l.Terrain(6, 1).Collapsing(), "propagation stops at solid ground")

	tickN(l, 30)
	for x := 0; x <= 4; x++ {
		assert.True(t, l.Terrain(x, 1).Collapsed(), "cell %d", x)
		assert.False(t, l.Terrain(x, 1).Solid())
	}

	tickN(l, 200)
	for x := 0; x <= 4; x++ {
		assert.False(t, l.Terrain(x, 1).Collapsed(), "cell %d recovered", x)
	}
	assert.Equal(t, 48.0, l.Player().Pos.Y, "player fell to the floor below")
}

func TestPermanentFragileIsRemoved(t *testing.T) {
	l := newTestLevel(t,
		".P.",
		"%%%",
		"...",
		"###",
	)
	tickN(l, 31)
	for x := 0; x < 3; x++ {
		assert.Nil(t, l.Terrain(x, 1))
	}
}

func TestFragileRecoveryWaitsForEmptyArea(t *testing.T) {
	l := newTestLevel(t,
		"P...",
		"....",
		".=..",
		"####",
	)
	cell := l.Terrain(1, 2)
	cell.collapsed = true
	cell.recovering = 1

	p := l.Player()
	p.Pos = TileFeet(1, 2)
	cell.tick()
	assert.True(t, cell.Collapsed(), "blocked while occupied")

	p.Pos = TileFeet(3, 0)
	cell.tick()
	assert.False(t, cell.Collapsed())
}

func TestOnlyPlayerCollapsesFragile(t *testing.T) {
	l := newTestLevel(t,
		"P..s",
		"...=",
		"####",
	)
	tickN(l, 5)
	assert.False(t, l.Terrain(3, 1).Collapsing())
}

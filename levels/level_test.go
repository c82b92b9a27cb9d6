package levels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRows(t *testing.T) {
	l := FromRows(
		"......",
		".P.s.T",
		"##==%#",
	)
	require.NoError(t, l.Validate())
	assert.Equal(t, 6, l.Width)
	assert.Equal(t, 3, l.Height)

	require.Len(t, l.Entities, 2)
	assert.Equal(t, Entity{Type: "player", X: 1, Y: 1}, l.Entities[0])
	assert.Equal(t, Entity{Type: "scout", X: 3, Y: 1}, l.Entities[1])
	require.Len(t, l.Landmarks, 1)
	assert.Equal(t, []string{"teleport"}, l.Landmarks[0].Tags)

	_, ok := l.Cell(1, 1)
	assert.False(t, ok, "entity markers leave the cell empty")

	c, ok := l.Cell(2, 2)
	require.True(t, ok)
	assert.Equal(t, Terrain{Type: "fragile"}, c)

	c, ok = l.Cell(4, 2)
	require.True(t, ok)
	assert.True(t, c.Permanent)

	_, ok = l.Cell(9, 9)
	assert.False(t, ok)
}

func TestCellUnknownCharacter(t *testing.T) {
	l := FromRows("#?#")
	c, ok := l.Cell(1, 0)
	require.True(t, ok)
	assert.Equal(t, "?", c.Type)
}

func TestCellLegendOverride(t *testing.T) {
	l := FromRows("#x")
	l.Legend = map[string]Terrain{"x": {Type: "spikes"}, "#": {Type: "fragile"}}
	c, _ := l.Cell(0, 0)
	assert.Equal(t, "fragile", c.Type)
	c, _ = l.Cell(1, 0)
	assert.Equal(t, "spikes", c.Type)
}

func TestParseRejectsRaggedRows(t *testing.T) {
	_, err := Parse([]byte(`{"name":"bad","width":3,"height":2,"rows":["###","##"]}`))
	assert.Error(t, err)

	_, err = Parse([]byte(`{"name":"dup","width":1,"height":1,"rows":["#"],
		"triggers":[{"id":"a","condition":{"type":"enter_area"}},{"id":"a","condition":{"type":"enter_area"}}]}`))
	assert.Error(t, err)
}

func TestEmbeddedLevelsParse(t *testing.T) {
	names := Names()
	require.NotEmpty(t, names)
	for _, n := range names {
		t.Run(n, func(t *testing.T) {
			l, err := LoadLevelFromFS(n)
			require.NoError(t, err)
			assert.NotEmpty(t, l.Entities)
		})
	}
}

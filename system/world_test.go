package system

import (
	"testing"

	"github.com/milk9111/hollowkeep/obj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorld(t *testing.T) {
	w, err := NewWorld("training", Options{Seed: 3})
	require.NoError(t, err)
	require.NotNil(t, w.Level)
	assert.Equal(t, "training", w.Name())
	assert.NotNil(t, w.Level.Player())

	_, err = NewWorld("", Options{})
	assert.Error(t, err)
	_, err = NewWorld("no_such_level", Options{})
	assert.Error(t, err)
}

func TestWorldRestart(t *testing.T) {
	w, err := NewWorld("training", Options{})
	require.NoError(t, err)
	w.Controls().(*obj.CommandState).Apply(obj.CommandRight, obj.EdgeDown)
	for i := 0; i < 10; i++ {
		w.Level.Tick()
	}
	old := w.Level

	require.NoError(t, w.Restart())
	assert.NotSame(t, old, w.Level)
	assert.Equal(t, 0, w.Level.Now())
	assert.False(t, w.Controls().Held(obj.CommandRight))
}

func TestWorldLoadFailureKeepsLevel(t *testing.T) {
	w, err := NewWorld("training", Options{})
	require.NoError(t, err)
	old := w.Level

	assert.Error(t, w.Load("no_such_level"))
	assert.Same(t, old, w.Level)
	assert.Equal(t, "training", w.Name())
}

func TestReloadCatalog(t *testing.T) {
	w, err := NewWorld("training", Options{})
	require.NoError(t, err)
	lvl, cat := w.Level, w.Catalog

	require.NoError(t, w.ReloadCatalog(nil))
	assert.Same(t, cat, w.Catalog)

	require.NoError(t, w.ReloadCatalog([]string{"scout.yaml", "notes.txt"}))
	assert.NotSame(t, cat, w.Catalog)
	assert.Same(t, lvl, w.Level, "species changes keep the running level")

	w.Level.Tick()
	require.NoError(t, w.ReloadCatalog([]string{"arena_cleared.tengo"}))
	assert.NotSame(t, lvl, w.Level)
	assert.Equal(t, 0, w.Level.Now())
}

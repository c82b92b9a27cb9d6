package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(Frame{Name: "scout_idle_0", Width: 16, Height: 16, Color: colornames.Olive, Glyph: 's'})
	r.Register(Frame{Name: "arrow", Width: 8, Height: 2, Color: colornames.Wheat, Glyph: '-'})

	f, ok := r.Frame("arrow")
	require.True(t, ok)
	assert.Equal(t, '-', f.Glyph)
	assert.Equal(t, []string{"arrow", "scout_idle_0"}, r.Names())
	assert.Equal(t, 2, r.Len())

	assert.Panics(t, func() { r.MustFrame("nope") })
	assert.NotPanics(t, func() { r.MustFrame("scout_idle_0") })
}

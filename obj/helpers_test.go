package obj

import (
	"testing"

	"github.com/milk9111/hollowkeep/levels"
	"github.com/milk9111/hollowkeep/prefabs"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *prefabs.Catalog {
	t.Helper()
	c, err := prefabs.LoadCatalog()
	require.NoError(t, err)
	return c
}

func newTestLevel(t *testing.T, rows ...string) *Level {
	t.Helper()
	l, err := NewLevel(levels.FromRows(rows...), Options{Catalog: testCatalog(t), Seed: 1})
	require.NoError(t, err)
	return l
}

func firstOf(l *Level, k Kind) *Entity {
	for _, e := range l.Entities() {
		if e.Kind == k {
			return e
		}
	}
	return nil
}

func countOf(l *Level, k Kind) int {
	n := 0
	for _, e := range l.Entities() {
		if e.Kind == k {
			n++
		}
	}
	return n
}

func tickN(l *Level, n int) {
	for i := 0; i < n; i++ {
		l.Tick()
	}
}

package obj

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Digest hashes the simulation state that matters for replay comparison:
// tick, entities, fragile cells and camera. Equal inputs give equal digests.
func (l *Level) Digest() uint64 {
	h := xxhash.New()
	var buf [8]byte
	putInt := func(v int64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = h.Write(buf[:])
	}
	putFloat := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = h.Write(buf[:])
	}

	putInt(int64(l.ticks))
	for _, e := range l.entities {
		if e.removed {
			continue
		}
		_, _ = h.WriteString(e.ID)
		putInt(int64(e.Kind))
		putFloat(e.Pos.X)
		putFloat(e.Pos.Y)
		putFloat(e.Vel.X)
		putFloat(e.Vel.Y)
		putInt(int64(e.Facing))
		if e.Health != nil {
			putInt(int64(e.Health.Current))
		}
	}
	for _, t := range l.fragile {
		putInt(int64(t.collapsing))
		putInt(int64(t.recovering))
		if t.collapsed {
			putInt(1)
		} else {
			putInt(0)
		}
	}
	putFloat(l.camera.Offset.X)
	putFloat(l.camera.Offset.Y)
	return h.Sum64()
}

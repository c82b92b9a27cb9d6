package obj

import (
	"math"

	"github.com/milk9111/hollowkeep/common"
	"github.com/milk9111/hollowkeep/prefabs"
)

// Particle is a short-lived visual with simple ballistic motion. Particles
// never collide.
type Particle struct {
	Pos     common.Coord
	Vel     common.Vector
	Size    float64
	Gravity float64
	Life    int
	Frame   string
}

func (p *Particle) Box() common.AABB {
	h := p.Size / 2
	return common.NewAABB(p.Pos.X-h, p.Pos.Y-h, p.Pos.X+h, p.Pos.Y+h)
}

// AddParticle queues a particle for the next particle phase.
func (l *Level) AddParticle(p *Particle) {
	if p == nil || p.Life <= 0 {
		return
	}
	l.particles = append(l.particles, p)
}

// burst scatters spec.Count particles evenly around at, fanned upward.
func (l *Level) burst(spec prefabs.BurstSpec, at common.Coord) {
	for i := 0; i < spec.Count; i++ {
		a := math.Pi + math.Pi*float64(i+1)/float64(spec.Count+1)
		l.AddParticle(&Particle{
			Pos:     at,
			Vel:     common.Vec(math.Cos(a)*spec.Speed, math.Sin(a)*spec.Speed),
			Size:    spec.Size,
			Gravity: spec.Gravity,
			Life:    spec.Lifetime,
			Frame:   spec.Frame,
		})
	}
}

func (l *Level) tickParticles() {
	live := l.particles[:0]
	for _, p := range l.particles {
		p.Life--
		if p.Life <= 0 {
			continue
		}
		p.Pos = p.Pos.Add(p.Vel)
		p.Vel.Y += p.Gravity
		live = append(live, p)
	}
	clear(l.particles[len(live):])
	l.particles = live
}

package core

import (
	"math/rand"

	"seehuhn.de/go/geom/vec"
)

// Sampler provides random sampling for rendering algorithms.
// Every random draw in the renderer goes through a Sampler so that a render
// band can be replayed from its seed.
type Sampler interface {
	Get1D() float64
	Get2D() vec.Vec2
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler whose stream is fully determined by seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() vec.Vec2 {
	return vec.Vec2{X: r.random.Float64(), Y: r.random.Float64()}
}

// RandomInUnitSphere returns a point strictly inside the unit sphere,
// expressed as a displacement from the origin. Uses rejection sampling.
func RandomInUnitSphere(sampler Sampler) Vector {
	for {
		xy := sampler.Get2D()
		v := NewVector(2*xy.X-1, 2*xy.Y-1, 2*sampler.Get1D()-1)
		if v.LengthSquared() < 1 {
			return v
		}
	}
}

// RandomInUnitDisc returns a point strictly inside the unit disc in the xy plane
func RandomInUnitDisc(sampler Sampler) vec.Vec2 {
	for {
		s := sampler.Get2D()
		p := vec.Vec2{X: 2*s.X - 1, Y: 2*s.Y - 1}
		if p.X*p.X+p.Y*p.Y < 1 {
			return p
		}
	}
}

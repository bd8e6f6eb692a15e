package material

import (
	"math/rand"

	"github.com/df07/go-crayfish/pkg/core"
	"seehuhn.de/go/geom/vec"
)

// constSampler returns the same draw every time
type constSampler struct {
	value float64
}

func (c constSampler) Get1D() float64 { return c.value }

func (c constSampler) Get2D() vec.Vec2 { return vec.Vec2{X: c.value, Y: c.value} }

func seeded(seed int64) core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(seed)))
}

func hitFromAbove() (core.Ray, HitRecord) {
	ray := core.NewRay(core.NewPoint(0, 1, 0), core.NewVector(0, -1, 0))
	return ray, NewHitRecord(ray, 1.0, core.NewVector(0, 1, 0))
}

// sequenceSampler replays a fixed list of draws, cycling when exhausted
type sequenceSampler struct {
	values []float64
	next   int
}

func (s *sequenceSampler) Get1D() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func (s *sequenceSampler) Get2D() vec.Vec2 {
	x := s.Get1D()
	return vec.Vec2{X: x, Y: s.Get1D()}
}

package geometry

import (
	"github.com/df07/go-crayfish/pkg/core"
	"github.com/samber/lo"
)

// Intersectable is anything a ray can be tested against
type Intersectable interface {
	Intersect(ray core.Ray) []Intersection
}

// Intersection is one ray parameter at which a ray meets an object.
// It is only meaningful while the object's group is alive.
type Intersection struct {
	T      float64
	Object *Object
}

// Hit selects the intersection with the smallest t strictly greater than minT.
// Among equal t values the earliest in xs wins.
func Hit(xs []Intersection, minT float64) (Intersection, bool) {
	ahead := lo.Filter(xs, func(x Intersection, _ int) bool {
		return x.T > minT
	})
	if len(ahead) == 0 {
		return Intersection{}, false
	}
	return lo.MinBy(ahead, func(a, b Intersection) bool {
		return a.T < b.T
	}), true
}

// Position returns the world-space point of the intersection along ray
func (x Intersection) Position(ray core.Ray) core.Point {
	return ray.At(x.T)
}

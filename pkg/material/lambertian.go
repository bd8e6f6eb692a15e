package material

import (
	"github.com/df07/go-crayfish/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Color
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Color) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter implements the Material interface for lambertian scattering.
// The new direction is normal + a random unit vector, which is cosine-weighted
// about the normal. It is not normalized.
func (l *Lambertian) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	randomUnit := core.RandomInUnitSphere(sampler).Unit()

	// exactly antiparallel would produce a zero-length direction
	direction := hit.Normal.Add(randomUnit)
	if randomUnit.Equals(hit.Normal.Negate()) {
		direction = hit.Normal
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: l.Albedo,
	}, true
}

package material

import (
	"github.com/df07/go-crayfish/pkg/core"
)

// Material interface for objects that can scatter rays.
// Returning false means the ray was absorbed.
type Material interface {
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray   // The scattered ray
	Attenuation core.Color // Per-channel fraction of light retained
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Point  // Point of intersection
	Normal    core.Vector // Outward unit surface normal at the intersection
	T         float64     // Parameter t along the ray
	FrontFace bool        // Whether the ray arrived from outside the surface
}

// NewHitRecord builds a hit record for ray at t with the given outward normal
func NewHitRecord(ray core.Ray, t float64, outwardNormal core.Vector) HitRecord {
	return HitRecord{
		Point:     ray.At(t),
		Normal:    outwardNormal,
		T:         t,
		FrontFace: ray.Direction.Dot(outwardNormal) < 0,
	}
}

// FacingNormal returns the normal on the side the ray arrived from
func (h HitRecord) FacingNormal() core.Vector {
	if h.FrontFace {
		return h.Normal
	}
	return h.Normal.Negate()
}

// Default is the material objects get when none is assigned
func Default() Material {
	return NewLambertian(core.NewColor(0.9, 0.9, 0.9))
}

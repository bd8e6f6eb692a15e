package renderer

import (
	"github.com/df07/go-crayfish/pkg/core"
	"github.com/df07/go-crayfish/pkg/geometry"
	"github.com/df07/go-crayfish/pkg/material"
)

// ScatterEpsilon is the minimum t for bounce rays, so a scattered ray does
// not immediately re-hit the surface it left
const ScatterEpsilon = 0.001

// Sky colors for rays that escape the scene
var (
	SkyTop    = core.ColorFromU8(135, 181, 235)
	SkyBottom = core.ColorFromU8(135, 231, 235)
)

// Raytracer computes the color carried back along a ray
type Raytracer struct {
	world        geometry.Intersectable
	maxDepth     int
	shadeNormals bool
}

// NewRaytracer creates a raytracer over world that stops after maxDepth bounces
func NewRaytracer(world geometry.Intersectable, maxDepth int) *Raytracer {
	return &Raytracer{world: world, maxDepth: maxDepth}
}

// WithNormalShading switches to coloring each hit by its surface normal
func (rt *Raytracer) WithNormalShading(enabled bool) *Raytracer {
	rt.shadeNormals = enabled
	return rt
}

// RayColor traces a primary ray
func (rt *Raytracer) RayColor(ray core.Ray, sampler core.Sampler) core.Color {
	return rt.rayColorRecursive(ray, 0, 0, sampler)
}

// rayColorRecursive returns the color for a given ray with material support
func (rt *Raytracer) rayColorRecursive(ray core.Ray, minT float64, depth int, sampler core.Sampler) core.Color {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth > rt.maxDepth {
		return core.Black
	}

	hit, isHit := geometry.Hit(rt.world.Intersect(ray), minT)
	if !isHit {
		return backgroundGradient(ray)
	}

	normal := hit.Object.NormalAt(hit.Position(ray))
	if rt.shadeNormals {
		return core.NewColor(normal.X+1, normal.Y+1, normal.Z+1).Multiply(0.5)
	}

	record := material.NewHitRecord(ray, hit.T, normal)
	scatter, didScatter := hit.Object.Material().Scatter(ray, record, sampler)
	if !didScatter {
		return core.Black // Material absorbed the ray
	}

	incoming := rt.rayColorRecursive(scatter.Scattered, ScatterEpsilon, depth+1, sampler)
	return scatter.Attenuation.MultiplyColor(incoming)
}

// backgroundGradient blends the sky by the height of the ray direction
func backgroundGradient(ray core.Ray) core.Color {
	t := (1 + ray.Direction.Unit().Y) / 2
	return SkyBottom.Lerp(SkyTop, t)
}

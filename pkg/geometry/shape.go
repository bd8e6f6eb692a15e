package geometry

import (
	"fmt"

	"github.com/df07/go-crayfish/pkg/core"
)

// Shape is the closed set of primitive geometries. Every shape lives in its
// own object space; placement comes from the owning Object's transform.
type Shape int

const (
	// Sphere is the unit sphere centered at the origin
	Sphere Shape = iota
	// Cube is the axis-aligned cube with extents [-1, 1] on every axis
	Cube
)

func (s Shape) String() string {
	switch s {
	case Sphere:
		return "sphere"
	case Cube:
		return "cube"
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// LocalIntersect returns the t values where an object-space ray meets the
// shape, in the order they were found. Negative t values are kept.
func (s Shape) LocalIntersect(ray core.Ray) []float64 {
	switch s {
	case Sphere:
		return intersectSphere(ray)
	case Cube:
		return intersectCube(ray)
	}
	return nil
}

// LocalNormalAt returns the object-space normal at an object-space point on the surface
func (s Shape) LocalNormalAt(p core.Point) core.Vector {
	switch s {
	case Sphere:
		return sphereNormal(p)
	case Cube:
		return cubeNormal(p)
	}
	return core.Vector{}
}

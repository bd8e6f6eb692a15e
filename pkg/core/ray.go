package core

// Ray represents a ray with an origin and direction.
// The direction is not required to be normalized.
type Ray struct {
	Origin    Point
	Direction Vector
}

// NewRay creates a new ray
func NewRay(origin Point, direction Vector) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// RayFromCoords creates a ray from raw origin and direction components
func RayFromCoords(x, y, z, dx, dy, dz float64) Ray {
	return Ray{Origin: NewPoint(x, y, z), Direction: NewVector(dx, dy, dz)}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Point {
	return r.Origin.Add(r.Direction.Multiply(t))
}

package geometry

import (
	"math"

	"github.com/df07/go-crayfish/pkg/core"
)

// intersectSphere solves |O + tD|² = 1 for the unit sphere
func intersectSphere(ray core.Ray) []float64 {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(core.Origin)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * ray.Direction.Dot(oc)
	c := oc.Dot(oc) - 1

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil
	}

	sqrtD := math.Sqrt(discriminant)
	return []float64{
		(-b - sqrtD) / (2 * a),
		(-b + sqrtD) / (2 * a),
	}
}

// sphereNormal is the direction from the center to the surface point
func sphereNormal(p core.Point) core.Vector {
	return p.Subtract(core.Origin)
}

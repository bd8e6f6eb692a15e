package geometry

import (
	"math"

	"github.com/df07/go-crayfish/pkg/core"
	"github.com/samber/lo"
)

var cubeAxes = []int{0, 1, 2}

// intersectCube tests the six face planes of the [-1, 1] cube in axis order
// 0, 1, 2 and face order -1, +1. It keeps at most the first two hits and drops
// hits behind the ray origin, so a ray starting inside reports only its exit.
func intersectCube(ray core.Ray) []float64 {
	hits := make([]float64, 0, 2)

	for _, axis := range cubeAxes {
		d := ray.Direction.Axis(axis)
		if core.ApproxEqual(d, 0) {
			continue
		}
		o := ray.Origin.Axis(axis)

		for _, face := range [2]float64{-1, 1} {
			t := (face - o) / d
			if t < 0 || !onCubeFace(ray, t, axis) {
				continue
			}
			hits = append(hits, t)
			if len(hits) == 2 {
				return hits
			}
		}
	}
	return hits
}

// onCubeFace reports whether ray(t) lies within [-1, 1] on the two axes other than axis
func onCubeFace(ray core.Ray, t float64, axis int) bool {
	p := ray.At(t)
	for _, other := range cubeAxes {
		if other != axis && math.Abs(p.Axis(other)) > 1 {
			return false
		}
	}
	return true
}

// cubeNormal points along the axis of largest absolute coordinate.
// Ties go to the lower axis.
func cubeNormal(p core.Point) core.Vector {
	axis := lo.MaxBy(cubeAxes, func(a, b int) bool {
		return math.Abs(p.Axis(a)) > math.Abs(p.Axis(b))
	})

	var n core.Vector
	switch axis {
	case 0:
		n.X = p.X
	case 1:
		n.Y = p.Y
	default:
		n.Z = p.Z
	}
	return n
}

package transform

import (
	"github.com/df07/go-crayfish/pkg/core"
	"github.com/pkg/errors"
)

// Affine is a fixed-size 4x4 homogeneous transform. It is the type objects
// hold and the per-ray code path uses; composition can never fail on it.
type Affine [4][4]float64

// IdentityAffine returns the 4x4 identity transform
func IdentityAffine() Affine {
	return Affine{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// AffineFromMatrix converts a general matrix, failing unless it is 4x4
func AffineFromMatrix(m Matrix) (Affine, error) {
	var a Affine
	if m.Rows() != 4 || m.Cols() != 4 {
		return a, errors.Wrapf(ErrNotAffine, "got %dx%d", m.Rows(), m.Cols())
	}
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			a[r][c] = m.At(r, c)
		}
	}
	return a, nil
}

// Matrix returns a as a general Matrix
func (a Affine) Matrix() Matrix {
	m := NewMatrix(4, 4)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m.Set(r, c, a[r][c])
		}
	}
	return m
}

// Mul returns the product a · b (b is applied first)
func (a Affine) Mul(b Affine) Affine {
	var out Affine
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[r][c] = a[r][0]*b[0][c] + a[r][1]*b[1][c] + a[r][2]*b[2][c] + a[r][3]*b[3][c]
		}
	}
	return out
}

// Transpose returns the transposed transform
func (a Affine) Transpose() Affine {
	var out Affine
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[c][r] = a[r][c]
		}
	}
	return out
}

// Inverse inverts the transform by cofactor expansion
func (a Affine) Inverse() (Affine, error) {
	inv, err := a.Matrix().Inverse()
	if err != nil {
		return Affine{}, err
	}
	return AffineFromMatrix(inv)
}

// Equal compares two transforms element-wise within core.Epsilon
func (a Affine) Equal(b Affine) bool {
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if !core.ApproxEqual(a[r][c], b[r][c]) {
				return false
			}
		}
	}
	return true
}

// Point applies the transform to a point (translation included)
func (a Affine) Point(p core.Point) core.Point {
	return core.Point{
		X: a[0][0]*p.X + a[0][1]*p.Y + a[0][2]*p.Z + a[0][3],
		Y: a[1][0]*p.X + a[1][1]*p.Y + a[1][2]*p.Z + a[1][3],
		Z: a[2][0]*p.X + a[2][1]*p.Y + a[2][2]*p.Z + a[2][3],
	}
}

// Vector applies the transform to a vector (translation ignored)
func (a Affine) Vector(v core.Vector) core.Vector {
	return core.Vector{
		X: a[0][0]*v.X + a[0][1]*v.Y + a[0][2]*v.Z,
		Y: a[1][0]*v.X + a[1][1]*v.Y + a[1][2]*v.Z,
		Z: a[2][0]*v.X + a[2][1]*v.Y + a[2][2]*v.Z,
	}
}

// Ray transforms both the origin and direction of r.
// The direction is not renormalized, so t values are preserved across spaces.
func (a Affine) Ray(r core.Ray) core.Ray {
	return core.Ray{Origin: a.Point(r.Origin), Direction: a.Vector(r.Direction)}
}

// Translate returns Translation(x, y, z) · a
func (a Affine) Translate(x, y, z float64) Affine {
	return Translation(x, y, z).Mul(a)
}

// Scale returns Scaling(x, y, z) · a
func (a Affine) Scale(x, y, z float64) Affine {
	return Scaling(x, y, z).Mul(a)
}

// Rotate returns Rotation(axis, radians) · a
func (a Affine) Rotate(axis Axis, radians float64) Affine {
	return Rotation(axis, radians).Mul(a)
}

// Shear returns Shearing(...) · a
func (a Affine) Shear(xy, xz, yx, yz, zx, zy float64) Affine {
	return Shearing(xy, xz, yx, yz, zx, zy).Mul(a)
}

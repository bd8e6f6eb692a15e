package transform

import (
	"fmt"
	"math"
)

// Axis selects a rotation axis
type Axis int

const (
	X Axis = iota
	Y
	Z
)

func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// ParseAxis maps "x", "y" or "z" to an Axis
func ParseAxis(s string) (Axis, bool) {
	switch s {
	case "x", "X":
		return X, true
	case "y", "Y":
		return Y, true
	case "z", "Z":
		return Z, true
	}
	return 0, false
}

// Translation moves points by (x, y, z); vectors are unaffected
func Translation(x, y, z float64) Affine {
	m := IdentityAffine()
	m[0][3] = x
	m[1][3] = y
	m[2][3] = z
	return m
}

// Scaling scales each axis independently
func Scaling(x, y, z float64) Affine {
	m := IdentityAffine()
	m[0][0] = x
	m[1][1] = y
	m[2][2] = z
	return m
}

// Rotation rotates counter-clockwise (right-handed) about an axis by radians
func Rotation(axis Axis, radians float64) Affine {
	sin, cos := math.Sincos(radians)
	m := IdentityAffine()
	switch axis {
	case X:
		m[1][1], m[1][2] = cos, -sin
		m[2][1], m[2][2] = sin, cos
	case Y:
		m[0][0], m[0][2] = cos, sin
		m[2][0], m[2][2] = -sin, cos
	case Z:
		m[0][0], m[0][1] = cos, -sin
		m[1][0], m[1][1] = sin, cos
	}
	return m
}

// Shearing moves each coordinate in proportion to the other two.
// xy means "x in proportion to y", and so on.
func Shearing(xy, xz, yx, yz, zx, zy float64) Affine {
	m := IdentityAffine()
	m[0][1], m[0][2] = xy, xz
	m[1][0], m[1][2] = yx, yz
	m[2][0], m[2][1] = zx, zy
	return m
}

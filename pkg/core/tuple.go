package core

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used by every approximate comparison in the renderer
const Epsilon = 1e-5

// ApproxEqual reports whether two floats are within Epsilon of each other
func ApproxEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Radians converts an angle in degrees to radians
func Radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// Point is a position in 3D space (homogeneous w = 1).
// Points and vectors are distinct types so that point+point does not compile.
type Point struct {
	X, Y, Z float64
}

// Vector is a displacement in 3D space (homogeneous w = 0)
type Vector struct {
	X, Y, Z float64
}

// Origin is the world origin
var Origin = Point{}

// NewPoint creates a new Point
func NewPoint(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

// NewVector creates a new Vector
func NewVector(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z}
}

// Add returns the point displaced by v
func (p Point) Add(v Vector) Point {
	return Point{p.X + v.X, p.Y + v.Y, p.Z + v.Z}
}

// Subtract returns the vector pointing from other to p
func (p Point) Subtract(other Point) Vector {
	return Vector{p.X - other.X, p.Y - other.Y, p.Z - other.Z}
}

// SubtractVector returns the point displaced by -v
func (p Point) SubtractVector(v Vector) Point {
	return Point{p.X - v.X, p.Y - v.Y, p.Z - v.Z}
}

// Equals compares two points component-wise within Epsilon
func (p Point) Equals(other Point) bool {
	return ApproxEqual(p.X, other.X) && ApproxEqual(p.Y, other.Y) && ApproxEqual(p.Z, other.Z)
}

// Axis returns the coordinate along axis 0, 1 or 2
func (p Point) Axis(i int) float64 {
	switch i {
	case 0:
		return p.X
	case 1:
		return p.Y
	}
	return p.Z
}

// Homogeneous returns the point as a 4-tuple with w = 1
func (p Point) Homogeneous() [4]float64 {
	return [4]float64{p.X, p.Y, p.Z, 1}
}

func (p Point) String() string {
	return fmt.Sprintf("point(%g, %g, %g)", p.X, p.Y, p.Z)
}

// Add returns the sum of two vectors
func (v Vector) Add(other Vector) Vector {
	return Vector{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Subtract returns the difference of two vectors
func (v Vector) Subtract(other Vector) Vector {
	return Vector{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Negate returns the negative of the vector
func (v Vector) Negate() Vector {
	return Vector{-v.X, -v.Y, -v.Z}
}

// Multiply returns the vector scaled by a scalar
func (v Vector) Multiply(scalar float64) Vector {
	return Vector{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// Divide returns the vector divided by a scalar
func (v Vector) Divide(scalar float64) Vector {
	return Vector{v.X / scalar, v.Y / scalar, v.Z / scalar}
}

// Dot returns the dot product of two vectors
func (v Vector) Dot(other Vector) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vector) Cross(other Vector) Vector {
	return Vector{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude of the vector
func (v Vector) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// LengthSquared returns the squared magnitude of the vector
func (v Vector) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Unit returns a unit vector in the same direction.
// The zero vector has no direction: the result is non-finite and callers must
// not pass one in.
func (v Vector) Unit() Vector {
	return v.Divide(v.Length())
}

// Equals compares two vectors component-wise within Epsilon
func (v Vector) Equals(other Vector) bool {
	return ApproxEqual(v.X, other.X) && ApproxEqual(v.Y, other.Y) && ApproxEqual(v.Z, other.Z)
}

// Axis returns the component along axis 0, 1 or 2
func (v Vector) Axis(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	}
	return v.Z
}

// Homogeneous returns the vector as a 4-tuple with w = 0
func (v Vector) Homogeneous() [4]float64 {
	return [4]float64{v.X, v.Y, v.Z, 0}
}

// Reflect mirrors v about the unit normal n: r = v - 2(v·n)n
func (v Vector) Reflect(n Vector) Vector {
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

func (v Vector) String() string {
	return fmt.Sprintf("vector(%g, %g, %g)", v.X, v.Y, v.Z)
}

package core

import (
	"fmt"
	"math"
)

// Color is a linear RGB triple. Components are not clamped; values above 1
// are legal until export.
type Color struct {
	R, G, B float64
}

// Black and White are the identity colors for addition and attenuation
var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
)

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromU8 converts 8-bit channel values to a Color in [0, 1]
func ColorFromU8(r, g, b uint8) Color {
	return Color{
		R: float64(r) / math.MaxUint8,
		G: float64(g) / math.MaxUint8,
		B: float64(b) / math.MaxUint8,
	}
}

// Add returns the sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Subtract returns the difference of two colors
func (c Color) Subtract(other Color) Color {
	return Color{c.R - other.R, c.G - other.G, c.B - other.B}
}

// Multiply returns the color scaled by a scalar
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}
}

// MultiplyColor returns the component-wise (Hadamard) product of two colors
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Lerp interpolates linearly from c (t = 0) to other (t = 1)
func (c Color) Lerp(other Color, t float64) Color {
	return c.Multiply(1 - t).Add(other.Multiply(t))
}

// GammaEncode applies the gamma-2 tone curve (square root per channel)
func (c Color) GammaEncode() Color {
	return Color{math.Sqrt(c.R), math.Sqrt(c.G), math.Sqrt(c.B)}
}

// Clamp returns a color with components clamped to [min, max]
func (c Color) Clamp(minVal, maxVal float64) Color {
	return Color{
		R: max(minVal, min(maxVal, c.R)),
		G: max(minVal, min(maxVal, c.G)),
		B: max(minVal, min(maxVal, c.B)),
	}
}

// Luminance returns the perceptual luminance of an RGB color
// Uses standard luminance weights: 0.299*R + 0.587*G + 0.114*B
func (c Color) Luminance() float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// Equals compares two colors component-wise within Epsilon
func (c Color) Equals(other Color) bool {
	return ApproxEqual(c.R, other.R) && ApproxEqual(c.G, other.G) && ApproxEqual(c.B, other.B)
}

func (c Color) String() string {
	return fmt.Sprintf("color(%g, %g, %g)", c.R, c.G, c.B)
}

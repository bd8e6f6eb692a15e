package renderer

import (
	"math"

	"github.com/df07/go-crayfish/pkg/core"
)

// CameraConfig describes a thin-lens camera
type CameraConfig struct {
	LookFrom       core.Point
	LookAt         core.Point
	Up             core.Vector // World up hint, zero = +y
	AspectRatio    float64     // Viewport width / height
	FovRadians     float64     // Vertical field of view
	FocusDistance  float64     // Distance to the plane in focus, 0 = |LookFrom - LookAt|
	ApertureRadius float64     // Lens radius, 0 = pinhole
}

// Camera generates rays for rendering. It is immutable after construction.
type Camera struct {
	origin          core.Point
	lowerLeftCorner core.Point
	horizontal      core.Vector
	vertical        core.Vector
	unitHorizontal  core.Vector
	unitVertical    core.Vector
	forward         core.Vector
	apertureRadius  float64
}

// NewCamera derives the viewport from the config
func NewCamera(config CameraConfig) *Camera {
	up := config.Up
	if up == (core.Vector{}) {
		up = core.NewVector(0, 1, 0)
	}

	// Left-handed basis: looking down +z with +y up, +x is to the image's right
	forward := config.LookAt.Subtract(config.LookFrom).Unit()
	unitHorizontal := up.Cross(forward).Unit()
	unitVertical := forward.Cross(unitHorizontal).Unit()

	viewportHeight := 2 * math.Tan(config.FovRadians/2)
	viewportWidth := config.AspectRatio * viewportHeight

	focus := config.FocusDistance
	if focus <= 0 {
		focus = config.LookFrom.Subtract(config.LookAt).Length()
	}

	horizontal := unitHorizontal.Multiply(viewportWidth * focus)
	vertical := unitVertical.Multiply(viewportHeight * focus)
	lowerLeftCorner := config.LookFrom.
		Add(forward.Multiply(focus)).
		SubtractVector(horizontal.Divide(2)).
		SubtractVector(vertical.Divide(2))

	return &Camera{
		origin:          config.LookFrom,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		unitHorizontal:  unitHorizontal,
		unitVertical:    unitVertical,
		forward:         forward,
		apertureRadius:  config.ApertureRadius,
	}
}

// CastRay generates a ray through viewport coordinates (x, y), each in [0, 1]
// with (0, 0) at the lower-left corner. The direction is not normalized.
func (c *Camera) CastRay(x, y float64, sampler core.Sampler) core.Ray {
	target := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(x)).
		Add(c.vertical.Multiply(y))

	origin := c.origin
	if c.apertureRadius > 0 {
		lens := core.RandomInUnitDisc(sampler)
		offset := c.unitHorizontal.Multiply(lens.X).
			Add(c.unitVertical.Multiply(lens.Y)).
			Multiply(c.apertureRadius)
		origin = origin.Add(offset)
	}

	return core.NewRay(origin, target.Subtract(origin))
}

// Forward returns the unit viewing direction
func (c *Camera) Forward() core.Vector {
	return c.forward
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	merged := base
	if override.LookFrom != (core.Point{}) {
		merged.LookFrom = override.LookFrom
	}
	if override.LookAt != (core.Point{}) {
		merged.LookAt = override.LookAt
	}
	if override.Up != (core.Vector{}) {
		merged.Up = override.Up
	}
	if override.AspectRatio != 0 {
		merged.AspectRatio = override.AspectRatio
	}
	if override.FovRadians != 0 {
		merged.FovRadians = override.FovRadians
	}
	if override.FocusDistance != 0 {
		merged.FocusDistance = override.FocusDistance
	}
	if override.ApertureRadius != 0 {
		merged.ApertureRadius = override.ApertureRadius
	}
	return merged
}

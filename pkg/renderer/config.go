package renderer

import (
	"math"

	"github.com/pkg/errors"
)

// RowRange is a half-open interval of image rows [From, To).
// Row 0 is the bottom of the image.
type RowRange struct {
	From, To int
}

// Len returns the number of rows in the range
func (r RowRange) Len() int {
	return r.To - r.From
}

// Config contains everything the render loop reads. The renderer uses the
// values as given; Validate exists for callers that accept user input.
type Config struct {
	AspectRatio     float64  // Width / height
	FovRadians      float64  // Vertical field of view
	ApertureRadius  float64  // Lens radius, 0 = pinhole
	ImageHeight     int      // Rows in the full image
	RowRange        RowRange // Rows to render
	RaysPerPixel    int      // Samples per pixel
	MaxScatterDepth int      // Bounces before a path is treated as absorbed
	Outfile         string   // Output path, empty = derived from scene and run ID
	Verbose         bool     // Log per-row progress
	Workers         int      // Parallel workers (0 = use CPU count)
	Seed            int64    // Base seed for every band's random stream
	ShadeNormals    bool     // Color by surface normal instead of tracing materials
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		AspectRatio:     16.0 / 9.0,
		FovRadians:      math.Pi / 2,
		ApertureRadius:  0,
		ImageHeight:     100,
		RowRange:        RowRange{From: 0, To: 100},
		RaysPerPixel:    200,
		MaxScatterDepth: 30,
		Workers:         0,
		Seed:            1,
	}
}

// ImageWidth derives the width from the height and aspect ratio
func (c Config) ImageWidth() int {
	return int(c.AspectRatio * float64(c.ImageHeight))
}

// Validate checks a config built from user input
func (c Config) Validate() error {
	switch {
	case c.AspectRatio <= 0:
		return errors.Errorf("aspect ratio must be positive, got %g", c.AspectRatio)
	case c.FovRadians <= 0 || c.FovRadians >= math.Pi:
		return errors.Errorf("field of view must be in (0, π) radians, got %g", c.FovRadians)
	case c.ApertureRadius < 0:
		return errors.Errorf("aperture radius must not be negative, got %g", c.ApertureRadius)
	case c.ImageHeight <= 0:
		return errors.Errorf("image height must be positive, got %d", c.ImageHeight)
	case c.ImageWidth() <= 0:
		return errors.Errorf("image width %d is not positive", c.ImageWidth())
	case c.RowRange.From < 0 || c.RowRange.To > c.ImageHeight || c.RowRange.From >= c.RowRange.To:
		return errors.Errorf("row range [%d, %d) must be a non-empty part of [0, %d)", c.RowRange.From, c.RowRange.To, c.ImageHeight)
	case c.RaysPerPixel <= 0:
		return errors.Errorf("rays per pixel must be positive, got %d", c.RaysPerPixel)
	case c.MaxScatterDepth < 0:
		return errors.Errorf("max scatter depth must not be negative, got %d", c.MaxScatterDepth)
	case c.Workers < 0:
		return errors.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

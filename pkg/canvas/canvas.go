package canvas

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-crayfish/pkg/core"
	"github.com/pkg/errors"
)

// ErrOutOfBounds is returned when writing outside the canvas
var ErrOutOfBounds = errors.New("pixel out of bounds")

// Canvas is a fixed-size grid of unclamped colors.
// (0, 0) is the top-left pixel. Writes to distinct pixels may run concurrently.
type Canvas struct {
	width, height int
	pixels        []core.Color
}

// New creates a black canvas
func New(width, height int) *Canvas {
	return &Canvas{
		width:  width,
		height: height,
		pixels: make([]core.Color, width*height),
	}
}

// Width returns the canvas width in pixels
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels
func (c *Canvas) Height() int { return c.height }

// WritePixel stores a color; clamping happens only on export
func (c *Canvas) WritePixel(x, y int, color core.Color) error {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return errors.Wrapf(ErrOutOfBounds, "(%d, %d) on %dx%d canvas", x, y, c.width, c.height)
	}
	c.pixels[y*c.width+x] = color
	return nil
}

// PixelAt returns the color at (x, y). Coordinates must be in range.
func (c *Canvas) PixelAt(x, y int) core.Color {
	return c.pixels[y*c.width+x]
}

// quantize maps a component to 0-255: clamp to [0, 1] then round
func quantize(v float64) uint8 {
	switch {
	case v >= 1:
		return 255
	case v <= 0 || math.IsNaN(v):
		return 0
	}
	return uint8(math.Round(v * 255))
}

// Image converts the canvas to an 8-bit RGBA image
func (c *Canvas) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			p := c.PixelAt(x, y)
			img.SetRGBA(x, y, color.RGBA{
				R: quantize(p.R),
				G: quantize(p.G),
				B: quantize(p.B),
				A: 255,
			})
		}
	}
	return img
}

package canvas

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// Formats lists the file extensions Save understands
var Formats = []string{".ppm", ".png", ".bmp", ".tif", ".tiff"}

// Save writes the canvas to path, choosing the encoder from the extension
func (c *Canvas) Save(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	encode, err := encoderFor(ext)
	if err != nil {
		return errors.Wrap(err, path)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating output file")
	}
	defer file.Close()

	if err := encode(c, file); err != nil {
		return errors.Wrapf(err, "encoding %s", path)
	}
	return file.Close()
}

type encoder func(c *Canvas, f *os.File) error

func encoderFor(ext string) (encoder, error) {
	switch ext {
	case ".ppm":
		return func(c *Canvas, f *os.File) error { return c.WritePPM(f) }, nil
	case ".png":
		return func(c *Canvas, f *os.File) error { return png.Encode(f, c.Image()) }, nil
	case ".bmp":
		return func(c *Canvas, f *os.File) error { return bmp.Encode(f, c.Image()) }, nil
	case ".tif", ".tiff":
		return func(c *Canvas, f *os.File) error {
			return tiff.Encode(f, c.Image(), &tiff.Options{Compression: tiff.Deflate, Predictor: true})
		}, nil
	}
	return nil, errors.Errorf("unsupported image format %q (want one of %s)", ext, strings.Join(Formats, ", "))
}

// Preview scales img so its longer side is at most maxSide, using Catmull-Rom
// resampling. Images already small enough are returned unchanged.
func Preview(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	longest := max(b.Dx(), b.Dy())
	if maxSide <= 0 || longest <= maxSide {
		return img
	}

	scale := float64(maxSide) / float64(longest)
	w := max(1, int(float64(b.Dx())*scale))
	h := max(1, int(float64(b.Dy())*scale))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// SavePreview writes a downscaled PNG of the canvas
func (c *Canvas) SavePreview(path string, maxSide int) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating preview file")
	}
	defer file.Close()

	if err := png.Encode(file, Preview(c.Image(), maxSide)); err != nil {
		return errors.Wrap(err, "encoding preview")
	}
	return file.Close()
}

package renderer

import (
	"time"

	"github.com/df07/go-crayfish/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	RunID         string        // Identifier shared by every log line of a run
	TotalPixels   int           // Total number of pixels rendered
	TotalSamples  int           // Total number of samples taken
	Rows          int           // Rows completed
	Bands         int           // Bands the row range was split into
	Workers       int           // Workers that rendered the bands
	MeanVariance  float64       // Mean per-pixel luminance variance
	Duration      time.Duration // Wall time of the render
	varianceTotal float64
}

// merge folds a band's counters into s
func (s *RenderStats) merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.TotalSamples += other.TotalSamples
	s.Rows += other.Rows
	s.varianceTotal += other.varianceTotal
}

// finalize derives the averages once every band is merged
func (s *RenderStats) finalize() {
	if s.TotalPixels > 0 {
		s.MeanVariance = s.varianceTotal / float64(s.TotalPixels)
	}
}

// AverageSamples returns the mean number of samples per pixel
func (s RenderStats) AverageSamples() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.TotalSamples) / float64(s.TotalPixels)
}

// PixelStats tracks sampling statistics for a single pixel
type PixelStats struct {
	ColorAccum       core.Color // RGB accumulator for final result
	LuminanceAccum   float64    // Luminance accumulator for convergence
	LuminanceSqAccum float64    // Luminance squared for variance
	SampleCount      int        // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Color) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	luminance := color.Luminance()
	ps.LuminanceAccum += luminance
	ps.LuminanceSqAccum += luminance * luminance
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Color {
	if ps.SampleCount == 0 {
		return core.Black
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// Variance returns the sample variance of the pixel's luminance
func (ps *PixelStats) Variance() float64 {
	if ps.SampleCount < 2 {
		return 0
	}
	n := float64(ps.SampleCount)
	mean := ps.LuminanceAccum / n
	return max(0, (ps.LuminanceSqAccum/n-mean*mean)*n/(n-1))
}

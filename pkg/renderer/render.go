package renderer

import (
	"context"
	"time"

	"github.com/df07/go-crayfish/pkg/core"
	"github.com/df07/go-crayfish/pkg/geometry"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// PixelWriter receives gamma-encoded pixel colors, not yet clamped.
// (0, 0) is the top-left pixel.
type PixelWriter interface {
	WritePixel(x, y int, color core.Color) error
}

// Renderer runs the render loop over a scene
type Renderer struct {
	camera    *Camera
	config    Config
	raytracer *Raytracer
	logger    core.Logger
	runID     uuid.UUID
	startTime time.Time
}

// NewRenderer creates a renderer for world as seen through camera
func NewRenderer(world geometry.Intersectable, camera *Camera, config Config, logger core.Logger) *Renderer {
	if logger == nil {
		logger = NopLogger{}
	}
	return &Renderer{
		camera:    camera,
		config:    config,
		raytracer: NewRaytracer(world, config.MaxScatterDepth).WithNormalShading(config.ShadeNormals),
		logger:    logger,
		runID:     uuid.New(),
	}
}

// RunID identifies this renderer's run in logs and output names
func (r *Renderer) RunID() uuid.UUID {
	return r.runID
}

// Render fills the configured row range of out. Rows are split into bands
// rendered in parallel; cancellation is checked between rows.
func (r *Renderer) Render(ctx context.Context, out PixelWriter) (RenderStats, error) {
	r.startTime = time.Now()
	bands := NewBandGrid(r.config.RowRange, DefaultBandHeight)

	pool := NewWorkerPool(r, out, len(bands), r.config.Workers)
	stats := RenderStats{
		RunID:   r.runID.String(),
		Bands:   len(bands),
		Workers: pool.GetNumWorkers(),
	}

	r.logger.Printf("[%s] Rendering %dx%d rows %d-%d at %d rays/pixel, depth %d (using %d workers)...\n",
		stats.RunID, r.config.ImageWidth(), r.config.ImageHeight,
		r.config.RowRange.From, r.config.RowRange.To,
		r.config.RaysPerPixel, r.config.MaxScatterDepth, stats.Workers)

	pool.Start(ctx)
	for i, band := range bands {
		pool.SubmitTask(BandTask{Band: band, TaskID: i})
	}
	pool.Stop()

	var firstErr error
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil && firstErr == nil {
			firstErr = result.Error
		}
		stats.merge(result.Stats)
	}

	stats.finalize()
	stats.Duration = time.Since(r.startTime)
	if firstErr != nil {
		r.logger.Printf("[%s] Render stopped after %d rows: %v\n", stats.RunID, stats.Rows, firstErr)
		return stats, firstErr
	}

	r.logger.Printf("[%s] Render completed in %v (%d pixels, %.0f samples/pixel)\n",
		stats.RunID, stats.Duration, stats.TotalPixels, stats.AverageSamples())
	return stats, nil
}

// renderBand renders every row of a band, stopping early on cancellation
func (r *Renderer) renderBand(ctx context.Context, band Band, out PixelWriter) (RenderStats, error) {
	var stats RenderStats
	for y := band.Rows.From; y < band.Rows.To; y++ {
		if err := ctx.Err(); err != nil {
			return stats, errors.Wrapf(err, "band %d cancelled before row %d", band.ID, y)
		}
		if err := r.renderRow(y, out, &stats); err != nil {
			return stats, err
		}
		if r.config.Verbose {
			r.logger.Printf("Rendering row %d of %d, time elapsed: %v\n", y, r.config.RowRange.Len(), time.Since(r.startTime))
		}
	}
	return stats, nil
}

// renderRow samples every pixel of world row y (0 = bottom) and writes it to
// the flipped image row
func (r *Renderer) renderRow(y int, out PixelWriter, stats *RenderStats) error {
	width := r.config.ImageWidth()
	height := r.config.ImageHeight
	sampler := core.NewSeededSampler(rowSeed(r.config.Seed, y))

	for x := 0; x < width; x++ {
		var ps PixelStats
		for s := 0; s < r.config.RaysPerPixel; s++ {
			jitter := sampler.Get2D()
			u := (float64(x) + jitter.X) / float64(width)
			v := (float64(y) + jitter.Y) / float64(height)
			ray := r.camera.CastRay(u, v, sampler)
			ps.AddSample(r.raytracer.RayColor(ray, sampler))
		}

		if err := out.WritePixel(x, height-1-y, ps.GetColor().GammaEncode()); err != nil {
			return errors.Wrapf(err, "row %d", y)
		}
		stats.TotalPixels++
		stats.TotalSamples += ps.SampleCount
		stats.varianceTotal += ps.Variance()
	}
	stats.Rows++
	return nil
}

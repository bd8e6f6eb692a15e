package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/df07/go-crayfish/pkg/canvas"
	"github.com/df07/go-crayfish/pkg/core"
	"github.com/df07/go-crayfish/pkg/renderer"
	"github.com/df07/go-crayfish/pkg/scene"
	"github.com/pkg/errors"
)

// scenesDir holds scene scripts listed by -help
const scenesDir = "scenes"

// options holds the parsed command line
type options struct {
	aspect    string
	fovDeg    float64
	aperture  float64
	height    int
	fromRow   int
	toRow     int
	rays      int
	depth     int
	workers   int
	seed      int64
	sceneName string
	outfile   string
	preview   int
	normals   bool
	verbose   bool
	help      bool

	// set records which flags appeared on the command line
	set map[string]bool
}

func parseFlags(args []string, output io.Writer) (options, *flag.FlagSet, error) {
	defaults := renderer.DefaultConfig()
	opts := options{set: make(map[string]bool)}

	fs := flag.NewFlagSet("crayfish", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.aspect, "aspect", "16:9", "Aspect ratio as WIDTH:HEIGHT")
	fs.Float64Var(&opts.fovDeg, "fov", defaults.FovRadians*180/math.Pi, "Vertical field of view in degrees")
	fs.Float64Var(&opts.aperture, "aperture", defaults.ApertureRadius, "Lens aperture radius (0 = pinhole)")
	fs.IntVar(&opts.height, "height", defaults.ImageHeight, "Output image height in pixels")
	fs.IntVar(&opts.fromRow, "from-row", 0, "First row to render, counted from the bottom")
	fs.IntVar(&opts.toRow, "to-row", -1, "Row to stop before (-1 = image height)")
	fs.IntVar(&opts.rays, "rays", defaults.RaysPerPixel, "Rays cast per pixel")
	fs.IntVar(&opts.depth, "depth", defaults.MaxScatterDepth, "Maximum number of ray bounces")
	fs.IntVar(&opts.workers, "workers", defaults.Workers, "Parallel workers (0 = number of CPUs)")
	fs.Int64Var(&opts.seed, "seed", defaults.Seed, "Random seed (0 = seed from the clock)")
	fs.StringVar(&opts.sceneName, "scene", "sphere", "Built-in scene name or path to a .lisp scene script")
	fs.StringVar(&opts.outfile, "out", "", "Output file (.ppm, .png, .bmp, .tif, .tiff); default output/<scene>/render_<run id>.ppm")
	fs.IntVar(&opts.preview, "preview", 0, "Also write a PNG preview at most N pixels on its longer side")
	fs.BoolVar(&opts.normals, "normals", false, "Shade by surface normal instead of tracing materials")
	fs.BoolVar(&opts.verbose, "verbose", false, "Log progress for every row")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return opts, fs, err
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, fs, nil
}

var aspectPattern = regexp.MustCompile(`^\s*([0-9]*\.?[0-9]+)\s*[:/x]\s*([0-9]*\.?[0-9]+)\s*$`)

// parseAspect accepts "16:9", "4/3", "2x1" or a single number
func parseAspect(s string) (float64, error) {
	if m := aspectPattern.FindStringSubmatch(s); m != nil {
		w, _ := strconv.ParseFloat(m[1], 64)
		h, _ := strconv.ParseFloat(m[2], 64)
		if w <= 0 || h <= 0 {
			return 0, errors.Errorf("aspect ratio %q must have positive sides", s)
		}
		return w / h, nil
	}
	ratio, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.Errorf("aspect ratio %q is not WIDTH:HEIGHT", s)
	}
	return ratio, nil
}

// buildConfig turns options into a validated render config
func buildConfig(opts options) (renderer.Config, error) {
	aspect, err := parseAspect(opts.aspect)
	if err != nil {
		return renderer.Config{}, err
	}

	toRow := opts.toRow
	if toRow < 0 {
		toRow = opts.height
	}
	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	config := renderer.Config{
		AspectRatio:     aspect,
		FovRadians:      core.Radians(opts.fovDeg),
		ApertureRadius:  opts.aperture,
		ImageHeight:     opts.height,
		RowRange:        renderer.RowRange{From: opts.fromRow, To: toRow},
		RaysPerPixel:    opts.rays,
		MaxScatterDepth: opts.depth,
		Outfile:         opts.outfile,
		Verbose:         opts.verbose,
		Workers:         opts.workers,
		Seed:            seed,
		ShadeNormals:    opts.normals,
	}
	if err := config.Validate(); err != nil {
		return renderer.Config{}, errors.Wrap(err, "invalid options")
	}
	return config, nil
}

// cameraOverrides returns the lens settings given explicitly on the command
// line; these win over the scene's own camera
func cameraOverrides(opts options, config renderer.Config) renderer.CameraConfig {
	override := renderer.CameraConfig{AspectRatio: config.AspectRatio}
	if opts.set["fov"] {
		override.FovRadians = config.FovRadians
	}
	if opts.set["aperture"] {
		override.ApertureRadius = config.ApertureRadius
	}
	return override
}

// createScene loads a built-in scene or a scene script
func createScene(name string) (*scene.Scene, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("scene name cannot be empty")
	}
	return scene.Load(name)
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// outputPath picks the file to write: -out if given, otherwise
// output/<scene>/render_<run id>.ppm
func outputPath(config renderer.Config, sceneName, runID string) string {
	if config.Outfile != "" {
		return config.Outfile
	}
	dir := unsafeNameChars.ReplaceAllString(strings.ToLower(sceneName), "-")
	dir = strings.Trim(dir, "-")
	if dir == "" {
		dir = "scene"
	}
	return filepath.Join("output", dir, fmt.Sprintf("render_%s.ppm", runID))
}

// createOutputDir makes sure the directory of path exists
func createOutputDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}
	return nil
}

// previewPath puts the preview next to the output: out.ppm -> out_preview.png
func previewPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "_preview.png"
}

func printHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Crayfish Raytracer")
	fmt.Fprintln(w, "Usage: crayfish [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")

	scenes, err := scene.ListAllScenes(scenesDir)
	if err != nil {
		fmt.Fprintf(w, "  (error listing scenes: %v)\n", err)
		return
	}
	for _, info := range scenes {
		fmt.Fprintf(w, "  %-14s %s\n", info.ID, info.Description)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts, fs, err := parseFlags(args, stdout)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if opts.help {
		printHelp(stdout, fs)
		return nil
	}

	config, err := buildConfig(opts)
	if err != nil {
		return err
	}

	selected, err := createScene(opts.sceneName)
	if err != nil {
		return err
	}

	logger := renderer.NewDefaultLogger()
	logger.Printf("Using scene %q (%d objects)\n", selected.Name, selected.GetObjectCount())

	camera := selected.NewCamera(config, cameraOverrides(opts, config))
	r := renderer.NewRenderer(selected.World, camera, config, logger)

	path := outputPath(config, opts.sceneName, r.RunID().String())
	if err := createOutputDir(path); err != nil {
		return err
	}

	out := canvas.New(config.ImageWidth(), config.ImageHeight)
	if _, err := r.Render(ctx, out); err != nil {
		return errors.Wrap(err, "render failed")
	}

	if err := out.Save(path); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", path)

	if opts.preview > 0 {
		preview := previewPath(path)
		if err := out.SavePreview(preview, opts.preview); err != nil {
			return err
		}
		logger.Printf("Preview saved as %s\n", preview)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

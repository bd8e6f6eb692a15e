package main

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-crayfish/pkg/renderer"
)

func TestParseAspect(t *testing.T) {
	tests := []struct {
		input       string
		expected    float64
		expectError bool
	}{
		{"16:9", 16.0 / 9.0, false},
		{"1:1", 1, false},
		{"4/3", 4.0 / 3.0, false},
		{"2x1", 2, false},
		{" 3 : 2 ", 1.5, false},
		{"1.5", 1.5, false},
		{"0:1", 0, true},
		{"1:0", 0, true},
		{"wide", 0, true},
		{"16:", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseAspect(tt.input)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for %q, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for %q: %v", tt.input, err)
			}
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestBuildConfig_Defaults(t *testing.T) {
	opts, _, err := parseFlags(nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}
	config, err := buildConfig(opts)
	if err != nil {
		t.Fatalf("buildConfig failed: %v", err)
	}

	defaults := renderer.DefaultConfig()
	if math.Abs(config.AspectRatio-defaults.AspectRatio) > 1e-12 {
		t.Errorf("Expected aspect %v, got %v", defaults.AspectRatio, config.AspectRatio)
	}
	if math.Abs(config.FovRadians-defaults.FovRadians) > 1e-12 {
		t.Errorf("Expected fov %v, got %v", defaults.FovRadians, config.FovRadians)
	}
	if config.RowRange != defaults.RowRange {
		t.Errorf("Expected rows %v, got %v", defaults.RowRange, config.RowRange)
	}
	if config.RaysPerPixel != defaults.RaysPerPixel || config.MaxScatterDepth != defaults.MaxScatterDepth {
		t.Errorf("Unexpected quality settings %+v", config)
	}
	if config.Seed != defaults.Seed {
		t.Errorf("Expected seed %d, got %d", defaults.Seed, config.Seed)
	}
}

func TestBuildConfig_Flags(t *testing.T) {
	args := []string{
		"-aspect", "1:1", "-fov", "60", "-aperture", "0.1", "-height", "40",
		"-from-row", "10", "-to-row", "20", "-rays", "3", "-depth", "4",
		"-workers", "2", "-seed", "0", "-normals", "-verbose", "-out", "x.png",
	}
	opts, _, err := parseFlags(args, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}
	config, err := buildConfig(opts)
	if err != nil {
		t.Fatalf("buildConfig failed: %v", err)
	}

	if config.AspectRatio != 1 || config.ImageWidth() != 40 {
		t.Errorf("Expected a 40x40 image, got aspect %v width %d", config.AspectRatio, config.ImageWidth())
	}
	if math.Abs(config.FovRadians-math.Pi/3) > 1e-12 {
		t.Errorf("Expected fov π/3, got %v", config.FovRadians)
	}
	if config.RowRange != (renderer.RowRange{From: 10, To: 20}) {
		t.Errorf("Expected rows [10, 20), got %v", config.RowRange)
	}
	if config.Seed == 0 {
		t.Error("Expected seed 0 to be replaced by a clock seed")
	}
	if !config.ShadeNormals || !config.Verbose || config.Outfile != "x.png" || config.Workers != 2 {
		t.Errorf("Unexpected config %+v", config)
	}
	if !opts.set["fov"] || !opts.set["aperture"] || opts.set["scene"] {
		t.Errorf("Unexpected explicitly set flags %v", opts.set)
	}
}

func TestBuildConfig_Invalid(t *testing.T) {
	tests := [][]string{
		{"-aspect", "wide"},
		{"-height", "0"},
		{"-from-row", "50", "-to-row", "10"},
		{"-to-row", "101"},
		{"-rays", "0"},
		{"-depth", "-1"},
		{"-fov", "200"},
	}

	for _, args := range tests {
		opts, _, err := parseFlags(args, &bytes.Buffer{})
		if err != nil {
			t.Fatalf("parseFlags(%v) failed: %v", args, err)
		}
		if _, err := buildConfig(opts); err == nil {
			t.Errorf("Expected error for %v", args)
		}
	}

	if _, _, err := parseFlags([]string{"-rays", "many"}, &bytes.Buffer{}); err == nil {
		t.Error("Expected parse error for a non-numeric flag")
	}
}

func TestCameraOverrides(t *testing.T) {
	opts, _, _ := parseFlags([]string{"-fov", "30"}, &bytes.Buffer{})
	config, err := buildConfig(opts)
	if err != nil {
		t.Fatalf("buildConfig failed: %v", err)
	}

	override := cameraOverrides(opts, config)
	if override.FovRadians != config.FovRadians {
		t.Errorf("Expected explicit fov to override, got %v", override.FovRadians)
	}
	if override.ApertureRadius != 0 {
		t.Errorf("Expected aperture left to the scene, got %v", override.ApertureRadius)
	}
	if override.AspectRatio != config.AspectRatio {
		t.Errorf("Expected aspect ratio %v, got %v", config.AspectRatio, override.AspectRatio)
	}
}

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"sphere scene", "sphere", false},
		{"cube scene", "cube", false},
		{"glass cubes scene", "glass-cubes", false},
		{"materials scene", "materials", false},

		// Scene scripts
		{"three spheres script", "scenes/three-spheres.lisp", false},
		{"tumbling cubes script", "scenes/tumbling-cubes.lisp", false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"missing script", "scenes/nonexistent.lisp", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene, err := createScene(tt.sceneType)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if scene != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s', got %T", tt.sceneType, scene)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if scene.GetObjectCount() == 0 {
				t.Errorf("Scene '%s' has no objects", tt.sceneType)
			}
			if scene.CameraConfig.LookFrom.Equals(scene.CameraConfig.LookAt) {
				t.Errorf("Scene '%s' camera looks at its own position", tt.sceneType)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	config := renderer.DefaultConfig()

	got := outputPath(config, "glass-cubes", "abc")
	if expected := filepath.Join("output", "glass-cubes", "render_abc.ppm"); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}

	got = outputPath(config, "scenes/Three Spheres.lisp", "abc")
	if expected := filepath.Join("output", "scenes-three-spheres-lisp", "render_abc.ppm"); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}

	config.Outfile = "custom.png"
	if got := outputPath(config, "cube", "abc"); got != "custom.png" {
		t.Errorf("Expected -out to win, got %q", got)
	}

	if got := previewPath("out/render.ppm"); got != "out/render_preview.png" {
		t.Errorf("Unexpected preview path %q", got)
	}
}

func TestRun_Help(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), []string{"-help"}, &out); err != nil {
		t.Fatalf("run -help failed: %v", err)
	}
	text := out.String()
	for _, want := range []string{"Usage:", "-scene", "Available scenes:", "glass-cubes", "three-spheres.lisp"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected help to mention %q", want)
		}
	}
}

func TestRun_Render(t *testing.T) {
	dir := t.TempDir()
	outfile := filepath.Join(dir, "nested", "cube.png")
	args := []string{
		"-scene", "cube", "-aspect", "1:1", "-height", "8", "-rays", "2",
		"-depth", "3", "-seed", "7", "-out", outfile, "-preview", "4",
	}

	if err := run(context.Background(), args, &bytes.Buffer{}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for _, path := range []string{outfile, previewPath(outfile)} {
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Errorf("Expected %s to be written: %v", path, err)
		}
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outfile := filepath.Join(t.TempDir(), "never.ppm")
	args := []string{"-scene", "sphere", "-height", "8", "-rays", "1", "-out", outfile}
	if err := run(ctx, args, &bytes.Buffer{}); err == nil {
		t.Error("Expected cancelled render to fail")
	}
	if _, err := os.Stat(outfile); !os.IsNotExist(err) {
		t.Errorf("Expected no output file after cancellation, got %v", err)
	}
}

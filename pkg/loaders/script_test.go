package loaders

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-crayfish/pkg/core"
	"github.com/df07/go-crayfish/pkg/geometry"
	"github.com/df07/go-crayfish/pkg/material"
	"github.com/pkg/errors"
)

const glassScene = `
; a red ball above a glass block
(def red (lambertian 0.8 0.1 0.1))
(sphere :material red :transform (translate 0 1 0))
(cube :material (glass 1.5)
      :transform (chain (scale 2 2 2) (rotate :y 90)))
(sphere)
(camera :from (vec3 2 2 2) :at (vec3 0 0 0) :fov 60 :aperture 0.1)
`

func TestEvaluate_Empty(t *testing.T) {
	for _, source := range []string{"", "   \n\t"} {
		script, err := Evaluate(source)
		if err != nil {
			t.Fatalf("Expected no error for %q, got %v", source, err)
		}
		if script.World.Len() != 0 {
			t.Errorf("Expected empty world, got %d objects", script.World.Len())
		}
		if script.Camera != nil {
			t.Errorf("Expected no camera, got %+v", script.Camera)
		}
	}
}

func TestEvaluate_Scene(t *testing.T) {
	script, err := Evaluate(glassScene)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	objects := script.World.Objects()
	if len(objects) != 3 {
		t.Fatalf("Expected 3 objects, got %d", len(objects))
	}

	ball := objects[0]
	if ball.Shape() != geometry.Sphere {
		t.Errorf("Expected sphere, got %v", ball.Shape())
	}
	if _, ok := ball.Material().(*material.Lambertian); !ok {
		t.Errorf("Expected lambertian, got %T", ball.Material())
	}
	if got := ball.Transform().Point(core.Origin); !got.Equals(core.NewPoint(0, 1, 0)) {
		t.Errorf("Expected ball centered at (0, 1, 0), got %v", got)
	}

	block := objects[1]
	if block.Shape() != geometry.Cube {
		t.Errorf("Expected cube, got %v", block.Shape())
	}
	if _, ok := block.Material().(*material.Dielectric); !ok {
		t.Errorf("Expected glass, got %T", block.Material())
	}
	// scaled first, then rotated
	if got := block.Transform().Point(core.NewPoint(1, 0, 0)); !got.Equals(core.NewPoint(0, 0, -2)) {
		t.Errorf("Expected (1, 0, 0) to map to (0, 0, -2), got %v", got)
	}

	if _, ok := objects[2].Material().(*material.Lambertian); !ok {
		t.Errorf("Expected default material, got %T", objects[2].Material())
	}

	camera := script.Camera
	if camera == nil {
		t.Fatal("Expected a camera")
	}
	if !camera.LookFrom.Equals(core.NewPoint(2, 2, 2)) || !camera.LookAt.Equals(core.Origin) {
		t.Errorf("Unexpected camera placement %+v", camera)
	}
	if !core.ApproxEqual(camera.FovRadians, math.Pi/3) {
		t.Errorf("Expected fov π/3, got %v", camera.FovRadians)
	}
	if camera.ApertureRadius != 0.1 {
		t.Errorf("Expected aperture 0.1, got %v", camera.ApertureRadius)
	}
}

func TestEvaluate_FreshSandboxPerCall(t *testing.T) {
	if _, err := Evaluate(`(def shared (glass 1.5))`); err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if _, err := Evaluate(`(cube :material shared)`); err == nil {
		t.Error("Expected definitions not to leak between evaluations")
	}
}

func TestEvaluate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		message string
	}{
		{"material type", `(sphere :material 5)`, "expected material"},
		{"transform type", `(cube :transform (vec3 1 2 3))`, "expected transform"},
		{"vec3 arity", `(vec3 1 2)`, "expected 3 arguments"},
		{"metal arity", `(metal 1 1 1)`, "expected 4 arguments"},
		{"bad number", `(translate 1 "two" 3)`, "expected number"},
		{"bad axis", `(rotate :w 10)`, "invalid axis"},
		{"singular", `(sphere :transform (scale 0 1 1))`, "not invertible"},
		{"glass index", `(glass 0)`, "refractive index"},
		{"camera target", `(camera :from (vec3 1 1 1))`, "missing :at"},
		{"camera degenerate", `(camera :from (vec3 1 1 1) :at (vec3 1 1 1))`, "must differ"},
		{"positional shape arg", `(sphere 1)`, "unexpected positional"},
		{"unknown function", `(torus)`, ""},
		{"unbalanced", `(sphere`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.source)
			if err == nil {
				t.Fatal("Expected an error")
			}
			var evalErr EvalError
			if !errors.As(err, &evalErr) {
				t.Fatalf("Expected EvalError, got %T: %v", err, err)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("Expected error containing %q, got %q", tt.message, err.Error())
			}
		})
	}
}

func TestParseZygomysError(t *testing.T) {
	tests := []struct {
		msg      string
		expected EvalError
	}{
		{"Error on line 3: unexpected token", EvalError{Line: 3, Message: "unexpected token"}},
		{"error on line 12:   bad\n", EvalError{Line: 12, Message: "bad"}},
		{"line 7: oops", EvalError{Line: 7, Message: "oops"}},
		{"  something broke  ", EvalError{Message: "something broke"}},
	}

	for _, tt := range tests {
		got := parseZygomysError(errors.New(tt.msg))
		if got != tt.expected {
			t.Errorf("parseZygomysError(%q) = %+v, want %+v", tt.msg, got, tt.expected)
		}
	}

	if got := (EvalError{Line: 2, Message: "x"}).Error(); got != "line 2: x" {
		t.Errorf("Expected %q, got %q", "line 2: x", got)
	}
	if got := (EvalError{Message: "x"}).Error(); got != "x" {
		t.Errorf("Expected %q, got %q", "x", got)
	}
}

func TestWaitWithTimeout(t *testing.T) {
	never := make(chan evalResult)
	start := time.Now()
	_, err := waitWithTimeout(never, 20*time.Millisecond)
	if err == nil || !strings.Contains(err.Error(), "timed out") {
		t.Fatalf("Expected timeout error, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Timeout took too long: %v", elapsed)
	}

	ready := make(chan evalResult, 1)
	want := &Script{World: geometry.NewGroup()}
	ready <- evalResult{script: want}
	got, err := waitWithTimeout(ready, time.Second)
	if err != nil || got != want {
		t.Errorf("Expected the ready result, got %v, %v", got, err)
	}
}

func TestValidateFilePath(t *testing.T) {
	tests := []struct {
		path  string
		valid bool
	}{
		{"scenes/cubes.lisp", true},
		{"/tmp/x/SCENE.LISP", true},
		{"", false},
		{"scene.pbrt", false},
		{"scene", false},
		{"bad\x00.lisp", false},
		{strings.Repeat("a", 600) + ".lisp", false},
	}

	for _, tt := range tests {
		err := validateFilePath(tt.path)
		if (err == nil) != tt.valid {
			t.Errorf("validateFilePath(%q): expected valid=%v, got %v", tt.path, tt.valid, err)
		}
	}
}

func TestLoadScript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.lisp")
	if err := os.WriteFile(path, []byte(glassScene), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	script, err := LoadScript(path)
	if err != nil {
		t.Fatalf("LoadScript failed: %v", err)
	}
	if script.World.Len() != 3 {
		t.Errorf("Expected 3 objects, got %d", script.World.Len())
	}

	if _, err := LoadScript(filepath.Join(dir, "missing.lisp")); err == nil {
		t.Error("Expected error for a missing file")
	}

	broken := filepath.Join(dir, "broken.lisp")
	if err := os.WriteFile(broken, []byte("(vec3 1)"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	_, err = LoadScript(broken)
	var evalErr EvalError
	if !errors.As(err, &evalErr) {
		t.Errorf("Expected a wrapped EvalError, got %v", err)
	}
}

package scene

import (
	"slices"

	"github.com/df07/go-crayfish/pkg/core"
	"github.com/df07/go-crayfish/pkg/geometry"
	"github.com/df07/go-crayfish/pkg/material"
	"github.com/df07/go-crayfish/pkg/renderer"
	"github.com/df07/go-crayfish/pkg/transform"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// ErrUnknownScene is returned for a name that is neither built in nor a script
var ErrUnknownScene = errors.New("unknown scene")

var builtins = map[string]func() *Scene{
	"sphere":      NewSphereScene,
	"cube":        NewCubeScene,
	"glass-cubes": NewGlassCubesScene,
	"materials":   NewMaterialsScene,
}

// BuiltinNames returns the built-in scene names in sorted order
func BuiltinNames() []string {
	names := lo.Keys(builtins)
	slices.Sort(names)
	return names
}

// NewBuiltinScene creates the built-in scene called name
func NewBuiltinScene(name string) (*Scene, error) {
	build, ok := builtins[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownScene, "%q (built-in scenes: %v)", name, BuiltinNames())
	}
	return build(), nil
}

func newScene(name, description string, cameraConfig renderer.CameraConfig) *Scene {
	return &Scene{
		Name:         name,
		Description:  description,
		World:        geometry.NewGroup(),
		CameraConfig: cameraConfig,
	}
}

// NewSphereScene places a unit sphere 4.5 units in front of the camera
func NewSphereScene() *Scene {
	s := newScene("sphere", "Single sphere straight ahead of the camera", renderer.CameraConfig{
		LookFrom: core.NewPoint(0, 0, -0.5),
		LookAt:   core.NewPoint(0, 0, 4),
	})
	s.add(geometry.NewSphere(), transform.Translation(0, 0, 4))
	return s
}

// NewCubeScene is a single default cube viewed from (2, 2, 2)
func NewCubeScene() *Scene {
	s := newScene("cube", "Single cube seen from a corner", renderer.CameraConfig{
		LookFrom: core.NewPoint(2, 2, 2),
		LookAt:   core.Origin,
	})
	s.add(geometry.NewCube(), transform.IdentityAffine())
	return s
}

// NewGlassCubesScene places three glass cubes at 0, -3 and -6 on every axis
func NewGlassCubesScene() *Scene {
	s := newScene("glass-cubes", "Three glass cubes along the diagonal", renderer.CameraConfig{
		LookFrom: core.NewPoint(2, 2, 2),
		LookAt:   core.Origin,
	})
	for _, offset := range []float64{0, -3, -6} {
		cube := geometry.NewCube().WithMaterial(material.NewDielectric(1.52))
		s.add(cube, transform.Translation(offset, offset, offset))
	}
	return s
}

// NewMaterialsScene shows every material kind side by side
func NewMaterialsScene() *Scene {
	s := newScene("materials", "Diffuse, metal and glass objects on a floor", renderer.CameraConfig{
		LookFrom:       core.NewPoint(0, 1.5, 6),
		LookAt:         core.NewPoint(0, 0, 0),
		FovRadians:     core.Radians(40),
		ApertureRadius: 0.02,
	})

	// Floor: a flattened cube whose top face is y = -1
	floor := geometry.NewCube().WithMaterial(material.NewLambertian(core.NewColor(0.5, 0.5, 0.5)))
	s.add(floor, transform.Scaling(20, 1, 20).Translate(0, -2, 0))

	diffuse := geometry.NewSphere().WithMaterial(material.NewLambertian(core.NewColor(0.1, 0.2, 0.5)))
	s.add(diffuse, transform.Translation(-2.2, 0, 0))

	glass := geometry.NewSphere().WithMaterial(material.NewDielectric(1.5))
	s.add(glass, transform.IdentityAffine())

	gold := geometry.NewSphere().WithMaterial(material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 0.2))
	s.add(gold, transform.Translation(2.2, 0, 0))

	mirror := geometry.NewCube().WithMaterial(material.NewMetal(core.NewColor(0.9, 0.9, 0.9), 0))
	s.add(mirror, transform.Scaling(0.4, 0.4, 0.4).
		Rotate(transform.Y, core.Radians(30)).
		Shear(0.2, 0, 0, 0, 0, 0).
		Translate(0, -0.6, 2))

	return s
}

package scene

import (
	"github.com/df07/go-crayfish/pkg/geometry"
	"github.com/df07/go-crayfish/pkg/renderer"
	"github.com/df07/go-crayfish/pkg/transform"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	Description  string
	World        *geometry.Group
	CameraConfig renderer.CameraConfig // Placement; zero lens fields fall back to the render config
}

// NewCamera builds the scene's camera. Fields the scene leaves zero come from
// config; overrides win over both.
func (s *Scene) NewCamera(config renderer.Config, cameraOverrides ...renderer.CameraConfig) *renderer.Camera {
	cameraConfig := renderer.MergeCameraConfig(renderer.CameraConfig{
		AspectRatio:    config.AspectRatio,
		FovRadians:     config.FovRadians,
		ApertureRadius: config.ApertureRadius,
	}, s.CameraConfig)

	for _, override := range cameraOverrides {
		cameraConfig = renderer.MergeCameraConfig(cameraConfig, override)
	}
	return renderer.NewCamera(cameraConfig)
}

// GetObjectCount returns the number of objects in the scene
func (s *Scene) GetObjectCount() int {
	return s.World.Len()
}

// add places an object in the world; built-in scenes are fixed, so failures are bugs
func (s *Scene) add(object *geometry.Object, t transform.Affine) {
	object, err := object.WithTransform(t)
	if err != nil {
		panic(err)
	}
	if err := s.World.Add(object); err != nil {
		panic(err)
	}
}

package scene

import (
	"path/filepath"
	"strings"

	"github.com/df07/go-crayfish/pkg/core"
	"github.com/df07/go-crayfish/pkg/loaders"
	"github.com/df07/go-crayfish/pkg/renderer"
	"github.com/pkg/errors"
)

// defaultScriptCamera is used by scripts that never call (camera ...)
var defaultScriptCamera = renderer.CameraConfig{
	LookFrom: core.NewPoint(0, 0, -5),
	LookAt:   core.Origin,
}

// NewScriptScene creates a scene from a scene script file
func NewScriptScene(path string) (*Scene, error) {
	script, err := loaders.LoadScript(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load scene script")
	}

	info, err := ParseScriptMetadata(path)
	if err != nil {
		return nil, err
	}

	cameraConfig := defaultScriptCamera
	if script.Camera != nil {
		cameraConfig = *script.Camera
	}

	return &Scene{
		Name:         info.Name,
		Description:  info.Description,
		World:        script.World,
		CameraConfig: cameraConfig,
	}, nil
}

// Load resolves a -scene argument: a path ending in .lisp is evaluated as a
// script, anything else names a built-in scene
func Load(nameOrPath string) (*Scene, error) {
	if strings.EqualFold(filepath.Ext(nameOrPath), loaders.ScriptExtension) {
		return NewScriptScene(nameOrPath)
	}
	return NewBuiltinScene(nameOrPath)
}

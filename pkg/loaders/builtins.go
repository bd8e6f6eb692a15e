package loaders

import (
	"fmt"
	"strings"

	"github.com/df07/go-crayfish/pkg/core"
	"github.com/df07/go-crayfish/pkg/geometry"
	"github.com/df07/go-crayfish/pkg/material"
	"github.com/df07/go-crayfish/pkg/renderer"
	"github.com/df07/go-crayfish/pkg/transform"
	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/pkg/errors"
)

// Values passed between builtins. zygomys only needs SexpString and Type.

type sexpVec3 struct {
	x, y, z float64
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.x, v.y, v.z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

type sexpMaterial struct {
	name string
	mat  material.Material
}

func (m *sexpMaterial) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s)", m.name)
}
func (m *sexpMaterial) Type() *zygo.RegisteredType { return nil }

type sexpTransform struct {
	affine transform.Affine
}

func (t *sexpTransform) SexpString(ps *zygo.PrintState) string {
	return "(transform)"
}
func (t *sexpTransform) Type() *zygo.RegisteredType { return nil }

type sexpObject struct {
	object *geometry.Object
}

func (o *sexpObject) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s)", o.object.Shape())
}
func (o *sexpObject) Type() *zygo.RegisteredType { return nil }

// kwArgs splits an argument list into keyword and positional arguments
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := keyword(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
		} else {
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// keyword reports whether s is a preprocessed :keyword
func keyword(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, errors.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toFloats(args []zygo.Sexp, names ...string) ([]float64, error) {
	if len(args) != len(names) {
		return nil, errors.Errorf("expected %d arguments (%s), got %d", len(names), strings.Join(names, " "), len(args))
	}
	out := make([]float64, len(args))
	for i, arg := range args {
		f, err := toFloat64(arg)
		if err != nil {
			return nil, errors.Wrap(err, names[i])
		}
		out[i] = f
	}
	return out, nil
}

func toAxis(s zygo.Sexp) (transform.Axis, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return 0, errors.Errorf("expected axis :x, :y or :z, got %s", s.SexpString(nil))
	}
	name := strings.TrimPrefix(str.S, kwPrefix)
	axis, ok := transform.ParseAxis(name)
	if !ok {
		return 0, errors.Errorf("invalid axis %q, expected x, y or z", name)
	}
	return axis, nil
}

func toPoint(s zygo.Sexp) (core.Point, error) {
	if v, ok := s.(*sexpVec3); ok {
		return core.NewPoint(v.x, v.y, v.z), nil
	}
	return core.Point{}, errors.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

func toMaterial(s zygo.Sexp) (material.Material, error) {
	if m, ok := s.(*sexpMaterial); ok {
		return m.mat, nil
	}
	return nil, errors.Errorf("expected material, got %T (%s)", s, s.SexpString(nil))
}

func toTransform(s zygo.Sexp) (transform.Affine, error) {
	if t, ok := s.(*sexpTransform); ok {
		return t.affine, nil
	}
	return transform.Affine{}, errors.Errorf("expected transform, got %T (%s)", s, s.SexpString(nil))
}

// userFunction adapts a builtin body to zygomys, prefixing errors with the builtin name
func userFunction(body func(args []zygo.Sexp) (zygo.Sexp, error)) zygo.ZlispUserFunction {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		result, err := body(args)
		if err != nil {
			return zygo.SexpNull, errors.Wrap(err, name)
		}
		return result, nil
	}
}

// registerBuiltins installs the scene-script builtins. Objects and the camera
// are recorded on script as the program runs.
//
// Source must go through preprocessSource first so :keywords are recognizable.
func registerBuiltins(env *zygo.Zlisp, script *Script) {

	// (vec3 x y z)
	env.AddFunction("vec3", userFunction(func(args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := toFloats(args, "x", "y", "z")
		if err != nil {
			return nil, err
		}
		return &sexpVec3{f[0], f[1], f[2]}, nil
	}))

	// (lambertian r g b)
	env.AddFunction("lambertian", userFunction(func(args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := toFloats(args, "r", "g", "b")
		if err != nil {
			return nil, err
		}
		return &sexpMaterial{"lambertian", material.NewLambertian(core.NewColor(f[0], f[1], f[2]))}, nil
	}))

	// (metal r g b fuzz)
	env.AddFunction("metal", userFunction(func(args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := toFloats(args, "r", "g", "b", "fuzz")
		if err != nil {
			return nil, err
		}
		return &sexpMaterial{"metal", material.NewMetal(core.NewColor(f[0], f[1], f[2]), f[3])}, nil
	}))

	// (glass index)
	env.AddFunction("glass", userFunction(func(args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := toFloats(args, "index")
		if err != nil {
			return nil, err
		}
		if f[0] <= 0 {
			return nil, errors.Errorf("refractive index must be positive, got %g", f[0])
		}
		return &sexpMaterial{"glass", material.NewDielectric(f[0])}, nil
	}))

	// (translate x y z)
	env.AddFunction("translate", userFunction(func(args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := toFloats(args, "x", "y", "z")
		if err != nil {
			return nil, err
		}
		return &sexpTransform{transform.Translation(f[0], f[1], f[2])}, nil
	}))

	// (scale x y z)
	env.AddFunction("scale", userFunction(func(args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := toFloats(args, "x", "y", "z")
		if err != nil {
			return nil, err
		}
		return &sexpTransform{transform.Scaling(f[0], f[1], f[2])}, nil
	}))

	// (rotate :y 45), angle in degrees
	env.AddFunction("rotate", userFunction(func(args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return nil, errors.Errorf("expected an axis and an angle, got %d arguments", len(args))
		}
		axis, err := toAxis(args[0])
		if err != nil {
			return nil, err
		}
		angle, err := toFloat64(args[1])
		if err != nil {
			return nil, errors.Wrap(err, "angle")
		}
		return &sexpTransform{transform.Rotation(axis, core.Radians(angle))}, nil
	}))

	// (shear xy xz yx yz zx zy)
	env.AddFunction("shear", userFunction(func(args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := toFloats(args, "xy", "xz", "yx", "yz", "zx", "zy")
		if err != nil {
			return nil, err
		}
		return &sexpTransform{transform.Shearing(f[0], f[1], f[2], f[3], f[4], f[5])}, nil
	}))

	// (chain t1 t2 ...) applies t1 first
	env.AddFunction("chain", userFunction(func(args []zygo.Sexp) (zygo.Sexp, error) {
		combined := transform.IdentityAffine()
		for i, arg := range args {
			t, err := toTransform(arg)
			if err != nil {
				return nil, errors.Wrapf(err, "step %d", i+1)
			}
			combined = t.Mul(combined)
		}
		return &sexpTransform{combined}, nil
	}))

	addShape := func(shape geometry.Shape) zygo.ZlispUserFunction {
		// (sphere :material m :transform t)
		return userFunction(func(args []zygo.Sexp) (zygo.Sexp, error) {
			pa := parseArgs(args)
			if len(pa.positional) > 0 {
				return nil, errors.Errorf("unexpected positional argument %s", pa.positional[0].SexpString(nil))
			}

			object := geometry.NewObject(shape)
			if v, ok := pa.kw["material"]; ok {
				m, err := toMaterial(v)
				if err != nil {
					return nil, errors.Wrap(err, "material")
				}
				object = object.WithMaterial(m)
			}
			if v, ok := pa.kw["transform"]; ok {
				t, err := toTransform(v)
				if err != nil {
					return nil, errors.Wrap(err, "transform")
				}
				if object, err = object.WithTransform(t); err != nil {
					return nil, err
				}
			}

			if err := script.World.Add(object); err != nil {
				return nil, err
			}
			return &sexpObject{object}, nil
		})
	}
	env.AddFunction("sphere", addShape(geometry.Sphere))
	env.AddFunction("cube", addShape(geometry.Cube))

	// (camera :from (vec3 ..) :at (vec3 ..) :up (vec3 ..) :fov 90 :aperture 0.1 :focus 5)
	env.AddFunction("camera", userFunction(func(args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		camera := renderer.CameraConfig{}

		for _, key := range []string{"from", "at"} {
			v, ok := pa.kw[key]
			if !ok {
				return nil, errors.Errorf("missing :%s", key)
			}
			p, err := toPoint(v)
			if err != nil {
				return nil, errors.Wrap(err, key)
			}
			if key == "from" {
				camera.LookFrom = p
			} else {
				camera.LookAt = p
			}
		}
		if camera.LookFrom.Equals(camera.LookAt) {
			return nil, errors.New(":from and :at must differ")
		}
		if v, ok := pa.kw["up"]; ok {
			p, err := toPoint(v)
			if err != nil {
				return nil, errors.Wrap(err, "up")
			}
			camera.Up = p.Subtract(core.Origin)
		}

		numbers := map[string]*float64{
			"fov":      &camera.FovRadians,
			"aperture": &camera.ApertureRadius,
			"focus":    &camera.FocusDistance,
		}
		for key, dst := range numbers {
			if v, ok := pa.kw[key]; ok {
				f, err := toFloat64(v)
				if err != nil {
					return nil, errors.Wrap(err, key)
				}
				*dst = f
			}
		}
		camera.FovRadians = core.Radians(camera.FovRadians)

		script.Camera = &camera
		return zygo.SexpNull, nil
	}))
}

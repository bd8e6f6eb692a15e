package geometry

import (
	"github.com/df07/go-crayfish/pkg/core"
	"github.com/df07/go-crayfish/pkg/material"
	"github.com/df07/go-crayfish/pkg/transform"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Object places a shape in the world with a material and a transform.
// The inverse and inverse-transpose are derived whenever the transform is set
// and never recomputed per ray.
type Object struct {
	shape    Shape
	material material.Material

	transform        transform.Affine
	inverse          transform.Affine
	inverseTranspose transform.Affine

	group *Group
}

// NewObject creates an object with the identity transform and the default material
func NewObject(shape Shape) *Object {
	return &Object{
		shape:            shape,
		material:         material.Default(),
		transform:        transform.IdentityAffine(),
		inverse:          transform.IdentityAffine(),
		inverseTranspose: transform.IdentityAffine(),
	}
}

// NewSphere creates a unit sphere at the origin
func NewSphere() *Object {
	return NewObject(Sphere)
}

// NewCube creates a [-1, 1] cube at the origin
func NewCube() *Object {
	return NewObject(Cube)
}

// WithMaterial sets the object's material; nil restores the default
func (o *Object) WithMaterial(m material.Material) *Object {
	if m == nil {
		m = material.Default()
	}
	o.material = m
	return o
}

// WithTransform sets the object-to-world transform. A singular transform is
// rejected and leaves the object unchanged.
func (o *Object) WithTransform(t transform.Affine) (*Object, error) {
	inv, err := t.Inverse()
	if err != nil {
		return o, errors.Wrapf(err, "%s transform", o.shape)
	}
	o.transform = t
	o.inverse = inv
	o.inverseTranspose = inv.Transpose()
	return o, nil
}

// WithMatrix is WithTransform for a general matrix, which must be 4x4
func (o *Object) WithMatrix(m transform.Matrix) (*Object, error) {
	t, err := transform.AffineFromMatrix(m)
	if err != nil {
		return o, errors.Wrapf(err, "%s transform", o.shape)
	}
	return o.WithTransform(t)
}

// Shape returns the object's shape
func (o *Object) Shape() Shape { return o.shape }

// Material returns the object's material
func (o *Object) Material() material.Material { return o.material }

// Transform returns the object-to-world transform
func (o *Object) Transform() transform.Affine { return o.transform }

// Intersect transforms the ray into object space and intersects the shape.
// t values are comparable with world-space t because the direction is not renormalized.
func (o *Object) Intersect(ray core.Ray) []Intersection {
	local := o.inverse.Ray(ray)
	return lo.Map(o.shape.LocalIntersect(local), func(t float64, _ int) Intersection {
		return Intersection{T: t, Object: o}
	})
}

// NormalAt returns the outward unit normal at a world-space point on the surface
func (o *Object) NormalAt(worldPoint core.Point) core.Vector {
	localPoint := o.inverse.Point(worldPoint)
	localNormal := o.shape.LocalNormalAt(localPoint)
	return o.inverseTranspose.Vector(localNormal).Unit()
}

package geometry

import (
	"github.com/df07/go-crayfish/pkg/core"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// ErrAlreadyGrouped is returned when adding an object that belongs to another group
var ErrAlreadyGrouped = errors.New("object already belongs to a group")

// ErrNilObject is returned when adding a nil object to a group
var ErrNilObject = errors.New("nil object")

// Group is an insertion-ordered flat collection of objects.
// It intersects by testing every member; there is no spatial index.
type Group struct {
	objects []*Object
}

// NewGroup creates an empty group
func NewGroup() *Group {
	return &Group{}
}

// Add appends objects to the group. An object can belong to only one group.
func (g *Group) Add(objects ...*Object) error {
	if i := lo.IndexOf(objects, nil); i >= 0 {
		return errors.Wrapf(ErrNilObject, "argument %d", i)
	}
	if len(lo.Uniq(objects)) != len(objects) {
		return errors.Wrap(ErrAlreadyGrouped, "object listed twice")
	}
	for _, o := range objects {
		if o.group != nil {
			return errors.Wrapf(ErrAlreadyGrouped, "%s", o.shape)
		}
	}
	for _, o := range objects {
		o.group = g
		g.objects = append(g.objects, o)
	}
	return nil
}

// Objects returns the group's members in insertion order
func (g *Group) Objects() []*Object {
	return g.objects
}

// Len returns the number of objects in the group
func (g *Group) Len() int {
	return len(g.objects)
}

// Intersect concatenates every member's intersections in insertion order
func (g *Group) Intersect(ray core.Ray) []Intersection {
	return lo.FlatMap(g.objects, func(o *Object, _ int) []Intersection {
		return o.Intersect(ray)
	})
}

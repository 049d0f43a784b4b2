// Package scene holds the flat list of world objects drawn by every viewport.
package scene

import (
	"image/color"

	"github.com/Faultbox/frustumview/internal/engine/camera"
	"github.com/Faultbox/frustumview/internal/engine/picking"
	"github.com/Faultbox/frustumview/pkg/math"
)

// Painter draws world-space primitives through a camera.
// The renderer implements it.
type Painter interface {
	DrawPoint3D(cam *camera.Camera, p math.Point3D, c color.Color, radius float64)
	DrawLine3D(cam *camera.Camera, p0, p1 math.Point3D, c color.Color, width float64)
	DrawPolygon3D(cam *camera.Camera, points []math.Point3D, c color.Color)
}

// Drawable is anything that can paint itself.
type Drawable interface {
	Draw(p Painter, cam *camera.Camera)
}

// WorldObject is a drawable placed in the world by a model transform.
type WorldObject interface {
	Drawable
	Name() string
	Transform() *math.Transform
}

// Bounded objects can be picked with a ray.
type Bounded interface {
	Bounds() picking.AABB
}

// Scene is an ordered list of objects. Insertion order is paint order.
type Scene struct {
	objects []WorldObject
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{}
}

// Add appends objects. Objects added later are painted over earlier ones.
func (s *Scene) Add(objs ...WorldObject) {
	s.objects = append(s.objects, objs...)
}

// Objects returns the objects in paint order.
func (s *Scene) Objects() []WorldObject {
	return s.objects
}

// Len returns the number of objects.
func (s *Scene) Len() int {
	return len(s.objects)
}

// Draw asks every object to draw itself in insertion order.
func (s *Scene) Draw(p Painter, cam *camera.Camera) {
	for _, obj := range s.objects {
		obj.Draw(p, cam)
	}
}

// Pick returns the nearest bounded object hit by the ray.
func (s *Scene) Pick(ray picking.Ray) (obj WorldObject, dist float64, ok bool) {
	for _, o := range s.objects {
		b, isBounded := o.(Bounded)
		if !isBounded {
			continue
		}
		t, hit := ray.IntersectAABB(b.Bounds())
		if !hit {
			continue
		}
		if !ok || t < dist {
			obj, dist, ok = o, t, true
		}
	}
	return obj, dist, ok
}

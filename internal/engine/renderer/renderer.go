// Package renderer projects world-space primitives through a camera and paints
// them on a 2D surface.
package renderer

import (
	"image/color"

	"go.uber.org/zap"

	"github.com/Faultbox/frustumview/internal/engine/camera"
	"github.com/Faultbox/frustumview/internal/engine/picking"
	"github.com/Faultbox/frustumview/internal/engine/scene"
	"github.com/Faultbox/frustumview/internal/logger"
	"github.com/Faultbox/frustumview/pkg/math"
)

// Surface is an immediate-mode 2D drawing target. Coordinates are pixels with
// +y pointing down.
type Surface interface {
	Size() (width, height int)
	ClearRect(x, y, w, h float64)
	FillCircle(center math.Vec2, radius float64, c color.Color)
	Line(p0, p1 math.Vec2, c color.Color, width float64)
	FillPolygon(points []math.Vec2, c color.Color)
}

// Options configures a Renderer.
type Options struct {
	// OffsetX and OffsetY shift the viewport inside the surface.
	OffsetX, OffsetY float64
	// PointRadius is used by DrawPoints. Zero means DefaultPointRadius.
	PointRadius float64
}

// DefaultPointRadius is the radius of plain points.
const DefaultPointRadius = 1

// Stats counts primitives since the last Clear.
type Stats struct {
	Points   int
	Lines    int
	Polygons int
	// Culled counts primitives skipped because a vertex fell outside near/far.
	Culled int
}

// Renderer draws one viewport.
type Renderer struct {
	title    string
	surface  Surface
	opts     Options
	viewport math.Mat4
	stats    Stats
	log      *zap.Logger
}

// New creates a renderer covering the whole surface.
func New(title string, surface Surface, opts Options) *Renderer {
	if opts.PointRadius == 0 {
		opts.PointRadius = DefaultPointRadius
	}

	w, h := surface.Size()
	r := &Renderer{
		title:   title,
		surface: surface,
		opts:    opts,
		log:     logger.Named("renderer").With(zap.String("viewport", title)),
	}
	r.viewport = viewportMatrix(float64(w), float64(h), opts.OffsetX, opts.OffsetY)

	r.log.Debug("renderer created", zap.Int("width", w), zap.Int("height", h))
	return r
}

// viewportMatrix maps the [-1, 1] clip square to pixels.
func viewportMatrix(w, h, left, bottom float64) math.Mat4 {
	return math.Mat4{
		w / 2, 0, 0, w/2 + left,
		0, h / 2, 0, h/2 + bottom,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Title returns the viewport title.
func (r *Renderer) Title() string { return r.title }

// Surface returns the drawing target.
func (r *Renderer) Surface() Surface { return r.surface }

// ViewportMatrix returns the clip-to-pixel matrix.
func (r *Renderer) ViewportMatrix() math.Mat4 { return r.viewport }

// Stats returns the counters accumulated since the last Clear.
func (r *Renderer) Stats() Stats { return r.stats }

// Matrix returns the full world-to-pixel matrix:
// viewport * projection * flipY * lookAt * rotation.
func (r *Renderer) Matrix(cam *camera.Camera) math.Mat4 {
	return r.viewport.Mul(cam.Projection()).Mul(math.FlipY()).Mul(cam.ViewMatrix())
}

// Transform maps p to homogeneous pixel coordinates. The result is not divided
// by w. It reports false unless the camera-space depth of p lies strictly
// between far and near. A NaN depth is culled.
func (r *Renderer) Transform(cam *camera.Camera, p math.Point3D) (math.Point3D, bool) {
	cs := cam.ViewMatrix().MulVec(p)

	f := cam.Frustum()
	if !(cs.Z < f.Near && cs.Z > f.Far) {
		return math.Point3D{}, false
	}

	return r.viewport.Mul(cam.Projection()).Mul(math.FlipY()).MulVec(cs), true
}

// Project transforms p and performs the perspective divide.
func (r *Renderer) Project(cam *camera.Camera, p math.Point3D) (math.Vec2, bool) {
	t, ok := r.Transform(cam, p)
	if !ok {
		return math.Vec2{}, false
	}
	return t.Dehomogen().XY(), true
}

// Clear erases the surface and resets the frame counters.
func (r *Renderer) Clear() {
	if r.stats != (Stats{}) {
		r.log.Debug("frame",
			zap.Int("points", r.stats.Points),
			zap.Int("lines", r.stats.Lines),
			zap.Int("polygons", r.stats.Polygons),
			zap.Int("culled", r.stats.Culled),
		)
	}
	r.stats = Stats{}

	w, h := r.surface.Size()
	r.surface.ClearRect(0, 0, float64(w), float64(h))
}

// DrawPoint3D paints a filled circle at p.
func (r *Renderer) DrawPoint3D(cam *camera.Camera, p math.Point3D, c color.Color, radius float64) {
	s, ok := r.Project(cam, p)
	if !ok {
		r.stats.Culled++
		return
	}
	r.surface.FillCircle(s, radius, c)
	r.stats.Points++
}

// DrawLine3D strokes the segment p0-p1. Nothing is drawn if either end is culled.
func (r *Renderer) DrawLine3D(cam *camera.Camera, p0, p1 math.Point3D, c color.Color, width float64) {
	s0, ok0 := r.Project(cam, p0)
	s1, ok1 := r.Project(cam, p1)
	if !ok0 || !ok1 {
		r.stats.Culled++
		return
	}
	r.surface.Line(s0, s1, c, width)
	r.stats.Lines++
}

// DrawPolygon3D fills a convex polygon. The whole polygon is skipped if any
// vertex is culled.
func (r *Renderer) DrawPolygon3D(cam *camera.Camera, points []math.Point3D, c color.Color) {
	if len(points) == 0 {
		return
	}

	screen := make([]math.Vec2, 0, len(points))
	for _, p := range points {
		s, ok := r.Project(cam, p)
		if !ok {
			r.stats.Culled++
			return
		}
		screen = append(screen, s)
	}
	r.surface.FillPolygon(screen, c)
	r.stats.Polygons++
}

// DrawPoints paints a point cloud back to front.
func (r *Renderer) DrawPoints(cam *camera.Camera, points []math.Point3D, c color.Color) {
	projected := make([]math.Point3D, 0, len(points))
	for _, p := range points {
		t, ok := r.Transform(cam, p)
		if !ok {
			r.stats.Culled++
			continue
		}
		projected = append(projected, t.Dehomogen())
	}

	math.SortByDepth(projected)
	for _, p := range projected {
		r.surface.FillCircle(p.XY(), r.opts.PointRadius, c)
		r.stats.Points++
	}
}

// Gizmo colours for the x, y and -z axes.
var (
	GizmoOrigin = color.RGBA{A: 255}
	GizmoX      = color.RGBA{R: 255, A: 255}
	GizmoY      = color.RGBA{R: 144, G: 238, B: 144, A: 255}
	GizmoZ      = color.RGBA{B: 255, A: 255}
)

// DrawGizmos draws unit axis markers at pos: +x, +y and -z.
func (r *Renderer) DrawGizmos(cam *camera.Camera, pos math.Point3D) {
	axes := []struct {
		dir math.Vector3D
		c   color.Color
	}{
		{math.V3(1, 0, 0), GizmoX},
		{math.V3(0, 1, 0), GizmoY},
		{math.V3(0, 0, -1), GizmoZ},
	}

	r.DrawPoint3D(cam, pos, GizmoOrigin, 5)
	for _, a := range axes {
		r.DrawPoint3D(cam, pos.Add(a.dir), a.c, 5)
	}
	for _, a := range axes {
		r.DrawLine3D(cam, pos, pos.Add(a.dir), a.c, 2)
	}
}

// DrawFrustum outlines the view volume of other as seen through cam, dots its
// corners and marks its eye.
func (r *Renderer) DrawFrustum(cam, other *camera.Camera, c color.Color) {
	corners := other.FrustumWorldCorners()
	for _, e := range camera.FrustumEdges {
		r.DrawLine3D(cam, corners[e[0]], corners[e[1]], c, 1)
	}
	r.DrawPoints(cam, corners[:], c)
	r.DrawPoint3D(cam, other.Eye(), c, 3)
}

// DrawScene draws every object of s in insertion order.
func (r *Renderer) DrawScene(cam *camera.Camera, s *scene.Scene) {
	s.Draw(r, cam)
}

// ScreenRay returns the world-space ray under pixel (x, y). It reports false
// when the view matrix cannot be inverted, which is always the case for
// parallel projection.
func (r *Renderer) ScreenRay(cam *camera.Camera, x, y float64) (picking.Ray, bool) {
	inv, ok := r.Matrix(cam).Inverse()
	if !ok {
		return picking.Ray{}, false
	}
	return picking.Unproject(x, y, inv), true
}

var _ scene.Painter = (*Renderer)(nil)

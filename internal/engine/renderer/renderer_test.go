package renderer

import (
	"image/color"
	gomath "math"
	"testing"

	"github.com/Faultbox/frustumview/internal/engine/camera"
	"github.com/Faultbox/frustumview/internal/engine/scene"
	"github.com/Faultbox/frustumview/pkg/math"
)

// recordingSurface is a Surface that remembers every call.
type recordingSurface struct {
	w, h     int
	clears   [][4]float64
	circles  []math.Vec2
	lines    [][2]math.Vec2
	polygons [][]math.Vec2
	fills    []color.Color
}

func (s *recordingSurface) Size() (int, int) { return s.w, s.h }

func (s *recordingSurface) ClearRect(x, y, w, h float64) {
	s.clears = append(s.clears, [4]float64{x, y, w, h})
}

func (s *recordingSurface) FillCircle(c math.Vec2, _ float64, _ color.Color) {
	s.circles = append(s.circles, c)
}

func (s *recordingSurface) Line(p0, p1 math.Vec2, _ color.Color, _ float64) {
	s.lines = append(s.lines, [2]math.Vec2{p0, p1})
}

func (s *recordingSurface) FillPolygon(pts []math.Vec2, c color.Color) {
	s.polygons = append(s.polygons, pts)
	s.fills = append(s.fills, c)
}

const eps = 1e-9

func approxVec2(a, b math.Vec2) bool {
	return gomath.Abs(a.X-b.X) < eps && gomath.Abs(a.Y-b.Y) < eps
}

func newFront(t *testing.T) *camera.Camera {
	t.Helper()
	cam, err := camera.New(math.Pt(0, 0, 4), math.Origin(), math.V3(0, 1, 0), camera.Perspective)
	if err != nil {
		t.Fatalf("camera.New() error: %v", err)
	}
	return cam
}

func newRenderer(w, h int) (*Renderer, *recordingSurface) {
	s := &recordingSurface{w: w, h: h}
	return New("Front", s, Options{}), s
}

func TestViewportMatrix(t *testing.T) {
	r, _ := newRenderer(500, 400)
	vp := r.ViewportMatrix()

	tests := []struct {
		in   math.Point3D
		want math.Vec2
	}{
		{math.Pt(0, 0, 0), math.Vec2{X: 250, Y: 200}},
		{math.Pt(-1, -1, 0), math.Vec2{X: 0, Y: 0}},
		{math.Pt(1, 1, 0), math.Vec2{X: 500, Y: 400}},
	}
	for _, tt := range tests {
		if got := vp.MulVec(tt.in).XY(); !approxVec2(got, tt.want) {
			t.Errorf("viewport(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	shifted := New("shifted", &recordingSurface{w: 100, h: 100}, Options{OffsetX: 10, OffsetY: 20})
	if got := shifted.ViewportMatrix().MulVec(math.Origin()).XY(); !approxVec2(got, math.Vec2{X: 60, Y: 70}) {
		t.Errorf("offset viewport centre = %v, want (60,70)", got)
	}
}

func TestProject(t *testing.T) {
	cam := newFront(t)
	r, _ := newRenderer(500, 500)

	got, ok := r.Project(cam, math.Origin())
	if !ok || !approxVec2(got, math.Vec2{X: 250, Y: 250}) {
		t.Errorf("Project(origin) = %v, %v; want (250,250)", got, ok)
	}

	// World +y is screen up: the pixel row decreases.
	got, ok = r.Project(cam, math.Pt(0, 1, 0))
	if !ok || !approxVec2(got, math.Vec2{X: 250, Y: 187.5}) {
		t.Errorf("Project(0,1,0) = %v, %v; want (250,187.5)", got, ok)
	}

	got, ok = r.Project(cam, math.Pt(1, 0, 0))
	if !ok || !approxVec2(got, math.Vec2{X: 312.5, Y: 250}) {
		t.Errorf("Project(1,0,0) = %v, %v; want (312.5,250)", got, ok)
	}
}

func TestTransformMatchesMatrix(t *testing.T) {
	cam := newFront(t)
	cam.RotateBy(math.RotateY(20))
	r, _ := newRenderer(640, 480)

	p := math.Pt(0.3, -0.7, 1.2)
	got, ok := r.Transform(cam, p)
	if !ok {
		t.Fatal("point should be visible")
	}
	want := r.Matrix(cam).MulVec(p)
	for i, pair := range [][2]float64{{got.X, want.X}, {got.Y, want.Y}, {got.Z, want.Z}, {got.W, want.W}} {
		if gomath.Abs(pair[0]-pair[1]) > eps {
			t.Errorf("component %d: %v != %v", i, pair[0], pair[1])
		}
	}
}

func TestNearFarCulling(t *testing.T) {
	cam := newFront(t)
	cam.SetNearFar(-0.2, -100)
	r, _ := newRenderer(500, 500)

	tests := []struct {
		name    string
		p       math.Point3D
		visible bool
	}{
		{"in front", math.Pt(0, 0, -2), true},
		{"beyond far", math.Pt(0, 0, -200), false},
		{"behind camera", math.Pt(0, 0, 5), false},
		{"between eye and near", math.Pt(0, 0, 3.9), false},
		{"just inside near", math.Pt(0, 0, 3.7), true},
		{"just inside far", math.Pt(0, 0, -95), true},
		{"NaN", math.Pt(gomath.NaN(), 0, gomath.NaN()), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := r.Transform(cam, tt.p); ok != tt.visible {
				t.Errorf("Transform(%v) visible = %v, want %v", tt.p, ok, tt.visible)
			}
		})
	}
}

func TestCullingBoundsExclusive(t *testing.T) {
	cam := newFront(t)
	cam.SetNearFar(-0.5, -100)
	r, _ := newRenderer(500, 500)

	if _, ok := r.Transform(cam, math.Pt(0, 0, 3.5)); ok {
		t.Error("point on the near plane should be culled")
	}
	if _, ok := r.Transform(cam, math.Pt(0, 0, -96)); ok {
		t.Error("point on the far plane should be culled")
	}
	if _, ok := r.Transform(cam, math.Pt(0, 0, 3.4)); !ok {
		t.Error("point just past the near plane should be visible")
	}
}

func TestDrawPrimitivesCull(t *testing.T) {
	cam := newFront(t)
	visible := math.Pt(0, 0, 0)
	behind := math.Pt(0, 0, 10)

	t.Run("point", func(t *testing.T) {
		r, s := newRenderer(100, 100)
		r.DrawPoint3D(cam, visible, color.Black, 2)
		r.DrawPoint3D(cam, behind, color.Black, 2)
		if len(s.circles) != 1 || r.Stats().Points != 1 || r.Stats().Culled != 1 {
			t.Errorf("circles = %d stats = %+v", len(s.circles), r.Stats())
		}
	})

	t.Run("line", func(t *testing.T) {
		r, s := newRenderer(100, 100)
		r.DrawLine3D(cam, visible, math.Pt(1, 1, 0), color.Black, 1)
		r.DrawLine3D(cam, visible, behind, color.Black, 1)
		if len(s.lines) != 1 || r.Stats().Lines != 1 || r.Stats().Culled != 1 {
			t.Errorf("lines = %d stats = %+v", len(s.lines), r.Stats())
		}
	})

	t.Run("polygon skipped when any vertex is culled", func(t *testing.T) {
		r, s := newRenderer(100, 100)
		r.DrawPolygon3D(cam, []math.Point3D{visible, math.Pt(1, 0, 0), behind}, color.Black)
		if len(s.polygons) != 0 {
			t.Errorf("polygon drawn with a culled vertex")
		}
		r.DrawPolygon3D(cam, []math.Point3D{visible, math.Pt(1, 0, 0), math.Pt(0, 1, 0)}, color.Black)
		if len(s.polygons) != 1 || len(s.polygons[0]) != 3 {
			t.Errorf("polygons = %v", s.polygons)
		}
		r.DrawPolygon3D(cam, nil, color.Black)
		if st := r.Stats(); st.Polygons != 1 || st.Culled != 1 {
			t.Errorf("stats = %+v", st)
		}
	})
}

func TestClearResetsStats(t *testing.T) {
	cam := newFront(t)
	r, s := newRenderer(320, 200)
	r.DrawPoint3D(cam, math.Origin(), color.Black, 1)

	r.Clear()

	if r.Stats() != (Stats{}) {
		t.Errorf("Stats() after Clear = %+v", r.Stats())
	}
	if len(s.clears) != 1 || s.clears[0] != [4]float64{0, 0, 320, 200} {
		t.Errorf("clears = %v", s.clears)
	}
}

func TestDrawPointsBackToFront(t *testing.T) {
	cam := newFront(t)
	r, s := newRenderer(500, 500)

	near := math.Pt(0.5, 0, 2)
	far := math.Pt(-0.5, 0, -3)
	mid := math.Pt(0, 0.5, 0)
	r.DrawPoints(cam, []math.Point3D{near, far, mid, math.Pt(0, 0, 50)}, color.Black)

	if len(s.circles) != 3 || r.Stats().Culled != 1 {
		t.Fatalf("circles = %d stats = %+v", len(s.circles), r.Stats())
	}
	order := []math.Point3D{far, mid, near}
	for i, p := range order {
		want, _ := r.Project(cam, p)
		if !approxVec2(s.circles[i], want) {
			t.Errorf("circle %d = %v, want %v", i, s.circles[i], want)
		}
	}
}

func TestDrawGizmos(t *testing.T) {
	cam := newFront(t)
	r, s := newRenderer(500, 500)
	r.DrawGizmos(cam, math.Origin())

	if len(s.circles) != 4 || len(s.lines) != 3 {
		t.Errorf("circles = %d lines = %d, want 4 and 3", len(s.circles), len(s.lines))
	}
	// The +x marker is right of centre.
	if s.circles[1].X <= 250 {
		t.Errorf("+x gizmo at %v", s.circles[1])
	}
}

func TestDrawFrustum(t *testing.T) {
	front := newFront(t)
	top, err := camera.New(math.Pt(0, 4, 0), math.Origin(), math.V3(0, 0, -1), camera.Perspective)
	if err != nil {
		t.Fatalf("camera.New() error: %v", err)
	}
	top.SetNearFar(-0.1, -100)

	r, s := newRenderer(500, 500)
	r.DrawFrustum(top, front, color.Black)

	st := r.Stats()
	// 12 edges, 8 corner dots and the eye.
	if st.Lines+st.Points+st.Culled != len(camera.FrustumEdges)+8+1 {
		t.Errorf("stats = %+v", st)
	}
	if len(s.lines) == 0 {
		t.Error("expected some frustum edges to be visible from above")
	}
}

func TestDrawSceneOrder(t *testing.T) {
	cam := newFront(t)
	r, s := newRenderer(500, 500)

	a := color.RGBA{G: 255, A: 255}
	b := color.RGBA{B: 255, A: 255}
	sc := scene.New()
	sc.Add(scene.NewCube(math.Pt(-0.25, 0, 0), math.V3(0, 0, 0), 1, a, true))
	sc.Add(scene.NewCube(math.Pt(0.25, 0, 0), math.V3(0, 0, 0), 1, b, true))

	r.DrawScene(cam, sc)

	if len(s.fills) != 12 {
		t.Fatalf("got %d polygons, want 12", len(s.fills))
	}
	for i, c := range s.fills {
		want := color.Color(a)
		if i >= 6 {
			want = b
		}
		if c != want {
			t.Errorf("polygon %d colour = %v, want %v", i, c, want)
		}
	}
}

func TestScreenRay(t *testing.T) {
	cam := newFront(t)
	r, _ := newRenderer(500, 500)

	ray, ok := r.ScreenRay(cam, 250, 250)
	if !ok {
		t.Fatal("ScreenRay() failed for a perspective camera")
	}
	if ray.Origin.SubPoint(math.Pt(0, 0, 3)).Norm() > 1e-9 {
		t.Errorf("ray origin = %v, want (0,0,3) on the near plane", ray.Origin)
	}
	if ray.Direction.Sub(math.V3(0, 0, -1)).Norm() > 1e-9 {
		t.Errorf("ray direction = %v, want (0,0,-1)", ray.Direction)
	}

	// A ray through a projected point passes through that point.
	target := math.Pt(0.4, -0.3, 0.5)
	px, _ := r.Project(cam, target)
	ray, _ = r.ScreenRay(cam, px.X, px.Y)
	toTarget := target.SubPoint(ray.Origin)
	if ray.Direction.Cross(toTarget).Norm() > 1e-9 {
		t.Errorf("ray %+v misses %v", ray, target)
	}

	if err := cam.SetProjectionMode(camera.Parallel); err != nil {
		t.Fatalf("SetProjectionMode() error: %v", err)
	}
	if _, ok := r.ScreenRay(cam, 250, 250); ok {
		t.Error("parallel projection should not be invertible")
	}
}

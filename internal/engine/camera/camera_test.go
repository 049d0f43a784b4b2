package camera

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/frustumview/pkg/math"
)

const eps = 1e-9

func near(a, b float64) bool {
	return gomath.Abs(a-b) <= eps
}

func nearVec(a, b math.Vector3D) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func nearPoint(a, b math.Point3D) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z) && near(a.W, b.W)
}

func frontCamera(t *testing.T) *Camera {
	t.Helper()
	c, err := New(math.Pt(0, 0, 4), math.Origin(), math.V3(0, 1, 0), Perspective)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return c
}

func TestNewBasis(t *testing.T) {
	c := frontCamera(t)

	if !nearVec(c.Dir(), math.V3(0, 0, -1)) {
		t.Errorf("Dir() = %v, want (0,0,-1)", c.Dir())
	}
	if !nearVec(c.Right(), c.Dir().Cross(c.Up())) || !nearVec(c.Right(), math.V3(1, 0, 0)) {
		t.Errorf("Right() = %v, want dir x up = (1,0,0)", c.Right())
	}
	if !nearVec(c.Up(), math.V3(0, 1, 0)) {
		t.Errorf("Up() = %v, want (0,1,0)", c.Up())
	}
}

func TestNewOrthogonalizesUp(t *testing.T) {
	c, err := New(math.Pt(0, 0, 5), math.Origin(), math.V3(0, 3, 1), Perspective)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	for _, v := range []math.Vector3D{c.Dir(), c.Up(), c.Right()} {
		if !near(v.Norm(), 1) {
			t.Errorf("basis vector %v is not unit length", v)
		}
	}
	if !near(c.Dir().Dot(c.Up()), 0) || !near(c.Dir().Dot(c.Right()), 0) || !near(c.Up().Dot(c.Right()), 0) {
		t.Errorf("basis not orthogonal: dir %v up %v right %v", c.Dir(), c.Up(), c.Right())
	}
}

func TestTopCameraBasis(t *testing.T) {
	c, err := New(math.Pt(0, 4, 0), math.Origin(), math.V3(0, 0, -1), Perspective)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if !nearVec(c.Dir(), math.V3(0, -1, 0)) {
		t.Errorf("Dir() = %v, want (0,-1,0)", c.Dir())
	}
	if !nearVec(c.Right(), math.V3(1, 0, 0)) {
		t.Errorf("Right() = %v, want (1,0,0)", c.Right())
	}
}

func TestUnknownProjection(t *testing.T) {
	_, err := New(math.Pt(0, 0, 4), math.Origin(), math.V3(0, 1, 0), ProjectionMode(7))
	if !errors.Is(err, ErrUnknownProjection) {
		t.Errorf("New() error = %v, want ErrUnknownProjection", err)
	}

	c := frontCamera(t)
	if err := c.SetProjectionMode(ProjectionMode(-1)); !errors.Is(err, ErrUnknownProjection) {
		t.Errorf("SetProjectionMode() error = %v, want ErrUnknownProjection", err)
	}
	if c.Mode() != Perspective {
		t.Errorf("failed SetProjectionMode changed the mode to %v", c.Mode())
	}
}

func TestParseProjection(t *testing.T) {
	tests := []struct {
		in      string
		want    ProjectionMode
		wantErr bool
	}{
		{"perspective", Perspective, false},
		{"Parallel", Parallel, false},
		{" perspective ", Perspective, false},
		{"fisheye", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseProjection(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseProjection(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseProjection(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLookAt(t *testing.T) {
	c := frontCamera(t)

	// The eye sits at the camera-space origin.
	if got := c.LookAt().MulVec(c.Eye()); !nearPoint(got, math.Origin()) {
		t.Errorf("LookAt()*eye = %v, want origin", got)
	}
	// The world origin is 4 units in front of the camera.
	if got := c.LookAt().MulVec(math.Origin()); !nearPoint(got, math.Pt(0, 0, -4)) {
		t.Errorf("LookAt()*origin = %v, want (0,0,-4)", got)
	}
	if !c.LookAt().Mul(c.LookAtInverse()).ApproxEqual(math.Identity(), eps) {
		t.Error("LookAt * LookAtInverse should be identity")
	}
}

func TestLookAtMatchesMathGL(t *testing.T) {
	eye := math.Pt(3, 2, 5)
	c, err := New(eye, math.Pt(0, 1, 0), math.V3(0, 1, 0), Perspective)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	want := mgl64.LookAtV(mgl64.Vec3{3, 2, 5}, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 1, 0})
	got := mgl64.Mat4(c.LookAt().Transpose())
	if !got.ApproxEqualThreshold(want, 1e-9) {
		t.Errorf("LookAt mismatch:\ngot:  %v\nwant: %v", got, want)
	}
}

func TestMutatorsRecompute(t *testing.T) {
	t.Run("set position", func(t *testing.T) {
		c := frontCamera(t)
		c.SetPosition(math.Pt(0, 0, 10))
		if got := c.LookAt().MulVec(math.Origin()); !nearPoint(got, math.Pt(0, 0, -10)) {
			t.Errorf("after SetPosition, origin in camera space = %v, want (0,0,-10)", got)
		}
		if !nearVec(c.Dir(), math.V3(0, 0, -1)) {
			t.Errorf("SetPosition must not change Dir(), got %v", c.Dir())
		}
	})

	t.Run("translate", func(t *testing.T) {
		c := frontCamera(t)
		c.Translate(1, 0, 0)
		c.TranslateVec(math.V3(0, 2, 0))
		if c.Eye() != math.Pt(1, 2, 4) {
			t.Errorf("Eye() = %v, want (1,2,4)", c.Eye())
		}
		if got := c.LookAtInverse().MulVec(math.Origin()); !nearPoint(got, math.Pt(1, 2, 4)) {
			t.Errorf("LookAtInverse()*origin = %v, want the eye", got)
		}
	})

	t.Run("near far", func(t *testing.T) {
		c := frontCamera(t)
		before := c.Projection()
		c.SetNearFar(-0.2, -100)
		if c.Projection() == before {
			t.Error("SetNearFar should rebuild the projection")
		}
		if c.Projection() != c.Frustum().Matrix() {
			t.Error("projection should equal the frustum matrix")
		}
	})

	t.Run("fov", func(t *testing.T) {
		c := frontCamera(t)
		c.SetFov(60, 45)
		if f := c.Frustum(); f.FovX != 60 || f.FovY != 45 {
			t.Errorf("Frustum() fov = (%v,%v), want (60,45)", f.FovX, f.FovY)
		}
		c.SetFovXWithAspect(90, 2)
		if f := c.Frustum(); f.FovX != 90 || f.FovY != 45 {
			t.Errorf("Frustum() fov = (%v,%v), want (90,45)", f.FovX, f.FovY)
		}
		if c.Projection() != c.Frustum().Matrix() {
			t.Error("projection should follow the fov")
		}
	})

	t.Run("parallel follows eye z", func(t *testing.T) {
		c := frontCamera(t)
		if err := c.SetProjectionMode(Parallel); err != nil {
			t.Fatalf("SetProjectionMode() error: %v", err)
		}
		if got := c.Projection().At(3, 3); got != 4 {
			t.Errorf("parallel w scale = %v, want eye.z = 4", got)
		}
		c.Translate(0, 0, 2)
		if got := c.Projection().At(3, 3); got != 6 {
			t.Errorf("parallel w scale after translate = %v, want 6", got)
		}
	})
}

func TestRotateBy(t *testing.T) {
	c := frontCamera(t)
	a := math.RotateY(30)
	b := math.RotateX(10)

	c.RotateBy(a)
	c.RotateBy(b)

	if !c.Rotation().ApproxEqual(b.Mul(a), eps) {
		t.Errorf("Rotation() = %v, want B*A", c.Rotation())
	}
	if !c.ViewMatrix().ApproxEqual(c.LookAt().Mul(b.Mul(a)), eps) {
		t.Error("ViewMatrix() should be LookAt * Rotation")
	}
	// Direction vectors are never re-derived from the rotation.
	if !nearVec(c.Dir(), math.V3(0, 0, -1)) {
		t.Errorf("RotateBy changed Dir() to %v", c.Dir())
	}
	if !c.ViewMatrix().Mul(c.ViewInverse()).ApproxEqual(math.Identity(), eps) {
		t.Error("ViewMatrix * ViewInverse should be identity")
	}

	c.ResetRotation()
	if c.Rotation() != math.Identity() {
		t.Errorf("ResetRotation() left %v", c.Rotation())
	}
}

func TestFrustumWorldCorners(t *testing.T) {
	c := frontCamera(t)
	corners := c.FrustumWorldCorners()

	// Default frustum: near -1, far -10, 90 degrees both ways.
	want := [8]math.Point3D{
		math.Pt(-1, 1, 3), math.Pt(-1, -1, 3), math.Pt(1, 1, 3), math.Pt(1, -1, 3),
		math.Pt(-10, 10, -6), math.Pt(-10, -10, -6), math.Pt(10, 10, -6), math.Pt(10, -10, -6),
	}
	for i := range want {
		if !nearPoint(corners[i], want[i]) {
			t.Errorf("corner %d = %v, want %v", i, corners[i], want[i])
		}
	}
}

package input

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/frustumview/internal/engine/camera"
	"github.com/Faultbox/frustumview/pkg/math"
)

func newSession(t *testing.T) *Session {
	t.Helper()
	cam, err := camera.New(math.Pt(0, 0, 4), math.Origin(), math.V3(0, 1, 0), camera.Perspective)
	if err != nil {
		t.Fatalf("camera.New() error: %v", err)
	}
	return NewSession(cam, 500, 500, DefaultScales())
}

func nearPoint(a, b math.Point3D) bool {
	return a.SubPoint(b).Norm() < 1e-9
}

func TestModifiersMode(t *testing.T) {
	tests := []struct {
		mods Modifiers
		want Mode
	}{
		{Modifiers{}, ModeTranslate},
		{Modifiers{Shift: true}, ModeRotate},
		{Modifiers{Ctrl: true}, ModeRotate},
		{Modifiers{Shift: true, Ctrl: true}, ModeRotate},
		{Modifiers{Alt: true}, ModeZoom},
		{Modifiers{Alt: true, Ctrl: true}, ModeZoom},
		{Modifiers{Shift: true, Alt: true}, ModeTranslate},
		{Modifiers{Shift: true, Alt: true, Ctrl: true}, ModeTranslate},
	}
	for _, tt := range tests {
		if got := tt.mods.Mode(); got != tt.want {
			t.Errorf("%+v.Mode() = %v, want %v", tt.mods, got, tt.want)
		}
	}
}

func TestTranslateDrag(t *testing.T) {
	s := newSession(t)

	s.Handle(Event{Type: EventPointerDown, X: 250, Y: 250})
	if !s.Handle(Event{Type: EventPointerMove, X: 350, Y: 250}) {
		t.Fatal("move should change the camera")
	}
	if !nearPoint(s.Camera().Eye(), math.Pt(-1, 0, 4)) {
		t.Errorf("eye after dragging right = %v, want (-1,0,4)", s.Camera().Eye())
	}

	// Dragging up moves the camera down. Deltas are relative to the last move.
	s.Handle(Event{Type: EventPointerMove, X: 350, Y: 200})
	if !nearPoint(s.Camera().Eye(), math.Pt(-1, -0.5, 4)) {
		t.Errorf("eye after dragging up = %v, want (-1,-0.5,4)", s.Camera().Eye())
	}
}

func TestZoomDrag(t *testing.T) {
	s := newSession(t)
	alt := Modifiers{Alt: true}

	s.Handle(Event{Type: EventPointerDown, X: 250, Y: 250, Mods: alt})
	s.Handle(Event{Type: EventPointerMove, X: 250, Y: 350, Mods: alt})

	if !nearPoint(s.Camera().Eye(), math.Pt(0, 0, 5)) {
		t.Errorf("eye after dragging down = %v, want (0,0,5)", s.Camera().Eye())
	}
}

func TestRotateDrag(t *testing.T) {
	s := newSession(t)
	shift := Modifiers{Shift: true}

	s.Handle(Event{Type: EventPointerDown, X: 250, Y: 250, Mods: shift})
	if !s.Handle(Event{Type: EventPointerMove, X: 300, Y: 250, Mods: shift}) {
		t.Fatal("rotation expected")
	}

	// Sphere depth is 500 / 4 * 3 = 375, so the drag turns about +y.
	want := math.RotateAxis(math.V3(0, 1, 0), gomath.Atan2(50, 375))
	if got := s.Camera().Rotation(); !got.ApproxEqual(want, 1e-12) {
		t.Errorf("Rotation() = %v, want %v", got, want)
	}
	if !nearPoint(s.Camera().Eye(), math.Pt(0, 0, 4)) {
		t.Error("rotation must not move the eye")
	}

	r := s.Camera().Rotation()
	if !r.Mul(r.Transpose()).ApproxEqual(math.Identity(), 1e-12) {
		t.Error("rotation is not orthonormal")
	}
}

func TestRotateGuards(t *testing.T) {
	t.Run("tiny drag", func(t *testing.T) {
		s := newSession(t)
		if s.Rotate(0, 0, 0, 0) {
			t.Error("zero drag must not rotate")
		}
		if s.Rotate(10, 10, 10.0001, 10) {
			t.Error("drag below the arc threshold must not rotate")
		}
		if s.Camera().Rotation() != math.Identity() {
			t.Error("rotation changed")
		}
	})

	t.Run("eye on z = 0", func(t *testing.T) {
		cam, err := camera.New(math.Pt(4, 0, 0), math.Origin(), math.V3(0, 1, 0), camera.Perspective)
		if err != nil {
			t.Fatal(err)
		}
		s := NewSession(cam, 500, 500, DefaultScales())
		if s.Rotate(0, 0, 100, 0) {
			t.Error("rotation must be skipped when eye.z is zero")
		}
		for _, v := range cam.Rotation() {
			if gomath.IsNaN(v) {
				t.Fatal("NaN in rotation")
			}
		}
	})
}

func TestMoveWithoutDrag(t *testing.T) {
	s := newSession(t)
	if s.Handle(Event{Type: EventPointerMove, X: 10, Y: 10}) {
		t.Error("move without a pressed button changed the camera")
	}

	s.Handle(Event{Type: EventPointerDown, X: 0, Y: 0})
	s.Handle(Event{Type: EventPointerUp})
	if s.Dragging() {
		t.Error("still dragging after pointer up")
	}
	if s.Handle(Event{Type: EventPointerMove, X: 100, Y: 100}) {
		t.Error("move after pointer up changed the camera")
	}
}

func TestKeyModifiers(t *testing.T) {
	s := newSession(t)

	s.Handle(Event{Type: EventKeyDown, Key: "shift"})
	if s.Mode() != ModeRotate {
		t.Errorf("Mode() = %v after shift down, want rotate", s.Mode())
	}
	s.Handle(Event{Type: EventKeyDown, Key: "alt", Mods: Modifiers{Shift: true}})
	if s.Mode() != ModeTranslate {
		t.Errorf("Mode() = %v with shift+alt, want translate", s.Mode())
	}
	s.Handle(Event{Type: EventKeyUp, Key: "shift", Mods: Modifiers{Alt: true}})
	if s.Mode() != ModeZoom {
		t.Errorf("Mode() = %v with alt, want zoom", s.Mode())
	}
}

func TestSetSize(t *testing.T) {
	s := newSession(t)
	s.SetSize(200, 100)
	s.PointerDown(100, 50)
	s.PointerMove(200, 50)
	if !nearPoint(s.Camera().Eye(), math.Pt(-1, 0, 4)) {
		t.Errorf("eye = %v, want (-1,0,4)", s.Camera().Eye())
	}
}

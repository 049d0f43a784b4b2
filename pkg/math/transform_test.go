package math

import "testing"

func TestTransformPositionRoundTrip(t *testing.T) {
	tr := NewTransform(Pt(1, 2, 3), V3(0, 0, 0), V3(1, 1, 1))

	if got := tr.Position(); got != Pt(1, 2, 3) {
		t.Errorf("Position() = %v, want (1,2,3)", got)
	}
	if got := tr.Matrix().MulVec(Origin()); got != (Point3D{1, 2, 3, 1}) {
		t.Errorf("Matrix()*origin = %v, want (1,2,3,1)", got)
	}
}

func TestTransformSetPositionKeepsRotation(t *testing.T) {
	tr := NewTransform(Pt(0, 0, 0), V3(0, 0, 90), V3(2, 2, 2))
	tr.SetPosition(Pt(5, 0, 0))

	// (1,0,0) scaled to (2,0,0), rotated to (0,2,0), then moved by (5,0,0)
	got := tr.Apply(Pt(1, 0, 0))
	if !approx(got.X, 5, eps) || !approx(got.Y, 2, eps) || !approx(got.Z, 0, eps) {
		t.Errorf("Apply() = %v, want (5,2,0)", got)
	}
}

func TestTransformOrder(t *testing.T) {
	tr := NewTransform(Pt(1, 2, 3), V3(10, 20, 30), V3(2, 2, 2))
	want := Translate(1, 2, 3).Mul(RotateX(10)).Mul(RotateY(20)).Mul(RotateZ(30)).Mul(Scale(2, 2, 2))
	if !tr.Matrix().ApproxEqual(want, eps) {
		t.Errorf("Matrix() = %v, want %v", tr.Matrix(), want)
	}
}

func TestTransformRotation(t *testing.T) {
	tests := []struct {
		name  string
		rot   Vector3D
		scale float64
	}{
		{"zero", V3(0, 0, 0), 1},
		{"x only", V3(45, 0, 0), 1},
		{"y only", V3(0, -30, 0), 1},
		{"z only", V3(0, 0, 120), 1},
		{"mixed", V3(30, 20, 10), 1},
		{"mixed with uniform scale", V3(-60, 45, 170), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTransform(Pt(4, 5, 6), tt.rot, V3(tt.scale, tt.scale, tt.scale))
			got := tr.Rotation()
			if !approx(got.X, tt.rot.X, 1e-9) || !approx(got.Y, tt.rot.Y, 1e-9) || !approx(got.Z, tt.rot.Z, 1e-9) {
				t.Errorf("Rotation() = %v, want %v", got, tt.rot)
			}
		})
	}
}

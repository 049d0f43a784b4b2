package math

import "math"

// Transform is a model matrix built as translate * rotateX * rotateY * rotateZ * scale.
type Transform struct {
	m Mat4
}

// NewTransform composes a model matrix from a position, Euler angles in degrees
// (X, then Y, then Z, each right-handed) and a per-axis scale.
func NewTransform(position Point3D, rotation, scale Vector3D) *Transform {
	m := Translate(position.X, position.Y, position.Z).
		Mul(RotateX(rotation.X)).
		Mul(RotateY(rotation.Y)).
		Mul(RotateZ(rotation.Z)).
		Mul(Scale(scale.X, scale.Y, scale.Z))
	return &Transform{m: m}
}

// Matrix returns the model matrix.
func (t *Transform) Matrix() Mat4 {
	return t.m
}

// Apply maps a local point into world space.
func (t *Transform) Apply(p Point3D) Point3D {
	return t.m.MulVec(p)
}

// SetPosition overwrites the translation column; rotation and scale are kept.
func (t *Transform) SetPosition(p Point3D) {
	t.m[3] = p.X
	t.m[7] = p.Y
	t.m[11] = p.Z
}

// Position returns the translation column.
func (t *Transform) Position() Point3D {
	return Pt(t.m[3], t.m[7], t.m[11])
}

// Rotation extracts Euler angles in degrees from the upper-left 3x3 block.
// The result is only meaningful for uniform scale and |rotY| < 90.
func (t *Transform) Rotation() Vector3D {
	m := t.m
	rotX := math.Atan2(-m[6], m[10])
	rotY := math.Atan2(m[2], math.Sqrt(m[6]*m[6]+m[10]*m[10]))
	rotZ := math.Atan2(-m[1], m[0])
	return Vector3D{Degrees(rotX), Degrees(rotY), Degrees(rotZ)}
}

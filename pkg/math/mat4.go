package math

import "math"

// Mat4 is a 4x4 matrix in row-major order.
// Layout: [m0  m1  m2  m3 ]
//
//	[m4  m5  m6  m7 ]
//	[m8  m9  m10 m11]
//	[m12 m13 m14 m15]
type Mat4 [16]float64

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// At returns the element at row, col.
func (m Mat4) At(row, col int) float64 {
	return m[row*4+col]
}

// Translate returns a translation matrix.
func Translate(x, y, z float64) Mat4 {
	return Mat4{
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	}
}

// Scale returns a scale matrix.
func Scale(x, y, z float64) Mat4 {
	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// FlipY mirrors the y axis. Surfaces grow y downwards while the scene uses y up.
func FlipY() Mat4 {
	return Scale(1, -1, 1)
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// RotateX returns a right-handed rotation around the X axis.
// angle is in degrees.
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(Radians(angle)), math.Sin(Radians(angle))

	return Mat4{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	}
}

// RotateY returns a right-handed rotation around the Y axis.
// angle is in degrees.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(Radians(angle)), math.Sin(Radians(angle))

	return Mat4{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotateZ returns a right-handed rotation around the Z axis.
// angle is in degrees.
func RotateZ(angle float64) Mat4 {
	c, s := math.Cos(Radians(angle)), math.Sin(Radians(angle))

	return Mat4{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// RotateAxis creates a rotation matrix around an arbitrary axis using the
// Rodrigues formula. axis must be normalized, angle is in radians.
func RotateAxis(axis Vector3D, angle float64) Mat4 {
	c := math.Cos(angle)
	s := math.Sin(angle)
	t := 1 - c

	x, y, z := axis.X, axis.Y, axis.Z

	return Mat4{
		c + t*x*x, t*x*y - s*z, t*x*z + s*y, 0,
		t*x*y + s*z, c + t*y*y, t*y*z - s*x, 0,
		t*x*z - s*y, t*y*z + s*x, c + t*z*z, 0,
		0, 0, 0, 1,
	}
}

// Mul returns m * other: the transform that applies other first, then m.
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			result[row*4+col] =
				m[row*4+0]*other[0*4+col] +
					m[row*4+1]*other[1*4+col] +
					m[row*4+2]*other[2*4+col] +
					m[row*4+3]*other[3*4+col]
		}
	}
	return result
}

// MulVec applies m to a point or vector and returns the raw result with whatever
// w the product gives. Directions come back as a Point3D too; do not dehomogenize
// a result that is meant to stay a direction.
func (m Mat4) MulVec(v Homogeneous) Point3D {
	x, y, z, w := v.XYZW()
	return Point3D{
		X: m[0]*x + m[1]*y + m[2]*z + m[3]*w,
		Y: m[4]*x + m[5]*y + m[6]*z + m[7]*w,
		Z: m[8]*x + m[9]*y + m[10]*z + m[11]*w,
		W: m[12]*x + m[13]*y + m[14]*z + m[15]*w,
	}
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			t[col*4+row] = m[row*4+col]
		}
	}
	return t
}

// ApproxEqual reports whether every element differs by at most eps.
func (m Mat4) ApproxEqual(other Mat4, eps float64) bool {
	for i := range m {
		if math.Abs(m[i]-other[i]) > eps {
			return false
		}
	}
	return true
}

// Inverse returns the inverse of the matrix.
// ok is false, and the identity is returned, if the matrix is singular.
func (m Mat4) Inverse() (inv Mat4, ok bool) {
	// Cofactors. Transposition commutes with inversion, so the same expansion
	// serves row-major and column-major storage.
	c00 := m[5]*m[10]*m[15] - m[5]*m[11]*m[14] - m[9]*m[6]*m[15] + m[9]*m[7]*m[14] + m[13]*m[6]*m[11] - m[13]*m[7]*m[10]
	c01 := -m[1]*m[10]*m[15] + m[1]*m[11]*m[14] + m[9]*m[2]*m[15] - m[9]*m[3]*m[14] - m[13]*m[2]*m[11] + m[13]*m[3]*m[10]
	c02 := m[1]*m[6]*m[15] - m[1]*m[7]*m[14] - m[5]*m[2]*m[15] + m[5]*m[3]*m[14] + m[13]*m[2]*m[7] - m[13]*m[3]*m[6]
	c03 := -m[1]*m[6]*m[11] + m[1]*m[7]*m[10] + m[5]*m[2]*m[11] - m[5]*m[3]*m[10] - m[9]*m[2]*m[7] + m[9]*m[3]*m[6]

	c10 := -m[4]*m[10]*m[15] + m[4]*m[11]*m[14] + m[8]*m[6]*m[15] - m[8]*m[7]*m[14] - m[12]*m[6]*m[11] + m[12]*m[7]*m[10]
	c11 := m[0]*m[10]*m[15] - m[0]*m[11]*m[14] - m[8]*m[2]*m[15] + m[8]*m[3]*m[14] + m[12]*m[2]*m[11] - m[12]*m[3]*m[10]
	c12 := -m[0]*m[6]*m[15] + m[0]*m[7]*m[14] + m[4]*m[2]*m[15] - m[4]*m[3]*m[14] - m[12]*m[2]*m[7] + m[12]*m[3]*m[6]
	c13 := m[0]*m[6]*m[11] - m[0]*m[7]*m[10] - m[4]*m[2]*m[11] + m[4]*m[3]*m[10] + m[8]*m[2]*m[7] - m[8]*m[3]*m[6]

	c20 := m[4]*m[9]*m[15] - m[4]*m[11]*m[13] - m[8]*m[5]*m[15] + m[8]*m[7]*m[13] + m[12]*m[5]*m[11] - m[12]*m[7]*m[9]
	c21 := -m[0]*m[9]*m[15] + m[0]*m[11]*m[13] + m[8]*m[1]*m[15] - m[8]*m[3]*m[13] - m[12]*m[1]*m[11] + m[12]*m[3]*m[9]
	c22 := m[0]*m[5]*m[15] - m[0]*m[7]*m[13] - m[4]*m[1]*m[15] + m[4]*m[3]*m[13] + m[12]*m[1]*m[7] - m[12]*m[3]*m[5]
	c23 := -m[0]*m[5]*m[11] + m[0]*m[7]*m[9] + m[4]*m[1]*m[11] - m[4]*m[3]*m[9] - m[8]*m[1]*m[7] + m[8]*m[3]*m[5]

	c30 := -m[4]*m[9]*m[14] + m[4]*m[10]*m[13] + m[8]*m[5]*m[14] - m[8]*m[6]*m[13] - m[12]*m[5]*m[10] + m[12]*m[6]*m[9]
	c31 := m[0]*m[9]*m[14] - m[0]*m[10]*m[13] - m[8]*m[1]*m[14] + m[8]*m[2]*m[13] + m[12]*m[1]*m[10] - m[12]*m[2]*m[9]
	c32 := -m[0]*m[5]*m[14] + m[0]*m[6]*m[13] + m[4]*m[1]*m[14] - m[4]*m[2]*m[13] - m[12]*m[1]*m[6] + m[12]*m[2]*m[5]
	c33 := m[0]*m[5]*m[10] - m[0]*m[6]*m[9] - m[4]*m[1]*m[10] + m[4]*m[2]*m[9] + m[8]*m[1]*m[6] - m[8]*m[2]*m[5]

	det := m[0]*c00 + m[4]*c01 + m[8]*c02 + m[12]*c03

	if det == 0 {
		return Identity(), false
	}

	invDet := 1.0 / det

	return Mat4{
		c00 * invDet, c01 * invDet, c02 * invDet, c03 * invDet,
		c10 * invDet, c11 * invDet, c12 * invDet, c13 * invDet,
		c20 * invDet, c21 * invDet, c22 * invDet, c23 * invDet,
		c30 * invDet, c31 * invDet, c32 * invDet, c33 * invDet,
	}, true
}

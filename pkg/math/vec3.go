package math

import "math"

// Vector3D is a direction in homogeneous coordinates. Its w component is always 0,
// so projective transforms ignore translation for it.
type Vector3D struct {
	X, Y, Z float64
}

// V3 is shorthand for Vector3D{x, y, z}.
func V3(x, y, z float64) Vector3D {
	return Vector3D{X: x, Y: y, Z: z}
}

// W returns the homogeneous weight of a direction, which is always 0.
func (v Vector3D) W() float64 {
	return 0
}

// XYZW implements Homogeneous.
func (v Vector3D) XYZW() (x, y, z, w float64) {
	return v.X, v.Y, v.Z, 0
}

// Add returns v + other.
func (v Vector3D) Add(other Vector3D) Vector3D {
	return Vector3D{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vector3D) Sub(other Vector3D) Vector3D {
	return Vector3D{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * scalar.
func (v Vector3D) Scale(s float64) Vector3D {
	return Vector3D{v.X * s, v.Y * s, v.Z * s}
}

// Neg returns -v.
func (v Vector3D) Neg() Vector3D {
	return Vector3D{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product.
func (v Vector3D) Dot(other Vector3D) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vector3D) Cross(other Vector3D) Vector3D {
	return Vector3D{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Norm returns the Euclidean length.
func (v Vector3D) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns v divided by its norm.
// A zero vector yields NaN components; callers must rule that out beforehand.
func (v Vector3D) Normalize() Vector3D {
	n := v.Norm()
	return Vector3D{v.X / n, v.Y / n, v.Z / n}
}

// Point returns the point reached by moving v away from the origin.
func (v Vector3D) Point() Point3D {
	return Point3D{X: v.X, Y: v.Y, Z: v.Z, W: 1}
}

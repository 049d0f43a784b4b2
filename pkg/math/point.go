package math

import "sort"

// Homogeneous is any 4-component value a Mat4 can be applied to.
type Homogeneous interface {
	XYZW() (x, y, z, w float64)
}

// Point3D is a location in homogeneous coordinates.
type Point3D struct {
	X, Y, Z, W float64
}

// Pt returns the point (x, y, z) with w = 1.
func Pt(x, y, z float64) Point3D {
	return Point3D{X: x, Y: y, Z: z, W: 1}
}

// Origin returns (0, 0, 0, 1).
func Origin() Point3D {
	return Pt(0, 0, 0)
}

// XYZW implements Homogeneous.
func (p Point3D) XYZW() (x, y, z, w float64) {
	return p.X, p.Y, p.Z, p.W
}

// Add returns p moved by v. W is kept.
func (p Point3D) Add(v Vector3D) Point3D {
	return Point3D{p.X + v.X, p.Y + v.Y, p.Z + v.Z, p.W}
}

// Sub returns p moved by -v.
func (p Point3D) Sub(v Vector3D) Point3D {
	return p.Add(v.Neg())
}

// SubPoint returns the direction from other to p.
func (p Point3D) SubPoint(other Point3D) Vector3D {
	return Vector3D{p.X - other.X, p.Y - other.Y, p.Z - other.Z}
}

// Vector drops the homogeneous weight and returns the position vector of p.
func (p Point3D) Vector() Vector3D {
	return Vector3D{p.X, p.Y, p.Z}
}

// Dehomogen divides x, y and z by w and sets w to 1.
// w == 0 is not guarded and produces Inf/NaN components.
func (p Point3D) Dehomogen() Point3D {
	return Point3D{p.X / p.W, p.Y / p.W, p.Z / p.W, 1}
}

// XY returns the x and y components as a surface coordinate.
func (p Point3D) XY() Vec2 {
	return Vec2{p.X, p.Y}
}

// SortByDepth orders points by descending z. For projected points larger z is
// farther away, so drawing them in order paints nearer points last.
func SortByDepth(points []Point3D) {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Z > points[j].Z
	})
}

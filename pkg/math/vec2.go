// Package math provides the homogeneous point, vector and matrix types used by the
// projection pipeline.
package math

// Vec2 is a 2D point in surface (pixel) coordinates.
type Vec2 struct {
	X, Y float64
}

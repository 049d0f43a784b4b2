// Package camera provides the look-at camera and its view frustum.
package camera

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Faultbox/frustumview/pkg/math"
)

// ErrUnknownProjection is returned for projection modes other than Parallel and Perspective.
var ErrUnknownProjection = errors.New("unknown projection mode")

// ProjectionMode selects how camera space is flattened.
type ProjectionMode int

const (
	// Parallel drops z and uses eye.z as the w scale.
	Parallel ProjectionMode = iota
	// Perspective delegates to the ViewFrustum.
	Perspective
)

// String returns the config name of the mode.
func (m ProjectionMode) String() string {
	switch m {
	case Parallel:
		return "parallel"
	case Perspective:
		return "perspective"
	default:
		return fmt.Sprintf("ProjectionMode(%d)", int(m))
	}
}

// ParseProjection parses "parallel" or "perspective".
func ParseProjection(s string) (ProjectionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "parallel":
		return Parallel, nil
	case "perspective":
		return Perspective, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownProjection, s)
	}
}

func (m ProjectionMode) valid() bool {
	return m == Parallel || m == Perspective
}

// Camera is a look-at camera with an extra trackball rotation.
//
// dir, up and right are fixed at construction. Trackball input accumulates in
// rotation, which is applied to the scene before the look-at transform. Every
// mutator recomputes lookAt, lookAtInv and projection before returning.
type Camera struct {
	eye   math.Point3D
	dir   math.Vector3D
	up    math.Vector3D
	right math.Vector3D

	rotation math.Mat4
	frustum  ViewFrustum
	mode     ProjectionMode

	lookAt     math.Mat4
	lookAtInv  math.Mat4
	projection math.Mat4
}

// New creates a camera at eye looking at center. up only needs to be roughly
// perpendicular to the viewing direction; it is re-orthogonalized.
func New(eye, center math.Point3D, up math.Vector3D, mode ProjectionMode) (*Camera, error) {
	if !mode.valid() {
		return nil, fmt.Errorf("new camera: %w: %s", ErrUnknownProjection, mode)
	}

	dir := center.SubPoint(eye).Normalize()
	right := dir.Cross(up.Normalize()).Normalize()

	c := &Camera{
		eye:      eye,
		dir:      dir,
		up:       right.Cross(dir),
		right:    right,
		rotation: math.Identity(),
		frustum:  NewViewFrustum(DefaultNear, DefaultFar, DefaultFovX, DefaultAspect),
		mode:     mode,
	}
	c.recalculate()
	return c, nil
}

// recalculate rebuilds every cached matrix from the current state.
func (c *Camera) recalculate() {
	r, u, d, e := c.right, c.up, c.dir, c.eye.Vector()

	c.lookAt = math.Mat4{
		r.X, r.Y, r.Z, -r.Dot(e),
		u.X, u.Y, u.Z, -u.Dot(e),
		-d.X, -d.Y, -d.Z, d.Dot(e),
		0, 0, 0, 1,
	}

	c.lookAtInv = math.Mat4{
		r.X, u.X, -d.X, e.X,
		r.Y, u.Y, -d.Y, e.Y,
		r.Z, u.Z, -d.Z, e.Z,
		0, 0, 0, 1,
	}

	switch c.mode {
	case Parallel:
		c.projection = math.Mat4{
			1, 0, 0, 0,
			0, 1, 0, 0,
			0, 0, 0, 1,
			0, 0, 0, c.eye.Z,
		}
	case Perspective:
		c.projection = c.frustum.Matrix()
	default:
		// New and SetProjectionMode reject anything else.
		panic(fmt.Sprintf("camera: %v: %s", ErrUnknownProjection, c.mode))
	}
}

// Eye returns the camera position.
func (c *Camera) Eye() math.Point3D { return c.eye }

// Dir returns the unit viewing direction fixed at construction.
func (c *Camera) Dir() math.Vector3D { return c.dir }

// Up returns the unit up vector.
func (c *Camera) Up() math.Vector3D { return c.up }

// Right returns normalize(dir x up).
func (c *Camera) Right() math.Vector3D { return c.right }

// Rotation returns the accumulated trackball rotation.
func (c *Camera) Rotation() math.Mat4 { return c.rotation }

// LookAt returns the world-to-camera matrix.
func (c *Camera) LookAt() math.Mat4 { return c.lookAt }

// LookAtInverse returns the camera-to-world matrix.
func (c *Camera) LookAtInverse() math.Mat4 { return c.lookAtInv }

// Projection returns the projection matrix for the current mode.
func (c *Camera) Projection() math.Mat4 { return c.projection }

// Frustum returns a copy of the view frustum.
func (c *Camera) Frustum() ViewFrustum { return c.frustum }

// Mode returns the projection mode.
func (c *Camera) Mode() ProjectionMode { return c.mode }

// ViewMatrix returns lookAt * rotation: the trackball rotation is applied to the
// scene first.
func (c *Camera) ViewMatrix() math.Mat4 {
	return c.lookAt.Mul(c.rotation)
}

// ViewInverse maps camera space back to world space.
func (c *Camera) ViewInverse() math.Mat4 {
	// rotation is orthonormal, so its transpose is its inverse.
	return c.rotation.Transpose().Mul(c.lookAtInv)
}

// FrustumWorldCorners returns Frustum().Corners() mapped to world space.
func (c *Camera) FrustumWorldCorners() [8]math.Point3D {
	inv := c.ViewInverse()
	corners := c.frustum.Corners()
	for i, p := range corners {
		corners[i] = inv.MulVec(p)
	}
	return corners
}

// SetPosition moves the eye. The viewing direction is unchanged.
func (c *Camera) SetPosition(eye math.Point3D) {
	c.eye = eye
	c.recalculate()
}

// SetFov sets both fields of view in degrees.
func (c *Camera) SetFov(fovX, fovY float64) {
	c.frustum.SetFovXY(fovX, fovY)
	c.recalculate()
}

// SetNearFar sets the clipping depths (negative, far < near).
func (c *Camera) SetNearFar(near, far float64) {
	c.frustum.SetNearFar(near, far)
	c.recalculate()
}

// SetFovXWithAspect sets fovX and derives fovY from the aspect ratio.
func (c *Camera) SetFovXWithAspect(fovX, aspect float64) {
	c.frustum.SetFovXWithAspect(fovX, aspect)
	c.recalculate()
}

// SetProjectionMode switches between parallel and perspective projection.
func (c *Camera) SetProjectionMode(mode ProjectionMode) error {
	if !mode.valid() {
		return fmt.Errorf("set projection: %w: %s", ErrUnknownProjection, mode)
	}
	c.mode = mode
	c.recalculate()
	return nil
}

// Translate moves the eye by (dx, dy, dz).
func (c *Camera) Translate(dx, dy, dz float64) {
	c.TranslateVec(math.V3(dx, dy, dz))
}

// TranslateVec moves the eye by delta.
func (c *Camera) TranslateVec(delta math.Vector3D) {
	c.eye = c.eye.Add(delta)
	c.recalculate()
}

// RotateBy left-composes r onto the accumulated rotation.
func (c *Camera) RotateBy(r math.Mat4) {
	c.rotation = r.Mul(c.rotation)
	c.recalculate()
}

// ResetRotation drops the accumulated trackball rotation.
func (c *Camera) ResetRotation() {
	c.rotation = math.Identity()
	c.recalculate()
}

package camera

import (
	gomath "math"

	"github.com/Faultbox/frustumview/pkg/math"
)

// Default frustum used by new cameras.
const (
	DefaultNear   = -1.0
	DefaultFar    = -10.0
	DefaultFovX   = 90.0
	DefaultAspect = 1.0
)

// ViewFrustum describes a perspective volume in camera space. The camera looks down
// -z, so Near and Far are negative and Far < Near. Fields of view are in degrees.
type ViewFrustum struct {
	Near, Far  float64
	FovX, FovY float64
}

// PlaneExtents are the top, bottom, left and right edges of a frustum cross-section.
type PlaneExtents struct {
	T, B, L, R float64
}

// NewViewFrustum creates a frustum whose vertical field of view is fovX / aspect.
func NewViewFrustum(near, far, fovX, aspect float64) ViewFrustum {
	return ViewFrustum{
		Near: near,
		Far:  far,
		FovX: fovX,
		FovY: fovX / aspect,
	}
}

// SetNearFar sets the clipping depths.
func (f *ViewFrustum) SetNearFar(near, far float64) {
	f.Near = near
	f.Far = far
}

// SetFovXY sets both fields of view independently.
func (f *ViewFrustum) SetFovXY(fovX, fovY float64) {
	f.FovX = fovX
	f.FovY = fovY
}

// SetFovXWithAspect sets fovX and derives fovY = fovX / aspect.
func (f *ViewFrustum) SetFovXWithAspect(fovX, aspect float64) {
	f.FovX = fovX
	f.FovY = fovX / aspect
}

// NearPlane returns the half-extents of the near cross-section.
func (f ViewFrustum) NearPlane() PlaneExtents {
	return f.extentsAt(-f.Near)
}

// FarPlane returns the half-extents of the far cross-section.
func (f ViewFrustum) FarPlane() PlaneExtents {
	return f.extentsAt(-f.Far)
}

func (f ViewFrustum) extentsAt(dist float64) PlaneExtents {
	t := dist * gomath.Tan(math.Radians(f.FovY)/2)
	r := dist * gomath.Tan(math.Radians(f.FovX)/2)
	return PlaneExtents{T: t, B: -t, L: -r, R: r}
}

// Matrix builds the perspective projection. It maps the frustum to the clip cube
// with the near plane at z = -1 and the far plane at z = +1 after the divide by w.
func (f ViewFrustum) Matrix() math.Mat4 {
	n := -f.Near
	fa := -f.Far
	p := f.NearPlane()

	// Center the (possibly off-axis) near window on the z axis.
	midX := (p.L + p.R) / 2
	midY := (p.T + p.B) / 2
	moveToApex := math.Translate(-midX, -midY, 0)

	// Depth to [-1, 1] once divided by w = -z.
	c1 := 2 * fa * n / (n - fa)
	c2 := (fa + n) / (fa - n)
	mapZ := math.Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, -c2, c1,
		0, 0, -1, 0,
	}

	// Scale by the near distance: together with w = -z this is the perspective divide.
	frustum := math.Scale(n, n, 1)

	// View window to the unit square.
	scaleView := math.Scale(2/(p.R-p.L), 2/(p.T-p.B), 1)

	return scaleView.Mul(frustum.Mul(mapZ).Mul(moveToApex))
}

// Corners returns the frustum corners in camera space: indices 0-3 lie on the near
// plane and 4-7 on the far plane, each ordered left-top, left-bottom, right-top,
// right-bottom.
func (f ViewFrustum) Corners() [8]math.Point3D {
	var corners [8]math.Point3D

	np := f.NearPlane()
	corners[0] = math.Pt(np.L, np.T, f.Near)
	corners[1] = math.Pt(np.L, np.B, f.Near)
	corners[2] = math.Pt(np.R, np.T, f.Near)
	corners[3] = math.Pt(np.R, np.B, f.Near)

	fp := f.FarPlane()
	corners[4] = math.Pt(fp.L, fp.T, f.Far)
	corners[5] = math.Pt(fp.L, fp.B, f.Far)
	corners[6] = math.Pt(fp.R, fp.T, f.Far)
	corners[7] = math.Pt(fp.R, fp.B, f.Far)

	return corners
}

// FrustumEdges are corner index pairs outlining a frustum: both planes and the
// four connecting edges.
var FrustumEdges = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0},
	{4, 5}, {5, 7}, {7, 6}, {6, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

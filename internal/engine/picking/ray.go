// Package picking provides ray casting and object picking utilities.
package picking

import (
	gomath "math"

	"github.com/Faultbox/frustumview/pkg/math"
)

// Ray is a half-line in world space.
type Ray struct {
	Origin    math.Point3D
	Direction math.Vector3D // Normalized
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) math.Point3D {
	return r.Origin.Add(r.Direction.Scale(t))
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min math.Point3D
	Max math.Point3D
}

// NewAABB creates a box from two opposite corners in any order.
func NewAABB(minX, minY, minZ, maxX, maxY, maxZ float64) AABB {
	return AABB{
		Min: math.Pt(gomath.Min(minX, maxX), gomath.Min(minY, maxY), gomath.Min(minZ, maxZ)),
		Max: math.Pt(gomath.Max(minX, maxX), gomath.Max(minY, maxY), gomath.Max(minZ, maxZ)),
	}
}

// AABBFromPoints returns the smallest box containing every point.
// An empty slice yields the zero box.
func AABBFromPoints(points []math.Point3D) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box.Min = math.Pt(gomath.Min(box.Min.X, p.X), gomath.Min(box.Min.Y, p.Y), gomath.Min(box.Min.Z, p.Z))
		box.Max = math.Pt(gomath.Max(box.Max.X, p.X), gomath.Max(box.Max.Y, p.Y), gomath.Max(box.Max.Z, p.Z))
	}
	return box
}

// Unproject turns a normalized device coordinate into a world-space ray.
// inv is the inverse of the full view-projection matrix. The ray starts on the
// near plane (ndc z = -1) and points towards the far plane (ndc z = +1).
func Unproject(ndcX, ndcY float64, inv math.Mat4) Ray {
	nearWorld := inv.MulVec(math.Point3D{X: ndcX, Y: ndcY, Z: -1, W: 1})
	farWorld := inv.MulVec(math.Point3D{X: ndcX, Y: ndcY, Z: 1, W: 1})

	// Perspective divide
	if nearWorld.W != 0 {
		nearWorld = nearWorld.Dehomogen()
	}
	if farWorld.W != 0 {
		farWorld = farWorld.Dehomogen()
	}

	dir := farWorld.SubPoint(nearWorld)
	if l := dir.Norm(); l > 0 {
		dir = dir.Scale(1 / l)
	}

	return Ray{Origin: math.Pt(nearWorld.X, nearWorld.Y, nearWorld.Z), Direction: dir}
}

// IntersectAABB tests the ray against a box using the slab method.
// Returns the distance to the hit. If the ray starts inside the box the exit
// distance is returned.
func (r Ray) IntersectAABB(box AABB) (t float64, hit bool) {
	tmin := gomath.Inf(-1)
	tmax := gomath.Inf(1)

	origin := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float64{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float64{box.Min.X, box.Min.Y, box.Min.Z}
	hi := [3]float64{box.Max.X, box.Max.Y, box.Max.Z}

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			// Parallel to the slab: miss unless the origin is between the planes.
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = gomath.Max(tmin, t1)
		tmax = gomath.Min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}


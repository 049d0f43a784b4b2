// Package debug provides debug visualization and capture utilities.
package debug

import (
	"image/color"

	"github.com/Faultbox/frustumview/internal/engine/camera"
	"github.com/Faultbox/frustumview/internal/engine/picking"
	"github.com/Faultbox/frustumview/internal/engine/scene"
	"github.com/Faultbox/frustumview/pkg/math"
)

// BoxEdges returns the 12 edges of a box grown by padding on every side:
// bottom face, top face, then the vertical edges.
func BoxEdges(box picking.AABB, padding float64) [12][2]math.Point3D {
	minX, minY, minZ := box.Min.X-padding, box.Min.Y-padding, box.Min.Z-padding
	maxX, maxY, maxZ := box.Max.X+padding, box.Max.Y+padding, box.Max.Z+padding

	p := func(x, y, z float64) math.Point3D { return math.Pt(x, y, z) }
	return [12][2]math.Point3D{
		// Bottom face
		{p(minX, minY, minZ), p(maxX, minY, minZ)},
		{p(maxX, minY, minZ), p(maxX, minY, maxZ)},
		{p(maxX, minY, maxZ), p(minX, minY, maxZ)},
		{p(minX, minY, maxZ), p(minX, minY, minZ)},
		// Top face
		{p(minX, maxY, minZ), p(maxX, maxY, minZ)},
		{p(maxX, maxY, minZ), p(maxX, maxY, maxZ)},
		{p(maxX, maxY, maxZ), p(minX, maxY, maxZ)},
		{p(minX, maxY, maxZ), p(minX, maxY, minZ)},
		// Vertical edges
		{p(minX, minY, minZ), p(minX, maxY, minZ)},
		{p(maxX, minY, minZ), p(maxX, maxY, minZ)},
		{p(maxX, minY, maxZ), p(maxX, maxY, maxZ)},
		{p(minX, minY, maxZ), p(minX, maxY, maxZ)},
	}
}

// DrawBounds outlines a bounding box.
func DrawBounds(p scene.Painter, cam *camera.Camera, box picking.AABB, c color.Color, padding float64) {
	for _, e := range BoxEdges(box, padding) {
		p.DrawLine3D(cam, e[0], e[1], c, 1)
	}
}

package scene

import (
	"fmt"
	"image/color"

	"github.com/Faultbox/frustumview/internal/engine/camera"
	"github.com/Faultbox/frustumview/internal/engine/picking"
	"github.com/Faultbox/frustumview/pkg/math"
)

// CubeLineWidth is the stroke width of wireframe cube edges.
const CubeLineWidth = 3

// Corner indices follow the generation order x, then y, then z, each going
// from -edge/2 to +edge/2: index = 4*xi + 2*yi + zi.
var (
	cubeEdges = [12][2]int{
		{0, 1}, {0, 4}, {0, 2},
		{1, 3}, {1, 5},
		{2, 3}, {2, 6},
		{3, 7},
		{4, 5}, {4, 6},
		{5, 7},
		{6, 7},
	}

	cubeFaces = [6][4]int{
		{0, 1, 5, 4}, {2, 3, 7, 6}, // bottom, top
		{0, 1, 3, 2}, {4, 5, 7, 6}, // left, right
		{1, 5, 7, 3}, {0, 4, 6, 2}, // front, back
	}
)

// Cube is an axis-aligned cube in model space placed by a Transform.
type Cube struct {
	name      string
	transform *math.Transform
	points    [8]math.Point3D
	color     color.Color
	fill      bool
	lineWidth float64
}

// NewCube creates a cube centred at pos with the given Euler rotation in degrees.
func NewCube(pos math.Point3D, rotation math.Vector3D, edge float64, c color.Color, fill bool) *Cube {
	cube := &Cube{
		name:      fmt.Sprintf("cube(%g,%g,%g)", pos.X, pos.Y, pos.Z),
		transform: math.NewTransform(pos, rotation, math.V3(1, 1, 1)),
		color:     c,
		fill:      fill,
		lineWidth: CubeLineWidth,
	}

	h := edge / 2
	i := 0
	for x := -1.0; x <= 1; x += 2 {
		for y := -1.0; y <= 1; y += 2 {
			for z := -1.0; z <= 1; z += 2 {
				cube.points[i] = math.Pt(x*h, y*h, z*h)
				i++
			}
		}
	}
	return cube
}

// Name returns the display name.
func (c *Cube) Name() string { return c.name }

// SetName overrides the generated name.
func (c *Cube) SetName(name string) { c.name = name }

// Transform returns the model transform.
func (c *Cube) Transform() *math.Transform { return c.transform }

// Color returns the paint colour.
func (c *Cube) Color() color.Color { return c.color }

// Fill reports whether faces are filled instead of stroked.
func (c *Cube) Fill() bool { return c.fill }

// SetFill switches between solid and wireframe drawing.
func (c *Cube) SetFill(fill bool) { c.fill = fill }

// SetLineWidth sets the wireframe stroke width. Non-positive widths restore
// CubeLineWidth.
func (c *Cube) SetLineWidth(w float64) {
	if w <= 0 {
		w = CubeLineWidth
	}
	c.lineWidth = w
}

// LocalPoints returns the 8 model-space corners.
func (c *Cube) LocalPoints() [8]math.Point3D {
	return c.points
}

// WorldPoints returns the corners transformed by the model matrix.
func (c *Cube) WorldPoints() [8]math.Point3D {
	m := c.transform.Matrix()
	var out [8]math.Point3D
	for i, p := range c.points {
		out[i] = m.MulVec(p)
	}
	return out
}

// Bounds returns the world-space bounding box.
func (c *Cube) Bounds() picking.AABB {
	pts := c.WorldPoints()
	return picking.AABBFromPoints(pts[:])
}

// Draw fills the 6 faces or strokes the 12 edges.
func (c *Cube) Draw(p Painter, cam *camera.Camera) {
	pts := c.WorldPoints()

	if c.fill {
		for _, f := range cubeFaces {
			p.DrawPolygon3D(cam, []math.Point3D{pts[f[0]], pts[f[1]], pts[f[2]], pts[f[3]]}, c.color)
		}
		return
	}

	for _, e := range cubeEdges {
		p.DrawLine3D(cam, pts[e[0]], pts[e[1]], c.color, c.lineWidth)
	}
}

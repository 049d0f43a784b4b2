// Package canvas implements the renderer's drawing surface on top of gg.
package canvas

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/colornames"

	"github.com/Faultbox/frustumview/pkg/math"
)

// Canvas is an in-memory RGBA surface.
type Canvas struct {
	dc         *gg.Context
	background color.Color
}

// New creates a canvas filled with the background colour.
func New(width, height int, background color.Color) *Canvas {
	c := &Canvas{
		dc:         gg.NewContext(width, height),
		background: background,
	}
	c.dc.SetColor(background)
	c.dc.Clear()
	return c
}

// Size returns the canvas size in pixels.
func (c *Canvas) Size() (int, int) {
	return c.dc.Width(), c.dc.Height()
}

// ClearRect paints the rectangle with the background colour.
func (c *Canvas) ClearRect(x, y, w, h float64) {
	c.dc.SetColor(c.background)
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.Fill()
}

// FillCircle paints a filled disc.
func (c *Canvas) FillCircle(center math.Vec2, radius float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawCircle(center.X, center.Y, radius)
	c.dc.Fill()
}

// Line strokes a segment.
func (c *Canvas) Line(p0, p1 math.Vec2, col color.Color, width float64) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(width)
	c.dc.DrawLine(p0.X, p0.Y, p1.X, p1.Y)
	c.dc.Stroke()
}

// FillPolygon fills the closed path through points.
func (c *Canvas) FillPolygon(points []math.Vec2, col color.Color) {
	if len(points) == 0 {
		return
	}
	c.dc.NewSubPath()
	c.dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	c.dc.ClosePath()
	c.dc.SetColor(col)
	c.dc.Fill()
}

// Image returns the backing image. It is shared, not copied.
func (c *Canvas) Image() *image.RGBA {
	return c.dc.Image().(*image.RGBA)
}

// ParseColor accepts an SVG colour name ("lightgreen") or a hex value
// ("#0f0", "#00ff00", "#00ff0080").
func ParseColor(s string) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(s, "#") {
		c, ok := colornames.Map[s]
		if !ok {
			return nil, fmt.Errorf("unknown colour %q", s)
		}
		return c, nil
	}

	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return nil, fmt.Errorf("malformed colour %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("malformed colour %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// MustParseColor is ParseColor for constant input.
func MustParseColor(s string) color.Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

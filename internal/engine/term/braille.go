// Package term implements the renderer's drawing surface with Unicode braille
// characters, so viewports can be shown in a terminal.
package term

import (
	"fmt"
	"image/color"
	gomath "math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Faultbox/frustumview/pkg/math"
)

// Braille cells hold 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
const blank = 0x2800

var dotBits = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Braille is a surface of cols x rows character cells, that is 2*cols by 4*rows
// dots. Each cell keeps the colour of the last primitive that touched it.
type Braille struct {
	cols, rows int
	cells      [][]rune
	colors     [][]color.Color
}

// NewBraille creates an empty surface.
func NewBraille(cols, rows int) *Braille {
	b := &Braille{
		cols:   cols,
		rows:   rows,
		cells:  make([][]rune, rows),
		colors: make([][]color.Color, rows),
	}
	for i := range b.cells {
		b.cells[i] = make([]rune, cols)
		b.colors[i] = make([]color.Color, cols)
		for j := range b.cells[i] {
			b.cells[i][j] = blank
		}
	}
	return b
}

// Size returns the dot resolution.
func (b *Braille) Size() (int, int) {
	return b.cols * 2, b.rows * 4
}

// Cells returns the character grid size.
func (b *Braille) Cells() (cols, rows int) {
	return b.cols, b.rows
}

// set lights one dot.
func (b *Braille) set(x, y int, c color.Color) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= b.cols || row >= b.rows {
		return
	}
	b.cells[row][col] |= dotBits[y%4][x%2]
	b.colors[row][col] = c
}

func (b *Braille) unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= b.cols || row >= b.rows {
		return
	}
	b.cells[row][col] &^= dotBits[y%4][x%2]
	if b.cells[row][col] == blank {
		b.colors[row][col] = nil
	}
}

// Dot reports whether the dot at (x, y) is lit.
func (b *Braille) Dot(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= b.cols || y/4 >= b.rows {
		return false
	}
	return b.cells[y/4][x/2]&dotBits[y%4][x%2] != 0
}

// ClearRect turns off every dot in the rectangle.
func (b *Braille) ClearRect(x, y, w, h float64) {
	x0, y0 := int(gomath.Floor(x)), int(gomath.Floor(y))
	x1, y1 := int(gomath.Ceil(x+w)), int(gomath.Ceil(y+h))
	for yy := y0; yy < y1; yy++ {
		for xx := x0; xx < x1; xx++ {
			b.unset(xx, yy)
		}
	}
}

// FillCircle lights the dots within radius of center. At least the centre dot
// is lit.
func (b *Braille) FillCircle(center math.Vec2, radius float64, c color.Color) {
	cx, cy := int(gomath.Round(center.X)), int(gomath.Round(center.Y))
	r := int(gomath.Ceil(radius))
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if float64(dx*dx+dy*dy) <= radius*radius {
				b.set(cx+dx, cy+dy, c)
			}
		}
	}
	b.set(cx, cy, c)
}

// Line draws a one-dot-wide segment with Bresenham's algorithm. The stroke
// width is ignored at this resolution.
func (b *Braille) Line(p0, p1 math.Vec2, c color.Color, _ float64) {
	x0, y0 := int(gomath.Round(p0.X)), int(gomath.Round(p0.Y))
	x1, y1 := int(gomath.Round(p1.X)), int(gomath.Round(p1.Y))

	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		b.set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// FillPolygon fills with an even-odd scanline pass and then outlines the
// polygon so thin shapes stay visible.
func (b *Braille) FillPolygon(points []math.Vec2, c color.Color) {
	n := len(points)
	if n == 0 {
		return
	}

	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		minY = gomath.Min(minY, p.Y)
		maxY = gomath.Max(maxY, p.Y)
	}

	var xs []float64
	for y := int(gomath.Floor(minY)); y <= int(gomath.Ceil(maxY)); y++ {
		sy := float64(y) + 0.5
		xs = xs[:0]
		for i := 0; i < n; i++ {
			a, e := points[i], points[(i+1)%n]
			if (a.Y <= sy) == (e.Y <= sy) {
				continue
			}
			xs = append(xs, a.X+(sy-a.Y)*(e.X-a.X)/(e.Y-a.Y))
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(gomath.Ceil(xs[i] - 0.5)); float64(x)+0.5 <= xs[i+1]; x++ {
				b.set(x, y, c)
			}
		}
	}

	for i := 0; i < n; i++ {
		b.Line(points[i], points[(i+1)%n], c, 1)
	}
}

// String returns the grid without colours.
func (b *Braille) String() string {
	var sb strings.Builder
	for i, row := range b.cells {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(row))
	}
	return sb.String()
}

// Render returns the grid with each run of equally coloured cells styled by
// lipgloss.
func (b *Braille) Render() string {
	var sb strings.Builder
	for i, row := range b.cells {
		if i > 0 {
			sb.WriteByte('\n')
		}
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && sameColor(b.colors[i][j], b.colors[i][start]) {
				continue
			}
			sb.WriteString(styled(string(row[start:j]), b.colors[i][start]))
			start = j
		}
	}
	return sb.String()
}

func styled(s string, c color.Color) string {
	if c == nil {
		return s
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(Hex(c))).Render(s)
}

// Hex formats c as #rrggbb.
func Hex(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

func sameColor(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return Hex(a) == Hex(b)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

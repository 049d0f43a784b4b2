package window

// Rect is a viewport rectangle in window pixels.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= float64(r.X) && x < float64(r.X+r.W) &&
		y >= float64(r.Y) && y < float64(r.Y+r.H)
}

// Layout is the placement of every viewport, in viewport order.
type Layout []Rect

// Row lays out viewports of the given sizes left to right, separated and
// surrounded by margin pixels.
func Row(sizes [][2]int, margin int) Layout {
	l := make(Layout, len(sizes))
	x := margin
	for i, s := range sizes {
		l[i] = Rect{X: x, Y: margin, W: s[0], H: s[1]}
		x += s[0] + margin
	}
	return l
}

// Bounds returns the window size needed to show the layout with margin pixels
// of padding on the right and bottom.
func (l Layout) Bounds(margin int) (width, height int) {
	for _, r := range l {
		width = max(width, r.X+r.W+margin)
		height = max(height, r.Y+r.H+margin)
	}
	return width, height
}

// Locate finds the viewport under a window point. It returns the viewport index
// and the point relative to that viewport, or -1 and the unchanged point.
func (l Layout) Locate(x, y float64) (int, float64, float64) {
	for i, r := range l {
		if r.Contains(x, y) {
			return i, x - float64(r.X), y - float64(r.Y)
		}
	}
	return -1, x, y
}

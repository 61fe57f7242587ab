package virtual

import "math"

// Point is a scroll offset or an absolute position.
type Point struct {
	X, Y float64
}

// Size is a width/height pair in pixels (or cells, for terminal hosts).
type Size struct {
	Width, Height float64
}

// Rect is the position descriptor handed to callers for every materialized
// item. Top/Left are absolute within the scroll content.
type Rect struct {
	Top, Left     float64
	Width, Height float64
}

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Right returns the exclusive right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Intersects reports whether two rectangles overlap. Edges are half-open:
// rectangles that only touch along a line do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.Left < other.Right() && r.Right() > other.Left &&
		r.Top < other.Bottom() && r.Bottom() > other.Top
}

// Gutter is the padding around the whole virtualized area.
type Gutter struct {
	Top, Right, Bottom, Left float64
}

// UniformGutter returns a gutter with all four sides set to v.
func UniformGutter(v float64) Gutter {
	return Gutter{Top: v, Right: v, Bottom: v, Left: v}
}

// X returns the horizontal gutter (left + right).
func (g Gutter) X() float64 { return g.Left + g.Right }

// Y returns the vertical gutter (top + bottom).
func (g Gutter) Y() float64 { return g.Top + g.Bottom }

func (g Gutter) validate() error {
	for _, side := range []struct {
		name string
		v    float64
	}{
		{"gutter.top", g.Top},
		{"gutter.right", g.Right},
		{"gutter.bottom", g.Bottom},
		{"gutter.left", g.Left},
	} {
		if err := checkNonNegative(side.name, side.v); err != nil {
			return err
		}
	}
	return nil
}

// clampInt clamps v to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampf clamps v to [lo, hi].
func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// finite reports whether v is neither NaN nor infinite.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

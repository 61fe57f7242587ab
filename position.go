package virtual

import "math"

// Offset returns the start of band i along the axis.
func (t Track) Offset(i int) float64 {
	return t.Lead + float64(i)*t.Stride()
}

// IndexAt returns the band whose stride contains offset, i.e. the i with
// Offset(i) <= offset < Offset(i+1). It inverts Offset exactly: the floor
// estimate is corrected against Offset itself, so IndexAt(Offset(i)) == i
// holds even where float division rounds the wrong way.
//
// The result is not clamped and may lie outside [0, Count). A track with a
// degenerate stride reports 0.
func (t Track) IndexAt(offset float64) int {
	stride := t.Stride()
	if isDegenerate(stride) || !finite(offset) {
		return 0
	}
	x := math.Floor((offset - t.Lead) / stride)
	if x >= math.MaxInt32 || x <= math.MinInt32 {
		return int(clampf(x, math.MinInt32, math.MaxInt32))
	}
	i := int(x)
	for t.Offset(i) > offset {
		i--
	}
	for t.Offset(i+1) <= offset {
		i++
	}
	return i
}

// Cell returns the row and column of an item index.
func (g Geometry) Cell(index int) (row, col int) {
	cols := max(g.Columns.Count, 1)
	return index / cols, index % cols
}

// IndexOf returns the item index at row/col. For tables this is the
// flattened identifier col + row*columns.
func (g Geometry) IndexOf(row, col int) int {
	return row*g.Columns.Count + col
}

// Contains reports whether index names an existing item.
func (g Geometry) Contains(index int) bool {
	return g.Ready && index >= 0 && index < g.ItemCount
}

// PositionOf returns the absolute rectangle of an item. ok is false for
// indices outside [0, ItemCount) and for geometries that are not ready.
func (g Geometry) PositionOf(index int) (r Rect, ok bool) {
	if !g.Contains(index) {
		return Rect{}, false
	}
	row, col := g.Cell(index)
	return g.cellRect(row, col), true
}

// CellPosition returns the rectangle of a table cell addressed by row and
// column independently.
func (g Geometry) CellPosition(row, col int) (r Rect, ok bool) {
	if !g.Ready || row < 0 || row >= g.Rows.Count || col < 0 || col >= g.Columns.Count {
		return Rect{}, false
	}
	if g.IndexOf(row, col) >= g.ItemCount {
		return Rect{}, false
	}
	return g.cellRect(row, col), true
}

func (g Geometry) cellRect(row, col int) Rect {
	return Rect{
		Top:    g.Rows.Offset(row),
		Left:   g.Columns.Offset(col),
		Width:  g.Columns.Size,
		Height: g.Rows.Size,
	}
}

// RowAt maps a vertical scroll offset back to a row index. It is the
// inverse of the row placement used by PositionOf.
func (g Geometry) RowAt(offset float64) int { return g.Rows.IndexAt(offset) }

// ColumnAt maps a horizontal offset back to a column index.
func (g Geometry) ColumnAt(offset float64) int { return g.Columns.IndexAt(offset) }

// MaxScroll returns the largest meaningful scroll offset for a viewport.
func (g Geometry) MaxScroll(viewport Size) Point {
	return Point{
		X: max(0, g.ContentWidth()-viewport.Width),
		Y: max(0, g.ContentHeight()-viewport.Height),
	}
}

// Align selects where ScrollTarget places an item inside the viewport.
type Align uint8

const (
	AlignNearest Align = iota // Scroll as little as possible (no-op if visible)
	AlignStart                // Item at the top of the viewport
	AlignCenter               // Item centered in the viewport
	AlignEnd                  // Item at the bottom of the viewport
)

// ScrollTarget returns the vertical scroll offset that brings index into a
// viewport of the given size currently scrolled to current. Out-of-range
// indices return current unchanged. The result is clamped to MaxScroll.
func (g Geometry) ScrollTarget(index int, viewport Size, current float64, align Align) float64 {
	r, ok := g.PositionOf(index)
	if !ok {
		return current
	}

	target := current
	switch align {
	case AlignStart:
		target = r.Top
	case AlignCenter:
		target = r.Top + r.Height/2 - viewport.Height/2
	case AlignEnd:
		target = r.Bottom() - viewport.Height
	default:
		if r.Top < current {
			target = r.Top
		} else if r.Bottom() > current+viewport.Height {
			target = r.Bottom() - viewport.Height
		}
	}
	return clampf(target, 0, g.MaxScroll(viewport).Y)
}

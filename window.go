package virtual

import (
	"fmt"
	"strconv"
)

// Span is a half-open index range [First, Last).
type Span struct {
	First, Last int
}

// Len returns the number of indices in the span.
func (s Span) Len() int { return max(s.Last-s.First, 0) }

// Empty reports whether the span holds no index.
func (s Span) Empty() bool { return s.Last <= s.First }

// Contains reports whether i lies in [First, Last).
func (s Span) Contains(i int) bool { return i >= s.First && i < s.Last }

// Window is the set of rows and columns to materialize. Both spans are
// clamped to the geometry; grids and lists always cover every column.
type Window struct {
	Rows, Cols Span
}

// Empty reports whether the window materializes nothing.
func (w Window) Empty() bool { return w.Rows.Empty() || w.Cols.Empty() }

// ResolveSpan returns the bands of t intersecting [offset, offset+length),
// widened by overscan bands on each side.
//
// A band intersects when bandEnd > offset and bandStart < offset+length, so a
// band that only touches the viewport edge, or a gap between bands, never
// pulls a band in. Overscan is applied in index space after the visible
// range is clamped, then clamped again to [0, Count]. Degenerate tracks and
// non-positive viewports yield an empty span.
func ResolveSpan(t Track, offset, length float64, overscan int) Span {
	if t.Count <= 0 || isDegenerate(t.Stride()) || !finite(offset) || isDegenerate(length) {
		return Span{}
	}
	end := offset + length

	first := t.IndexAt(offset)
	if t.Offset(first)+t.Size <= offset {
		first++
	}
	last := t.IndexAt(end)
	if t.Offset(last) < end {
		last++
	}

	first = clampInt(first, 0, t.Count)
	last = clampInt(last, first, t.Count)

	overscan = clampInt(overscan, 0, t.Count)
	first = clampInt(first-overscan, 0, t.Count)
	last = clampInt(last+overscan, first, t.Count)
	return Span{First: first, Last: last}
}

// ResolveWindow resolves the window for a viewport (scroll offset in
// Top/Left, client size in Width/Height). Grids and lists virtualize rows
// only; tables virtualize both axes.
func ResolveWindow(g Geometry, viewport Rect, overscan int) Window {
	if !g.Ready || g.Columns.Count <= 0 || g.Rows.Count <= 0 {
		return Window{}
	}

	rows := ResolveSpan(g.Rows, viewport.Top, viewport.Height, overscan)
	cols := Span{First: 0, Last: g.Columns.Count}
	if g.Kind == KindTable {
		cols = ResolveSpan(g.Columns, viewport.Left, viewport.Width, overscan)
	}

	w := Window{Rows: rows, Cols: cols}
	if w.Empty() {
		return Window{}
	}
	return w
}

// Item is one materialized item: its identity and where it goes.
type Item struct {
	Index    int
	Row, Col int
	Position Rect
}

// Key returns a stable key for the item, suitable for keyed reconciliation.
func (it Item) Key() string { return strconv.Itoa(it.Index) }

// Transform returns a CSS-style translate descriptor for the item.
func (it Item) Transform() string {
	return fmt.Sprintf("translate(%gpx, %gpx)", it.Position.Left, it.Position.Top)
}

// Items enumerates the items inside w in row-major order. The ragged last
// row stops at ItemCount-1.
func (g Geometry) Items(w Window) []Item {
	if !g.Ready || w.Empty() {
		return nil
	}

	items := make([]Item, 0, min(w.Rows.Len()*w.Cols.Len(), g.ItemCount))
	for row := w.Rows.First; row < w.Rows.Last; row++ {
		last := min(w.Cols.Last, g.RowLen(row))
		for col := w.Cols.First; col < last; col++ {
			items = append(items, Item{
				Index:    g.IndexOf(row, col),
				Row:      row,
				Col:      col,
				Position: g.cellRect(row, col),
			})
		}
	}
	return items
}

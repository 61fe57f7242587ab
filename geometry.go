package virtual

import "math"

// Kind identifies which engine produced a Geometry.
type Kind uint8

const (
	KindGrid  Kind = iota // Items wrap into rows; only rows are virtualized
	KindList              // One column of rows
	KindTable             // Fixed rows x columns; both axes virtualized
)

func (k Kind) String() string {
	switch k {
	case KindGrid:
		return "grid"
	case KindList:
		return "list"
	case KindTable:
		return "table"
	default:
		return "unknown"
	}
}

// Track is the geometry of one axis: Count bands of Size separated by Gap,
// preceded by Lead and followed by Trail.
type Track struct {
	Count int
	Size  float64
	Gap   float64
	Lead  float64
	Trail float64
}

// Stride is the distance between the starts of two adjacent bands.
func (t Track) Stride() float64 { return t.Size + t.Gap }

// Extent is the total length of the axis including both gutters. A track
// with no bands still reports its gutters.
func (t Track) Extent() float64 {
	if t.Count <= 0 {
		return t.Lead + t.Trail
	}
	n := float64(t.Count)
	return t.Lead + n*t.Size + (n-1)*t.Gap + t.Trail
}

// Geometry holds the derived layout constants for one set of inputs. It is
// recreated wholesale on every full recompute and never patched.
type Geometry struct {
	Kind      Kind
	Ready     bool
	ItemCount int
	Columns   Track
	Rows      Track
}

// ColumnsPerRow returns the number of columns. Ready grids and lists always
// report at least one.
func (g Geometry) ColumnsPerRow() int { return g.Columns.Count }

// ColumnWidth returns the width of a single column.
func (g Geometry) ColumnWidth() float64 { return g.Columns.Size }

// RowCount returns the number of rows.
func (g Geometry) RowCount() int { return g.Rows.Count }

// ContentWidth is the width the scroll container must report.
func (g Geometry) ContentWidth() float64 { return g.Columns.Extent() }

// ContentHeight is the height the scroll container must report.
func (g Geometry) ContentHeight() float64 { return g.Rows.Extent() }

// ContentSize combines ContentWidth and ContentHeight.
func (g Geometry) ContentSize() Size {
	return Size{Width: g.ContentWidth(), Height: g.ContentHeight()}
}

// LastRowLen returns the number of items in the final (possibly ragged) row.
func (g Geometry) LastRowLen() int {
	if g.Rows.Count == 0 || g.Columns.Count <= 0 {
		return 0
	}
	return g.ItemCount - (g.Rows.Count-1)*g.Columns.Count
}

// RowLen returns the number of populated columns in the given row.
func (g Geometry) RowLen(row int) int {
	switch {
	case row < 0 || row >= g.Rows.Count:
		return 0
	case row == g.Rows.Count-1:
		return g.LastRowLen()
	default:
		return g.Columns.Count
	}
}

// ResolveGrid computes the grid geometry for a container of the given size.
// When measured is false the container has no layout yet and the zero,
// not-ready geometry is returned.
func ResolveGrid(available Size, measured bool, rule SizingRule, rowHeight, gap float64, gutter Gutter, itemCount int) Geometry {
	if !measured {
		return Geometry{Kind: KindGrid}
	}
	itemCount = max(itemCount, 0)

	cols, width, colGap := rule.columns(available.Width-gutter.X(), gap)

	return Geometry{
		Kind:      KindGrid,
		Ready:     true,
		ItemCount: itemCount,
		Columns:   Track{Count: cols, Size: width, Gap: colGap, Lead: gutter.Left, Trail: gutter.Right},
		Rows:      Track{Count: ceilDiv(itemCount, cols), Size: rowHeight, Gap: gap, Lead: gutter.Top, Trail: gutter.Bottom},
	}
}

// ResolveList computes the geometry of a single-column list. Rows span the
// full width between the horizontal gutters.
func ResolveList(available Size, measured bool, rowHeight, gap float64, gutter Gutter, itemCount int) Geometry {
	if !measured {
		return Geometry{Kind: KindList}
	}
	itemCount = max(itemCount, 0)

	width := available.Width - gutter.X()
	if !finite(width) || width < 0 {
		width = 0
	}

	return Geometry{
		Kind:      KindList,
		Ready:     true,
		ItemCount: itemCount,
		Columns:   Track{Count: 1, Size: width, Lead: gutter.Left, Trail: gutter.Right},
		Rows:      Track{Count: itemCount, Size: rowHeight, Gap: gap, Lead: gutter.Top, Trail: gutter.Bottom},
	}
}

// TableSpec describes the two independent axes of a table.
type TableSpec struct {
	Rows, Columns       int
	RowHeight, ColWidth float64
	RowGap, ColumnGap   float64
	Gutter              Gutter
}

// ResolveTable computes the geometry of a table. Both axes are fixed, so the
// container size only decides readiness.
func ResolveTable(measured bool, spec TableSpec) Geometry {
	if !measured {
		return Geometry{Kind: KindTable}
	}
	rows, cols := max(spec.Rows, 0), max(spec.Columns, 0)
	if cols > 0 && rows > math.MaxInt32/cols {
		rows = math.MaxInt32 / cols
	}

	return Geometry{
		Kind:      KindTable,
		Ready:     true,
		ItemCount: rows * cols,
		Columns:   Track{Count: cols, Size: spec.ColWidth, Gap: spec.ColumnGap, Lead: spec.Gutter.Left, Trail: spec.Gutter.Right},
		Rows:      Track{Count: rows, Size: spec.RowHeight, Gap: spec.RowGap, Lead: spec.Gutter.Top, Trail: spec.Gutter.Bottom},
	}
}

// ceilDiv returns ceil(n/d) for n >= 0, treating d <= 0 as 1.
func ceilDiv(n, d int) int {
	if d <= 0 {
		d = 1
	}
	return (n + d - 1) / d
}

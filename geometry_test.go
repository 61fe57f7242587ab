package virtual_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/go-theft-auto/virtual"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestResolveGrid_FixedColumnsFillRow(t *testing.T) {
	g := virtual.ResolveGrid(virtual.Size{Width: 1000, Height: 400}, true,
		virtual.Fixed(100), 100, 0, virtual.Gutter{}, 25)

	if !g.Ready {
		t.Fatal("expected ready geometry")
	}
	if got := g.ColumnsPerRow(); got != 10 {
		t.Errorf("ColumnsPerRow = %d, want 10", got)
	}
	if got := g.ColumnWidth(); got != 100 {
		t.Errorf("ColumnWidth = %v, want 100", got)
	}
	if got := g.RowCount(); got != 3 {
		t.Errorf("RowCount = %d, want 3", got)
	}
	if got := g.ContentHeight(); got != 300 {
		t.Errorf("ContentHeight = %v, want 300", got)
	}
	if got := g.ContentWidth(); got != 1000 {
		t.Errorf("ContentWidth = %v, want 1000", got)
	}
}

func TestResolveGrid_NotMeasured(t *testing.T) {
	g := virtual.ResolveGrid(virtual.Size{}, false, virtual.Fixed(100), 100, 0, virtual.Gutter{}, 25)

	if diff := cmp.Diff(virtual.Geometry{Kind: virtual.KindGrid}, g); diff != "" {
		t.Errorf("unmeasured geometry mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveGrid_RowCountLaw(t *testing.T) {
	widths := []float64{0, 1, 99, 250, 1000, 1234.5}
	gaps := []float64{0, 4, 16.5}

	for _, width := range widths {
		for _, gap := range gaps {
			for n := 0; n <= 200; n++ {
				g := virtual.ResolveGrid(virtual.Size{Width: width, Height: 500}, true,
					virtual.Between(80, 120), 50, gap, virtual.UniformGutter(10), n)

				cols := g.ColumnsPerRow()
				if cols < 1 {
					t.Fatalf("width=%v gap=%v n=%d: ColumnsPerRow = %d, want >= 1", width, gap, n, cols)
				}
				want := int(math.Ceil(float64(n) / float64(cols)))
				if g.RowCount() != want {
					t.Fatalf("width=%v gap=%v n=%d: RowCount = %d, want %d", width, gap, n, g.RowCount(), want)
				}
			}
		}
	}
}

func TestResolveGrid_ZeroItems(t *testing.T) {
	g := virtual.ResolveGrid(virtual.Size{Width: 1000, Height: 400}, true,
		virtual.Fixed(100), 100, 10, virtual.Gutter{Top: 5, Bottom: 7}, 0)

	if g.RowCount() != 0 {
		t.Errorf("RowCount = %d, want 0", g.RowCount())
	}
	if g.ContentHeight() != 12 {
		t.Errorf("ContentHeight = %v, want gutters only (12)", g.ContentHeight())
	}

	w := virtual.ResolveWindow(g, virtual.Rect{Width: 1000, Height: 400}, 3)
	if !w.Empty() {
		t.Errorf("window = %+v, want empty", w)
	}
	if items := g.Items(w); len(items) != 0 {
		t.Errorf("got %d items, want none", len(items))
	}
}

func TestResolveGrid_RaggedLastRow(t *testing.T) {
	g := virtual.ResolveGrid(virtual.Size{Width: 1000, Height: 400}, true,
		virtual.Fixed(100), 100, 0, virtual.Gutter{}, 103)

	if g.RowCount() != 11 {
		t.Fatalf("RowCount = %d, want 11", g.RowCount())
	}
	if g.LastRowLen() != 3 {
		t.Errorf("LastRowLen = %d, want 3", g.LastRowLen())
	}

	w := virtual.ResolveWindow(g, virtual.Rect{Top: 900, Width: 1000, Height: 400}, 0)
	var last []int
	for _, it := range g.Items(w) {
		if it.Index >= 103 {
			t.Errorf("materialized index %d beyond item count", it.Index)
		}
		if it.Row == 10 {
			last = append(last, it.Index)
		}
	}
	if diff := cmp.Diff([]int{100, 101, 102}, last); diff != "" {
		t.Errorf("last row mismatch (-want +got):\n%s", diff)
	}
}

func TestSizing_RangeHandsSlackToGaps(t *testing.T) {
	g := virtual.ResolveGrid(virtual.Size{Width: 1032}, true,
		virtual.Between(160, 240), 200, 8, virtual.UniformGutter(16), 40)

	want := virtual.Track{Count: 4, Size: 240, Gap: 8 + 4.0*4/3, Lead: 16, Trail: 16}
	if diff := cmp.Diff(want, g.Columns, approx); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
	if got := g.ContentWidth(); math.Abs(got-1032) > 1e-9 {
		t.Errorf("ContentWidth = %v, want 1032", got)
	}
}

func TestSizing_FixedWidthIsExact(t *testing.T) {
	g := virtual.ResolveGrid(virtual.Size{Width: 950}, true,
		virtual.Fixed(100), 100, 0, virtual.Gutter{}, 10)

	if g.ColumnsPerRow() != 9 {
		t.Fatalf("ColumnsPerRow = %d, want 9", g.ColumnsPerRow())
	}
	if g.ColumnWidth() != 100 {
		t.Errorf("ColumnWidth = %v, want exactly 100", g.ColumnWidth())
	}
	if diff := cmp.Diff(50.0/8, g.Columns.Gap, approx); diff != "" {
		t.Errorf("column gap mismatch (-want +got):\n%s", diff)
	}
}

func TestSizing_FluidStretches(t *testing.T) {
	g := virtual.ResolveGrid(virtual.Size{Width: 950}, true,
		virtual.Fluid(100), 100, 0, virtual.Gutter{}, 10)

	if g.ColumnsPerRow() != 9 {
		t.Fatalf("ColumnsPerRow = %d, want 9", g.ColumnsPerRow())
	}
	if diff := cmp.Diff(950.0/9, g.ColumnWidth(), approx); diff != "" {
		t.Errorf("column width mismatch (-want +got):\n%s", diff)
	}
	if g.Columns.Gap != 0 {
		t.Errorf("column gap = %v, want 0", g.Columns.Gap)
	}
}

func TestSizing_HugeContainerSaturatesColumns(t *testing.T) {
	g := virtual.ResolveGrid(virtual.Size{Width: 1e21, Height: 100}, true,
		virtual.Fixed(1), 10, 0, virtual.Gutter{}, 10)
	if g.ColumnsPerRow() != math.MaxInt32 {
		t.Errorf("ColumnsPerRow = %d, want %d", g.ColumnsPerRow(), math.MaxInt32)
	}
	if g.RowCount() != 1 {
		t.Errorf("RowCount = %d, want 1", g.RowCount())
	}
	w := virtual.ResolveWindow(g, virtual.Rect{Width: 1e21, Height: 100}, 0)
	if n := len(g.Items(w)); n != 10 {
		t.Errorf("Items = %d, want 10", n)
	}
}

func TestResolveTable_CellCountSaturates(t *testing.T) {
	g := virtual.ResolveTable(true, virtual.TableSpec{
		Rows: math.MaxInt, Columns: 4, RowHeight: 1, ColWidth: 1,
	})
	if g.ItemCount <= 0 || g.ItemCount > math.MaxInt32 {
		t.Errorf("ItemCount = %d, want within (0, 2^31-1]", g.ItemCount)
	}
	if g.Rows.Count*g.Columns.Count != g.ItemCount {
		t.Errorf("rows %d x cols %d != ItemCount %d", g.Rows.Count, g.Columns.Count, g.ItemCount)
	}
}

func TestSizing_NarrowContainerKeepsOneColumn(t *testing.T) {
	tests := []struct {
		name  string
		width float64
		want  float64
	}{
		{"narrower than min", 250, 300},
		{"zero width", 0, 300},
		{"gutter wider than container", -40, 300},
		{"NaN width", math.NaN(), 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := virtual.ResolveGrid(virtual.Size{Width: tt.width}, true,
				virtual.Between(300, 400), 100, 10, virtual.Gutter{}, 5)
			if g.ColumnsPerRow() != 1 {
				t.Errorf("ColumnsPerRow = %d, want 1", g.ColumnsPerRow())
			}
			if g.ColumnWidth() != tt.want {
				t.Errorf("ColumnWidth = %v, want %v", g.ColumnWidth(), tt.want)
			}
			if g.RowCount() != 5 {
				t.Errorf("RowCount = %d, want 5", g.RowCount())
			}
		})
	}
}

func TestResolveList(t *testing.T) {
	g := virtual.ResolveList(virtual.Size{Width: 300, Height: 200}, true, 20, 4,
		virtual.Gutter{Top: 8, Right: 10, Bottom: 8, Left: 10}, 50)

	if g.ColumnsPerRow() != 1 || g.RowCount() != 50 {
		t.Fatalf("got %d cols x %d rows, want 1 x 50", g.ColumnsPerRow(), g.RowCount())
	}
	r, ok := g.PositionOf(3)
	if !ok {
		t.Fatal("PositionOf(3) not ok")
	}
	want := virtual.Rect{Top: 8 + 3*24, Left: 10, Width: 280, Height: 20}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("position mismatch (-want +got):\n%s", diff)
	}
	if got, want := g.ContentHeight(), 50*20.0+49*4+16; got != want {
		t.Errorf("ContentHeight = %v, want %v", got, want)
	}
}

func TestResolveTable_IndependentAxes(t *testing.T) {
	g := virtual.ResolveTable(true, virtual.TableSpec{
		Rows: 100, Columns: 50,
		RowHeight: 30, ColWidth: 100,
		RowGap: 2, ColumnGap: 4,
	})

	if g.ItemCount != 5000 {
		t.Errorf("ItemCount = %d, want 5000", g.ItemCount)
	}
	if got, want := g.ContentSize(), (virtual.Size{Width: 50*100 + 49*4, Height: 100*30 + 99*2}); got != want {
		t.Errorf("ContentSize = %+v, want %+v", got, want)
	}
	if g.IndexOf(1, 3) != 53 {
		t.Errorf("IndexOf(1, 3) = %d, want 53", g.IndexOf(1, 3))
	}
	r, ok := g.CellPosition(1, 3)
	if !ok {
		t.Fatal("CellPosition(1, 3) not ok")
	}
	if diff := cmp.Diff(virtual.Rect{Top: 32, Left: 312, Width: 100, Height: 30}, r); diff != "" {
		t.Errorf("cell position mismatch (-want +got):\n%s", diff)
	}
	if _, ok := g.CellPosition(100, 0); ok {
		t.Error("CellPosition past the last row should fail")
	}
}

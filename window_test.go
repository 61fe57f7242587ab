package virtual_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-theft-auto/virtual"
)

func concreteGrid() virtual.Geometry {
	return virtual.ResolveGrid(virtual.Size{Width: 1000, Height: 400}, true,
		virtual.Fixed(100), 100, 0, virtual.Gutter{}, 25)
}

func TestResolveWindow_ConcreteScenario(t *testing.T) {
	g := concreteGrid()
	w := virtual.ResolveWindow(g, virtual.Rect{Top: 150, Width: 1000, Height: 400}, 0)

	want := virtual.Window{Rows: virtual.Span{First: 1, Last: 3}, Cols: virtual.Span{First: 0, Last: 10}}
	if diff := cmp.Diff(want, w); diff != "" {
		t.Fatalf("window mismatch (-want +got):\n%s", diff)
	}

	items := g.Items(w)
	if len(items) != 15 {
		t.Fatalf("got %d items, want 15 (row 1 full, row 2 ragged)", len(items))
	}
	if items[0].Index != 10 || items[len(items)-1].Index != 24 {
		t.Errorf("items span [%d..%d], want [10..24]", items[0].Index, items[len(items)-1].Index)
	}
	first := virtual.Item{Index: 10, Row: 1, Col: 0, Position: virtual.Rect{Top: 100, Width: 100, Height: 100}}
	if diff := cmp.Diff(first, items[0]); diff != "" {
		t.Errorf("first item mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveSpan_HalfOpenEdges(t *testing.T) {
	rows := virtual.Track{Count: 10, Size: 100}

	tests := []struct {
		name   string
		track  virtual.Track
		offset float64
		length float64
		want   virtual.Span
	}{
		{"touching both edges", rows, 100, 100, virtual.Span{First: 1, Last: 2}},
		{"one pixel into next row", rows, 100, 101, virtual.Span{First: 1, Last: 3}},
		{"top of content", rows, 0, 250, virtual.Span{First: 0, Last: 3}},
		{"past the end", rows, 5000, 300, virtual.Span{First: 10, Last: 10}},
		{"inside a gap", virtual.Track{Count: 10, Size: 100, Gap: 20}, 105, 10, virtual.Span{First: 1, Last: 1}},
		{"inside the lead gutter", virtual.Track{Count: 10, Size: 100, Lead: 50}, 0, 50, virtual.Span{First: 0, Last: 0}},
		{"zero length", rows, 100, 0, virtual.Span{}},
		{"no bands", virtual.Track{Size: 100}, 0, 500, virtual.Span{}},
		{"zero stride", virtual.Track{Count: 10}, 0, 500, virtual.Span{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := virtual.ResolveSpan(tt.track, tt.offset, tt.length, 0)
			if got != tt.want {
				t.Errorf("ResolveSpan = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolveSpan_Monotonic(t *testing.T) {
	tracks := []virtual.Track{
		{Count: 200, Size: 100},
		{Count: 77, Size: 33.3, Gap: 7.7, Lead: 13, Trail: 13},
		{Count: 1, Size: 500},
	}
	for _, tr := range tracks {
		prev := virtual.ResolveSpan(tr, 0, 400, 0)
		for offset := 0.0; offset <= tr.Extent(); offset += 7.3 {
			cur := virtual.ResolveSpan(tr, offset, 400, 0)
			if cur.First < prev.First || cur.Last < prev.Last {
				t.Fatalf("track %+v offset %v: span %+v moved backwards from %+v", tr, offset, cur, prev)
			}
			prev = cur
		}
	}
}

func TestResolveSpan_OverscanContainment(t *testing.T) {
	tr := virtual.Track{Count: 50, Size: 40, Gap: 4, Lead: 8, Trail: 8}
	for offset := 0.0; offset <= tr.Extent(); offset += 11 {
		base := virtual.ResolveSpan(tr, offset, 300, 0)
		for k := 1; k <= 5; k++ {
			got := virtual.ResolveSpan(tr, offset, 300, k)
			want := virtual.Span{First: max(0, base.First-k), Last: min(tr.Count, base.Last+k)}
			if got != want {
				t.Fatalf("offset %v overscan %d: got %+v, want %+v", offset, k, got, want)
			}
			if got.First < 0 || got.Last > tr.Count {
				t.Fatalf("offset %v overscan %d: %+v out of range", offset, k, got)
			}
		}
	}
}

func TestResolveSpan_HugeOverscanSaturates(t *testing.T) {
	tr := virtual.Track{Count: 50, Size: 40, Gap: 4}
	for _, offset := range []float64{0, 500, tr.Extent() - 100} {
		base := virtual.ResolveSpan(tr, offset, 100, 0)
		got := virtual.ResolveSpan(tr, offset, 100, math.MaxInt)
		if got != (virtual.Span{First: 0, Last: tr.Count}) {
			t.Errorf("offset %v: got %+v, want the whole track", offset, got)
		}
		if got.First > base.First || got.Last < base.Last {
			t.Errorf("offset %v: %+v does not contain %+v", offset, got, base)
		}
	}
}

func TestPosition_InverseSymmetry(t *testing.T) {
	geoms := []virtual.Geometry{
		concreteGrid(),
		virtual.ResolveGrid(virtual.Size{Width: 1234.5}, true,
			virtual.Between(97.3, 141.1), 33.3, 7.7, virtual.Gutter{Top: 13, Left: 9.5, Right: 3}, 997),
		virtual.ResolveList(virtual.Size{Width: 320}, true, 17.1, 0.3, virtual.UniformGutter(2.2), 5000),
	}
	for _, g := range geoms {
		for i := 0; i < g.ItemCount; i++ {
			r, ok := g.PositionOf(i)
			if !ok {
				t.Fatalf("%s: PositionOf(%d) not ok", g.Kind, i)
			}
			row, _ := g.Cell(i)
			if got := g.RowAt(r.Top); got != row {
				t.Fatalf("%s: RowAt(PositionOf(%d).Top) = %d, want %d", g.Kind, i, got, row)
			}
		}
	}
}

func TestPosition_OutOfRange(t *testing.T) {
	g := concreteGrid()
	for _, i := range []int{-1, 25, 1 << 40} {
		if _, ok := g.PositionOf(i); ok {
			t.Errorf("PositionOf(%d) should fail", i)
		}
	}
	if _, ok := (virtual.Geometry{}).PositionOf(0); ok {
		t.Error("PositionOf on a geometry that is not ready should fail")
	}
}

func TestItems_Idempotent(t *testing.T) {
	g := virtual.ResolveGrid(virtual.Size{Width: 800, Height: 600}, true,
		virtual.Between(120, 180), 150, 6, virtual.UniformGutter(12), 10000)
	viewport := virtual.Rect{Top: 4321, Width: 800, Height: 600}

	a := g.Items(virtual.ResolveWindow(g, viewport, 2))
	b := g.Items(virtual.ResolveWindow(g, viewport, 2))
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("second pass differs (-first +second):\n%s", diff)
	}
}

func TestResolveWindow_TableVirtualizesColumns(t *testing.T) {
	g := virtual.ResolveTable(true, virtual.TableSpec{
		Rows: 100, Columns: 50,
		RowHeight: 30, ColWidth: 100,
		RowGap: 2, ColumnGap: 4,
	})
	w := virtual.ResolveWindow(g, virtual.Rect{Top: 0, Left: 250, Width: 300, Height: 100}, 0)

	want := virtual.Window{Rows: virtual.Span{First: 0, Last: 4}, Cols: virtual.Span{First: 2, Last: 6}}
	if diff := cmp.Diff(want, w); diff != "" {
		t.Fatalf("window mismatch (-want +got):\n%s", diff)
	}

	items := g.Items(w)
	if len(items) != 16 {
		t.Fatalf("got %d items, want 16", len(items))
	}
	if items[0].Index != 2 {
		t.Errorf("first index = %d, want 2", items[0].Index)
	}
	if items[len(items)-1].Index != 3*50+5 {
		t.Errorf("last index = %d, want %d", items[len(items)-1].Index, 3*50+5)
	}
}

func TestScrollTarget(t *testing.T) {
	g := virtual.ResolveList(virtual.Size{Width: 100, Height: 50}, true, 10, 0, virtual.Gutter{}, 100)
	viewport := virtual.Size{Width: 100, Height: 50}

	tests := []struct {
		name    string
		index   int
		current float64
		align   virtual.Align
		want    float64
	}{
		{"start", 20, 0, virtual.AlignStart, 200},
		{"end", 20, 0, virtual.AlignEnd, 160},
		{"center", 20, 0, virtual.AlignCenter, 180},
		{"nearest below", 20, 0, virtual.AlignNearest, 160},
		{"nearest above", 20, 400, virtual.AlignNearest, 200},
		{"nearest already visible", 20, 180, virtual.AlignNearest, 180},
		{"clamped to max scroll", 99, 0, virtual.AlignStart, 950},
		{"out of range keeps current", 100, 42, virtual.AlignStart, 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.ScrollTarget(tt.index, viewport, tt.current, tt.align); got != tt.want {
				t.Errorf("ScrollTarget = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestItem_Descriptor(t *testing.T) {
	it := virtual.Item{Index: 42, Position: virtual.Rect{Top: 100, Left: 12.5, Width: 10, Height: 10}}

	if it.Key() != "42" {
		t.Errorf("Key = %q, want %q", it.Key(), "42")
	}
	if got, want := it.Transform(), "translate(12.5px, 100px)"; got != want {
		t.Errorf("Transform = %q, want %q", got, want)
	}
}

func TestRect_IntersectsIsHalfOpen(t *testing.T) {
	a := virtual.Rect{Top: 0, Left: 0, Width: 100, Height: 100}
	touching := virtual.Rect{Top: 100, Left: 0, Width: 100, Height: 100}
	overlapping := virtual.Rect{Top: 99, Left: 99, Width: 10, Height: 10}

	if a.Intersects(touching) {
		t.Error("rects sharing an edge should not intersect")
	}
	if !a.Intersects(overlapping) {
		t.Error("overlapping rects should intersect")
	}
}

package raster_test

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/gg"

	"github.com/go-theft-auto/virtual"
	"github.com/go-theft-auto/virtual/backend/raster"
)

// newList returns a ready list of 5 rows 20 high with a 10 gap, viewed
// through a 100x60 viewport.
func newList(t *testing.T) *virtual.List {
	t.Helper()
	l, err := virtual.NewList(5, 20, virtual.WithGap(10))
	if err != nil {
		t.Fatalf("NewList: %v", err)
	}
	s := virtual.NewManualSurface()
	l.Attach(s, s)
	s.Resize(virtual.Size{Width: 100, Height: 60})
	return l
}

func opts() raster.Options {
	return raster.Options{Background: gg.Black}
}

func assertPixel(t *testing.T, img image.Image, x, y int, want gg.RGBA) {
	t.Helper()
	got := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
	w := color.RGBAModel.Convert(want.Color()).(color.RGBA)
	near := func(a, b uint8) bool { return max(a, b)-min(a, b) <= 1 }
	if !near(got.R, w.R) || !near(got.G, w.G) || !near(got.B, w.B) {
		t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, w)
	}
}

func TestRender_Viewport(t *testing.T) {
	l := newList(t)
	img, err := raster.Render(l.Snapshot(), opts())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 100, 60) {
		t.Fatalf("bounds = %v, want 100x60", got)
	}

	assertPixel(t, img, 50, 10, raster.DefaultPalette[0])
	assertPixel(t, img, 50, 25, gg.Black)
	assertPixel(t, img, 50, 40, raster.DefaultPalette[1])
	// Row 2 starts exactly at the viewport's bottom edge.
	assertPixel(t, img, 50, 55, gg.Black)
}

func TestRender_ViewportFollowsScroll(t *testing.T) {
	l, err := virtual.NewList(5, 20, virtual.WithGap(10))
	if err != nil {
		t.Fatalf("NewList: %v", err)
	}
	s := virtual.NewManualSurface()
	l.OnChange(func(snap *virtual.Snapshot) { s.SetContentSize(snap.ContentSize()) })
	l.Attach(s, s)
	s.Resize(virtual.Size{Width: 100, Height: 60})
	s.ScrollTo(virtual.Point{Y: 30})

	img, err := raster.Render(l.Snapshot(), opts())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	assertPixel(t, img, 50, 10, raster.DefaultPalette[1])
	assertPixel(t, img, 50, 40, raster.DefaultPalette[2])
}

func TestRender_ContentShowsOnlyMaterializedItems(t *testing.T) {
	l := newList(t)
	o := opts()
	o.Mode = raster.ModeContent
	o.Frame = gg.RGBA{}

	img, err := raster.Render(l.Snapshot(), o)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 100, 140) {
		t.Fatalf("bounds = %v, want 100x140", got)
	}
	assertPixel(t, img, 50, 40, raster.DefaultPalette[1])
	// Row 4 is outside the window and never drawn.
	assertPixel(t, img, 50, 130, gg.Black)
}

func TestRender_Errors(t *testing.T) {
	l, err := virtual.NewList(5, 20)
	if err != nil {
		t.Fatalf("NewList: %v", err)
	}
	if _, err := raster.Render(l.Snapshot(), opts()); !errors.Is(err, virtual.ErrNotReady) {
		t.Errorf("unattached: err = %v, want ErrNotReady", err)
	}

	o := opts()
	o.MaxPixels = 100
	if _, err := raster.Render(newList(t).Snapshot(), o); !errors.Is(err, raster.ErrTooLarge) {
		t.Errorf("err = %v, want ErrTooLarge", err)
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.png")
	if err := raster.SavePNG(newList(t).Snapshot(), path, raster.DefaultOptions()); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("PNG is empty")
	}
}

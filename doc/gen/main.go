// Command gen lays out sample grids, lists and tables, rasterizes them and
// saves JPEG images to doc/imgs/. No window or GL context is needed.
//
// Usage:
//
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"

	"github.com/go-theft-auto/virtual"
	"github.com/go-theft-auto/virtual/backend/raster"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot defines a single layout image to capture.
type screenshot struct {
	name   string                         // filename without extension
	width  float64                        // viewport width
	height float64                        // viewport height
	scroll virtual.Point                  // scroll offset before capture
	mode   raster.Mode                    // viewport or whole content
	build  func() (virtual.Engine, error) // engine under test
}

func run() error {
	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots()
	for _, s := range shots {
		if err := capture(s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%gx%g)\n", s.name, s.width, s.height)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func capture(s screenshot, outDir string) error {
	e, err := s.build()
	if err != nil {
		return err
	}
	surface := virtual.NewManualSurface()
	e.OnChange(func(snap *virtual.Snapshot) { surface.SetContentSize(snap.ContentSize()) })
	e.Attach(surface, surface)
	defer e.Detach()

	surface.Resize(virtual.Size{Width: s.width, Height: s.height})
	surface.ScrollTo(s.scroll)

	opts := raster.DefaultOptions()
	opts.Mode = s.mode
	img, err := raster.Render(e.Snapshot(), opts)
	if err != nil {
		return err
	}

	path := filepath.Join(outDir, s.name+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

func buildScreenshots() []screenshot {
	return []screenshot{
		{
			name: "grid_between", width: 800, height: 480,
			build: func() (virtual.Engine, error) {
				return virtual.NewGrid(500, virtual.Between(160, 240), 120,
					virtual.WithGap(8), virtual.WithUniformGutter(16))
			},
		},
		{
			name: "grid_fixed", width: 800, height: 480,
			build: func() (virtual.Engine, error) {
				return virtual.NewGrid(500, virtual.Fixed(150), 150,
					virtual.WithGap(12), virtual.WithUniformGutter(16))
			},
		},
		{
			name: "grid_fluid", width: 800, height: 480,
			build: func() (virtual.Engine, error) {
				return virtual.NewGrid(500, virtual.Fluid(180), 100,
					virtual.WithGap(8), virtual.WithUniformGutter(16))
			},
		},
		{
			name: "grid_overscan", width: 600, height: 300, scroll: virtual.Point{Y: 400},
			mode: raster.ModeContent,
			build: func() (virtual.Engine, error) {
				return virtual.NewGrid(60, virtual.Fixed(90), 90,
					virtual.WithGap(10), virtual.WithUniformGutter(10), virtual.WithOverscan(1))
			},
		},
		{
			name: "list", width: 400, height: 480, scroll: virtual.Point{Y: 1000},
			build: func() (virtual.Engine, error) {
				return virtual.NewList(1000, 40, virtual.WithGap(4), virtual.WithUniformGutter(8))
			},
		},
		{
			name: "table", width: 800, height: 480, scroll: virtual.Point{X: 300, Y: 600},
			build: func() (virtual.Engine, error) {
				return virtual.NewTable(1000, 40,
					virtual.WithCellSize(100, 28), virtual.WithRowGap(2), virtual.WithColumnGap(4))
			},
		},
		{
			name: "table_overscan", width: 400, height: 200, scroll: virtual.Point{X: 200, Y: 120},
			mode: raster.ModeContent,
			build: func() (virtual.Engine, error) {
				return virtual.NewTable(20, 10,
					virtual.WithCellSize(80, 30), virtual.WithGap(4), virtual.WithOverscan(1))
			},
		},
	}
}

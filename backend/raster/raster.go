// Package raster draws virtual snapshots into images with gg. It needs no
// window or GL context, which makes it useful for documentation and for
// checking layouts in tests.
package raster

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"

	"github.com/go-theft-auto/virtual"
)

// Mode selects what part of the layout is drawn.
type Mode int

const (
	// ModeViewport draws what the scroll container shows.
	ModeViewport Mode = iota
	// ModeContent draws the whole scrollable content area with the viewport
	// outlined, so off-screen rows and overscan are visible.
	ModeContent
)

// Options controls rendering.
type Options struct {
	Mode Mode
	// Scale is pixels per engine unit; zero means 1.
	Scale      float64
	Radius     float64 // Tile corner radius in engine units
	Background gg.RGBA
	// Palette colors items by index. Empty means DefaultPalette.
	Palette []gg.RGBA
	// Frame strokes the viewport in ModeContent.
	Frame gg.RGBA
	// MaxPixels bounds the image area in ModeContent. Zero means 16M.
	MaxPixels int
}

// DefaultPalette matches the tile colors of the other backends.
var DefaultPalette = []gg.RGBA{
	gg.Hex("#3B82F6"),
	gg.Hex("#10B981"),
	gg.Hex("#F59E0B"),
	gg.Hex("#EF4444"),
	gg.Hex("#8B5CF6"),
	gg.Hex("#EC4899"),
}

// DefaultOptions returns dark-background viewport rendering.
func DefaultOptions() Options {
	return Options{
		Scale:      1,
		Radius:     4,
		Background: gg.Hex("#1F1F24"),
		Frame:      gg.White,
	}
}

// ErrTooLarge is returned when the requested image exceeds Options.MaxPixels.
var ErrTooLarge = errors.New("raster: image too large")

// Render draws snap. Snapshots that are not ready yield ErrNotReady.
func Render(snap *virtual.Snapshot, opts Options) (*image.RGBA, error) {
	dc, err := draw(snap, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = dc.Close() }()

	if err := dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("flush: %w", err)
	}
	img, ok := dc.Image().(*image.RGBA)
	if !ok {
		return nil, fmt.Errorf("raster: unexpected image type %T", dc.Image())
	}
	return img, nil
}

// SavePNG draws snap and writes it to path.
func SavePNG(snap *virtual.Snapshot, path string, opts Options) error {
	dc, err := draw(snap, opts)
	if err != nil {
		return err
	}
	defer func() { _ = dc.Close() }()

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func draw(snap *virtual.Snapshot, opts Options) (*gg.Context, error) {
	if err := snap.Err(); err != nil {
		return nil, err
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	palette := opts.Palette
	if len(palette) == 0 {
		palette = DefaultPalette
	}

	// Origin of the image in engine units.
	var ox, oy float64
	area := virtual.Size{Width: snap.Viewport.Width, Height: snap.Viewport.Height}
	if opts.Mode == ModeContent {
		area = snap.ContentSize()
	} else {
		ox, oy = snap.Viewport.Left, snap.Viewport.Top
	}

	w := int(math.Ceil(area.Width * scale))
	h := int(math.Ceil(area.Height * scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("raster: empty %s area %gx%g", snap.Geometry.Kind, area.Width, area.Height)
	}
	limit := opts.MaxPixels
	if limit <= 0 {
		limit = 16 << 20
	}
	if w*h > limit {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooLarge, w, h)
	}

	dc := gg.NewContext(w, h)
	dc.ClearWithColor(opts.Background)

	for _, it := range snap.Items {
		p := it.Position
		x, y := (p.Left-ox)*scale, (p.Top-oy)*scale
		c := palette[it.Index%len(palette)]
		dc.SetRGBA(c.R, c.G, c.B, c.A)
		if opts.Radius > 0 {
			dc.DrawRoundedRectangle(x, y, p.Width*scale, p.Height*scale, opts.Radius*scale)
		} else {
			dc.DrawRectangle(x, y, p.Width*scale, p.Height*scale)
		}
		if err := dc.Fill(); err != nil {
			_ = dc.Close()
			return nil, fmt.Errorf("item %d: %w", it.Index, err)
		}
	}

	if opts.Mode == ModeContent && opts.Frame.A > 0 {
		vp := snap.Viewport
		dc.SetRGBA(opts.Frame.R, opts.Frame.G, opts.Frame.B, opts.Frame.A)
		dc.SetLineWidth(2)
		dc.DrawRectangle(vp.Left*scale, vp.Top*scale, vp.Width*scale, vp.Height*scale)
		if err := dc.Stroke(); err != nil {
			_ = dc.Close()
			return nil, fmt.Errorf("viewport frame: %w", err)
		}
	}
	return dc, nil
}

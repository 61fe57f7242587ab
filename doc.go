/*
Package virtual computes which items of a large grid, list or table intersect
a scroll viewport, where each of them sits, and how large the scroll
container must pretend to be. It never draws anything: hosts render the
returned items wherever they like.

# Overview

Three engines share one pipeline:

	Grid   items flow left to right and wrap; rows are virtualized
	List   one column of fixed-height rows
	Table  fixed rows x columns; both axes are virtualized

Each recompute runs up to three pure stages:

	Geometry  available size, sizing rule, gap, gutter -> columns, rows, content size
	Position  index -> absolute rectangle, and offset -> row (its exact inverse)
	Window    scroll offset, viewport, overscan -> rows/columns to materialize

The Controller embedded in every engine decides which stages run:

	Trigger                                   Stages
	mount, resize, Recompute                  Geometry, Position, Window
	item count, gap, gutter, sizing, overscan Geometry, Position, Window
	scroll                                    Window

Scrolling reuses the cached geometry, so it is cheap. Everything else is a
full pass; avoid driving it from high-frequency events.

# Quick Start

	grid, err := virtual.NewGrid(10_000, virtual.Between(160, 240), 200,
	    virtual.WithGap(8), virtual.WithUniformGutter(16), virtual.WithOverscan(2))
	if err != nil {
	    return err
	}

	surface := virtual.NewManualSurface()
	grid.Attach(surface, surface)
	grid.OnChange(func(s *virtual.Snapshot) {
	    surface.SetContentSize(s.ContentSize())
	})

	// Host event loop
	surface.Resize(virtual.Size{Width: 1280, Height: 720})
	surface.ScrollBy(0, 120)

	for _, it := range grid.VisibleItems() {
	    draw(it.Index, it.Position)
	}

# Conventions

Spans are half-open: Span{First: 1, Last: 3} materializes rows 1 and 2. A
row intersects the viewport when its bottom is below the viewport top and
its top is above the viewport bottom; rows that only touch an edge are not
materialized.

Table items are identified by col + row*columns.

# Readiness

An engine attached to a container that has not been laid out publishes an
empty snapshot whose Err returns ErrNotReady. The first resize (or scroll)
that finds a measurable container runs the full pass and fires OnReady
exactly once. Nothing polls.

# Sizing

Column counts come from SizingRule.Max: cols = max(1, floor(width/(Max+gap))).
The column width is then clamped into [Min, Max] and whatever Max clamps
away is added to the gaps between columns, so Fixed(100) columns are exactly
100 wide. Fluid rules drop the upper clamp and stretch to fill the row.

# Concurrency

Engines are driven from one goroutine (the host's UI loop). Snapshots are
immutable and published atomically, so renderers on other goroutines can
read Snapshot and VisibleItems at any time.

# Hosts

	backend/opengl  GLFW window as the container, items drawn as GL quads
	backend/term    Bubble Tea model; one engine unit is one terminal cell
	backend/raster  offscreen images of a snapshot, used by doc/gen

Engines can also be configured from TOML with LoadConfig, and runtime
settings shared through a Store with BindSettings.

# Debugging

Engines log through log/slog at debug level. Call SetVerbose(true) to see
recompute decisions, or SetLogger / WithLogger to route them elsewhere.
*/
package virtual

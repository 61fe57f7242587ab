package virtual

import (
	"log/slog"
	"slices"
	"sync/atomic"
)

// Meta summarizes a snapshot for hosts that only need counts.
type Meta struct {
	Rows, Cols int // Total rows and columns
	FirstIndex int // First materialized item index, -1 when none
	LastIndex  int // Last materialized item index (inclusive), -1 when none
}

// Snapshot is the immutable result of one recompute. Hosts may hold on to it
// and read it from any goroutine.
type Snapshot struct {
	Seq      uint64
	Ready    bool
	Geometry Geometry
	Viewport Rect // Scroll offset in Top/Left, client size in Width/Height
	Window   Window
	Items    []Item
	Meta     Meta
}

// Err returns ErrNotReady while the container has not been measured.
func (s *Snapshot) Err() error {
	if s == nil || !s.Ready {
		return ErrNotReady
	}
	return nil
}

// ContentSize is the size the scroll container must report. It is zero until
// the container has been measured.
func (s *Snapshot) ContentSize() Size {
	if s == nil || !s.Ready {
		return Size{}
	}
	return s.Geometry.ContentSize()
}

// Controller runs the recompute pipeline for one engine and publishes its
// snapshots. Grid, List and Table embed it.
//
// All mutating methods (attach, setters, event handlers) must be called from
// a single goroutine, the host's UI loop. Snapshot and VisibleItems are safe
// from any goroutine.
type Controller struct {
	kind     Kind
	resolve  func(size Size, measured bool) Geometry
	overscan int
	log      *slog.Logger

	surface Surface
	events  EventSource
	cancels []func()

	geom     Geometry
	viewport Size
	ready    bool

	readyFired bool
	onReady    []func()
	onChange   []func(*Snapshot)
	onEnd      []func(rows int)
	endRows    int

	batchDepth int
	pending    Stage

	seq  uint64
	snap atomic.Pointer[Snapshot]
}

func newController(kind Kind, overscan int, log *slog.Logger, resolve func(Size, bool) Geometry) *Controller {
	c := &Controller{
		kind:     kind,
		resolve:  resolve,
		overscan: overscan,
		log:      log,
		geom:     Geometry{Kind: kind},
		endRows:  -1,
	}
	c.snap.Store(c.emptySnapshot())
	return c
}

func (c *Controller) logger() *slog.Logger {
	if c.log != nil {
		return c.log
	}
	return Logger()
}

// Attach binds the engine to a container and runs the mount pass. Attaching
// the same pair again is a no-op; attaching a different pair detaches the
// previous one first. events may be nil when the host forwards events
// through Bindings instead.
//
// surface and events are compared with ==, so they must be comparable
// (pointers usually are).
func (c *Controller) Attach(surface Surface, events EventSource) {
	if surface == nil {
		return
	}
	if c.surface == surface && c.events == events {
		return
	}
	if c.surface != nil {
		c.Detach()
	}

	c.surface = surface
	c.events = events
	if events != nil {
		c.cancels = append(c.cancels,
			events.OnResize(func() { c.trigger(TriggerResize) }),
			events.OnScroll(func() { c.trigger(TriggerScroll) }),
		)
	}
	c.logger().Debug("virtual: attach", "kind", c.kind)
	c.trigger(TriggerMount)
}

// Detach unsubscribes from the container and publishes an empty, not-ready
// snapshot. OnReady does not fire again on a later Attach.
func (c *Controller) Detach() {
	for _, cancel := range c.cancels {
		if cancel != nil {
			cancel()
		}
	}
	c.cancels = nil
	if c.surface == nil {
		return
	}
	c.surface = nil
	c.events = nil
	c.ready = false
	c.geom = Geometry{Kind: c.kind}
	c.viewport = Size{}
	c.endRows = -1
	c.publish(c.emptySnapshot())
	c.logger().Debug("virtual: detach", "kind", c.kind)
}

// Attached reports whether a surface is bound.
func (c *Controller) Attached() bool { return c.surface != nil }

// Recompute reruns the whole pipeline.
func (c *Controller) Recompute() { c.trigger(TriggerManual) }

// Batch runs fn and coalesces every trigger fired inside it into a single
// pass. Nested batches flush when the outermost one returns.
func (c *Controller) Batch(fn func()) {
	c.batchDepth++
	defer func() {
		c.batchDepth--
		if c.batchDepth == 0 && c.pending != StageNone {
			stages := c.pending
			c.pending = StageNone
			c.run(stages, TriggerManual)
		}
	}()
	fn()
}

// SetOverscan changes the number of extra rows (and table columns) kept on
// each side of the viewport.
func (c *Controller) SetOverscan(n int) error {
	if err := checkCount("overscan", n); err != nil {
		return err
	}
	if n == c.overscan {
		return nil
	}
	c.overscan = n
	c.trigger(TriggerOverscan)
	return nil
}

// Overscan returns the configured overscan.
func (c *Controller) Overscan() int { return c.overscan }

// Ready reports whether the container has been measured.
func (c *Controller) Ready() bool { return c.ready }

// Snapshot returns the latest published snapshot. It is never nil.
func (c *Controller) Snapshot() *Snapshot { return c.snap.Load() }

// Geometry returns the geometry of the latest snapshot.
func (c *Controller) Geometry() Geometry { return c.snap.Load().Geometry }

// VisibleItems returns a copy of the currently materialized items.
func (c *Controller) VisibleItems() []Item {
	return slices.Clone(c.snap.Load().Items)
}

// Bindings returns the listeners and content size a host applies to its
// scroll container.
func (c *Controller) Bindings() ContainerBindings {
	return ContainerBindings{
		Resized:     func() { c.trigger(TriggerResize) },
		Scrolled:    func() { c.trigger(TriggerScroll) },
		ContentSize: c.snap.Load().ContentSize(),
	}
}

// OnReady registers fn to run once, when the container is first measured.
// If that already happened fn runs immediately.
func (c *Controller) OnReady(fn func()) {
	if c.readyFired {
		fn()
		return
	}
	c.onReady = append(c.onReady, fn)
}

// OnChange registers fn to run after every published snapshot.
func (c *Controller) OnChange(fn func(*Snapshot)) {
	c.onChange = append(c.onChange, fn)
}

// OnEndReached registers fn to run when the window first includes the last
// row for a given row count. It fires again only after the row count changes,
// which makes it suitable for loading more items.
func (c *Controller) OnEndReached(fn func(rows int)) {
	c.onEnd = append(c.onEnd, fn)
}

// ScrollTarget returns the vertical offset that brings index into view in
// the current viewport. ok is false when the engine is not ready or index is
// out of range.
func (c *Controller) ScrollTarget(index int, align Align) (offset float64, ok bool) {
	if c.surface == nil || !c.ready || !c.geom.Contains(index) {
		return 0, false
	}
	current := c.surface.ScrollOffset().Y
	return c.geom.ScrollTarget(index, c.viewport, current, align), true
}

func (c *Controller) trigger(t Trigger) {
	stages := t.Stages()
	if c.batchDepth > 0 {
		c.pending |= stages
		return
	}
	c.run(stages, t)
}

func (c *Controller) run(stages Stage, t Trigger) {
	if c.surface == nil {
		return
	}
	switch {
	case stages.Has(StageGeometry):
		c.fullPass(t)
	case stages.Has(StageWindow):
		if !c.ready {
			// Still mounting; a scroll is a chance to pick up the first
			// measurement.
			c.fullPass(t)
			return
		}
		c.windowPass(t)
	}
}

func (c *Controller) fullPass(t Trigger) {
	size, measured := c.surface.Measure()
	if measured && (!finite(size.Width) || !finite(size.Height)) {
		measured = false
	}

	geom := c.resolve(size, measured)
	if !geom.Ready {
		c.logger().Debug("virtual: container not measured, skipping",
			"kind", c.kind, "trigger", t)
		if c.ready || c.snap.Load().Ready {
			c.ready = false
			c.geom = geom
			c.publish(c.emptySnapshot())
		}
		return
	}
	c.geom = geom
	c.viewport = size

	if geom.Columns.Size <= 0 && geom.ItemCount > 0 {
		c.logger().Debug("virtual: no usable width, columns collapsed",
			"kind", c.kind, "width", size.Width)
	}
	c.logger().Debug("virtual: recompute",
		"kind", c.kind,
		"trigger", t,
		"items", geom.ItemCount,
		"cols", geom.Columns.Count,
		"colWidth", geom.Columns.Size,
		"rows", geom.Rows.Count,
		"contentHeight", geom.ContentHeight(),
	)

	wasReady := c.ready
	c.ready = true
	c.publish(c.buildSnapshot())
	if !wasReady {
		c.fireReady()
	}
	c.checkEnd()
}

// windowPass republishes with the current scroll offset. When the window is
// unchanged the previous items are reused; an unchanged offset publishes
// nothing.
func (c *Controller) windowPass(t Trigger) {
	prev := c.snap.Load()
	scroll := c.surface.ScrollOffset()
	if prev.Ready && prev.Viewport.Top == scroll.Y && prev.Viewport.Left == scroll.X {
		return
	}

	viewport := Rect{Top: scroll.Y, Left: scroll.X, Width: c.viewport.Width, Height: c.viewport.Height}
	win := ResolveWindow(c.geom, viewport, c.overscan)
	if prev.Ready && prev.Window == win {
		next := *prev
		next.Viewport = viewport
		c.publish(&next)
		return
	}

	snap := c.buildSnapshot()
	c.logger().Debug("virtual: window moved",
		"kind", c.kind, "trigger", t,
		"rows", snap.Window.Rows, "cols", snap.Window.Cols)
	c.publish(snap)
	c.checkEnd()
}

func (c *Controller) buildSnapshot() *Snapshot {
	scroll := c.surface.ScrollOffset()
	viewport := Rect{Top: scroll.Y, Left: scroll.X, Width: c.viewport.Width, Height: c.viewport.Height}

	win := ResolveWindow(c.geom, viewport, c.overscan)
	items := c.geom.Items(win)

	meta := Meta{Rows: c.geom.Rows.Count, Cols: c.geom.Columns.Count, FirstIndex: -1, LastIndex: -1}
	if len(items) > 0 {
		meta.FirstIndex = items[0].Index
		meta.LastIndex = items[len(items)-1].Index
	}
	return &Snapshot{
		Ready:    true,
		Geometry: c.geom,
		Viewport: viewport,
		Window:   win,
		Items:    items,
		Meta:     meta,
	}
}

func (c *Controller) emptySnapshot() *Snapshot {
	return &Snapshot{
		Geometry: Geometry{Kind: c.kind},
		Meta:     Meta{FirstIndex: -1, LastIndex: -1},
	}
}

func (c *Controller) publish(s *Snapshot) {
	c.seq++
	s.Seq = c.seq
	c.snap.Store(s)
	for _, fn := range c.onChange {
		fn(s)
	}
}

func (c *Controller) fireReady() {
	if c.readyFired {
		return
	}
	c.readyFired = true
	c.logger().Debug("virtual: ready", "kind", c.kind)
	fns := c.onReady
	c.onReady = nil
	for _, fn := range fns {
		fn()
	}
}

func (c *Controller) checkEnd() {
	rows := c.geom.Rows.Count
	if !c.ready || rows == 0 || c.endRows == rows {
		return
	}
	if c.snap.Load().Window.Rows.Last != rows {
		return
	}
	c.endRows = rows
	for _, fn := range c.onEnd {
		fn(rows)
	}
}

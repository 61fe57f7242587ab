package virtual

import "sync"

// Surface is the measurable scroll container an engine is attached to.
// Engines read it; they never own it.
type Surface interface {
	// Measure returns the client size. ok is false until the container has
	// been laid out.
	Measure() (size Size, ok bool)

	// ScrollOffset returns the current scroll position.
	ScrollOffset() Point
}

// EventSource delivers container notifications. Each subscription returns a
// function that cancels it.
type EventSource interface {
	OnResize(fn func()) (cancel func())
	OnScroll(fn func()) (cancel func())
}

// ContainerBindings is what a host applies to its scroll container when it
// drives the engine without an EventSource.
type ContainerBindings struct {
	// Resized must be called whenever the measured size changes.
	Resized func()

	// Scrolled must be called on every scroll event.
	Scrolled func()

	// ContentSize is the size the scroll content must have so native
	// scrollbars cover the virtual extent.
	ContentSize Size
}

// listeners is a small ordered set of callbacks.
type listeners[F any] struct {
	mu   sync.Mutex
	next int
	fns  map[int]F
	ids  []int
}

func (l *listeners[F]) add(fn F) (cancel func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fns == nil {
		l.fns = make(map[int]F)
	}
	id := l.next
	l.next++
	l.fns[id] = fn
	l.ids = append(l.ids, id)

	var once sync.Once
	return func() {
		once.Do(func() { l.remove(id) })
	}
}

func (l *listeners[F]) remove(id int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.fns, id)
	for i, v := range l.ids {
		if v == id {
			l.ids = append(l.ids[:i], l.ids[i+1:]...)
			break
		}
	}
}

// snapshot returns the callbacks in subscription order. Callbacks are run
// outside the lock so they may subscribe or cancel.
func (l *listeners[F]) snapshot() []F {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]F, 0, len(l.ids))
	for _, id := range l.ids {
		out = append(out, l.fns[id])
	}
	return out
}

func (l *listeners[F]) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.ids)
}

// ManualSurface is a Surface and EventSource driven by explicit calls. Hosts
// without a native scroll container (terminals, GL windows, tests) keep one
// per engine and forward their own events to it.
//
// Scroll offsets are clamped to the content size set with SetContentSize,
// the way a native scroll container clamps to its scroll height.
type ManualSurface struct {
	mu       sync.Mutex
	size     Size
	measured bool
	offset   Point
	content  Size

	resize listeners[func()]
	scroll listeners[func()]
}

// NewManualSurface returns an unmeasured surface scrolled to the origin.
func NewManualSurface() *ManualSurface {
	return &ManualSurface{}
}

// Measure implements Surface.
func (m *ManualSurface) Measure() (Size, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.size, m.measured
}

// ScrollOffset implements Surface.
func (m *ManualSurface) ScrollOffset() Point {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.offset
}

// OnResize implements EventSource.
func (m *ManualSurface) OnResize(fn func()) func() { return m.resize.add(fn) }

// OnScroll implements EventSource.
func (m *ManualSurface) OnScroll(fn func()) func() { return m.scroll.add(fn) }

// Resize marks the surface as measured with the given client size and
// notifies resize subscribers.
func (m *ManualSurface) Resize(size Size) {
	m.mu.Lock()
	m.size = size
	m.measured = true
	m.offset = m.clampLocked(m.offset)
	m.mu.Unlock()

	for _, fn := range m.resize.snapshot() {
		fn()
	}
}

// SetContentSize updates the scrollable extent. It does not notify anyone;
// hosts call it from the engine's change callback.
func (m *ManualSurface) SetContentSize(content Size) {
	m.mu.Lock()
	m.content = content
	m.mu.Unlock()
}

// ScrollTo moves to p (clamped) and notifies scroll subscribers when the
// offset actually changed.
func (m *ManualSurface) ScrollTo(p Point) {
	m.mu.Lock()
	next := m.clampLocked(p)
	changed := next != m.offset
	m.offset = next
	m.mu.Unlock()

	if !changed {
		return
	}
	for _, fn := range m.scroll.snapshot() {
		fn()
	}
}

// ScrollBy scrolls relative to the current offset.
func (m *ManualSurface) ScrollBy(dx, dy float64) {
	cur := m.ScrollOffset()
	m.ScrollTo(Point{X: cur.X + dx, Y: cur.Y + dy})
}

func (m *ManualSurface) clampLocked(p Point) Point {
	maxX := max(0, m.content.Width-m.size.Width)
	maxY := max(0, m.content.Height-m.size.Height)
	return Point{X: clampf(p.X, 0, maxX), Y: clampf(p.Y, 0, maxY)}
}

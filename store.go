package virtual

import "sync"

// Store is a small publish/subscribe container for a value that several
// views observe. Reads return a copy; writes replace the value wholesale and
// notify subscribers synchronously on the writer's goroutine.
//
// Usage:
//
//	var settings = virtual.NewStore(virtual.Settings{Items: 500, Gap: 8})
//
//	cancel := settings.Subscribe(func(s virtual.Settings) { redraw() })
//	defer cancel()
//	settings.Update(func(s virtual.Settings) virtual.Settings { return s.WithGap(12) })
type Store[T any] struct {
	mu    sync.RWMutex
	value T
	subs  listeners[func(T)]
}

// NewStore creates a store holding initial.
func NewStore[T any](initial T) *Store[T] {
	return &Store[T]{value: initial}
}

// Now returns the current value.
func (s *Store[T]) Now() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the value and notifies subscribers.
func (s *Store[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	s.mu.Unlock()
	s.notify(v)
}

// Update applies fn to the current value atomically and notifies
// subscribers with the result.
func (s *Store[T]) Update(fn func(T) T) {
	s.mu.Lock()
	v := fn(s.value)
	s.value = v
	s.mu.Unlock()
	s.notify(v)
}

// Subscribe registers fn for future changes. The returned function
// unsubscribes and is safe to call more than once.
func (s *Store[T]) Subscribe(fn func(T)) (cancel func()) {
	return s.subs.add(fn)
}

// Subscribers returns the number of active subscriptions.
func (s *Store[T]) Subscribers() int { return s.subs.len() }

func (s *Store[T]) notify(v T) {
	for _, fn := range s.subs.snapshot() {
		fn(v)
	}
}

// Settings are the runtime knobs a host exposes to its users.
type Settings struct {
	Items    int
	Gap      float64
	Gutter   Gutter
	Overscan int
}

// WithItems returns a copy with Items set.
func (s Settings) WithItems(n int) Settings {
	s.Items = n
	return s
}

// WithGap returns a copy with Gap set.
func (s Settings) WithGap(gap float64) Settings {
	s.Gap = gap
	return s
}

// WithGutter returns a copy with Gutter set.
func (s Settings) WithGutter(g Gutter) Settings {
	s.Gutter = g
	return s
}

// WithOverscan returns a copy with Overscan set.
func (s Settings) WithOverscan(n int) Settings {
	s.Overscan = n
	return s
}

// itemCounter is implemented by engines whose size is a flat item count.
type itemCounter interface {
	SetItemCount(n int) error
}

// BindSettings applies the store's current value to e and keeps applying
// every change, each as a single batched recompute. Tables ignore Items.
// Rejected values are logged and leave the engine unchanged.
//
// Subscribers run on the writer's goroutine, so the store must be written
// from the goroutine that drives e.
func BindSettings(store *Store[Settings], e Engine) (cancel func()) {
	apply := func(s Settings) {
		e.Batch(func() {
			var errs []error
			if c, ok := e.(itemCounter); ok {
				errs = append(errs, c.SetItemCount(s.Items))
			}
			errs = append(errs,
				e.SetGap(s.Gap),
				e.SetGutter(s.Gutter),
				e.SetOverscan(s.Overscan),
			)
			for _, err := range errs {
				if err != nil {
					Logger().Warn("virtual: settings rejected", "error", err)
				}
			}
		})
	}
	apply(store.Now())
	return store.Subscribe(apply)
}

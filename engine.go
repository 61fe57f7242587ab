package virtual

// Engine is the surface shared by Grid, List and Table. Hosts that render
// any of them (terminal, GL, PNG snapshots) accept an Engine.
type Engine interface {
	Attach(surface Surface, events EventSource)
	Detach()
	Recompute()
	Batch(fn func())
	Bindings() ContainerBindings
	Snapshot() *Snapshot
	VisibleItems() []Item
	OnChange(fn func(*Snapshot))
	OnReady(fn func())
	OnEndReached(fn func(rows int))
	ScrollTarget(index int, align Align) (float64, bool)

	SetOverscan(n int) error
	SetGap(gap float64) error
	SetGutter(g Gutter) error
}

var (
	_ Engine = (*Grid)(nil)
	_ Engine = (*List)(nil)
	_ Engine = (*Table)(nil)
)

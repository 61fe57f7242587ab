package virtual

import "log/slog"

// Option configures an engine at construction time.
type Option func(*options)

// options holds engine configuration keyed by OptKey name.
type options struct {
	values map[string]any
}

// OptKey is a typed key for engine options. Built-in keys are declared
// below; hosts wrapping an engine can declare their own and read them back
// with ApplyAndGet.
//
// Example:
//
//	var OptTheme = virtual.NewOptKey("theme", "dark")
//
//	grid, err := virtual.NewGrid(n, rule, 80, virtual.WithOpt(OptTheme, "light"))
//	theme := virtual.ApplyAndGet(opts, OptTheme)
type OptKey[T any] struct {
	name string
	def  T
}

// NewOptKey creates a typed option key with a default value.
func NewOptKey[T any](name string, defaultValue T) OptKey[T] {
	return OptKey[T]{name: name, def: defaultValue}
}

// Name returns the key name.
func (k OptKey[T]) Name() string { return k.name }

// Default returns the value used when the option is not set.
func (k OptKey[T]) Default() T { return k.def }

// WithOpt sets an option value using a typed key.
func WithOpt[T any](key OptKey[T], value T) Option {
	return func(o *options) {
		if o.values == nil {
			o.values = make(map[string]any)
		}
		o.values[key.name] = value
	}
}

// GetOpt retrieves an option value, or the key's default if unset.
func GetOpt[T any](o options, key OptKey[T]) T {
	v, ok := o.values[key.name]
	if !ok {
		return key.def
	}
	typed, ok := v.(T)
	if !ok {
		return key.def
	}
	return typed
}

// HasOpt returns true if the option was explicitly set.
func HasOpt[T any](o options, key OptKey[T]) bool {
	_, ok := o.values[key.name]
	return ok
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// ApplyAndGet applies options and returns a single value.
func ApplyAndGet[T any](opts []Option, key OptKey[T]) T {
	return GetOpt(applyOptions(opts), key)
}

// ApplyAndCheck returns the option value and whether it was explicitly set.
func ApplyAndCheck[T any](opts []Option, key OptKey[T]) (T, bool) {
	o := applyOptions(opts)
	return GetOpt(o, key), HasOpt(o, key)
}

// --- Spacing ---
var (
	OptGap       = NewOptKey[float64]("gap", 0)
	OptRowGap    = NewOptKey[float64]("rowGap", 0)    // Tables only; falls back to OptGap
	OptColumnGap = NewOptKey[float64]("columnGap", 0) // Tables only; falls back to OptGap
	OptGutter    = NewOptKey("gutter", Gutter{})
)

// --- Windowing ---
var (
	OptOverscan = NewOptKey("overscan", 0)
)

// --- Table sizing ---
var (
	OptRowHeight   = NewOptKey[float64]("rowHeight", 0)
	OptColumnWidth = NewOptKey[float64]("columnWidth", 0)
)

// --- Diagnostics ---
var (
	OptLogger = NewOptKey[*slog.Logger]("logger", nil) // nil follows SetLogger
)

// WithGap sets the space between rows and between columns.
func WithGap(gap float64) Option { return WithOpt(OptGap, gap) }

// WithRowGap sets the vertical gap between table rows.
func WithRowGap(gap float64) Option { return WithOpt(OptRowGap, gap) }

// WithColumnGap sets the horizontal gap between table columns.
func WithColumnGap(gap float64) Option { return WithOpt(OptColumnGap, gap) }

// WithGutter sets the padding around the virtualized area.
func WithGutter(g Gutter) Option { return WithOpt(OptGutter, g) }

// WithUniformGutter sets the same padding on all four sides.
func WithUniformGutter(v float64) Option { return WithOpt(OptGutter, UniformGutter(v)) }

// WithOverscan keeps n extra rows (and table columns) materialized on each
// side of the viewport.
func WithOverscan(n int) Option { return WithOpt(OptOverscan, n) }

// WithRowHeight sets the height of table rows.
func WithRowHeight(h float64) Option { return WithOpt(OptRowHeight, h) }

// WithColumnWidth sets the width of table columns.
func WithColumnWidth(w float64) Option { return WithOpt(OptColumnWidth, w) }

// WithCellSize sets both table row height and column width.
func WithCellSize(width, height float64) Option {
	return func(o *options) {
		WithOpt(OptColumnWidth, width)(o)
		WithOpt(OptRowHeight, height)(o)
	}
}

// WithLogger routes the engine's debug output to l instead of the package
// logger.
func WithLogger(l *slog.Logger) Option { return WithOpt(OptLogger, l) }

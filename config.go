package virtual

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the TOML form of an engine configuration.
//
//	kind = "grid"
//	items = 5000
//	row_height = 200
//	gap = 8
//	overscan = 2
//
//	[sizing]
//	min = 160
//	max = 240
//
//	[gutter]
//	all = 16
//	top = 32
//
// Tables use the [table] section (Cells) for counts, column width and
// per-axis gaps; row_height applies to every kind.
type Config struct {
	Kind      string       `toml:"kind"`
	Items     int          `toml:"items"`
	RowHeight float64      `toml:"row_height"`
	Gap       float64      `toml:"gap"`
	Overscan  int          `toml:"overscan"`
	Sizing    SizingConfig `toml:"sizing"`
	Gutter    GutterConfig `toml:"gutter"`
	Cells     TableConfig  `toml:"table"`
}

// SizingConfig is the [sizing] section. Width is shorthand for min = max.
type SizingConfig struct {
	Width   float64 `toml:"width,omitempty"`
	Min     float64 `toml:"min,omitempty"`
	Max     float64 `toml:"max,omitempty"`
	Stretch bool    `toml:"stretch,omitempty"`
}

// GutterConfig is the [gutter] section. All sets every side; explicit sides
// override it.
type GutterConfig struct {
	All    float64  `toml:"all"`
	Top    *float64 `toml:"top,omitempty"`
	Right  *float64 `toml:"right,omitempty"`
	Bottom *float64 `toml:"bottom,omitempty"`
	Left   *float64 `toml:"left,omitempty"`
}

// TableConfig is the [table] section.
type TableConfig struct {
	Rows        int      `toml:"rows"`
	Columns     int      `toml:"columns"`
	ColumnWidth float64  `toml:"column_width"`
	RowGap      *float64 `toml:"row_gap,omitempty"`
	ColumnGap   *float64 `toml:"column_gap,omitempty"`
}

// DefaultConfig returns the configuration used when no file is given: a
// photo-wall style grid.
func DefaultConfig() Config {
	return Config{
		Kind:      KindGrid.String(),
		Items:     1000,
		RowHeight: 200,
		Gap:       8,
		Overscan:  2,
		Sizing:    SizingConfig{Min: 160, Max: 240},
		Gutter:    GutterConfig{All: 16},
		Cells:     TableConfig{Rows: 1000, Columns: 50, ColumnWidth: 120},
	}
}

// LoadConfig reads a TOML configuration file. Fields missing from the file
// keep their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("failed to read %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes and validates TOML configuration data.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// SaveConfig writes cfg to path as TOML.
func SaveConfig(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// EngineKind parses the kind field.
func (c Config) EngineKind() (Kind, error) {
	switch c.Kind {
	case "", "grid":
		return KindGrid, nil
	case "list":
		return KindList, nil
	case "table":
		return KindTable, nil
	default:
		return KindGrid, fmt.Errorf("%w: unknown kind %q", ErrInvalidConfiguration, c.Kind)
	}
}

// SizingRule converts the [sizing] section.
func (s SizingConfig) SizingRule() SizingRule {
	if s.Width > 0 {
		return SizingRule{Min: s.Width, Max: s.Width, Stretch: s.Stretch}
	}
	lo, hi := s.Min, s.Max
	if lo == 0 {
		lo = hi
	}
	if hi == 0 {
		hi = lo
	}
	return SizingRule{Min: lo, Max: hi, Stretch: s.Stretch}
}

// Resolve converts the [gutter] section.
func (g GutterConfig) Resolve() Gutter {
	out := UniformGutter(g.All)
	if g.Top != nil {
		out.Top = *g.Top
	}
	if g.Right != nil {
		out.Right = *g.Right
	}
	if g.Bottom != nil {
		out.Bottom = *g.Bottom
	}
	if g.Left != nil {
		out.Left = *g.Left
	}
	return out
}

// Options returns the engine options described by c, followed by extra.
func (c Config) Options(extra ...Option) []Option {
	opts := []Option{
		WithGap(c.Gap),
		WithGutter(c.Gutter.Resolve()),
		WithOverscan(c.Overscan),
	}
	if kind, _ := c.EngineKind(); kind == KindTable {
		opts = append(opts, WithCellSize(c.Cells.ColumnWidth, c.RowHeight))
		if c.Cells.RowGap != nil {
			opts = append(opts, WithRowGap(*c.Cells.RowGap))
		}
		if c.Cells.ColumnGap != nil {
			opts = append(opts, WithColumnGap(*c.Cells.ColumnGap))
		}
	}
	return append(opts, extra...)
}

// Grid builds a grid engine from c.
func (c Config) Grid(opts ...Option) (*Grid, error) {
	return NewGrid(c.Items, c.Sizing.SizingRule(), c.RowHeight, c.Options(opts...)...)
}

// List builds a list engine from c.
func (c Config) List(opts ...Option) (*List, error) {
	return NewList(c.Items, c.RowHeight, c.Options(opts...)...)
}

// Table builds a table engine from c.
func (c Config) Table(opts ...Option) (*Table, error) {
	return NewTable(c.Cells.Rows, c.Cells.Columns, c.Options(opts...)...)
}

// Engine builds whichever engine Kind names.
func (c Config) Engine(opts ...Option) (Engine, error) {
	kind, err := c.EngineKind()
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindList:
		l, err := c.List(opts...)
		if err != nil {
			return nil, err
		}
		return l, nil
	case KindTable:
		t, err := c.Table(opts...)
		if err != nil {
			return nil, err
		}
		return t, nil
	default:
		g, err := c.Grid(opts...)
		if err != nil {
			return nil, err
		}
		return g, nil
	}
}

// Validate reports the first invalid value in c.
func (c Config) Validate() error {
	_, err := c.Engine()
	return err
}

package virtual

// Grid virtualizes items that flow left to right and wrap into rows. Only
// rows are virtualized; every materialized row carries all of its columns.
//
// Usage:
//
//	grid, err := virtual.NewGrid(len(photos), virtual.Between(160, 240), 200,
//	    virtual.WithGap(8), virtual.WithUniformGutter(16), virtual.WithOverscan(2))
//	if err != nil {
//	    return err
//	}
//	grid.Attach(surface, surface)
//	for _, it := range grid.VisibleItems() {
//	    drawPhoto(photos[it.Index], it.Position)
//	}
type Grid struct {
	*Controller

	itemCount int
	rule      SizingRule
	rowHeight float64
	gap       float64
	gutter    Gutter
}

// NewGrid creates a grid engine. It is inert until attached to a surface.
// Options: WithGap, WithGutter, WithUniformGutter, WithOverscan, WithLogger.
func NewGrid(itemCount int, rule SizingRule, rowHeight float64, opts ...Option) (*Grid, error) {
	o := applyOptions(opts)
	g := &Grid{
		itemCount: itemCount,
		rule:      rule,
		rowHeight: rowHeight,
		gap:       GetOpt(o, OptGap),
		gutter:    GetOpt(o, OptGutter),
	}
	overscan := GetOpt(o, OptOverscan)
	if err := g.validate(overscan); err != nil {
		return nil, err
	}
	g.Controller = newController(KindGrid, overscan, GetOpt(o, OptLogger), g.resolveGeometry)
	return g, nil
}

func (g *Grid) validate(overscan int) error {
	for _, err := range []error{
		checkCount("items", g.itemCount),
		g.rule.validate(),
		checkPositive("row_height", g.rowHeight),
		checkNonNegative("gap", g.gap),
		g.gutter.validate(),
		checkCount("overscan", overscan),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}

func (g *Grid) resolveGeometry(size Size, measured bool) Geometry {
	return ResolveGrid(size, measured, g.rule, g.rowHeight, g.gap, g.gutter, g.itemCount)
}

// ItemCount returns the configured number of items.
func (g *Grid) ItemCount() int { return g.itemCount }

// Sizing returns the column sizing rule.
func (g *Grid) Sizing() SizingRule { return g.rule }

// SetItemCount changes the number of items.
func (g *Grid) SetItemCount(n int) error {
	if err := checkCount("items", n); err != nil {
		return err
	}
	if n != g.itemCount {
		g.itemCount = n
		g.trigger(TriggerItemCount)
	}
	return nil
}

// SetSizing changes the column sizing rule.
func (g *Grid) SetSizing(rule SizingRule) error {
	if err := rule.validate(); err != nil {
		return err
	}
	if rule != g.rule {
		g.rule = rule
		g.trigger(TriggerSizing)
	}
	return nil
}

// SetRowHeight changes the height of every row.
func (g *Grid) SetRowHeight(h float64) error {
	if err := checkPositive("row_height", h); err != nil {
		return err
	}
	if h != g.rowHeight {
		g.rowHeight = h
		g.trigger(TriggerSizing)
	}
	return nil
}

// SetGap changes the gap between rows and columns.
func (g *Grid) SetGap(gap float64) error {
	if err := checkNonNegative("gap", gap); err != nil {
		return err
	}
	if gap != g.gap {
		g.gap = gap
		g.trigger(TriggerGap)
	}
	return nil
}

// SetGutter changes the padding around the grid.
func (g *Grid) SetGutter(gutter Gutter) error {
	if err := gutter.validate(); err != nil {
		return err
	}
	if gutter != g.gutter {
		g.gutter = gutter
		g.trigger(TriggerGutter)
	}
	return nil
}

package virtual

// List virtualizes a single column of fixed-height rows spanning the full
// width between the horizontal gutters.
type List struct {
	*Controller

	itemCount int
	rowHeight float64
	gap       float64
	gutter    Gutter
}

// NewList creates a list engine. It is inert until attached to a surface.
func NewList(itemCount int, rowHeight float64, opts ...Option) (*List, error) {
	o := applyOptions(opts)
	l := &List{
		itemCount: itemCount,
		rowHeight: rowHeight,
		gap:       GetOpt(o, OptGap),
		gutter:    GetOpt(o, OptGutter),
	}
	overscan := GetOpt(o, OptOverscan)
	for _, err := range []error{
		checkCount("items", itemCount),
		checkPositive("row_height", rowHeight),
		checkNonNegative("gap", l.gap),
		l.gutter.validate(),
		checkCount("overscan", overscan),
	} {
		if err != nil {
			return nil, err
		}
	}
	l.Controller = newController(KindList, overscan, GetOpt(o, OptLogger), l.resolveGeometry)
	return l, nil
}

func (l *List) resolveGeometry(size Size, measured bool) Geometry {
	return ResolveList(size, measured, l.rowHeight, l.gap, l.gutter, l.itemCount)
}

// ItemCount returns the configured number of rows.
func (l *List) ItemCount() int { return l.itemCount }

// SetItemCount changes the number of rows.
func (l *List) SetItemCount(n int) error {
	if err := checkCount("items", n); err != nil {
		return err
	}
	if n != l.itemCount {
		l.itemCount = n
		l.trigger(TriggerItemCount)
	}
	return nil
}

// SetRowHeight changes the height of every row.
func (l *List) SetRowHeight(h float64) error {
	if err := checkPositive("row_height", h); err != nil {
		return err
	}
	if h != l.rowHeight {
		l.rowHeight = h
		l.trigger(TriggerSizing)
	}
	return nil
}

// SetGap changes the gap between rows.
func (l *List) SetGap(gap float64) error {
	if err := checkNonNegative("gap", gap); err != nil {
		return err
	}
	if gap != l.gap {
		l.gap = gap
		l.trigger(TriggerGap)
	}
	return nil
}

// SetGutter changes the padding around the list.
func (l *List) SetGutter(gutter Gutter) error {
	if err := gutter.validate(); err != nil {
		return err
	}
	if gutter != l.gutter {
		l.gutter = gutter
		l.trigger(TriggerGutter)
	}
	return nil
}

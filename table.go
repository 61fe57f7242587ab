package virtual

import "math"

// Table virtualizes a fixed number of rows and columns. Both axes are
// virtualized independently, so wide tables only materialize the columns in
// view. Items are identified by the flattened index col + row*columns.
//
// Row height and column width have no defaults and must be given with
// WithRowHeight/WithColumnWidth (or WithCellSize).
type Table struct {
	*Controller

	spec TableSpec
}

// NewTable creates a table engine. Row and column gaps default to WithGap.
func NewTable(rows, cols int, opts ...Option) (*Table, error) {
	o := applyOptions(opts)
	gap := GetOpt(o, OptGap)
	spec := TableSpec{
		Rows:      rows,
		Columns:   cols,
		RowHeight: GetOpt(o, OptRowHeight),
		ColWidth:  GetOpt(o, OptColumnWidth),
		RowGap:    gap,
		ColumnGap: gap,
		Gutter:    GetOpt(o, OptGutter),
	}
	if HasOpt(o, OptRowGap) {
		spec.RowGap = GetOpt(o, OptRowGap)
	}
	if HasOpt(o, OptColumnGap) {
		spec.ColumnGap = GetOpt(o, OptColumnGap)
	}
	overscan := GetOpt(o, OptOverscan)
	if err := spec.validate(); err != nil {
		return nil, err
	}
	if err := checkCount("overscan", overscan); err != nil {
		return nil, err
	}

	t := &Table{spec: spec}
	t.Controller = newController(KindTable, overscan, GetOpt(o, OptLogger), t.resolveGeometry)
	return t, nil
}

func (s TableSpec) validate() error {
	for _, err := range []error{
		checkCount("rows", s.Rows),
		checkCount("columns", s.Columns),
		checkPositive("row_height", s.RowHeight),
		checkPositive("column_width", s.ColWidth),
		checkNonNegative("row_gap", s.RowGap),
		checkNonNegative("column_gap", s.ColumnGap),
		s.Gutter.validate(),
		s.checkCells(),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}

// checkCells rejects tables whose cell indexes would not fit in 32 bits.
func (s TableSpec) checkCells() error {
	if s.Columns > 0 && s.Rows > math.MaxInt32/s.Columns {
		return &ConfigError{Field: "rows", Value: float64(s.Rows), Reason: "rows*columns exceeds 2^31-1"}
	}
	return nil
}

func (t *Table) resolveGeometry(_ Size, measured bool) Geometry {
	return ResolveTable(measured, t.spec)
}

// Spec returns the current table layout inputs.
func (t *Table) Spec() TableSpec { return t.spec }

// update validates next and recomputes with trigger when it differs.
func (t *Table) update(next TableSpec, trigger Trigger) error {
	if err := next.validate(); err != nil {
		return err
	}
	if next != t.spec {
		t.spec = next
		t.trigger(trigger)
	}
	return nil
}

// SetCounts changes the number of rows and columns.
func (t *Table) SetCounts(rows, cols int) error {
	next := t.spec
	next.Rows, next.Columns = rows, cols
	return t.update(next, TriggerItemCount)
}

// SetRowHeight changes the height of every row.
func (t *Table) SetRowHeight(h float64) error {
	next := t.spec
	next.RowHeight = h
	return t.update(next, TriggerSizing)
}

// SetColumnWidth changes the width of every column.
func (t *Table) SetColumnWidth(w float64) error {
	next := t.spec
	next.ColWidth = w
	return t.update(next, TriggerSizing)
}

// SetGap sets both the row and the column gap.
func (t *Table) SetGap(gap float64) error {
	next := t.spec
	next.RowGap, next.ColumnGap = gap, gap
	return t.update(next, TriggerGap)
}

// SetRowGap changes the vertical gap only.
func (t *Table) SetRowGap(gap float64) error {
	next := t.spec
	next.RowGap = gap
	return t.update(next, TriggerGap)
}

// SetColumnGap changes the horizontal gap only.
func (t *Table) SetColumnGap(gap float64) error {
	next := t.spec
	next.ColumnGap = gap
	return t.update(next, TriggerGap)
}

// SetGutter changes the padding around the table.
func (t *Table) SetGutter(gutter Gutter) error {
	next := t.spec
	next.Gutter = gutter
	return t.update(next, TriggerGutter)
}

package virtual

import "math"

// SizingRule describes the width of grid columns.
//
// Every rule resolves the same way: the number of columns is derived from
// Max, the computed width is clamped into [Min, Max], and whatever Max clamps
// away is handed to the gaps between columns. Stretch drops the upper clamp,
// so columns grow to fill the row instead.
type SizingRule struct {
	Min, Max float64
	Stretch  bool
}

// Fixed returns a rule whose columns are exactly v wide whenever they fit.
func Fixed(v float64) SizingRule {
	return SizingRule{Min: v, Max: v}
}

// Between returns a rule whose columns stay within [minWidth, maxWidth].
func Between(minWidth, maxWidth float64) SizingRule {
	return SizingRule{Min: minWidth, Max: maxWidth}
}

// Fluid returns a rule that fits as many v-wide columns as possible and then
// stretches them to fill the row.
func Fluid(v float64) SizingRule {
	return SizingRule{Min: v, Max: v, Stretch: true}
}

// IsFixed reports whether Min and Max coincide and no stretching happens.
func (r SizingRule) IsFixed() bool {
	return r.Min == r.Max && !r.Stretch
}

func (r SizingRule) validate() error {
	if err := checkPositive("sizing.max", r.Max); err != nil {
		return err
	}
	if err := checkPositive("sizing.min", r.Min); err != nil {
		return err
	}
	if r.Min > r.Max {
		return &ConfigError{Field: "sizing.min", Value: r.Min, Reason: "must not exceed sizing.max"}
	}
	return nil
}

// columns resolves the column count, width and effective gap for a row of
// the given effective width.
func (r SizingRule) columns(effective, gap float64) (count int, width, colGap float64) {
	if !finite(effective) || effective < 0 {
		effective = 0
	}

	count = 1
	if per := effective / (r.Max + gap); finite(per) && per >= 1 {
		count = int(math.Floor(min(per, math.MaxInt32)))
	}

	raw := (effective - gap*float64(count-1)) / float64(count)
	width = raw
	if width < r.Min {
		width = r.Min
	}
	if !r.Stretch && width > r.Max {
		width = r.Max
	}

	colGap = gap
	if slack := raw - width; slack > 0 && count > 1 {
		colGap = gap + slack*float64(count)/float64(count-1)
	}
	return count, width, colGap
}

package virtual

// Trigger names the event that caused a recompute.
type Trigger uint8

const (
	TriggerMount     Trigger = iota // First attach to a surface
	TriggerResize                   // Container size changed
	TriggerScroll                   // Scroll offset changed
	TriggerItemCount                // Item, row or column count changed
	TriggerGap                      // Any gap changed
	TriggerGutter                   // Gutter changed
	TriggerSizing                   // Sizing rule, row height or column width changed
	TriggerOverscan                 // Overscan changed
	TriggerManual                   // Recompute called
)

func (t Trigger) String() string {
	switch t {
	case TriggerMount:
		return "mount"
	case TriggerResize:
		return "resize"
	case TriggerScroll:
		return "scroll"
	case TriggerItemCount:
		return "itemCount"
	case TriggerGap:
		return "gap"
	case TriggerGutter:
		return "gutter"
	case TriggerSizing:
		return "sizing"
	case TriggerOverscan:
		return "overscan"
	case TriggerManual:
		return "manual"
	default:
		return "unknown"
	}
}

// Stage is a bitmask of pipeline stages to rerun.
type Stage uint8

const (
	StageGeometry Stage = 1 << iota // Re-derive columns, widths, row count and content size
	StagePosition                   // Re-place items
	StageWindow                     // Re-resolve the visible span from the scroll offset

	StageNone Stage = 0
	StageAll        = StageGeometry | StagePosition | StageWindow
)

// Has reports whether every stage in other is set.
func (s Stage) Has(other Stage) bool { return s&other == other }

// triggerStages is the dependency table. Scrolling never re-derives
// geometry; every other trigger runs the whole pipeline.
var triggerStages = [...]Stage{
	TriggerMount:     StageAll,
	TriggerResize:    StageAll,
	TriggerScroll:    StageWindow,
	TriggerItemCount: StageAll,
	TriggerGap:       StageAll,
	TriggerGutter:    StageAll,
	TriggerSizing:    StageAll,
	TriggerOverscan:  StageAll,
	TriggerManual:    StageAll,
}

// Stages returns the stages t reruns.
func (t Trigger) Stages() Stage {
	if int(t) >= len(triggerStages) {
		return StageAll
	}
	return triggerStages[t]
}

package term

import "github.com/charmbracelet/lipgloss"

// Colors used by DefaultStyles.
var (
	Fg     = lipgloss.Color("#E5E7EB")
	Muted  = lipgloss.Color("#6B7280")
	Border = lipgloss.Color("#4B5563")

	Tiles = []lipgloss.Color{
		lipgloss.Color("#3B82F6"),
		lipgloss.Color("#10B981"),
		lipgloss.Color("#F59E0B"),
		lipgloss.Color("#EF4444"),
		lipgloss.Color("#8B5CF6"),
		lipgloss.Color("#EC4899"),
	}
)

// Styles controls how a Model paints items and its status line.
type Styles struct {
	// Items are cycled by item index.
	Items  []lipgloss.Style
	Blank  lipgloss.Style
	Status lipgloss.Style
	// Waiting is shown while the engine is not ready.
	Waiting lipgloss.Style
}

// DefaultStyles returns one solid background per tile color.
func DefaultStyles() Styles {
	items := make([]lipgloss.Style, len(Tiles))
	for i, c := range Tiles {
		items[i] = lipgloss.NewStyle().
			Background(c).
			Foreground(Fg).
			Bold(true)
	}
	return Styles{
		Items: items,
		Blank: lipgloss.NewStyle(),
		Status: lipgloss.NewStyle().
			Foreground(Muted),
		Waiting: lipgloss.NewStyle().
			Foreground(Border).
			Italic(true),
	}
}

func (s Styles) item(index int) lipgloss.Style {
	if len(s.Items) == 0 {
		return s.Blank
	}
	return s.Items[index%len(s.Items)]
}

// Package term hosts virtual engines in a terminal with Bubble Tea. One
// engine unit is one terminal cell: a list with row height 1 shows one item
// per line.
package term

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-theft-auto/virtual"
)

// Model is a tea.Model that scrolls an engine. The last terminal line is a
// status line; the rest is the viewport.
type Model struct {
	engine  virtual.Engine
	surface *virtual.ManualSurface

	width, height int
	styles        Styles

	// LineStep is the distance scrolled by arrow keys and the wheel.
	LineStep float64
	// HideStatus gives the status line to the viewport.
	HideStatus bool
}

// New attaches e to a terminal surface. The surface is measured on the first
// tea.WindowSizeMsg.
func New(e virtual.Engine) Model {
	s := virtual.NewManualSurface()
	e.OnChange(func(snap *virtual.Snapshot) { s.SetContentSize(snap.ContentSize()) })
	e.Attach(s, s)
	return Model{
		engine:   e,
		surface:  s,
		styles:   DefaultStyles(),
		LineStep: 1,
	}
}

// WithStyles returns a copy of m painted with s.
func (m Model) WithStyles(s Styles) Model {
	m.styles = s
	return m
}

// Surface returns the surface the engine is attached to.
func (m Model) Surface() *virtual.ManualSurface { return m.surface }

// Init satisfies tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update satisfies tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.surface.Resize(m.viewportSize())
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(v)
	case tea.MouseMsg:
		if v.Action != tea.MouseActionPress {
			return m, nil
		}
		switch v.Button {
		case tea.MouseButtonWheelUp:
			m.surface.ScrollBy(0, -3*m.LineStep)
		case tea.MouseButtonWheelDown:
			m.surface.ScrollBy(0, 3*m.LineStep)
		case tea.MouseButtonWheelLeft:
			m.surface.ScrollBy(-3*m.LineStep, 0)
		case tea.MouseButtonWheelRight:
			m.surface.ScrollBy(3*m.LineStep, 0)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := m.viewportSize().Height
	switch k.String() {
	case "q", "ctrl+c", "esc":
		m.engine.Detach()
		return m, tea.Quit
	case "up", "k":
		m.surface.ScrollBy(0, -m.LineStep)
	case "down", "j":
		m.surface.ScrollBy(0, m.LineStep)
	case "left", "h":
		m.surface.ScrollBy(-m.LineStep, 0)
	case "right", "l":
		m.surface.ScrollBy(m.LineStep, 0)
	case "pgup", "b":
		m.surface.ScrollBy(0, -page)
	case "pgdown", " ", "f":
		m.surface.ScrollBy(0, page)
	case "home", "g":
		m.surface.ScrollTo(virtual.Point{})
	case "end", "G":
		// ScrollTo clamps to the content size.
		m.surface.ScrollTo(virtual.Point{X: m.surface.ScrollOffset().X, Y: math.MaxFloat32})
	}
	return m, nil
}

func (m Model) viewportSize() virtual.Size {
	h := m.height
	if !m.HideStatus {
		h--
	}
	return virtual.Size{Width: float64(max(m.width, 0)), Height: float64(max(h, 0))}
}

// View satisfies tea.Model.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	snap := m.engine.Snapshot()
	vp := m.viewportSize()
	w, h := int(vp.Width), int(vp.Height)

	var b strings.Builder
	if err := snap.Err(); err != nil {
		for range h {
			b.WriteByte('\n')
		}
	} else {
		c := paint(snap, w, h)
		for y := range h {
			m.writeLine(&b, snap, c, y)
			b.WriteByte('\n')
		}
	}
	if !m.HideStatus {
		b.WriteString(m.status(snap))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m Model) status(snap *virtual.Snapshot) string {
	if err := snap.Err(); err != nil {
		return m.styles.Waiting.Render("waiting for size")
	}
	meta := snap.Meta
	line := fmt.Sprintf("%s  rows %d-%d of %d  items %d-%d of %d  y=%.0f",
		snap.Geometry.Kind,
		snap.Window.Rows.First, snap.Window.Rows.Last, meta.Rows,
		meta.FirstIndex, meta.LastIndex, snap.Geometry.ItemCount,
		snap.Viewport.Top)
	if len(line) > m.width {
		line = line[:m.width]
	}
	return m.styles.Status.Render(line)
}

// canvas maps each viewport cell to the slot of the item covering it, or -1.
type canvas struct {
	w, h   int
	slots  []int
	labels []byte
}

// paint rasterizes the materialized items of snap into a w by h canvas.
// Item edges are rounded to the nearest cell.
func paint(snap *virtual.Snapshot, w, h int) canvas {
	c := canvas{w: w, h: h, slots: make([]int, w*h), labels: make([]byte, w*h)}
	for i := range c.slots {
		c.slots[i] = -1
		c.labels[i] = ' '
	}

	ox, oy := snap.Viewport.Left, snap.Viewport.Top
	for slot, it := range snap.Items {
		p := it.Position
		x0 := clampCell(p.Left-ox, w)
		x1 := clampCell(p.Right()-ox, w)
		y0 := clampCell(p.Top-oy, h)
		y1 := clampCell(p.Bottom()-oy, h)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				c.slots[y*w+x] = slot
			}
		}

		// Label the top-left corner when it is on screen.
		lx, ly := int(math.Round(p.Left-ox)), int(math.Round(p.Top-oy))
		if lx < 0 || ly < 0 || ly >= h {
			continue
		}
		label := strconv.Itoa(it.Index)
		for i := 0; i < len(label) && lx+i < x1; i++ {
			c.labels[ly*w+lx+i] = label[i]
		}
	}
	return c
}

func clampCell(v float64, n int) int {
	return min(max(int(math.Round(v)), 0), n)
}

// writeLine renders row y of c as runs of identically styled cells.
func (m Model) writeLine(b *strings.Builder, snap *virtual.Snapshot, c canvas, y int) {
	row := c.slots[y*c.w : (y+1)*c.w]
	text := c.labels[y*c.w : (y+1)*c.w]
	for x := 0; x < c.w; {
		end := x + 1
		for end < c.w && row[end] == row[x] {
			end++
		}
		run := string(text[x:end])
		if slot := row[x]; slot >= 0 {
			b.WriteString(m.styles.item(snap.Items[slot].Index).Render(run))
		} else {
			b.WriteString(m.styles.Blank.Render(run))
		}
		x = end
	}
}

package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/virtual"
)

// Host turns a GLFW window into the scroll container of an engine. The
// window's client area is the viewport; wheel and navigation keys scroll it.
//
// GLFW delivers callbacks from PollEvents on the main thread, which is the
// thread that must drive the engine.
type Host struct {
	*virtual.ManualSurface

	window *glfw.Window

	// WheelStep is the distance scrolled per wheel notch.
	WheelStep float64
	// LineStep is the distance scrolled per arrow key press.
	LineStep float64

	keyHandlers []func(key glfw.Key, mods glfw.ModifierKey)
}

// NewHost installs size, scroll and key callbacks on window. The surface is
// measured immediately with the window's current client size.
func NewHost(window *glfw.Window) *Host {
	h := &Host{
		ManualSurface: virtual.NewManualSurface(),
		window:        window,
		WheelStep:     48,
		LineStep:      24,
	}

	window.SetSizeCallback(h.sizeCallback)
	window.SetScrollCallback(h.scrollCallback)
	window.SetKeyCallback(h.keyCallback)

	w, ht := window.GetSize()
	h.Resize(virtual.Size{Width: float64(w), Height: float64(ht)})
	return h
}

// Track keeps the host's scrollable extent in sync with e and attaches e to
// the host.
func (h *Host) Track(e virtual.Engine) {
	e.OnChange(func(s *virtual.Snapshot) { h.SetContentSize(s.ContentSize()) })
	e.Attach(h, h)
}

// OnKey registers fn for key presses (including repeats) that are not
// navigation keys.
func (h *Host) OnKey(fn func(key glfw.Key, mods glfw.ModifierKey)) {
	h.keyHandlers = append(h.keyHandlers, fn)
}

// Scale returns the framebuffer-to-window ratio, 2 on most HiDPI displays.
func (h *Host) Scale() float32 {
	w, _ := h.window.GetSize()
	fw, _ := h.window.GetFramebufferSize()
	if w <= 0 {
		return 1
	}
	return float32(fw) / float32(w)
}

func (h *Host) sizeCallback(w *glfw.Window, width, height int) {
	h.Resize(virtual.Size{Width: float64(width), Height: float64(height)})
}

func (h *Host) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	h.ScrollBy(-xoff*h.WheelStep, -yoff*h.WheelStep)
}

func (h *Host) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press && action != glfw.Repeat {
		return
	}
	if dx, dy, ok := h.navigate(key); ok {
		h.ScrollBy(dx, dy)
		return
	}
	for _, fn := range h.keyHandlers {
		fn(key, mods)
	}
}

// navigate maps navigation keys to a scroll delta.
func (h *Host) navigate(key glfw.Key) (dx, dy float64, ok bool) {
	size, _ := h.Measure()
	cur := h.ScrollOffset()
	switch key {
	case glfw.KeyUp:
		return 0, -h.LineStep, true
	case glfw.KeyDown:
		return 0, h.LineStep, true
	case glfw.KeyLeft:
		return -h.LineStep, 0, true
	case glfw.KeyRight:
		return h.LineStep, 0, true
	case glfw.KeyPageUp:
		return 0, -size.Height, true
	case glfw.KeyPageDown:
		return 0, size.Height, true
	case glfw.KeyHome:
		return -cur.X, -cur.Y, true
	case glfw.KeyEnd:
		// ScrollTo clamps to the content size.
		return 0, 1 << 40, true
	default:
		return 0, 0, false
	}
}

// Example demonstrates a virtualized grid in an OpenGL window.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//	go run ./example/ -config grid.toml -v
//
// Scroll with the wheel or arrow/page keys. +/- change the gap, [ and ]
// change the gutter, o/O change the overscan. Reaching the end of the grid
// loads more items.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/virtual"
	"github.com/go-theft-auto/virtual/backend/opengl"
)

const (
	windowWidth  = 1024
	windowHeight = 768
	windowTitle  = "virtual example"
	pageSize     = 200
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "TOML engine configuration (default: built-in grid)")
	verbose := flag.Bool("v", false, "log recompute decisions")
	flag.Parse()

	virtual.SetVerbose(*verbose)

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg := virtual.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = virtual.LoadConfig(configPath); err != nil {
			return err
		}
	}

	engine, err := cfg.Engine()
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	fw, fh := window.GetFramebufferSize()
	renderer, err := opengl.NewRenderer(fw, fh)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer renderer.Delete()

	// Settings shared by the key bindings and the engine.
	settings := virtual.NewStore(virtual.Settings{
		Items:    cfg.Items,
		Gap:      cfg.Gap,
		Gutter:   cfg.Gutter.Resolve(),
		Overscan: cfg.Overscan,
	})
	defer virtual.BindSettings(settings, engine)()

	host := opengl.NewHost(window)
	host.OnKey(func(key glfw.Key, mods glfw.ModifierKey) {
		settings.Update(func(s virtual.Settings) virtual.Settings {
			return adjust(s, key, mods&glfw.ModShift != 0)
		})
	})

	engine.OnReady(func() {
		window.SetTitle(fmt.Sprintf("%s (%d items)", windowTitle, settings.Now().Items))
	})
	engine.OnEndReached(func(rows int) {
		settings.Update(func(s virtual.Settings) virtual.Settings {
			return s.WithItems(s.Items + pageSize)
		})
		window.SetTitle(fmt.Sprintf("%s (%d items)", windowTitle, settings.Now().Items))
	})
	host.Track(engine)
	defer engine.Detach()

	for !window.ShouldClose() {
		glfw.PollEvents()

		w, h := window.GetFramebufferSize()
		renderer.Resize(w, h)
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		if err := renderer.Render(engine.Snapshot(), host.Scale()); err != nil {
			return fmt.Errorf("render: %w", err)
		}

		window.SwapBuffers()
	}

	return nil
}

// adjust applies a settings key binding.
func adjust(s virtual.Settings, key glfw.Key, shift bool) virtual.Settings {
	switch key {
	case glfw.KeyEqual, glfw.KeyKPAdd:
		return s.WithGap(s.Gap + 2)
	case glfw.KeyMinus, glfw.KeyKPSubtract:
		return s.WithGap(max(0, s.Gap-2))
	case glfw.KeyRightBracket:
		return s.WithGutter(virtual.UniformGutter(s.Gutter.Top + 4))
	case glfw.KeyLeftBracket:
		return s.WithGutter(virtual.UniformGutter(max(0, s.Gutter.Top-4)))
	case glfw.KeyO:
		if shift {
			return s.WithOverscan(s.Overscan + 1)
		}
		return s.WithOverscan(max(0, s.Overscan-1))
	}
	return s
}

// Term shows a virtualized grid in the terminal.
//
//	go run ./example/term/
//	go run ./example/term/ -config list.toml
//
// Sizes in the configuration are terminal cells. Scroll with the arrow keys,
// page keys, j/k or the mouse wheel; q quits. Reaching the end loads more
// items.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-theft-auto/virtual"
	"github.com/go-theft-auto/virtual/backend/term"
)

const pageSize = 200

func main() {
	configPath := flag.String("config", "", "TOML engine configuration in cells (default: built-in grid)")
	logPath := flag.String("log", "", "write recompute decisions to this file")
	noColor := flag.Bool("no-color", false, "disable ANSI colors")
	flag.Parse()

	if *noColor {
		lipgloss.SetColorProfile(0)
	}

	if err := run(*configPath, *logPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// cellConfig is the default layout scaled down to terminal cells.
func cellConfig() virtual.Config {
	cfg := virtual.DefaultConfig()
	cfg.RowHeight = 3
	cfg.Gap = 1
	cfg.Overscan = 1
	cfg.Sizing = virtual.SizingConfig{Min: 8, Max: 14}
	cfg.Gutter = virtual.GutterConfig{All: 1}
	cfg.Cells.ColumnWidth = 10
	return cfg
}

func run(configPath, logPath string) error {
	cfg := cellConfig()
	if configPath != "" {
		var err error
		if cfg, err = virtual.LoadConfig(configPath); err != nil {
			return err
		}
	}

	// The terminal belongs to the program; debug output goes to a file.
	var out io.Writer = io.Discard
	if logPath != "" {
		f, err := os.Create(logPath)
		if err != nil {
			return fmt.Errorf("failed to create log: %w", err)
		}
		defer f.Close()
		out = f
	}
	virtual.SetLogger(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})))

	engine, err := cfg.Engine()
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	settings := virtual.NewStore(virtual.Settings{
		Items:    cfg.Items,
		Gap:      cfg.Gap,
		Gutter:   cfg.Gutter.Resolve(),
		Overscan: cfg.Overscan,
	})
	defer virtual.BindSettings(settings, engine)()

	engine.OnEndReached(func(rows int) {
		settings.Update(func(s virtual.Settings) virtual.Settings {
			return s.WithItems(s.Items + pageSize)
		})
	})

	p := tea.NewProgram(term.New(engine), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program: %w", err)
	}
	return nil
}

package virtual_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-theft-auto/virtual"
)

func TestParseConfig_Grid(t *testing.T) {
	cfg, err := virtual.ParseConfig([]byte(`
kind = "grid"
items = 25
row_height = 100
gap = 0
overscan = 1

[sizing]
width = 100

[gutter]
all = 0
`))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}

	g, err := cfg.Grid()
	if err != nil {
		t.Fatalf("Grid: %v", err)
	}
	if g.ItemCount() != 25 || !g.Sizing().IsFixed() || g.Overscan() != 1 {
		t.Errorf("grid = items %d sizing %+v overscan %d", g.ItemCount(), g.Sizing(), g.Overscan())
	}
}

func TestParseConfig_GutterSidesOverrideAll(t *testing.T) {
	cfg, err := virtual.ParseConfig([]byte(`
[gutter]
all = 16
top = 40
left = 0
`))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	want := virtual.Gutter{Top: 40, Right: 16, Bottom: 16, Left: 0}
	if diff := cmp.Diff(want, cfg.Gutter.Resolve()); diff != "" {
		t.Errorf("gutter mismatch (-want +got):\n%s", diff)
	}
}

func TestParseConfig_Table(t *testing.T) {
	cfg, err := virtual.ParseConfig([]byte(`
kind = "table"
row_height = 24
gap = 1

[table]
rows = 500
columns = 20
column_width = 80
column_gap = 6
`))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	e, err := cfg.Engine()
	if err != nil {
		t.Fatalf("Engine: %v", err)
	}
	tbl, ok := e.(*virtual.Table)
	if !ok {
		t.Fatalf("Engine = %T, want *virtual.Table", e)
	}
	want := virtual.TableSpec{
		Rows: 500, Columns: 20,
		RowHeight: 24, ColWidth: 80,
		RowGap: 1, ColumnGap: 6,
		Gutter: virtual.UniformGutter(16),
	}
	if diff := cmp.Diff(want, tbl.Spec()); diff != "" {
		t.Errorf("table spec mismatch (-want +got):\n%s", diff)
	}
}

func TestParseConfig_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown kind", `kind = "carousel"`},
		{"negative gap", `gap = -2`},
		{"min above max", "[sizing]\nmin = 300\nmax = 100"},
		{"zero row height", `row_height = 0`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := virtual.ParseConfig([]byte(tt.data))
			if !errors.Is(err, virtual.ErrInvalidConfiguration) {
				t.Errorf("err = %v, want ErrInvalidConfiguration", err)
			}
		})
	}

	if _, err := virtual.ParseConfig([]byte(`items = "many"`)); err == nil {
		t.Error("type mismatch should fail to decode")
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.toml")
	cfg := virtual.DefaultConfig()
	cfg.Kind = "list"
	cfg.Items = 321
	top := 48.0
	cfg.Gutter.Top = &top

	if err := virtual.SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	got, err := virtual.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("config mismatch (-saved +loaded):\n%s", diff)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := virtual.LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if diff := cmp.Diff(virtual.DefaultConfig(), cfg); diff != "" {
		t.Errorf("missing file should yield defaults (-want +got):\n%s", diff)
	}
}

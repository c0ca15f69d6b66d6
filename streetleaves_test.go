package streetleaves

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jsvensson/streetleaves/internal/catalog"
	"github.com/jsvensson/streetleaves/internal/render"
)

const (
	testLocations = `{"Main St": {"oak-leaf": [{"yellow-orange": 2}]}, "Elm Ave": {"oak-leaf": [{"rust": 1}]}}`
	testShapes    = `{"oak-leaf": ["0 0 10 10", "M0 0 L10 10"]}`
	testPalette   = `colors {
  rust = [darken(base.red-brown[0], 0.1), base.brown[0]]
}
`
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func sources(dir string, palette bool) Sources {
	src := Sources{
		Locations: filepath.Join(dir, "streets.json"),
		Shapes:    filepath.Join(dir, "shapes.json"),
	}
	if palette {
		src.Palette = filepath.Join(dir, "palette.hcl")
	}
	return src
}

func TestLoad(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"streets.json": testLocations,
		"shapes.json":  testShapes,
	})

	atlas, err := Load(sources(dir, false))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if diff := cmp.Diff([]string{"Main St", "Elm Ave"}, atlas.Locations.Names()); diff != "" {
		t.Errorf("location order mismatch (-want +got):\n%s", diff)
	}
	if atlas.Shapes.Len() != 1 {
		t.Errorf("Shapes.Len() = %d, want 1", atlas.Shapes.Len())
	}
	if atlas.Palette.Len() != 16 {
		t.Errorf("Palette.Len() = %d, want the 16 built-in labels", atlas.Palette.Len())
	}
}

func TestLoad_WithPalette(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"streets.json": testLocations,
		"shapes.json":  testShapes,
		"palette.hcl":  testPalette,
	})

	atlas, err := Load(sources(dir, true))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	display := &render.Display{}
	render.New(atlas, render.WithSurface(display)).Render("Elm Ave")

	if len(display.Icons) != 1 {
		t.Fatalf("got %d icons, want 1", len(display.Icons))
	}
	fill := display.Icons[0].Fill
	if !fill.IsGradient() || len(fill.Gradient.Stops) != 2 {
		t.Fatalf("rust should render as a two-stop gradient, got %+v", fill)
	}
	if got := fill.Gradient.Stops[1].Color.Hex(); got != "#6C2907" {
		t.Errorf("second stop = %s, want #6C2907", got)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		palette bool
		prefix  string
		is      error
	}{
		{
			name:   "missing locations",
			files:  map[string]string{"shapes.json": testShapes},
			prefix: "loading locations",
			is:     os.ErrNotExist,
		},
		{
			name:   "missing shapes",
			files:  map[string]string{"streets.json": testLocations},
			prefix: "loading shapes",
			is:     os.ErrNotExist,
		},
		{
			name: "negative count",
			files: map[string]string{
				"streets.json": `{"Main St": {"oak-leaf": [{"red": -1}]}}`,
				"shapes.json":  testShapes,
			},
			prefix: "loading locations",
			is:     catalog.ErrInvalidCount,
		},
		{
			name: "malformed shape",
			files: map[string]string{
				"streets.json": testLocations,
				"shapes.json":  `{"oak-leaf": ["0 0 10 10"]}`,
			},
			prefix: "loading shapes",
			is:     catalog.ErrInvalidShape,
		},
		{
			name: "invalid palette",
			files: map[string]string{
				"streets.json": testLocations,
				"shapes.json":  testShapes,
				"palette.hcl":  "colors {\n  red = \"#GG0000\"\n}\n",
			},
			palette: true,
			prefix:  "loading palette",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeFiles(t, tt.files)

			atlas, err := Load(sources(dir, tt.palette))
			if err == nil {
				t.Fatal("expected error")
			}
			if atlas != nil {
				t.Error("expected no atlas on failure")
			}
			if !strings.HasPrefix(err.Error(), tt.prefix) {
				t.Errorf("error %q should start with %q", err, tt.prefix)
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("error %q should wrap %v", err, tt.is)
			}
		})
	}
}

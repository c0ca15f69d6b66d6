package streetleaves

import (
	"fmt"

	"github.com/jsvensson/streetleaves/internal/catalog"
	"github.com/jsvensson/streetleaves/internal/palette"
)

// Atlas is the fully-loaded, read-only data behind the leaf display.
// A renderer can only be built from an Atlas, so nothing renders before
// both catalogs are available.
type Atlas struct {
	Locations *catalog.Locations
	Shapes    *catalog.Shapes
	Palette   *palette.Palette
}

// Sources names the files an Atlas is loaded from. Palette is optional;
// when empty the built-in palette is used.
type Sources struct {
	Locations string
	Shapes    string
	Palette   string
}

// Load reads both catalogs and the palette. Any failure is fatal: no
// partial Atlas is returned.
func Load(src Sources) (*Atlas, error) {
	locations, err := catalog.LoadLocations(src.Locations)
	if err != nil {
		return nil, fmt.Errorf("loading locations: %w", err)
	}

	shapes, err := catalog.LoadShapes(src.Shapes)
	if err != nil {
		return nil, fmt.Errorf("loading shapes: %w", err)
	}

	p := palette.Default()
	if src.Palette != "" {
		p, err = palette.Load(src.Palette, p)
		if err != nil {
			return nil, fmt.Errorf("loading palette: %w", err)
		}
	}

	return &Atlas{
		Locations: locations,
		Shapes:    shapes,
		Palette:   p,
	}, nil
}

// LocationCatalog implements render.Source.
func (a *Atlas) LocationCatalog() *catalog.Locations { return a.Locations }

// ShapeCatalog implements render.Source.
func (a *Atlas) ShapeCatalog() *catalog.Shapes { return a.Shapes }

// ColorPalette implements render.Source.
func (a *Atlas) ColorPalette() *palette.Palette { return a.Palette }

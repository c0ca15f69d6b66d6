// Package palette maps leaf color labels to the display colors used to fill
// leaf icons.
package palette

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jsvensson/streetleaves/internal/color"
)

// ErrEmptyColors is returned when a label is given no colors.
var ErrEmptyColors = errors.New("color list is empty")

// FallbackColor fills leaves whose label is not in the palette.
var FallbackColor = color.MustParseHex("#787878")

// builtin is the default label table, in declaration order.
var builtin = []struct {
	label  string
	colors []string
}{
	{"yellow-brown", []string{"#FEDF05", "#6C2907"}},
	{"yellow", []string{"#FEDF05"}},
	{"yellow-orange-red", []string{"#FEDF05", "#D95600", "#BB1701"}},
	{"yellow-red", []string{"#FEDF05", "#BB1701"}},
	{"yellow-orange", []string{"#FEDF05", "#D95600"}},
	{"red", []string{"#BB1701"}},
	{"red-brown", []string{"#BB1701", "#6C2907"}},
	{"red-orange", []string{"#BB1701", "#D95600"}},
	{"purple-red", []string{"#5B2F47", "#BB1701"}},
	{"purple", []string{"#5B2F47"}},
	{"orange", []string{"#D95600"}},
	{"brown", []string{"#6C2907"}},
	{"variable_or_unknown", []string{"#787878"}},
	{"evergreen", []string{"#05472A"}},
	{"green-yellow", []string{"#567112", "#FEDF05"}},
	{"green", []string{"#567112"}},
}

// Palette maps a color label to an ordered, non-empty list of colors.
// A Palette is not modified after it is handed to a renderer.
type Palette struct {
	labels   []string
	colors   map[string][]color.Color
	fallback color.Color
}

// New returns an empty palette that resolves every label to fallback.
func New(fallback color.Color) *Palette {
	return &Palette{
		colors:   make(map[string][]color.Color),
		fallback: fallback,
	}
}

// Default returns a fresh copy of the built-in leaf palette.
func Default() *Palette {
	p := New(FallbackColor)
	for _, entry := range builtin {
		colors := make([]color.Color, len(entry.colors))
		for i, hex := range entry.colors {
			colors[i] = color.MustParseHex(hex)
		}
		p.put(entry.label, colors)
	}
	return p
}

// Set defines or replaces the colors for label.
func (p *Palette) Set(label string, colors ...color.Color) error {
	if len(colors) == 0 {
		return fmt.Errorf("palette label %q: %w", label, ErrEmptyColors)
	}
	p.put(label, slices.Clone(colors))
	return nil
}

func (p *Palette) put(label string, colors []color.Color) {
	if _, ok := p.colors[label]; !ok {
		p.labels = append(p.labels, label)
	}
	p.colors[label] = colors
}

// SetFallback changes the color used for unknown labels.
func (p *Palette) SetFallback(c color.Color) {
	p.fallback = c
}

// Fallback returns the color used for unknown labels.
func (p *Palette) Fallback() color.Color {
	return p.fallback
}

// Lookup returns the colors for label and whether the label is defined.
func (p *Palette) Lookup(label string) ([]color.Color, bool) {
	colors, ok := p.colors[label]
	if !ok {
		return nil, false
	}
	return slices.Clone(colors), true
}

// Resolve returns the colors for label, or the single fallback color when
// the label is unknown. The result always has at least one element.
func (p *Palette) Resolve(label string) []color.Color {
	if colors, ok := p.Lookup(label); ok {
		return colors
	}
	return []color.Color{p.fallback}
}

// Labels returns the defined labels in definition order.
func (p *Palette) Labels() []string {
	return slices.Clone(p.labels)
}

// Len returns the number of defined labels.
func (p *Palette) Len() int {
	return len(p.labels)
}

// Clone returns a deep copy of p.
func (p *Palette) Clone() *Palette {
	out := New(p.fallback)
	for _, label := range p.labels {
		out.put(label, slices.Clone(p.colors[label]))
	}
	return out
}

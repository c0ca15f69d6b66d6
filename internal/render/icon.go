package render

import (
	"strconv"

	"github.com/jsvensson/streetleaves/internal/color"
)

// Icon is one leaf to draw: the shape's bounds and outline plus its fill.
type Icon struct {
	Shape   string
	Label   string
	ViewBox string
	Path    string
	Fill    Fill
}

// Fill is either a flat color or, when Gradient is set, a linear gradient.
// Color holds the first gradient stop for gradient fills.
type Fill struct {
	Color    color.Color
	Gradient *Gradient
}

// IsGradient reports whether the fill is a gradient.
func (f Fill) IsGradient() bool {
	return f.Gradient != nil
}

// Paint returns the value of an SVG fill attribute: a hex color, or a
// url() reference to the gradient definition.
func (f Fill) Paint() string {
	if f.Gradient != nil {
		return "url(#" + f.Gradient.ID + ")"
	}
	return f.Color.Hex()
}

// Colors returns every color in the fill in order.
func (f Fill) Colors() []color.Color {
	if f.Gradient == nil {
		return []color.Color{f.Color}
	}
	out := make([]color.Color, len(f.Gradient.Stops))
	for i, s := range f.Gradient.Stops {
		out[i] = s.Color
	}
	return out
}

// Gradient is a linear gradient running from the top-left corner of the icon
// bounds to the bottom-right corner.
type Gradient struct {
	ID    string
	Stops []Stop
}

// Axis is a gradient direction in SVG linearGradient coordinates.
type Axis struct {
	X1, Y1, X2, Y2 string
}

// Axis returns the gradient direction: corner to opposite corner.
func (g *Gradient) Axis() Axis {
	return Axis{X1: "0%", Y1: "0%", X2: "100%", Y2: "100%"}
}

// Stop is a gradient color stop. Offset is a fraction of the axis in [0, 1].
type Stop struct {
	Offset float64
	Color  color.Color
}

// Percent formats the offset as an SVG percentage, e.g. "50%".
func (s Stop) Percent() string {
	return strconv.FormatFloat(s.Offset*100, 'f', -1, 64) + "%"
}

// resolveFill applies the fill rule: one color is a flat fill, two or more
// become evenly spaced gradient stops at i/(n-1).
func resolveFill(colors []color.Color, id string) Fill {
	if len(colors) == 1 {
		return Fill{Color: colors[0]}
	}

	stops := make([]Stop, len(colors))
	last := float64(len(colors) - 1)
	for i, c := range colors {
		stops[i] = Stop{Offset: float64(i) / last, Color: c}
	}
	return Fill{
		Color:    colors[0],
		Gradient: &Gradient{ID: id, Stops: stops},
	}
}

package color

import (
	"fmt"
	"strings"
)

// Color is an sRGB color. Leaf palettes, gradient stops and terminal
// previews all derive their output from the R, G, B fields.
type Color struct {
	R, G, B uint8
}

// ParseHex parses a hex color such as "#FEDF05" or "fedf05".
func ParseHex(s string) (Color, error) {
	digits := strings.TrimPrefix(s, "#")
	if len(digits) != 6 {
		return Color{}, fmt.Errorf("invalid hex color %q: must be 6 hex digits", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(digits, "%02x%02x%02x", &r, &g, &b); err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return Color{R: r, G: g, B: b}, nil
}

// MustParseHex is ParseHex for package-level tables. It panics on bad input.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the color as upper-case hex with a leading #, e.g. "#FEDF05".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// RGB returns the color as a CSS rgb() string.
func (c Color) RGB() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

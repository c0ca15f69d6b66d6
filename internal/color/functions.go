package color

import "math"

// Brighten raises the HSL lightness of c by amount (0.0 to 1.0).
func Brighten(c Color, amount float64) Color {
	h, s, l := toHSL(c)
	return fromHSL(h, s, math.Min(1.0, l+amount))
}

// Darken lowers the HSL lightness of c by amount (0.0 to 1.0).
func Darken(c Color, amount float64) Color {
	h, s, l := toHSL(c)
	return fromHSL(h, s, math.Max(0.0, l-amount))
}

func toHSL(c Color) (h, s, l float64) {
	r, g, b := float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0

	lo := math.Min(math.Min(r, g), b)
	hi := math.Max(math.Max(r, g), b)
	l = (hi + lo) / 2.0

	if hi == lo {
		return 0, 0, l
	}

	d := hi - lo
	if l > 0.5 {
		s = d / (2.0 - hi - lo)
	} else {
		s = d / (hi + lo)
	}

	switch hi {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6.0
		}
		h /= 6.0
	case g:
		h = ((b-r)/d + 2.0) / 6.0
	default:
		h = ((r-g)/d + 4.0) / 6.0
	}
	return h, s, l
}

func fromHSL(h, s, l float64) Color {
	if s == 0 {
		v := uint8(l * 255)
		return Color{R: v, G: v, B: v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1.0 + s)
	} else {
		q = l + s - l*s
	}
	p := 2.0*l - q

	return Color{
		R: uint8(hueToRGB(p, q, h+1.0/3.0) * 255),
		G: uint8(hueToRGB(p, q, h) * 255),
		B: uint8(hueToRGB(p, q, h-1.0/3.0) * 255),
	}
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1.0
	}
	if t > 1 {
		t -= 1.0
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6.0*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6.0
	}
	return p
}

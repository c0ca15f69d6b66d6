package palette

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/jsvensson/streetleaves/internal/color"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// EvalContext builds the evaluation context for palette files: the "base"
// variable exposes every label of base as a tuple of hex strings, and the
// brighten, darken and lightness functions adjust a single color.
func EvalContext(base *Palette) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"base": ToCty(base),
		},
		Functions: Functions(),
	}
}

// Functions returns the color functions available in palette files.
func Functions() map[string]function.Function {
	return map[string]function.Function{
		"brighten":  adjustFunc("Raises HSL lightness by amount (0.0 to 1.0)", "amount", color.Brighten),
		"darken":    adjustFunc("Lowers HSL lightness by amount (0.0 to 1.0)", "amount", color.Darken),
		"lightness": adjustFunc("Sets OKLCH lightness (0.0 to 1.0), keeping hue and chroma", "lightness", color.WithLightness),
	}
}

// ToCty converts p to an object value keyed by label.
func ToCty(p *Palette) cty.Value {
	if p == nil || p.Len() == 0 {
		return cty.EmptyObjectVal
	}
	vals := make(map[string]cty.Value, p.Len())
	for _, label := range p.labels {
		colors := p.colors[label]
		elems := make([]cty.Value, len(colors))
		for i, c := range colors {
			elems[i] = cty.StringVal(c.Hex())
		}
		vals[label] = cty.TupleVal(elems)
	}
	return cty.ObjectVal(vals)
}

func adjustFunc(description, param string, adjust func(color.Color, float64) color.Color) function.Function {
	return function.New(&function.Spec{
		Description: description,
		Params: []function.Parameter{
			{Name: "color", Type: cty.String},
			{Name: param, Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			c, err := color.ParseHex(args[0].AsString())
			if err != nil {
				return cty.NilVal, err
			}
			amount, _ := args[1].AsBigFloat().Float64()
			return cty.StringVal(adjust(c, amount).Hex()), nil
		},
	})
}

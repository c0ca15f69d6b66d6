package palette

import (
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/streetleaves/internal/color"
	"github.com/zclconf/go-cty/cty"
)

const (
	attrFallback = "fallback"
	blockColors  = "colors"
)

// File is a parsed palette override file. Entries are in source order.
type File struct {
	Fallback *Located
	Entries  []Entry
}

// Entry is one label definition from a colors block.
type Entry struct {
	Label     string
	Colors    []Located
	NameRange hcl.Range
	Range     hcl.Range
}

// Located is a resolved color together with the source range it came from.
// Literal is false when the color was produced by a reference or function call.
type Located struct {
	Color   color.Color
	Range   hcl.Range
	Literal bool
}

// Values returns the entry's colors without positions.
func (e Entry) Values() []color.Color {
	out := make([]color.Color, len(e.Colors))
	for i, c := range e.Colors {
		out[i] = c.Color
	}
	return out
}

// Load reads a palette file and layers its entries over base.
func Load(path string, base *Palette) (*Palette, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading palette file: %w", err)
	}

	f, diags := Parse(path, src, base)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing palette file: %s", diags.Error())
	}
	return f.Apply(base), nil
}

// Apply returns a copy of base with the file's fallback and entries applied.
func (f *File) Apply(base *Palette) *Palette {
	out := base.Clone()
	if f.Fallback != nil {
		out.SetFallback(f.Fallback.Color)
	}
	for _, e := range f.Entries {
		if len(e.Colors) > 0 {
			out.put(e.Label, e.Values())
		}
	}
	return out
}

// Parse parses palette HCL source. Expressions may reference base through the
// "base" variable. All problems are collected into the returned diagnostics
// rather than stopping at the first one, and the File holds everything that
// could be resolved.
func Parse(filename string, src []byte, base *Palette) (*File, hcl.Diagnostics) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return &File{}, diags
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return &File{}, diags.Append(&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported palette body",
			Detail:   "palette files must use native HCL syntax",
		})
	}

	ctx := EvalContext(base)
	out := &File{}

	for _, attr := range sortedAttributes(body.Attributes) {
		if attr.Name != attrFallback {
			diags = diags.Append(errorAt(attr.NameRange, "Unknown attribute",
				fmt.Sprintf("%q is not a palette setting (valid: %s); label definitions belong in a %s block", attr.Name, attrFallback, blockColors)))
			continue
		}
		colors, moreDiags := evalColors(attr.Expr, ctx)
		diags = diags.Extend(moreDiags)
		if len(colors) == 0 && !moreDiags.HasErrors() {
			diags = diags.Append(errorAt(attr.Expr.Range(), "Empty color list", fmt.Sprintf("%s: %s", attrFallback, ErrEmptyColors)))
			continue
		}
		if len(colors) > 1 {
			diags = diags.Append(errorAt(attr.Expr.Range(), "Invalid fallback", "fallback must be a single color"))
			continue
		}
		if len(colors) == 1 {
			out.Fallback = &colors[0]
		}
	}

	for _, block := range body.Blocks {
		if block.Type != blockColors {
			diags = diags.Append(errorAt(block.TypeRange, "Unknown block",
				fmt.Sprintf("%q is not a palette block (valid: %s)", block.Type, blockColors)))
			continue
		}
		for _, nested := range block.Body.Blocks {
			diags = diags.Append(errorAt(nested.TypeRange, "Unexpected block",
				fmt.Sprintf("labels are defined as attributes, e.g. %s = [\"#FEDF05\"]", nested.Type)))
		}
		for _, attr := range sortedAttributes(block.Body.Attributes) {
			colors, moreDiags := evalColors(attr.Expr, ctx)
			diags = diags.Extend(moreDiags)
			if !moreDiags.HasErrors() && len(colors) == 0 {
				diags = diags.Append(errorAt(attr.Expr.Range(), "Empty color list",
					fmt.Sprintf("label %q: %s", attr.Name, ErrEmptyColors)))
			}
			out.Entries = append(out.Entries, Entry{
				Label:     attr.Name,
				Colors:    colors,
				NameRange: attr.NameRange,
				Range:     attr.SrcRange,
			})
		}
	}

	return out, diags
}

// evalColors evaluates an attribute expression that holds either one color
// string or a tuple of color strings.
func evalColors(expr hclsyntax.Expression, ctx *hcl.EvalContext) ([]Located, hcl.Diagnostics) {
	if tuple, ok := expr.(*hclsyntax.TupleConsExpr); ok {
		var out []Located
		var diags hcl.Diagnostics
		for _, elem := range tuple.Exprs {
			colors, moreDiags := evalColors(elem, ctx)
			diags = diags.Extend(moreDiags)
			out = append(out, colors...)
		}
		return out, diags
	}

	val, diags := expr.Value(ctx)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() || !val.IsKnown() {
		return nil, diags.Append(errorAt(expr.Range(), "Invalid color", "color value must be known and not null"))
	}

	literal := isStringLiteral(expr)
	ty := val.Type()
	switch {
	case ty == cty.String:
		c, err := color.ParseHex(val.AsString())
		if err != nil {
			return nil, diags.Append(errorAt(expr.Range(), "Invalid color", err.Error()))
		}
		return []Located{{Color: c, Range: expr.Range(), Literal: literal}}, diags

	case ty.IsTupleType() || ty.IsListType():
		var out []Located
		for _, elem := range val.AsValueSlice() {
			if elem.IsNull() || elem.Type() != cty.String {
				diags = diags.Append(errorAt(expr.Range(), "Invalid color", "color lists may only contain strings"))
				continue
			}
			c, err := color.ParseHex(elem.AsString())
			if err != nil {
				diags = diags.Append(errorAt(expr.Range(), "Invalid color", err.Error()))
				continue
			}
			out = append(out, Located{Color: c, Range: expr.Range()})
		}
		return out, diags
	}

	return nil, diags.Append(errorAt(expr.Range(), "Invalid color",
		fmt.Sprintf("expected a color string or a list of color strings, got %s", ty.FriendlyName())))
}

func isStringLiteral(expr hclsyntax.Expression) bool {
	tmpl, ok := expr.(*hclsyntax.TemplateExpr)
	return ok && tmpl.IsStringLiteral()
}

func sortedAttributes(attrs hclsyntax.Attributes) []*hclsyntax.Attribute {
	out := make([]*hclsyntax.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		out = append(out, attr)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SrcRange.Start.Byte < out[j].SrcRange.Start.Byte
	})
	return out
}

func errorAt(rng hcl.Range, summary, detail string) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   detail,
		Subject:  rng.Ptr(),
	}
}

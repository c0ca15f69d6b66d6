package lsp

import (
	"fmt"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/jsvensson/streetleaves/internal/color"
	"github.com/jsvensson/streetleaves/internal/palette"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const diagnosticSource = "leafpalette"

var (
	DiagError   = protocol.DiagnosticSeverityError
	DiagWarning = protocol.DiagnosticSeverityWarning
	DiagInfo    = protocol.DiagnosticSeverityInformation
)

// AnalysisResult holds everything produced by analyzing one palette file.
type AnalysisResult struct {
	Diagnostics []protocol.Diagnostic
	File        *palette.File
	Palette     *palette.Palette // nil when the file has errors
	Colors      []ColorLocation
}

// ColorLocation records the colors an expression resolved to. A reference
// such as base.yellow-orange resolves to several colors at one range.
type ColorLocation struct {
	Range  protocol.Range
	Colors []color.Color
	IsRef  bool // true unless the expression is a hex string literal
}

// hclPosToLSP converts an HCL position to an LSP position.
// HCL positions are 1-based; LSP positions are 0-based.
func hclPosToLSP(pos hcl.Pos) protocol.Position {
	return protocol.Position{
		Line:      uint32(max(pos.Line-1, 0)),
		Character: uint32(max(pos.Column-1, 0)),
	}
}

func hclRangeToLSP(r hcl.Range) protocol.Range {
	return protocol.Range{
		Start: hclPosToLSP(r.Start),
		End:   hclPosToLSP(r.End),
	}
}

// Analyze parses a palette file against the built-in palette and reports all
// problems at once.
func Analyze(filename, content string) *AnalysisResult {
	base := palette.Default()
	file, diags := palette.Parse(filename, []byte(content), base)

	result := &AnalysisResult{
		Diagnostics: make([]protocol.Diagnostic, 0, len(diags)),
		File:        file,
	}
	for _, d := range diags {
		result.Diagnostics = append(result.Diagnostics, hclDiagToLSP(d))
	}

	if file.Fallback != nil {
		result.addColors([]palette.Located{*file.Fallback})
	}
	for _, e := range file.Entries {
		result.addColors(e.Colors)
		if builtin, ok := base.Lookup(e.Label); ok && len(e.Colors) > 0 && slices.Equal(builtin, e.Values()) {
			result.addDiagnostic(e.NameRange, DiagInfo, fmt.Sprintf("%s repeats the built-in colors", e.Label))
		}
	}

	if !diags.HasErrors() {
		result.Palette = file.Apply(base)
	}
	return result
}

// addColors groups located colors that share a source range.
func (r *AnalysisResult) addColors(colors []palette.Located) {
	for _, c := range colors {
		rng := hclRangeToLSP(c.Range)
		if n := len(r.Colors); n > 0 && r.Colors[n-1].Range == rng {
			r.Colors[n-1].Colors = append(r.Colors[n-1].Colors, c.Color)
			continue
		}
		r.Colors = append(r.Colors, ColorLocation{
			Range:  rng,
			Colors: []color.Color{c.Color},
			IsRef:  !c.Literal,
		})
	}
}

func hclDiagToLSP(d *hcl.Diagnostic) protocol.Diagnostic {
	sev := DiagError
	if d.Severity == hcl.DiagWarning {
		sev = DiagWarning
	}

	diag := protocol.Diagnostic{
		Severity: &sev,
		Message:  d.Summary,
		Source:   strPtr(diagnosticSource),
	}
	if d.Detail != "" {
		diag.Message = d.Summary + ": " + d.Detail
	}
	if d.Subject != nil {
		diag.Range = hclRangeToLSP(*d.Subject)
	}
	return diag
}

func (r *AnalysisResult) addDiagnostic(rng hcl.Range, sev protocol.DiagnosticSeverity, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    hclRangeToLSP(rng),
		Severity: &sev,
		Source:   strPtr(diagnosticSource),
		Message:  msg,
	})
}

func strPtr(s string) *string {
	return &s
}

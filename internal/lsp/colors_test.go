package lsp

import (
	"testing"

	"github.com/jsvensson/streetleaves/internal/color"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestColorToLSP(t *testing.T) {
	tests := []struct {
		name  string
		input color.Color
		want  protocol.Color
	}{
		{
			name:  "pure red",
			input: color.Color{R: 255, G: 0, B: 0},
			want:  protocol.Color{Red: 1.0, Green: 0.0, Blue: 0.0, Alpha: 1.0},
		},
		{
			name:  "pure green",
			input: color.Color{R: 0, G: 255, B: 0},
			want:  protocol.Color{Red: 0.0, Green: 1.0, Blue: 0.0, Alpha: 1.0},
		},
		{
			name:  "pure blue",
			input: color.Color{R: 0, G: 0, B: 255},
			want:  protocol.Color{Red: 0.0, Green: 0.0, Blue: 1.0, Alpha: 1.0},
		},
		{
			name:  "black",
			input: color.Color{R: 0, G: 0, B: 0},
			want:  protocol.Color{Red: 0.0, Green: 0.0, Blue: 0.0, Alpha: 1.0},
		},
		{
			name:  "white",
			input: color.Color{R: 255, G: 255, B: 255},
			want:  protocol.Color{Red: 1.0, Green: 1.0, Blue: 1.0, Alpha: 1.0},
		},
		{
			name:  "mid gray",
			input: color.Color{R: 128, G: 128, B: 128},
			want:  protocol.Color{Red: float32(128) / 255.0, Green: float32(128) / 255.0, Blue: float32(128) / 255.0, Alpha: 1.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := colorToLSP(tt.input)
			if got.Red != tt.want.Red {
				t.Errorf("Red: got %f, want %f", got.Red, tt.want.Red)
			}
			if got.Green != tt.want.Green {
				t.Errorf("Green: got %f, want %f", got.Green, tt.want.Green)
			}
			if got.Blue != tt.want.Blue {
				t.Errorf("Blue: got %f, want %f", got.Blue, tt.want.Blue)
			}
			if got.Alpha != tt.want.Alpha {
				t.Errorf("Alpha: got %f, want %f", got.Alpha, tt.want.Alpha)
			}
		})
	}
}

func TestColorFromLSP(t *testing.T) {
	tests := []struct {
		name  string
		input protocol.Color
		want  string
	}{
		{"red", protocol.Color{Red: 1, Alpha: 1}, "#FF0000"},
		{"rounds to nearest", protocol.Color{Red: 0.5, Green: 0.5, Blue: 0.5, Alpha: 1}, "#808080"},
		{"clamps out of range", protocol.Color{Red: 1.5, Green: -0.2, Blue: 0, Alpha: 1}, "#FF0000"},
		{"round trip", colorToLSP(color.MustParseHex("#D95600")), "#D95600"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := colorFromLSP(tt.input).Hex(); got != tt.want {
				t.Errorf("colorFromLSP() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDocumentColors(t *testing.T) {
	yellow := color.MustParseHex("#FEDF05")
	orange := color.MustParseHex("#D95600")
	red := color.MustParseHex("#BB1701")

	result := &AnalysisResult{
		Colors: []ColorLocation{
			{
				Range: protocol.Range{
					Start: protocol.Position{Line: 1, Character: 10},
					End:   protocol.Position{Line: 1, Character: 19},
				},
				Colors: []color.Color{red},
			},
			{
				Range: protocol.Range{
					Start: protocol.Position{Line: 2, Character: 10},
					End:   protocol.Position{Line: 2, Character: 28},
				},
				Colors: []color.Color{yellow, orange},
				IsRef:  true,
			},
		},
	}

	infos := documentColors(result)

	if len(infos) != 2 {
		t.Fatalf("expected 2 ColorInformation items, got %d", len(infos))
	}
	if infos[0].Color != colorToLSP(red) {
		t.Errorf("item 0: got %v, want red", infos[0].Color)
	}
	if infos[0].Range.Start.Line != 1 || infos[0].Range.Start.Character != 10 {
		t.Errorf("item 0: unexpected range start %v", infos[0].Range.Start)
	}
	// A reference to a gradient label is shown by its first stop.
	if infos[1].Color != colorToLSP(yellow) {
		t.Errorf("item 1: got %v, want first stop", infos[1].Color)
	}
}

func TestDocumentColors_NilResult(t *testing.T) {
	infos := documentColors(nil)
	if infos == nil {
		t.Fatal("expected non-nil empty slice, got nil")
	}
	if len(infos) != 0 {
		t.Errorf("expected 0 items, got %d", len(infos))
	}
}

func TestColorPresentation_HexLiteral(t *testing.T) {
	content := "colors {\n  red = \"#BB1701\"\n}\n"

	params := &protocol.ColorPresentationParams{
		Color: protocol.Color{Red: 1.0, Green: 0.0, Blue: 0.0, Alpha: 1.0},
		Range: protocol.Range{
			Start: protocol.Position{Line: 1, Character: 8},
			End:   protocol.Position{Line: 1, Character: 17},
		},
	}

	presentations := colorPresentation(content, params)

	if len(presentations) != 1 {
		t.Fatalf("expected 1 presentation for hex literal, got %d", len(presentations))
	}
	if presentations[0].Label != "#FF0000" {
		t.Errorf("expected label '#FF0000', got %q", presentations[0].Label)
	}
	if presentations[0].TextEdit == nil {
		t.Fatal("expected non-nil TextEdit for hex literal")
	}
	if presentations[0].TextEdit.NewText != "\"#FF0000\"" {
		t.Errorf("expected TextEdit.NewText '\"#FF0000\"', got %q", presentations[0].TextEdit.NewText)
	}
	if presentations[0].TextEdit.Range != params.Range {
		t.Errorf("expected TextEdit range to match params range")
	}
}

func TestColorPresentation_NotALiteral(t *testing.T) {
	tests := []struct {
		name    string
		content string
		rng     protocol.Range
	}{
		{
			name:    "base reference",
			content: "colors {\n  rust = base.brown[0]\n}\n",
			rng: protocol.Range{
				Start: protocol.Position{Line: 1, Character: 9},
				End:   protocol.Position{Line: 1, Character: 22},
			},
		},
		{
			name:    "function call",
			content: "colors {\n  pale = brighten(base.yellow[0], 0.2)\n}\n",
			rng: protocol.Range{
				Start: protocol.Position{Line: 1, Character: 9},
				End:   protocol.Position{Line: 1, Character: 38},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := &protocol.ColorPresentationParams{
				Color: protocol.Color{Red: 0.1, Green: 0.09, Blue: 0.14, Alpha: 1.0},
				Range: tt.rng,
			}
			if got := colorPresentation(tt.content, params); len(got) != 0 {
				t.Errorf("expected 0 presentations, got %d", len(got))
			}
		})
	}
}

func TestColorPresentation_Integration(t *testing.T) {
	content := `fallback = "#787878"

colors {
  yellow-orange = ["#FEDF05", "#BB1701"]
  rust          = base.red-brown
  pale          = brighten(base.yellow[0], 0.2)
}
`
	result := Analyze("palette.hcl", content)

	infos := documentColors(result)
	if len(infos) != 5 {
		t.Fatalf("expected 5 ColorInformation items, got %d", len(infos))
	}

	for i, cl := range result.Colors {
		params := &protocol.ColorPresentationParams{
			Color: infos[i].Color,
			Range: infos[i].Range,
		}

		presentations := colorPresentation(content, params)

		if cl.IsRef {
			if len(presentations) != 0 {
				t.Errorf("color %d (ref=%v): expected 0 presentations, got %d", i, cl.IsRef, len(presentations))
			}
		} else if len(presentations) != 1 {
			t.Errorf("color %d (ref=%v): expected 1 presentation, got %d", i, cl.IsRef, len(presentations))
		}
	}
}

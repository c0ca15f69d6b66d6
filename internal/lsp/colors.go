package lsp

import (
	"math"
	"strings"

	"github.com/jsvensson/streetleaves/internal/color"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func colorToLSP(c color.Color) protocol.Color {
	return protocol.Color{
		Red:   float32(c.R) / 255.0,
		Green: float32(c.G) / 255.0,
		Blue:  float32(c.B) / 255.0,
		Alpha: 1.0,
	}
}

func colorFromLSP(c protocol.Color) color.Color {
	channel := func(v float32) uint8 {
		return uint8(math.Round(float64(min(max(v, 0), 1)) * 255))
	}
	return color.Color{R: channel(c.Red), G: channel(c.Green), B: channel(c.Blue)}
}

// documentColors reports the first color of every located expression.
func documentColors(result *AnalysisResult) []protocol.ColorInformation {
	if result == nil {
		return []protocol.ColorInformation{}
	}

	infos := make([]protocol.ColorInformation, 0, len(result.Colors))
	for _, cl := range result.Colors {
		infos = append(infos, protocol.ColorInformation{
			Range: cl.Range,
			Color: colorToLSP(cl.Colors[0]),
		})
	}
	return infos
}

// colorPresentation offers a replacement for hex string literals only.
// References and function calls are left as written.
func colorPresentation(content string, params *protocol.ColorPresentationParams) []protocol.ColorPresentation {
	text := extractText(content, params.Range)
	if !strings.HasPrefix(text, "\"#") {
		return []protocol.ColorPresentation{}
	}

	hex := colorFromLSP(params.Color).Hex()
	return []protocol.ColorPresentation{
		{
			Label: hex,
			TextEdit: &protocol.TextEdit{
				Range:   params.Range,
				NewText: "\"" + hex + "\"",
			},
		},
	}
}

func (s *Server) textDocumentDocumentColor(_ *glsp.Context, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	return documentColors(s.getResult(string(params.TextDocument.URI))), nil
}

func (s *Server) textDocumentColorPresentation(_ *glsp.Context, params *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	content, ok := s.docs.Get(string(params.TextDocument.URI))
	if !ok {
		return []protocol.ColorPresentation{}, nil
	}
	return colorPresentation(content, params), nil
}

package lsp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jsvensson/streetleaves/internal/color"
	"github.com/jsvensson/streetleaves/internal/palette"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// posInRange returns true if pos is within the range [r.Start, r.End).
// The end position is exclusive.
func posInRange(pos protocol.Position, r protocol.Range) bool {
	if pos.Line < r.Start.Line || pos.Line > r.End.Line {
		return false
	}
	if pos.Line == r.Start.Line && pos.Character < r.Start.Character {
		return false
	}
	if pos.Line == r.End.Line && pos.Character >= r.End.Character {
		return false
	}
	return true
}

// extractText extracts the source text at a given LSP range from document content.
func extractText(content string, r protocol.Range) string {
	lines := strings.Split(content, "\n")

	startLine := int(r.Start.Line)
	endLine := int(r.End.Line)

	if startLine >= len(lines) {
		return ""
	}
	if endLine >= len(lines) {
		endLine = len(lines) - 1
	}

	if startLine == endLine {
		line := lines[startLine]
		startChar := int(r.Start.Character)
		endChar := int(r.End.Character)
		if startChar > len(line) {
			startChar = len(line)
		}
		if endChar > len(line) {
			endChar = len(line)
		}
		return line[startChar:endChar]
	}

	// Multi-line range
	var parts []string
	for i := startLine; i <= endLine; i++ {
		line := lines[i]
		if i == startLine {
			startChar := int(r.Start.Character)
			if startChar > len(line) {
				startChar = len(line)
			}
			parts = append(parts, line[startChar:])
		} else if i == endLine {
			endChar := int(r.End.Character)
			if endChar > len(line) {
				endChar = len(line)
			}
			parts = append(parts, line[:endChar])
		} else {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, "\n")
}

// hover describes the label or color expression under pos. Label names show
// the fill a leaf with that label gets; color expressions show their values.
func hover(result *AnalysisResult, content string, pos protocol.Position) *protocol.Hover {
	if result == nil {
		return nil
	}

	if result.File != nil {
		for _, e := range result.File.Entries {
			rng := hclRangeToLSP(e.NameRange)
			if !posInRange(pos, rng) || len(e.Colors) == 0 {
				continue
			}
			md := fmt.Sprintf("**%s** (%s)\n\n%s", e.Label, labelOrigin(e.Label), describeFill(e.Values()))
			return markdownHover(md, rng)
		}
	}

	for _, cl := range result.Colors {
		if !posInRange(pos, cl.Range) {
			continue
		}
		md := describeColors(cl.Colors)
		if cl.IsRef {
			md = fmt.Sprintf("**%s**\n\n%s", extractText(content, cl.Range), md)
		}
		return markdownHover(md, cl.Range)
	}

	return nil
}

func markdownHover(md string, rng protocol.Range) *protocol.Hover {
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: md,
		},
		Range: &rng,
	}
}

func labelOrigin(label string) string {
	if _, ok := palette.Default().Lookup(label); ok {
		return "overrides built-in"
	}
	return "new label"
}

// describeFill renders colors the way a leaf is painted: flat for one color,
// a diagonal gradient with evenly spaced stops otherwise.
func describeFill(colors []color.Color) string {
	if len(colors) == 1 {
		return "flat " + describeColors(colors)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "gradient, %d stops", len(colors))
	for i, c := range colors {
		offset := float64(i) / float64(len(colors)-1) * 100
		fmt.Fprintf(&b, "\n- %s%% `%s`", strconv.FormatFloat(offset, 'f', -1, 64), c.Hex())
	}
	return b.String()
}

func describeColors(colors []color.Color) string {
	parts := make([]string, len(colors))
	for i, c := range colors {
		parts[i] = fmt.Sprintf("`%s` \u00b7 `%s`", c.Hex(), c.RGB())
	}
	return strings.Join(parts, "\n\n")
}

func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	uri := string(params.TextDocument.URI)

	result := s.getResult(uri)
	if result == nil {
		return nil, nil
	}

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	return hover(result, content, params.Position), nil
}

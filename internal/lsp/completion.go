package lsp

import (
	"strings"

	"github.com/jsvensson/streetleaves/internal/color"
	"github.com/jsvensson/streetleaves/internal/palette"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const baseVar = "base."

// blockContext is the kind of body the cursor is in.
type blockContext int

const (
	contextRoot   blockContext = iota
	contextColors              // inside colors {}
)

var paletteFunctions = []struct {
	name, signature, doc string
}{
	{"brighten", "brighten(color, amount)", "Raises HSL lightness by amount (0.0 to 1.0)."},
	{"darken", "darken(color, amount)", "Lowers HSL lightness by amount (0.0 to 1.0)."},
	{"lightness", "lightness(color, lightness)", "Sets OKLCH lightness (0.0 to 1.0), keeping hue and chroma."},
}

// complete produces completion items for the cursor position.
func complete(content string, pos protocol.Position) []protocol.CompletionItem {
	lines := strings.Split(content, "\n")
	if int(pos.Line) >= len(lines) {
		return nil
	}

	line := lines[pos.Line]
	textBeforeCursor := line[:min(int(pos.Character), len(line))]

	if isBaseReference(textBeforeCursor) {
		return labelCompletions(protocol.CompletionItemKindColor, "")
	}
	if strings.Contains(textBeforeCursor, "=") {
		return valueCompletions()
	}

	switch determineBlockContext(lines, int(pos.Line)) {
	case contextColors:
		return labelCompletions(protocol.CompletionItemKindProperty, " = ")
	default:
		return topLevelCompletions()
	}
}

// isBaseReference reports whether the cursor is right after "base." with an
// optional partial label.
func isBaseReference(text string) bool {
	idx := strings.LastIndex(text, baseVar)
	if idx == -1 {
		return false
	}
	if idx > 0 && isIdentChar(text[idx-1]) {
		return false
	}
	for i := idx + len(baseVar); i < len(text); i++ {
		if !isIdentChar(text[i]) {
			return false
		}
	}
	return true
}

func isIdentChar(c byte) bool {
	return c == '_' || c == '-' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// determineBlockContext scans the lines before the cursor and tracks brace
// depth to find whether the cursor is inside a colors block.
func determineBlockContext(lines []string, line int) blockContext {
	depth := 0
	inColors := false
	for i := 0; i < line && i < len(lines); i++ {
		l := stripComment(lines[i])
		if depth == 0 && strings.HasPrefix(strings.TrimSpace(l), "colors") && strings.Contains(l, "{") {
			inColors = true
		}
		depth += strings.Count(l, "{") - strings.Count(l, "}")
		if depth <= 0 {
			depth = 0
			inColors = false
		}
	}
	if inColors {
		return contextColors
	}
	return contextRoot
}

func stripComment(line string) string {
	for _, marker := range []string{"//", "# "} {
		if idx := strings.Index(line, marker); idx != -1 && !strings.Contains(line[:idx], "\"") {
			line = line[:idx]
		}
	}
	return line
}

func labelCompletions(kind protocol.CompletionItemKind, suffix string) []protocol.CompletionItem {
	p := palette.Default()
	items := make([]protocol.CompletionItem, 0, p.Len())
	for _, label := range p.Labels() {
		colors := p.Resolve(label)
		detail := swatch(colors)
		item := protocol.CompletionItem{
			Label:  label,
			Kind:   &kind,
			Detail: &detail,
		}
		if suffix != "" {
			text := label + suffix
			item.InsertText = &text
		}
		items = append(items, item)
	}
	return items
}

func valueCompletions() []protocol.CompletionItem {
	fnKind := protocol.CompletionItemKindFunction
	varKind := protocol.CompletionItemKindVariable

	items := make([]protocol.CompletionItem, 0, len(paletteFunctions)+1)
	for _, fn := range paletteFunctions {
		detail := fn.signature
		doc := fn.doc
		items = append(items, protocol.CompletionItem{
			Label:         fn.name,
			Kind:          &fnKind,
			Detail:        &detail,
			Documentation: doc,
		})
	}
	baseDetail := "built-in palette"
	items = append(items, protocol.CompletionItem{
		Label:  "base",
		Kind:   &varKind,
		Detail: &baseDetail,
	})
	return items
}

func topLevelCompletions() []protocol.CompletionItem {
	propKind := protocol.CompletionItemKindProperty
	moduleKind := protocol.CompletionItemKindModule
	fallbackText := "fallback = "
	colorsText := "colors {\n  \n}"
	return []protocol.CompletionItem{
		{Label: "fallback", Kind: &propKind, InsertText: &fallbackText},
		{Label: "colors", Kind: &moduleKind, InsertText: &colorsText},
	}
}

func swatch(colors []color.Color) string {
	hexes := make([]string, len(colors))
	for i, c := range colors {
		hexes[i] = c.Hex()
	}
	return strings.Join(hexes, " → ")
}

func (s *Server) textDocumentCompletion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	content, ok := s.docs.Get(string(params.TextDocument.URI))
	if !ok {
		return nil, nil
	}
	return complete(content, params.Position), nil
}

// Package tui is an interactive street browser: a text input with the known
// street names as suggestions and a live preview of the rendered leaves.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jsvensson/streetleaves/internal/color"
	"github.com/jsvensson/streetleaves/internal/render"
)

const defaultWidth = 80

// Model is the bubbletea model of the browser. The renderer must commit to
// display, directly or through render.Tee.
type Model struct {
	Input    textinput.Model
	renderer *render.Renderer
	display  *render.Display
	keys     KeyMap
	width    int
}

// New creates a browser suggesting names as the user types.
func New(renderer *render.Renderer, display *render.Display, names []string) Model {
	ti := textinput.New()
	ti.Prompt = "street ▸ "
	ti.Placeholder = "start typing a street name"
	ti.ShowSuggestions = true
	ti.SetSuggestions(names)
	ti.Focus()

	return Model{
		Input:    ti,
		renderer: renderer,
		display:  display,
		keys:     DefaultKeyMap(),
		width:    defaultWidth,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model. Every edit of the input re-renders if the text
// names a street; Enter commits the exact text, clearing on an unknown name.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Render):
			m.renderer.Render(m.Input.Value())
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			m.Input.SetValue("")
			m.renderer.Render("")
			return m, nil
		}
	}

	before := m.Input.Value()
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	if value := m.Input.Value(); value != before {
		m.renderer.Update(value)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.Input.View())
	b.WriteString("\n\n")
	b.WriteString(stylePreview.Width(max(m.width-4, 20)).Render(m.preview()))
	b.WriteString("\n")
	b.WriteString(styleMuted.Render(m.help()))
	b.WriteString("\n")
	return b.String()
}

func (m Model) preview() string {
	if m.display.Location == "" {
		return styleMuted.Render("No street selected")
	}

	var b strings.Builder
	title := fmt.Sprintf("%s · %d %s", m.display.Location, len(m.display.Icons), plural(len(m.display.Icons), "leaf", "leaves"))
	b.WriteString(styleTitle.Render(title))
	b.WriteString("\n")

	if m.display.Empty() {
		b.WriteString(styleMuted.Render("no leaves recorded"))
		return b.String()
	}

	glyphs := make([]string, len(m.display.Icons))
	for i, icon := range m.display.Icons {
		glyphs[i] = Leaf(icon.Fill)
	}
	b.WriteString(strings.Join(glyphs, " "))
	b.WriteString("\n")

	for _, g := range render.Summarize(m.display.Icons) {
		fmt.Fprintf(&b, "\n%s %s ×%d %s", styleShape.Render(g.Shape), g.Label, g.Count, Leaf(g.Fill))
	}
	return b.String()
}

func (m Model) help() string {
	bindings := []key.Binding{m.keys.Render, m.keys.Clear, m.keys.Quit}
	parts := make([]string, 0, len(bindings)+1)
	parts = append(parts, "tab complete")
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}

// Leaf draws a fill as leaf glyphs: one for a flat fill, one per stop for a
// gradient.
func Leaf(f render.Fill) string {
	colors := f.Colors()
	glyphs := make([]string, len(colors))
	for i, c := range colors {
		glyphs[i] = glyph(c)
	}
	return strings.Join(glyphs, "")
}

func glyph(c color.Color) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(leafGlyph)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("#FEDF05")
	colorMuted  = lipgloss.Color("#787878")
)

// leafGlyph is drawn once per fill color.
const leafGlyph = "❦"

var (
	styleTitle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleShape = lipgloss.NewStyle().
			Bold(true)

	stylePreview = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
)

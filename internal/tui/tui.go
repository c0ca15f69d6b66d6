package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run runs the browser until the user quits.
func Run(m Model, opts ...tea.ProgramOption) error {
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}

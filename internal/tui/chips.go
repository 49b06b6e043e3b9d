package tui

import (
	"strings"

	"issuedeck-cli/internal/filters"

	"github.com/charmbracelet/lipgloss"
)

// renderChips renders the active filter row. One chip per active filter,
// "label: value", plus a clear-all hint when anything is active.
func renderChips(chips []filters.Chip) string {
	if len(chips) == 0 {
		return ""
	}
	chipStyle := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorChipFg).
		Background(colorChipBg)

	parts := make([]string, 0, len(chips)+1)
	for _, c := range chips {
		parts = append(parts, chipStyle.Render(c.Label+": "+c.Display))
	}
	parts = append(parts, styleMuted().Render("x: clear filters"))
	return strings.Join(parts, " ")
}

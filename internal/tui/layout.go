package tui

import (
	xansi "github.com/charmbracelet/x/ansi"
)

// truncateToWidth cuts a (possibly styled) line to the terminal width.
// Plain string slicing would split ANSI escapes and multi-cell runes.
func truncateToWidth(s string, width int) string {
	if width <= 0 {
		return s
	}
	if xansi.StringWidth(s) <= width {
		return s
	}
	if width <= 1 {
		return xansi.Cut(s, 0, width)
	}
	return xansi.Cut(s, 0, width-1) + "…"
}

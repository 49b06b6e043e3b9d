package tui

import (
	"issuedeck-cli/internal/api"
	"issuedeck-cli/internal/cache"
	"issuedeck-cli/internal/session"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive TUI. snap may be nil; the UI then starts from an
// empty list instead of the last snapshot.
func Run(sess *session.Store, client *api.Client, snap *cache.Cache, defaultLimit int) error {
	applyColorProfilePreference()
	applyThemePreference()

	m := newAppModel(sess, client, snap, defaultLimit)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tokdeck/tokdeck/internal/catalog"
	"github.com/tokdeck/tokdeck/internal/logging"
)

// Callbacks let the caller react to session lifecycle changes: OnLogin
// receives the bearer token after an in-TUI sign-in, OnLogout runs when the
// user discards the session from inside the browser. Either may be nil.
type Callbacks struct {
	OnLogin  func(token string) error
	OnLogout func() error
}

// Run starts the interactive catalog browser and blocks until it exits.
func Run(store *catalog.Store, auth Authenticator, hasSession bool, callbacks Callbacks, logger *logging.Logger) error {
	if logger != nil {
		logger.SetQuiet(true)
		defer logger.SetQuiet(false)
	}

	model := NewModel(store, auth, hasSession, callbacks)
	program := tea.NewProgram(model, tea.WithAltScreen())

	_, err := program.Run()
	return err
}

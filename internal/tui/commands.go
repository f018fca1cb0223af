package tui

// Bubble Tea commands for the async work: every remote call runs in a
// command goroutine and reports back with one message type per outcome.

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tokdeck/tokdeck/internal/catalog"
)

// Authenticator exchanges credentials for a bearer token.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// catalogLoadedMsg arrives after a Store.Load finished, successfully or not;
// the store itself records the outcome.
type catalogLoadedMsg struct{}

// mutationDoneMsg reports the outcome of one create/update/delete.
type mutationDoneMsg struct {
	err error
}

// importDoneMsg reports the outcome of a bulk import.
type importDoneMsg struct {
	result catalog.ImportResult
	err    error
}

// loginDoneMsg reports the outcome of a credential exchange.
type loginDoneMsg struct {
	token string
	err   error
}

// clipboardMsg reports the outcome of a copy-to-clipboard.
type clipboardMsg struct {
	name string
	err  error
}

func loadCatalogCmd(store *catalog.Store) tea.Cmd {
	return func() tea.Msg {
		store.Load(context.Background())
		return catalogLoadedMsg{}
	}
}

func mutateCmd(store *catalog.Store, op catalog.Op) tea.Cmd {
	return func() tea.Msg {
		return mutationDoneMsg{err: store.Mutate(context.Background(), op)}
	}
}

// importFileCmd reads and parses a JSON document, submits it for bulk
// import, and reports the summary. Parsing happens client-side so an
// unreadable file never reaches the service.
func importFileCmd(store *catalog.Store, path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return importDoneMsg{err: fmt.Errorf("read import file: %w", err)}
		}
		var payload any
		if err := json.Unmarshal(data, &payload); err != nil {
			return importDoneMsg{err: fmt.Errorf("parse import file: %w", err)}
		}
		result, err := store.Import(context.Background(), payload)
		return importDoneMsg{result: result, err: err}
	}
}

func loginCmd(auth Authenticator, username, password string) tea.Cmd {
	return func() tea.Msg {
		token, err := auth.Login(context.Background(), username, password)
		return loginDoneMsg{token: token, err: err}
	}
}

func copyValueCmd(tok catalog.Token) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{name: tok.Name, err: clipboard.WriteAll(tok.Value)}
	}
}

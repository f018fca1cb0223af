package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/tokdeck/tokdeck/internal/catalog"
)

// Screen represents the current active screen.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenCatalog
)

// Model is the main TUI model. It owns the catalog screen state: the cached
// snapshot, the category and search filters, the page window, and the single
// modal overlay.
type Model struct {
	store     *catalog.Store
	auth      Authenticator
	callbacks Callbacks

	styles Styles
	screen Screen
	width  int
	height int

	keys keyMap
	help help.Model
	spin spinner.Model

	// loading covers catalog reloads, busy covers mutations and imports.
	// While busy, overlay submits are ignored so one submit yields one call.
	loading bool
	busy    bool

	// Snapshot of the store, refreshed after every load.
	tokens     []catalog.Token
	categories []string

	// Filter and page state. An empty selection means every category
	// matches. page is 1-based and clamped against the filtered view.
	selected map[string]bool
	search   textinput.Model
	page     int
	pager    paginator.Model
	cursor   int

	overlay overlay

	loginForm *huh.Form
	username  string
	password  string

	status    string
	statusErr bool
}

// NewModel creates the TUI model. auth is only consulted when hasSession is
// false; with a saved session the catalog loads immediately.
func NewModel(store *catalog.Store, auth Authenticator, hasSession bool, callbacks Callbacks) *Model {
	styles := DefaultStyles

	search := textinput.New()
	search.Placeholder = "search by name"
	search.Prompt = "/ "
	search.CharLimit = 80

	spin := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Info))

	pager := paginator.New()
	pager.Type = paginator.Dots
	pager.ActiveDot = styles.Selected.Render("•")
	pager.InactiveDot = styles.Muted.Render("•")

	m := &Model{
		store:     store,
		auth:      auth,
		callbacks: callbacks,
		styles:    styles,
		keys:      defaultKeyMap(),
		help:      help.New(),
		spin:      spin,
		selected:  map[string]bool{},
		search:    search,
		page:      1,
		pager:     pager,
	}

	if hasSession {
		m.screen = ScreenCatalog
		m.loading = true
	} else {
		m.screen = ScreenLogin
		m.loginForm = m.newLoginForm()
	}
	return m
}

func (m *Model) newLoginForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&m.username).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("username is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.password).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("password is required")
					}
					return nil
				}),
		),
	)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.screen == ScreenLogin {
		return m.loginForm.Init()
	}
	return tea.Batch(m.spin.Tick, loadCatalogCmd(m.store))
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case catalogLoadedMsg:
		m.loading = false
		if err := m.store.LastError(); err != nil {
			m.setError(catalog.FriendlyMessage(err))
			m.store.ClearError()
			return m, nil
		}
		m.syncFromStore()
		return m, nil

	case mutationDoneMsg:
		return m.handleMutationDone(msg)

	case importDoneMsg:
		return m.handleImportDone(msg)

	case loginDoneMsg:
		return m.handleLoginDone(msg)

	case clipboardMsg:
		if msg.err != nil {
			m.setError("copy failed: " + msg.err.Error())
		} else {
			m.setStatus(fmt.Sprintf("Copied value of %q", msg.name))
		}
		return m, nil
	}

	if m.screen == ScreenLogin {
		return m.updateLogin(msg)
	}
	return m.updateCatalog(msg)
}

// updateLogin routes messages to the credential form until it completes.
func (m *Model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.busy || m.loginForm == nil {
		return m, nil
	}

	formModel, cmd := m.loginForm.Update(msg)
	m.loginForm = formModel.(*huh.Form)

	switch m.loginForm.State {
	case huh.StateCompleted:
		m.busy = true
		m.setStatus("Signing in...")
		return m, tea.Batch(m.spin.Tick, loginCmd(m.auth, m.username, m.password))
	case huh.StateAborted:
		return m, tea.Quit
	}
	return m, cmd
}

func (m *Model) handleLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.err != nil {
		m.setError(catalog.FriendlyMessage(msg.err))
		m.password = ""
		m.loginForm = m.newLoginForm()
		return m, m.loginForm.Init()
	}

	if m.callbacks.OnLogin != nil {
		if err := m.callbacks.OnLogin(msg.token); err != nil {
			m.setError("save session: " + err.Error())
		}
	}
	m.screen = ScreenCatalog
	m.loading = true
	m.setStatus("Signed in")
	return m, tea.Batch(m.spin.Tick, loadCatalogCmd(m.store))
}

// updateCatalog handles the catalog screen. The overlay, when open, sees
// input first; list navigation only applies with the overlay closed.
func (m *Model) updateCatalog(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.overlay.open() {
		return m.updateOverlay(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.searchFocused() {
		return m.updateSearch(keyMsg)
	}
	return m.handleListKey(keyMsg)
}

func (m *Model) searchFocused() bool { return m.search.Focused() }

// updateSearch feeds keys to the search input. Every change of the query is
// a filter change, so the page resets to the first one.
func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.search.Blur()
		return m, nil
	case "esc":
		m.search.Blur()
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.resetPage()
		}
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.resetPage()
	}
	return m, cmd
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys

	// Digits toggle the category at that position in the chip row.
	if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		idx := int(s[0] - '1')
		if idx < len(m.categories) {
			name := m.categories[idx]
			if m.selected[name] {
				delete(m.selected, name)
			} else {
				m.selected[name] = true
			}
			m.resetPage()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, keys.Search):
		m.search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, keys.ClearFilter):
		if len(m.selected) > 0 {
			m.selected = map[string]bool{}
			m.resetPage()
		}
		return m, nil

	case key.Matches(msg, keys.Reload):
		m.loading = true
		return m, tea.Batch(m.spin.Tick, loadCatalogCmd(m.store))

	case key.Matches(msg, keys.Logout):
		return m.logout()

	case key.Matches(msg, keys.PrevPage):
		if m.page > 1 {
			m.page--
			m.cursor = 0
		}
		return m, nil

	case key.Matches(msg, keys.NextPage):
		if m.page < m.visible().Count {
			m.page++
			m.cursor = 0
		}
		return m, nil

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.visible().Items)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, keys.New):
		m.overlay.openCreate(m.categories)
		return m, m.overlay.form.Init()

	case key.Matches(msg, keys.Edit):
		if tok, ok := m.cursorToken(); ok {
			m.overlay.openEdit(tok, m.categories)
			return m, m.overlay.form.Init()
		}
		return m, nil

	case key.Matches(msg, keys.Delete):
		if tok, ok := m.cursorToken(); ok {
			m.overlay.openConfirmDelete(tok)
		}
		return m, nil

	case key.Matches(msg, keys.Import):
		m.overlay.openImport()
		return m, m.overlay.form.Init()

	case key.Matches(msg, keys.Copy):
		if tok, ok := m.cursorToken(); ok {
			return m, copyValueCmd(tok)
		}
		return m, nil

	case msg.String() == "esc":
		m.status = ""
		m.statusErr = false
		return m, nil
	}

	return m, nil
}

// updateOverlay routes input to the open overlay. While a mutation is in
// flight the overlay stays on screen but stops taking input, so a second
// submit cannot fire a second request.
func (m *Model) updateOverlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.busy {
		return m, nil
	}

	if m.overlay.kind == overlayConfirmDelete {
		k, ok := msg.(tea.KeyMsg)
		if !ok {
			return m, nil
		}
		switch k.String() {
		case "y", "enter":
			m.busy = true
			return m, tea.Batch(m.spin.Tick, mutateCmd(m.store, catalog.Delete(m.overlay.tokenID)))
		case "n", "esc":
			m.overlay.close()
		}
		return m, nil
	}

	formModel, cmd := m.overlay.form.Update(msg)
	m.overlay.form = formModel.(*huh.Form)

	switch m.overlay.form.State {
	case huh.StateAborted:
		m.overlay.close()
		return m, nil

	case huh.StateCompleted:
		return m.submitOverlay()
	}
	return m, cmd
}

// submitOverlay turns a completed form into the corresponding remote call.
// Client-side validation failures reopen the form with the draft intact.
func (m *Model) submitOverlay() (tea.Model, tea.Cmd) {
	switch m.overlay.kind {
	case overlayCreate, overlayEdit:
		if err := m.overlay.draft.Validate(); err != nil {
			m.setError(err.Error())
			m.overlay.reopenForm(m.categories)
			return m, m.overlay.form.Init()
		}
		op := catalog.Create(m.overlay.draft)
		if m.overlay.kind == overlayEdit {
			op = catalog.Update(m.overlay.tokenID, m.overlay.draft)
		}
		m.busy = true
		return m, tea.Batch(m.spin.Tick, mutateCmd(m.store, op))

	case overlayImport:
		if m.overlay.path == "" {
			m.setError("no file selected")
			m.overlay.reopenForm(nil)
			return m, m.overlay.form.Init()
		}
		m.busy = true
		return m, tea.Batch(m.spin.Tick, importFileCmd(m.store, m.overlay.path))
	}

	m.overlay.close()
	return m, nil
}

// handleMutationDone resolves a finished create/update/delete. On failure
// the overlay stays open with the draft intact; on success it closes and the
// already-reloaded snapshot is taken over.
func (m *Model) handleMutationDone(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false

	if msg.err != nil {
		m.setError(catalog.FriendlyMessage(msg.err))
		m.store.ClearError()
		if m.overlay.kind == overlayCreate || m.overlay.kind == overlayEdit {
			m.overlay.reopenForm(m.categories)
			return m, m.overlay.form.Init()
		}
		return m, nil
	}

	switch m.overlay.kind {
	case overlayCreate:
		m.setStatus(fmt.Sprintf("Created %q", m.overlay.draft.Name))
	case overlayEdit:
		m.setStatus(fmt.Sprintf("Saved %q", m.overlay.draft.Name))
	case overlayConfirmDelete:
		m.setStatus(fmt.Sprintf("Deleted %q", m.overlay.name))
	}
	m.overlay.close()
	m.syncFromStore()
	return m, nil
}

// handleImportDone resolves a finished bulk import. Completion triggers
// exactly one catalog reload; the import call itself never touches the cache.
func (m *Model) handleImportDone(msg importDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false

	if msg.err != nil {
		m.setError(catalog.FriendlyMessage(msg.err))
		m.store.ClearError()
		m.overlay.reopenForm(nil)
		return m, m.overlay.form.Init()
	}

	m.overlay.close()
	m.setStatus(fmt.Sprintf("Imported: %d created, %d updated, %d errors",
		msg.result.Created, msg.result.Updated, len(msg.result.Errors)))
	m.loading = true
	return m, tea.Batch(m.spin.Tick, loadCatalogCmd(m.store))
}

// syncFromStore takes over the store snapshot and clamps the cursor against
// the current page. Filters and the page number survive reloads.
func (m *Model) syncFromStore() {
	m.tokens = m.store.Tokens()
	m.categories = m.store.Categories()

	page := m.visible()
	m.page = page.Number
	if m.cursor >= len(page.Items) {
		m.cursor = len(page.Items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// visible derives the current page from the snapshot and the filters.
func (m *Model) visible() catalog.Page {
	filtered := catalog.Filter(m.tokens, m.selected, m.search.Value())
	return catalog.Paginate(filtered, catalog.PageSize, m.page)
}

// resetPage jumps back to the first page after any filter change.
func (m *Model) resetPage() {
	m.page = 1
	m.cursor = 0
}

func (m *Model) cursorToken() (catalog.Token, bool) {
	items := m.visible().Items
	if m.cursor < 0 || m.cursor >= len(items) {
		return catalog.Token{}, false
	}
	return items[m.cursor], true
}

// logout discards the session and returns to the sign-in form with the
// catalog state reset to its defaults.
func (m *Model) logout() (tea.Model, tea.Cmd) {
	if m.callbacks.OnLogout != nil {
		if err := m.callbacks.OnLogout(); err != nil {
			m.setError("clear session: " + err.Error())
			return m, nil
		}
	}

	m.tokens = nil
	m.categories = nil
	m.selected = map[string]bool{}
	m.search.SetValue("")
	m.search.Blur()
	m.page = 1
	m.cursor = 0
	m.overlay.close()
	m.loading = false
	m.busy = false

	m.username = ""
	m.password = ""
	m.screen = ScreenLogin
	m.loginForm = m.newLoginForm()
	m.setStatus("Signed out")
	return m, m.loginForm.Init()
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

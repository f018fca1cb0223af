package tui

import (
	"github.com/charmbracelet/huh"

	"github.com/tokdeck/tokdeck/internal/catalog"
)

// overlayKind discriminates the modal surfaces of the catalog screen.
type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayCreate
	overlayEdit
	overlayConfirmDelete
	overlayImport
)

// overlay is the one modal surface of the catalog screen. Exactly one can be
// open at a time; opening a new one replaces whatever was there. The target
// token id for edit and delete lives in the struct itself, so a form
// completion always acts on the row the overlay was opened for.
type overlay struct {
	kind    overlayKind
	tokenID string // edit and confirm-delete target
	name    string // display name for the delete prompt
	draft   catalog.Draft
	path    string // import file selection
	form    *huh.Form
}

func (o *overlay) open() bool { return o.kind != overlayNone }

func (o *overlay) close() {
	*o = overlay{}
}

// openCreate replaces the overlay with an empty draft form.
func (o *overlay) openCreate(categories []string) {
	*o = overlay{kind: overlayCreate}
	o.form = o.draftForm(categories)
}

// openEdit replaces the overlay with a form pre-filled from the token. The
// id is recorded here, not captured by the form, so the later submit names
// its target explicitly.
func (o *overlay) openEdit(tok catalog.Token, categories []string) {
	*o = overlay{kind: overlayEdit, tokenID: tok.ID, draft: catalog.DraftFrom(tok)}
	o.form = o.draftForm(categories)
}

// openConfirmDelete replaces the overlay with a yes/no prompt for the token.
func (o *overlay) openConfirmDelete(tok catalog.Token) {
	*o = overlay{kind: overlayConfirmDelete, tokenID: tok.ID, name: tok.Name}
}

// openImport replaces the overlay with a file picker for a JSON document.
func (o *overlay) openImport() {
	*o = overlay{kind: overlayImport}
	o.form = huh.NewForm(
		huh.NewGroup(
			huh.NewFilePicker().
				Title("Import tokens").
				Description("Pick a JSON document to submit for bulk import.").
				AllowedTypes([]string{".json"}).
				Value(&o.path),
		),
	)
}

// draftForm builds the create/edit form bound to o.draft. The category field
// suggests the server's known set, falling back to the conventional one when
// the server has not reported any yet.
func (o *overlay) draftForm(categories []string) *huh.Form {
	if len(categories) == 0 {
		categories = catalog.DefaultCategories
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("primary-blue").
				Value(&o.draft.Name),
			huh.NewInput().
				Title("Value").
				Placeholder("#1d4ed8").
				Value(&o.draft.Value),
			huh.NewInput().
				Title("Category").
				Suggestions(categories).
				Value(&o.draft.Category),
			huh.NewText().
				Title("Description").
				Lines(2).
				Value(&o.draft.Description),
		),
	)
}

// reopenForm rebuilds the form around the retained draft after a failed
// submit, so the user's input survives for a retry.
func (o *overlay) reopenForm(categories []string) {
	switch o.kind {
	case overlayCreate, overlayEdit:
		o.form = o.draftForm(categories)
	case overlayImport:
		path := o.path
		o.openImport()
		o.path = path
	}
}

func (o *overlay) title() string {
	switch o.kind {
	case overlayCreate:
		return "New token"
	case overlayEdit:
		return "Edit token"
	case overlayConfirmDelete:
		return "Delete token"
	case overlayImport:
		return "Import tokens"
	default:
		return ""
	}
}

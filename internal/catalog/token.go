package catalog

// Core types for the design token catalog.

import (
	"context"
	"errors"
)

var (
	ErrNameRequired  = errors.New("token name is required")
	ErrValueRequired = errors.New("token value is required")
)

// Token is a named design value (color, spacing, font, shadow, ...) as the
// server reports it. ID is server-assigned and immutable.
type Token struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Value       string `json:"value"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
}

// Draft holds the editable fields of a token while a create or edit form is
// open. It is independent of any persisted Token until a submit succeeds.
type Draft struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
}

// DraftFrom copies a token's editable fields into a fresh draft.
func DraftFrom(t Token) Draft {
	return Draft{
		Name:        t.Name,
		Value:       t.Value,
		Category:    t.Category,
		Description: t.Description,
	}
}

// Validate checks required-field presence. Anything beyond that is the
// server's call.
func (d Draft) Validate() error {
	if d.Name == "" {
		return ErrNameRequired
	}
	if d.Value == "" {
		return ErrValueRequired
	}
	return nil
}

// ImportResult is the server's summary of a bulk import.
type ImportResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors"`
}

// Client is the remote catalog API as the store consumes it. The HTTP
// implementation lives in internal/api.
type Client interface {
	ListTokens(ctx context.Context) ([]Token, error)
	ListCategories(ctx context.Context) ([]string, error)
	CreateToken(ctx context.Context, draft Draft) (Token, error)
	UpdateToken(ctx context.Context, id string, draft Draft) (Token, error)
	DeleteToken(ctx context.Context, id string) error
	ImportTokens(ctx context.Context, payload any) (ImportResult, error)
}

// DefaultCategories seeds the category suggestions on a fresh server that
// has not reported any categories yet. Server-reported categories always
// take precedence.
var DefaultCategories = []string{"color", "spacing", "font", "shadow", "other"}

package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// fakeClient implements Client against an in-memory token table.
type fakeClient struct {
	tokens     []Token
	categories []string
	nextID     int

	listCalls   int
	failList    error
	failCreate  error
	failUpdate  error
	failDelete  error
	failImport  error
	importReply ImportResult
}

func (f *fakeClient) ListTokens(ctx context.Context) ([]Token, error) {
	f.listCalls++
	if f.failList != nil {
		return nil, f.failList
	}
	out := make([]Token, len(f.tokens))
	copy(out, f.tokens)
	return out, nil
}

func (f *fakeClient) ListCategories(ctx context.Context) ([]string, error) {
	if f.failList != nil {
		return nil, f.failList
	}
	return f.categories, nil
}

func (f *fakeClient) CreateToken(ctx context.Context, draft Draft) (Token, error) {
	if f.failCreate != nil {
		return Token{}, f.failCreate
	}
	f.nextID++
	tok := Token{
		ID:          fmt.Sprintf("srv-%d", f.nextID),
		Name:        draft.Name,
		Value:       draft.Value,
		Category:    draft.Category,
		Description: draft.Description,
	}
	f.tokens = append(f.tokens, tok)
	return tok, nil
}

func (f *fakeClient) UpdateToken(ctx context.Context, id string, draft Draft) (Token, error) {
	if f.failUpdate != nil {
		return Token{}, f.failUpdate
	}
	for i, tok := range f.tokens {
		if tok.ID == id {
			f.tokens[i] = Token{ID: id, Name: draft.Name, Value: draft.Value, Category: draft.Category, Description: draft.Description}
			return f.tokens[i], nil
		}
	}
	return Token{}, &NotFoundError{ID: id}
}

func (f *fakeClient) DeleteToken(ctx context.Context, id string) error {
	if f.failDelete != nil {
		return f.failDelete
	}
	for i, tok := range f.tokens {
		if tok.ID == id {
			f.tokens = append(f.tokens[:i], f.tokens[i+1:]...)
			return nil
		}
	}
	return &NotFoundError{ID: id}
}

func (f *fakeClient) ImportTokens(ctx context.Context, payload any) (ImportResult, error) {
	if f.failImport != nil {
		return ImportResult{}, f.failImport
	}
	return f.importReply, nil
}

func TestStoreLoadReplacesWholesale(t *testing.T) {
	client := &fakeClient{
		tokens:     []Token{{ID: "1", Name: "Primary Blue", Category: "color"}},
		categories: []string{"color", "spacing"},
	}
	store := NewStore(client)

	store.Load(context.Background())

	if got := store.Tokens(); len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("tokens after load = %v", got)
	}
	if got := store.Categories(); len(got) != 2 {
		t.Fatalf("categories after load = %v", got)
	}
	if store.LastError() != nil {
		t.Errorf("unexpected lastError: %v", store.LastError())
	}

	// The server's set changes entirely; the next load must not merge.
	client.tokens = []Token{{ID: "9", Name: "Shadow-lg", Category: "shadow"}}
	client.categories = []string{"shadow"}
	store.Load(context.Background())

	if got := store.Tokens(); len(got) != 1 || got[0].ID != "9" {
		t.Errorf("tokens after second load = %v, want only id 9", got)
	}
}

func TestStoreLoadFailureKeepsSnapshot(t *testing.T) {
	client := &fakeClient{
		tokens:     []Token{{ID: "1", Name: "Primary Blue", Category: "color"}},
		categories: []string{"color"},
	}
	store := NewStore(client)
	store.Load(context.Background())

	client.failList = &NetworkError{Err: errors.New("connection refused")}
	store.Load(context.Background())

	if got := store.Tokens(); len(got) != 1 || got[0].ID != "1" {
		t.Errorf("snapshot lost on failed load: %v", got)
	}
	var netErr *NetworkError
	if !errors.As(store.LastError(), &netErr) {
		t.Errorf("lastError = %v, want NetworkError", store.LastError())
	}
}

func TestStoreMutateCreateReloads(t *testing.T) {
	client := &fakeClient{categories: []string{"color"}}
	store := NewStore(client)
	store.Load(context.Background())

	draft := Draft{Name: "Primary Blue", Value: "#1d4ed8", Category: "color"}
	if err := store.Mutate(context.Background(), Create(draft)); err != nil {
		t.Fatalf("Mutate(create) error: %v", err)
	}

	found := false
	for _, tok := range store.Tokens() {
		if tok.Name == draft.Name && tok.Value == draft.Value && tok.Category == draft.Category {
			if tok.ID == "" {
				t.Error("created token has no server-assigned id")
			}
			found = true
		}
	}
	if !found {
		t.Error("created token missing from reloaded cache")
	}
}

func TestStoreMutateDeleteRemoves(t *testing.T) {
	client := &fakeClient{
		tokens: []Token{
			{ID: "1", Name: "Primary Blue", Category: "color"},
			{ID: "2", Name: "Spacing-sm", Category: "spacing"},
		},
	}
	store := NewStore(client)
	store.Load(context.Background())

	if err := store.Mutate(context.Background(), Delete("1")); err != nil {
		t.Fatalf("Mutate(delete) error: %v", err)
	}
	for _, tok := range store.Tokens() {
		if tok.ID == "1" {
			t.Error("deleted token still present after reload")
		}
	}
}

func TestStoreDeleteMissingIDIsSuccess(t *testing.T) {
	client := &fakeClient{tokens: []Token{{ID: "1", Name: "Primary Blue", Category: "color"}}}
	store := NewStore(client)
	store.Load(context.Background())
	loadsBefore := client.listCalls

	if err := store.Mutate(context.Background(), Delete("gone")); err != nil {
		t.Fatalf("deleting a missing id should succeed, got %v", err)
	}
	if client.listCalls != loadsBefore+1 {
		t.Errorf("expected exactly one reload after idempotent delete, got %d", client.listCalls-loadsBefore)
	}
}

func TestStoreMutateFailureLeavesCacheAndSkipsReload(t *testing.T) {
	client := &fakeClient{tokens: []Token{{ID: "1", Name: "Primary Blue", Category: "color"}}}
	store := NewStore(client)
	store.Load(context.Background())
	loadsBefore := client.listCalls

	client.failDelete = &NetworkError{Err: errors.New("broken pipe")}
	err := store.Mutate(context.Background(), Delete("1"))
	if err == nil {
		t.Fatal("expected delete failure to propagate to the caller")
	}
	if got := store.Tokens(); len(got) != 1 || got[0].ID != "1" {
		t.Errorf("cache changed on failed mutation: %v", got)
	}
	if store.LastError() == nil {
		t.Error("lastError not recorded on failed mutation")
	}
	if client.listCalls != loadsBefore {
		t.Errorf("reload triggered despite failed mutation (%d extra loads)", client.listCalls-loadsBefore)
	}
}

func TestStoreMutateValidationFailurePreservesRetry(t *testing.T) {
	client := &fakeClient{}
	store := NewStore(client)
	store.Load(context.Background())

	client.failCreate = &ValidationError{Message: "value must not be empty"}
	draft := Draft{Name: "Primary Blue", Category: "color"}
	err := store.Mutate(context.Background(), Create(draft))

	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	// The draft is the caller's to keep; the store only records the message.
	if store.LastError() == nil {
		t.Error("validation failure not recorded")
	}
}

func TestStoreImportDoesNotReloadItself(t *testing.T) {
	client := &fakeClient{importReply: ImportResult{Created: 2, Updated: 1, Errors: []string{"row 4: missing value"}}}
	store := NewStore(client)
	loadsBefore := client.listCalls

	result, err := store.Import(context.Background(), map[string]any{"tokens": []any{}})
	if err != nil {
		t.Fatalf("Import error: %v", err)
	}
	if result.Created != 2 || result.Updated != 1 || len(result.Errors) != 1 {
		t.Errorf("import result = %+v", result)
	}
	if client.listCalls != loadsBefore {
		t.Error("Import must leave the reload to its caller")
	}
}

func TestDraftValidate(t *testing.T) {
	tests := []struct {
		name    string
		draft   Draft
		wantErr error
	}{
		{name: "complete", draft: Draft{Name: "a", Value: "b", Category: "color"}},
		{name: "missing name", draft: Draft{Value: "b"}, wantErr: ErrNameRequired},
		{name: "missing value", draft: Draft{Name: "a"}, wantErr: ErrValueRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.draft.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

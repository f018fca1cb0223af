package catalog

import (
	"context"
	"errors"
	"sync"
)

// Store owns the authoritative local cache of tokens and the set of known
// categories. The cache is rebuilt wholesale on every reload; nothing
// patches it incrementally. Derivations (filtering, pagination) read
// snapshots and never write back.
//
// Load and Mutate may be called from Bubble Tea command goroutines, so the
// cache is mutex-guarded. Overlapping loads are not fenced: the last
// response to arrive wins.
type Store struct {
	client Client

	mu         sync.RWMutex
	tokens     []Token
	categories []string
	lastErr    error
}

// NewStore creates an empty store backed by the given client.
func NewStore(client Client) *Store {
	return &Store{client: client}
}

// opKind discriminates mutate operations.
type opKind int

const (
	opCreate opKind = iota
	opUpdate
	opDelete
)

// Op is one pending mutation against the remote catalog.
type Op struct {
	kind  opKind
	id    string
	draft Draft
}

// Create builds an op that adds a new token from a draft.
func Create(draft Draft) Op { return Op{kind: opCreate, draft: draft} }

// Update builds an op that rewrites the token with the given id. The id is
// an explicit input: callers must pass the id of the row being edited, not
// rely on any surrounding state.
func Update(id string, draft Draft) Op { return Op{kind: opUpdate, id: id, draft: draft} }

// Delete builds an op that removes the token with the given id.
func Delete(id string) Op { return Op{kind: opDelete, id: id} }

// Load fetches tokens and categories and replaces both wholesale. On any
// failure the previous snapshot is retained and the error is recorded for
// display; Load never propagates a fault to the caller.
func (s *Store) Load(ctx context.Context) {
	tokens, err := s.client.ListTokens(ctx)
	if err != nil {
		s.fail(err)
		return
	}
	categories, err := s.client.ListCategories(ctx)
	if err != nil {
		s.fail(err)
		return
	}

	s.mu.Lock()
	s.tokens = tokens
	s.categories = categories
	s.lastErr = nil
	s.mu.Unlock()
}

// Mutate performs one create/update/delete against the remote service. On
// success the store reloads before returning, so the caller observes the
// post-mutation catalog. On failure the cache is untouched, the error is
// recorded, and the error is returned so the caller can keep its draft open
// for a retry.
//
// Deleting an id the server no longer knows counts as success: the outcome
// the user asked for already holds, and the reload brings the cache in line.
func (s *Store) Mutate(ctx context.Context, op Op) error {
	var err error
	switch op.kind {
	case opCreate:
		_, err = s.client.CreateToken(ctx, op.draft)
	case opUpdate:
		_, err = s.client.UpdateToken(ctx, op.id, op.draft)
	case opDelete:
		err = s.client.DeleteToken(ctx, op.id)
		var nf *NotFoundError
		if errors.As(err, &nf) {
			err = nil
		}
	}

	if err != nil {
		s.fail(err)
		return err
	}

	s.Load(ctx)
	return nil
}

// Import submits a parsed bulk-import document. The caller is responsible
// for triggering the follow-up reload exactly once on completion.
func (s *Store) Import(ctx context.Context, payload any) (ImportResult, error) {
	result, err := s.client.ImportTokens(ctx, payload)
	if err != nil {
		s.fail(err)
		return ImportResult{}, err
	}
	return result, nil
}

func (s *Store) fail(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

// Tokens returns a copy of the cached token list.
func (s *Store) Tokens() []Token {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Token, len(s.tokens))
	copy(out, s.tokens)
	return out
}

// Categories returns a copy of the category set exactly as the server
// reported it, including values no current token uses.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.categories))
	copy(out, s.categories)
	return out
}

// LastError returns the most recent failure, or nil.
func (s *Store) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// ClearError forgets the recorded failure once it has been shown.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.lastErr = nil
	s.mu.Unlock()
}

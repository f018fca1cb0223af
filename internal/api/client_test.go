package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tokdeck/tokdeck/internal/catalog"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "test-token", nil)
}

func TestListTokensEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		if r.URL.Path != "/api/tokens" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"tokens": []catalog.Token{{ID: "1", Name: "Primary Blue", Value: "#1d4ed8", Category: "color"}},
			"total":  1,
		})
	})

	tokens, err := client.ListTokens(context.Background())
	if err != nil {
		t.Fatalf("ListTokens error: %v", err)
	}
	if len(tokens) != 1 || tokens[0].Name != "Primary Blue" {
		t.Errorf("tokens = %v", tokens)
	}
}

func TestListTokensBareArray(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]catalog.Token{
			{ID: "1", Name: "Primary Blue", Category: "color"},
			{ID: "2", Name: "Spacing-sm", Category: "spacing"},
		})
	})

	tokens, err := client.ListTokens(context.Background())
	if err != nil {
		t.Fatalf("ListTokens error: %v", err)
	}
	if len(tokens) != 2 {
		t.Errorf("len(tokens) = %d, want 2", len(tokens))
	}
}

func TestListTokensLimitParam(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "50" {
			t.Errorf("limit = %q, want 50", got)
		}
		json.NewEncoder(w).Encode([]catalog.Token{})
	})
	client.Limit = 50

	if _, err := client.ListTokens(context.Background()); err != nil {
		t.Fatalf("ListTokens error: %v", err)
	}
}

func TestListCategoriesBothShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "envelope", body: `{"categories":["color","spacing"]}`},
		{name: "bare array", body: `["color","spacing"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})
			cats, err := client.ListCategories(context.Background())
			if err != nil {
				t.Fatalf("ListCategories error: %v", err)
			}
			if len(cats) != 2 || cats[0] != "color" {
				t.Errorf("categories = %v", cats)
			}
		})
	}
}

func TestCreateToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		var draft catalog.Draft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			t.Fatalf("decode draft: %v", err)
		}
		json.NewEncoder(w).Encode(catalog.Token{
			ID: "srv-1", Name: draft.Name, Value: draft.Value, Category: draft.Category,
		})
	})

	tok, err := client.CreateToken(context.Background(), catalog.Draft{Name: "Primary Blue", Value: "#1d4ed8", Category: "color"})
	if err != nil {
		t.Fatalf("CreateToken error: %v", err)
	}
	if tok.ID != "srv-1" || tok.Name != "Primary Blue" {
		t.Errorf("token = %+v", tok)
	}
}

func TestUpdateTokenNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/tokens/gone" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		http.Error(w, `{"message":"no such token"}`, http.StatusNotFound)
	})

	_, err := client.UpdateToken(context.Background(), "gone", catalog.Draft{Name: "x", Value: "y"})
	var nf *catalog.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error = %v, want NotFoundError", err)
	}
	if nf.ID != "gone" {
		t.Errorf("NotFoundError.ID = %q", nf.ID)
	}
}

func TestDeleteToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/tokens/1" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := client.DeleteToken(context.Background(), "1"); err != nil {
		t.Errorf("DeleteToken error: %v", err)
	}
}

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(error) bool
	}{
		{
			name: "401 is AuthError", status: http.StatusUnauthorized, body: `{"message":"token expired"}`,
			check: func(err error) bool {
				var e *catalog.AuthError
				return errors.As(err, &e) && e.Message == "token expired"
			},
		},
		{
			name: "404 is NotFoundError", status: http.StatusNotFound,
			check: func(err error) bool {
				var e *catalog.NotFoundError
				return errors.As(err, &e)
			},
		},
		{
			name: "422 is ValidationError", status: http.StatusUnprocessableEntity, body: `{"message":"value is required"}`,
			check: func(err error) bool {
				var e *catalog.ValidationError
				return errors.As(err, &e) && e.Message == "value is required"
			},
		},
		{
			name: "500 is ServerError", status: http.StatusInternalServerError,
			check: func(err error) bool {
				var e *catalog.ServerError
				return errors.As(err, &e) && e.Status == http.StatusInternalServerError
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				if tt.body != "" {
					w.Write([]byte(tt.body))
				}
			})
			_, err := client.CreateToken(context.Background(), catalog.Draft{Name: "a", Value: "b"})
			if err == nil || !tt.check(err) {
				t.Errorf("error = %v, fails taxonomy check", err)
			}
		})
	}
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse all connections

	client := NewClient(server.URL, "test-token", nil)
	_, err := client.ListTokens(context.Background())

	var netErr *catalog.NetworkError
	if !errors.As(err, &netErr) {
		t.Errorf("error = %v, want NetworkError", err)
	}
}

func TestImportTokens(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tokens/import" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var doc map[string]any
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		json.NewEncoder(w).Encode(catalog.ImportResult{
			Created: 2, Updated: 1, Errors: []string{"row 4: missing value"},
		})
	})

	result, err := client.ImportTokens(context.Background(), map[string]any{"tokens": []any{}})
	if err != nil {
		t.Fatalf("ImportTokens error: %v", err)
	}
	if result.Created != 2 || result.Updated != 1 || len(result.Errors) != 1 {
		t.Errorf("result = %+v", result)
	}
}

func TestLogin(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var creds map[string]string
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Fatalf("decode creds: %v", err)
		}
		if creds["username"] != "admin" || creds["password"] != "hunter2" {
			http.Error(w, `{"message":"invalid credentials"}`, http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "issued-token"})
	})

	token, err := client.Login(context.Background(), "admin", "hunter2")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if token != "issued-token" {
		t.Errorf("token = %q", token)
	}

	_, err = client.Login(context.Background(), "admin", "wrong")
	var authErr *catalog.AuthError
	if !errors.As(err, &authErr) || authErr.Message != "invalid credentials" {
		t.Errorf("error = %v, want AuthError with server message", err)
	}
}

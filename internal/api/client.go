package api

// HTTP client for the remote token service. One request per call, no
// retries; every failure comes back as one of the typed errors in
// internal/catalog.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tokdeck/tokdeck/internal/catalog"
	"github.com/tokdeck/tokdeck/internal/logging"
)

const defaultTimeout = 30 * time.Second

// Client talks to the token service with bearer authentication. It is
// stateless apart from its configuration and safe for concurrent use.
type Client struct {
	baseURL string
	token   string

	// Limit caps the server-side token listing when > 0.
	Limit int

	httpc  *http.Client
	logger *logging.Logger
}

// NewClient creates a client for the service at baseURL authenticating with
// the given bearer token. The logger may be nil.
func NewClient(baseURL, token string, logger *logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpc:   &http.Client{Timeout: defaultTimeout},
		logger:  logger,
	}
}

// SetHTTPClient swaps the underlying transport, mainly for tests.
func (c *Client) SetHTTPClient(httpc *http.Client) {
	c.httpc = httpc
}

// SetToken replaces the bearer token, used after an interactive login.
func (c *Client) SetToken(token string) {
	c.token = token
}

// do performs one authenticated JSON round trip and returns the response
// body of a 2xx answer.
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log(method, path, 0, start, err)
		return nil, &catalog.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log(method, path, resp.StatusCode, start, err)
		return nil, &catalog.NetworkError{Err: err}
	}

	c.log(method, path, resp.StatusCode, start, nil)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp.StatusCode, data)
	}
	return data, nil
}

func (c *Client) log(method, path string, status int, start time.Time, err error) {
	if c.logger == nil {
		return
	}
	c.logger.LogRequest(method, path, status, time.Since(start), err)
}

// statusError maps a non-2xx response to the typed taxonomy. The body's
// message field, when present, rides along for display.
func statusError(status int, body []byte) error {
	msg := errorMessage(body)
	switch {
	case status == http.StatusUnauthorized:
		return &catalog.AuthError{Message: msg}
	case status == http.StatusNotFound:
		return &catalog.NotFoundError{}
	case status >= 400 && status < 500:
		return &catalog.ValidationError{Message: msg}
	default:
		return &catalog.ServerError{Status: status, Message: msg}
	}
}

// errorMessage extracts a human-readable complaint from an error body.
func errorMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	if parsed.Message != "" {
		return parsed.Message
	}
	return parsed.Error
}

// ListTokens fetches the full token collection. The service answers either
// an enveloped `{tokens, total}` object or a bare array; both are accepted.
func (c *Client) ListTokens(ctx context.Context) ([]catalog.Token, error) {
	path := "/api/tokens"
	if c.Limit > 0 {
		path += "?limit=" + url.QueryEscape(fmt.Sprintf("%d", c.Limit))
	}
	data, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Tokens []catalog.Token `json:"tokens"`
		Total  int             `json:"total"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Tokens != nil {
		return envelope.Tokens, nil
	}

	var bare []catalog.Token
	if err := json.Unmarshal(data, &bare); err != nil {
		return nil, fmt.Errorf("decode tokens: %w", err)
	}
	return bare, nil
}

// ListCategories fetches the server's dynamic category set, accepting an
// enveloped `{categories}` object or a bare array.
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/categories", nil)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Categories []string `json:"categories"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Categories != nil {
		return envelope.Categories, nil
	}

	var bare []string
	if err := json.Unmarshal(data, &bare); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return bare, nil
}

// CreateToken adds a token; the server assigns the id.
func (c *Client) CreateToken(ctx context.Context, draft catalog.Draft) (catalog.Token, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/tokens", draft)
	if err != nil {
		return catalog.Token{}, err
	}
	var tok catalog.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return catalog.Token{}, fmt.Errorf("decode created token: %w", err)
	}
	return tok, nil
}

// UpdateToken rewrites the editable fields of an existing token.
func (c *Client) UpdateToken(ctx context.Context, id string, draft catalog.Draft) (catalog.Token, error) {
	data, err := c.do(ctx, http.MethodPut, "/api/tokens/"+url.PathEscape(id), draft)
	if err != nil {
		if nf, ok := err.(*catalog.NotFoundError); ok {
			nf.ID = id
		}
		return catalog.Token{}, err
	}
	var tok catalog.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return catalog.Token{}, fmt.Errorf("decode updated token: %w", err)
	}
	return tok, nil
}

// DeleteToken removes a token by id. A 404 is reported as NotFoundError;
// the calling layer decides whether that counts as success.
func (c *Client) DeleteToken(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/tokens/"+url.PathEscape(id), nil)
	if nf, ok := err.(*catalog.NotFoundError); ok {
		nf.ID = id
	}
	return err
}

// ImportTokens submits an already-parsed JSON document for bulk import and
// returns the server's created/updated/errors summary.
func (c *Client) ImportTokens(ctx context.Context, payload any) (catalog.ImportResult, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/tokens/import", payload)
	if err != nil {
		return catalog.ImportResult{}, err
	}
	var result catalog.ImportResult
	if err := json.Unmarshal(data, &result); err != nil {
		return catalog.ImportResult{}, fmt.Errorf("decode import result: %w", err)
	}
	return result, nil
}

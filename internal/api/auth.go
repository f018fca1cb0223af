package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tokdeck/tokdeck/internal/catalog"
)

// Login exchanges credentials for a bearer token. The login call itself is
// unauthenticated, so it works on a zero-token client.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	payload := map[string]string{"username": username, "password": password}
	data, err := c.do(ctx, http.MethodPost, "/api/auth/login", payload)
	if err != nil {
		// A credential rejection arrives as a 4xx whose body message is
		// meant for display; fold it into the auth variant.
		if val, ok := err.(*catalog.ValidationError); ok {
			return "", &catalog.AuthError{Message: val.Message}
		}
		return "", err
	}

	var parsed struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	if parsed.Token == "" {
		return "", fmt.Errorf("login response carried no token")
	}
	return parsed.Token, nil
}

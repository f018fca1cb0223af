// Package session persists the bearer token issued by the token service so a
// login survives across invocations. The token is kept in a single file with
// owner-only permissions.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load returns the saved bearer token, or "" when no session exists.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read session file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the bearer token, creating parent directories as needed. The
// file is created 0600 since the token grants full catalog access.
func Save(path, token string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(token+"\n"), 0600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Clear removes the saved session. A missing file is not an error.
func Clear(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

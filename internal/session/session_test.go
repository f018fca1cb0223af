package session

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	token, err := Load(filepath.Join(t.TempDir(), "none"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if token != "" {
		t.Errorf("token = %q, want empty", token)
	}
}

func TestSaveLoadClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth", "session")

	if err := Save(path, "bearer-abc123"); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat session file: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("session file mode = %o, want 0600", perm)
		}
	}

	token, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if token != "bearer-abc123" {
		t.Errorf("token = %q", token)
	}

	if err := Clear(path); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if token, _ := Load(path); token != "" {
		t.Errorf("token after Clear = %q, want empty", token)
	}

	// Clearing twice is fine.
	if err := Clear(path); err != nil {
		t.Errorf("second Clear error: %v", err)
	}
}

package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"silent", LogLevelSilent},
		{"error", LogLevelError},
		{"info", LogLevelInfo},
		{"VERBOSE", LogLevelVerbose},
		{"debug", LogLevelDebug},
		{"", LogLevelInfo},
		{"bogus", LogLevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestLoggerFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokdeck.log")
	logger, err := NewLogger(LogLevelDebug, path)
	if err != nil {
		t.Fatalf("NewLogger error: %v", err)
	}
	logger.SetQuiet(true)

	logger.Info("hello %s", "catalog")
	logger.Debug("detail")
	logger.LogRequest("GET", "/api/tokens", 200, 12*time.Millisecond, nil)
	if err := logger.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	content := string(data)
	for _, want := range []string{"INFO: hello catalog", "DEBUG: detail", "GET /api/tokens -> 200"} {
		if !strings.Contains(content, want) {
			t.Errorf("log file missing %q\n%s", want, content)
		}
	}
}

func TestLoggerLevelGate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokdeck.log")
	logger, err := NewLogger(LogLevelError, path)
	if err != nil {
		t.Fatalf("NewLogger error: %v", err)
	}
	logger.SetQuiet(true)

	logger.Info("should not appear")
	logger.Error("should appear")
	logger.Close()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "should not appear") {
		t.Error("info message logged at error level")
	}
	if !strings.Contains(string(data), "ERROR: should appear") {
		t.Error("error message missing")
	}
}

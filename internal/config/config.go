package config

// Configuration loading and validation for tokdeck

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the client configuration.
type Config struct {
	// Server is the base URL of the token service, e.g. http://localhost:4000.
	Server string `yaml:"server"`

	// SessionFile is where the bearer token from `tokdeck login` is kept.
	SessionFile string `yaml:"session_file,omitempty"`

	// LogFile receives leveled log output; empty means terminal only.
	LogFile string `yaml:"log_file,omitempty"`

	// LogLevel is one of silent|error|info|verbose|debug.
	LogLevel string `yaml:"log_level,omitempty"`

	// ListLimit caps the server-side token listing when > 0.
	ListLimit int `yaml:"list_limit,omitempty"`
}

// DefaultConfigPath is where LoadConfig looks when no --config is given.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "tokdeck.yaml"
	}
	return filepath.Join(home, ".config", "tokdeck", "config.yaml")
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	cfg := &Config{
		Server:   "http://localhost:4000",
		LogLevel: "info",
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.SessionFile = filepath.Join(home, ".config", "tokdeck", "session")
	} else {
		cfg.SessionFile = ".tokdeck-session"
	}
	return cfg
}

// LoadConfig reads a YAML config file, fills unset fields from the defaults,
// and applies environment overrides. A missing file is not an error: the
// defaults apply.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TOKDECK_SERVER"); v != "" {
		cfg.Server = v
	}
	if v := os.Getenv("TOKDECK_SESSION_FILE"); v != "" {
		cfg.SessionFile = v
	}
	if v := os.Getenv("TOKDECK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

// Validate checks the configuration for usability.
func (c *Config) Validate() error {
	if c.Server == "" {
		return fmt.Errorf("config: server URL is required")
	}
	parsed, err := url.Parse(c.Server)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: server %q is not a valid URL", c.Server)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("config: server scheme %q is not http or https", parsed.Scheme)
	}
	if c.SessionFile == "" {
		return fmt.Errorf("config: session_file is required")
	}
	if c.ListLimit < 0 {
		return fmt.Errorf("config: list_limit must not be negative")
	}
	return nil
}

// Save writes the configuration back to the given path, creating parent
// directories as needed.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

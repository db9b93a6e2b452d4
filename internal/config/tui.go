package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/rezkam/todos/internal/env"
)

// Terminal client defaults.
const (
	DefaultServerURL      = "http://localhost:8081"
	DefaultDebounce       = 300 * time.Millisecond
	DefaultRequestTimeout = 10 * time.Second
)

// TUIConfig holds configuration for the terminal client.
// Values come from the TOML file first, then TODOS_TUI_* environment variables.
type TUIConfig struct {
	ServerURL      string        `toml:"server_url" env:"TODOS_TUI_SERVER_URL"`
	Debounce       time.Duration `toml:"debounce" env:"TODOS_TUI_DEBOUNCE"`
	RequestTimeout time.Duration `toml:"request_timeout" env:"TODOS_TUI_REQUEST_TIMEOUT"`
	LogFile        string        `toml:"log_file" env:"TODOS_TUI_LOG_FILE"`
}

// Validate checks the client can reach a well-formed server URL.
func (c *TUIConfig) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return fmt.Errorf("invalid server_url %q: %w", c.ServerURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid server_url %q: scheme must be http or https", c.ServerURL)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("debounce must not be negative, got %s", c.Debounce)
	}
	return nil
}

// DefaultTUIConfigDir returns the directory holding the client's config and log.
func DefaultTUIConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "todos")
}

// DefaultTUIConfigPath returns the default location of the TOML config file.
func DefaultTUIConfigPath() string {
	return filepath.Join(DefaultTUIConfigDir(), "config.toml")
}

func defaultTUIConfig() *TUIConfig {
	return &TUIConfig{
		ServerURL:      DefaultServerURL,
		Debounce:       DefaultDebounce,
		RequestTimeout: DefaultRequestTimeout,
		LogFile:        filepath.Join(DefaultTUIConfigDir(), "tui.log"),
	}
}

// LoadTUIConfig loads the terminal client configuration.
// A missing file is not an error; defaults and environment still apply.
func LoadTUIConfig(path string) (*TUIConfig, error) {
	cfg := defaultTUIConfig()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load tui config: %w", err)
	}

	return cfg, nil
}

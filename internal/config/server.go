package config

import (
	"fmt"
	"time"

	"github.com/rezkam/todos/internal/env"
)

// ServerConfig holds all configuration for the server binary.
type ServerConfig struct {
	Storage         StorageConfig
	HTTP            HTTPConfig
	Todo            TodoConfig
	Observability   ObservabilityConfig
	UI              UIConfig
	ShutdownTimeout time.Duration `env:"TODOS_SHUTDOWN_TIMEOUT"`
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Host              string        `env:"TODOS_HTTP_HOST"`
	Port              string        `env:"TODOS_HTTP_PORT"`
	ReadTimeout       time.Duration `env:"TODOS_HTTP_READ_TIMEOUT"`
	WriteTimeout      time.Duration `env:"TODOS_HTTP_WRITE_TIMEOUT"`
	IdleTimeout       time.Duration `env:"TODOS_HTTP_IDLE_TIMEOUT"`
	ReadHeaderTimeout time.Duration `env:"TODOS_HTTP_READ_HEADER_TIMEOUT"`
	MaxHeaderBytes    int           `env:"TODOS_HTTP_MAX_HEADER_BYTES"`
	MaxBodyBytes      int64         `env:"TODOS_HTTP_MAX_BODY_BYTES"`
}

// TodoConfig holds todo service configuration.
type TodoConfig struct {
	DefaultPageSize int  `env:"TODOS_DEFAULT_PAGE_SIZE"`
	MaxPageSize     int  `env:"TODOS_MAX_PAGE_SIZE"`
	SanitizeHTML    bool `env:"TODOS_SANITIZE_HTML"`
}

// UIConfig holds browser UI configuration.
type UIConfig struct {
	SearchDebounce time.Duration `env:"TODOS_UI_SEARCH_DEBOUNCE"`
}

// Validate validates pagination configuration. Zero values fall back to service defaults.
func (c *TodoConfig) Validate() error {
	if c.DefaultPageSize < 0 || c.MaxPageSize < 0 {
		return fmt.Errorf("page sizes must not be negative (default %d, max %d)", c.DefaultPageSize, c.MaxPageSize)
	}
	if c.DefaultPageSize > 0 && c.MaxPageSize > 0 && c.MaxPageSize < c.DefaultPageSize {
		return fmt.Errorf("TODOS_MAX_PAGE_SIZE (%d) must be >= TODOS_DEFAULT_PAGE_SIZE (%d)", c.MaxPageSize, c.DefaultPageSize)
	}
	return nil
}

// LoadServerConfig loads and validates server configuration from environment.
func LoadServerConfig() (*ServerConfig, error) {
	cfg := &ServerConfig{}

	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}

	return cfg, nil
}

package config

import (
	"fmt"

	"github.com/rezkam/todos/internal/env"
)

// TestConfig holds configuration for integration tests against external stores.
// Every field is optional; tests for a store skip when its setting is empty.
type TestConfig struct {
	MongoURI  string `env:"TODOS_TEST_MONGO_URI"`
	DBDSN     string `env:"TODOS_TEST_DB_DSN"`
	GCSBucket string `env:"TODOS_TEST_GCS_BUCKET"`
}

// LoadTestConfig loads test configuration from environment.
func LoadTestConfig() (*TestConfig, error) {
	cfg := &TestConfig{}

	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load test config: %w", err)
	}

	return cfg, nil
}

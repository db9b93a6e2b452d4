package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rezkam/todos/internal/application/todo"
	"github.com/rezkam/todos/internal/config"
	"github.com/rezkam/todos/internal/infrastructure/persistence/compliance"
	"github.com/rezkam/todos/internal/infrastructure/persistence/postgres"
)

func TestPostgresStore_Compliance(t *testing.T) {
	cfg, err := config.LoadTestConfig()
	require.NoError(t, err)
	if cfg.DBDSN == "" {
		t.Skip("TODOS_TEST_DB_DSN not set, skipping PostgreSQL tests")
	}

	ctx := context.Background()
	store, err := postgres.NewStoreWithConfig(ctx, postgres.DBConfig{DSN: cfg.DBDSN})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	compliance.RunRepositoryComplianceTest(t, func() (todo.Repository, func()) {
		_, err := store.Pool().Exec(ctx, "TRUNCATE TABLE todos")
		require.NoError(t, err)
		return store, func() {}
	})
}

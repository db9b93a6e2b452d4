package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/todos/internal/application/todo"
	"github.com/rezkam/todos/internal/domain"
	"github.com/rezkam/todos/internal/infrastructure/persistence/compliance"
)

func TestSQLiteStore_Compliance(t *testing.T) {
	compliance.RunRepositoryComplianceTest(t, func() (todo.Repository, func()) {
		store, err := NewStore(context.Background(), ":memory:")
		require.NoError(t, err)

		return store, func() { _ = store.Close() }
	})
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "todos.db")

	store, err := NewStore(ctx, path)
	require.NoError(t, err)
	created, err := store.CreateTodo(ctx, &domain.Todo{Title: "durable", CreatedAt: domain.NewCreatedAt()})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewStore(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	result, err := reopened.FindTodos(ctx, domain.ListTodosParams{})
	require.NoError(t, err)
	require.Len(t, result.Todos, 1)
	assert.Equal(t, created.ID, result.Todos[0].ID)
	assert.True(t, created.CreatedAt.Equal(result.Todos[0].CreatedAt))
}

func TestSQLiteStore_SearchFoldsUnicode(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(ctx, ":memory:")
	require.NoError(t, err)
	defer store.Close()

	created, err := store.CreateTodo(ctx, &domain.Todo{Title: "ÜBUNG machen", CreatedAt: domain.NewCreatedAt()})
	require.NoError(t, err)

	result, err := store.FindTodos(ctx, domain.ListTodosParams{Search: "übung"})
	require.NoError(t, err)
	require.Len(t, result.Todos, 1)
	assert.Equal(t, created.ID, result.Todos[0].ID)
}

func TestNewStore_RequiresPath(t *testing.T) {
	_, err := NewStore(context.Background(), "")
	assert.Error(t, err)
}

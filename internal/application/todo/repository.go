package todo

import (
	"context"

	"github.com/rezkam/todos/internal/domain"
)

// Repository defines storage operations for todo management.
// Create/update operations return the entity as persisted, including the store-assigned ID.
type Repository interface {
	// FindTodos retrieves todos matching params, ordered by CreatedAt descending.
	// Search is a case-insensitive substring over title OR description and must be
	// escaped for the store's query language.
	FindTodos(ctx context.Context, params domain.ListTodosParams) (*domain.PagedResult, error)

	// CreateTodo persists a new todo. ID is assigned by the store;
	// CreatedAt is taken from the argument.
	CreateTodo(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)

	// UpdateTodo replaces title and description.
	// Returns domain.ErrTodoNotFound if the todo doesn't exist or the ID is malformed.
	UpdateTodo(ctx context.Context, params domain.UpdateTodoParams) (*domain.Todo, error)

	// DeleteTodo removes a todo permanently.
	// Returns domain.ErrTodoNotFound if the todo doesn't exist or the ID is malformed.
	DeleteTodo(ctx context.Context, id string) error
}

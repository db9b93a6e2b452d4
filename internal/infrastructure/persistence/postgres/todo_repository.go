package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rezkam/todos/internal/domain"
)

// checkRowsAffected validates that an UPDATE/DELETE operation affected exactly one row.
// Returns domain.ErrTodoNotFound if rowsAffected == 0, indicating the record doesn't exist.
func checkRowsAffected(rowsAffected int64, entityID string) error {
	if rowsAffected == 0 {
		return fmt.Errorf("%w: todo %s", domain.ErrTodoNotFound, entityID)
	}
	return nil
}

// searchClause returns the WHERE fragment and its argument for a search term.
// The same placeholder is used for both columns.
func searchClause(search string, argPos int) (string, []any) {
	if search == "" {
		return "", nil
	}
	clause := fmt.Sprintf(" WHERE title ILIKE $%d OR description ILIKE $%d", argPos, argPos)
	return clause, []any{containsPattern(search)}
}

// FindTodos retrieves todos matching params, newest first.
func (s *Store) FindTodos(ctx context.Context, params domain.ListTodosParams) (*domain.PagedResult, error) {
	where, args := searchClause(params.Search, 1)

	var query strings.Builder
	query.WriteString("SELECT id, title, description, created_at FROM todos")
	query.WriteString(where)
	query.WriteString(" ORDER BY created_at DESC, id DESC")
	if params.Paginated() {
		fmt.Fprintf(&query, " LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, params.Limit, max(params.Offset, 0))
	}

	rows, err := s.pool.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query todos: %w", err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByPos[todoRow])
	if err != nil {
		return nil, fmt.Errorf("failed to scan todos: %w", err)
	}

	result := &domain.PagedResult{Todos: make([]*domain.Todo, 0, len(records))}
	for _, r := range records {
		result.Todos = append(result.Todos, r.toDomain())
	}

	if params.CountTotal {
		countWhere, countArgs := searchClause(params.Search, 1)
		if err := s.pool.QueryRow(ctx, "SELECT count(*) FROM todos"+countWhere, countArgs...).Scan(&result.TotalCount); err != nil {
			return nil, fmt.Errorf("failed to count todos: %w", err)
		}
	}

	return result, nil
}

// CreateTodo inserts a new todo with a time-ordered UUID.
func (s *Store) CreateTodo(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate id: %w", err)
	}

	row := s.pool.QueryRow(ctx,
		`INSERT INTO todos (id, title, description, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, title, description, created_at`,
		uuidToPgtype(id), todo.Title, todo.Description, timeToPgtype(todo.CreatedAt),
	)

	var r todoRow
	if err := row.Scan(&r.ID, &r.Title, &r.Description, &r.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert todo: %w", err)
	}

	return r.toDomain(), nil
}

// UpdateTodo replaces title and description, leaving created_at untouched.
func (s *Store) UpdateTodo(ctx context.Context, params domain.UpdateTodoParams) (*domain.Todo, error) {
	id, err := parseTodoID(params.ID)
	if err != nil {
		return nil, err
	}

	row := s.pool.QueryRow(ctx,
		`UPDATE todos SET title = $2, description = $3
		 WHERE id = $1
		 RETURNING id, title, description, created_at`,
		uuidToPgtype(id), params.Title, params.Description,
	)

	var r todoRow
	if err := row.Scan(&r.ID, &r.Title, &r.Description, &r.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: todo %s", domain.ErrTodoNotFound, params.ID)
		}
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	return r.toDomain(), nil
}

// DeleteTodo hard-deletes a todo.
func (s *Store) DeleteTodo(ctx context.Context, id string) error {
	parsed, err := parseTodoID(id)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx, "DELETE FROM todos WHERE id = $1", uuidToPgtype(parsed))
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	return checkRowsAffected(tag.RowsAffected(), id)
}

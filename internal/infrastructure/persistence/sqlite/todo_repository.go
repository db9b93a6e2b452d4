package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rezkam/todos/internal/domain"
)

const selectColumns = "SELECT id, title, description, created_at FROM todos"

// parseTodoID rejects IDs that could never have been issued by CreateTodo.
func parseTodoID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: %w: %w", domain.ErrTodoNotFound, domain.ErrInvalidID, err)
	}
	return parsed.String(), nil
}

func searchClause(search string) (string, []any) {
	if search == "" {
		return "", nil
	}
	clause := fmt.Sprintf(" WHERE %[1]s(title, ?1) OR %[1]s(description, ?1)", containsFunc)
	return clause, []any{search}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(row scanner) (*domain.Todo, error) {
	var (
		t         domain.Todo
		createdMs int64
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &createdMs); err != nil {
		return nil, err
	}
	t.CreatedAt = time.UnixMilli(createdMs).UTC()
	return &t, nil
}

// FindTodos retrieves todos matching params, newest first.
func (s *Store) FindTodos(ctx context.Context, params domain.ListTodosParams) (*domain.PagedResult, error) {
	where, args := searchClause(params.Search)

	query := selectColumns + where + " ORDER BY created_at DESC, id DESC"
	if params.Paginated() {
		query += fmt.Sprintf(" LIMIT ?%d OFFSET ?%d", len(args)+1, len(args)+2)
		args = append(args, params.Limit, max(params.Offset, 0))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query todos: %w", err)
	}
	defer rows.Close()

	result := &domain.PagedResult{Todos: []*domain.Todo{}}
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		result.Todos = append(result.Todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate todos: %w", err)
	}

	if params.CountTotal {
		countWhere, countArgs := searchClause(params.Search)
		if err := s.db.QueryRowContext(ctx, "SELECT count(*) FROM todos"+countWhere, countArgs...).Scan(&result.TotalCount); err != nil {
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

	created := &domain.Todo{
		ID:          id.String(),
		Title:       todo.Title,
		Description: todo.Description,
		CreatedAt:   todo.CreatedAt.UTC().Truncate(domain.CreatedAtPrecision),
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO todos (id, title, description, created_at) VALUES (?, ?, ?, ?)",
		created.ID, created.Title, created.Description, created.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert todo: %w", err)
	}

	return created, nil
}

// UpdateTodo replaces title and description, leaving created_at untouched.
func (s *Store) UpdateTodo(ctx context.Context, params domain.UpdateTodoParams) (*domain.Todo, error) {
	id, err := parseTodoID(params.ID)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`UPDATE todos SET title = ?, description = ? WHERE id = ?
		 RETURNING id, title, description, created_at`,
		params.Title, params.Description, id,
	)

	updated, err := scanTodo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: todo %s", domain.ErrTodoNotFound, params.ID)
		}
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	return updated, nil
}

// DeleteTodo hard-deletes a todo.
func (s *Store) DeleteTodo(ctx context.Context, id string) error {
	parsed, err := parseTodoID(id)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, "DELETE FROM todos WHERE id = ?", parsed)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: todo %s", domain.ErrTodoNotFound, id)
	}
	return nil
}

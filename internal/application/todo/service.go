package todo

import (
	"context"
	"fmt"

	"github.com/microcosm-cc/bluemonday"

	"github.com/rezkam/todos/internal/domain"
	"github.com/rezkam/todos/internal/ptr"
)

// DefaultPageSize is used when a paginated request has no usable limit.
const DefaultPageSize = 25

// Config holds configuration for the Service.
type Config struct {
	DefaultPageSize int

	// MaxPageSize caps the requested limit. Zero means no cap, so
	// page=N&limit=L always addresses offsets (N-1)*L to N*L-1.
	MaxPageSize int

	// SanitizeHTML passes descriptions through a user-generated-content
	// policy before they are stored. Off keeps descriptions opaque.
	SanitizeHTML bool
}

// Page selects a window of a listing. Number is 1-based.
type Page struct {
	Number int
	Size   int
}

// ListResult is the outcome of ListTodos.
// Total is set only for paginated requests.
type ListResult struct {
	Todos []*domain.Todo
	Total *int
}

// sanitizer is satisfied by *bluemonday.Policy.
type sanitizer interface {
	Sanitize(s string) string
}

// Service provides business logic for todo management.
// It owns query construction and pagination; the Repository only executes.
type Service struct {
	repo      Repository
	sanitizer sanitizer
	config    Config
}

// NewService creates a new todo service.
// Applies application defaults for zero or invalid config values.
func NewService(repo Repository, config Config) *Service {
	if config.DefaultPageSize <= 0 {
		config.DefaultPageSize = DefaultPageSize
	}
	if config.MaxPageSize < 0 {
		config.MaxPageSize = 0
	}
	if config.MaxPageSize > 0 && config.DefaultPageSize > config.MaxPageSize {
		config.DefaultPageSize = config.MaxPageSize
	}

	s := &Service{
		repo:   repo,
		config: config,
	}
	if config.SanitizeHTML {
		s.sanitizer = bluemonday.UGCPolicy()
	}
	return s
}

// ListTodos returns todos matching search, newest first.
// With a nil page every match is returned and Total is nil. With a page,
// at most page.Size todos from offset (page.Number-1)*page.Size are returned
// together with the number of matches overall.
func (s *Service) ListTodos(ctx context.Context, search string, page *Page) (*ListResult, error) {
	params := domain.ListTodosParams{Search: search}
	if page != nil {
		p := s.normalizePage(*page)
		params.Limit = p.Size
		params.Offset = (p.Number - 1) * p.Size
		params.CountTotal = true
	}

	result, err := s.repo.FindTodos(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to find todos: %w", err)
	}

	out := &ListResult{Todos: result.Todos}
	if out.Todos == nil {
		out.Todos = []*domain.Todo{}
	}
	if page != nil {
		out.Total = ptr.To(result.TotalCount)
	}
	return out, nil
}

// normalizePage clamps a requested page into the configured bounds.
func (s *Service) normalizePage(p Page) Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = s.config.DefaultPageSize
	}
	if s.config.MaxPageSize > 0 && p.Size > s.config.MaxPageSize {
		p.Size = s.config.MaxPageSize
	}
	return p
}

// CreateTodo stores a new todo stamped with the current time.
// Empty title and description are accepted.
func (s *Service) CreateTodo(ctx context.Context, title, description string) (*domain.Todo, error) {
	todo := &domain.Todo{
		Title:       title,
		Description: s.sanitize(description),
		CreatedAt:   domain.NewCreatedAt(),
	}

	created, err := s.repo.CreateTodo(ctx, todo)
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	return created, nil
}

// UpdateTodo replaces both title and description of an existing todo.
func (s *Service) UpdateTodo(ctx context.Context, id, title, description string) (*domain.Todo, error) {
	params := domain.UpdateTodoParams{
		ID:          id,
		Title:       title,
		Description: s.sanitize(description),
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateTodo(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	return updated, nil
}

// DeleteTodo permanently removes a todo.
func (s *Service) DeleteTodo(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrTodoNotFound
	}

	if err := s.repo.DeleteTodo(ctx, id); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	return nil
}

func (s *Service) sanitize(description string) string {
	if s.sanitizer == nil {
		return description
	}
	return s.sanitizer.Sanitize(description)
}

package handler

import (
	"time"

	"github.com/rezkam/todos/internal/domain"
)

// CreatedAtLayout is the wire format of createdAt: UTC with millisecond
// precision, the same shape as a JavaScript Date's toISOString().
const CreatedAtLayout = "2006-01-02T15:04:05.000Z07:00"

// TodoDTO is the JSON representation of a todo.
type TodoDTO struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
}

// TodoRequest is the body of create and update requests.
// Missing fields decode as empty strings.
type TodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ListTodosResponse is the body of GET /todos.
// Total is only present for paginated requests.
type ListTodosResponse struct {
	Todos []TodoDTO `json:"todos"`
	Total *int      `json:"total,omitempty"`
}

// MapTodoToDTO converts a domain todo to its wire form.
func MapTodoToDTO(t *domain.Todo) TodoDTO {
	return TodoDTO{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		CreatedAt:   FormatCreatedAt(t.CreatedAt),
	}
}

// MapTodosToDTO converts a slice of todos, never returning nil so the
// response always carries a JSON array.
func MapTodosToDTO(todos []*domain.Todo) []TodoDTO {
	out := make([]TodoDTO, 0, len(todos))
	for _, t := range todos {
		out = append(out, MapTodoToDTO(t))
	}
	return out
}

// FormatCreatedAt renders a creation timestamp in the wire format.
func FormatCreatedAt(t time.Time) string {
	return t.UTC().Format(CreatedAtLayout)
}

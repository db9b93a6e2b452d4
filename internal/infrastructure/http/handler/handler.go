package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rezkam/todos/internal/application/todo"
	mw "github.com/rezkam/todos/internal/infrastructure/http/middleware"
)

// TodoHandler adapts HTTP requests to todo service calls.
type TodoHandler struct {
	todoService *todo.Service
}

// NewTodoHandler creates a new HTTP API handler.
func NewTodoHandler(todoService *todo.Service) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
	}
}

// NewRouter creates the todo resource router with request body validation.
// It is meant to be mounted at /todos. Both production code and tests
// should use this function to ensure identical behavior.
func NewRouter(todoService *todo.Service) (http.Handler, error) {
	h := NewTodoHandler(todoService)

	validator, err := mw.NewTodoBodyValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create request validator: %w", err)
	}

	r := chi.NewRouter()
	r.Get("/", h.ListTodos)
	r.With(validator).Post("/", h.CreateTodo)
	r.With(validator).Patch("/{id}", h.UpdateTodo)
	r.Delete("/{id}", h.DeleteTodo)

	return r, nil
}

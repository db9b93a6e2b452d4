package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rezkam/todos/internal/infrastructure/http/response"
)

// ListTodos handles GET /todos?search=&page=&limit=
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	search := query.Get("search")
	page := parsePage(query)

	result, err := h.todoService.ListTodos(r.Context(), search, page)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list todos via HTTP",
			"search", search,
			"paginated", page != nil,
			"error", err)
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, r, ListTodosResponse{
		Todos: MapTodosToDTO(result.Todos),
		Total: result.Total,
	})
}

// CreateTodo handles POST /todos
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var req TodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, response.MsgInvalidJSON)
		return
	}

	created, err := h.todoService.CreateTodo(r.Context(), req.Title, req.Description)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to create todo via HTTP", "error", err)
		response.FromDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "todo created via HTTP", "todo_id", created.ID)

	response.Created(w, r, MapTodoToDTO(created))
}

// UpdateTodo handles PATCH /todos/{id}
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req TodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, response.MsgInvalidJSON)
		return
	}

	updated, err := h.todoService.UpdateTodo(r.Context(), id, req.Title, req.Description)
	if err != nil {
		slog.WarnContext(r.Context(), "failed to update todo via HTTP",
			"todo_id", id,
			"error", err)
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, r, MapTodoToDTO(updated))
}

// DeleteTodo handles DELETE /todos/{id}
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.todoService.DeleteTodo(r.Context(), id); err != nil {
		slog.WarnContext(r.Context(), "failed to delete todo via HTTP",
			"todo_id", id,
			"error", err)
		response.FromDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "todo deleted via HTTP", "todo_id", id)

	response.Message(w, r, response.MsgTodoDeleted)
}

// Package response writes the JSON bodies of the todo API.
package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/rezkam/todos/internal/domain"
)

// Client-facing error messages.
const (
	MsgTodoNotFound  = "Todo not found"
	MsgInternalError = "Internal Server Error"
	MsgInvalidJSON   = "Invalid JSON"
	MsgInvalidBody   = "Invalid request body"
	MsgBodyTooLarge  = "Request body too large"
	MsgTodoDeleted   = "Todo deleted successfully"
)

// PayloadTooLargeJSON is the pre-marshaled 413 body, for writers that must
// respond before any handler runs.
const PayloadTooLargeJSON = `{"error":"Request body too large"}`

// ErrorResponse is the error body format: {"error": "<message>"}.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error sends an error response with the given status.
func Error(w http.ResponseWriter, r *http.Request, status int, message string) {
	JSON(w, r, status, ErrorResponse{Error: message})
}

// BadRequest sends a 400 Bad Request error.
func BadRequest(w http.ResponseWriter, r *http.Request, message string) {
	Error(w, r, http.StatusBadRequest, message)
}

// NotFound sends the 404 for a missing todo.
func NotFound(w http.ResponseWriter, r *http.Request) {
	Error(w, r, http.StatusNotFound, MsgTodoNotFound)
}

// PayloadTooLarge sends a 413 Request Entity Too Large error.
func PayloadTooLarge(w http.ResponseWriter, r *http.Request) {
	write(w, r, http.StatusRequestEntityTooLarge, []byte(PayloadTooLargeJSON))
}

// InternalError sends a 500 Internal Server Error.
// The error is logged server-side with request context; the client only sees a generic message.
func InternalError(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		slog.ErrorContext(r.Context(), "Internal server error",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
	}
	write(w, r, http.StatusInternalServerError, []byte(internalErrorJSON))
}

// FromDomainError maps domain errors to HTTP responses.
func FromDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrTodoNotFound), errors.Is(err, domain.ErrInvalidID):
		NotFound(w, r)
	default:
		InternalError(w, r, err)
	}
}

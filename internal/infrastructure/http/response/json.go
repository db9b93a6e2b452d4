package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// internalErrorJSON is written when a response cannot be encoded.
// It is pre-marshaled so the fallback itself cannot fail to encode.
const internalErrorJSON = `{"error":"Internal Server Error"}`

// JSON marshals data and writes it with the given status. Marshaling happens
// before any header is written, so an unencodable value yields a 500 instead
// of a success status with a truncated body.
func JSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to encode response", "error", err)
		write(w, r, http.StatusInternalServerError, []byte(internalErrorJSON))
		return
	}
	write(w, r, status, body)
}

// OK sends a 200 OK response with JSON data.
func OK(w http.ResponseWriter, r *http.Request, data any) {
	JSON(w, r, http.StatusOK, data)
}

// Created sends a 201 Created response with JSON data.
func Created(w http.ResponseWriter, r *http.Request, data any) {
	JSON(w, r, http.StatusCreated, data)
}

// MessageResponse is the body of a successful operation with nothing to return.
type MessageResponse struct {
	Message string `json:"message"`
}

// Message sends a 200 OK response with a {"message": ...} body.
func Message(w http.ResponseWriter, r *http.Request, message string) {
	OK(w, r, MessageResponse{Message: message})
}

func write(w http.ResponseWriter, r *http.Request, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		slog.ErrorContext(r.Context(), "Failed to write response", "error", err)
	}
}

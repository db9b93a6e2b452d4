package response_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/todos/internal/domain"
	"github.com/rezkam/todos/internal/infrastructure/http/response"
)

// unencodableType fails during JSON encoding, like a value with a custom
// MarshalJSON that errors.
type unencodableType struct{}

func (unencodableType) MarshalJSON() ([]byte, error) {
	return nil, errors.New("cannot encode")
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "body: %s", w.Body.String())
	return body.Error
}

func TestSuccessResponses(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	t.Run("OK", func(t *testing.T) {
		w := httptest.NewRecorder()
		response.OK(w, r, map[string]string{"id": "123"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"id":"123"}`, w.Body.String())
	})

	t.Run("Created", func(t *testing.T) {
		w := httptest.NewRecorder()
		response.Created(w, r, map[string]string{"id": "new"})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"id":"new"}`, w.Body.String())
	})

	t.Run("Message", func(t *testing.T) {
		w := httptest.NewRecorder()
		response.Message(w, r, response.MsgTodoDeleted)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Todo deleted successfully"}`, w.Body.String())
	})
}

func TestEncodingFailure_Returns500WithErrorJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	for name, send := range map[string]func(http.ResponseWriter){
		"OK":      func(w http.ResponseWriter) { response.OK(w, r, unencodableType{}) },
		"Created": func(w http.ResponseWriter) { response.Created(w, r, unencodableType{}) },
	} {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			send(w)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, response.MsgInternalError, decodeError(t, w))
		})
	}
}

func TestErrorResponses(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/todos", nil)

	tests := []struct {
		name    string
		send    func(http.ResponseWriter)
		status  int
		message string
	}{
		{"bad request", func(w http.ResponseWriter) { response.BadRequest(w, r, response.MsgInvalidJSON) }, http.StatusBadRequest, "Invalid JSON"},
		{"not found", func(w http.ResponseWriter) { response.NotFound(w, r) }, http.StatusNotFound, "Todo not found"},
		{"too large", func(w http.ResponseWriter) { response.PayloadTooLarge(w, r) }, http.StatusRequestEntityTooLarge, "Request body too large"},
		{"internal", func(w http.ResponseWriter) { response.InternalError(w, r, errors.New("db down")) }, http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.send(w)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.message, decodeError(t, w))
		})
	}
}

func TestInternalError_DoesNotLeakDetails(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/todos", nil)
	w := httptest.NewRecorder()

	response.InternalError(w, r, errors.New("password=hunter2 host=db"))

	assert.NotContains(t, w.Body.String(), "hunter2")
}

func TestFromDomainError(t *testing.T) {
	r := httptest.NewRequest(http.MethodPatch, "/todos/x", nil)

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", fmt.Errorf("%w: todo 1", domain.ErrTodoNotFound), http.StatusNotFound},
		{"invalid id", fmt.Errorf("parse: %w", domain.ErrInvalidID), http.StatusNotFound},
		{"wrapped twice", fmt.Errorf("failed to update todo: %w", fmt.Errorf("%w: x", domain.ErrTodoNotFound)), http.StatusNotFound},
		{"unknown", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			response.FromDomainError(w, r, tt.err)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

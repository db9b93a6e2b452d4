package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/todos/internal/richtext"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestIndex_RendersToolbarFromCommandTable(t *testing.T) {
	h, err := NewHandler(Config{})
	require.NoError(t, err)

	w := get(t, h, "/")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	body := w.Body.String()
	for _, spec := range richtext.Commands {
		assert.Contains(t, body, `data-command="`+string(spec.Command)+`"`)
	}
	assert.Contains(t, body, `data-command="bold" data-stateful="true"`)
	assert.NotContains(t, body, `data-command="justifyLeft" data-stateful`)
	assert.Contains(t, body, `<option value="16px" selected>`)
	assert.Contains(t, body, `data-debounce-ms="300"`)
}

func TestIndex_CustomDebounce(t *testing.T) {
	h, err := NewHandler(Config{Debounce: 750 * time.Millisecond})
	require.NoError(t, err)

	assert.Contains(t, get(t, h, "/").Body.String(), `data-debounce-ms="750"`)
}

func TestStaticAssets(t *testing.T) {
	h, err := NewHandler(Config{})
	require.NoError(t, err)

	js := get(t, h, "/static/app.js")
	require.Equal(t, http.StatusOK, js.Code)
	assert.Contains(t, js.Body.String(), "document.execCommand")
	assert.Contains(t, js.Body.String(), "queryCommandState")
	assert.Contains(t, js.Body.String(), "listChanged(todo._id)", "deleting closes the deleted todo's editor")

	css := get(t, h, "/static/style.css")
	assert.Equal(t, http.StatusOK, css.Code)

	assert.Equal(t, http.StatusNotFound, get(t, h, "/static/missing.js").Code)
}

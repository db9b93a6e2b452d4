// Package web serves the browser UI: a single page with the todo list,
// the detail editor and its formatting toolbar. The page talks to the
// JSON API at /todos.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rezkam/todos/internal/richtext"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.tmpl"))

// DefaultDebounce is the quiet period before the search box fetches.
const DefaultDebounce = 300 * time.Millisecond

// Config holds browser UI settings.
type Config struct {
	Debounce time.Duration
}

type pageData struct {
	Toolbar         [][]richtext.Spec
	FontSizes       []string
	DefaultFontSize string
	DebounceMillis  int64
}

// NewHandler returns the UI router. The index page is rendered once,
// since nothing on it depends on the request.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	var page bytes.Buffer
	err := indexTemplate.Execute(&page, pageData{
		Toolbar:         richtext.Grouped(),
		FontSizes:       richtext.FontSizes,
		DefaultFontSize: richtext.DefaultFontSize,
		DebounceMillis:  cfg.Debounce.Milliseconds(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render index page: %w", err)
	}

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to open static assets: %w", err)
	}

	r := chi.NewRouter()
	r.Get("/", indexHandler(page.Bytes()))
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	return r, nil
}

func indexHandler(body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(body); err != nil {
			slog.ErrorContext(r.Context(), "Failed to write index page", "error", err)
		}
	}
}

package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_EnforcesMaxHeaderBytes(t *testing.T) {
	// net/http allows about 4KB on top of MaxHeaderBytes.
	srv := NewServer(http.NotFoundHandler(), nil, Config{MaxHeaderBytes: 4 * 1024})

	ts := httptest.NewUnstartedServer(nil)
	ts.Config = srv.srv
	ts.Start()
	defer ts.Close()

	get := func(headerSize int) (*http.Response, error) {
		req, err := http.NewRequest(http.MethodGet, ts.URL+"/health", nil)
		require.NoError(t, err)
		req.Header.Set("X-Test", strings.Repeat("A", headerSize))
		return http.DefaultClient.Do(req)
	}

	t.Run("accepts request within limit", func(t *testing.T) {
		resp, err := get(2 * 1024)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("rejects request exceeding limit", func(t *testing.T) {
		resp, err := get(20 * 1024)
		if err != nil {
			// a dropped connection is also a rejection
			return
		}
		defer resp.Body.Close()

		assert.Equal(t, http.StatusRequestHeaderFieldsTooLarge, resp.StatusCode)
	})
}

func TestConfig_ApplyDefaults(t *testing.T) {
	t.Run("applies all defaults for zero config", func(t *testing.T) {
		cfg := Config{}
		cfg.applyDefaults()

		assert.Equal(t, DefaultPort, cfg.Port)
		assert.Equal(t, DefaultReadTimeout, cfg.ReadTimeout)
		assert.Equal(t, DefaultWriteTimeout, cfg.WriteTimeout)
		assert.Equal(t, DefaultIdleTimeout, cfg.IdleTimeout)
		assert.Equal(t, DefaultReadHeaderTimeout, cfg.ReadHeaderTimeout)
		assert.Equal(t, DefaultMaxHeaderBytes, cfg.MaxHeaderBytes)
		assert.Equal(t, int64(DefaultMaxBodyBytes), cfg.MaxBodyBytes)
	})

	t.Run("preserves non-zero values", func(t *testing.T) {
		cfg := Config{
			Port:           "9000",
			MaxHeaderBytes: 2048,
			MaxBodyBytes:   4096,
		}
		cfg.applyDefaults()

		assert.Equal(t, "9000", cfg.Port)
		assert.Equal(t, 2048, cfg.MaxHeaderBytes)
		assert.Equal(t, int64(4096), cfg.MaxBodyBytes)
		assert.Equal(t, DefaultReadTimeout, cfg.ReadTimeout)
	})
}

func TestRouter_Mounts(t *testing.T) {
	todos := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("todos " + r.Method + " " + r.URL.Path))
	})
	ui := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ui " + r.URL.Path))
	})

	srv := NewServer(todos, ui, Config{Host: "127.0.0.1"})
	assert.Equal(t, "127.0.0.1:"+DefaultPort, srv.srv.Addr)

	tests := []struct {
		method, path, want string
	}{
		{http.MethodGet, "/health", `{"status":"ok"}`},
		{http.MethodGet, "/todos", "todos GET /todos"},
		{http.MethodPatch, "/todos/abc", "todos PATCH /todos/abc"},
		{http.MethodGet, "/", "ui /"},
		{http.MethodGet, "/static/app.js", "ui /static/app.js"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			srv.Handler().ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestRouter_BodyLimitAndPanics(t *testing.T) {
	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	srv := NewServer(panicking, nil, Config{MaxBodyBytes: 8})

	t.Run("oversized body", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/todos", strings.NewReader(`{"title":"too long"}`)))

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.JSONEq(t, `{"error":"Request body too large"}`, w.Body.String())
	})

	t.Run("handler panic", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/todos", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Internal Server Error"}`, w.Body.String())
	})
}

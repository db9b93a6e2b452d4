package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	mw "github.com/rezkam/todos/internal/infrastructure/http/middleware"
	"github.com/rezkam/todos/internal/infrastructure/http/response"
)

// Defaults for Config.
const (
	DefaultPort              = "8081"
	DefaultReadTimeout       = 15 * time.Second
	DefaultWriteTimeout      = 15 * time.Second
	DefaultIdleTimeout       = 60 * time.Second
	DefaultReadHeaderTimeout = 5 * time.Second
	DefaultMaxHeaderBytes    = 1 << 20 // 1MB
	DefaultMaxBodyBytes      = 1 << 20 // 1MB
)

// Config holds the listener limits of the todos server. An empty Host
// listens on all interfaces.
type Config struct {
	Host              string
	Port              string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	MaxHeaderBytes    int
	MaxBodyBytes      int64
}

func (cfg *Config) applyDefaults() {
	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.ReadHeaderTimeout <= 0 {
		cfg.ReadHeaderTimeout = DefaultReadHeaderTimeout
	}
	if cfg.MaxHeaderBytes <= 0 {
		cfg.MaxHeaderBytes = DefaultMaxHeaderBytes
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
}

type healthResponse struct {
	Status string `json:"status"`
}

// Server serves the todo API at /todos and, optionally, the browser UI at /.
type Server struct {
	srv *http.Server
}

// NewServer builds the router and the listener around it. ui may be nil.
// Every request gets an OpenTelemetry server span and HTTP metrics.
func NewServer(todos, ui http.Handler, cfg Config) *Server {
	cfg.applyDefaults()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(mw.Recoverer)
	r.Use(mw.MaxBodyBytes(cfg.MaxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, r, healthResponse{Status: "ok"})
	})
	r.Mount("/todos", todos)
	if ui != nil {
		r.Mount("/", ui)
	}

	return &Server{srv: &http.Server{
		Addr:              cfg.Host + ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(r, "todos"),
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}}
}

// Start listens until Shutdown is called, then returns http.ErrServerClosed.
func (s *Server) Start() error {
	slog.Info("Starting HTTP server", "addr", s.srv.Addr)
	return s.srv.ListenAndServe()
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	slog.InfoContext(ctx, "Shutting down HTTP server")
	return s.srv.Shutdown(ctx)
}

// Handler is the instrumented router, for serving from httptest.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rezkam/todos/internal/application/todo"
	"github.com/rezkam/todos/internal/config"
	httpserver "github.com/rezkam/todos/internal/infrastructure/http"
	"github.com/rezkam/todos/internal/infrastructure/http/handler"
	"github.com/rezkam/todos/internal/infrastructure/observability"
	"github.com/rezkam/todos/internal/infrastructure/web"
)

const defaultShutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		// slog may not be set up yet if config failed
		fmt.Fprintf(os.Stderr, "failed to run: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// root context, cancelled on SIGTERM/SIGINT
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	telemetry, err := observability.Init(ctx, observability.Config{
		Enabled:     cfg.Observability.OTelEnabled,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		return fmt.Errorf("failed to init observability: %w", err)
	}
	slog.SetDefault(telemetry.Logger)

	store, err := openStore(ctx, cfg.Storage)
	if err != nil {
		flushTelemetry(telemetry)
		return fmt.Errorf("failed to open store: %w", err)
	}
	slog.InfoContext(ctx, "Storage initialized", "type", cfg.Storage.Kind(), "target", describeStorage(cfg.Storage))

	svc := todo.NewService(store, todo.Config{
		DefaultPageSize: cfg.Todo.DefaultPageSize,
		MaxPageSize:     cfg.Todo.MaxPageSize,
		SanitizeHTML:    cfg.Todo.SanitizeHTML,
	})

	api, err := handler.NewRouter(svc)
	if err != nil {
		return errors.Join(fmt.Errorf("failed to build api: %w", err), store.Close())
	}
	ui, err := web.NewHandler(web.Config{Debounce: cfg.UI.SearchDebounce})
	if err != nil {
		return errors.Join(fmt.Errorf("failed to build ui: %w", err), store.Close())
	}

	server := httpserver.NewServer(api, ui, httpserver.Config{
		Host:              cfg.HTTP.Host,
		Port:              cfg.HTTP.Port,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MaxBodyBytes:      cfg.HTTP.MaxBodyBytes,
	})

	errResult := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errResult <- fmt.Errorf("failed to serve http: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.InfoContext(ctx, "Shutting down")
	case err = <-errResult:
	}

	// main ctx may be cancelled already; give cleanup its own window
	shutdownCtx, cancelShutdown := newShutdownContext(cfg.ShutdownTimeout)
	defer cancelShutdown()
	newCleanup(shutdownCtx, server, store, telemetry)()

	return err
}

// newShutdownContext returns a fresh context bounding graceful shutdown.
func newShutdownContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	return context.WithTimeout(context.Background(), timeout)
}

func flushTelemetry(telemetry *observability.Providers) {
	ctx, cancel := newShutdownContext(0)
	defer cancel()
	if err := telemetry.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to flush telemetry: %v\n", err)
	}
}

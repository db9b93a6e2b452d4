package main

import (
	"context"
	"io"
	"log/slog"
)

type shutdowner interface {
	Shutdown(context.Context) error
}

// newCleanup builds the shutdown hook: stop accepting requests and drain
// in-flight ones, then close the store they were using, then flush
// telemetry so the shutdown logs are exported too.
func newCleanup(ctx context.Context, server shutdowner, store io.Closer, telemetry shutdowner) func() {
	return func() {
		if server != nil {
			if err := server.Shutdown(ctx); err != nil {
				slog.ErrorContext(ctx, "Failed to shut down http server", "error", err)
			}
		}

		if store != nil {
			if err := store.Close(); err != nil {
				slog.ErrorContext(ctx, "Failed to close store", "error", err)
			}
		}

		if telemetry != nil {
			if err := telemetry.Shutdown(ctx); err != nil {
				slog.ErrorContext(ctx, "Failed to flush telemetry", "error", err)
			}
		}
	}
}

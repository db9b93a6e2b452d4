// Package observability sets up OpenTelemetry traces, metrics and logs
// for the todos server. Exporters speak OTLP over HTTP and are configured
// through the standard OTEL_* environment variables.
package observability

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// DefaultServiceName names the service when neither Config nor OTEL_SERVICE_NAME does.
const DefaultServiceName = "todos"

const exportTimeout = 10 * time.Second

// Config holds observability configuration.
type Config struct {
	Enabled     bool
	ServiceName string

	// LogOutput receives JSON logs when export is disabled. Defaults to stdout.
	LogOutput io.Writer
}

// Providers bundles the SDK providers so they can be flushed together.
type Providers struct {
	Tracer *sdktrace.TracerProvider
	Meter  *sdkmetric.MeterProvider
	Logs   *log.LoggerProvider
	Logger *slog.Logger
}

// Init builds all three providers and registers the tracer and meter
// providers globally. When export is disabled the providers record
// nothing and the logger writes JSON to cfg.LogOutput.
func Init(ctx context.Context, cfg Config) (*Providers, error) {
	if cfg.ServiceName == "" {
		cfg.ServiceName = DefaultServiceName
	}
	if cfg.LogOutput == nil {
		cfg.LogOutput = os.Stdout
	}

	if !cfg.Enabled {
		p := &Providers{
			Tracer: sdktrace.NewTracerProvider(),
			Meter:  sdkmetric.NewMeterProvider(),
			Logs:   log.NewLoggerProvider(),
			Logger: slog.New(slog.NewJSONHandler(cfg.LogOutput, nil)).With("service", cfg.ServiceName),
		}
		otel.SetTracerProvider(p.Tracer)
		otel.SetMeterProvider(p.Meter)
		return p, nil
	}

	res, err := newResource(ctx, cfg.ServiceName)
	if err != nil {
		return nil, err
	}

	p := &Providers{}
	if p.Tracer, err = newTracerProvider(res); err != nil {
		return nil, err
	}
	if p.Meter, err = newMeterProvider(res); err != nil {
		return nil, errors.Join(err, p.Tracer.Shutdown(ctx))
	}
	if p.Logs, err = newLoggerProvider(res); err != nil {
		return nil, errors.Join(err, p.Tracer.Shutdown(ctx), p.Meter.Shutdown(ctx))
	}
	p.Logger = otelslog.NewLogger(cfg.ServiceName, otelslog.WithLoggerProvider(p.Logs))

	otel.SetTracerProvider(p.Tracer)
	otel.SetMeterProvider(p.Meter)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return p, nil
}

// Shutdown flushes and stops every provider. Logs go last so shutdown
// errors from the others can still be exported.
func (p *Providers) Shutdown(ctx context.Context) error {
	return errors.Join(
		p.Tracer.Shutdown(ctx),
		p.Meter.Shutdown(ctx),
		p.Logs.Shutdown(ctx),
	)
}

// newResource merges the SDK defaults with attributes from
// OTEL_RESOURCE_ATTRIBUTES and OTEL_SERVICE_NAME. The environment wins
// over the configured service name.
func newResource(ctx context.Context, serviceName string) (*resource.Resource, error) {
	serviceResource, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(serviceName)),
		resource.WithFromEnv(),
		resource.WithSchemaURL(semconv.SchemaURL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create service resource: %w", err)
	}

	res, err := resource.Merge(resource.Default(), serviceResource)
	if err != nil {
		// partial resources are still usable
		if errors.Is(err, resource.ErrPartialResource) || errors.Is(err, resource.ErrSchemaURLConflict) {
			return res, nil
		}
		return nil, fmt.Errorf("failed to merge resources: %w", err)
	}
	return res, nil
}

// Exporters are created with context.Background() so that a cancelled
// startup context does not break shutdown flushing.
func newTracerProvider(res *resource.Resource) (*sdktrace.TracerProvider, error) {
	exporter, err := otlptracehttp.New(context.Background(), otlptracehttp.WithTimeout(exportTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}
	return sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
	), nil
}

func newMeterProvider(res *resource.Resource) (*sdkmetric.MeterProvider, error) {
	exporter, err := otlpmetrichttp.New(context.Background(), otlpmetrichttp.WithTimeout(exportTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}
	return sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(15*time.Second))),
	), nil
}

func newLoggerProvider(res *resource.Resource) (*log.LoggerProvider, error) {
	exporter, err := otlploghttp.New(context.Background(), otlploghttp.WithTimeout(exportTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to create log exporter: %w", err)
	}
	return log.NewLoggerProvider(
		log.WithProcessor(log.NewBatchProcessor(exporter, log.WithExportTimeout(5*time.Second))),
		log.WithResource(res),
	), nil
}

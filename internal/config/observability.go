package config

// ObservabilityConfig holds observability configuration.
type ObservabilityConfig struct {
	OTelEnabled bool   `env:"TODOS_OTEL_ENABLED"`
	ServiceName string `env:"OTEL_SERVICE_NAME"`
}

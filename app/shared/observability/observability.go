// Package observability bundles the logger, metrics registry and tracer
// that get threaded through every module.
package observability

import (
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Config selects the observability wiring for a process.
type Config struct {
	ServiceName string
	Environment string
	LogLevel    string
	// TracingEnabled switches between the global otel provider and a noop
	// tracer. Exporter setup is the deployment's concern.
	TracingEnabled bool
}

// Provider carries the shared observability components.
type Provider struct {
	Logger   *slog.Logger
	Registry *prometheus.Registry
	Tracer   trace.Tracer
}

// NewProvider builds a JSON slog logger, a prometheus registry with the
// standard process collectors, and a tracer.
func NewProvider(cfg Config) *Provider {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(
			slog.String("service", cfg.ServiceName),
			slog.String("environment", cfg.Environment),
		)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var tracer trace.Tracer
	if cfg.TracingEnabled {
		tracer = otel.Tracer(cfg.ServiceName)
	} else {
		tracer = noop.NewTracerProvider().Tracer(cfg.ServiceName)
	}

	return &Provider{
		Logger:   logger,
		Registry: registry,
		Tracer:   tracer,
	}
}

// NoOpProvider returns a provider suitable for tests.
func NoOpProvider() *Provider {
	return &Provider{
		Logger:   slog.New(slog.DiscardHandler),
		Registry: prometheus.NewRegistry(),
		Tracer:   noop.NewTracerProvider().Tracer("test"),
	}
}

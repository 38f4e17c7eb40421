package observability

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/itsSambuddha/secons-api/internal/config"
	"github.com/itsSambuddha/secons-api/internal/platform/logging"
)

// InitTracing installs the global tracer provider and the W3C trace
// context propagator. Every span helper in the service records through
// these globals. The returned shutdown func flushes buffered spans; it
// is a no-op when tracing is disabled.
func InitTracing(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	if !cfg.TracingEnabled {
		logger.Info("tracing disabled", "reason", "TRACING_ENABLED=false")
		return func(context.Context) error { return nil }, nil
	}

	exporter, exporterName, err := newExporter(cfg)
	if err != nil {
		return nil, fmt.Errorf("build span exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", cfg.ServiceName),
			attribute.String("service.version", cfg.ServiceVersion),
			attribute.String("deployment.environment", cfg.AppEnv),
		)),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Info("tracing enabled",
		"service_name", cfg.ServiceName,
		"service_version", cfg.ServiceVersion,
		"environment", cfg.AppEnv,
		"exporter", exporterName,
	)

	return provider.Shutdown, nil
}

func newExporter(cfg config.Config) (sdktrace.SpanExporter, string, error) {
	endpoint := strings.TrimSpace(cfg.OTLPEndpoint)
	if endpoint == "" {
		// Local runs: spans go to stdout so the request flow is
		// inspectable without a collector.
		exporter, err := stdouttrace.New()
		return exporter, "stdout", err
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(endpoint)}
	if cfg.OTLPInsecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(context.Background(), opts...)
	return exporter, "otlp-http", err
}

// Package telemetry installs the process-wide OpenTelemetry tracer provider.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/sllt/sqlguard/pkg/sqlguard/config"
	"github.com/sllt/sqlguard/pkg/sqlguard/logging"
)

const defaultServiceName = "sqlguard"

var (
	errUnsupportedExporter = errors.New("unsupported trace exporter")
	errMissingTracerURL    = errors.New("TRACER_URL is required")
)

// ShutdownFunc flushes pending spans and stops the provider.
type ShutdownFunc func(ctx context.Context) error

func noopShutdown(context.Context) error { return nil }

// InitTracer reads TRACE_EXPORTER (zipkin or otlp) and TRACER_URL and installs a batching tracer provider.
// With no exporter configured the global no-op provider is left in place.
func InitTracer(ctx context.Context, cfg config.Config, logger logging.Logger) (ShutdownFunc, error) {
	exporterName := strings.ToLower(cfg.Get("TRACE_EXPORTER"))
	if exporterName == "" {
		return noopShutdown, nil
	}

	url := cfg.Get("TRACER_URL")
	if url == "" {
		return noopShutdown, fmt.Errorf("%w for exporter %s", errMissingTracerURL, exporterName)
	}

	exporter, err := newExporter(ctx, exporterName, url)
	if err != nil {
		return noopShutdown, err
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.GetOrDefault("APP_NAME", defaultServiceName)),
		attribute.String("service.version", cfg.GetOrDefault("APP_VERSION", "dev")),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	logger.Infof("Exporting traces to %s at %s", exporterName, url)

	return tp.Shutdown, nil
}

func newExporter(ctx context.Context, name, url string) (sdktrace.SpanExporter, error) {
	switch name {
	case "zipkin":
		return zipkin.New(url)
	case "otlp":
		return otlptracegrpc.New(ctx, otlptracegrpc.WithEndpoint(url), otlptracegrpc.WithInsecure())
	default:
		return nil, fmt.Errorf("%w: %s", errUnsupportedExporter, name)
	}
}

package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "docfixer"

// Tracer is resolved through the global provider, so spans are no-ops until
// InitTracing installs an exporter.
var Tracer trace.Tracer = otel.Tracer(tracerName)

// InitTracing exports spans over OTLP/gRPC to endpoint. The returned function
// flushes and shuts the provider down.
func InitTracing(ctx context.Context, endpoint string) (func(context.Context) error, error) {
	opts := []otlptracegrpc.Option{otlptracegrpc.WithInsecure()}
	if endpoint != "" {
		opts = append(opts, otlptracegrpc.WithEndpoint(endpoint))
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(tp)
	Tracer = tp.Tracer(tracerName)
	return tp.Shutdown, nil
}

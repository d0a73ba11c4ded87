package tracing

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestSetup_NoEndpointIsNoop(t *testing.T) {
	before := otel.GetTracerProvider()

	tp, shutdown, err := Setup(context.Background(), Config{})
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if _, ok := tp.(*sdktrace.TracerProvider); ok {
		t.Error("expected a no-op provider without an endpoint")
	}
	if otel.GetTracerProvider() != before {
		t.Error("global provider should be untouched")
	}

	_, span := tp.Tracer("test").Start(context.Background(), "op")
	if span.SpanContext().IsValid() {
		t.Error("no-op spans should not carry a valid span context")
	}
	span.End()

	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() error = %v", err)
	}
}

func TestSetup_WithEndpoint(t *testing.T) {
	before := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(before) })

	// The exporter connects lazily, so no collector is needed here.
	tp, shutdown, err := Setup(context.Background(), Config{
		Endpoint:       "localhost:4318",
		Insecure:       true,
		ServiceVersion: "test",
		Headers:        map[string]string{"x-team": "agents"},
	})
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	if _, ok := tp.(*sdktrace.TracerProvider); !ok {
		t.Fatalf("expected an SDK provider, got %T", tp)
	}
	if otel.GetTracerProvider() != tp {
		t.Error("expected the provider to be installed globally")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// Nothing was recorded, so shutdown has nothing to flush.
	_ = shutdown(ctx)
}

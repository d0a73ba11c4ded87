package observability

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/leofalp/reactagent/providers/ai"
)

func newRecorder() (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	recorder := tracetest.NewSpanRecorder()
	return recorder, sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
}

func attrValue(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracer_UsesGivenProvider(t *testing.T) {
	recorder, tp := newRecorder()

	_, span := Tracer(tp).Start(context.Background(), "test")
	span.End()

	ended := recorder.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected 1 ended span, got %d", len(ended))
	}
	if ended[0].InstrumentationScope().Name != InstrumentationName {
		t.Errorf("expected scope %s, got %s", InstrumentationName, ended[0].InstrumentationScope().Name)
	}
}

func TestTracer_NilFallsBackToGlobal(t *testing.T) {
	if Tracer(nil) == nil {
		t.Fatal("expected a tracer from the global provider")
	}
}

func TestUsageAttributes(t *testing.T) {
	if attrs := UsageAttributes(nil); attrs != nil {
		t.Errorf("expected nil attributes for nil usage, got %v", attrs)
	}

	attrs := UsageAttributes(&ai.Usage{PromptTokens: 5, CompletionTokens: 7, TotalTokens: 12})
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(attrs))
	}
	if v, ok := attrValue(attrs, AttrLLMTokensTotal); !ok || v.AsInt64() != 12 {
		t.Errorf("expected total tokens 12, got %v", v)
	}
}

func TestRecordError(t *testing.T) {
	recorder, tp := newRecorder()

	_, span := Tracer(tp).Start(context.Background(), "failing")
	RecordError(span, &ai.ExternalServiceError{Provider: "openai", Kind: ai.KindRateLimit, StatusCode: 429})
	span.End()

	got := recorder.Ended()[0]
	if got.Status().Code != codes.Error {
		t.Errorf("expected error status, got %v", got.Status().Code)
	}
	if v, ok := attrValue(got.Attributes(), AttrLLMErrorKind); !ok || v.AsString() != string(ai.KindRateLimit) {
		t.Errorf("expected error kind attribute rate_limit, got %v", v)
	}
	if len(got.Events()) != 1 || got.Events()[0].Name != "exception" {
		t.Errorf("expected one exception event, got %v", got.Events())
	}
}

func TestRecordError_PlainErrorAndNil(t *testing.T) {
	recorder, tp := newRecorder()

	_, span := Tracer(tp).Start(context.Background(), "plain")
	RecordError(span, nil)
	RecordError(span, errors.New("boom"))
	span.End()

	got := recorder.Ended()[0]
	if got.Status().Code != codes.Error {
		t.Errorf("expected error status, got %v", got.Status().Code)
	}
	if _, ok := attrValue(got.Attributes(), AttrLLMErrorKind); ok {
		t.Error("expected no error kind attribute for a plain error")
	}
}

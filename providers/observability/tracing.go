package observability

import (
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/leofalp/reactagent/providers/ai"
)

// Tracer returns the module tracer from tp, falling back to the global
// TracerProvider when tp is nil.
func Tracer(tp trace.TracerProvider) trace.Tracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return tp.Tracer(InstrumentationName)
}

// UsageAttributes converts token usage into span attributes.
// A nil usage yields no attributes.
func UsageAttributes(usage *ai.Usage) []attribute.KeyValue {
	if usage == nil {
		return nil
	}
	return []attribute.KeyValue{
		attribute.Int(AttrLLMTokensPrompt, usage.PromptTokens),
		attribute.Int(AttrLLMTokensCompletion, usage.CompletionTokens),
		attribute.Int(AttrLLMTokensTotal, usage.TotalTokens),
	}
}

// RecordError marks span as failed. When err carries an
// *ai.ExternalServiceError its kind is attached as an attribute.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	var serviceErr *ai.ExternalServiceError
	if errors.As(err, &serviceErr) {
		span.SetAttributes(attribute.String(AttrLLMErrorKind, string(serviceErr.Kind)))
	}
}

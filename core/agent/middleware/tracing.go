package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/leofalp/reactagent/core/agent"
	"github.com/leofalp/reactagent/providers/ai"
	"github.com/leofalp/reactagent/providers/observability"
)

// NewTracingMiddleware creates a Middleware that records an llm.request span
// around every provider call. The span is placed in the context passed to
// next, so providers and inner middlewares can attach events to it.
//
// A nil tp uses the global TracerProvider.
func NewTracingMiddleware(tp trace.TracerProvider) agent.Middleware {
	tracer := observability.Tracer(tp)

	return func(next agent.SendFunc) agent.SendFunc {
		return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
			attrs := []attribute.KeyValue{
				attribute.String(observability.AttrLLMModel, request.Model),
				attribute.Int(observability.AttrRequestMessagesCount, len(request.Messages)),
			}
			if cfg := request.GenerationConfig; cfg != nil {
				if cfg.Temperature != nil {
					attrs = append(attrs, attribute.Float64(observability.AttrLLMTemperature, *cfg.Temperature))
				}
				if cfg.MaxTokens > 0 {
					attrs = append(attrs, attribute.Int(observability.AttrLLMMaxTokens, cfg.MaxTokens))
				}
			}

			ctx, span := tracer.Start(ctx, observability.SpanLLMRequest,
				trace.WithSpanKind(trace.SpanKindClient),
				trace.WithAttributes(attrs...),
			)
			defer span.End()

			start := time.Now()
			response, err := next(ctx, request)
			span.SetAttributes(attribute.Int64(observability.AttrHTTPDuration, time.Since(start).Milliseconds()))

			if err != nil {
				observability.RecordError(span, err)
				return nil, err
			}

			if response != nil {
				span.SetAttributes(observability.UsageAttributes(response.Usage)...)
				if response.Id != "" {
					span.SetAttributes(attribute.String(observability.AttrLLMResponseID, response.Id))
				}
				if response.FinishReason != "" {
					span.SetAttributes(attribute.String(observability.AttrLLMFinishReason, response.FinishReason))
				}
			}
			span.SetStatus(codes.Ok, "")

			return response, nil
		}
	}
}

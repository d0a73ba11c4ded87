package middleware

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/leofalp/reactagent/core/agent"
	"github.com/leofalp/reactagent/providers/ai"
	"github.com/leofalp/reactagent/providers/observability"
)

// NewRateLimitMiddleware creates a Middleware that waits on a token bucket
// refilled at rpm requests per minute before every provider call.
// If rpm <= 0 the middleware passes requests straight through. A burst <= 0
// is treated as 1.
//
// Waiting honours ctx: when ctx ends first the call fails without reaching the
// provider, with an error that wraps the context error.
func NewRateLimitMiddleware(rpm, burst int) agent.Middleware {
	if rpm <= 0 {
		return func(next agent.SendFunc) agent.SendFunc { return next }
	}
	if burst <= 0 {
		burst = 1
	}

	return newRateLimit(rate.NewLimiter(rate.Limit(float64(rpm)/60.0), burst))
}

func newRateLimit(limiter *rate.Limiter) agent.Middleware {
	return func(next agent.SendFunc) agent.SendFunc {
		return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
			start := time.Now()
			if err := limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("rate limit wait: %w", waitError(ctx, err))
			}

			if waited := time.Since(start); waited > time.Millisecond {
				trace.SpanFromContext(ctx).AddEvent(observability.EventRateLimitWait,
					trace.WithAttributes(attribute.Int64("wait_ms", waited.Milliseconds())),
				)
			}

			return next(ctx, request)
		}
	}
}

// waitError returns the context error when Wait failed because the context
// ended or would end before a token is available, so callers can classify it.
func waitError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if _, ok := ctx.Deadline(); ok {
		return context.DeadlineExceeded
	}
	return err
}

package agent

import (
	"context"
	"time"

	"github.com/leofalp/reactagent/providers/ai"
)

// SendFunc sends a chat request to the LLM provider and returns the completed
// response. It is the unit threaded through the middleware chain.
type SendFunc func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error)

// Middleware intercepts and optionally transforms send requests and responses.
// Each Middleware receives the next SendFunc in the chain and returns a new
// SendFunc that wraps it. Middlewares are applied outermost-first: the first
// middleware passed to [WithMiddleware] is the first to see a request.
type Middleware func(next SendFunc) SendFunc

// buildSendChain constructs the send chain. The base function calls the
// provider directly, wrapped by the request timeout when one is set, so the
// deadline covers only the remote call. Middlewares are applied in reverse so
// that middlewares[0] is outermost.
func buildSendChain(provider ai.Provider, middlewares []Middleware, timeout time.Duration) SendFunc {
	var chain SendFunc = func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
		return provider.SendMessage(ctx, request)
	}

	if timeout > 0 {
		chain = timeoutMiddleware(timeout)(chain)
	}

	for i := len(middlewares) - 1; i >= 0; i-- {
		chain = middlewares[i](chain)
	}

	return chain
}

// timeoutMiddleware adds a deadline to each request. A shorter deadline
// already on the caller's context still wins.
func timeoutMiddleware(timeout time.Duration) Middleware {
	return func(next SendFunc) SendFunc {
		return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			return next(ctx, request)
		}
	}
}

// Package middleware provides built-in middleware for the agent send chain.
// Each middleware is constructed via a New* function that returns an
// [agent.Middleware] ready to be passed to [agent.WithMiddleware].
//
// # Available Middleware
//
//   - [NewTracingMiddleware]: Wraps every provider call in an OpenTelemetry
//     span carrying model, message count, token usage and error kind.
//
//   - [NewRateLimitMiddleware]: Blocks each call on a client-side token bucket
//     so a long conversation stays under the API's requests-per-minute quota.
//
//   - [NewLoggingMiddleware]: Emits structured slog log entries before and after
//     every provider call, with three verbosity levels (Minimal, Standard, Verbose).
//
// # Usage
//
//	import (
//	    "log/slog"
//
//	    "github.com/leofalp/reactagent/core/agent"
//	    "github.com/leofalp/reactagent/core/agent/middleware"
//	)
//
//	a, err := agent.New(provider,
//	    agent.WithMiddleware(
//	        middleware.NewTracingMiddleware(nil),
//	        middleware.NewRateLimitMiddleware(60, 1),
//	        middleware.NewLoggingMiddleware(slog.Default(), middleware.LogLevelStandard),
//	    ),
//	)
//
// Middlewares execute outermost-first: the first entry in WithMiddleware is the
// outermost wrapper, meaning it runs first on the way in and last on the way out.
// In the example above, a request travels:
//
//	Tracing → RateLimit → Logging → request timeout → Provider
//
// so the tracing span includes time spent waiting on the limiter while the
// request timeout only covers the remote call.
package middleware

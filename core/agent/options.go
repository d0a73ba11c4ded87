package agent

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/leofalp/reactagent/internal/utils"
	"github.com/leofalp/reactagent/providers/memory"
)

const (
	// DefaultModel matches the model the hosted API examples were written for.
	DefaultModel = "gpt-3.5-turbo"

	// DefaultRequestTimeout bounds every call to the provider.
	DefaultRequestTimeout = 60 * time.Second
)

// Option configures an Agent at construction.
type Option func(*options)

type options struct {
	systemPrompt   string
	model          string
	temperature    *float64
	maxTokens      int
	requestTimeout time.Duration
	middlewares    []Middleware
	memory         memory.Provider
	logger         *slog.Logger
	tracerProvider trace.TracerProvider
}

func defaultOptions() options {
	return options{
		model:          DefaultModel,
		requestTimeout: DefaultRequestTimeout,
	}
}

// WithSystemPrompt seeds the transcript with one system turn. An empty
// prompt adds nothing.
func WithSystemPrompt(prompt string) Option {
	return func(o *options) {
		o.systemPrompt = prompt
	}
}

// WithModel sets the model identifier sent with every request.
// An empty value keeps [DefaultModel].
func WithModel(model string) Option {
	return func(o *options) {
		if model != "" {
			o.model = model
		}
	}
}

// WithTemperature sets the sampling temperature. Without it the provider's
// default applies.
func WithTemperature(temperature float64) Option {
	return func(o *options) {
		o.temperature = utils.Ptr(temperature)
	}
}

// WithMaxTokens caps the reply length. Zero leaves it to the provider.
func WithMaxTokens(maxTokens int) Option {
	return func(o *options) {
		o.maxTokens = maxTokens
	}
}

// WithRequestTimeout bounds each provider call. Zero disables the timeout.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.requestTimeout = timeout
	}
}

// WithMiddleware appends middlewares to the send chain, outermost first.
func WithMiddleware(middlewares ...Middleware) Option {
	return func(o *options) {
		o.middlewares = append(o.middlewares, middlewares...)
	}
}

// WithMemory uses m as the transcript store instead of a fresh in-memory one.
// Its existing contents become the start of the conversation.
func WithMemory(m memory.Provider) Option {
	return func(o *options) {
		o.memory = m
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithTracerProvider sets the OpenTelemetry provider used for agent spans.
// Defaults to the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tracerProvider = tp
	}
}

package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/leofalp/reactagent/providers/ai"
	"github.com/leofalp/reactagent/providers/memory"
	"github.com/leofalp/reactagent/providers/memory/inmemory"
	"github.com/leofalp/reactagent/providers/observability"
)

// Agent holds one conversation with a chat-completion provider.
type Agent struct {
	id           string
	provider     ai.Provider
	send         SendFunc
	memory       memory.Provider
	systemPrompt string
	model        string
	temperature  *float64
	maxTokens    int
	logger       *slog.Logger
	tracer       trace.Tracer

	// mu serializes Invoke so turns from concurrent callers never interleave.
	mu sync.Mutex

	usageMu sync.Mutex
	usage   ai.Usage
}

// New builds an Agent over provider. The transcript starts empty, or with a
// single system turn when [WithSystemPrompt] is given a non-empty prompt.
//
// New fails only on invalid wiring: a nil provider or middleware, a memory
// whose contents break the transcript ordering, or a system prompt combined
// with a non-empty memory.
func New(provider ai.Provider, opts ...Option) (*Agent, error) {
	if provider == nil {
		return nil, errors.New("agent: provider is required")
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	for i, mw := range o.middlewares {
		if mw == nil {
			return nil, fmt.Errorf("agent: middleware at index %d is nil", i)
		}
	}

	if o.memory == nil {
		o.memory = inmemory.New()
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	ctx := context.Background()
	existing, err := o.memory.AllMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("agent: reading memory: %w", err)
	}
	if err := ai.ValidateTranscript(existing); err != nil {
		return nil, fmt.Errorf("agent: invalid transcript in memory: %w", err)
	}

	systemPrompt := o.systemPrompt
	if systemPrompt != "" {
		if len(existing) > 0 {
			return nil, errors.New("agent: system prompt requires an empty memory")
		}
		if err := o.memory.AppendMessages(ctx, ai.Message{Role: ai.RoleSystem, Content: systemPrompt}); err != nil {
			return nil, fmt.Errorf("agent: seeding system prompt: %w", err)
		}
	} else if len(existing) > 0 && existing[0].Role == ai.RoleSystem {
		systemPrompt = existing[0].Content
	}

	a := &Agent{
		id:           uuid.NewString(),
		provider:     provider,
		send:         buildSendChain(provider, o.middlewares, o.requestTimeout),
		memory:       o.memory,
		systemPrompt: systemPrompt,
		model:        o.model,
		temperature:  o.temperature,
		maxTokens:    o.maxTokens,
		tracer:       observability.Tracer(o.tracerProvider),
	}
	a.logger = o.logger.With(slog.String(observability.AttrAgentID, a.id))

	return a, nil
}

// Invoke sends userMessage with the whole transcript as context and returns
// the assistant's reply. On success the transcript grows by exactly the user
// and assistant turns. On failure the transcript is unchanged and the error
// is an *ai.ExternalServiceError when the remote call failed.
//
// Invoke blocks until the provider answers, ctx ends, or the request timeout
// expires. Concurrent calls on the same Agent run one at a time.
func (a *Agent) Invoke(ctx context.Context, userMessage string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ctx, span := a.tracer.Start(ctx, observability.SpanAgentInvoke, trace.WithAttributes(
		attribute.String(observability.AttrAgentID, a.id),
		attribute.String(observability.AttrLLMProvider, a.provider.Name()),
		attribute.String(observability.AttrLLMModel, a.model),
		attribute.Int(observability.AttrAgentPromptLength, len(userMessage)),
	))
	defer span.End()

	history, err := a.memory.AllMessages(ctx)
	if err != nil {
		err = fmt.Errorf("agent: reading transcript: %w", err)
		observability.RecordError(span, err)
		return "", err
	}
	span.SetAttributes(attribute.Int(observability.AttrAgentTranscriptLength, len(history)))

	userTurn := ai.Message{Role: ai.RoleUser, Content: userMessage}
	pending := append(history, userTurn)

	a.logger.DebugContext(ctx, "agent invoke",
		slog.Int("transcript_length", len(history)),
		slog.Int("prompt_length", len(userMessage)),
	)

	response, err := a.send(ctx, a.request(pending))
	if err == nil && response == nil {
		err = &ai.ExternalServiceError{Provider: a.provider.Name(), Kind: ai.KindMalformedResponse, Err: errors.New("nil response")}
	}
	if err != nil {
		err = ai.AsExternalServiceError(a.provider.Name(), err)
		observability.RecordError(span, err)
		a.logger.DebugContext(ctx, "agent invoke failed", slog.String("error", err.Error()))
		return "", err
	}

	assistantTurn := ai.Message{Role: ai.RoleAssistant, Content: response.Content}
	if err := a.memory.AppendMessages(ctx, userTurn, assistantTurn); err != nil {
		err = fmt.Errorf("agent: committing turns: %w", err)
		observability.RecordError(span, err)
		return "", err
	}

	a.usageMu.Lock()
	a.usage.Add(response.Usage)
	a.usageMu.Unlock()

	span.SetAttributes(observability.UsageAttributes(response.Usage)...)
	if response.FinishReason != "" {
		span.SetAttributes(attribute.String(observability.AttrLLMFinishReason, response.FinishReason))
	}

	a.logger.DebugContext(ctx, "agent invoke completed",
		slog.Int("transcript_length", len(pending)+1),
		slog.String("finish_reason", response.FinishReason),
	)

	return response.Content, nil
}

// request builds the provider request for the given messages.
func (a *Agent) request(messages []ai.Message) ai.ChatRequest {
	req := ai.ChatRequest{
		Model:    a.model,
		Messages: messages,
	}
	if a.temperature != nil || a.maxTokens > 0 {
		req.GenerationConfig = &ai.GenerationConfig{
			Temperature: a.temperature,
			MaxTokens:   a.maxTokens,
		}
	}
	return req
}

// ID returns the identifier assigned at construction.
func (a *Agent) ID() string {
	return a.id
}

// Model returns the model identifier sent with each request.
func (a *Agent) Model() string {
	return a.model
}

// SystemPrompt returns the content of the system turn, or "" when there is none.
func (a *Agent) SystemPrompt() string {
	return a.systemPrompt
}

// Transcript returns a copy of the conversation in chronological order.
func (a *Agent) Transcript(ctx context.Context) ([]ai.Message, error) {
	return a.memory.AllMessages(ctx)
}

// Len returns the number of turns in the transcript.
func (a *Agent) Len(ctx context.Context) (int, error) {
	return a.memory.Count(ctx)
}

// Usage returns the token usage summed over all successful invocations.
func (a *Agent) Usage() ai.Usage {
	a.usageMu.Lock()
	defer a.usageMu.Unlock()
	return a.usage
}

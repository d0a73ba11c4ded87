package ai

import "context"

// Provider is the capability every chat-completion backend must satisfy.
// It is an opaque network call from the agent's point of view.
type Provider interface {
	// SendMessage sends the full request to the remote service and returns the
	// completed response. Failures of the remote call are returned as
	// *ExternalServiceError.
	SendMessage(ctx context.Context, request ChatRequest) (*ChatResponse, error)

	// Name returns a short identifier for the backend, e.g. "openai".
	Name() string
}

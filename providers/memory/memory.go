package memory

import (
	"context"

	"github.com/leofalp/reactagent/providers/ai"
)

// Provider stores an append-only conversation transcript.
type Provider interface {
	// AppendMessages appends all messages as one step: readers observe either
	// none or all of them. It is a no-op when messages is empty.
	AppendMessages(ctx context.Context, messages ...ai.Message) error

	// AllMessages returns a copy of the full transcript in chronological order.
	AllMessages(ctx context.Context) ([]ai.Message, error)

	// LastMessages returns up to the last n messages in chronological order.
	LastMessages(ctx context.Context, n int) ([]ai.Message, error)

	// Count returns the number of stored messages.
	Count(ctx context.Context) (int, error)

	// FilterByRole returns the messages with the given role, in order.
	FilterByRole(ctx context.Context, role ai.MessageRole) ([]ai.Message, error)
}

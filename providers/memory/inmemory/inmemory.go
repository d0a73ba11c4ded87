package inmemory

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/leofalp/reactagent/providers/ai"
	"github.com/leofalp/reactagent/providers/memory"
	"github.com/leofalp/reactagent/providers/observability"
)

// ArrayMemory is a simple, concurrency-safe in-memory transcript.
// It uses RWMutex to guard access and is efficient for read-heavy workloads.
type ArrayMemory struct {
	mu       sync.RWMutex
	messages []ai.Message
}

// New returns a new, empty [ArrayMemory] ready for immediate use.
func New() *ArrayMemory {
	return &ArrayMemory{
		messages: []ai.Message{},
	}
}

// Ensure ArrayMemory implements memory.Provider at compile time.
var _ memory.Provider = (*ArrayMemory)(nil)

// AppendMessages stores copies of messages at the end of the transcript under
// a single lock. The batch is rejected as a whole if any role is unknown or
// if it would place a system turn anywhere but index 0.
// When ctx carries a recording span, one event per message is added and the
// running total is set as a span attribute.
func (m *ArrayMemory) AppendMessages(ctx context.Context, messages ...ai.Message) error {
	if len(messages) == 0 {
		return nil
	}

	m.mu.Lock()
	offset := len(m.messages)
	for i, msg := range messages {
		if err := msg.Role.Validate(); err != nil {
			m.mu.Unlock()
			return fmt.Errorf("append message %d: %w", i, err)
		}
		if msg.Role == ai.RoleSystem && offset+i != 0 {
			m.mu.Unlock()
			return fmt.Errorf("append message %d: system turn must be first", i)
		}
	}
	m.messages = append(m.messages, messages...)
	totalMessages := len(m.messages)
	m.mu.Unlock()

	span := trace.SpanFromContext(ctx)
	for _, msg := range messages {
		span.AddEvent(observability.EventMemoryAppend, trace.WithAttributes(
			attribute.String(observability.AttrMemoryMessageRole, string(msg.Role)),
			attribute.Int(observability.AttrMemoryMessageLength, len(msg.Content)),
		))
	}
	span.SetAttributes(attribute.Int(observability.AttrMemoryTotalMessages, totalMessages))

	return nil
}

// Count returns the number of messages stored. The returned error is always nil.
func (m *ArrayMemory) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	n := len(m.messages)
	m.mu.RUnlock()
	return n, nil
}

// AllMessages returns a copy of all messages to avoid external mutation of internal state.
// The returned error is always nil.
func (m *ArrayMemory) AllMessages(_ context.Context) ([]ai.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ai.Message, len(m.messages))
	copy(out, m.messages)
	return out, nil
}

// LastMessages returns up to the last n messages as a new, independent slice.
// Returns an empty, non-nil slice when n is zero or negative.
func (m *ArrayMemory) LastMessages(_ context.Context, n int) ([]ai.Message, error) {
	if n <= 0 {
		return []ai.Message{}, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if n > len(m.messages) {
		n = len(m.messages)
	}
	out := make([]ai.Message, n)
	copy(out, m.messages[len(m.messages)-n:])
	return out, nil
}

// FilterByRole returns a copy of all messages whose role matches the given role.
// The returned slice is always non-nil.
func (m *ArrayMemory) FilterByRole(_ context.Context, role ai.MessageRole) ([]ai.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	filtered := make([]ai.Message, 0, len(m.messages))
	for _, msg := range m.messages {
		if msg.Role == role {
			filtered = append(filtered, msg)
		}
	}
	return filtered, nil
}

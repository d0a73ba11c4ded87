package inmemory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/leofalp/reactagent/providers/ai"
	"github.com/leofalp/reactagent/providers/observability"
)

func TestArrayMemory_AppendAndAllMessages(t *testing.T) {
	ctx := context.Background()
	m := New()
	if n, _ := m.Count(ctx); n != 0 {
		t.Fatalf("expected empty memory, got %d", n)
	}

	err := m.AppendMessages(ctx,
		ai.Message{Role: ai.RoleUser, Content: "hi"},
		ai.Message{Role: ai.RoleAssistant, Content: "hello"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n, _ := m.Count(ctx); n != 2 {
		t.Fatalf("expected 2 messages, got %d", n)
	}

	all, _ := m.AllMessages(ctx)
	if len(all) != 2 {
		t.Fatalf("expected AllMessages to return 2, got %d", len(all))
	}

	// mutate returned slice should not affect internal state
	all[0].Content = "changed"
	again, _ := m.AllMessages(ctx)
	if again[0].Content == "changed" {
		t.Fatal("expected copy protection in AllMessages")
	}
}

func TestArrayMemory_AppendNothing(t *testing.T) {
	m := New()
	if err := m.AppendMessages(context.Background()); err != nil {
		t.Fatalf("expected no error for empty append, got %v", err)
	}
}

func TestArrayMemory_SystemTurnOnlyFirst(t *testing.T) {
	ctx := context.Background()
	m := New()

	if err := m.AppendMessages(ctx, ai.Message{Role: ai.RoleSystem, Content: "sys"}); err != nil {
		t.Fatalf("expected system turn at index 0 to be accepted, got %v", err)
	}
	if err := m.AppendMessages(ctx, ai.Message{Role: ai.RoleSystem, Content: "again"}); err == nil {
		t.Fatal("expected a second system turn to be rejected")
	}
	if n, _ := m.Count(ctx); n != 1 {
		t.Errorf("expected rejected append to leave 1 message, got %d", n)
	}
}

func TestArrayMemory_RejectsWholeBatch(t *testing.T) {
	ctx := context.Background()
	m := New()

	err := m.AppendMessages(ctx,
		ai.Message{Role: ai.RoleUser, Content: "ok"},
		ai.Message{Role: "tool", Content: "bad"},
	)
	if err == nil {
		t.Fatal("expected unknown role to be rejected")
	}
	if n, _ := m.Count(ctx); n != 0 {
		t.Errorf("expected no partial append, got %d messages", n)
	}
}

func TestArrayMemory_LastMessages(t *testing.T) {
	ctx := context.Background()
	m := New()
	for i := 0; i < 5; i++ {
		_ = m.AppendMessages(ctx, ai.Message{Role: ai.RoleUser, Content: string(rune('a' + i))})
	}

	last, _ := m.LastMessages(ctx, 2)
	if len(last) != 2 || last[0].Content != "d" || last[1].Content != "e" {
		t.Fatalf("unexpected last messages: %v", last)
	}

	none, _ := m.LastMessages(ctx, 0)
	if none == nil || len(none) != 0 {
		t.Fatalf("expected empty non-nil slice when n <= 0, got %v", none)
	}

	all, _ := m.LastMessages(ctx, 10)
	if len(all) != 5 {
		t.Fatalf("expected full slice when n > len, got %d", len(all))
	}
}

func TestArrayMemory_FilterByRole(t *testing.T) {
	ctx := context.Background()
	m := New()
	_ = m.AppendMessages(ctx,
		ai.Message{Role: ai.RoleSystem, Content: "s"},
		ai.Message{Role: ai.RoleUser, Content: "u1"},
		ai.Message{Role: ai.RoleAssistant, Content: "a1"},
		ai.Message{Role: ai.RoleUser, Content: "u2"},
	)

	users, _ := m.FilterByRole(ctx, ai.RoleUser)
	if len(users) != 2 || users[0].Content != "u1" || users[1].Content != "u2" {
		t.Fatalf("unexpected user messages: %v", users)
	}

	empty := New()
	none, _ := empty.FilterByRole(ctx, ai.RoleAssistant)
	if none == nil || len(none) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", none)
	}
}

func TestArrayMemory_ConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	m := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = m.AppendMessages(ctx,
				ai.Message{Role: ai.RoleUser, Content: fmt.Sprintf("q%d", i)},
				ai.Message{Role: ai.RoleAssistant, Content: fmt.Sprintf("a%d", i)},
			)
		}(i)
	}
	wg.Wait()

	all, _ := m.AllMessages(ctx)
	if len(all) != 100 {
		t.Fatalf("expected 100 messages, got %d", len(all))
	}
	// Batches are atomic: every user turn is directly followed by its answer.
	for i := 0; i < len(all); i += 2 {
		if all[i].Role != ai.RoleUser || all[i+1].Role != ai.RoleAssistant || all[i].Content[1:] != all[i+1].Content[1:] {
			t.Fatalf("interleaved batch at %d: %v %v", i, all[i], all[i+1])
		}
	}
}

func TestArrayMemory_SpanEvents(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	ctx, span := tp.Tracer("test").Start(context.Background(), "append")

	m := New()
	_ = m.AppendMessages(ctx,
		ai.Message{Role: ai.RoleUser, Content: "ping"},
		ai.Message{Role: ai.RoleAssistant, Content: "pong"},
	)
	span.End()

	got := recorder.Ended()[0]
	if len(got.Events()) != 2 || got.Events()[0].Name != observability.EventMemoryAppend {
		t.Fatalf("expected 2 memory.append events, got %v", got.Events())
	}
	found := false
	for _, kv := range got.Attributes() {
		if string(kv.Key) == observability.AttrMemoryTotalMessages && kv.Value.AsInt64() == 2 {
			found = true
		}
	}
	if !found {
		t.Error("expected memory.total_messages=2 attribute")
	}
}

package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/leofalp/reactagent/providers/ai"
)

// ========== Test logger helpers ==========

// testLogger creates an slog.Logger that writes to a *bytes.Buffer so tests
// can inspect emitted log lines without capturing os.Stderr.
func testLogger(buf *bytes.Buffer) *slog.Logger {
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler)
}

func okNext(_ context.Context, _ ai.ChatRequest) (*ai.ChatResponse, error) {
	return &ai.ChatResponse{
		Model:        "test-model",
		Content:      "hello world",
		FinishReason: "stop",
		Usage:        &ai.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}, nil
}

var testRequest = ai.ChatRequest{
	Model:    "test-model",
	Messages: []ai.Message{{Role: ai.RoleSystem, Content: "sys"}, {Role: ai.RoleUser, Content: "hi there"}},
}

func TestLoggingMiddleware_Levels(t *testing.T) {
	tests := []struct {
		name    string
		level   LogLevel
		want    []string
		notWant []string
	}{
		{
			name:    "minimal",
			level:   LogLevelMinimal,
			want:    []string{"test-model", "prompt_tokens", "duration"},
			notWant: []string{"message_count", "finish_reason", "response_content", "last_message_content"},
		},
		{
			name:    "standard",
			level:   LogLevelStandard,
			want:    []string{"message_count=2", "finish_reason=stop"},
			notWant: []string{"response_content", "last_message_content"},
		},
		{
			name:  "verbose",
			level: LogLevelVerbose,
			want:  []string{"message_count=2", "last_message_role=user", "hi there", "response_content", "hello world"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			chain := NewLoggingMiddleware(testLogger(buf), tt.level)(okNext)

			if _, err := chain(context.Background(), testRequest); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			output := buf.String()
			for _, s := range tt.want {
				if !strings.Contains(output, s) {
					t.Errorf("expected %q in log, got:\n%s", s, output)
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(output, s) {
					t.Errorf("did not expect %q in log, got:\n%s", s, output)
				}
			}
		})
	}
}

func TestLoggingMiddleware_Error(t *testing.T) {
	buf := &bytes.Buffer{}
	sentinel := errors.New("provider down")
	chain := NewLoggingMiddleware(testLogger(buf), LogLevelStandard)(func(context.Context, ai.ChatRequest) (*ai.ChatResponse, error) {
		return nil, sentinel
	})

	_, err := chain(context.Background(), testRequest)
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "llm send failed") || !strings.Contains(output, "provider down") {
		t.Errorf("expected failure entry, got:\n%s", output)
	}
	if strings.Contains(output, "llm send completed") {
		t.Errorf("did not expect completion entry, got:\n%s", output)
	}
}

func TestLoggingMiddleware_NilLogger(t *testing.T) {
	chain := NewLoggingMiddleware(nil, LogLevelMinimal)(okNext)
	if _, err := chain(context.Background(), testRequest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   LogLevel
		wantOK bool
	}{
		{"minimal", LogLevelMinimal, true},
		{"standard", LogLevelStandard, true},
		{"verbose", LogLevelVerbose, true},
		{"loud", LogLevelStandard, false},
	}
	for _, tt := range tests {
		got, ok := ParseLogLevel(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseLogLevel(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

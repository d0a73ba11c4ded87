package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/leofalp/reactagent/providers/observability"
)

type valueResponse struct {
	Value int `json:"value"`
}

// TestDoPostSync_Success verifies that a 200 response with valid JSON is
// unmarshaled into the output struct and the auth header is sent.
func TestDoPostSync_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("expected bearer auth, got %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"value":42}`)
	}))
	defer server.Close()

	_, result, err := DoPostSync[valueResponse](context.Background(), server.Client(), server.URL, "test-key", map[string]string{"q": "test"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result == nil || result.Value != 42 {
		t.Fatalf("expected Value=42, got %+v", result)
	}
}

func TestDoPostSync_NoAPIKeyOmitsHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Header["Authorization"]; ok {
			t.Error("expected no Authorization header")
		}
		fmt.Fprint(w, `{"value":1}`)
	}))
	defer server.Close()

	if _, _, err := DoPostSync[valueResponse](context.Background(), nil, server.URL, "", struct{}{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestDoPostSync_Non2xxStatus verifies that a non-2xx status yields a
// *StatusError carrying the code and body.
func TestDoPostSync_Non2xxStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"slow down"}}`)
	}))
	defer server.Close()

	res, _, err := DoPostSync[valueResponse](context.Background(), server.Client(), server.URL, "k", nil)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %T: %v", err, err)
	}
	if statusErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", statusErr.StatusCode)
	}
	if !strings.Contains(string(statusErr.Body), "slow down") {
		t.Errorf("expected body preserved, got %q", statusErr.Body)
	}
	if res == nil || res.StatusCode != http.StatusTooManyRequests {
		t.Error("expected the HTTP response to be returned alongside the error")
	}
}

func TestDoPostSync_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	}))
	defer server.Close()

	_, _, err := DoPostSync[valueResponse](context.Background(), server.Client(), server.URL, "k", nil)

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected *DecodeError, got %T: %v", err, err)
	}
	if decodeErr.Preview != "not json" {
		t.Errorf("expected preview of the body, got %q", decodeErr.Preview)
	}
}

func TestDoPostSync_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, _, err := DoPostSync[valueResponse](context.Background(), nil, url, "k", nil)

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected *TransportError, got %T: %v", err, err)
	}
}

func TestDoPostSync_ContextDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, _, err := DoPostSync[valueResponse](ctx, server.Client(), server.URL, "k", nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded to be reachable, got %v", err)
	}
}

func TestDoPostSync_MarshalError(t *testing.T) {
	_, _, err := DoPostSync[valueResponse](context.Background(), nil, "http://unused", "k", make(chan int))
	if err == nil || !strings.Contains(err.Error(), "error marshaling body") {
		t.Fatalf("expected marshal error, got %v", err)
	}
}

// TestDoPostSync_SpanEvents verifies the request and response events recorded
// on the span carried by ctx.
func TestDoPostSync_SpanEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"value":7}`)
	}))
	defer server.Close()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	ctx, span := tp.Tracer("test").Start(context.Background(), "request")

	if _, _, err := DoPostSync[valueResponse](ctx, server.Client(), server.URL, "k", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	span.End()

	events := recorder.Ended()[0].Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Name != observability.EventHTTPRequestPrepared || events[1].Name != observability.EventHTTPResponse {
		t.Errorf("unexpected event names: %s, %s", events[0].Name, events[1].Name)
	}
}

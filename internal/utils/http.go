package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/leofalp/reactagent/providers/observability"
)

// TransportError reports that no HTTP response was received.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "error sending request: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// StatusError reports a non-2xx HTTP response. Body holds the raw response body.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("non-2xx status %d: %s", e.StatusCode, TruncateString(string(e.Body), DefaultMaxStringLength))
}

// DecodeError reports a 2xx response whose body could not be unmarshaled.
type DecodeError struct {
	StatusCode int
	Preview    string
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("error unmarshaling response body (status %d): %v\nResponse preview: %s", e.StatusCode, e.Err, e.Preview)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DoPostSync performs a synchronous HTTP POST request with JSON body and parses the response.
// When ctx carries a recording span, request and response events are added to it.
//
// Error Handling Strategy:
//   - Connection failures return *TransportError (context errors stay reachable via errors.Is)
//   - Non-2xx responses return *StatusError with the raw body
//   - JSON parsing errors return *DecodeError with a response preview
//
// The response body is always closed; close errors are logged without
// overriding the primary result.
func DoPostSync[OutputStruct any](ctx context.Context, client *http.Client, url string, apiKey string, body any) (*http.Response, *OutputStruct, error) {
	span := trace.SpanFromContext(ctx)

	httpClient := client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, nil, fmt.Errorf("error marshaling body: %w", err)
	}

	span.AddEvent(observability.EventHTTPRequestPrepared, trace.WithAttributes(
		attribute.String(observability.AttrHTTPMethod, http.MethodPost),
		attribute.String(observability.AttrHTTPURL, url),
		attribute.Int(observability.AttrHTTPRequestBodySize, len(jsonBody)),
	))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	requestStart := time.Now()
	res, err := httpClient.Do(req)
	requestDuration := time.Since(requestStart)

	if err != nil {
		span.AddEvent(observability.EventHTTPRequestError, trace.WithAttributes(
			attribute.String("error", err.Error()),
			attribute.String(observability.AttrHTTPDuration, requestDuration.String()),
		))
		return nil, nil, &TransportError{Err: err}
	}
	defer func(Body io.ReadCloser) {
		if closeErr := Body.Close(); closeErr != nil {
			slog.Warn("failed to close response body", "error", closeErr.Error(), "url", url)
		}
	}(res.Body)

	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return res, nil, &TransportError{Err: fmt.Errorf("error reading response body: %w", err)}
	}

	span.AddEvent(observability.EventHTTPResponse, trace.WithAttributes(
		attribute.Int(observability.AttrHTTPStatusCode, res.StatusCode),
		attribute.Int(observability.AttrHTTPResponseBodySize, len(respBody)),
		attribute.String(observability.AttrHTTPDuration, requestDuration.String()),
	))

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return res, nil, &StatusError{StatusCode: res.StatusCode, Body: respBody}
	}

	var resStruct OutputStruct
	if err = json.Unmarshal(respBody, &resStruct); err != nil {
		return res, nil, &DecodeError{StatusCode: res.StatusCode, Preview: TruncateString(string(respBody), 500), Err: err}
	}

	return res, &resStruct, nil
}

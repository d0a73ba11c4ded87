package ai

import (
	"context"
	"errors"
	"fmt"
)

// ErrExternalService matches every *ExternalServiceError through [errors.Is].
//
// Example:
//
//	if errors.Is(err, ai.ErrExternalService) {
//	    // the chat completion call failed
//	}
var ErrExternalService = errors.New("reactagent: external service error")

// ErrorKind classifies why a call to the chat-completion service failed.
type ErrorKind string

const (
	KindNetwork           ErrorKind = "network"            // transport failure, no HTTP response
	KindAuthentication    ErrorKind = "authentication"     // 401 / 403
	KindRateLimit         ErrorKind = "rate_limit"         // 429
	KindServer            ErrorKind = "server"             // 5xx
	KindRequest           ErrorKind = "request"            // any other non-2xx status
	KindMalformedResponse ErrorKind = "malformed_response" // body could not be decoded
	KindEmptyResponse     ErrorKind = "empty_response"     // no choices returned
	KindTimeout           ErrorKind = "timeout"            // context deadline exceeded
	KindCanceled          ErrorKind = "canceled"           // context canceled
	KindUnknown           ErrorKind = "unknown"
)

// ExternalServiceError reports a failed chat completion request.
type ExternalServiceError struct {
	Provider   string
	Kind       ErrorKind
	StatusCode int // zero when no HTTP response was received
	Err        error
}

func (e *ExternalServiceError) Error() string {
	msg := fmt.Sprintf("%s: %s error", e.Provider, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

func (e *ExternalServiceError) Is(target error) bool { return target == ErrExternalService }

// KindForStatus maps an HTTP status code to an error kind.
func KindForStatus(status int) ErrorKind {
	switch {
	case status == 401 || status == 403:
		return KindAuthentication
	case status == 429:
		return KindRateLimit
	case status >= 500:
		return KindServer
	default:
		return KindRequest
	}
}

// AsExternalServiceError returns err unchanged when it already carries an
// *ExternalServiceError and otherwise wraps it, classifying context errors as
// timeout or canceled. A nil err returns nil.
func AsExternalServiceError(provider string, err error) error {
	if err == nil {
		return nil
	}

	var serviceErr *ExternalServiceError
	if errors.As(err, &serviceErr) {
		return err
	}

	kind := KindUnknown
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = KindTimeout
	case errors.Is(err, context.Canceled):
		kind = KindCanceled
	}

	return &ExternalServiceError{Provider: provider, Kind: kind, Err: err}
}

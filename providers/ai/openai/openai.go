package openai

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/leofalp/reactagent/internal/utils"
	"github.com/leofalp/reactagent/providers/ai"
)

const (
	defaultBaseURL          = "https://api.openai.com/v1"
	chatCompletionsEndpoint = "/chat/completions"
	providerName            = "openai"
)

// OpenAIProvider implements the Provider interface for OpenAI-compatible APIs.
// It holds no conversation state and is safe for concurrent use once configured.
type OpenAIProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// Ensure OpenAIProvider implements ai.Provider at compile time.
var _ ai.Provider = (*OpenAIProvider)(nil)

// New creates a provider from OPENAI_API_KEY and OPENAI_BASE_URL, falling
// back to the public OpenAI endpoint.
func New() *OpenAIProvider {
	return &OpenAIProvider{
		apiKey:  os.Getenv("OPENAI_API_KEY"),
		client:  &http.Client{},
		baseURL: normalizeBaseURL(os.Getenv("OPENAI_BASE_URL")),
	}
}

// WithAPIKey sets the API key for the provider
func (p *OpenAIProvider) WithAPIKey(apiKey string) *OpenAIProvider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL sets the base URL for the API. An empty value restores the default.
func (p *OpenAIProvider) WithBaseURL(baseURL string) *OpenAIProvider {
	p.baseURL = normalizeBaseURL(baseURL)
	return p
}

// WithHttpClient sets a custom HTTP client
func (p *OpenAIProvider) WithHttpClient(httpClient *http.Client) *OpenAIProvider {
	p.client = httpClient
	return p
}

// BaseURL returns the configured API base URL.
func (p *OpenAIProvider) BaseURL() string {
	return p.baseURL
}

// Name implements ai.Provider.
func (p *OpenAIProvider) Name() string {
	return providerName
}

// SendMessage posts the full transcript to /chat/completions and returns the
// first choice.
func (p *OpenAIProvider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	if p.apiKey == "" {
		return nil, &ai.ExternalServiceError{Provider: providerName, Kind: ai.KindAuthentication, Err: errors.New("API key is not set")}
	}
	if request.Model == "" {
		return nil, &ai.ExternalServiceError{Provider: providerName, Kind: ai.KindRequest, Err: errors.New("model is required")}
	}

	_, resp, err := utils.DoPostSync[chatCompletionResponse](ctx, p.client, p.baseURL+chatCompletionsEndpoint, p.apiKey, requestToChatCompletion(request))
	if err != nil {
		return nil, classifyError(err)
	}

	if resp == nil {
		return nil, &ai.ExternalServiceError{Provider: providerName, Kind: ai.KindMalformedResponse, Err: errors.New("empty response body")}
	}

	if len(resp.Choices) == 0 {
		return nil, &ai.ExternalServiceError{Provider: providerName, Kind: ai.KindEmptyResponse, Err: errors.New("no choices in response")}
	}

	return responseFromChatCompletion(*resp), nil
}

// classifyError maps DoPostSync failures onto ExternalServiceError kinds.
// Context errors win over the transport wrapper that carries them.
func classifyError(err error) error {
	serviceErr := &ai.ExternalServiceError{Provider: providerName, Kind: ai.KindUnknown, Err: err}

	var statusErr *utils.StatusError
	var decodeErr *utils.DecodeError
	var transportErr *utils.TransportError

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		serviceErr.Kind = ai.KindTimeout
	case errors.Is(err, context.Canceled):
		serviceErr.Kind = ai.KindCanceled
	case errors.As(err, &statusErr):
		serviceErr.Kind = ai.KindForStatus(statusErr.StatusCode)
		serviceErr.StatusCode = statusErr.StatusCode
		serviceErr.Err = errors.New(apiErrorMessage(statusErr.Body))
	case errors.As(err, &decodeErr):
		serviceErr.Kind = ai.KindMalformedResponse
		serviceErr.StatusCode = decodeErr.StatusCode
	case errors.As(err, &transportErr):
		serviceErr.Kind = ai.KindNetwork
	}

	return serviceErr
}

func normalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return defaultBaseURL
	}
	return baseURL
}

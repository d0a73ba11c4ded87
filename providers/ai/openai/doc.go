// Package openai implements [ai.Provider] for OpenAI-compatible
// /chat/completions endpoints (OpenAI, Azure deployments, OpenRouter, Ollama
// and similar hosts).
//
// The main entry point is [New], which reads OPENAI_API_KEY and
// OPENAI_BASE_URL from the environment. Use [OpenAIProvider.WithAPIKey],
// [OpenAIProvider.WithBaseURL] and [OpenAIProvider.WithHttpClient] to
// override them programmatically. Every failure of the remote call is
// returned as *ai.ExternalServiceError.
package openai

// Package ai defines the shared, provider-agnostic types and interfaces used
// to talk to a chat-completion service. Provider implementations translate
// these types to their own wire format, keeping the agent decoupled from
// provider-specific details.
//
// The central interface is [Provider]. Request data flows through
// [ChatRequest] and responses are returned as [ChatResponse]. Failures of the
// remote call are reported as [*ExternalServiceError].
package ai

// Package observability holds the OpenTelemetry conventions shared by the
// agent, its middleware and the HTTP layer: attribute keys, span and event
// names, and small helpers for recording usage and errors on a span.
//
// Nothing here installs a TracerProvider. Without one, the global no-op
// provider is used and every span is discarded.
package observability

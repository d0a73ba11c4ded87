// Package agent provides [Agent], a stateful conversation over an
// [ai.Provider]. Each [Agent.Invoke] appends a user turn, sends the whole
// transcript to the model and appends the reply. The pair is committed only
// after a successful response, so a failed call leaves the transcript as it
// was.
//
// Agents are safe for concurrent use: invocations on the same Agent are
// serialized. Requests pass through an optional [Middleware] chain (see the
// middleware sub-package) and are bounded by a per-request timeout.
package agent

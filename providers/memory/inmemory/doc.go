// Package inmemory provides a concurrency-safe, slice-backed implementation
// of [memory.Provider]. Nothing is persisted: the transcript lives as long as
// the [ArrayMemory] value. The main entry point is [New].
package inmemory

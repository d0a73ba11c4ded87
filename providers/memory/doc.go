// Package memory defines the [Provider] interface used to hold a conversation
// transcript. A transcript only grows: providers expose appends and reads but
// no edit, pop or clear operation.
package memory

// Package slogobs builds the *slog.Logger used by the command line tools.
// Its [Handler] writes compact single-line records or JSON objects, and the
// level and format can be taken from the environment
// (REACTAGENT_LOG_LEVEL, REACTAGENT_LOG_FORMAT, with LOG_LEVEL and LOG_FORMAT
// as fallbacks). The main entry point is [New].
package slogobs

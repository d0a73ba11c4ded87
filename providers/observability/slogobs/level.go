package slogobs

import (
	"log/slog"
	"os"
	"strings"
)

// LevelTrace sits below slog.LevelDebug and enables verbose request dumps.
const LevelTrace = slog.Level(-8)

// ParseLevel parses a level name (trace, debug, info, warn/warning, error).
// Unknown values yield slog.LevelInfo.
func ParseLevel(s string) slog.Level {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LevelFromEnv reads REACTAGENT_LOG_LEVEL, then LOG_LEVEL.
func LevelFromEnv() slog.Level {
	if level := os.Getenv("REACTAGENT_LOG_LEVEL"); level != "" {
		return ParseLevel(level)
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		return ParseLevel(level)
	}
	return slog.LevelInfo
}

// levelString maps a level to its label, treating anything below Debug as TRACE.
func levelString(level slog.Level) string {
	switch {
	case level < slog.LevelDebug:
		return "TRACE"
	case level < slog.LevelInfo:
		return "DEBUG"
	case level < slog.LevelWarn:
		return "INFO"
	case level < slog.LevelError:
		return "WARN"
	default:
		return "ERROR"
	}
}

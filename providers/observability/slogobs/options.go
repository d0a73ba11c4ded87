package slogobs

import (
	"io"
	"log/slog"
	"os"
)

// Option is a functional option for configuring the logger built by [New].
type Option func(*config)

type config struct {
	format Format
	level  slog.Leveler
	output io.Writer
	colors bool
}

// WithFormat sets the log output format.
func WithFormat(format Format) Option {
	return func(c *config) {
		c.format = format
	}
}

// WithLevel sets the minimum log level. A *slog.LevelVar can be passed to
// change the level after the logger is built.
func WithLevel(level slog.Leveler) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithOutput sets the output writer for logs.
func WithOutput(output io.Writer) Option {
	return func(c *config) {
		c.output = output
	}
}

// WithColors forces ANSI color codes in compact format.
func WithColors(enabled bool) Option {
	return func(c *config) {
		c.colors = enabled
	}
}

func defaultConfig() *config {
	return &config{
		format: FormatFromEnv(),
		level:  LevelFromEnv(),
		output: os.Stderr,
	}
}

func applyOptions(opts ...Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// New builds a logger from the environment defaults overridden by opts.
//
//	logger := slogobs.New(slogobs.WithLevel(slog.LevelDebug))
//	slog.SetDefault(logger)
func New(opts ...Option) *slog.Logger {
	cfg := applyOptions(opts...)
	return slog.New(NewHandler(&HandlerOptions{
		Format: cfg.format,
		Level:  cfg.level,
		Output: cfg.output,
		Colors: cfg.colors,
	}))
}

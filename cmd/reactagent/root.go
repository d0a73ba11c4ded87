package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/leofalp/reactagent/core/agent"
	"github.com/leofalp/reactagent/core/agent/middleware"
	"github.com/leofalp/reactagent/core/config"
	"github.com/leofalp/reactagent/internal/tracing"
	"github.com/leofalp/reactagent/providers/ai/openai"
	"github.com/leofalp/reactagent/providers/observability/slogobs"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

const rootLongDesc string = `reactagent sends messages to an OpenAI-compatible chat completion API
and keeps the conversation in memory for the life of the command.

Configuration is read from the environment, the nearest .env file and an
optional config file. OPENAI_API_KEY is required.`

// app holds the global flags shared by every subcommand.
type app struct {
	configFile  string
	noDotenv    bool
	model       string
	temperature float64
	timeout     time.Duration
	raw         bool
	logLevel    string

	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "reactagent",
		Short:         "Chat with a hosted LLM using the ReAct prompting pattern",
		Long:          rootLongDesc,
		Version:       version,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.logger = a.newLogger(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "Path to a config file (yaml, json or toml)")
	flags.BoolVar(&a.noDotenv, "no-dotenv", false, "Do not load a .env file")
	flags.StringVar(&a.model, "model", "", "Model identifier (overrides REACTAGENT_MODEL)")
	flags.Float64Var(&a.temperature, "temperature", 0, "Sampling temperature between 0 and 2")
	flags.DurationVar(&a.timeout, "timeout", 0, "Per-request timeout, 0 disables it")
	flags.BoolVar(&a.raw, "raw", false, "Print replies as plain text instead of rendered markdown")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: trace, debug, info, warn or error")

	cmd.AddCommand(newAskCmd(a), newChatCmd(a), newPromptCmd())

	return cmd
}

// newLogger builds the stderr logger. The flag wins over REACTAGENT_LOG_LEVEL
// and LOG_LEVEL; without either the CLI only reports warnings.
func (a *app) newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case cmd.Flags().Changed("log-level"):
		level = slogobs.ParseLevel(a.logLevel)
	case os.Getenv("REACTAGENT_LOG_LEVEL") != "" || os.Getenv("LOG_LEVEL") != "":
		level = slogobs.LevelFromEnv()
	}

	return slogobs.New(
		slogobs.WithLevel(level),
		slogobs.WithOutput(cmd.ErrOrStderr()),
	)
}

// loadConfig reads the configuration and applies flag overrides.
func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var opts []config.Option
	if a.configFile != "" {
		opts = append(opts, config.WithConfigFile(a.configFile))
	}
	if a.noDotenv {
		opts = append(opts, config.WithoutDotenv())
	}

	cfg, err := config.Load(opts...)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("model") {
		cfg.Model = a.model
	}
	if flags.Changed("temperature") {
		cfg.Temperature = a.temperature
	}
	if flags.Changed("timeout") {
		cfg.Timeout = a.timeout
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a.logger.Debug("configuration loaded",
		slog.String("model", cfg.Model),
		slog.String("base_url", cfg.BaseURL),
		slog.String("dotenv", cfg.DotenvFile),
		slog.String("config_file", cfg.ConfigFile),
	)

	return cfg, nil
}

// session is one agent plus the resources it needs for the life of a command.
type session struct {
	agent    *agent.Agent
	render   *renderer
	shutdown tracing.ShutdownFunc
}

// Close flushes pending spans.
func (s *session) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	return s.shutdown(ctx)
}

// newSession wires config, tracing, the OpenAI provider and the middleware
// chain into a new agent seeded with systemPrompt.
func (a *app) newSession(cmd *cobra.Command, systemPrompt string) (*session, error) {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	tp, shutdown, err := tracing.Setup(cmd.Context(), tracing.Config{
		Endpoint:       cfg.OTLPEndpoint,
		Insecure:       cfg.OTLPInsecure,
		ServiceVersion: version,
	})
	if err != nil {
		return nil, fmt.Errorf("could not set up tracing: %w", err)
	}

	provider := openai.New().
		WithAPIKey(cfg.APIKey).
		WithBaseURL(cfg.BaseURL)

	logLevel := middleware.LogLevelStandard
	if a.logger.Enabled(cmd.Context(), slogobs.LevelTrace) {
		logLevel = middleware.LogLevelVerbose
	}

	ag, err := agent.New(provider,
		agent.WithSystemPrompt(systemPrompt),
		agent.WithModel(cfg.Model),
		agent.WithTemperature(cfg.Temperature),
		agent.WithMaxTokens(cfg.MaxTokens),
		agent.WithRequestTimeout(cfg.Timeout),
		agent.WithLogger(a.logger),
		agent.WithTracerProvider(tp),
		agent.WithMiddleware(
			middleware.NewTracingMiddleware(tp),
			middleware.NewRateLimitMiddleware(cfg.RequestsPerMinute, 1),
			middleware.NewLoggingMiddleware(a.logger, logLevel),
		),
	)
	if err != nil {
		_ = shutdown(cmd.Context())
		return nil, err
	}

	return &session{
		agent:    ag,
		render:   newRenderer(cmd.OutOrStdout(), a.raw),
		shutdown: shutdown,
	}, nil
}

package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Environment variables read by [Load].
const (
	EnvAPIKey            = "OPENAI_API_KEY"
	EnvBaseURL           = "OPENAI_BASE_URL"
	EnvModel             = "REACTAGENT_MODEL"
	EnvTemperature       = "REACTAGENT_TEMPERATURE"
	EnvMaxTokens         = "REACTAGENT_MAX_TOKENS"
	EnvTimeout           = "REACTAGENT_TIMEOUT"
	EnvRequestsPerMinute = "REACTAGENT_REQUESTS_PER_MINUTE"
	EnvOTLPEndpoint      = "REACTAGENT_OTLP_ENDPOINT"
	EnvOTLPInsecure      = "REACTAGENT_OTLP_INSECURE"
)

// Defaults applied when neither the environment nor the config file sets a value.
const (
	DefaultBaseURL     = "https://api.openai.com/v1"
	DefaultModel       = "gpt-3.5-turbo"
	DefaultTemperature = 0.0
	DefaultTimeout     = 60 * time.Second

	MaxTemperature = 2.0
)

// config file keys, each bound to one environment variable.
const (
	keyAPIKey            = "api_key"
	keyBaseURL           = "base_url"
	keyModel             = "model"
	keyTemperature       = "temperature"
	keyMaxTokens         = "max_tokens"
	keyTimeout           = "timeout"
	keyRequestsPerMinute = "requests_per_minute"
	keyOTLPEndpoint      = "otlp_endpoint"
	keyOTLPInsecure      = "otlp_insecure"
)

var envBindings = map[string]string{
	keyAPIKey:            EnvAPIKey,
	keyBaseURL:           EnvBaseURL,
	keyModel:             EnvModel,
	keyTemperature:       EnvTemperature,
	keyMaxTokens:         EnvMaxTokens,
	keyTimeout:           EnvTimeout,
	keyRequestsPerMinute: EnvRequestsPerMinute,
	keyOTLPEndpoint:      EnvOTLPEndpoint,
	keyOTLPInsecure:      EnvOTLPInsecure,
}

// Config holds validated settings.
type Config struct {
	APIKey            string
	BaseURL           string
	Model             string
	Temperature       float64
	MaxTokens         int           // 0 leaves the reply length to the API
	Timeout           time.Duration // 0 disables the per-request timeout
	RequestsPerMinute int           // 0 disables client-side rate limiting
	OTLPEndpoint      string        // empty disables trace export
	OTLPInsecure      bool

	// Sources actually read, for diagnostics.
	DotenvFile string
	ConfigFile string
}

// Option configures [Load].
type Option func(*loadOptions)

type loadOptions struct {
	configFile string
	dotenvDir  string
	skipDotenv bool
}

// WithConfigFile reads settings from path. The format follows the file
// extension (yaml, json, toml, ...). A missing explicit file is an error.
func WithConfigFile(path string) Option {
	return func(o *loadOptions) {
		o.configFile = path
	}
}

// WithDotenvDir starts the .env search at dir instead of the working directory.
func WithDotenvDir(dir string) Option {
	return func(o *loadOptions) {
		o.dotenvDir = dir
	}
}

// WithoutDotenv disables .env discovery.
func WithoutDotenv() Option {
	return func(o *loadOptions) {
		o.skipDotenv = true
	}
}

// Load reads and validates the configuration. Validation failures are
// returned as *ConfigurationError.
func Load(opts ...Option) (*Config, error) {
	o := loadOptions{dotenvDir: "."}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := &Config{}

	if !o.skipDotenv {
		path, err := loadDotenv(o.dotenvDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
		cfg.DotenvFile = path
	}

	v := viper.New()
	v.SetDefault(keyBaseURL, DefaultBaseURL)
	v.SetDefault(keyModel, DefaultModel)
	v.SetDefault(keyTemperature, DefaultTemperature)
	v.SetDefault(keyMaxTokens, 0)
	v.SetDefault(keyTimeout, DefaultTimeout.String())
	v.SetDefault(keyRequestsPerMinute, 0)
	v.SetDefault(keyOTLPInsecure, false)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if o.configFile != "" {
		v.SetConfigFile(o.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		cfg.ConfigFile = v.ConfigFileUsed()
	}

	if err := decode(v, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// decode copies viper values into cfg. Numbers and durations are parsed
// explicitly so malformed values are reported instead of read as zero.
func decode(v *viper.Viper, cfg *Config) error {
	cfg.APIKey = strings.TrimSpace(v.GetString(keyAPIKey))
	cfg.BaseURL = strings.TrimSpace(v.GetString(keyBaseURL))
	cfg.Model = strings.TrimSpace(v.GetString(keyModel))
	cfg.OTLPEndpoint = strings.TrimSpace(v.GetString(keyOTLPEndpoint))

	var err error
	if cfg.Temperature, err = parseFloat(v, keyTemperature); err != nil {
		return err
	}
	if cfg.MaxTokens, err = parseInt(v, keyMaxTokens); err != nil {
		return err
	}
	if cfg.RequestsPerMinute, err = parseInt(v, keyRequestsPerMinute); err != nil {
		return err
	}
	if cfg.Timeout, err = parseDuration(v, keyTimeout); err != nil {
		return err
	}
	if cfg.OTLPInsecure, err = parseBool(v, keyOTLPInsecure); err != nil {
		return err
	}

	return nil
}

func parseFloat(v *viper.Viper, key string) (float64, error) {
	raw := strings.TrimSpace(v.GetString(key))
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &ConfigurationError{Key: envBindings[key], Reason: fmt.Sprintf("must be a number, got %q", raw)}
	}
	return f, nil
}

func parseInt(v *viper.Viper, key string) (int, error) {
	raw := strings.TrimSpace(v.GetString(key))
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ConfigurationError{Key: envBindings[key], Reason: fmt.Sprintf("must be an integer, got %q", raw)}
	}
	return n, nil
}

// parseDuration accepts Go duration strings and bare integers as seconds.
func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, &ConfigurationError{Key: envBindings[key], Reason: fmt.Sprintf("must be a duration, got %q", raw)}
	}
	return d, nil
}

func parseBool(v *viper.Viper, key string) (bool, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &ConfigurationError{Key: envBindings[key], Reason: fmt.Sprintf("must be a boolean, got %q", raw)}
	}
	return b, nil
}

// Validate checks every setting and returns the first problem found as a
// *ConfigurationError. Callers that override fields after [Load], such as
// command-line flags, should validate again.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return &ConfigurationError{Key: EnvAPIKey, Reason: "is not set"}
	}

	if err := validateBaseURL(c.BaseURL); err != nil {
		return err
	}

	if strings.TrimSpace(c.Model) == "" {
		return &ConfigurationError{Key: EnvModel, Reason: "must not be empty"}
	}

	if c.Temperature < 0 || c.Temperature > MaxTemperature {
		return &ConfigurationError{Key: EnvTemperature, Reason: fmt.Sprintf("must be between 0 and %g, got %g", MaxTemperature, c.Temperature)}
	}

	if c.MaxTokens < 0 {
		return &ConfigurationError{Key: EnvMaxTokens, Reason: fmt.Sprintf("must not be negative, got %d", c.MaxTokens)}
	}

	if c.Timeout < 0 {
		return &ConfigurationError{Key: EnvTimeout, Reason: fmt.Sprintf("must not be negative, got %s", c.Timeout)}
	}

	if c.RequestsPerMinute < 0 {
		return &ConfigurationError{Key: EnvRequestsPerMinute, Reason: fmt.Sprintf("must not be negative, got %d", c.RequestsPerMinute)}
	}

	return nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return &ConfigurationError{Key: EnvBaseURL, Reason: fmt.Sprintf("must be an absolute http(s) URL, got %q", raw)}
	}
	return nil
}

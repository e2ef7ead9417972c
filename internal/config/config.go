// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/interview-coach/internal/scoring"
)

// Defaults applied by Default and MergeWithDefaults.
const (
	DefaultProvider      = "gemini"
	DefaultStore         = "memory"
	DefaultPylintPath    = "pylint"
	DefaultLLMTimeout    = 60 * time.Second
	DefaultRetryAttempts = 3
	DefaultConcurrency   = 4
	DefaultAddr          = ":8080"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvGeminiAPIKey    = "GEMINI_API_KEY"
	EnvOpenAIAPIKey    = "OPENAI_API_KEY"
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
	EnvDatabaseURL     = "DATABASE_URL"
	EnvRedisURL        = "REDIS_URL"
)

// Models overrides the provider's default model per tier.
type Models struct {
	Lite     string `json:"lite,omitempty" yaml:"lite,omitempty"`
	Standard string `json:"standard,omitempty" yaml:"standard,omitempty"`
	Advanced string `json:"advanced,omitempty" yaml:"advanced,omitempty"`
}

// Config represents the configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// LLM
	Provider      string `json:"provider,omitempty" yaml:"provider,omitempty" validate:"omitempty,oneof=gemini openai anthropic"`
	APIKey        string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	Models        Models `json:"models,omitempty" yaml:"models,omitempty"`
	BaseURL       string `json:"base_url,omitempty" yaml:"base_url,omitempty" validate:"omitempty,url"`
	LLMTimeout    string `json:"llm_timeout,omitempty" yaml:"llm_timeout,omitempty"`
	RetryAttempts int    `json:"retry_attempts,omitempty" yaml:"retry_attempts,omitempty" validate:"gte=0,lte=10"`

	// Storage
	Store       string `json:"store,omitempty" yaml:"store,omitempty" validate:"omitempty,oneof=memory postgres redis"`
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"`
	RedisURL    string `json:"redis_url,omitempty" yaml:"redis_url,omitempty" validate:"omitempty,url"`

	// Scoring
	PylintPath string          `json:"pylint_path,omitempty" yaml:"pylint_path,omitempty"`
	Weights    scoring.Weights `json:"weights,omitempty" yaml:"weights,omitempty"`

	// Behavior
	Concurrency int    `json:"concurrency,omitempty" yaml:"concurrency,omitempty" validate:"gte=0,lte=64"`
	Addr        string `json:"addr,omitempty" yaml:"addr,omitempty"`
	Verbose     bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Provider:      DefaultProvider,
		LLMTimeout:    DefaultLLMTimeout.String(),
		RetryAttempts: DefaultRetryAttempts,
		Store:         DefaultStore,
		PylintPath:    DefaultPylintPath,
		Weights:       scoring.DefaultWeights,
		Concurrency:   DefaultConcurrency,
		Addr:          DefaultAddr,
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension
// (.yaml/.yml for YAML, anything else for JSON).
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	var errs []error

	if err := validator.New().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				errs = append(errs, fmt.Errorf("config error: '%s' fails '%s' (got %v)", jsonName(fe.Field()), fe.Tag(), fe.Value()))
			}
		} else {
			errs = append(errs, fmt.Errorf("config error: %w", err))
		}
	}

	if c.LLMTimeout != "" {
		if d, err := time.ParseDuration(c.LLMTimeout); err != nil {
			errs = append(errs, fmt.Errorf("config error: 'llm_timeout' is not a duration: %w", err))
		} else if d < 0 {
			errs = append(errs, fmt.Errorf("config error: 'llm_timeout' must be non-negative"))
		}
	}

	if err := c.Weights.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("config error: invalid weights: %w", err))
	}

	if c.Store == "postgres" && c.DatabaseURL == "" {
		errs = append(errs, fmt.Errorf("config error: store 'postgres' requires 'database_url'"))
	}
	if c.Store == "redis" && c.RedisURL == "" {
		errs = append(errs, fmt.Errorf("config error: store 'redis' requires 'redis_url'"))
	}

	return errors.Join(errs...)
}

// jsonName maps a struct field name to its config key.
func jsonName(field string) string {
	switch field {
	case "BaseURL":
		return "base_url"
	case "RetryAttempts":
		return "retry_attempts"
	case "RedisURL":
		return "redis_url"
	}
	return strings.ToLower(field)
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Models.Lite == "" {
		result.Models.Lite = defaults.Models.Lite
	}
	if result.Models.Standard == "" {
		result.Models.Standard = defaults.Models.Standard
	}
	if result.Models.Advanced == "" {
		result.Models.Advanced = defaults.Models.Advanced
	}
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.LLMTimeout == "" {
		result.LLMTimeout = defaults.LLMTimeout
	}
	if result.Store == "" {
		result.Store = defaults.Store
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}
	if result.PylintPath == "" {
		result.PylintPath = defaults.PylintPath
	}
	if result.Addr == "" {
		result.Addr = defaults.Addr
	}

	// Int fields: use default if zero
	if result.RetryAttempts == 0 {
		result.RetryAttempts = defaults.RetryAttempts
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}

	// Weights are replaced as a whole
	if result.Weights.IsZero() {
		result.Weights = defaults.Weights
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ApplyEnv fills the API key, database URL and redis URL from the environment
// when they are empty. The API key variable depends on the provider.
func (c *Config) ApplyEnv() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv(APIKeyEnvVar(c.Provider))
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv(EnvDatabaseURL)
	}
	if c.RedisURL == "" {
		c.RedisURL = os.Getenv(EnvRedisURL)
	}
}

// APIKeyEnvVar returns the environment variable holding the provider's API key.
func APIKeyEnvVar(provider string) string {
	switch strings.ToLower(provider) {
	case "openai":
		return EnvOpenAIAPIKey
	case "anthropic":
		return EnvAnthropicAPIKey
	default:
		return EnvGeminiAPIKey
	}
}

// Timeout returns the LLM call timeout, or DefaultLLMTimeout if unset or invalid.
func (c *Config) Timeout() time.Duration {
	if c.LLMTimeout == "" {
		return DefaultLLMTimeout
	}
	d, err := time.ParseDuration(c.LLMTimeout)
	if err != nil {
		return DefaultLLMTimeout
	}
	return d
}

// EffectiveWeights returns the configured weights, or the defaults when none are set.
func (c *Config) EffectiveWeights() scoring.Weights {
	if c.Weights.IsZero() {
		return scoring.DefaultWeights
	}
	return c.Weights
}

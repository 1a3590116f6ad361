// Package config loads the gateway and client configuration through Viper.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sevigo/review-bridge/internal/logger"
)

const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"

	DefaultAPIBaseURL       = "http://localhost:3000"
	DefaultRequestTimeoutMs = 60_000
)

// Config holds the application's configuration values.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	AI      AIConfig      `mapstructure:"ai" yaml:"ai"`
	Logging logger.Config `mapstructure:"logging" yaml:"logging"`
	Client  ClientConfig  `mapstructure:"client" yaml:"client"`
}

// ServerConfig configures the review gateway's HTTP listener.
type ServerConfig struct {
	Port         string        `mapstructure:"port" yaml:"port"`
	CORSOrigin   string        `mapstructure:"cors_origin" yaml:"cors_origin"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes" yaml:"max_body_bytes"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
}

// AIConfig selects and configures the review provider.
type AIConfig struct {
	Provider       string        `mapstructure:"provider" yaml:"provider"`
	GeminiAPIKey   string        `mapstructure:"gemini_api_key" yaml:"-"`
	GeneratorModel string        `mapstructure:"generator_model" yaml:"generator_model"`
	OllamaHost     string        `mapstructure:"ollama_host" yaml:"ollama_host"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
}

// ClientConfig is consumed by the review client hosts.
type ClientConfig struct {
	APIBaseURL       string `mapstructure:"api_base_url" yaml:"api_base_url"`
	RequestTimeoutMs int    `mapstructure:"request_timeout_ms" yaml:"request_timeout_ms"`
}

// RequestTimeout returns the client round-trip deadline.
func (c ClientConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMs) * time.Millisecond
}

// LoadConfig reads configuration from the global Viper instance so that
// flags bound by the CLI take precedence.
func LoadConfig() (*Config, error) {
	return Load(viper.GetViper())
}

// Load reads configuration from an optional config.yaml and the environment,
// sets defaults, normalizes values and validates the result.
func Load(v *viper.Viper) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	// The credential keeps the names the gateway has always read.
	if err := v.BindEnv("ai.gemini_api_key", "GOOGLE_GEMINI_KEY", "GEMINI_API_KEY", "AI_GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind provider credential: %w", err)
	}

	if err := v.BindEnv("server.cors_origin", "SERVER_CORS_ORIGIN", "CORS_ORIGIN"); err != nil {
		return nil, fmt.Errorf("failed to bind cors origin: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.cors_origin", "http://localhost:5173")
	v.SetDefault("server.max_body_bytes", 256*1024)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 130*time.Second)

	v.SetDefault("ai.provider", ProviderGemini)
	v.SetDefault("ai.gemini_api_key", "")
	v.SetDefault("ai.generator_model", "")
	v.SetDefault("ai.ollama_host", "http://localhost:11434")
	v.SetDefault("ai.request_timeout", 120*time.Second)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stdout")

	v.SetDefault("client.api_base_url", DefaultAPIBaseURL)
	v.SetDefault("client.request_timeout_ms", DefaultRequestTimeoutMs)
}

func (c *Config) normalize() {
	c.AI.Provider = strings.ToLower(strings.TrimSpace(c.AI.Provider))
	if c.AI.GeneratorModel == "" {
		switch c.AI.Provider {
		case ProviderOllama:
			c.AI.GeneratorModel = "gemma3:latest"
		default:
			c.AI.GeneratorModel = "gemini-2.5-flash"
		}
	}

	c.Client.APIBaseURL = NormalizeBaseURL(c.Client.APIBaseURL)
	if c.Client.RequestTimeoutMs <= 0 {
		slog.Warn("invalid client request timeout, using default", "provided", c.Client.RequestTimeoutMs)
		c.Client.RequestTimeoutMs = DefaultRequestTimeoutMs
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		slog.Warn("unrecognized log level, defaulting to info", "provided", c.Logging.Level)
		c.Logging.Level = "info"
	}
}

// NormalizeBaseURL strips trailing slashes and falls back to the default.
func NormalizeBaseURL(raw string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(raw), "/")
	if trimmed == "" {
		return DefaultAPIBaseURL
	}
	return trimmed
}

// Validate checks the settings that must be correct at startup. The provider
// credential is not checked; its absence is reported when a review runs.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port must be set")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes)
	}
	switch c.AI.Provider {
	case ProviderGemini, ProviderOllama:
	default:
		return fmt.Errorf("unsupported LLM provider: %s", c.AI.Provider)
	}
	if c.AI.RequestTimeout <= 0 {
		return fmt.Errorf("ai.request_timeout must be positive, got %s", c.AI.RequestTimeout)
	}
	u, err := url.Parse(c.Client.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("client.api_base_url is not a valid URL: %q", c.Client.APIBaseURL)
	}
	return nil
}

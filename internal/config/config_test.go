package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty directory with no provider credential set.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, key := range []string{"GOOGLE_GEMINI_KEY", "GEMINI_API_KEY", "AI_GEMINI_API_KEY", "SERVER_CORS_ORIGIN", "CORS_ORIGIN"} {
		t.Setenv(key, "")
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "http://localhost:5173", cfg.Server.CORSOrigin)
	assert.Equal(t, int64(256*1024), cfg.Server.MaxBodyBytes)
	assert.Equal(t, ProviderGemini, cfg.AI.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.AI.GeneratorModel)
	assert.Empty(t, cfg.AI.GeminiAPIKey, "missing credential must not fail loading")
	assert.Equal(t, DefaultAPIBaseURL, cfg.Client.APIBaseURL)
	assert.Equal(t, 60*time.Second, cfg.Client.RequestTimeout())
}

func TestLoad_CredentialAliases(t *testing.T) {
	tests := []struct {
		name string
		env  string
	}{
		{name: "original variable", env: "GOOGLE_GEMINI_KEY"},
		{name: "gemini variable", env: "GEMINI_API_KEY"},
		{name: "nested key variable", env: "AI_GEMINI_API_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.env, "secret-key")

			cfg, err := Load(viper.New())
			require.NoError(t, err)
			assert.Equal(t, "secret-key", cfg.AI.GeminiAPIKey)
		})
	}
}

func TestLoad_CORSOriginAliases(t *testing.T) {
	for _, env := range []string{"SERVER_CORS_ORIGIN", "CORS_ORIGIN"} {
		t.Run(env, func(t *testing.T) {
			isolate(t)
			t.Setenv(env, "https://editor.example.com")

			cfg, err := Load(viper.New())
			require.NoError(t, err)
			assert.Equal(t, "https://editor.example.com", cfg.Server.CORSOrigin)
		})
	}
}

func TestLoad_ConfigFileAndEnvOverride(t *testing.T) {
	dir := isolate(t)
	content := []byte(`
server:
  port: "8081"
ai:
  provider: Ollama
  request_timeout: 5s
client:
  api_base_url: "http://review.internal:9000///"
  request_timeout_ms: 1500
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o600))
	t.Setenv("SERVER_PORT", "9999")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port, "environment overrides the file")
	assert.Equal(t, ProviderOllama, cfg.AI.Provider)
	assert.Equal(t, "gemma3:latest", cfg.AI.GeneratorModel)
	assert.Equal(t, 5*time.Second, cfg.AI.RequestTimeout)
	assert.Equal(t, "http://review.internal:9000", cfg.Client.APIBaseURL)
	assert.Equal(t, 1500*time.Millisecond, cfg.Client.RequestTimeout())
}

func TestLoad_InvalidProvider(t *testing.T) {
	isolate(t)
	t.Setenv("AI_PROVIDER", "carrier-pigeon")

	_, err := Load(viper.New())
	assert.Error(t, err)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://localhost:3000", "http://localhost:3000"},
		{"http://localhost:3000/", "http://localhost:3000"},
		{"http://localhost:3000////", "http://localhost:3000"},
		{"https://api.example.com/base/", "https://api.example.com/base"},
		{"", DefaultAPIBaseURL},
		{"   ", DefaultAPIBaseURL},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeBaseURL(tt.in))
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server: ServerConfig{Port: "3000", MaxBodyBytes: 1024},
			AI:     AIConfig{Provider: ProviderGemini, RequestTimeout: time.Second},
			Client: ClientConfig{APIBaseURL: DefaultAPIBaseURL, RequestTimeoutMs: 1000},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "Valid config", mutate: func(_ *Config) {}, wantErr: false},
		{name: "Missing port", mutate: func(c *Config) { c.Server.Port = "" }, wantErr: true},
		{name: "Zero body limit", mutate: func(c *Config) { c.Server.MaxBodyBytes = 0 }, wantErr: true},
		{name: "Unknown provider", mutate: func(c *Config) { c.AI.Provider = "openai" }, wantErr: true},
		{name: "Zero provider timeout", mutate: func(c *Config) { c.AI.RequestTimeout = 0 }, wantErr: true},
		{name: "Relative base URL", mutate: func(c *Config) { c.Client.APIBaseURL = "localhost" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

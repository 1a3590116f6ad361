// Package llm wraps the hosted and local language models that produce code
// reviews, together with the fixed prompts sent to them.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/sevigo/goframe/llms/ollama"

	"github.com/sevigo/review-bridge/internal/config"
	"github.com/sevigo/review-bridge/internal/core"
)

// Provider produces a review for a piece of code.
//
//go:generate mockgen -destination=../../mocks/mock_provider.go -package=mocks . Provider
type Provider interface {
	// Generate sends the fixed review prompt with code to the model and
	// returns its raw text. Errors wrap core.ErrConfiguration,
	// core.ErrTimeout or core.ErrProvider.
	Generate(ctx context.Context, code string) (string, error)
}

// NewProvider builds the provider selected by cfg.AI.Provider. A missing
// Gemini credential does not fail construction.
func NewProvider(ctx context.Context, cfg *config.Config, prompts *PromptManager, logger *slog.Logger) (Provider, error) {
	switch cfg.AI.Provider {
	case config.ProviderGemini:
		logger.Info("using Gemini review provider", "model", cfg.AI.GeneratorModel)
		return NewGeminiProvider(cfg.AI.GeminiAPIKey, cfg.AI.GeneratorModel, prompts,
			WithRequestTimeout(cfg.AI.RequestTimeout),
			WithLogger(logger),
		), nil
	case config.ProviderOllama:
		logger.Info("using Ollama review provider", "model", cfg.AI.GeneratorModel, "host", cfg.AI.OllamaHost)
		model, err := ollama.New(
			ollama.WithServerURL(cfg.AI.OllamaHost),
			ollama.WithHTTPClient(newOllamaHTTPClient(cfg.AI.RequestTimeout)),
			ollama.WithModel(cfg.AI.GeneratorModel),
			ollama.WithLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama model: %w", err)
		}
		return NewGoframeProvider(model, prompts,
			WithRequestTimeout(cfg.AI.RequestTimeout),
			WithLogger(logger),
		), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.AI.Provider)
	}
}

// Option configures a provider.
type Option func(*options)

type options struct {
	timeout time.Duration
	logger  *slog.Logger
	factory ClientFactory
}

const defaultRequestTimeout = 120 * time.Second

func defaultOptions() options {
	return options{
		timeout: defaultRequestTimeout,
		logger:  slog.Default(),
		factory: DefaultClientFactory,
	}
}

// WithRequestTimeout bounds each provider call. Non-positive values are ignored.
func WithRequestTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithLogger sets the provider's logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClientFactory replaces the Gemini client factory, for tests.
func WithClientFactory(f ClientFactory) Option {
	return func(o *options) {
		if f != nil {
			o.factory = f
		}
	}
}

// classifyCallError maps a failed model call to the error taxonomy.
func classifyCallError(callCtx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", core.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %w", core.ErrProvider, err)
}

func newOllamaHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxConnsPerHost:     10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
		Timeout: timeout,
	}
}

package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sevigo/goframe/llms"

	"github.com/sevigo/review-bridge/internal/core"
)

// CompletionFunc returns the model's completion for a single prompt.
type CompletionFunc func(ctx context.Context, prompt string) (string, error)

// GoframeProvider implements Provider on top of any goframe model. Generic
// models have no system slot, so the persona is placed ahead of the prompt.
type GoframeProvider struct {
	complete    CompletionFunc
	countTokens TokenCounter
	prompts     *PromptManager
	timeout     time.Duration
	logger      *slog.Logger
}

// NewGoframeProvider wraps a goframe model.
func NewGoframeProvider(model llms.Model, prompts *PromptManager, opts ...Option) *GoframeProvider {
	p := NewCompletionProvider(func(ctx context.Context, prompt string) (string, error) {
		return llms.GenerateFromSinglePrompt(ctx, model, prompt)
	}, prompts, opts...)
	p.countTokens = modelTokenCounter(model)
	return p
}

// NewCompletionProvider wraps a plain completion function.
func NewCompletionProvider(complete CompletionFunc, prompts *PromptManager, opts ...Option) *GoframeProvider {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &GoframeProvider{
		complete:    complete,
		countTokens: EstimateTokens,
		prompts:     prompts,
		timeout:     o.timeout,
		logger:      o.logger,
	}
}

func (p *GoframeProvider) Generate(ctx context.Context, code string) (string, error) {
	system, err := p.prompts.SystemInstruction(DefaultProvider)
	if err != nil {
		return "", fmt.Errorf("failed to render system instruction: %w", err)
	}
	prompt, err := p.prompts.ReviewPrompt(DefaultProvider, code)
	if err != nil {
		return "", fmt.Errorf("failed to render review prompt: %w", err)
	}

	full := strings.TrimSpace(system) + "\n\n" + prompt

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if p.logger.Enabled(ctx, slog.LevelDebug) {
		p.logger.Debug("sending local review prompt", "prompt_tokens", p.countTokens(callCtx, full))
	}

	start := time.Now()
	text, err := p.complete(callCtx, full)
	if err != nil {
		return "", classifyCallError(callCtx, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty completion", core.ErrProvider)
	}

	p.logger.Debug("local review generated",
		"code_length", len(code),
		"review_length", len(text),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return text, nil
}

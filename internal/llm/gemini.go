package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/sevigo/review-bridge/internal/core"
)

// GeminiProviderName selects Gemini-specific prompt variants when present.
const GeminiProviderName ModelProvider = "gemini"

// GenerativeClient abstracts the Gemini generative AI client for testability.
type GenerativeClient interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// ClientFactory creates a GenerativeClient. Production code uses DefaultClientFactory;
// tests inject a factory that returns a fake.
type ClientFactory func(ctx context.Context, apiKey string) (GenerativeClient, error)

type genaiClient struct {
	inner *genai.Client
}

func (g *genaiClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return g.inner.Models.GenerateContent(ctx, model, contents, config)
}

// DefaultClientFactory creates a real Gemini API client.
func DefaultClientFactory(ctx context.Context, apiKey string) (GenerativeClient, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &genaiClient{inner: c}, nil
}

// GeminiProvider implements Provider using the Google Gemini API.
type GeminiProvider struct {
	apiKey  string
	model   string
	prompts *PromptManager
	timeout time.Duration
	factory ClientFactory
	logger  *slog.Logger
}

// NewGeminiProvider creates a new GeminiProvider. An empty apiKey is accepted
// here and reported as core.ErrConfiguration by Generate.
func NewGeminiProvider(apiKey, model string, prompts *PromptManager, opts ...Option) *GeminiProvider {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiProvider{
		apiKey:  apiKey,
		model:   model,
		prompts: prompts,
		timeout: o.timeout,
		factory: o.factory,
		logger:  o.logger,
	}
}

// Generate makes exactly one GenerateContent call. There are no retries.
func (p *GeminiProvider) Generate(ctx context.Context, code string) (string, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("%w: GOOGLE_GEMINI_KEY is not set", core.ErrConfiguration)
	}

	system, err := p.prompts.SystemInstruction(GeminiProviderName)
	if err != nil {
		return "", fmt.Errorf("failed to render system instruction: %w", err)
	}
	prompt, err := p.prompts.ReviewPrompt(GeminiProviderName, code)
	if err != nil {
		return "", fmt.Errorf("failed to render review prompt: %w", err)
	}

	client, err := p.factory(ctx, p.apiKey)
	if err != nil {
		return "", fmt.Errorf("%w: creating Gemini client: %w", core.ErrProvider, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	resp, err := client.GenerateContent(callCtx, p.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
	})
	if err != nil {
		return "", classifyCallError(callCtx, err)
	}

	text, err := extractText(resp)
	if err != nil {
		return "", fmt.Errorf("%w: %w", core.ErrProvider, err)
	}

	p.logger.Debug("gemini review generated",
		"model", p.model,
		"code_length", len(code),
		"review_length", len(text),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return text, nil
}

// extractText joins the text parts of the first candidate.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("empty response from Gemini")
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("no content parts in response")
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", errors.New("empty text in response")
	}
	return sb.String(), nil
}

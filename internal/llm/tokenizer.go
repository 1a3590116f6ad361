package llm

import (
	"context"

	"github.com/sevigo/goframe/llms"
)

// TokenCounter reports how many tokens text occupies for a model.
type TokenCounter func(ctx context.Context, text string) int

// modelTokenCounter asks the model when it can tokenize and estimates otherwise.
func modelTokenCounter(model llms.Model) TokenCounter {
	t, ok := model.(llms.Tokenizer)
	if !ok {
		return EstimateTokens
	}
	return func(ctx context.Context, text string) int {
		n, err := t.CountTokens(ctx, text)
		if err != nil {
			return EstimateTokens(ctx, text)
		}
		return n
	}
}

// EstimateTokens provides a fast, character-based estimation of token count.
func EstimateTokens(_ context.Context, text string) int {
	return len(text) / 3
}

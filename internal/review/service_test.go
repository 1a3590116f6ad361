package review

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sevigo/review-bridge/internal/core"
	"github.com/sevigo/review-bridge/mocks"
)

func newTestService(t *testing.T) (*Service, *mocks.MockProvider, *bytes.Buffer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewService(provider, logger), provider, &logs
}

func marshalEnvelope(t *testing.T, env core.Envelope) string {
	t.Helper()
	b, err := json.Marshal(env)
	require.NoError(t, err)
	return string(b)
}

func TestHandleReviewRequest_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "empty code", payload: `{"code":""}`},
		{name: "whitespace code", payload: `{"code":"   "}`},
		{name: "newlines only", payload: `{"code":"\n\t\n"}`},
		{name: "missing code", payload: `{}`},
		{name: "capitalized key", payload: `{"Code":"x := 1"}`},
		{name: "upper-case key", payload: `{"CODE":"x := 1"}`},
		{name: "null code", payload: `{"code":null}`},
		{name: "number code", payload: `{"code":42}`},
		{name: "array code", payload: `{"code":["a"]}`},
		{name: "object code", payload: `{"code":{"text":"x"}}`},
		{name: "bool code", payload: `{"code":true}`},
		{name: "not json", payload: `code=x`},
		{name: "empty body", payload: ``},
		{name: "json null", payload: `null`},
		{name: "json array", payload: `[{"code":"x"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, provider, _ := newTestService(t)
			provider.EXPECT().Generate(gomock.Any(), gomock.Any()).Times(0)

			env, err := svc.HandleReviewRequest(context.Background(), []byte(tt.payload))
			assert.True(t, errors.Is(err, core.ErrInvalidInput), "got %v", err)
			assert.JSONEq(t, `{"error":"Code is required"}`, marshalEnvelope(t, env))
		})
	}
}

func TestHandleReviewRequest_Success(t *testing.T) {
	svc, provider, _ := newTestService(t)
	code := "  const a = 1;\n"
	provider.EXPECT().Generate(gomock.Any(), code).Return("## Overall\nLooks fine.", nil).Times(1)

	env, err := svc.HandleReviewRequest(context.Background(), []byte(`{"code":"  const a = 1;\n"}`))
	require.NoError(t, err)

	review, ok := env.Review()
	assert.True(t, ok)
	assert.Equal(t, "## Overall\nLooks fine.", review)
	_, isErr := env.Error()
	assert.False(t, isErr)
}

func TestHandleReviewRequest_UpstreamFailures(t *testing.T) {
	const code = "SECRET_TOKEN = 'abc123'"

	tests := []struct {
		name      string
		returnErr error
		returnTxt string
		category  string
	}{
		{name: "missing credential", returnErr: fmt.Errorf("%w: GOOGLE_GEMINI_KEY is not set", core.ErrConfiguration), category: "configuration"},
		{name: "timeout", returnErr: fmt.Errorf("%w: context deadline exceeded", core.ErrTimeout), category: "timeout"},
		{name: "provider error", returnErr: fmt.Errorf("%w: 500", core.ErrProvider), category: "provider"},
		{name: "unclassified error", returnErr: errors.New("boom"), category: "unknown"},
		{name: "empty review", returnTxt: "  ", category: "provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, provider, logs := newTestService(t)
			provider.EXPECT().Generate(gomock.Any(), code).Return(tt.returnTxt, tt.returnErr).Times(1)

			env, err := svc.HandleReviewRequest(context.Background(), []byte(`{"code":"SECRET_TOKEN = 'abc123'"}`))
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrUpstream))

			body := marshalEnvelope(t, env)
			assert.JSONEq(t, `{"error":"Failed to generate review"}`, body)
			assert.NotContains(t, body, "abc123")

			assert.Contains(t, logs.String(), "category="+tt.category)
			assert.NotContains(t, logs.String(), "abc123", "submitted code must never be logged")
		})
	}
}

func TestHandleReviewRequest_ExactlyOneVariant(t *testing.T) {
	inputs := []string{"x", "func f() {}", "<script>alert(1)</script>", "💥"}
	for _, in := range inputs {
		svc, provider, _ := newTestService(t)
		provider.EXPECT().Generate(gomock.Any(), in).Return("review of "+in, nil)

		payload, err := json.Marshal(core.ReviewRequest{Code: in})
		require.NoError(t, err)

		env, err := svc.HandleReviewRequest(context.Background(), payload)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(marshalEnvelope(t, env)), &decoded))
		assert.Len(t, decoded, 1)
	}
}

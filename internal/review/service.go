// Package review implements the review gateway: request validation, the single
// provider call, and normalization of every outcome into an envelope.
package review

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sevigo/review-bridge/internal/core"
	"github.com/sevigo/review-bridge/internal/llm"
)

// User-facing messages. Neither ever contains submitted code.
const (
	MsgCodeRequired = "Code is required"
	MsgReviewFailed = "Failed to generate review"
)

// Service implements core.ReviewGateway.
type Service struct {
	provider llm.Provider
	logger   *slog.Logger
}

// NewService creates a gateway backed by provider.
func NewService(provider llm.Provider, logger *slog.Logger) *Service {
	return &Service{
		provider: provider,
		logger:   logger,
	}
}

var _ core.ReviewGateway = (*Service)(nil)

// HandleReviewRequest validates the untrusted payload and, when it carries
// code, makes exactly one provider call.
func (s *Service) HandleReviewRequest(ctx context.Context, payload []byte) (core.Envelope, error) {
	req, err := decodeRequest(payload)
	if err != nil {
		s.logger.Debug("rejected review request", "reason", err.Error(), "payload_bytes", len(payload))
		return core.ErrorEnvelope(MsgCodeRequired), err
	}

	review, err := s.provider.Generate(ctx, req.Code)
	if err == nil && strings.TrimSpace(review) == "" {
		err = fmt.Errorf("%w: provider returned an empty review", core.ErrProvider)
	}
	if err != nil {
		s.logger.Error("review generation failed",
			"category", errorCategory(err),
			"code_length", len(req.Code),
			"error", err,
		)
		return core.ErrorEnvelope(MsgReviewFailed), fmt.Errorf("%w: %w", core.ErrUpstream, err)
	}

	s.logger.Info("review generated", "code_length", len(req.Code), "review_length", len(review))
	return core.ReviewEnvelope(review), nil
}

// decodeRequest accepts only a JSON object whose "code" member, matched by
// exact name, is a string with non-whitespace content.
func decodeRequest(payload []byte) (core.ReviewRequest, error) {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(payload, &body); err != nil || body == nil {
		return core.ReviewRequest{}, fmt.Errorf("%w: body is not a JSON object", core.ErrInvalidInput)
	}
	code, ok := body["code"]
	if !ok {
		return core.ReviewRequest{}, fmt.Errorf("%w: code is missing", core.ErrInvalidInput)
	}

	var req core.ReviewRequest
	if err := json.Unmarshal(code, &req.Code); err != nil {
		return core.ReviewRequest{}, fmt.Errorf("%w: code is not a string", core.ErrInvalidInput)
	}
	if err := req.Validate(); err != nil {
		return core.ReviewRequest{}, fmt.Errorf("%w: code is blank", err)
	}
	return req, nil
}

func errorCategory(err error) string {
	switch {
	case errors.Is(err, core.ErrConfiguration):
		return "configuration"
	case errors.Is(err, core.ErrTimeout):
		return "timeout"
	case errors.Is(err, core.ErrProvider):
		return "provider"
	default:
		return "unknown"
	}
}

// Package handler provides HTTP handlers for the review gateway.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/sevigo/review-bridge/internal/core"
)

// MsgBodyTooLarge is returned when the request body exceeds the configured cap.
const MsgBodyTooLarge = "Request body too large"

// ReviewHandler exposes a core.ReviewGateway over HTTP.
type ReviewHandler struct {
	gateway      core.ReviewGateway
	maxBodyBytes int64
	logger       *slog.Logger
}

// NewReviewHandler creates a handler that reads at most maxBodyBytes of request body.
func NewReviewHandler(gateway core.ReviewGateway, maxBodyBytes int64, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		gateway:      gateway,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

// Handle serves POST /ai/get-review.
func (h *ReviewHandler) Handle(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.logger.Warn("review request body too large", "limit", maxErr.Limit)
			writeJSON(w, http.StatusRequestEntityTooLarge, core.ErrorEnvelope(MsgBodyTooLarge))
			return
		}
		h.logger.Warn("failed to read review request body", "error", err)
		writeJSON(w, http.StatusBadRequest, core.ErrorEnvelope("Invalid request body"))
		return
	}

	env, err := h.gateway.HandleReviewRequest(r.Context(), payload)
	writeJSON(w, statusFor(err), env)
}

func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, core.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/review-bridge/internal/core"
)

type stubGateway struct {
	env   core.Envelope
	err   error
	calls int
}

func (s *stubGateway) HandleReviewRequest(_ context.Context, _ []byte) (core.Envelope, error) {
	s.calls++
	return s.env, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReviewHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		env        core.Envelope
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "success",
			env:        core.ReviewEnvelope("LGTM"),
			wantStatus: http.StatusOK,
			wantBody:   `{"review":"LGTM"}`,
		},
		{
			name:       "invalid input",
			env:        core.ErrorEnvelope("Code is required"),
			err:        fmt.Errorf("%w: code is blank", core.ErrInvalidInput),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Code is required"}`,
		},
		{
			name:       "upstream failure",
			env:        core.ErrorEnvelope("Failed to generate review"),
			err:        fmt.Errorf("%w: %w", core.ErrUpstream, core.ErrTimeout),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Failed to generate review"}`,
		},
		{
			name:       "unclassified failure",
			env:        core.ErrorEnvelope("Failed to generate review"),
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Failed to generate review"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &stubGateway{env: tt.env, err: tt.err}
			h := NewReviewHandler(gw, 1024, discardLogger())

			req := httptest.NewRequest(http.MethodPost, "/ai/get-review", strings.NewReader(`{"code":"x"}`))
			rec := httptest.NewRecorder()
			h.Handle(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			assert.Equal(t, 1, gw.calls)
		})
	}
}

func TestReviewHandler_BodyTooLarge(t *testing.T) {
	gw := &stubGateway{env: core.ReviewEnvelope("unused")}
	h := NewReviewHandler(gw, 16, discardLogger())

	body := `{"code":"` + strings.Repeat("a", 64) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/ai/get-review", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.JSONEq(t, `{"error":"Request body too large"}`, rec.Body.String())
	assert.Zero(t, gw.calls, "gateway must not see an oversized body")
}

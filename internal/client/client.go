// Package client calls the review gateway and renders its answer into a
// display surface owned by the calling invocation.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sevigo/review-bridge/internal/config"
	"github.com/sevigo/review-bridge/internal/core"
)

// ReviewPath is the gateway endpoint relative to the base URL.
const ReviewPath = "/ai/get-review"

// MsgUnknownError is shown when a response carries neither a review nor an error.
const MsgUnknownError = "Unknown error"

// maxResponseBytes caps how much of a gateway response is read.
const maxResponseBytes = 4 << 20

// ServerError carries the message a gateway response asked to show.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return e.Message
}

// Client talks to the review gateway.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a Client from the client configuration section.
func New(cfg config.ClientConfig, opts ...Option) *Client {
	timeout := cfg.RequestTimeout()
	if timeout <= 0 {
		timeout = time.Duration(config.DefaultRequestTimeoutMs) * time.Millisecond
	}
	c := &Client{
		baseURL:    config.NormalizeBaseURL(cfg.APIBaseURL),
		timeout:    timeout,
		httpClient: &http.Client{},
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Review posts code to the gateway and waits at most the configured timeout.
func (c *Client) Review(ctx context.Context, code string) core.Result {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	review, err := c.post(ctx, code)
	if err != nil {
		c.logger.Warn("review request failed", "error", err, "code_length", len(code))
		return core.Result{Err: err}
	}
	return core.Result{Review: review}
}

func (c *Client) post(ctx context.Context, code string) (string, error) {
	body, err := json.Marshal(core.ReviewRequest{Code: code})
	if err != nil {
		return "", fmt.Errorf("failed to encode review request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ReviewPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %w", core.ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", transportError(ctx, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", transportError(ctx, err)
	}

	return interpret(resp.StatusCode, raw)
}

// interpret applies the response rules: any non-2xx is an error showing the
// server's error string when there is one, and a 2xx without a review falls
// back to the server's error text.
func interpret(status int, body []byte) (string, error) {
	if status < 200 || status > 299 {
		msg, ok := core.ParseErrorMessage(body)
		if !ok {
			msg = fmt.Sprintf("Request failed (%d)", status)
		}
		return "", &ServerError{Status: status, Message: msg}
	}
	env, _ := core.ParseEnvelope(body)
	if review, ok := env.Review(); ok {
		return review, nil
	}
	msg, hasErr := env.Error()
	if !hasErr || msg == "" {
		msg = MsgUnknownError
	}
	return "", &ServerError{Status: status, Message: msg}
}

func transportError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w: %w", core.ErrTransport, core.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %w", core.ErrTransport, err)
}

// Message turns a review failure into the single line shown to the user.
// Timeouts and other transport failures share one message.
func Message(err error) string {
	var serverErr *ServerError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &serverErr):
		return serverErr.Message
	case errors.Is(err, core.ErrTransport):
		return "Could not reach the review server"
	default:
		return err.Error()
	}
}

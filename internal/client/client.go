// Package client talks to the PLEARN HTTP API. Chat and vision requests run
// under a retry policy; other calls are made once.
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

	"plearn/backend/internal/retry"
)

// ErrEmptyReply is returned when the server answers with an empty body.
var ErrEmptyReply = errors.New("client: empty reply")

// APIError is a non-2xx response that was not retried.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Message)
}

// Client is an HTTP client for the PLEARN API.
type Client struct {
	baseURL string
	http    *http.Client
	policy  retry.Policy
	sleep   retry.Sleeper
	logger  *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithPolicy replaces the retry policy used for chat and vision.
func WithPolicy(p retry.Policy) Option {
	return func(c *Client) { c.policy = p }
}

// WithSleeper replaces the delay function between attempts.
func WithSleeper(s retry.Sleeper) Option {
	return func(c *Client) { c.sleep = s }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 2 * time.Minute},
		policy:  retry.DefaultPolicy,
		sleep:   retry.Sleep,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type response struct {
	status int
	body   []byte
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// apiError builds an APIError from a non-2xx response, using the server's
// {"error": "..."} message when present.
func (r *response) apiError() error {
	var payload struct {
		Error string `json:"error"`
	}
	msg := http.StatusText(r.status)
	if err := json.Unmarshal(r.body, &payload); err == nil && payload.Error != "" {
		msg = payload.Error
	}
	return &APIError{StatusCode: r.status, Message: msg}
}

// send performs one logical request under policy. body is replayed on every
// attempt.
func (c *Client) send(ctx context.Context, policy retry.Policy, method, path, contentType string, body []byte) (*response, error) {
	return retry.Do(ctx, policy, c.sleep, func(ctx context.Context, n int) retry.Result[*response] {
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return retry.Fail[*response](fmt.Errorf("could not create request: %w", err))
		}
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		kind := retry.ClassifyHTTP(resp, err)
		if err != nil {
			c.logger.Debug("Request attempt failed", "path", path, "attempt", n, "error", err)
			if kind == retry.Terminal {
				return retry.Fail[*response](err)
			}
			return retry.Retry[*response](fmt.Errorf("request failed: %w", err))
		}
		defer func() {
			if bErr := resp.Body.Close(); bErr != nil {
				c.logger.Warn("Failed to close response body", "path", path, "error", bErr)
			}
		}()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return retry.Retry[*response](fmt.Errorf("could not read response body: %w", err))
		}
		if kind == retry.Retryable {
			c.logger.Debug("Retryable status", "path", path, "attempt", n, "status", resp.StatusCode)
			return retry.Retry[*response](&retry.StatusError{StatusCode: resp.StatusCode, Body: truncate(string(data), 200)})
		}
		return retry.Success(&response{status: resp.StatusCode, body: data})
	})
}

// sendJSON marshals payload and sends it with policy.
func (c *Client) sendJSON(ctx context.Context, policy retry.Policy, method, path string, payload any) (*response, error) {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("could not marshal request: %w", err)
		}
	}
	return c.send(ctx, policy, method, path, "application/json", body)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

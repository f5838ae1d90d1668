// Package api implements the collaborator ports over the back-office REST
// API. It is a thin transport layer: list queries become query parameters,
// submissions become JSON or multipart bodies, and every mutation response
// is reduced to its message string.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finhr/backoffice/internal/apperrors"
	"github.com/finhr/backoffice/internal/dto"
	"github.com/finhr/backoffice/internal/platform/config"
)

// Client talks to one back-office API deployment.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	logger  *slog.Logger
}

// NewClient builds a client from configuration. The base URL is taken
// without its trailing slash.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		token:   cfg.APIToken,
		httpc:   &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// do performs one request and decodes the JSON response into out when out is
// non-nil. Non-2xx responses are reduced to the collaborator's error string.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	logger := c.logger.With(
		slog.String("request_id", requestID),
		slog.String("method", method),
		slog.String("path", path),
	)

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		logger.Warn("request failed", slog.String("error", err.Error()))
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	logger.Info("request completed",
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFrom(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// errorFrom extracts the collaborator's error string from a failed response.
// No error-code taxonomy is assumed; the message is opaque display text.
func (c *Client) errorFrom(resp *http.Response) error {
	var msg dto.MessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&msg); err == nil && msg.Error != "" {
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s", apperrors.ErrNotFound, msg.Error)
		}
		return fmt.Errorf("%w: %s", apperrors.ErrMutationRejected, msg.Error)
	}
	if resp.StatusCode == http.StatusNotFound {
		return apperrors.ErrNotFound
	}
	return fmt.Errorf("%w: request failed with status %d", apperrors.ErrMutationRejected, resp.StatusCode)
}

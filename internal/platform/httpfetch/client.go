// Package httpfetch performs the single-attempt HTTP GET shared by every
// source adapter.
package httpfetch

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"rates_backend/internal/feature/ingest/usecase"
)

const maxErrorBody = 512

// Client wraps an http.Client with the feed conventions: a User-Agent
// header, no retries, and the taxonomy's NetworkError on any failure.
type Client struct {
	http      *http.Client
	userAgent string
}

// New creates a Client. A zero timeout falls back to 10 seconds.
func New(timeout time.Duration, userAgent string) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Get fetches url once and returns the response body. Transport failures and
// non-2xx statuses are returned as *usecase.NetworkError; the next cycle is
// the only retry mechanism.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &usecase.NetworkError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, &usecase.NetworkError{URL: url, Err: err}
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &usecase.NetworkError{URL: url, Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		b := body
		if len(b) > maxErrorBody {
			b = b[:maxErrorBody]
		}
		return nil, &usecase.NetworkError{URL: url, Status: res.StatusCode, Body: string(b)}
	}

	return body, nil
}

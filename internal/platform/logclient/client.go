// Package logclient sends diagnostics to the centralized logger service.
// Delivery is best effort: entries that cannot be delivered are queued and
// re-sent before the next message, with local logging as the fallback.
package logclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// Numeric levels stored by the logger service.
const (
	levelDebug = 1
	levelInfo  = 2
	levelWarn  = 3
	levelError = 4
)

type logEntry struct {
	Level     int       `json:"level"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	LogSource int       `json:"logSource"`
}

// Client is the HTTP client for the centralized logger service.
type Client struct {
	http    *http.Client
	baseURL string
	source  int
	local   *slog.Logger

	mu    sync.Mutex
	queue [][]byte
}

// New creates a Client for the logger service at baseURL. source identifies
// the sending worker in stored entries. local receives fallback logs when
// delivery fails; nil uses slog.Default.
func New(baseURL string, source int, local *slog.Logger) *Client {
	if local == nil {
		local = slog.Default()
	}
	return &Client{
		http:    &http.Client{Timeout: 5 * time.Second},
		baseURL: baseURL,
		source:  source,
		local:   local,
	}
}

// SendLog delivers one entry to the logger service. Queued entries from
// earlier failures are flushed first; on failure the entry joins the queue
// and is also logged locally. SendLog never blocks the caller on anything
// beyond the HTTP timeout and never fails loudly.
func (c *Client) SendLog(ctx context.Context, level slog.Level, message string) {
	entry := logEntry{
		Level:     numericLevel(level),
		Message:   message,
		Timestamp: time.Now().UTC(),
		LogSource: c.source,
	}
	body, err := json.Marshal(entry)
	if err != nil {
		c.local.Log(ctx, level, "Fallback log: "+message)
		return
	}

	c.flushQueue(ctx)

	if err := c.post(ctx, body); err != nil {
		c.local.Error("failed to send log to central logger, falling back to local logging", "error", err)
		c.enqueue(body)
		c.local.Log(ctx, level, "Fallback log: "+message)
		return
	}
}

// QueueLen reports the number of undelivered entries.
func (c *Client) QueueLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

func (c *Client) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/logs", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = res.Body.Close()
	}()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("logger API returned status %d", res.StatusCode)
	}
	return nil
}

func (c *Client) enqueue(body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queue = append(c.queue, body)
}

// flushQueue re-sends queued entries in order, stopping at the first failure
// so the service being down does not turn into a retry storm.
func (c *Client) flushQueue(ctx context.Context) {
	for {
		c.mu.Lock()
		if len(c.queue) == 0 {
			c.mu.Unlock()
			return
		}
		head := c.queue[0]
		c.mu.Unlock()

		if err := c.post(ctx, head); err != nil {
			c.local.Warn("failed to resend a log from the retry queue, keeping it in queue")
			return
		}

		c.mu.Lock()
		c.queue = c.queue[1:]
		c.mu.Unlock()
	}
}

func numericLevel(level slog.Level) int {
	switch {
	case level < slog.LevelInfo:
		return levelDebug
	case level < slog.LevelWarn:
		return levelInfo
	case level < slog.LevelError:
		return levelWarn
	default:
		return levelError
	}
}

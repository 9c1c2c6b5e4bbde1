// Package client submits contact-form leads to the upstream lead API.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultTimeout bounds a whole lead submission.
const DefaultTimeout = 15 * time.Second

// Client talks to the lead API.
type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

// New creates a client for the API at baseURL. A non-positive timeout uses
// DefaultTimeout; a nil logger uses slog.Default.
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Cache-Control", "no-store").
		SetHeader("Accept", "application/json").
		SetLogger(restyLogger{logger})

	return &Client{http: rc, logger: logger}
}

// SubmitLead validates the lead and posts it to /contact. Network errors,
// timeouts and non-2xx answers wrap ErrSubmission.
func (c *Client) SubmitLead(ctx context.Context, lead Lead) (*Ack, error) {
	if err := lead.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	var ack Ack
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(lead).
		SetResult(&ack).
		Post("/contact")
	if err != nil {
		c.logger.Warn("lead submission failed", "error", err, "service", lead.Service)
		return nil, fmt.Errorf("%w: %v", ErrSubmission, err)
	}
	if !resp.IsSuccess() {
		c.logger.Warn("lead submission rejected",
			"status", resp.StatusCode(),
			"body", truncate(resp.String(), 200))
		return nil, fmt.Errorf("%w: status %d", ErrSubmission, resp.StatusCode())
	}

	c.logger.Info("lead submitted",
		"id", ack.ID,
		"mode", ack.Mode,
		"service", lead.Service,
		"duration_ms", time.Since(start).Milliseconds())
	return &ack, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// restyLogger routes resty's internal messages into slog.
type restyLogger struct {
	logger *slog.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "resty")
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.logger.Warn(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "resty")
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "resty")
}

// Package jira provides an authenticated REST transport for a Jira Cloud site.
// It hides authentication and request plumbing behind a single Get method.
package jira

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/h0rv/sdq/internal/auth"
	"go.uber.org/zap"
)

const userAgent = "sdq"

// ErrInvalidSite indicates the site is not an absolute http(s) URL.
var ErrInvalidSite = errors.New("jira site must be an absolute http(s) URL")

// Client is a Jira REST client bound to one site.
// It authenticates every request with the configured credentials.
type Client struct {
	baseURL    string
	creds      auth.Credentials
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates a new Jira client for site (e.g., "https://example.atlassian.net").
// A zero timeout leaves requests bounded only by the caller's context.
func New(site string, creds auth.Credentials, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	site = strings.TrimRight(strings.TrimSpace(site), "/")
	u, err := url.Parse(site)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSite, site)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:    site,
		creds:      creds,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

// BaseURL returns the site the client is bound to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues a GET request for path and reads the whole response.
// Non-2xx statuses are returned as a Response, not an error.
func (c *Client) Get(ctx context.Context, path string, header http.Header) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create jira request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	requestID := uuid.New().String()
	req.Header.Set("X-Request-Id", requestID)
	req.Header.Set("User-Agent", userAgent)
	if c.creds.Token != "" {
		req.Header.Set("Authorization", c.creds.BasicAuth())
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("jira request failed",
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to fetch from jira: %w", err)
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read jira response: %w", err)
	}

	c.logger.Debug("jira request",
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	return &Response{
		StatusCode: resp.StatusCode,
		StatusText: statusText(resp),
		Body:       body,
	}, nil
}

// statusText extracts the reason phrase from resp.Status ("404 Not Found" -> "Not Found").
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

// compile-time check that Client implements Transport
var _ Transport = (*Client)(nil)

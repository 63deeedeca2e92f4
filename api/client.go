// Package api is a thin JSON client for the platform's REST backend.
// Requests are never retried; callers decide whether to try again.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultTimeout bounds each request when no custom http.Client is supplied.
	DefaultTimeout = 15 * time.Second

	maxErrorBody = 4 << 10
)

// Client talks to the backend over HTTP.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *zap.Logger

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client) error

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return OptionError{Reason: "http client must not be nil"}
		}
		c.httpClient = hc
		return nil
	}
}

// WithTimeout overrides the request timeout. A client supplied through
// WithHTTPClient is copied, not modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return OptionError{Reason: "timeout must be greater than zero"}
		}
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
		return nil
	}
}

// WithToken seeds the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) error {
		c.token = strings.TrimSpace(token)
		return nil
	}
}

// WithLogger attaches a logger for request tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) error {
		if logger != nil {
			c.logger = logger
		}
		return nil
	}
}

// New creates a Client rooted at baseURL (e.g. "http://localhost:5000/api").
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, ValidationError{Field: "base url"}
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("api: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, OptionError{Reason: fmt.Sprintf("unsupported scheme %q", u.Scheme)}
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken replaces the bearer token.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Logout forgets the stored token.
func (c *Client) Logout() {
	c.SetToken("")
}

// Authenticated reports whether a token is held.
func (c *Client) Authenticated() bool {
	return c.Token() != ""
}

// endpoint joins path, which may carry escaped segments, onto the base URL.
func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL.JoinPath(strings.TrimLeft(path, "/"))
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	target := c.endpoint(path, query)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode %s body: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed", zap.String("method", method), zap.String("url", target), zap.Error(err))
		return NetworkError{Method: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return HTTPError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.Body),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return DecodeError{URL: target, Err: err}
	}
	return nil
}

// errorMessage extracts {"message": "..."} from an error body, falling back to the raw text.
func errorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(raw))
}

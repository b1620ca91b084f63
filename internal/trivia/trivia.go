package trivia

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

	"go.uber.org/zap"
)

// Defaults for the public numbersapi.com provider.
const (
	DefaultBaseURL      = "http://numbersapi.com"
	DefaultCategory     = "math"
	DefaultTimeout      = 3 * time.Second
	DefaultMaxBodyBytes = 64 << 10
	DefaultFallback     = "No fun fact available."
)

var (
	// ErrUpstreamStatus is returned when the provider answers with a non-2xx status.
	ErrUpstreamStatus = errors.New("trivia provider returned non-success status")
	// ErrEmptyFact is returned when the provider answers 2xx with an empty body.
	ErrEmptyFact = errors.New("trivia provider returned empty fact")
)

// Config controls how facts are fetched.
type Config struct {
	// BaseURL is the provider root, e.g. "http://numbersapi.com".
	BaseURL string

	// Category is the fact topic appended after the number. Defaults to "math".
	Category string

	// Timeout bounds a single Fetch, layered on the caller's context.
	// If zero, DefaultTimeout is used.
	Timeout time.Duration

	// MaxBodyBytes caps how much of the response body is read.
	MaxBodyBytes int64

	// Fallback is the text returned whenever the provider cannot supply a fact.
	Fallback string

	Transport TransportConfig
}

// Fact is the outcome of one Fetch. Text is always safe to show to clients.
type Fact struct {
	Number   int64
	Text     string
	Fallback bool          // true when Text is the configured fallback
	Status   int           // upstream HTTP status, 0 on transport failure
	Latency  time.Duration // wall time spent on the upstream call
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the tuned default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger for request tracing and truncation warnings.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// Client fetches facts from the provider.
type Client struct {
	cfg    Config
	base   *url.URL
	http   *http.Client
	logger *zap.Logger
}

// NewClient validates cfg, fills in defaults, and returns a ready Client.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if strings.TrimSpace(cfg.Category) == "" {
		cfg.Category = DefaultCategory
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.Fallback == "" {
		cfg.Fallback = DefaultFallback
	}
	if cfg.Transport == (TransportConfig{}) {
		cfg.Transport = DefaultTransportConfig()
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid trivia base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid trivia base url %q: scheme must be http or https", cfg.BaseURL)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("invalid trivia base url %q: missing host", cfg.BaseURL)
	}

	c := &Client{
		cfg:    cfg,
		base:   base,
		http:   newHTTPClient(cfg.Transport),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Fallback returns the configured fallback text.
func (c *Client) Fallback() string { return c.cfg.Fallback }

// Fetch retrieves a fact about n. The returned Fact is always usable: on any
// failure it carries the fallback text and err describes what went wrong.
func (c *Client) Fetch(ctx context.Context, n int64) (Fact, error) {
	fact := Fact{Number: n, Text: c.cfg.Fallback, Fallback: true}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	endpoint := c.base.JoinPath(strconv.FormatInt(n, 10), c.cfg.Category)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fact, fmt.Errorf("build trivia request: %w", err)
	}
	req.Header.Set("Accept", "text/plain")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		fact.Latency = time.Since(start)
		return fact, fmt.Errorf("trivia request: %w", err)
	}
	defer resp.Body.Close()

	fact.Status = resp.StatusCode
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a bounded amount so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, c.cfg.MaxBodyBytes))
		fact.Latency = time.Since(start)
		return fact, fmt.Errorf("%w: %d", ErrUpstreamStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.cfg.MaxBodyBytes+1))
	fact.Latency = time.Since(start)
	if err != nil {
		return fact, fmt.Errorf("read trivia body: %w", err)
	}
	if len(body) == 0 {
		return fact, ErrEmptyFact
	}
	if int64(len(body)) > c.cfg.MaxBodyBytes {
		body = body[:c.cfg.MaxBodyBytes]
		c.logger.Warn("trivia body truncated",
			zap.Int64("number", n),
			zap.Int64("max_body_bytes", c.cfg.MaxBodyBytes))
	}

	fact.Text = string(body)
	fact.Fallback = false
	c.logger.Debug("trivia fetched",
		zap.Int64("number", n),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", fact.Latency))
	return fact, nil
}

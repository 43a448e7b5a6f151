// Package base provides shared client infrastructure for the deskfit tool
// clients: a pooled HTTP client wired to the cache, circuit breaker, request
// deduplication, and a concurrency-limiting semaphore.
package base

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/deskfit/deskfit-mcp-server/internal/infra"
	"github.com/deskfit/deskfit-mcp-server/metrics"
)

const (
	// DefaultTimeout for upstream API requests
	DefaultTimeout = 30 * time.Second

	// DefaultCacheTTL for cached responses
	DefaultCacheTTL = 5 * time.Minute

	// MaxConcurrentRequests limits parallel upstream calls per client
	MaxConcurrentRequests = 5

	// DefaultUserAgent identifies the server to upstream APIs
	DefaultUserAgent = "deskfit-mcp-server/1.0"
)

// Client provides common HTTP infrastructure with caching, concurrency
// limiting, circuit breaking, and request deduplication. Tool clients embed
// it and add their own endpoints on top.
type Client struct {
	HTTPClient     *http.Client
	Logger         *slog.Logger
	Cache          *infra.Cache
	Dedup          *infra.Deduplicator
	CircuitBreaker *infra.CircuitBreaker
	Semaphore      chan struct{}
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.HTTPClient = c
	}
}

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ClientOption {
	return func(client *Client) {
		client.Logger = l
	}
}

// WithCache sets a custom cache
func WithCache(c *infra.Cache) ClientOption {
	return func(client *Client) {
		client.Cache = c
	}
}

// NewClient creates a base client with default settings
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		HTTPClient:     newHTTPClient(DefaultTimeout),
		Logger:         slog.Default(),
		Cache:          infra.NewCache(infra.DefaultMaxCacheEntries),
		Dedup:          infra.NewDeduplicator(),
		CircuitBreaker: infra.NewCircuitBreaker(),
		Semaphore:      make(chan struct{}, MaxConcurrentRequests),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Close releases resources held by the client
func (c *Client) Close() {
	if c.Cache != nil {
		c.Cache.Close()
	}
}

// AcquireSlot blocks until a request slot is available or context is canceled
func (c *Client) AcquireSlot(ctx context.Context) error {
	select {
	case c.Semaphore <- struct{}{}:
		return nil
	default:
	}

	// All slots are taken, so this caller has to wait.
	metrics.RateLimitWaits.Inc()
	select {
	case c.Semaphore <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("context canceled while waiting for request slot: %w", ctx.Err())
	}
}

// ReleaseSlot releases a request slot
func (c *Client) ReleaseSlot() {
	<-c.Semaphore
}

// CheckCircuitBreaker returns nil if requests are allowed, or an error if the circuit is open
func (c *Client) CheckCircuitBreaker() error {
	if !c.CircuitBreaker.Allow() {
		stats := c.CircuitBreaker.Stats()
		return &infra.ErrCircuitOpen{
			State:    stats.State,
			RetryAt:  stats.LastFailure.Add(30 * time.Second),
			Failures: stats.ConsecutiveFails,
		}
	}
	return nil
}

// RequestConfig configures a single HTTP request
type RequestConfig struct {
	URL         string
	Method      string // defaults to GET
	Body        []byte // request body, sent on each retry attempt
	ContentType string
	UserAgent   string
	Accept      string            // defaults to application/json
	Headers     map[string]string // extra headers, e.g. Accept-Language
	MaxRetry    int               // defaults to 3
}

// DoRequest performs an HTTP request with circuit breaking, concurrency
// limiting, and retries. Returns the response body and status code; the
// caller parses.
func (c *Client) DoRequest(ctx context.Context, cfg RequestConfig) ([]byte, int, error) {
	if err := c.CheckCircuitBreaker(); err != nil {
		return nil, 0, err
	}

	if err := c.AcquireSlot(ctx); err != nil {
		return nil, 0, err
	}
	defer c.ReleaseSlot()

	method := cfg.Method
	if method == "" {
		method = http.MethodGet
	}

	maxRetry := cfg.MaxRetry
	if maxRetry <= 0 {
		maxRetry = 3
	}

	service, endpoint := upstreamLabels(cfg.URL)
	start := time.Now()

	var (
		lastErr  error
		lastKind string
	)
	for attempt := 0; attempt < maxRetry; attempt++ {
		if attempt > 0 {
			metrics.UpstreamRetries.WithLabelValues(service, endpoint).Inc()
			// Exponential backoff
			backoff := time.Duration(attempt*attempt) * 100 * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, 0, fmt.Errorf("context canceled during backoff: %w", ctx.Err())
			}
		}

		var reqBody io.Reader
		if cfg.Body != nil {
			reqBody = bytes.NewReader(cfg.Body)
		}
		req, err := http.NewRequestWithContext(ctx, method, cfg.URL, reqBody)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to create request: %w", err)
		}

		if cfg.Accept != "" {
			req.Header.Set("Accept", cfg.Accept)
		} else {
			req.Header.Set("Accept", "application/json")
		}
		if cfg.UserAgent != "" {
			req.Header.Set("User-Agent", cfg.UserAgent)
		} else {
			req.Header.Set("User-Agent", DefaultUserAgent)
		}
		if cfg.ContentType != "" {
			req.Header.Set("Content-Type", cfg.ContentType)
		}
		for k, v := range cfg.Headers {
			req.Header.Set(k, v)
		}

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			lastKind = "network"
			c.Logger.Warn("API request failed, retrying",
				"attempt", attempt+1,
				"url", cfg.URL,
				"error", err)
			continue
		}

		body, err := readAndClose(resp)
		if err != nil {
			lastErr = fmt.Errorf("failed to read response: %w", err)
			lastKind = "read"
			continue
		}

		// Honor Retry-After on 429 responses
		if resp.StatusCode == http.StatusTooManyRequests {
			if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
				if seconds, parseErr := strconv.Atoi(retryAfter); parseErr == nil {
					select {
					case <-time.After(time.Duration(seconds) * time.Second):
					case <-ctx.Done():
						return nil, 0, ctx.Err()
					}
					continue
				}
			}
			lastErr = fmt.Errorf("rate limited (429)")
			lastKind = "rate_limited"
			continue
		}

		// Server errors (5xx) are retried
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server error %d: %s", resp.StatusCode, truncate(string(body), 200))
			lastKind = "server_error"
			continue
		}

		metrics.RecordUpstreamCall(service, endpoint, time.Since(start).Seconds(), true, "")
		return body, resp.StatusCode, nil
	}

	metrics.RecordUpstreamCall(service, endpoint, time.Since(start).Seconds(), false, lastKind)
	c.CircuitBreaker.RecordFailure()
	return nil, 0, lastErr
}

// RecordSuccess records a successful request with the circuit breaker
func (c *Client) RecordSuccess() {
	c.CircuitBreaker.RecordSuccess()
}

// RecordFailure records a failed request with the circuit breaker
func (c *Client) RecordFailure() {
	c.CircuitBreaker.RecordFailure()
}

// upstreamLabels derives metric labels from the request URL. The host
// identifies the service and the path the endpoint; query strings are
// dropped to keep label cardinality bounded.
func upstreamLabels(rawURL string) (service, endpoint string) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "unknown", ""
	}
	return u.Hostname(), u.Path
}

func readAndClose(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return body, err
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

func newHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		MaxConnsPerHost:       50,
		IdleConnTimeout:       120 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

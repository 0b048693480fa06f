// Package internal implements the transport layer of the MotorPress API
// wrapper: the HTTP client shared by the GraphQL and REST fetchers, the
// caching decision, and the deep asset-URL transform applied to successful
// payloads.
package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/motorpress/go-motorpress-api-wrapper/pkg/types"
	"golang.org/x/time/rate"
)

const (
	DefaultRequestsPerMinute = 120
	DefaultRateLimitBurst    = 10
	SecondsPerMinute         = 60.0
)

// RateLimitConfig controls how requests are throttled before reaching the backend.
type RateLimitConfig struct {
	// RequestsPerMinute caps steady-state throughput. Defaults to 120 if zero.
	RequestsPerMinute float64
	// Burst allows short spikes above the steady-state rate. Defaults to 10 if zero.
	Burst int
}

// Client manages communication with the MotorPress backend. It injects the
// bearer token when one is configured, applies the caching decision, and
// never lets a transport failure escape as an error: both fetchers normalize
// every outcome into a typed result.
type Client struct {
	client              *http.Client
	baseURL             *url.URL
	cdnBase             string
	userAgent           string
	authToken           string
	defaultCacheSeconds int

	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewClient returns a new transport client. If a nil httpClient is provided,
// http.DefaultClient will be used. The logger may be nil, in which case
// diagnostics are dropped.
func NewClient(httpClient *http.Client, baseURL, cdnBase, authToken, userAgent string, defaultCacheSeconds int, rateCfg *RateLimitConfig, logger *slog.Logger) (*Client, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}

	if rateCfg == nil {
		rateCfg = &RateLimitConfig{}
	}

	return &Client{
		client:              httpClient,
		baseURL:             parsedURL,
		cdnBase:             strings.TrimRight(cdnBase, "/"),
		userAgent:           userAgent,
		authToken:           authToken,
		defaultCacheSeconds: defaultCacheSeconds,
		limiter:             buildLimiter(*rateCfg),
		logger:              logger,
	}, nil
}

// CDNBase returns the CDN base URL the transform stage qualifies asset names against.
func (c *Client) CDNBase() string {
	return c.cdnBase
}

// Authenticated reports whether a bearer token is attached to outgoing requests.
func (c *Client) Authenticated() bool {
	return c.authToken != ""
}

// Rest performs a REST call against the backend. Body, when non-nil, is JSON
// encoded. REST calls are assumed to be primarily mutations, so the caching
// heuristic is never applied: every request carries an explicit no-store
// directive.
//
// The returned result always has exactly one channel populated, with one
// exception: a 204 No Content response yields nil Data and no error.
// Successful JSON bodies are passed through the asset-URL transform before
// being returned. Rest never returns nil and never panics.
func (c *Client) Rest(ctx context.Context, method, path string, body any) *types.RESTResult {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return c.restFailure(method, path, fmt.Sprintf("encode request body: %v", err))
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := c.newRequest(ctx, method, path, reader)
	if err != nil {
		return c.restFailure(method, path, err.Error())
	}
	req.Header.Set("Cache-Control", "no-store")

	raw, status, err := c.do(req)
	if err != nil {
		return c.restFailure(method, path, err.Error())
	}
	if status == http.StatusNoContent {
		return &types.RESTResult{}
	}
	if status < 200 || status >= 300 {
		return c.restFailure(method, path, httpStatusMessage(status))
	}
	if len(raw) == 0 {
		return &types.RESTResult{}
	}

	return &types.RESTResult{Data: TransformAssetURLs(raw, c.cdnBase)}
}

func (c *Client) restFailure(method, path, message string) *types.RESTResult {
	c.logWarn("rest request failed", "method", method, "path", path, "error", message)
	return &types.RESTResult{Error: message}
}

// newRequest creates an HTTP request resolved against the base URL, with the
// bearer token attached whenever one is configured.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	u, err := c.baseURL.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path %q: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	return req, nil
}

// do executes the request after the rate limiter admits it and returns the
// body bytes alongside the status code.
func (c *Client) do(req *http.Request) ([]byte, int, error) {
	if err := c.waitForRateLimit(req.Context()); err != nil {
		return nil, 0, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response body: %w", err)
	}

	return raw, resp.StatusCode, nil
}

// httpStatusMessage formats the synthetic error for a non-success status.
// The "HTTP <status>" fragment is load-bearing: callers match on it.
func httpStatusMessage(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return fmt.Sprintf("HTTP %d", status)
	}
	return fmt.Sprintf("HTTP %d: %s", status, text)
}

func buildLimiter(cfg RateLimitConfig) *rate.Limiter {
	requestsPerMinute := cfg.RequestsPerMinute
	if requestsPerMinute <= 0 {
		requestsPerMinute = DefaultRequestsPerMinute
	}

	burst := cfg.Burst
	if burst <= 0 {
		burst = DefaultRateLimitBurst
	}

	limitPerSecond := rate.Limit(requestsPerMinute / SecondsPerMinute)
	if limitPerSecond <= 0 {
		limitPerSecond = rate.Limit(1)
	}

	return rate.NewLimiter(limitPerSecond, burst)
}

func (c *Client) waitForRateLimit(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

func (c *Client) logWarn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}

func (c *Client) logDebug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}

// Package openlibrary provides a client for the Open Library catalog API.
package openlibrary

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mlahtinen/shelfmark/internal/ratelimit"
)

const (
	defaultBaseURL       = "https://openlibrary.org"
	defaultCoverBaseURL  = "https://covers.openlibrary.org"
	defaultUserAgent     = "shelfmark/1.0 (https://github.com/mlahtinen/shelfmark)"
	defaultMaxAttempts   = 4 // one initial try plus three retries
	defaultRetryBaseWait = time.Second
	defaultRatePerSecond = 1 // Open Library asks for gentle clients
)

// CatalogError is a non-2xx response from the catalog.
type CatalogError struct {
	Message    string
	StatusCode int
	Endpoint   string
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("openlibrary: %s (status %d, endpoint %s)", e.Message, e.StatusCode, e.Endpoint)
}

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is an Open Library API client. It holds no mutable state beyond
// its rate limiter; every operation is an independent request/response.
type Client struct {
	baseURL       string
	coverBaseURL  string
	userAgent     string
	httpClient    HTTPDoer
	rateLimiter   *ratelimit.Limiter
	retryAttempts int
	retryBaseWait time.Duration
}

// NewClient creates a new Open Library client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:       defaultBaseURL,
		coverBaseURL:  defaultCoverBaseURL,
		userAgent:     defaultUserAgent,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		rateLimiter:   ratelimit.New("OpenLibrary", defaultRatePerSecond),
		retryAttempts: defaultMaxAttempts,
		retryBaseWait: defaultRetryBaseWait,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL sets a custom base URL for the catalog API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithCoverBaseURL sets a custom base URL for the cover image service.
func WithCoverBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.coverBaseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(client *Client) {
		if ua != "" {
			client.userAgent = ua
		}
	}
}

// WithRetryAttempts sets the total number of attempts for failed requests.
func WithRetryAttempts(attempts int) Option {
	return func(client *Client) {
		if attempts > 0 {
			client.retryAttempts = attempts
		}
	}
}

// WithRetryBaseWait sets the base delay used by the linear retry backoff.
func WithRetryBaseWait(d time.Duration) Option {
	return func(client *Client) {
		if d > 0 {
			client.retryBaseWait = d
		}
	}
}

// WithRateLimiter sets a custom rate limiter for the client.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		client.rateLimiter = limiter
	}
}

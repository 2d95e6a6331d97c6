package openlibrary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"
)

// getJSON fetches endpoint and decodes the response into target. Transport
// failures and 5xx responses are retried with a linearly increasing delay;
// 4xx responses are returned immediately since retrying a malformed request
// only wastes quota.
func (c *Client) getJSON(ctx context.Context, endpoint string, target any) error {
	var lastErr error
	for attempt := 1; attempt <= c.retryAttempts; attempt++ {
		err := c.doJSONRequest(ctx, endpoint, target)
		if err == nil {
			return nil
		}
		lastErr = err
		if !isRetryable(err) || attempt == c.retryAttempts {
			return err
		}
		select {
		case <-time.After(c.backoffDelay(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return lastErr
}

func (c *Client) doJSONRequest(ctx context.Context, endpoint string, target any) error {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &CatalogError{
			Message:    fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
		}
	}

	return json.NewDecoder(resp.Body).Decode(target)
}

// isRetryable reports whether a failed attempt is worth repeating: server
// errors and transport-level failures are, client errors are not.
func isRetryable(err error) bool {
	var catalogErr *CatalogError
	if errors.As(err, &catalogErr) {
		return catalogErr.StatusCode >= 500
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	// Anything else is a transport failure (timeouts, connection resets).
	return true
}

// backoffDelay grows linearly with the attempt number, with a little jitter
// to avoid synchronized retries against the shared upstream.
func (c *Client) backoffDelay(attempt int) time.Duration {
	delay := time.Duration(attempt) * c.retryBaseWait
	if quarter := int64(c.retryBaseWait) / 4; quarter > 0 {
		delay += time.Duration(rand.Int64N(quarter))
	}
	return delay
}

package trendhunter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"thscraper/pkg/config"
	errs "thscraper/pkg/errors"
	"thscraper/pkg/logger"
	"thscraper/pkg/ratelimit"
	"thscraper/pkg/retry"
)

// Client fetches TrendHunter pages and images. Every attempt passes through
// the rate limiter before touching the network, and transient failures are
// retried with backoff. Exhausted failures come back as values so the
// pipeline can skip the item and continue.
type Client struct {
	httpClient *http.Client
	headers    map[string]string
	limiter    ratelimit.Limiter
	maxRetries int
	logger     logger.Logger
}

// NewClient creates a client from the HTTP configuration.
func NewClient(cfg *config.HTTPConfig, limiter ratelimit.Limiter, log logger.Logger) (*Client, error) {
	if log == nil {
		log = logger.GetLogger()
	}
	if limiter == nil {
		limiter = ratelimit.Nop{}
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.Proxy != "" {
		proxyURL, err := url.Parse(cfg.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy url: %w", err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
			// The AJAX endpoints redirect on bad parameters; a redirect
			// is a failed lookup, not content.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		headers: map[string]string{
			"User-Agent":      cfg.UserAgent,
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
			"Accept-Language": "en-US,en;q=0.9",
		},
		limiter:    limiter,
		maxRetries: cfg.MaxRetries,
		logger:     log,
	}, nil
}

// SetHeader sets a custom header for the client
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

// Get fetches the URL, retrying transient failures. The returned error is
// the last failure after retries are exhausted.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	var body []byte

	err := retry.Do(func() error {
		var attemptErr error
		body, attemptErr = c.doGet(ctx, rawURL)
		return attemptErr
	}, &retry.Config{
		MaxAttempts: c.maxRetries + 1,
		Backoff:     retry.DefaultExponentialBackoff(),
		RetryIf:     retry.DefaultRetryIf,
		Context:     ctx,
		Logger:      c.logger,
	})
	if err != nil {
		return nil, err
	}

	return body, nil
}

// doGet performs a single rate-limited GET attempt.
func (c *Client) doGet(ctx context.Context, rawURL string) ([]byte, error) {
	if err := c.limiter.Acquire(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &errs.Error{
			Type:    errs.ErrorTypeUnknown,
			Message: fmt.Sprintf("failed to create request: %v", err),
		}
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	c.logger.DebugWithFields("sending HTTP request", map[string]interface{}{
		"method": req.Method,
		"url":    rawURL,
	})

	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		if isTimeout(err) {
			c.logger.WarnWithFields("HTTP request timed out", map[string]interface{}{
				"url":      rawURL,
				"duration": duration,
			})
			return nil, errs.Timeout(rawURL)
		}
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"url":      rawURL,
			"error":    err.Error(),
			"duration": duration,
		})
		return nil, errs.HTTP(rawURL, 0, err)
	}
	defer resp.Body.Close()

	c.logger.DebugWithFields("HTTP request completed", map[string]interface{}{
		"url":      rawURL,
		"status":   resp.StatusCode,
		"duration": duration,
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errs.HTTP(rawURL, resp.StatusCode, nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, errs.Timeout(rawURL)
		}
		return nil, errs.HTTP(rawURL, resp.StatusCode, err)
	}

	return body, nil
}

// isTimeout reports whether a transport error was a deadline expiry.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

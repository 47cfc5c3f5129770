package statcast

import (
	"net/http"
	"time"

	"github.com/okian/momentum/pkg/logger"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithBaseURL overrides the search endpoint, e.g. for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRateLimit limits requests per second with the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps > 0 {
			c.rps = rps
		}
		if burst > 0 {
			c.burst = burst
		}
	}
}

// WithBreaker trips the circuit after maxFailures consecutive failures and
// keeps it open for openTimeout.
func WithBreaker(maxFailures uint32, openTimeout time.Duration) Option {
	return func(c *Client) {
		if maxFailures > 0 {
			c.maxFailures = maxFailures
		}
		if openTimeout > 0 {
			c.openTimeout = openTimeout
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// Package statcast fetches pitch-level play-by-play records from Baseball
// Savant's Statcast search and caches them.
package statcast

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/okian/momentum/internal/domain/model"
	"github.com/okian/momentum/pkg/logger"
	"github.com/okian/momentum/pkg/metrics"
)

// Default client configuration.
const (
	DefaultBaseURL     = "https://baseballsavant.mlb.com/statcast_search/csv"
	defaultTimeout     = 60 * time.Second
	defaultRPS         = 1.0
	defaultBurst       = 2
	defaultMaxFailures = 3
	defaultOpenTimeout = 60 * time.Second
	breakerName        = "statcast"
	maxErrorBody       = 512
)

// Client queries the Statcast search CSV endpoint. It is safe for
// concurrent use.
type Client struct {
	baseURL     string
	http        *http.Client
	timeout     time.Duration
	rps         float64
	burst       int
	maxFailures uint32
	openTimeout time.Duration
	logger      logger.Logger

	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

// NewClient creates a client with rate limiting and a circuit breaker.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:     DefaultBaseURL,
		timeout:     defaultTimeout,
		rps:         defaultRPS,
		burst:       defaultBurst,
		maxFailures: defaultMaxFailures,
		openTimeout: defaultOpenTimeout,
		logger:      logger.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	c.limiter = rate.NewLimiter(rate.Limit(c.rps), c.burst)

	maxFailures := c.maxFailures
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    breakerName,
		Timeout: c.openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			// Caller cancellation does not count as a failure.
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.UpdateBreakerState(name, int(to))
			metrics.RecordBreakerTransition(name, from.String(), to.String())
			c.logger.Warn(context.Background(), "circuit breaker state change",
				logger.String("breaker", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()),
			)
		},
	})
	metrics.UpdateBreakerState(breakerName, int(gobreaker.StateClosed))
	return c
}

// SearchURL builds the request URL for one player and period.
func (c *Client) SearchURL(role model.Role, id model.PlayerID, period model.Period) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	q := u.Query()
	q.Set("all", "true")
	q.Set("type", "details")
	q.Set("player_type", role.String())
	q.Set(role.String()+"s_lookup[]", strconv.FormatInt(int64(id), 10))
	q.Set("game_date_gt", period.Start.Format(model.DateLayout))
	q.Set("game_date_lt", period.End.Format(model.DateLayout))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Fetch returns every pitch for the player in period, inclusive. Failures
// wrap ErrUnavailable.
func (c *Client) Fetch(ctx context.Context, role model.Role, id model.PlayerID, period model.Period) (model.RecordSet, error) {
	if !role.Valid() {
		return model.RecordSet{}, fmt.Errorf("fetch: %w", model.ErrInvalidRole)
	}
	start := time.Now()
	defer func() {
		metrics.RecordFetchLatency(role.String(), float64(time.Since(start).Milliseconds()))
	}()

	target, err := c.SearchURL(role, id, period)
	if err != nil {
		return model.RecordSet{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	waitStart := time.Now()
	if err := c.limiter.Wait(ctx); err != nil {
		metrics.RecordFetchError(role.String(), "rate_limit")
		return model.RecordSet{}, fmt.Errorf("%w: rate limiter: %w", ErrUnavailable, err)
	}
	metrics.RecordRateLimitWait(float64(time.Since(waitStart).Milliseconds()))

	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.get(ctx, target)
	})
	if err != nil {
		metrics.RecordFetchError(role.String(), fetchErrorReason(err))
		return model.RecordSet{}, fmt.Errorf("%w: %s %d %s: %w", ErrUnavailable, role, id, period, err)
	}

	rs, err := Decode(bytes.NewReader(out.([]byte)))
	if err != nil {
		metrics.RecordFetchError(role.String(), "decode")
		return model.RecordSet{}, fmt.Errorf("%w: decode: %w", ErrUnavailable, err)
	}
	c.logger.Debug(ctx, "statcast fetch",
		logger.String("role", role.String()),
		logger.Int("player_id", int(id)),
		logger.String("period", period.String()),
		logger.Int("records", rs.Len()),
		logger.Duration("took", time.Since(start)),
	)
	return rs, nil
}

func (c *Client) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w %d: %s", ErrBadStatus, resp.StatusCode, bytes.TrimSpace(snippet))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

func fetchErrorReason(err error) string {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "breaker_open"
	case errors.Is(err, ErrBadStatus):
		return "bad_status"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	default:
		return "transport"
	}
}

package replay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/okian/momentum/internal/adapters/repository"
	service "github.com/okian/momentum/internal/app"
	"github.com/okian/momentum/internal/domain/model"
)

// errPending means the moment has not been scored yet.
var errPending = errors.New("result pending")

// Client talks to the momentum HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

type ackResponse struct {
	Status    string `json:"status"`
	MomentID  string `json:"moment_id"`
	Duplicate bool   `json:"duplicate"`
}

// Health checks GET /healthz.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/healthz", nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	return nil
}

// Submit posts m to POST /moments.
func (c *Client) Submit(ctx context.Context, m model.Moment) (string, Outcome, error) {
	resp, err := c.do(ctx, http.MethodPost, "/moments", m)
	if err != nil {
		return "", OutcomeFailed, err
	}
	defer resp.Body.Close()

	var ack ackResponse
	switch resp.StatusCode {
	case http.StatusAccepted, http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
			return "", OutcomeFailed, fmt.Errorf("decode ack: %w", err)
		}
		if ack.Duplicate {
			return ack.MomentID, OutcomeDuplicate, nil
		}
		return ack.MomentID, OutcomeAccepted, nil
	case http.StatusBadRequest:
		return m.ID(), OutcomeRejected, fmt.Errorf("rejected: %s", readBody(resp.Body))
	default:
		return m.ID(), OutcomeFailed, fmt.Errorf("status %d: %s", resp.StatusCode, readBody(resp.Body))
	}
}

// Result fetches GET /moments/{id}. It returns errPending on 404.
func (c *Client) Result(ctx context.Context, id string) (service.Bundle, error) {
	resp, err := c.do(ctx, http.MethodGet, "/moments/"+url.PathEscape(id), nil)
	if err != nil {
		return service.Bundle{}, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var b service.Bundle
		if err := json.NewDecoder(resp.Body).Decode(&b); err != nil {
			return service.Bundle{}, fmt.Errorf("decode result: %w", err)
		}
		return b, nil
	case http.StatusNotFound:
		return service.Bundle{}, errPending
	default:
		return service.Bundle{}, fmt.Errorf("status %d: %s", resp.StatusCode, readBody(resp.Body))
	}
}

// Leaderboard fetches GET /leaderboard for role.
func (c *Client) Leaderboard(ctx context.Context, role model.Role, limit int) ([]repository.Entry, error) {
	q := url.Values{}
	q.Set("role", role.String())
	q.Set("limit", strconv.Itoa(limit))
	resp, err := c.do(ctx, http.MethodGet, "/leaderboard?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, readBody(resp.Body))
	}
	var entries []repository.Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode leaderboard: %w", err)
	}
	return entries, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var rd io.Reader = http.NoBody
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		rd = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.http.Do(req)
}

func readBody(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, 512))
	return string(bytes.TrimSpace(raw))
}

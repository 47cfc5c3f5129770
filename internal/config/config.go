// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - All functions accept context.Context as the first parameter.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/okian/momentum/internal/domain/model"
	"github.com/okian/momentum/internal/domain/scoring"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory moment queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of scoring workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// StoreCapacity bounds stored results; 0 is unbounded.
	StoreCapacity int `koanf:"store_capacity"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// DaysAfter is the length of the post-moment window.
	DaysAfter int `koanf:"days_after"`

	// DaysBefore fixes the pre-moment window; 0 uses LookbackYears.
	DaysBefore int `koanf:"days_before"`

	// LookbackYears counts seasons before the moment's year.
	LookbackYears int `koanf:"lookback_years"`

	// BatterWeights and PitcherWeights override the default component
	// weights. Empty keeps the defaults.
	BatterWeights  map[string]float64 `koanf:"batter_weights"`
	PitcherWeights map[string]float64 `koanf:"pitcher_weights"`

	// Statcast client.
	StatcastBaseURL      string  `koanf:"statcast_base_url"`
	StatcastTimeoutMS    int     `koanf:"statcast_timeout_ms"`
	StatcastRPS          float64 `koanf:"statcast_rps"`
	StatcastBurst        int     `koanf:"statcast_burst"`
	BreakerMaxFailures   int     `koanf:"breaker_max_failures"`
	BreakerOpenTimeoutMS int     `koanf:"breaker_open_timeout_ms"`

	// PlayerIDFile is a CSV with PLAYERNAME and MLBID columns.
	PlayerIDFile string `koanf:"player_id_file"`

	// RedisAddr selects the redis record cache; empty uses memory.
	RedisAddr       string `koanf:"redis_addr"`
	CacheTTLMinutes int    `koanf:"cache_ttl_minutes"`
	CacheSize       int    `koanf:"cache_size"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:             "info",
		Addr:                 ":9080",
		QueueSize:            1024,
		WorkerCount:          runtime.NumCPU(),
		DedupeSize:           50_000,
		StoreCapacity:        100_000,
		MaxLeaderboardLimit:  100,
		DaysAfter:            30,
		DaysBefore:           0,
		LookbackYears:        5,
		StatcastBaseURL:      "https://baseballsavant.mlb.com/statcast_search/csv",
		StatcastTimeoutMS:    60_000,
		StatcastRPS:          1,
		StatcastBurst:        2,
		BreakerMaxFailures:   3,
		BreakerOpenTimeoutMS: 60_000,
		PlayerIDFile:         "",
		CacheTTLMinutes:      24 * 60,
		CacheSize:            256,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate(_ context.Context) error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.DaysAfter < 0:
		return fmt.Errorf("%w: days_after must be >= 0", ErrInvalidConfig)
	case c.DaysBefore < 0:
		return fmt.Errorf("%w: days_before must be >= 0", ErrInvalidConfig)
	case c.LookbackYears < 1:
		return fmt.Errorf("%w: lookback_years must be >= 1", ErrInvalidConfig)
	case c.StatcastRPS <= 0:
		return fmt.Errorf("%w: statcast_rps must be > 0", ErrInvalidConfig)
	case c.BreakerMaxFailures < 1:
		return fmt.Errorf("%w: breaker_max_failures must be >= 1", ErrInvalidConfig)
	}
	for _, role := range model.Roles() {
		if _, err := c.Weights(role); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// Weights returns the configured weight table for role, nil for defaults.
func (c *Config) Weights(role model.Role) (scoring.Weights, error) {
	raw := c.BatterWeights
	if role == model.RolePitcher {
		raw = c.PitcherWeights
	}
	return scoring.ParseWeights(role, raw)
}

// StatcastTimeout returns the per-request timeout.
func (c *Config) StatcastTimeout() time.Duration {
	return time.Duration(c.StatcastTimeoutMS) * time.Millisecond
}

// BreakerOpenTimeout returns how long the breaker stays open.
func (c *Config) BreakerOpenTimeout() time.Duration {
	return time.Duration(c.BreakerOpenTimeoutMS) * time.Millisecond
}

// CacheTTL returns the record cache expiry.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

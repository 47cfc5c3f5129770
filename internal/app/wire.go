package service

import (
	"context"
	"fmt"
	"io"

	"github.com/okian/momentum/internal/adapters/playerid"
	"github.com/okian/momentum/internal/adapters/statcast"
	"github.com/okian/momentum/internal/config"
	"github.com/okian/momentum/internal/domain/model"
	"github.com/okian/momentum/internal/domain/scoring"
	"github.com/okian/momentum/pkg/logger"
)

// Components is the orchestrator built from configuration plus the
// resources it owns.
type Components struct {
	Orchestrator *Orchestrator
	Lookup       *playerid.Table
	Cache        statcast.Cache

	closers []io.Closer
}

// Close releases owned resources such as the redis connection pool.
func (c *Components) Close() error {
	var first error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Build wires the Savant client, the record cache, the player-id table and
// the scorer described by cfg.
func Build(ctx context.Context, cfg *config.Config, l logger.Logger) (*Components, error) {
	if l == nil {
		l = logger.NewNop()
	}
	if cfg.PlayerIDFile == "" {
		return nil, fmt.Errorf("%w: player_id_file is not configured", ErrNoIDLookup)
	}
	table, err := playerid.LoadFile(cfg.PlayerIDFile)
	if err != nil {
		return nil, err
	}

	scorer, err := scorerFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	comps := &Components{Lookup: table}

	client := statcast.NewClient(
		statcast.WithBaseURL(cfg.StatcastBaseURL),
		statcast.WithTimeout(cfg.StatcastTimeout()),
		statcast.WithRateLimit(cfg.StatcastRPS, cfg.StatcastBurst),
		statcast.WithBreaker(uint32(cfg.BreakerMaxFailures), cfg.BreakerOpenTimeout()), //nolint:gosec // validated >= 1
		statcast.WithLogger(l.Named("statcast")),
	)

	if cfg.RedisAddr != "" {
		rc, err := statcast.NewRedisCache(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		comps.Cache = rc
		comps.closers = append(comps.closers, rc)
	} else {
		comps.Cache = statcast.NewMemoryCache(cfg.CacheSize)
	}
	source := statcast.NewCachedSource(client, comps.Cache, cfg.CacheTTL(), l.Named("cache"))

	orch, err := NewOrchestrator(source, table,
		WithDaysAfter(cfg.DaysAfter),
		WithDaysBefore(cfg.DaysBefore),
		WithLookbackYears(cfg.LookbackYears),
		WithScorer(scorer),
		WithOrchestratorLogger(l.Named("orchestrator")),
	)
	if err != nil {
		_ = comps.Close()
		return nil, err
	}
	comps.Orchestrator = orch

	l.Info(ctx, "scoring pipeline ready",
		logger.Int("players", table.Len()),
		logger.String("cache", comps.Cache.Name()),
		logger.String("statcast", cfg.StatcastBaseURL),
	)
	return comps, nil
}

func scorerFromConfig(cfg *config.Config) (*scoring.MomentumScorer, error) {
	opts := make([]scoring.Option, 0, len(model.Roles()))
	for _, role := range model.Roles() {
		w, err := cfg.Weights(role)
		if err != nil {
			return nil, err
		}
		opts = append(opts, scoring.WithWeights(role, w))
	}
	return scoring.NewMomentumScorer(opts...), nil
}

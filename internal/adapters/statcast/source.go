package statcast

import (
	"context"
	"time"

	"github.com/okian/momentum/internal/domain/model"
	"github.com/okian/momentum/pkg/logger"
	"github.com/okian/momentum/pkg/metrics"
)

// Fetcher is anything that can produce a player's records for a period.
type Fetcher interface {
	Fetch(ctx context.Context, role model.Role, id model.PlayerID, period model.Period) (model.RecordSet, error)
}

// CachedSource serves records from a cache and falls back to a Fetcher.
// Cache errors are logged and treated as misses.
type CachedSource struct {
	next   Fetcher
	cache  Cache
	ttl    time.Duration
	logger logger.Logger
}

// NewCachedSource wraps next with cache. A non-positive ttl never expires.
func NewCachedSource(next Fetcher, cache Cache, ttl time.Duration, l logger.Logger) *CachedSource {
	if l == nil {
		l = logger.NewNop()
	}
	return &CachedSource{next: next, cache: cache, ttl: ttl, logger: l}
}

// Fetch implements Fetcher.
func (s *CachedSource) Fetch(ctx context.Context, role model.Role, id model.PlayerID, period model.Period) (model.RecordSet, error) {
	key := CacheKey(role, id, period)
	rs, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn(ctx, "cache read failed", logger.String("key", key), logger.Error(err))
	}
	metrics.RecordCacheLookup(s.cache.Name(), ok)
	if ok {
		return rs, nil
	}

	rs, err = s.next.Fetch(ctx, role, id, period)
	if err != nil {
		return model.RecordSet{}, err
	}
	if err := s.cache.Set(ctx, key, rs, s.ttl); err != nil {
		s.logger.Warn(ctx, "cache write failed", logger.String("key", key), logger.Error(err))
	}
	return rs, nil
}

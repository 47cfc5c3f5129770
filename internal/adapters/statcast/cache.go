package statcast

import (
	"container/list"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/okian/momentum/internal/domain/model"
)

// Cache stores decoded record sets by key.
type Cache interface {
	// Get returns the cached set and whether it was found.
	Get(ctx context.Context, key string) (model.RecordSet, bool, error)
	Set(ctx context.Context, key string, rs model.RecordSet, ttl time.Duration) error
	// Name labels the backend in metrics.
	Name() string
}

// CacheKey identifies one player's records for one period.
func CacheKey(role model.Role, id model.PlayerID, period model.Period) string {
	return strings.Join([]string{
		"statcast",
		role.String(),
		fmt.Sprint(int64(id)),
		period.Start.Format(model.DateLayout),
		period.End.Format(model.DateLayout),
	}, ":")
}

type memoryEntry struct {
	key     string
	rs      model.RecordSet
	expires time.Time
}

// MemoryCache is a bounded LRU cache with per-entry expiry.
type MemoryCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	lru      *list.List
	now      func() time.Time
}

// NewMemoryCache creates a cache holding at most capacity record sets.
func NewMemoryCache(capacity int) *MemoryCache {
	if capacity < 1 {
		capacity = 1
	}
	return &MemoryCache{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		lru:      list.New(),
		now:      time.Now,
	}
}

func (m *MemoryCache) Name() string { return "memory" }

func (m *MemoryCache) Get(_ context.Context, key string) (model.RecordSet, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	el, ok := m.entries[key]
	if !ok {
		return model.RecordSet{}, false, nil
	}
	e := el.Value.(*memoryEntry)
	if !e.expires.IsZero() && m.now().After(e.expires) {
		m.lru.Remove(el)
		delete(m.entries, key)
		return model.RecordSet{}, false, nil
	}
	m.lru.MoveToFront(el)
	return e.rs, true, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, rs model.RecordSet, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var expires time.Time
	if ttl > 0 {
		expires = m.now().Add(ttl)
	}
	if el, ok := m.entries[key]; ok {
		el.Value = &memoryEntry{key: key, rs: rs, expires: expires}
		m.lru.MoveToFront(el)
		return nil
	}
	if m.lru.Len() >= m.capacity {
		if oldest := m.lru.Back(); oldest != nil {
			m.lru.Remove(oldest)
			delete(m.entries, oldest.Value.(*memoryEntry).key)
		}
	}
	m.entries[key] = m.lru.PushFront(&memoryEntry{key: key, rs: rs, expires: expires})
	return nil
}

// Len returns the number of cached sets, expired ones included.
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lru.Len()
}

// RedisCache stores record sets as JSON in Redis.
type RedisCache struct {
	client redis.Cmdable
}

// NewRedisCache connects to addr and verifies the connection.
func NewRedisCache(ctx context.Context, addr string) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return &RedisCache{client: rdb}, nil
}

// NewRedisCacheWithClient wraps an existing client.
func NewRedisCacheWithClient(client redis.Cmdable) *RedisCache {
	return &RedisCache{client: client}
}

func (r *RedisCache) Name() string { return "redis" }

func (r *RedisCache) Get(ctx context.Context, key string) (model.RecordSet, bool, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.RecordSet{}, false, nil
	}
	if err != nil {
		return model.RecordSet{}, false, fmt.Errorf("redis get: %w", err)
	}
	var rs model.RecordSet
	if err := json.Unmarshal(raw, &rs); err != nil {
		return model.RecordSet{}, false, fmt.Errorf("redis decode %s: %w", key, err)
	}
	return rs, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, rs model.RecordSet, ttl time.Duration) error {
	raw, err := json.Marshal(rs)
	if err != nil {
		return fmt.Errorf("redis encode %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close releases the underlying client when it owns a connection pool.
func (r *RedisCache) Close() error {
	if c, ok := r.client.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

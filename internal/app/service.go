package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	eventqueue "github.com/okian/momentum/internal/adapters/mq/queue"
	workerpool "github.com/okian/momentum/internal/adapters/mq/worker"
	"github.com/okian/momentum/internal/adapters/repository"
	"github.com/okian/momentum/internal/domain/dedupe"
	"github.com/okian/momentum/internal/domain/model"
	"github.com/okian/momentum/pkg/logger"
	"github.com/okian/momentum/pkg/metrics"
)

// Service implements the API dependencies for moment scoring.
type Service struct {
	mu sync.RWMutex

	// Core components
	calculator Calculator
	results    *repository.MemoryStore[Bundle]
	deduper    dedupe.Deduper
	queue      *eventqueue.InMemoryQueue
	pool       *workerpool.Pool

	// Configuration
	workerCount   int
	queueSize     int
	dedupeSize    int
	storeCapacity int

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithCalculator sets the moment calculator, usually an *Orchestrator.
func WithCalculator(c Calculator) Option {
	return func(s *Service) {
		if c != nil {
			s.calculator = c
		}
	}
}

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum number of pending moments.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithStoreCapacity bounds the number of stored results. Zero is unbounded.
func WithStoreCapacity(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.storeCapacity = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU(),
		queueSize:   1024,
		dedupeSize:  50000,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.calculator == nil {
		return ErrNoCalculator
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting momentum service...")

	if s.results == nil {
		s.results = repository.NewMemoryStore[Bundle](repository.WithCapacity(s.storeCapacity))
	}
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.queue = eventqueue.NewInMemoryQueue(eventqueue.WithCapacity(s.queueSize))
	s.pool = workerpool.NewPool(s.workerCount, s.queue, workerpool.HandlerFunc(s.handle),
		workerpool.WithLogger(s.logger),
	)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "momentum service started",
		logger.Int("workers", s.pool.Size()),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)
	return nil
}

// Stop stops accepting moments and waits for queued ones until ctx expires.
// Stored results survive a restart.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}
	s.logger.Info(ctx, "stopping momentum service...")
	s.started = false

	err := s.pool.Shutdown(ctx)
	if err != nil {
		s.logger.Warn(ctx, "pending moments dropped", logger.Error(err))
	}
	s.logger.Info(ctx, "momentum service stopped")
	return err
}

// Calculate scores m synchronously and stores the result.
func (s *Service) Calculate(ctx context.Context, m model.Moment) (Bundle, error) {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		return Bundle{}, ErrNotStarted
	}
	if err := m.Validate(); err != nil {
		return Bundle{}, err
	}
	id := m.ID()
	metrics.RecordMomentSubmitted()
	s.deduper.SeenAndRecord(ctx, id)
	return s.score(ctx, id, m)
}

// Submit queues m for scoring. It returns the moment id and whether the
// moment was already submitted. A full queue fails with queue.ErrFull.
func (s *Service) Submit(ctx context.Context, m model.Moment) (string, bool, error) {
	if err := m.Validate(); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return "", false, ErrNotStarted
	}

	id := m.ID()
	metrics.RecordMomentSubmitted()
	if s.deduper.SeenAndRecord(ctx, id) {
		metrics.RecordMomentDuplicate()
		s.logger.Debug(ctx, "duplicate moment, skipping", logger.String("moment_id", id))
		return id, true, nil
	}
	if err := s.queue.Enqueue(ctx, eventqueue.Job{ID: id, Moment: m, Enqueued: time.Now()}); err != nil {
		s.deduper.Unrecord(ctx, id)
		return id, false, err
	}
	return id, false, nil
}

// handle is the worker entry point for queued moments.
func (s *Service) handle(ctx context.Context, j eventqueue.Job) error {
	_, err := s.score(ctx, j.ID, j.Moment)
	return err
}

func (s *Service) score(ctx context.Context, id string, m model.Moment) (Bundle, error) {
	start := time.Now()
	b, err := s.calculator.Calculate(ctx, m)
	metrics.RecordScoringLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordMomentFailed()
		metrics.RecordErrorByComponent("service", "calculate")
		s.deduper.Unrecord(ctx, id)
		return Bundle{}, fmt.Errorf("calculate moment %s: %w", id, err)
	}
	b.MomentID = id

	var entries []repository.Entry
	for _, role := range model.Roles() {
		p := b.Player(role)
		metrics.RecordScore(role.String(), p.Score)
		if !p.Detail.Available {
			continue
		}
		entries = append(entries, repository.Entry{
			MomentID: id,
			Role:     role,
			Player:   p.Name,
			Score:    p.Score,
			GameDate: b.GameDate,
			Event:    b.Event,
		})
	}
	if err := s.results.Put(ctx, id, b, entries...); err != nil {
		metrics.RecordErrorByComponent("service", "store")
		return Bundle{}, fmt.Errorf("store moment %s: %w", id, err)
	}
	metrics.RecordMomentScored()
	metrics.UpdateStoredResults(s.results.Count(ctx))
	s.logger.Debug(ctx, "moment scored",
		logger.String("moment_id", id),
		logger.Float64("batter_mss", b.Batter.Score),
		logger.Float64("pitcher_mss", b.Pitcher.Score),
		logger.Duration("took", time.Since(start)),
	)
	return b, nil
}

// Result returns the stored result for a moment id.
func (s *Service) Result(ctx context.Context, id string) (Bundle, error) {
	s.mu.RLock()
	results := s.results
	s.mu.RUnlock()
	if results == nil {
		return Bundle{}, fmt.Errorf("moment %s: %w", id, repository.ErrNotFound)
	}
	return results.Get(ctx, id)
}

// TopN returns the n highest scoring players of role.
func (s *Service) TopN(ctx context.Context, role model.Role, n int) ([]repository.Entry, error) {
	s.mu.RLock()
	results := s.results
	s.mu.RUnlock()
	if results == nil {
		return []repository.Entry{}, nil
	}
	return results.TopN(ctx, role, n)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}
	if s.started {
		stats["workerCount"] = s.pool.Size()
		stats["activeWorkers"] = s.pool.Active()
		stats["queueLength"] = s.queue.Len()
		stats["seenMoments"] = s.deduper.Size()
	}
	if s.results != nil {
		stats["storedResults"] = s.results.Count(context.Background())
	}
	return stats
}

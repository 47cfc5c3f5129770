// Package worker scores queued moments on a pool of goroutines.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/okian/momentum/internal/adapters/mq/queue"
	"github.com/okian/momentum/pkg/logger"
	"github.com/okian/momentum/pkg/metrics"
)

const defaultWorkerMultiplier = 2

// Handler processes one job. Scoring moments is network bound, so a
// handler may block on the data source.
type Handler interface {
	Handle(ctx context.Context, j queue.Job) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, j queue.Job) error

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, j queue.Job) error { return f(ctx, j) }

// Source is where workers receive jobs from.
type Source interface {
	Dequeue(ctx context.Context) <-chan queue.Job
}

// Worker runs jobs from a single dequeue channel.
type Worker struct {
	jobs    <-chan queue.Job
	handler Handler
	name    string
	logger  logger.Logger
	active  *atomic.Int64

	abort chan struct{}
	done  chan struct{}
}

func newWorker(jobs <-chan queue.Job, h Handler, active *atomic.Int64, opts ...Option) *Worker {
	s := newSettings("worker", opts)
	return &Worker{
		jobs:    jobs,
		handler: h,
		name:    s.name,
		logger:  s.logger.Named(s.name),
		active:  active,
		abort:   make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Run processes jobs until the channel closes, ctx is done or the worker is aborted.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.abort:
			return
		case j, ok := <-w.jobs:
			if !ok {
				return
			}
			if err := w.process(ctx, j); err != nil {
				w.logger.Error(ctx, "error processing moment", logger.String("moment_id", j.ID), logger.Error(err))
			}
		}
	}
}

func (w *Worker) process(ctx context.Context, j queue.Job) (err error) { //nolint:gocritic // Job is passed by value for channel semantics
	start := time.Now()
	metrics.UpdateWorkerActiveCount(int(w.active.Add(1)))
	defer func() {
		metrics.UpdateWorkerActiveCount(int(w.active.Add(-1)))
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
		if err != nil {
			metrics.RecordWorkerError()
			metrics.RecordErrorByComponent("worker", "handler_error")
		}
	}()
	if err := w.handler.Handle(ctx, j); err != nil {
		return fmt.Errorf("moment %s: %w", j.ID, err)
	}
	return nil
}

// Pool manages multiple workers reading from one source.
type Pool struct {
	workers []*Worker
	source  Source
	handler Handler
	name    string
	logger  logger.Logger
	active  atomic.Int64
	opts    []Option
}

// NewPool creates a new worker pool. A non-positive count selects a
// multiple of the CPU count.
func NewPool(workerCount int, source Source, h Handler, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}
	s := newSettings("worker-pool", opts)
	p := &Pool{
		workers: make([]*Worker, workerCount),
		source:  source,
		handler: h,
		name:    s.name,
		logger:  s.logger.Named(s.name),
		opts:    opts,
	}
	metrics.UpdateWorkerCount(workerCount)
	metrics.UpdateWorkerActiveCount(0)
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Active returns the number of workers currently handling a job.
func (p *Pool) Active() int { return int(p.active.Load()) }

// Start launches every worker on a single shared dequeue channel, so at
// most one job waits outside the source while all workers are busy.
func (p *Pool) Start(ctx context.Context) {
	jobs := p.source.Dequeue(ctx)
	for i := range p.workers {
		opts := append(append([]Option(nil), p.opts...), WithName("worker-"+strconv.Itoa(i)))
		w := newWorker(jobs, p.handler, &p.active, opts...)
		p.workers[i] = w
		go w.Run(ctx)
	}
	p.logger.Info(ctx, "worker pool started", logger.Int("workers", len(p.workers)))
}

// Shutdown closes the source when it can be closed and waits for the
// workers to drain it. When ctx expires the remaining workers are told to
// stop after their current job and Shutdown returns without waiting.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.source.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	for i, w := range p.workers {
		if w == nil {
			continue
		}
		select {
		case <-w.done:
		case <-ctx.Done():
			for _, rest := range p.workers[i:] {
				if rest != nil {
					close(rest.abort)
				}
			}
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("pending_workers", len(p.workers)-i))
			return fmt.Errorf("worker pool shutdown: %w", ctx.Err())
		}
	}
	return nil
}

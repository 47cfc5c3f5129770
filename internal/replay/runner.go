package replay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/momentum/internal/adapters/repository"
	service "github.com/okian/momentum/internal/app"
	"github.com/okian/momentum/internal/domain/model"
	"github.com/okian/momentum/pkg/logger"
)

// Report is the outcome of a replay run.
type Report struct {
	Stats        Stats                             `json:"stats"`
	Limit        int                               `json:"limit"`
	Results      map[string]service.Bundle         `json:"results"`
	Leaderboards map[model.Role][]repository.Entry `json:"leaderboards"`
}

// Run submits moments to the service, waits for their results and checks
// the leaderboards against them.
func Run(ctx context.Context, cfg Config, moments []model.Moment, log logger.Logger) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewNop()
	}
	start := time.Now()
	client := NewClient(cfg)

	log.Info(ctx, "starting moment replay",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("moments", len(moments)),
		logger.Int("workers", cfg.Workers))

	if err := client.Health(ctx); err != nil {
		return nil, err
	}

	report := &Report{
		Stats:        Stats{Moments: len(moments)},
		Limit:        cfg.TopN,
		Results:      make(map[string]service.Bundle),
		Leaderboards: make(map[model.Role][]repository.Entry),
	}

	ids := submitMoments(ctx, cfg, client, moments, &report.Stats, log)

	results, missing := awaitResults(ctx, cfg, client, ids, log)
	report.Results = results
	report.Stats.Scored = len(results)
	report.Stats.Missing = missing

	for _, role := range model.Roles() {
		entries, err := client.Leaderboard(ctx, role, cfg.TopN)
		if err != nil {
			return report, fmt.Errorf("leaderboard %s: %w", role, err)
		}
		report.Leaderboards[role] = entries
		report.Stats.LeaderboardEntries += len(entries)
	}
	report.Stats.Duration = time.Since(start)

	log.Info(ctx, "replay finished",
		logger.Int("accepted", report.Stats.Accepted),
		logger.Int("duplicate", report.Stats.Duplicate),
		logger.Int("rejected", report.Stats.Rejected),
		logger.Int("failed", report.Stats.Failed),
		logger.Int("scored", report.Stats.Scored),
		logger.Int("missing", report.Stats.Missing),
		logger.Duration("duration", report.Stats.Duration))

	return report, Verify(report)
}

// submitMoments posts every moment and returns the ids worth polling.
func submitMoments(ctx context.Context, cfg Config, client *Client, moments []model.Moment, stats *Stats, log logger.Logger) []string {
	var (
		accepted, duplicate, rejected, failed int64
		mu                                    sync.Mutex
		ids                                   = make(map[string]struct{}, len(moments))
		wg                                    sync.WaitGroup
	)

	work := make(chan model.Moment, cfg.Workers*2)
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for m := range work {
				id, outcome, err := client.Submit(ctx, m)
				switch outcome {
				case OutcomeAccepted:
					atomic.AddInt64(&accepted, 1)
				case OutcomeDuplicate:
					atomic.AddInt64(&duplicate, 1)
				case OutcomeRejected:
					atomic.AddInt64(&rejected, 1)
				default:
					atomic.AddInt64(&failed, 1)
				}
				if err != nil {
					log.Warn(ctx, "moment submission failed",
						logger.String("moment_id", id),
						logger.String("outcome", string(outcome)),
						logger.Error(err))
					continue
				}
				if cfg.Verbose {
					log.Info(ctx, "moment submitted",
						logger.String("moment_id", id),
						logger.String("outcome", string(outcome)))
				}
				mu.Lock()
				ids[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}

	go func() {
		defer close(work)
		for _, m := range moments {
			select {
			case <-ctx.Done():
				return
			case work <- m:
			}
		}
	}()
	wg.Wait()

	stats.Accepted = int(accepted)
	stats.Duplicate = int(duplicate)
	stats.Rejected = int(rejected)
	stats.Failed = int(failed)

	out := make([]string, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	return out
}

// awaitResults polls each id until it is scored or the wait budget runs out.
func awaitResults(ctx context.Context, cfg Config, client *Client, ids []string, log logger.Logger) (map[string]service.Bundle, int) {
	waitCtx := ctx
	if cfg.WaitTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, cfg.WaitTimeout)
		defer cancel()
	}

	var (
		mu      sync.Mutex
		results = make(map[string]service.Bundle, len(ids))
		missing int64
		wg      sync.WaitGroup
	)
	work := make(chan string, len(ids))
	for _, id := range ids {
		work <- id
	}
	close(work)

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range work {
				b, err := poll(waitCtx, cfg.PollInterval, client, id)
				if err != nil {
					atomic.AddInt64(&missing, 1)
					log.Warn(ctx, "moment result unavailable", logger.String("moment_id", id), logger.Error(err))
					continue
				}
				mu.Lock()
				results[id] = b
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return results, int(missing)
}

func poll(ctx context.Context, interval time.Duration, client *Client, id string) (service.Bundle, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		b, err := client.Result(ctx, id)
		if err == nil {
			return b, nil
		}
		if !errors.Is(err, errPending) {
			return service.Bundle{}, err
		}
		select {
		case <-ctx.Done():
			return service.Bundle{}, fmt.Errorf("waiting for %s: %w", id, ctx.Err())
		case <-ticker.C:
		}
	}
}

// Verify checks that each leaderboard is ordered by score and agrees with
// the replayed results. A listed replayed moment must carry its stored
// score. An unlisted available score must not beat the last entry of a
// full leaderboard, and a short leaderboard must list every one.
func Verify(r *Report) error {
	for role, entries := range r.Leaderboards {
		for i := 1; i < len(entries); i++ {
			if entries[i].Score > entries[i-1].Score {
				return fmt.Errorf("%w: %s entry %d outranks entry %d", ErrInconsistent, role, i, i-1)
			}
		}
		for _, e := range entries {
			b, ok := r.Results[e.MomentID]
			if !ok {
				continue
			}
			if got := b.Player(role).Score; got != e.Score {
				return fmt.Errorf("%w: %s %s scored %.3f but listed at %.3f", ErrInconsistent, role, e.MomentID, got, e.Score)
			}
		}
		for id, b := range r.Results {
			p := b.Player(role)
			if !p.Detail.Available {
				continue
			}
			if listed(entries, id) {
				continue
			}
			if len(entries) == 0 || len(entries) < r.Limit {
				return fmt.Errorf("%w: %s %s is missing from the leaderboard", ErrInconsistent, role, id)
			}
			if p.Score > entries[len(entries)-1].Score {
				return fmt.Errorf("%w: %s %s scored %.3f above the leaderboard", ErrInconsistent, role, id, p.Score)
			}
		}
	}
	return nil
}

func listed(entries []repository.Entry, id string) bool {
	for _, e := range entries {
		if e.MomentID == id {
			return true
		}
	}
	return false
}

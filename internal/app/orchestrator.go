// Package service scores pivotal moments end to end and implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/momentum/internal/domain/model"
	"github.com/okian/momentum/internal/domain/scoring"
	"github.com/okian/momentum/internal/domain/snapshot"
	"github.com/okian/momentum/pkg/logger"
)

// Default analysis windows.
const (
	DefaultDaysAfter     = 30
	DefaultLookbackYears = 5
)

// DataSource returns a player's pitch records for a period.
type DataSource interface {
	Fetch(ctx context.Context, role model.Role, id model.PlayerID, period model.Period) (model.RecordSet, error)
}

// IDLookup resolves a player name to the data source's identifier.
type IDLookup interface {
	Resolve(ctx context.Context, name string) (model.PlayerID, error)
}

// Calculator scores one moment.
type Calculator interface {
	Calculate(ctx context.Context, m model.Moment) (Bundle, error)
}

// PlayerResult is the score of one participant.
type PlayerResult struct {
	Name   string         `json:"name"`
	ID     model.PlayerID `json:"player_id,omitempty"`
	Score  float64        `json:"mss"`
	Detail scoring.Result `json:"details"`
}

// Bundle is the outcome of scoring one moment for both participants.
type Bundle struct {
	MomentID    string       `json:"moment_id"`
	GameDate    string       `json:"moment_date"`
	Event       string       `json:"moment_type"`
	WinExpDelta *float64     `json:"wpa_change,omitempty"`
	Batter      PlayerResult `json:"batter"`
	Pitcher     PlayerResult `json:"pitcher"`
}

// Player returns the result for role.
func (b Bundle) Player(role model.Role) PlayerResult {
	if role == model.RolePitcher {
		return b.Pitcher
	}
	return b.Batter
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithDaysAfter sets the length of the post-moment window.
func WithDaysAfter(days int) OrchestratorOption {
	return func(o *Orchestrator) {
		if days >= 0 {
			o.daysAfter = days
		}
	}
}

// WithDaysBefore sets a fixed pre-moment window. Zero selects the seasonal
// lookback.
func WithDaysBefore(days int) OrchestratorOption {
	return func(o *Orchestrator) {
		if days >= 0 {
			o.daysBefore = days
		}
	}
}

// WithLookbackYears sets how many seasons before the moment's year the
// pre-moment window starts.
func WithLookbackYears(years int) OrchestratorOption {
	return func(o *Orchestrator) {
		if years > 0 {
			o.lookbackYears = years
		}
	}
}

// WithScorer replaces the default momentum scorer.
func WithScorer(s scoring.Scorer) OrchestratorOption {
	return func(o *Orchestrator) {
		if s != nil {
			o.scorer = s
		}
	}
}

// WithOrchestratorLogger sets the orchestrator logger.
func WithOrchestratorLogger(l logger.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// Orchestrator fetches before and after records for both participants of
// a moment and scores each of them. Lookup and fetch failures are logged
// and degrade that player to an empty snapshot.
type Orchestrator struct {
	source        DataSource
	lookup        IDLookup
	scorer        scoring.Scorer
	daysAfter     int
	daysBefore    int
	lookbackYears int
	logger        logger.Logger
}

// NewOrchestrator creates an orchestrator over source and lookup.
func NewOrchestrator(source DataSource, lookup IDLookup, opts ...OrchestratorOption) (*Orchestrator, error) {
	if source == nil {
		return nil, ErrNoDataSource
	}
	if lookup == nil {
		return nil, ErrNoIDLookup
	}
	o := &Orchestrator{
		source:        source,
		lookup:        lookup,
		scorer:        scoring.NewMomentumScorer(),
		daysAfter:     DefaultDaysAfter,
		lookbackYears: DefaultLookbackYears,
		logger:        logger.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Periods returns the pre- and post-moment windows for m.
func (o *Orchestrator) Periods(m model.Moment) (before, after model.Period, err error) {
	date, err := m.Date()
	if err != nil {
		return model.Period{}, model.Period{}, err
	}
	start := time.Date(m.Year()-o.lookbackYears, time.January, 1, 0, 0, 0, 0, time.UTC)
	if o.daysBefore > 0 {
		start = date.AddDate(0, 0, -o.daysBefore)
	}
	before = model.Period{Start: start, End: date}
	after = model.Period{Start: date, End: date.AddDate(0, 0, o.daysAfter)}
	return before, after, nil
}

// Calculate scores m for its batter and pitcher. Only an invalid moment or
// a cancelled ctx is an error; missing data yields neutral scores.
func (o *Orchestrator) Calculate(ctx context.Context, m model.Moment) (Bundle, error) {
	if err := m.Validate(); err != nil {
		return Bundle{}, err
	}
	before, after, err := o.Periods(m)
	if err != nil {
		return Bundle{}, err
	}

	b := Bundle{
		MomentID:    m.ID(),
		GameDate:    m.GameDate,
		Event:       m.Events,
		WinExpDelta: m.WinExpDelta,
	}

	var (
		wg      sync.WaitGroup
		results [2]PlayerResult
		errs    [2]error
	)
	for i, role := range model.Roles() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = o.scorePlayer(ctx, role, m.PlayerName(role), before, after)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return Bundle{}, err
		}
	}
	for i, role := range model.Roles() {
		if role == model.RolePitcher {
			b.Pitcher = results[i]
		} else {
			b.Batter = results[i]
		}
	}
	return b, nil
}

func (o *Orchestrator) scorePlayer(ctx context.Context, role model.Role, name string, before, after model.Period) (PlayerResult, error) {
	log := o.logger.Named(role.String())
	id, err := o.lookup.Resolve(ctx, name)
	resolved := err == nil
	if !resolved {
		log.Warn(ctx, "player lookup failed",
			logger.String("player", name),
			logger.String("role", role.String()),
			logger.Error(err),
		)
	}

	pre, err := o.snapshot(ctx, role, name, id, before, resolved)
	if err != nil {
		return PlayerResult{}, err
	}
	post, err := o.snapshot(ctx, role, name, id, after, resolved)
	if err != nil {
		return PlayerResult{}, err
	}

	res, err := o.scorer.Score(ctx, scoring.Input{Before: pre, After: post})
	if err != nil {
		return PlayerResult{}, fmt.Errorf("score %s %q: %w", role, name, err)
	}
	return PlayerResult{Name: name, ID: id, Score: res.Score, Detail: res}, nil
}

// snapshot fetches records for one window. A failed fetch is logged and
// yields an empty snapshot.
func (o *Orchestrator) snapshot(ctx context.Context, role model.Role, name string, id model.PlayerID, period model.Period, resolved bool) (*snapshot.Snapshot, error) {
	if !resolved {
		return snapshot.Empty(name, period, role)
	}
	rs, err := o.source.Fetch(ctx, role, id, period)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("fetch %s %q: %w", role, name, ctxErr)
		}
		o.logger.Warn(ctx, "player fetch failed",
			logger.String("player", name),
			logger.String("role", role.String()),
			logger.String("period", period.String()),
			logger.Error(err),
		)
		return snapshot.Empty(name, period, role)
	}
	return snapshot.New(name, id, rs, period, role)
}

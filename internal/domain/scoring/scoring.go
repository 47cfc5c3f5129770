// Package scoring turns a before/after pair of snapshots into a momentum
// shift score between 0 and 100, where 50 means no change.
package scoring

import (
	"context"
	"fmt"
	"math"

	"github.com/okian/momentum/internal/domain/model"
	"github.com/okian/momentum/internal/domain/snapshot"
)

// Score bounds.
const (
	NeutralScore = 50.0
	MinScore     = 0.0
	MaxScore     = 100.0
)

// Result is the score for one player plus the detail behind it.
// Components always holds every component of the role.
type Result struct {
	Role       model.Role            `json:"role"`
	Score      float64               `json:"mss"`
	Available  bool                  `json:"available"`
	Components map[Component]float64 `json:"components"`
	Weights    Weights               `json:"weights"`
	Comparison snapshot.Comparison   `json:"comparison"`
}

// Score computes the momentum shift score. A nil weight table selects the
// role's defaults. Weights for components the role does not have are
// ignored, and the weighted mean is taken over the remaining ones. Entries
// that are NaN or infinite are skipped as well. When the applicable weights
// sum to zero the result is still available and the score stays at 50.
func Score(before, after *snapshot.Snapshot, weights Weights) Result {
	role := roleOf(before, after)
	if weights == nil {
		weights = DefaultWeights(role)
	}
	res := Result{
		Role:       role,
		Score:      NeutralScore,
		Components: zeroComponents(role),
		Weights:    weights,
		Comparison: snapshot.Compare(before, after),
	}
	if !res.Comparison.Available {
		return res
	}

	var values map[Component]float64
	switch role {
	case model.RoleBatter:
		values = batterComponentValues(before, after)
	case model.RolePitcher:
		values = pitcherComponentValues(before, after)
	}

	var weighted, total float64
	for c, v := range values {
		res.Components[c] = v
		w, ok := weights[c]
		if !ok || math.IsNaN(w) || math.IsInf(w, 0) {
			continue
		}
		weighted += v * w
		total += w
	}
	res.Available = true
	if total > 0 {
		res.Score = math.Max(MinScore, math.Min(MaxScore, NeutralScore+NeutralScore*weighted/total))
	}
	return res
}

func roleOf(before, after *snapshot.Snapshot) model.Role {
	if before != nil {
		return before.Role()
	}
	if after != nil {
		return after.Role()
	}
	return ""
}

// Input is a pair of snapshots for the same player.
type Input struct {
	Before *snapshot.Snapshot
	After  *snapshot.Snapshot
}

// Scorer computes a momentum score from a snapshot pair.
type Scorer interface {
	// Score computes a score, honoring ctx for cancellation.
	Score(ctx context.Context, in Input) (Result, error)
}

// Option applies a configuration option to the MomentumScorer.
type Option func(*MomentumScorer)

// WithWeights overrides the weight table for one role. Empty tables keep the defaults.
func WithWeights(role model.Role, w Weights) Option {
	return func(s *MomentumScorer) {
		if role.Valid() && len(w) > 0 {
			s.weights[role] = w
		}
	}
}

// MomentumScorer implements Scorer with per-role weight tables.
type MomentumScorer struct {
	weights map[model.Role]Weights
}

// NewMomentumScorer creates a scorer using the default weights unless overridden.
func NewMomentumScorer(opts ...Option) *MomentumScorer {
	s := &MomentumScorer{weights: make(map[model.Role]Weights)}
	for _, role := range model.Roles() {
		s.weights[role] = DefaultWeights(role)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score computes the score for in.
func (s *MomentumScorer) Score(ctx context.Context, in Input) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("context cancelled: %w", err)
	}
	if in.Before == nil && in.After == nil {
		return Result{}, ErrNoSnapshots
	}
	return Score(in.Before, in.After, s.Weights(roleOf(in.Before, in.After))), nil
}

// Weights returns the table used for role.
func (s *MomentumScorer) Weights(role model.Role) Weights {
	return s.weights[role]
}

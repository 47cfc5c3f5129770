// Package snapshot holds a player's derived statistics for one period and
// compares two such snapshots.
package snapshot

import (
	"fmt"

	"github.com/okian/momentum/internal/domain/model"
	"github.com/okian/momentum/internal/domain/stats"
)

// Snapshot is an immutable view of one player's performance over a period.
// All views are computed at construction and accessors hand out copies.
type Snapshot struct {
	name      string
	id        model.PlayerID
	role      model.Role
	period    model.Period
	available bool
	records   int
	views     stats.Views
}

// New builds a snapshot from raw records. The role is validated even when
// there are no records.
func New(name string, id model.PlayerID, rs model.RecordSet, period model.Period, role model.Role) (*Snapshot, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("snapshot %q: %w", name, model.ErrInvalidRole)
	}
	s := &Snapshot{
		name:    name,
		id:      id,
		role:    role,
		period:  period,
		records: rs.Len(),
		views:   stats.Views{Summary: stats.Summary{Role: role}},
	}
	if rs.Empty() {
		return s, nil
	}
	views, err := stats.Aggregate(rs, role)
	if err != nil {
		return nil, err
	}
	s.views = views
	s.available = true
	return s, nil
}

// Empty returns a snapshot with no data. It is the fallback when a player
// cannot be resolved or fetched.
func Empty(name string, period model.Period, role model.Role) (*Snapshot, error) {
	return New(name, 0, model.RecordSet{}, period, role)
}

// Name returns the player's display name.
func (s *Snapshot) Name() string { return s.name }

// ID returns the resolved player id, 0 when unresolved.
func (s *Snapshot) ID() model.PlayerID { return s.id }

func (s *Snapshot) Role() model.Role { return s.role }

func (s *Snapshot) Period() model.Period { return s.period }

// DataAvailable is false iff the snapshot was built from no records.
func (s *Snapshot) DataAvailable() bool { return s.available }

func (s *Snapshot) RecordCount() int { return s.records }

func (s *Snapshot) Views() stats.Views { return s.views.Clone() }

func (s *Snapshot) Summary() stats.Summary { return s.views.Summary.Clone() }

func (s *Snapshot) BattedBall() stats.BattedBallProfile { return s.views.BattedBall.Clone() }

// PitchTypes returns the per-pitch-type breakdown.
func (s *Snapshot) PitchTypes() stats.PitchTypeStats { return s.views.PitchTypes.Clone() }

// Situational returns the situational splits; it may be nil.
func (s *Snapshot) Situational() stats.SituationalStats { return s.views.Situational.Clone() }

// Batter returns the batter line, or a zero line for pitchers and empty snapshots.
func (s *Snapshot) Batter() stats.BatterSummary {
	if s.views.Summary.Batter == nil {
		return stats.BatterSummary{}
	}
	return s.views.Summary.Batter.Clone()
}

// Pitcher returns the pitcher line, or a zero line for batters and empty snapshots.
func (s *Snapshot) Pitcher() stats.PitcherSummary {
	if s.views.Summary.Pitcher == nil {
		return stats.PitcherSummary{}
	}
	return s.views.Summary.Pitcher.Clone()
}

package snapshot

import "github.com/okian/momentum/internal/domain/model"

// Reasons a comparison is unavailable.
const (
	ReasonMissingSnapshot = "missing snapshot"
	ReasonNoDataBefore    = "no data before moment"
	ReasonNoDataAfter     = "no data after moment"
	ReasonRoleMismatch    = "snapshots have different roles"
)

// Delta is the change of one metric between two periods. PctChange is 0
// when Before is exactly 0.
type Delta struct {
	Before    float64 `json:"before"`
	After     float64 `json:"after"`
	Change    float64 `json:"change"`
	PctChange float64 `json:"pct_change"`
}

// Comparison is the result of Compare. When Available is false only
// Reason is meaningful.
type Comparison struct {
	Available    bool             `json:"available"`
	Reason       string           `json:"reason,omitempty"`
	Player       string           `json:"player_name,omitempty"`
	Role         model.Role       `json:"role,omitempty"`
	BeforePeriod model.Period     `json:"before_period"`
	AfterPeriod  model.Period     `json:"after_period"`
	Deltas       map[string]Delta `json:"changes,omitempty"`
}

// Compare computes per-metric deltas for every metric both snapshots report.
func Compare(before, after *Snapshot) Comparison {
	switch {
	case before == nil || after == nil:
		return Comparison{Reason: ReasonMissingSnapshot}
	case !before.available:
		return Comparison{Reason: ReasonNoDataBefore}
	case !after.available:
		return Comparison{Reason: ReasonNoDataAfter}
	case before.role != after.role:
		return Comparison{Reason: ReasonRoleMismatch}
	}

	b, a := before.Flatten(), after.Flatten()
	deltas := make(map[string]Delta, len(b))
	for key, bv := range b {
		av, ok := a[key]
		if !ok {
			continue
		}
		d := Delta{Before: bv, After: av, Change: av - bv}
		if bv != 0 {
			d.PctChange = (av/bv - 1) * 100
		}
		deltas[key] = d
	}
	return Comparison{
		Available:    true,
		Player:       before.name,
		Role:         before.role,
		BeforePeriod: before.period,
		AfterPeriod:  after.period,
		Deltas:       deltas,
	}
}

package scoring

import (
	"fmt"
	"maps"
	"math"

	"github.com/okian/momentum/internal/domain/model"
)

// Component names one term of the momentum score.
type Component string

// Batter components.
const (
	BattingAvg    Component = "batting_avg"
	OnBasePct     Component = "on_base_pct"
	SlugPct       Component = "slug_pct"
	HomeRunsRate  Component = "home_runs_rate"
	StrikeoutRate Component = "strikeout_rate"
	LaunchSpeed   Component = "launch_speed"
)

// Pitcher components.
const (
	ERA      Component = "era"
	WHIP     Component = "whip"
	KPer9    Component = "k_per_9"
	BBPer9   Component = "bb_per_9"
	HRPer9   Component = "hr_per_9"
	Velocity Component = "velocity"
)

// Shared components. For pitchers BarrelRate is the barrel rate allowed and
// Situational is the average against with runners in scoring position.
const (
	BarrelRate  Component = "barrel_rate"
	Situational Component = "situational"
)

// Weights maps components to their relative importance.
type Weights map[Component]float64

var (
	batterComponents  = []Component{BattingAvg, OnBasePct, SlugPct, HomeRunsRate, StrikeoutRate, BarrelRate, LaunchSpeed, Situational}
	pitcherComponents = []Component{ERA, WHIP, KPer9, BBPer9, HRPer9, BarrelRate, Velocity, Situational}

	defaultBatterWeights = Weights{
		BattingAvg:    0.15,
		OnBasePct:     0.15,
		SlugPct:       0.15,
		HomeRunsRate:  0.10,
		StrikeoutRate: 0.10,
		BarrelRate:    0.15,
		LaunchSpeed:   0.10,
		Situational:   0.10,
	}
	defaultPitcherWeights = Weights{
		ERA:         0.15,
		WHIP:        0.15,
		KPer9:       0.15,
		BBPer9:      0.10,
		HRPer9:      0.10,
		BarrelRate:  0.15,
		Velocity:    0.10,
		Situational: 0.10,
	}
)

// Components lists the role's components in a stable order.
func Components(role model.Role) []Component {
	switch role {
	case model.RoleBatter:
		return append([]Component(nil), batterComponents...)
	case model.RolePitcher:
		return append([]Component(nil), pitcherComponents...)
	}
	return nil
}

// DefaultWeights returns a copy of the role's default weight table.
func DefaultWeights(role model.Role) Weights {
	switch role {
	case model.RoleBatter:
		return maps.Clone(defaultBatterWeights)
	case model.RolePitcher:
		return maps.Clone(defaultPitcherWeights)
	}
	return Weights{}
}

// ParseWeights converts a loosely typed table, as read from configuration,
// and validates it for role. An empty table yields nil.
func ParseWeights(role model.Role, raw map[string]float64) (Weights, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	w := make(Weights, len(raw))
	for k, v := range raw {
		w[Component(k)] = v
	}
	if err := w.Validate(role); err != nil {
		return nil, err
	}
	return w, nil
}

// Validate checks that every entry is finite, non-negative and belongs to role.
func (w Weights) Validate(role model.Role) error {
	known := Components(role)
	for c, v := range w {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s weight %s=%v: %w", role, c, v, ErrNonFiniteWeight)
		}
		if v < 0 {
			return fmt.Errorf("%s weight %s=%v: %w", role, c, v, ErrNegativeWeight)
		}
		found := false
		for _, k := range known {
			if k == c {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%s weight %s: %w", role, c, ErrUnknownComponent)
		}
	}
	return nil
}

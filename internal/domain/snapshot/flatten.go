package snapshot

import "github.com/okian/momentum/internal/domain/model"

// Flattened metric names.
const (
	MetricBattingAvg     = "batting_avg"
	MetricOnBasePct      = "on_base_pct"
	MetricSlugPct        = "slug_pct"
	MetricOPS            = "ops"
	MetricHomeRuns       = "home_runs"
	MetricAtBats         = "total_abs"
	MetricStrikeoutRate  = "strikeout_rate"
	MetricWalkRate       = "walk_rate"
	MetricAvgLaunchSpeed = "avg_launch_speed"
	MetricAvgLaunchAngle = "avg_launch_angle"
	MetricBarrelRate     = "barrel_rate"

	MetricInningsPitched    = "innings_pitched"
	MetricERA               = "era"
	MetricWHIP              = "whip"
	MetricKPer9             = "k_per_9"
	MetricBBPer9            = "bb_per_9"
	MetricHRPer9            = "hr_per_9"
	MetricKBBRatio          = "k_bb_ratio"
	MetricAvgVelocity       = "avg_velocity"
	MetricGroundBallPct     = "ground_ball_pct"
	MetricBarrelRateAllowed = "barrel_rate_allowed"
)

// Flat is a role-specific projection of a snapshot into named scalars.
type Flat map[string]float64

// Get returns the metric or 0 when it is absent.
func (f Flat) Get(key string) float64 { return f[key] }

// Flatten projects the snapshot's summary and batted-ball views. An
// unavailable snapshot flattens to an empty map.
func (s *Snapshot) Flatten() Flat {
	if !s.available {
		return Flat{}
	}
	bb := s.views.BattedBall
	switch s.role {
	case model.RoleBatter:
		b := s.Batter()
		pa := float64(max(b.PlateAppearances, 1))
		return Flat{
			MetricBattingAvg:     b.BattingAvg,
			MetricOnBasePct:      b.OnBasePct,
			MetricSlugPct:        b.SlugPct,
			MetricOPS:            b.OPS,
			MetricHomeRuns:       float64(b.HomeRuns),
			MetricAtBats:         float64(b.AtBats),
			MetricStrikeoutRate:  float64(b.Strikeouts) / pa,
			MetricWalkRate:       float64(b.Walks) / pa,
			MetricAvgLaunchSpeed: b.AvgLaunchSpeed,
			MetricAvgLaunchAngle: b.AvgLaunchAngle,
			MetricBarrelRate:     bb.BarrelRate,
		}
	case model.RolePitcher:
		p := s.Pitcher()
		return Flat{
			MetricInningsPitched:    p.InningsPitched,
			MetricERA:               p.ERA,
			MetricWHIP:              p.WHIP,
			MetricKPer9:             p.KPer9,
			MetricBBPer9:            p.BBPer9,
			MetricHRPer9:            p.HRPer9,
			MetricKBBRatio:          p.KBBRatio,
			MetricAvgVelocity:       p.AvgVelocity,
			MetricGroundBallPct:     bb.GroundBallPct,
			MetricBarrelRateAllowed: bb.BarrelRate,
		}
	}
	return Flat{}
}

// Package stats turns raw per-pitch records into summary, batted-ball,
// pitch-type and situational views for one player and one period.
package stats

import "github.com/okian/momentum/internal/domain/model"

// Views bundles everything derived from one record set.
type Views struct {
	Summary     Summary           `json:"summary"`
	BattedBall  BattedBallProfile `json:"batted_ball_profile"`
	PitchTypes  PitchTypeStats    `json:"pitch_type_stats"`
	Situational SituationalStats  `json:"situational_stats"`
}

// Summary holds exactly one role-specific line.
type Summary struct {
	Role    model.Role      `json:"role"`
	Batter  *BatterSummary  `json:"batter,omitempty"`
	Pitcher *PitcherSummary `json:"pitcher,omitempty"`
}

// BatterSummary is the offensive line for a period.
type BatterSummary struct {
	PlateAppearances int `json:"total_pas"`
	AtBats           int `json:"total_abs"`
	Singles          int `json:"singles"`
	Doubles          int `json:"doubles"`
	Triples          int `json:"triples"`
	HomeRuns         int `json:"home_runs"`
	Hits             int `json:"hits"`
	Walks            int `json:"walks"`
	Strikeouts       int `json:"strikeouts"`
	HitByPitch       int `json:"hit_by_pitch"`

	BattingAvg float64 `json:"batting_avg"`
	OnBasePct  float64 `json:"on_base_pct"`
	SlugPct    float64 `json:"slug_pct"`
	OPS        float64 `json:"ops"`
	WOBA       float64 `json:"woba"`

	AvgLaunchSpeed float64 `json:"avg_launch_speed"`
	AvgLaunchAngle float64 `json:"avg_launch_angle"`
	MaxExitVelo    float64 `json:"max_exit_velo"`
	MaxDistance    float64 `json:"max_distance"`

	EventCounts map[string]int `json:"events_counts"`
}

// PitcherSummary is the run-prevention line for a period.
type PitcherSummary struct {
	BattersFaced   int     `json:"total_batters_faced"`
	Pitches        int     `json:"total_pitches"`
	InningsPitched float64 `json:"innings_pitched"`
	Hits           int     `json:"hits"`
	Walks          int     `json:"walks"`
	Strikeouts     int     `json:"strikeouts"`
	HomeRuns       int     `json:"home_runs"`
	RunsAllowed    float64 `json:"runs_allowed"`

	ERA      float64 `json:"era"`
	WHIP     float64 `json:"whip"`
	KPer9    float64 `json:"k_per_9"`
	BBPer9   float64 `json:"bb_per_9"`
	HRPer9   float64 `json:"hr_per_9"`
	KBBRatio float64 `json:"k_bb_ratio"`

	AvgVelocity float64 `json:"avg_velocity"`
	AvgSpinRate float64 `json:"avg_spin_rate"`

	EventCounts map[string]int `json:"events_counts"`
}

// BattedBallProfile describes contact quality. For pitchers every rate is "allowed".
// When Available is false every other field is zero.
type BattedBallProfile struct {
	Available     bool           `json:"available"`
	GroundBallPct float64        `json:"ground_ball_pct,omitempty"`
	FlyBallPct    float64        `json:"fly_ball_pct,omitempty"`
	LineDrivePct  float64        `json:"line_drive_pct,omitempty"`
	PopupPct      float64        `json:"popup_pct,omitempty"`
	HardHitRate   float64        `json:"hard_hit_rate,omitempty"`
	BarrelRate    float64        `json:"barrel_rate,omitempty"`
	Total         int            `json:"total_batted_balls,omitempty"`
	Types         map[string]int `json:"batted_ball_types,omitempty"`
}

// PitchTypeStats maps pitch-type labels to their lines. Lines is nil when Available is false.
type PitchTypeStats struct {
	Available bool                     `json:"available"`
	Lines     map[string]PitchTypeLine `json:"pitch_types,omitempty"`
}

// PitchTypeLine is the per-pitch-type breakdown.
type PitchTypeLine struct {
	Pitches     int      `json:"total_pitches"`
	StrikeRate  float64  `json:"strike_rate"`
	SwingRate   float64  `json:"swing_rate"`
	WhiffRate   float64  `json:"whiff_rate"`
	InPlayRate  float64  `json:"in_play_rate"`
	PutAwayRate *float64 `json:"put_away_rate,omitempty"`
	AvgVelocity float64  `json:"avg_velocity"`
	AvgSpinRate float64  `json:"avg_spin_rate"`

	Outcomes map[string]int  `json:"outcomes"`
	Events   map[string]int  `json:"events"`
	Contact  *ContactQuality `json:"contact_results,omitempty"`
}

// ContactQuality averages launch data over balls put in play.
type ContactQuality struct {
	AvgExitVelo    float64 `json:"avg_exit_velo"`
	AvgLaunchAngle float64 `json:"avg_launch_angle"`
}

// Situation names a game-state split.
type Situation string

// Situational splits.
const (
	SituationAhead         Situation = "ahead_count"
	SituationBehind        Situation = "behind_count"
	SituationEven          Situation = "even_count"
	SituationBasesEmpty    Situation = "bases_empty"
	SituationRISP          Situation = "risp"
	SituationEarlyInnings  Situation = "early_innings"
	SituationMiddleInnings Situation = "middle_innings"
	SituationLateInnings   Situation = "late_innings"
)

// SituationLine is batting average (for pitchers: average against) within a split.
type SituationLine struct {
	Average float64 `json:"avg"`
	AtBats  int     `json:"total_at_bats"`
}

// SituationalStats holds only the splits whose inputs were present and non-empty.
type SituationalStats map[Situation]SituationLine

// Average returns the split's average, or fallback when the split is absent.
func (s SituationalStats) Average(key Situation, fallback float64) float64 {
	if line, ok := s[key]; ok {
		return line.Average
	}
	return fallback
}

package model

// Outcome events recorded on the terminal pitch of a plate appearance.
const (
	EventSingle         = "single"
	EventDouble         = "double"
	EventTriple         = "triple"
	EventHomeRun        = "home_run"
	EventWalk           = "walk"
	EventStrikeout      = "strikeout"
	EventHitByPitch     = "hit_by_pitch"
	EventSacFly         = "sac_fly"
	EventSacBunt        = "sac_bunt"
	EventFieldOut       = "field_out"
	EventForceOut       = "force_out"
	EventGroundedIntoDP = "grounded_into_double_play"
)

// Pitch descriptions.
const (
	DescCalledStrike   = "called_strike"
	DescSwingingStrike = "swinging_strike"
	DescFoul           = "foul"
	DescFoulTip        = "foul_tip"
	DescBall           = "ball"
	DescHitIntoPlay    = "hit_into_play"
)

// Batted-ball types.
const (
	BBGroundBall = "ground_ball"
	BBFlyBall    = "fly_ball"
	BBLineDrive  = "line_drive"
	BBPopup      = "popup"
)

// EventRecord is one pitch as reported by the play-by-play provider.
// Empty strings and nil pointers mean the value is missing for this pitch.
type EventRecord struct {
	Event       string `json:"events,omitempty"`
	Description string `json:"description,omitempty"`
	PitchType   string `json:"pitch_type,omitempty"`
	BBType      string `json:"bb_type,omitempty"`

	LaunchSpeed     *float64 `json:"launch_speed,omitempty"`
	LaunchAngle     *float64 `json:"launch_angle,omitempty"`
	HitDistance     *float64 `json:"hit_distance_sc,omitempty"`
	ReleaseSpeed    *float64 `json:"release_speed,omitempty"`
	ReleaseSpinRate *float64 `json:"release_spin_rate,omitempty"`
	WOBAValue       *float64 `json:"woba_value,omitempty"`
	WOBADenom       *float64 `json:"woba_denom,omitempty"`

	Balls   *int `json:"balls,omitempty"`
	Strikes *int `json:"strikes,omitempty"`

	// Runner ids occupying each base; nil when the base is empty.
	On1B *int64 `json:"on_1b,omitempty"`
	On2B *int64 `json:"on_2b,omitempty"`
	On3B *int64 `json:"on_3b,omitempty"`

	Inning           *int `json:"inning,omitempty"`
	AtBatNumber      *int `json:"at_bat_number,omitempty"`
	RunsScoredOnPlay *int `json:"runs_scored_on_play,omitempty"`
}

// IsHit reports whether the outcome counts as a base hit.
func IsHit(event string) bool {
	switch event {
	case EventSingle, EventDouble, EventTriple, EventHomeRun:
		return true
	}
	return false
}

// CountsAsAtBat reports whether a non-empty outcome is charged as an at-bat.
func CountsAsAtBat(event string) bool {
	if event == "" {
		return false
	}
	switch event {
	case EventWalk, EventHitByPitch, EventSacFly, EventSacBunt:
		return false
	}
	return true
}

// IsSwing reports whether the batter offered at the pitch.
func IsSwing(desc string) bool {
	switch desc {
	case DescSwingingStrike, DescFoul, DescFoulTip, DescHitIntoPlay:
		return true
	}
	return false
}

// IsStrike reports whether the pitch was charged as a strike.
func IsStrike(desc string) bool {
	switch desc {
	case DescCalledStrike, DescSwingingStrike, DescFoul, DescFoulTip:
		return true
	}
	return false
}

// Float is a convenience for building optional numeric fields.
func Float(v float64) *float64 { return &v }

// Int is a convenience for building optional integer fields.
func Int(v int) *int { return &v }

// Runner is a convenience for building base-occupancy fields.
func Runner(id int64) *int64 { return &id }

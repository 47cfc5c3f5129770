package model

// Column identifies one optional field of EventRecord.
type Column uint32

// Known columns.
const (
	ColEvents Column = 1 << iota
	ColDescription
	ColPitchType
	ColBBType
	ColLaunchSpeed
	ColLaunchAngle
	ColHitDistance
	ColReleaseSpeed
	ColReleaseSpinRate
	ColWOBAValue
	ColWOBADenom
	ColBalls
	ColStrikes
	ColOn1B
	ColOn2B
	ColOn3B
	ColInning
	ColAtBatNumber
	ColRunsScoredOnPlay
)

// columnNames maps provider header names to columns.
var columnNames = map[string]Column{
	"events":              ColEvents,
	"description":         ColDescription,
	"pitch_type":          ColPitchType,
	"bb_type":             ColBBType,
	"launch_speed":        ColLaunchSpeed,
	"launch_angle":        ColLaunchAngle,
	"hit_distance_sc":     ColHitDistance,
	"release_speed":       ColReleaseSpeed,
	"release_spin_rate":   ColReleaseSpinRate,
	"woba_value":          ColWOBAValue,
	"woba_denom":          ColWOBADenom,
	"balls":               ColBalls,
	"strikes":             ColStrikes,
	"on_1b":               ColOn1B,
	"on_2b":               ColOn2B,
	"on_3b":               ColOn3B,
	"inning":              ColInning,
	"at_bat_number":       ColAtBatNumber,
	"runs_scored_on_play": ColRunsScoredOnPlay,
}

// ColumnByName resolves a provider header name.
func ColumnByName(name string) (Column, bool) {
	c, ok := columnNames[name]
	return c, ok
}

// ColumnSet records which columns exist in a record set.
type ColumnSet uint32

// Has reports whether every given column is present.
func (s ColumnSet) Has(cols ...Column) bool {
	for _, c := range cols {
		if uint32(s)&uint32(c) == 0 {
			return false
		}
	}
	return true
}

// With returns s plus c.
func (s ColumnSet) With(c Column) ColumnSet { return s | ColumnSet(c) }

// AllColumns is the set of every known column.
func AllColumns() ColumnSet {
	var s ColumnSet
	for _, c := range columnNames {
		s = s.With(c)
	}
	return s
}

// DetectColumns marks a column present when at least one record carries a value
// for it. Providers that know their header should build a RecordSet directly.
func DetectColumns(records []EventRecord) ColumnSet {
	var s ColumnSet
	for i := range records {
		r := &records[i]
		s |= r.columns()
	}
	return s
}

func (r *EventRecord) columns() ColumnSet {
	var s ColumnSet
	set := func(ok bool, c Column) {
		if ok {
			s = s.With(c)
		}
	}
	set(r.Event != "", ColEvents)
	set(r.Description != "", ColDescription)
	set(r.PitchType != "", ColPitchType)
	set(r.BBType != "", ColBBType)
	set(r.LaunchSpeed != nil, ColLaunchSpeed)
	set(r.LaunchAngle != nil, ColLaunchAngle)
	set(r.HitDistance != nil, ColHitDistance)
	set(r.ReleaseSpeed != nil, ColReleaseSpeed)
	set(r.ReleaseSpinRate != nil, ColReleaseSpinRate)
	set(r.WOBAValue != nil, ColWOBAValue)
	set(r.WOBADenom != nil, ColWOBADenom)
	set(r.Balls != nil, ColBalls)
	set(r.Strikes != nil, ColStrikes)
	set(r.On1B != nil, ColOn1B)
	set(r.On2B != nil, ColOn2B)
	set(r.On3B != nil, ColOn3B)
	set(r.Inning != nil, ColInning)
	set(r.AtBatNumber != nil, ColAtBatNumber)
	set(r.RunsScoredOnPlay != nil, ColRunsScoredOnPlay)
	return s
}

// RecordSet is a batch of pitches plus the columns the provider delivered.
type RecordSet struct {
	Columns ColumnSet     `json:"columns"`
	Records []EventRecord `json:"records"`
}

// NewRecordSet wraps records and infers the column set from their values.
func NewRecordSet(records ...EventRecord) RecordSet {
	return RecordSet{Columns: DetectColumns(records), Records: records}
}

// Len returns the number of pitches.
func (rs RecordSet) Len() int { return len(rs.Records) }

// Empty reports whether the set has no pitches.
func (rs RecordSet) Empty() bool { return len(rs.Records) == 0 }

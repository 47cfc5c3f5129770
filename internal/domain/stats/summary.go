package stats

import (
	"math"

	"github.com/okian/momentum/internal/domain/model"
)

func batterSummary(recs []model.EventRecord, cols model.ColumnSet) *BatterSummary {
	t := tallyOutcomes(recs, cols)
	s := &BatterSummary{
		PlateAppearances: t.plateAppearances,
		AtBats:           t.atBats,
		Singles:          t.n(model.EventSingle),
		Doubles:          t.n(model.EventDouble),
		Triples:          t.n(model.EventTriple),
		HomeRuns:         t.n(model.EventHomeRun),
		Hits:             t.hits(),
		Walks:            t.n(model.EventWalk),
		Strikeouts:       t.n(model.EventStrikeout),
		HitByPitch:       t.n(model.EventHitByPitch),
		EventCounts:      t.counts,
	}
	ab := float64(s.AtBats)
	s.BattingAvg = ratio(float64(s.Hits), ab)
	s.OnBasePct = ratio(float64(s.Hits+s.Walks+s.HitByPitch), float64(s.PlateAppearances))
	s.SlugPct = ratio(float64(t.totalBases()), ab)
	s.OPS = s.OnBasePct + s.SlugPct

	var wobaValue, wobaDenom float64
	var speed, angle, distance sampler
	for i := range recs {
		r := &recs[i]
		if cols.Has(model.ColWOBAValue) && r.WOBAValue != nil {
			wobaValue += finite(*r.WOBAValue)
		}
		if cols.Has(model.ColWOBADenom) && r.WOBADenom != nil {
			wobaDenom += finite(*r.WOBADenom)
		}
		if cols.Has(model.ColLaunchSpeed) {
			speed.add(r.LaunchSpeed)
		}
		if cols.Has(model.ColLaunchAngle) {
			angle.add(r.LaunchAngle)
		}
		if cols.Has(model.ColHitDistance) {
			distance.add(r.HitDistance)
		}
	}
	if wobaDenom > 0 {
		s.WOBA = finite(wobaValue / wobaDenom)
	}
	s.AvgLaunchSpeed = speed.mean()
	s.AvgLaunchAngle = angle.mean()
	s.MaxExitVelo = speed.maximum()
	s.MaxDistance = distance.maximum()
	return s
}

func pitcherSummary(recs []model.EventRecord, cols model.ColumnSet) *PitcherSummary {
	t := tallyOutcomes(recs, cols)
	s := &PitcherSummary{
		Pitches:     len(recs),
		Hits:        t.hits(),
		Walks:       t.n(model.EventWalk),
		Strikeouts:  t.n(model.EventStrikeout),
		HomeRuns:    t.n(model.EventHomeRun),
		EventCounts: t.counts,
	}

	var velo, spin sampler
	atBats := make(map[int]struct{})
	scoring := 0
	for i := range recs {
		r := &recs[i]
		if cols.Has(model.ColAtBatNumber) && r.AtBatNumber != nil {
			atBats[*r.AtBatNumber] = struct{}{}
		}
		if cols.Has(model.ColRunsScoredOnPlay) && r.RunsScoredOnPlay != nil && *r.RunsScoredOnPlay > 0 {
			scoring++
		}
		if cols.Has(model.ColReleaseSpeed) {
			velo.add(r.ReleaseSpeed)
		}
		if cols.Has(model.ColReleaseSpinRate) {
			spin.add(r.ReleaseSpinRate)
		}
	}
	s.BattersFaced = len(atBats)

	outs := t.n(model.EventFieldOut) + s.Strikeouts + t.n(model.EventForceOut) + 2*t.n(model.EventGroundedIntoDP)
	if outs > 0 {
		s.InningsPitched = float64(outs) / 3
	} else {
		s.InningsPitched = float64(s.BattersFaced) / 3
	}

	// Counts scoring plays rather than runs; without the column half a run per hit is assumed.
	if cols.Has(model.ColRunsScoredOnPlay) {
		s.RunsAllowed = float64(scoring)
	} else {
		s.RunsAllowed = float64(s.Hits) * 0.5
	}

	ip := s.InningsPitched
	s.ERA = math.Max(0, ratio(9*s.RunsAllowed, ip))
	s.WHIP = ratio(float64(s.Hits+s.Walks), ip)
	s.KPer9 = ratio(9*float64(s.Strikeouts), ip)
	s.BBPer9 = ratio(9*float64(s.Walks), ip)
	s.HRPer9 = ratio(9*float64(s.HomeRuns), ip)
	if s.Walks > 0 {
		s.KBBRatio = float64(s.Strikeouts) / float64(s.Walks)
	} else {
		s.KBBRatio = float64(s.Strikeouts)
	}
	s.AvgVelocity = velo.mean()
	s.AvgSpinRate = spin.mean()
	return s
}

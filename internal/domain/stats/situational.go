package stats

import "github.com/okian/momentum/internal/domain/model"

type split struct {
	key   Situation
	needs []model.Column
	match func(r *model.EventRecord) bool
}

// splitsFor returns the splits in a fixed order. Count advantage is from
// the player's point of view, so ahead and behind swap for pitchers.
func splitsFor(role model.Role) []split {
	count := []model.Column{model.ColBalls, model.ColStrikes}
	bases := []model.Column{model.ColOn1B, model.ColOn2B, model.ColOn3B}
	inning := []model.Column{model.ColInning}

	batterAhead := func(r *model.EventRecord) bool {
		return r.Balls != nil && r.Strikes != nil && *r.Balls > *r.Strikes
	}
	batterBehind := func(r *model.EventRecord) bool {
		return r.Balls != nil && r.Strikes != nil && *r.Balls < *r.Strikes
	}
	ahead, behind := batterAhead, batterBehind
	if role == model.RolePitcher {
		ahead, behind = batterBehind, batterAhead
	}

	return []split{
		{SituationAhead, count, ahead},
		{SituationBehind, count, behind},
		{SituationEven, count, func(r *model.EventRecord) bool {
			return r.Balls != nil && r.Strikes != nil && *r.Balls == *r.Strikes && *r.Balls > 0
		}},
		{SituationBasesEmpty, bases, func(r *model.EventRecord) bool {
			return r.On1B == nil && r.On2B == nil && r.On3B == nil
		}},
		{SituationRISP, bases, func(r *model.EventRecord) bool {
			return r.On2B != nil || r.On3B != nil
		}},
		{SituationEarlyInnings, inning, func(r *model.EventRecord) bool {
			return r.Inning != nil && *r.Inning <= 3
		}},
		{SituationMiddleInnings, inning, func(r *model.EventRecord) bool {
			return r.Inning != nil && *r.Inning >= 4 && *r.Inning <= 6
		}},
		{SituationLateInnings, inning, func(r *model.EventRecord) bool {
			return r.Inning != nil && *r.Inning > 6
		}},
	}
}

func situationalStats(recs []model.EventRecord, cols model.ColumnSet, role model.Role) SituationalStats {
	out := make(SituationalStats)
	if !cols.Has(model.ColEvents) {
		return out
	}
	for _, sp := range splitsFor(role) {
		if !cols.Has(sp.needs...) {
			continue
		}
		var group []model.EventRecord
		for i := range recs {
			if sp.match(&recs[i]) {
				group = append(group, recs[i])
			}
		}
		if len(group) == 0 {
			continue
		}
		hits, atBats := hitsAndAtBats(group)
		out[sp.key] = SituationLine{
			Average: ratio(float64(hits), float64(atBats)),
			AtBats:  atBats,
		}
	}
	return out
}

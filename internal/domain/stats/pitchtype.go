package stats

import "github.com/okian/momentum/internal/domain/model"

func pitchTypeStats(recs []model.EventRecord, cols model.ColumnSet, role model.Role) PitchTypeStats {
	if !cols.Has(model.ColPitchType) {
		return PitchTypeStats{}
	}
	groups := make(map[string][]model.EventRecord)
	for i := range recs {
		if pt := recs[i].PitchType; pt != "" {
			groups[pt] = append(groups[pt], recs[i])
		}
	}
	if len(groups) == 0 {
		return PitchTypeStats{}
	}
	lines := make(map[string]PitchTypeLine, len(groups))
	for pt, group := range groups {
		lines[pt] = pitchTypeLine(group, cols, role)
	}
	return PitchTypeStats{Available: true, Lines: lines}
}

func pitchTypeLine(group []model.EventRecord, cols model.ColumnSet, role model.Role) PitchTypeLine {
	line := PitchTypeLine{
		Pitches:  len(group),
		Outcomes: make(map[string]int),
		Events:   make(map[string]int),
	}
	withDesc := cols.Has(model.ColDescription)
	withContact := withDesc && cols.Has(model.ColLaunchSpeed, model.ColLaunchAngle)

	var strikes, swings, whiffs, inPlay int
	var velo, spin, exitVelo, launchAngle sampler
	for i := range group {
		r := &group[i]
		if withDesc && r.Description != "" {
			line.Outcomes[r.Description]++
			if model.IsStrike(r.Description) {
				strikes++
			}
			if model.IsSwing(r.Description) {
				swings++
			}
			switch r.Description {
			case model.DescSwingingStrike:
				whiffs++
			case model.DescHitIntoPlay:
				inPlay++
				if withContact {
					exitVelo.add(r.LaunchSpeed)
					launchAngle.add(r.LaunchAngle)
				}
			}
		}
		if cols.Has(model.ColEvents) && r.Event != "" {
			line.Events[r.Event]++
		}
		if cols.Has(model.ColReleaseSpeed) {
			velo.add(r.ReleaseSpeed)
		}
		if cols.Has(model.ColReleaseSpinRate) {
			spin.add(r.ReleaseSpinRate)
		}
	}

	total := float64(line.Pitches)
	line.StrikeRate = ratio(float64(strikes), total)
	line.SwingRate = ratio(float64(swings), total)
	line.WhiffRate = ratio(float64(whiffs), float64(swings))
	line.InPlayRate = ratio(float64(inPlay), float64(swings))
	line.AvgVelocity = velo.mean()
	line.AvgSpinRate = spin.mean()

	if role == model.RolePitcher {
		putAway := ratio(float64(whiffs), float64(whiffs+inPlay))
		line.PutAwayRate = &putAway
	}
	if withContact && inPlay > 0 {
		line.Contact = &ContactQuality{
			AvgExitVelo:    exitVelo.mean(),
			AvgLaunchAngle: launchAngle.mean(),
		}
	}
	return line
}

package stats

import "github.com/okian/momentum/internal/domain/model"

// Contact thresholds in mph and degrees.
const (
	HardHitSpeed   = 95.0
	BarrelMinSpeed = 98.0
	BarrelMinAngle = 8.0
	BarrelMaxAngle = 32.0
)

// IsBarrel reports whether a launch speed and angle pair qualifies as a barrel.
func IsBarrel(speed, angle float64) bool {
	return speed >= BarrelMinSpeed && angle >= BarrelMinAngle && angle <= BarrelMaxAngle
}

func battedBallProfile(recs []model.EventRecord, cols model.ColumnSet) BattedBallProfile {
	if !cols.Has(model.ColBBType) {
		return BattedBallProfile{}
	}
	withSpeed := cols.Has(model.ColLaunchSpeed)
	withAngle := cols.Has(model.ColLaunchAngle)

	types := make(map[string]int)
	total, hard, barrels := 0, 0, 0
	for i := range recs {
		r := &recs[i]
		if r.BBType == "" {
			continue
		}
		total++
		types[r.BBType]++
		if withSpeed && r.LaunchSpeed != nil && *r.LaunchSpeed >= HardHitSpeed {
			hard++
		}
		if withSpeed && withAngle && r.LaunchSpeed != nil && r.LaunchAngle != nil && IsBarrel(*r.LaunchSpeed, *r.LaunchAngle) {
			barrels++
		}
	}
	if total == 0 {
		return BattedBallProfile{}
	}

	n := float64(total)
	return BattedBallProfile{
		Available:     true,
		GroundBallPct: ratio(float64(types[model.BBGroundBall]), n),
		FlyBallPct:    ratio(float64(types[model.BBFlyBall]), n),
		LineDrivePct:  ratio(float64(types[model.BBLineDrive]), n),
		PopupPct:      ratio(float64(types[model.BBPopup]), n),
		HardHitRate:   ratio(float64(hard), n),
		BarrelRate:    ratio(float64(barrels), n),
		Total:         total,
		Types:         types,
	}
}

package scoring

import (
	"math"

	"github.com/okian/momentum/internal/domain/model"
	"github.com/okian/momentum/internal/domain/snapshot"
	"github.com/okian/momentum/internal/domain/stats"
)

// Change considered maximal for each component.
const (
	scaleBattingAvg    = 0.050
	scaleOnBasePct     = 0.050
	scaleSlugPct       = 0.100
	scaleHomeRunsRate  = 0.030
	scaleStrikeoutRate = 0.050
	scaleBarrelRate    = 0.030
	scaleLaunchSpeed   = 2.0
	scaleBatterRISP    = 0.070

	scaleERA         = 1.0
	scaleWHIP        = 0.300
	scaleKPer9       = 1.5
	scaleBBPer9      = 1.0
	scaleHRPer9      = 0.5
	scaleVelocity    = 1.0
	scalePitcherRISP = 0.050
)

// RISP averages assumed when the split is missing.
const (
	batterRISPFallback  = 0.0
	pitcherRISPFallback = 0.3
)

// componentPrecision rounds components so that a delta equal to its scale
// lands on exactly 1 despite float error in the rates.
const componentPrecision = 1e9

// component maps a change onto [-1, 1]. Lower-is-better metrics pass a
// negative scale.
func component(before, after, scale float64) float64 {
	v := (after - before) / scale
	if math.IsNaN(v) {
		return 0
	}
	v = math.Max(-1, math.Min(1, v))
	return math.Round(v*componentPrecision) / componentPrecision
}

func zeroComponents(role model.Role) map[Component]float64 {
	out := make(map[Component]float64)
	for _, c := range Components(role) {
		out[c] = 0
	}
	return out
}

func batterComponentValues(before, after *snapshot.Snapshot) map[Component]float64 {
	b, a := before.Batter(), after.Batter()
	hrRate := func(s stats.BatterSummary) float64 {
		return float64(s.HomeRuns) / float64(max(s.AtBats, 1))
	}
	kRate := func(s stats.BatterSummary) float64 {
		return float64(s.Strikeouts) / float64(max(s.PlateAppearances, 1))
	}
	return map[Component]float64{
		BattingAvg:    component(b.BattingAvg, a.BattingAvg, scaleBattingAvg),
		OnBasePct:     component(b.OnBasePct, a.OnBasePct, scaleOnBasePct),
		SlugPct:       component(b.SlugPct, a.SlugPct, scaleSlugPct),
		HomeRunsRate:  component(hrRate(b), hrRate(a), scaleHomeRunsRate),
		StrikeoutRate: component(kRate(b), kRate(a), -scaleStrikeoutRate),
		BarrelRate:    component(before.BattedBall().BarrelRate, after.BattedBall().BarrelRate, scaleBarrelRate),
		LaunchSpeed:   component(b.AvgLaunchSpeed, a.AvgLaunchSpeed, scaleLaunchSpeed),
		Situational: component(
			before.Situational().Average(stats.SituationRISP, batterRISPFallback),
			after.Situational().Average(stats.SituationRISP, batterRISPFallback),
			scaleBatterRISP,
		),
	}
}

func pitcherComponentValues(before, after *snapshot.Snapshot) map[Component]float64 {
	b, a := before.Pitcher(), after.Pitcher()
	return map[Component]float64{
		ERA:        component(b.ERA, a.ERA, -scaleERA),
		WHIP:       component(b.WHIP, a.WHIP, -scaleWHIP),
		KPer9:      component(b.KPer9, a.KPer9, scaleKPer9),
		BBPer9:     component(b.BBPer9, a.BBPer9, -scaleBBPer9),
		HRPer9:     component(b.HRPer9, a.HRPer9, -scaleHRPer9),
		BarrelRate: component(before.BattedBall().BarrelRate, after.BattedBall().BarrelRate, -scaleBarrelRate),
		Velocity:   component(b.AvgVelocity, a.AvgVelocity, scaleVelocity),
		Situational: component(
			before.Situational().Average(stats.SituationRISP, pitcherRISPFallback),
			after.Situational().Average(stats.SituationRISP, pitcherRISPFallback),
			-scalePitcherRISP,
		),
	}
}

package snapshot_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/momentum/internal/domain/model"
	"github.com/okian/momentum/internal/domain/snapshot"
	"github.com/okian/momentum/internal/domain/stats"
	. "github.com/smartystreets/goconvey/convey"
)

var (
	before = model.Period{Start: time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
	after  = model.Period{Start: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)}
)

// battingLine returns hits hits and (atBats-hits) field outs.
func battingLine(hits, atBats int) model.RecordSet {
	recs := make([]model.EventRecord, 0, atBats)
	for i := 0; i < atBats; i++ {
		ev := model.EventFieldOut
		if i < hits {
			ev = model.EventSingle
		}
		recs = append(recs, model.EventRecord{Event: ev})
	}
	return model.NewRecordSet(recs...)
}

func mustSnapshot(rs model.RecordSet, p model.Period, role model.Role) *snapshot.Snapshot {
	s, err := snapshot.New("Test Player", 123, rs, p, role)
	So(err, ShouldBeNil)
	return s
}

func TestNew(t *testing.T) {
	Convey("Given an unknown role", t, func() {
		_, err := snapshot.New("x", 1, battingLine(1, 2), before, model.Role("coach"))

		Convey("Then construction fails even with data", func() {
			So(errors.Is(err, model.ErrInvalidRole), ShouldBeTrue)
		})

		Convey("And it fails without data too", func() {
			_, err := snapshot.Empty("x", before, model.Role("coach"))
			So(errors.Is(err, model.ErrInvalidRole), ShouldBeTrue)
		})
	})

	Convey("Given no records", t, func() {
		s, err := snapshot.Empty("Nobody", before, model.RoleBatter)
		So(err, ShouldBeNil)

		Convey("Then data is unavailable and lookups return zero", func() {
			So(s.DataAvailable(), ShouldBeFalse)
			So(s.Role(), ShouldEqual, model.RoleBatter)
			So(s.Flatten(), ShouldBeEmpty)
			So(s.Flatten().Get(snapshot.MetricBattingAvg), ShouldEqual, 0)
			So(s.Batter().AtBats, ShouldEqual, 0)
			So(s.BattedBall().Available, ShouldBeFalse)
			So(s.PitchTypes().Available, ShouldBeFalse)
			So(s.Situational(), ShouldBeEmpty)
		})
	})

	Convey("Given a batting line", t, func() {
		s := mustSnapshot(battingLine(25, 100), before, model.RoleBatter)

		Convey("Then views are computed up front", func() {
			So(s.DataAvailable(), ShouldBeTrue)
			So(s.RecordCount(), ShouldEqual, 100)
			So(s.ID(), ShouldEqual, model.PlayerID(123))
			So(s.Batter().BattingAvg, ShouldAlmostEqual, 0.25, 1e-9)
			So(s.Pitcher().ERA, ShouldEqual, 0)
		})

		Convey("And the flat view is batter-specific", func() {
			f := s.Flatten()
			So(f.Get(snapshot.MetricBattingAvg), ShouldAlmostEqual, 0.25, 1e-9)
			So(f.Get(snapshot.MetricAtBats), ShouldEqual, 100)
			_, hasERA := f[snapshot.MetricERA]
			So(hasERA, ShouldBeFalse)
		})
	})

	Convey("Given a pitching line", t, func() {
		rs := model.NewRecordSet(
			model.EventRecord{Event: model.EventStrikeout},
			model.EventRecord{Event: model.EventStrikeout},
			model.EventRecord{Event: model.EventFieldOut},
			model.EventRecord{Event: model.EventWalk},
		)
		s := mustSnapshot(rs, before, model.RolePitcher)

		Convey("Then the flat view is pitcher-specific", func() {
			f := s.Flatten()
			So(f.Get(snapshot.MetricInningsPitched), ShouldAlmostEqual, 1.0, 1e-9)
			So(f.Get(snapshot.MetricKBBRatio), ShouldEqual, 2)
			_, hasBA := f[snapshot.MetricBattingAvg]
			So(hasBA, ShouldBeFalse)
		})
	})
}

func TestAccessorsReturnCopies(t *testing.T) {
	runner := int64(7)
	rs := model.NewRecordSet(
		model.EventRecord{Event: model.EventSingle, Description: "hit_into_play", PitchType: "FF", BBType: "line_drive", On2B: &runner},
		model.EventRecord{Event: model.EventFieldOut, Description: "hit_into_play", PitchType: "SL", BBType: "ground_ball", On1B: &runner, On3B: &runner},
	)

	Convey("Given a batter snapshot with every view populated", t, func() {
		s := mustSnapshot(rs, before, model.RoleBatter)
		So(s.Situational(), ShouldContainKey, stats.SituationRISP)
		So(s.PitchTypes().Lines, ShouldContainKey, "FF")
		risp := s.Situational()[stats.SituationRISP].Average
		avg := s.Batter().BattingAvg

		Convey("When a caller mutates what the accessors return", func() {
			sit := s.Situational()
			sit[stats.SituationRISP] = stats.SituationLine{Average: 0}
			delete(sit, stats.SituationBasesEmpty)

			pt := s.PitchTypes()
			ff := pt.Lines["FF"]
			ff.Outcomes["hit_into_play"] = 99
			delete(pt.Lines, "SL")

			s.BattedBall().Types["line_drive"] = 99
			s.Batter().EventCounts[model.EventSingle] = 99
			views := s.Views()
			views.Summary.Batter.BattingAvg = 0

			Convey("Then the snapshot is unchanged", func() {
				So(s.Situational()[stats.SituationRISP].Average, ShouldEqual, risp)
				So(s.PitchTypes().Lines, ShouldContainKey, "SL")
				So(s.PitchTypes().Lines["FF"].Outcomes["hit_into_play"], ShouldEqual, 1)
				So(s.BattedBall().Types["line_drive"], ShouldEqual, 1)
				So(s.Batter().EventCounts[model.EventSingle], ShouldEqual, 1)
				So(s.Batter().BattingAvg, ShouldEqual, avg)
			})
		})
	})
}

func TestCompare(t *testing.T) {
	Convey("Given two batting snapshots", t, func() {
		b := mustSnapshot(battingLine(25, 100), before, model.RoleBatter)
		a := mustSnapshot(battingLine(30, 100), after, model.RoleBatter)

		Convey("When compared", func() {
			c := snapshot.Compare(b, a)

			Convey("Then every shared metric has a delta", func() {
				So(c.Available, ShouldBeTrue)
				So(c.Role, ShouldEqual, model.RoleBatter)
				So(c.BeforePeriod, ShouldResemble, before)
				So(c.AfterPeriod, ShouldResemble, after)
				d := c.Deltas[snapshot.MetricBattingAvg]
				So(d.Before, ShouldAlmostEqual, 0.25, 1e-9)
				So(d.After, ShouldAlmostEqual, 0.30, 1e-9)
				So(d.Change, ShouldAlmostEqual, 0.05, 1e-9)
				So(d.PctChange, ShouldAlmostEqual, 20, 1e-9)
			})

			Convey("And a zero before-value gives a zero percent change", func() {
				d := c.Deltas[snapshot.MetricHomeRuns]
				So(d.Before, ShouldEqual, 0)
				So(d.PctChange, ShouldEqual, 0)
			})
		})
	})

	Convey("Given an empty snapshot", t, func() {
		empty, err := snapshot.Empty("x", before, model.RoleBatter)
		So(err, ShouldBeNil)
		full := mustSnapshot(battingLine(1, 4), after, model.RoleBatter)

		Convey("Then the comparison is unavailable", func() {
			So(snapshot.Compare(empty, full).Available, ShouldBeFalse)
			So(snapshot.Compare(empty, full).Reason, ShouldEqual, snapshot.ReasonNoDataBefore)
			So(snapshot.Compare(full, empty).Reason, ShouldEqual, snapshot.ReasonNoDataAfter)
			So(snapshot.Compare(empty, empty).Available, ShouldBeFalse)
			So(snapshot.Compare(nil, full).Reason, ShouldEqual, snapshot.ReasonMissingSnapshot)
		})
	})

	Convey("Given snapshots of different roles", t, func() {
		b := mustSnapshot(battingLine(1, 4), before, model.RoleBatter)
		p := mustSnapshot(battingLine(1, 4), after, model.RolePitcher)

		Convey("Then the comparison is unavailable", func() {
			c := snapshot.Compare(b, p)
			So(c.Available, ShouldBeFalse)
			So(c.Reason, ShouldEqual, snapshot.ReasonRoleMismatch)
		})
	})
}

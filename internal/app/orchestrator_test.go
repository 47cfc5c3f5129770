package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	service "github.com/okian/momentum/internal/app"
	"github.com/okian/momentum/internal/domain/model"
	"github.com/okian/momentum/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func day(s string) time.Time {
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestNewOrchestrator(t *testing.T) {
	Convey("An orchestrator needs both collaborators", t, func() {
		_, err := service.NewOrchestrator(nil, lookup())
		So(errors.Is(err, service.ErrNoDataSource), ShouldBeTrue)
		_, err = service.NewOrchestrator(newFakeSource(), nil)
		So(errors.Is(err, service.ErrNoIDLookup), ShouldBeTrue)
	})
}

func TestOrchestratorPeriods(t *testing.T) {
	Convey("Given the default windows", t, func() {
		o, err := service.NewOrchestrator(newFakeSource(), lookup())
		So(err, ShouldBeNil)

		Convey("Then the pre window spans five seasons and the post window thirty days", func() {
			before, after, err := o.Periods(moment())
			So(err, ShouldBeNil)
			So(before.Start, ShouldEqual, day("2019-01-01"))
			So(before.End, ShouldEqual, day("2024-06-15"))
			So(after.Start, ShouldEqual, day("2024-06-15"))
			So(after.End, ShouldEqual, day("2024-07-15"))
		})

		Convey("Then an explicit game year moves the lookback", func() {
			m := moment()
			m.GameYear = 2023
			before, _, err := o.Periods(m)
			So(err, ShouldBeNil)
			So(before.Start, ShouldEqual, day("2018-01-01"))
		})

		Convey("Then a bad date is rejected", func() {
			m := moment()
			m.GameDate = "15/06/2024"
			_, _, err := o.Periods(m)
			So(errors.Is(err, model.ErrInvalidMoment), ShouldBeTrue)
		})
	})

	Convey("Given explicit day windows", t, func() {
		o, err := service.NewOrchestrator(newFakeSource(), lookup(),
			service.WithDaysBefore(10),
			service.WithDaysAfter(7),
		)
		So(err, ShouldBeNil)

		Convey("Then both windows are measured in days", func() {
			before, after, err := o.Periods(moment())
			So(err, ShouldBeNil)
			So(before.Start, ShouldEqual, day("2024-06-05"))
			So(after.End, ShouldEqual, day("2024-06-22"))
		})
	})
}

func TestOrchestratorCalculate(t *testing.T) {
	ctx := context.Background()

	Convey("Given a batter who improved and a pitcher with no data", t, func() {
		src := newFakeSource()
		o, err := service.NewOrchestrator(src, lookup())
		So(err, ShouldBeNil)

		b, err := o.Calculate(ctx, moment())
		So(err, ShouldBeNil)

		Convey("Then the bundle carries the moment", func() {
			So(b.MomentID, ShouldEqual, moment().ID())
			So(b.GameDate, ShouldEqual, "2024-06-15")
			So(b.Event, ShouldEqual, model.EventHomeRun)
			So(*b.WinExpDelta, ShouldEqual, 0.42)
		})

		Convey("Then the batter is scored above neutral", func() {
			So(b.Batter.Name, ShouldEqual, "Aaron Judge")
			So(b.Batter.ID, ShouldEqual, model.PlayerID(592450))
			So(b.Batter.Detail.Available, ShouldBeTrue)
			So(b.Batter.Score, ShouldAlmostEqual, 68.75, 1e-9)
			So(b.Batter.Detail.Components[scoring.BattingAvg], ShouldEqual, 1.0)
		})

		Convey("Then the pitcher is neutral with every component zero", func() {
			So(b.Pitcher.Score, ShouldEqual, scoring.NeutralScore)
			So(b.Pitcher.Detail.Available, ShouldBeFalse)
			So(len(b.Pitcher.Detail.Components), ShouldEqual, len(scoring.Components(model.RolePitcher)))
			for _, v := range b.Pitcher.Detail.Components {
				So(v, ShouldEqual, 0)
			}
		})

		Convey("Then each player is fetched for both windows", func() {
			So(src.calls, ShouldEqual, 4)
		})
	})

	Convey("Given an unknown batter", t, func() {
		src := newFakeSource()
		o, _ := service.NewOrchestrator(src, fakeLookup{"Gerrit Cole": 543037})

		b, err := o.Calculate(ctx, moment())

		Convey("Then the batter degrades to neutral without fetching", func() {
			So(err, ShouldBeNil)
			So(b.Batter.Score, ShouldEqual, scoring.NeutralScore)
			So(b.Batter.ID, ShouldEqual, model.PlayerID(0))
			So(src.calls, ShouldEqual, 2)
		})
	})

	Convey("Given a data source failing for the batter", t, func() {
		src := newFakeSource()
		src.fail[model.RoleBatter] = true
		o, _ := service.NewOrchestrator(src, lookup())

		b, err := o.Calculate(ctx, moment())

		Convey("Then the failure stays local to the batter", func() {
			So(err, ShouldBeNil)
			So(b.Batter.Score, ShouldEqual, scoring.NeutralScore)
			So(b.Batter.Detail.Available, ShouldBeFalse)
			So(b.Pitcher.Name, ShouldEqual, "Gerrit Cole")
		})
	})

	Convey("Given custom weights", t, func() {
		src := newFakeSource()
		scorer := scoring.NewMomentumScorer(scoring.WithWeights(model.RoleBatter, scoring.Weights{scoring.BattingAvg: 1}))
		o, _ := service.NewOrchestrator(src, lookup(), service.WithScorer(scorer))

		b, err := o.Calculate(ctx, moment())

		Convey("Then the scorer's table is used", func() {
			So(err, ShouldBeNil)
			So(b.Batter.Score, ShouldEqual, 100.0)
		})
	})

	Convey("Given an invalid moment", t, func() {
		o, _ := service.NewOrchestrator(newFakeSource(), lookup())
		m := moment()
		m.BatterName = ""

		Convey("Then Calculate fails", func() {
			_, err := o.Calculate(ctx, m)
			So(errors.Is(err, model.ErrInvalidMoment), ShouldBeTrue)
		})
	})

	Convey("Given a cancelled context", t, func() {
		o, _ := service.NewOrchestrator(newFakeSource(), lookup())
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		Convey("Then Calculate reports the cancellation", func() {
			_, err := o.Calculate(cctx, moment())
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

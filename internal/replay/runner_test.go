package replay_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/momentum/internal/adapters/http/api"
	"github.com/okian/momentum/internal/adapters/repository"
	service "github.com/okian/momentum/internal/app"
	"github.com/okian/momentum/internal/domain/model"
	"github.com/okian/momentum/internal/domain/scoring"
	"github.com/okian/momentum/internal/replay"
	"github.com/okian/momentum/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

// scoreByName gives each batter a fixed score and leaves pitchers unavailable.
type scoreByName map[string]float64

func (s scoreByName) Calculate(_ context.Context, m model.Moment) (service.Bundle, error) {
	return service.Bundle{
		GameDate: m.GameDate,
		Event:    m.Events,
		Batter: service.PlayerResult{
			Name:   m.BatterName,
			Score:  s[m.BatterName],
			Detail: scoring.Result{Role: model.RoleBatter, Score: s[m.BatterName], Available: true},
		},
		Pitcher: service.PlayerResult{Name: m.PitcherName, Score: 50},
	}, nil
}

func newTarget(t *testing.T, calc service.Calculator) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	svc := service.New(service.WithCalculator(calc), service.WithWorkerCount(2), service.WithLogger(logger.NewNop()))
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start service: %v", err)
	}
	t.Cleanup(func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = svc.Stop(stopCtx)
	})
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(ctx, mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func replayConfig(url string) replay.Config {
	cfg := replay.DefaultConfig()
	cfg.BaseURL = url
	cfg.PollInterval = 10 * time.Millisecond
	cfg.WaitTimeout = 5 * time.Second
	cfg.TopN = 5
	return cfg
}

func replayMoments() []model.Moment {
	return []model.Moment{
		{GameDate: "2024-06-15", BatterName: "Aaron Judge", PitcherName: "Gerrit Cole", Events: "home_run"},
		{GameDate: "2024-06-16", BatterName: "Juan Soto", PitcherName: "Chris Sale", Events: "double"},
		{GameDate: "2024-06-17", BatterName: "Mookie Betts", PitcherName: "Zack Wheeler", Events: "single"},
		// resubmission of the first moment
		{GameDate: "2024-06-15", BatterName: "Aaron Judge", PitcherName: "Gerrit Cole", Events: "home_run"},
	}
}

func TestRun(t *testing.T) {
	Convey("Given a running service", t, func() {
		srv := newTarget(t, scoreByName{"Aaron Judge": 80, "Juan Soto": 65, "Mookie Betts": 40})

		Convey("When the moments are replayed", func() {
			report, err := replay.Run(context.Background(), replayConfig(srv.URL), replayMoments(), nil)
			So(err, ShouldBeNil)

			Convey("Then every distinct moment is accepted once and scored", func() {
				So(report.Stats.Moments, ShouldEqual, 4)
				So(report.Stats.Accepted+report.Stats.Duplicate, ShouldEqual, 4)
				So(report.Stats.Accepted, ShouldEqual, 3)
				So(report.Stats.Scored, ShouldEqual, 3)
				So(report.Stats.Missing, ShouldEqual, 0)
			})

			Convey("Then the batter leaderboard is ordered by score", func() {
				board := report.Leaderboards[model.RoleBatter]
				So(board, ShouldHaveLength, 3)
				So(board[0].Player, ShouldEqual, "Aaron Judge")
				So(board[2].Player, ShouldEqual, "Mookie Betts")
				So(report.Leaderboards[model.RolePitcher], ShouldBeEmpty)
			})
		})
	})

	Convey("Given an unreachable service", t, func() {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		_, err := replay.Run(context.Background(), replayConfig(srv.URL), replayMoments(), nil)
		So(errors.Is(err, replay.ErrUnhealthy), ShouldBeTrue)
	})

	Convey("Given an invalid configuration", t, func() {
		cfg := replayConfig("http://localhost")
		cfg.Workers = 0
		_, err := replay.Run(context.Background(), cfg, nil, nil)
		So(errors.Is(err, replay.ErrInvalidConfig), ShouldBeTrue)
	})
}

func TestVerify(t *testing.T) {
	bundle := func(score float64) service.Bundle {
		return service.Bundle{Batter: service.PlayerResult{
			Score:  score,
			Detail: scoring.Result{Available: true, Score: score},
		}}
	}

	Convey("Given a report whose leaderboard is out of order", t, func() {
		r := &replay.Report{
			Limit: 5,
			Leaderboards: map[model.Role][]repository.Entry{
				model.RoleBatter: {{MomentID: "a", Score: 10}, {MomentID: "b", Score: 20}},
			},
		}
		So(errors.Is(replay.Verify(r), replay.ErrInconsistent), ShouldBeTrue)
	})

	Convey("Given a listed moment whose stored score differs", t, func() {
		r := &replay.Report{
			Limit:        5,
			Results:      map[string]service.Bundle{"a": bundle(70)},
			Leaderboards: map[model.Role][]repository.Entry{model.RoleBatter: {{MomentID: "a", Score: 60}}},
		}
		So(errors.Is(replay.Verify(r), replay.ErrInconsistent), ShouldBeTrue)
	})

	Convey("Given a short leaderboard missing a scored moment", t, func() {
		r := &replay.Report{
			Limit:        5,
			Results:      map[string]service.Bundle{"a": bundle(70), "b": bundle(30)},
			Leaderboards: map[model.Role][]repository.Entry{model.RoleBatter: {{MomentID: "a", Score: 70}}},
		}
		So(errors.Is(replay.Verify(r), replay.ErrInconsistent), ShouldBeTrue)
	})

	Convey("Given a full leaderboard that outranks an unlisted moment", t, func() {
		r := &replay.Report{
			Limit:        1,
			Results:      map[string]service.Bundle{"a": bundle(70), "b": bundle(30)},
			Leaderboards: map[model.Role][]repository.Entry{model.RoleBatter: {{MomentID: "a", Score: 70}}},
		}
		So(replay.Verify(r), ShouldBeNil)
	})
}

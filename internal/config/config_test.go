package config_test

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/okian/momentum/internal/config"
	"github.com/okian/momentum/internal/domain/model"
	"github.com/okian/momentum/internal/domain/scoring"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		ctx := context.Background()
		cfg := config.New(ctx)

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.QueueSize, convey.ShouldEqual, 1024)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.DaysAfter, convey.ShouldEqual, 30)
			convey.So(cfg.DaysBefore, convey.ShouldEqual, 0)
			convey.So(cfg.LookbackYears, convey.ShouldEqual, 5)
			convey.So(cfg.StatcastTimeout(), convey.ShouldEqual, time.Minute)
			convey.So(cfg.BreakerOpenTimeout(), convey.ShouldEqual, time.Minute)
			convey.So(cfg.CacheTTL(), convey.ShouldEqual, 24*time.Hour)
			convey.So(cfg.Validate(ctx), convey.ShouldBeNil)
		})

		convey.Convey("Then the weight tables fall back to the defaults", func() {
			w, err := cfg.Weights(model.RoleBatter)
			convey.So(err, convey.ShouldBeNil)
			convey.So(w, convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given an otherwise valid config", t, func() {
		ctx := context.Background()
		cfg := config.New(ctx)

		convey.Convey("Then a negative post window is rejected", func() {
			cfg.DaysAfter = -1
			convey.So(errors.Is(cfg.Validate(ctx), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("Then a zero lookback is rejected", func() {
			cfg.LookbackYears = 0
			convey.So(errors.Is(cfg.Validate(ctx), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("Then negative weights are rejected", func() {
			cfg.PitcherWeights = map[string]float64{"era": -0.1}
			err := cfg.Validate(ctx)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(errors.Is(err, scoring.ErrNegativeWeight), convey.ShouldBeTrue)
		})

		convey.Convey("Then a component of the other role is rejected", func() {
			cfg.BatterWeights = map[string]float64{"era": 1}
			convey.So(errors.Is(cfg.Validate(ctx), scoring.ErrUnknownComponent), convey.ShouldBeTrue)
		})

		convey.Convey("Then valid overrides are parsed", func() {
			cfg.BatterWeights = map[string]float64{"batting_avg": 2, "slug_pct": 1}
			convey.So(cfg.Validate(ctx), convey.ShouldBeNil)
			w, err := cfg.Weights(model.RoleBatter)
			convey.So(err, convey.ShouldBeNil)
			convey.So(w[scoring.BattingAvg], convey.ShouldEqual, 2)
		})
	})
}

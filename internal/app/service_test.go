package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/momentum/internal/adapters/mq/queue"
	"github.com/okian/momentum/internal/adapters/repository"
	service "github.com/okian/momentum/internal/app"
	"github.com/okian/momentum/internal/domain/model"
	"github.com/okian/momentum/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

// blockingCalculator holds every calculation until release is closed.
type blockingCalculator struct {
	release chan struct{}
}

func (c *blockingCalculator) Calculate(ctx context.Context, m model.Moment) (service.Bundle, error) {
	select {
	case <-c.release:
	case <-ctx.Done():
		return service.Bundle{}, ctx.Err()
	}
	return service.Bundle{GameDate: m.GameDate, Event: m.Events}, nil
}

func newService(t *testing.T, opts ...service.Option) *service.Service {
	t.Helper()
	o, err := service.NewOrchestrator(newFakeSource(), lookup())
	if err != nil {
		t.Fatal(err)
	}
	opts = append([]service.Option{
		service.WithCalculator(o),
		service.WithWorkerCount(2),
		service.WithLogger(logger.NewNop()),
	}, opts...)
	return service.New(opts...)
}

func waitForResult(ctx context.Context, svc *service.Service, id string) (service.Bundle, error) {
	deadline := time.Now().Add(5 * time.Second)
	for {
		b, err := svc.Result(ctx, id)
		if err == nil || time.Now().After(deadline) {
			return b, err
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestService_Start(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service without a calculator", t, func() {
		svc := service.New(service.WithLogger(logger.NewNop()))

		Convey("Then Start fails", func() {
			So(errors.Is(svc.Start(ctx), service.ErrNoCalculator), ShouldBeTrue)
		})

		Convey("Then using it before Start fails", func() {
			_, _, err := svc.Submit(ctx, moment())
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			_, err = svc.Calculate(ctx, moment())
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
		})
	})

	Convey("Given a configured service", t, func() {
		svc := newService(t)

		Convey("When starting the service", func() {
			So(svc.Start(ctx), ShouldBeNil)
			So(svc.Start(ctx), ShouldBeNil)
			defer func() { _ = svc.Stop(ctx) }()

			Convey("Then it reports as started", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["workerCount"], ShouldEqual, 2)
				So(stats["queueLength"], ShouldEqual, 0)
			})
		})

		Convey("When stopping a service that never started", func() {
			Convey("Then it is a no-op", func() {
				So(svc.Stop(ctx), ShouldBeNil)
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})
}

func TestService_Submit(t *testing.T) {
	ctx := context.Background()

	Convey("Given a started service", t, func() {
		svc := newService(t)
		So(svc.Start(ctx), ShouldBeNil)
		defer func() { _ = svc.Stop(ctx) }()

		Convey("When a moment is submitted", func() {
			id, dup, err := svc.Submit(ctx, moment())
			So(err, ShouldBeNil)
			So(dup, ShouldBeFalse)
			So(id, ShouldEqual, moment().ID())

			Convey("Then the result becomes available", func() {
				b, err := waitForResult(ctx, svc, id)
				So(err, ShouldBeNil)
				So(b.MomentID, ShouldEqual, id)
				So(b.Batter.Score, ShouldBeGreaterThan, 50)
			})

			Convey("Then only players with data reach the leaderboard", func() {
				_, err := waitForResult(ctx, svc, id)
				So(err, ShouldBeNil)
				batters, err := svc.TopN(ctx, model.RoleBatter, 10)
				So(err, ShouldBeNil)
				So(len(batters), ShouldEqual, 1)
				So(batters[0].Player, ShouldEqual, "Aaron Judge")
				So(batters[0].Rank, ShouldEqual, 1)
				pitchers, err := svc.TopN(ctx, model.RolePitcher, 10)
				So(err, ShouldBeNil)
				So(pitchers, ShouldBeEmpty)
			})

			Convey("Then resubmitting it is a duplicate", func() {
				again, dup, err := svc.Submit(ctx, moment())
				So(err, ShouldBeNil)
				So(dup, ShouldBeTrue)
				So(again, ShouldEqual, id)
			})
		})

		Convey("When an invalid moment is submitted", func() {
			m := moment()
			m.Events = ""
			_, _, err := svc.Submit(ctx, m)

			Convey("Then it is rejected", func() {
				So(errors.Is(err, model.ErrInvalidMoment), ShouldBeTrue)
			})
		})

		Convey("When an unknown id is requested", func() {
			_, err := svc.Result(ctx, "nope")

			Convey("Then it is not found", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})
	})

	Convey("Given a service whose queue is full", t, func() {
		calc := &blockingCalculator{release: make(chan struct{})}
		svc := service.New(
			service.WithCalculator(calc),
			service.WithWorkerCount(1),
			service.WithQueueSize(1),
			service.WithLogger(logger.NewNop()),
		)
		So(svc.Start(ctx), ShouldBeNil)
		defer func() {
			close(calc.release)
			_ = svc.Stop(ctx)
		}()

		// One job is held by the worker, one by the dequeue forwarder and one fills the queue.
		var lastErr error
		for i := 0; i < 5 && lastErr == nil; i++ {
			m := moment()
			m.GameDate = time.Date(2024, 6, 1+i, 0, 0, 0, 0, time.UTC).Format(model.DateLayout)
			_, _, lastErr = svc.Submit(ctx, m)
			time.Sleep(20 * time.Millisecond)
		}

		Convey("Then submissions fail with backpressure and can be retried", func() {
			So(errors.Is(lastErr, queue.ErrFull), ShouldBeTrue)
		})
	})
}

func TestService_Calculate(t *testing.T) {
	ctx := context.Background()

	Convey("Given a started service", t, func() {
		svc := newService(t)
		So(svc.Start(ctx), ShouldBeNil)
		defer func() { _ = svc.Stop(ctx) }()

		Convey("When a moment is scored synchronously", func() {
			b, err := svc.Calculate(ctx, moment())
			So(err, ShouldBeNil)

			Convey("Then the bundle is returned and stored", func() {
				So(b.Batter.Score, ShouldAlmostEqual, 68.75, 1e-9)
				stored, err := svc.Result(ctx, b.MomentID)
				So(err, ShouldBeNil)
				So(stored.Batter.Score, ShouldEqual, b.Batter.Score)
				So(svc.GetStats()["storedResults"], ShouldEqual, 1)
			})

			Convey("Then a later async submission is a duplicate", func() {
				_, dup, err := svc.Submit(ctx, moment())
				So(err, ShouldBeNil)
				So(dup, ShouldBeTrue)
			})
		})
	})
}

func TestService_Stop(t *testing.T) {
	Convey("Given a service with a calculation in flight", t, func() {
		calc := &blockingCalculator{release: make(chan struct{})}
		svc := service.New(
			service.WithCalculator(calc),
			service.WithWorkerCount(1),
			service.WithLogger(logger.NewNop()),
		)
		So(svc.Start(context.Background()), ShouldBeNil)
		_, _, err := svc.Submit(context.Background(), moment())
		So(err, ShouldBeNil)
		time.Sleep(20 * time.Millisecond)

		Convey("When the stop deadline passes", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			err := svc.Stop(ctx)
			close(calc.release)

			Convey("Then Stop returns the deadline error", func() {
				So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})
}

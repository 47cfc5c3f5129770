package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/momentum/internal/adapters/repository"
	"github.com/okian/momentum/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func entries(batter string, bScore float64, pitcher string, pScore float64) []repository.Entry {
	return []repository.Entry{
		{Role: model.RoleBatter, Player: batter, Score: bScore, GameDate: "2024-06-01", Event: model.EventHomeRun},
		{Role: model.RolePitcher, Player: pitcher, Score: pScore, GameDate: "2024-06-01", Event: model.EventHomeRun},
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty store", t, func() {
		s := repository.NewMemoryStore[string]()

		Convey("Then lookups fail with ErrNotFound", func() {
			_, err := s.Get(ctx, "nope")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			So(s.Count(ctx), ShouldEqual, 0)
		})

		Convey("And invalid leaderboard queries are rejected", func() {
			_, err := s.TopN(ctx, model.RoleBatter, 0)
			So(errors.Is(err, repository.ErrInvalidLimit), ShouldBeTrue)
			_, err = s.TopN(ctx, model.Role("umpire"), 5)
			So(errors.Is(err, repository.ErrInvalidRole), ShouldBeTrue)
		})

		Convey("When scored moments are stored", func() {
			So(s.Put(ctx, "m1", "first", entries("A", 60, "X", 40)...), ShouldBeNil)
			So(s.Put(ctx, "m2", "second", entries("B", 75, "Y", 55)...), ShouldBeNil)
			So(s.Put(ctx, "m3", "third", entries("C", 60, "Z", 50)...), ShouldBeNil)

			Convey("Then values can be read back", func() {
				v, err := s.Get(ctx, "m2")
				So(err, ShouldBeNil)
				So(v, ShouldEqual, "second")
				So(s.Count(ctx), ShouldEqual, 3)
			})

			Convey("And each role is ranked by score with shared ranks for ties", func() {
				top, err := s.TopN(ctx, model.RoleBatter, 10)
				So(err, ShouldBeNil)
				So(len(top), ShouldEqual, 3)
				So(top[0].Player, ShouldEqual, "B")
				So(top[0].Rank, ShouldEqual, 1)
				So(top[1].MomentID, ShouldEqual, "m1")
				So(top[1].Rank, ShouldEqual, 2)
				So(top[2].MomentID, ShouldEqual, "m3")
				So(top[2].Rank, ShouldEqual, 2)

				pitchers, err := s.TopN(ctx, model.RolePitcher, 2)
				So(err, ShouldBeNil)
				So(len(pitchers), ShouldEqual, 2)
				So(pitchers[0].Player, ShouldEqual, "Y")
				So(pitchers[1].Player, ShouldEqual, "Z")
			})

			Convey("And storing the same id again replaces its entries", func() {
				So(s.Put(ctx, "m2", "second again", entries("B", 10, "Y", 90)...), ShouldBeNil)
				So(s.Count(ctx), ShouldEqual, 3)

				top, _ := s.TopN(ctx, model.RoleBatter, 10)
				So(len(top), ShouldEqual, 3)
				So(top[2].Player, ShouldEqual, "B")

				pitchers, _ := s.TopN(ctx, model.RolePitcher, 1)
				So(pitchers[0].Score, ShouldEqual, 90)
			})
		})

		Convey("When an entry has an unknown role", func() {
			err := s.Put(ctx, "bad", "x", repository.Entry{Role: "coach"})

			Convey("Then nothing is stored", func() {
				So(errors.Is(err, repository.ErrInvalidRole), ShouldBeTrue)
				So(s.Count(ctx), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a store with capacity two", t, func() {
		s := repository.NewMemoryStore[int](repository.WithCapacity(2))
		for i := 1; i <= 3; i++ {
			So(s.Put(ctx, fmt.Sprintf("m%d", i), i, entries(fmt.Sprintf("B%d", i), float64(i), "P", 50)...), ShouldBeNil)
		}

		Convey("Then the oldest moment and its entries are evicted", func() {
			So(s.Count(ctx), ShouldEqual, 2)
			_, err := s.Get(ctx, "m1")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			top, _ := s.TopN(ctx, model.RoleBatter, 10)
			So(len(top), ShouldEqual, 2)
			So(top[0].Player, ShouldEqual, "B3")
		})
	})

	Convey("Given concurrent writers", t, func() {
		s := repository.NewMemoryStore[int]()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_ = s.Put(ctx, fmt.Sprintf("m%d", i), i, entries("B", float64(i), "P", float64(100-i))...)
			}(i)
		}
		wg.Wait()

		Convey("Then every moment is ranked in order", func() {
			So(s.Count(ctx), ShouldEqual, 50)
			top, err := s.TopN(ctx, model.RoleBatter, 50)
			So(err, ShouldBeNil)
			for i := 1; i < len(top); i++ {
				So(top[i-1].Score, ShouldBeGreaterThanOrEqualTo, top[i].Score)
			}
		})
	})
}

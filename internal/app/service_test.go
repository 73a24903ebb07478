package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/boztas13/footballers-overall-database/internal/adapters/repository"
	app "github.com/boztas13/footballers-overall-database/internal/app"
	"github.com/boztas13/footballers-overall-database/internal/domain/model"
	"github.com/boztas13/footballers-overall-database/internal/synthetic"
	"github.com/boztas13/footballers-overall-database/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

func populatedStore(ctx context.Context, players int, seed int64) *repository.MemoryStore {
	store := repository.NewMemoryStore()
	gen := synthetic.New(synthetic.WithPlayers(players), synthetic.WithSeed(seed))
	if _, err := gen.Populate(ctx, store); err != nil {
		panic(err)
	}
	return store
}

func TestService_Run(t *testing.T) {
	Convey("Given a store with a synthetic population", t, func() {
		ctx := context.Background()
		store := populatedStore(ctx, 200, 42)

		svc := app.New(store, store, app.WithSeed(7))

		Convey("When the pipeline runs", func() {
			summary, err := svc.Run(ctx)

			Convey("Then it completes and reports the population", func() {
				So(err, ShouldBeNil)
				So(summary.PlayersLoaded, ShouldEqual, 200)
				So(summary.PlayersRated, ShouldEqual, summary.PlayersLoaded-summary.PlayersExcluded)
				So(summary.PlayersRated, ShouldBeGreaterThan, 0)
			})

			Convey("Then zero-minute players were silently skipped", func() {
				So(err, ShouldBeNil)
				aggs, aerr := store.SeasonAggregates(ctx)
				So(aerr, ShouldBeNil)
				unplayed := 0
				for _, a := range aggs {
					if a.MinutesPlayed == 0 {
						unplayed++
					}
				}
				So(summary.PlayersExcluded, ShouldEqual, unplayed)
			})

			Convey("Then every sub-attribute lies in [1, 20]", func() {
				So(err, ShouldBeNil)
				ratings, rerr := store.Ratings(ctx)
				So(rerr, ShouldBeNil)
				So(ratings, ShouldHaveLength, summary.PlayersRated)
				for _, r := range ratings {
					So(len(r.Attributes), ShouldEqual, 25)
					for _, v := range r.Attributes {
						So(v, ShouldBeGreaterThanOrEqualTo, 1)
						So(v, ShouldBeLessThanOrEqualTo, 20)
					}
				}
			})

			Convey("Then PA is bounded by CA below and 20 above", func() {
				So(err, ShouldBeNil)
				ratings, rerr := store.Ratings(ctx)
				So(rerr, ShouldBeNil)
				for _, r := range ratings {
					So(r.Composite.Potential, ShouldBeLessThanOrEqualTo, 20)
					if r.Composite.Overall <= 20 {
						So(r.Composite.Potential, ShouldBeGreaterThanOrEqualTo, r.Composite.Overall)
					}
				}
			})
		})

		Convey("When the pipeline runs twice with the same seed", func() {
			_, err1 := svc.Run(ctx)
			So(err1, ShouldBeNil)
			first, err := store.Ratings(ctx)
			So(err, ShouldBeNil)

			_, err2 := svc.Run(ctx)
			So(err2, ShouldBeNil)
			second, err := store.Ratings(ctx)
			So(err, ShouldBeNil)

			Convey("Then the output is bit-identical", func() {
				So(second, ShouldResemble, first)
			})
		})

		Convey("When the composite stage fans out across workers", func() {
			serial := app.New(store, store, app.WithSeed(7), app.WithWorkerCount(1))
			parallel := app.New(store, store, app.WithSeed(7), app.WithWorkerCount(8))

			_, err := serial.Run(ctx)
			So(err, ShouldBeNil)
			serialOut, err := store.Ratings(ctx)
			So(err, ShouldBeNil)

			_, err = parallel.Run(ctx)
			So(err, ShouldBeNil)
			parallelOut, err := store.Ratings(ctx)
			So(err, ShouldBeNil)

			Convey("Then worker count does not change the result", func() {
				So(parallelOut, ShouldResemble, serialOut)
			})
		})
	})
}

func TestService_EmptyPopulation(t *testing.T) {
	Convey("Given an empty store", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore()
		svc := app.New(store, store)

		Convey("When the pipeline runs", func() {
			_, err := svc.Run(ctx)

			Convey("Then it fails rather than emitting an empty result", func() {
				So(errors.Is(err, app.ErrEmptyPopulation), ShouldBeTrue)
			})
		})
	})

	Convey("Given a store holding only unplayed players", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore()
		for _, id := range []string{"u1", "u2"} {
			So(store.PutSeasonAggregate(ctx, model.PlayerSeasonAggregate{
				PlayerID:   id,
				PlayerName: id,
			}), ShouldBeNil)
		}
		svc := app.New(store, store)

		Convey("When the pipeline runs", func() {
			_, err := svc.Run(ctx)

			Convey("Then exclusion leaves nobody to rate and the run fails", func() {
				So(errors.Is(err, app.ErrEmptyPopulation), ShouldBeTrue)
			})
		})
	})
}

func TestService_QualifyingFallback(t *testing.T) {
	Convey("Given a population below any qualifying threshold", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore()
		for i, minutes := range []float64{90, 120, 200} {
			So(store.PutSeasonAggregate(ctx, model.PlayerSeasonAggregate{
				PlayerID:      string(rune('a' + i)),
				PlayerName:    "Sub",
				CompetitionID: 2,
				Age:           22,
				MinutesPlayed: minutes,
				Counts:        model.EventCounts{Passes: minutes, CompletedPasses: minutes * 0.8},
			}), ShouldBeNil)
		}
		svc := app.New(store, store, app.WithSeed(3))

		Convey("When the pipeline runs", func() {
			summary, err := svc.Run(ctx)

			Convey("Then the fallback scaling still produces bounded ratings", func() {
				So(err, ShouldBeNil)
				So(summary.PlayersRated, ShouldEqual, 3)
				ratings, rerr := store.Ratings(ctx)
				So(rerr, ShouldBeNil)
				for _, r := range ratings {
					for _, v := range r.Attributes {
						So(v, ShouldBeGreaterThanOrEqualTo, 1)
						So(v, ShouldBeLessThanOrEqualTo, 20)
					}
				}
			})
		})
	})
}

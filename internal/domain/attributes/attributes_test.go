package attributes_test

import (
	"testing"

	"github.com/boztas13/footballers-overall-database/internal/domain/adjust"
	"github.com/boztas13/footballers-overall-database/internal/domain/attributes"
	"github.com/boztas13/footballers-overall-database/internal/domain/model"
	"github.com/boztas13/footballers-overall-database/internal/domain/rate"
	"github.com/boztas13/footballers-overall-database/internal/domain/scale"
	. "github.com/smartystreets/goconvey/convey"
)

func TestModel(t *testing.T) {
	Convey("Given the versioned attribute model", t, func() {
		defs := attributes.Model()

		Convey("Then it defines 25 attributes", func() {
			So(defs, ShouldHaveLength, 25)
		})

		Convey("Then every attribute's weights sum to 1.0", func() {
			for _, d := range defs {
				So(d.Validate(), ShouldBeNil)
			}
		})

		Convey("Then every category is represented", func() {
			seen := map[attributes.Category]int{}
			for _, d := range defs {
				seen[d.Category]++
			}
			So(seen[attributes.Technical], ShouldEqual, 7)
			So(seen[attributes.Physical], ShouldEqual, 5)
			So(seen[attributes.Mental], ShouldEqual, 6)
			So(seen[attributes.Defensive], ShouldEqual, 3)
			So(seen[attributes.Goalkeeping], ShouldEqual, 4)
		})

		Convey("Then attribute names are unique", func() {
			names := map[string]bool{}
			for _, d := range defs {
				So(names[d.Name], ShouldBeFalse)
				names[d.Name] = true
			}
		})
	})
}

func TestBaseValue(t *testing.T) {
	Convey("Given the documented passing fixture", t, func() {
		// passes=450, completed=400, key_passes=20, assists=3 over 900 minutes.
		agg := model.PlayerSeasonAggregate{
			PlayerID:      "fixture",
			CompetitionID: 2,  // coefficient 1.0
			Age:           27, // neutral band of the general curve
			MinutesPlayed: 900,
			Counts: model.EventCounts{
				Passes:          450,
				CompletedPasses: 400,
				KeyPasses:       20,
				Assists:         3,
			},
		}
		v, ok := rate.FromSeason(agg)
		So(ok, ShouldBeTrue)

		var passing attributes.Definition
		for _, d := range attributes.Model() {
			if d.Name == "passing" {
				passing = d
			}
		}
		So(passing.Name, ShouldEqual, "passing")

		Convey("When computing the pre-scale value with neutral context", func() {
			base := passing.BaseValue(v, adjust.NewLeagues(nil))

			Convey("Then the weighted sum reproduces the model exactly", func() {
				// 45.0*0.3 + (400/450*100)*0.25 + 2.0*0.25 + 0.3*0.2
				So(base, ShouldAlmostEqual, 36.2822, 0.0001)
			})
		})

		Convey("When the player is young and in a strong league", func() {
			boosted := agg
			boosted.Age = 20           // 1.1
			boosted.CompetitionID = 37 // 1.1
			bv, bok := rate.FromSeason(boosted)
			So(bok, ShouldBeTrue)

			base := passing.BaseValue(v, adjust.NewLeagues(nil))
			boostedBase := passing.BaseValue(bv, adjust.NewLeagues(nil))

			Convey("Then both factors multiply in", func() {
				So(boostedBase, ShouldAlmostEqual, base*1.1*1.1, 0.0001)
			})
		})
	})

	Convey("Given a ratio-based attribute and a zero denominator", t, func() {
		var finishing attributes.Definition
		for _, d := range attributes.Model() {
			if d.Name == "finishing" {
				finishing = d
			}
		}

		agg := model.PlayerSeasonAggregate{
			PlayerID:      "no-xg",
			CompetitionID: 2,
			Age:           27,
			MinutesPlayed: 900,
			Counts:        model.EventCounts{Goals: 2},
		}
		v, ok := rate.FromSeason(agg)
		So(ok, ShouldBeTrue)

		Convey("Then the epsilon offset keeps the value finite", func() {
			base := finishing.BaseValue(v, adjust.NewLeagues(nil))
			// goals_per90=0.2: 0.2*0.4 + 0*0.3 + (0.2/(0+0.1))*0.3 = 0.68
			So(base, ShouldAlmostEqual, 0.68, 0.0001)
		})
	})
}

func TestCalculator(t *testing.T) {
	Convey("Given a population of rate vectors", t, func() {
		calc := attributes.NewCalculator()

		vectors := make([]rate.Vector, 0, 6)
		profiles := []model.EventCounts{
			{Passes: 500, CompletedPasses: 460, KeyPasses: 25, Assists: 5, Shots: 20, Goals: 4, Dribbles: 40, DribblesSuccessful: 28},
			{Passes: 300, CompletedPasses: 210, Tackles: 60, TacklesWon: 40, Interceptions: 30, Clearances: 50, AerialDuels: 70, AerialDuelsWon: 40},
			{Passes: 250, CompletedPasses: 170, Saves: 45, GoalsConceded: 12, CleanSheets: 6},
			{Passes: 420, CompletedPasses: 350, Shots: 35, ShotsOnTarget: 16, Goals: 9, XG: 7.5, Dribbles: 60, DribblesSuccessful: 33},
			{Passes: 100, CompletedPasses: 60, Pressures: 200, Tackles: 25, TacklesWon: 12},
			{Passes: 50, CompletedPasses: 30},
		}
		for i, c := range profiles {
			agg := model.PlayerSeasonAggregate{
				PlayerID:      string(rune('a' + i)),
				CompetitionID: []int{2, 11, 9, 37, 55, 999}[i],
				Age:           18 + i*3,
				MinutesPlayed: []float64{900, 1800, 2400, 1200, 700, 120}[i],
				Counts:        c,
			}
			v, ok := rate.FromSeason(agg)
			So(ok, ShouldBeTrue)
			vectors = append(vectors, v)
		}

		Convey("When computing attribute vectors", func() {
			out := calc.Compute(vectors)

			Convey("Then every player gets every attribute", func() {
				So(out, ShouldHaveLength, len(vectors))
				for _, av := range out {
					So(len(av), ShouldEqual, 25)
				}
			})

			Convey("Then every rating lies in [1, 20]", func() {
				for _, av := range out {
					for name, v := range av {
						So(v, ShouldBeGreaterThanOrEqualTo, 1)
						So(v, ShouldBeLessThanOrEqualTo, 20)
						So(name, ShouldNotBeEmpty)
					}
				}
			})

			Convey("Then recomputing yields bit-identical vectors", func() {
				again := calc.Compute(vectors)
				So(again, ShouldResemble, out)
			})
		})

		Convey("When no player reaches the qualifying threshold", func() {
			strict := attributes.NewCalculator(
				attributes.WithScaler(scale.New(scale.WithMinMinutes(100000))),
			)
			out := strict.Compute(vectors)

			Convey("Then the fallback keeps all ratings bounded", func() {
				for _, av := range out {
					for _, v := range av {
						So(v, ShouldBeGreaterThanOrEqualTo, 1)
						So(v, ShouldBeLessThanOrEqualTo, 20)
					}
				}
			})
		})

		Convey("When the population is empty", func() {
			So(calc.Compute(nil), ShouldBeNil)
		})
	})
}

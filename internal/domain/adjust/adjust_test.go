package adjust_test

import (
	"testing"

	"github.com/boztas13/footballers-overall-database/internal/domain/adjust"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLeagues(t *testing.T) {
	Convey("Given the default league table", t, func() {
		l := adjust.NewLeagues(nil)

		Convey("Then known competitions resolve to their coefficients", func() {
			So(l.Coefficient(2), ShouldEqual, 1.0)
			So(l.Coefficient(37), ShouldEqual, 1.1)
			So(l.Coefficient(45), ShouldEqual, 0.75)
			So(l.Coefficient(11), ShouldEqual, 0.9)
		})

		Convey("Then unknown competitions default to 0.8", func() {
			So(l.Coefficient(12345), ShouldEqual, adjust.UnknownLeagueCoefficient)
		})

		Convey("Then every coefficient lies in [0.75, 1.1]", func() {
			for _, id := range []int{2, 49, 11, 12, 9, 37, 38, 55, 43, 50, 72, 44, 45, 999} {
				c := l.Coefficient(id)
				So(c, ShouldBeGreaterThanOrEqualTo, 0.75)
				So(c, ShouldBeLessThanOrEqualTo, 1.1)
			}
		})

		Convey("Then the prestige set contains the top-rated competitions", func() {
			So(l.Prestige(2), ShouldBeTrue)   // coeff 1.0
			So(l.Prestige(37), ShouldBeTrue)  // coeff 1.1
			So(l.Prestige(11), ShouldBeFalse) // coeff 0.9
			So(l.Prestige(12345), ShouldBeFalse)
		})

		Convey("Then the pressure factor is a bounded bonus", func() {
			So(l.PressureFactor(37), ShouldEqual, 1.1)
			So(l.PressureFactor(11), ShouldEqual, 1.0)
			So(l.PressureFactor(37), ShouldBeLessThanOrEqualTo, adjust.MaxBonus)
		})
	})

	Convey("Given a table with overrides", t, func() {
		l := adjust.NewLeagues(map[int]float64{11: 1.05, 777: 0.95})

		Convey("Then overrides win and defaults remain", func() {
			So(l.Coefficient(11), ShouldEqual, 1.05)
			So(l.Coefficient(777), ShouldEqual, 0.95)
			So(l.Coefficient(2), ShouldEqual, 1.0)
		})
	})
}

func TestAgeFactors(t *testing.T) {
	Convey("Given the general age curve", t, func() {
		Convey("Then the breakpoints match the rating model", func() {
			So(adjust.GeneralAgeCurve(17), ShouldEqual, 1.1)
			So(adjust.GeneralAgeCurve(21), ShouldEqual, 1.1)
			So(adjust.GeneralAgeCurve(22), ShouldEqual, 1.05)
			So(adjust.GeneralAgeCurve(25), ShouldEqual, 1.05)
			So(adjust.GeneralAgeCurve(26), ShouldEqual, 1.0)
			So(adjust.GeneralAgeCurve(30), ShouldEqual, 1.0)
			So(adjust.GeneralAgeCurve(31), ShouldEqual, 0.95)
		})

		Convey("Then the band form agrees with the function form", func() {
			for age := 16; age <= 40; age++ {
				So(adjust.AgeFactor(adjust.GeneralBands, age), ShouldEqual, adjust.GeneralAgeCurve(age))
			}
		})
	})

	Convey("Given the attribute-specific bands", t, func() {
		Convey("Then acceleration boosts only the young", func() {
			So(adjust.AgeFactor(adjust.YouthBoostBands, 23), ShouldEqual, 1.1)
			So(adjust.AgeFactor(adjust.YouthBoostBands, 24), ShouldEqual, 1.0)
		})

		Convey("Then stamina fades past 30", func() {
			So(adjust.AgeFactor(adjust.VeteranFadeBands, 30), ShouldEqual, 1.0)
			So(adjust.AgeFactor(adjust.VeteranFadeBands, 31), ShouldEqual, 0.9)
		})

		Convey("Then strength peaks between 25 and 30", func() {
			So(adjust.AgeFactor(adjust.PrimeStrengthBands, 24), ShouldEqual, 1.0)
			So(adjust.AgeFactor(adjust.PrimeStrengthBands, 25), ShouldEqual, 1.05)
			So(adjust.AgeFactor(adjust.PrimeStrengthBands, 30), ShouldEqual, 1.05)
			So(adjust.AgeFactor(adjust.PrimeStrengthBands, 31), ShouldEqual, 1.0)
		})

		Convey("Then leadership rewards veterans the most", func() {
			So(adjust.AgeFactor(adjust.LeadershipBands, 27), ShouldEqual, 1.0)
			So(adjust.AgeFactor(adjust.LeadershipBands, 28), ShouldEqual, 1.2)
		})

		Convey("Then goalkeepers peak late", func() {
			So(adjust.AgeFactor(adjust.GKPeakBands, 27), ShouldEqual, 1.0)
			So(adjust.AgeFactor(adjust.GKPeakBands, 28), ShouldEqual, 1.1)
			So(adjust.AgeFactor(adjust.GKPeakBands, 32), ShouldEqual, 1.1)
			So(adjust.AgeFactor(adjust.GKPeakBands, 33), ShouldEqual, 1.0)
		})
	})
}

func TestVersatilityFactor(t *testing.T) {
	Convey("Given the versatility factor", t, func() {
		Convey("When all position scores are equal", func() {
			So(adjust.VersatilityFactor([4]float64{10, 10, 10, 10}), ShouldEqual, 1.0)
		})

		Convey("When the spread is moderate", func() {
			// 1 + 0.1*(12-8)/12
			So(adjust.VersatilityFactor([4]float64{8, 10, 11, 12}), ShouldAlmostEqual, 1.0333, 0.0001)
		})

		Convey("When the spread is extreme", func() {
			Convey("Then the factor stays within the bonus cap", func() {
				f := adjust.VersatilityFactor([4]float64{0, 0, 0, 100})
				So(f, ShouldBeLessThanOrEqualTo, adjust.MaxBonus)
			})
		})

		Convey("When all scores are zero", func() {
			So(adjust.VersatilityFactor([4]float64{0, 0, 0, 0}), ShouldEqual, 1.0)
		})
	})
}

package config_test

import (
	"runtime"
	"testing"

	"github.com/boztas13/footballers-overall-database/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.DBPath, convey.ShouldEqual, "")
			convey.So(cfg.MinMinutes, convey.ShouldEqual, 500)
			convey.So(cfg.Seed, convey.ShouldEqual, 0)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.MetricsAddr, convey.ShouldEqual, "")
		})
	})
}

func TestConfig_LeagueOverrides(t *testing.T) {
	convey.Convey("Given a config with league coefficient overrides", t, func() {
		cfg := config.New()
		cfg.LeagueCoefficients = map[string]float64{
			"37":    1.2,
			"999":   0.7,
			"bogus": 1.5,
		}

		convey.Convey("When converting to the integer-keyed form", func() {
			overrides := cfg.LeagueOverrides()

			convey.Convey("Then numeric keys survive and malformed keys are dropped", func() {
				convey.So(overrides, convey.ShouldResemble, map[int]float64{37: 1.2, 999: 0.7})
			})
		})
	})

	convey.Convey("Given a config without overrides", t, func() {
		cfg := config.New()

		convey.Convey("Then the converted form is nil", func() {
			convey.So(cfg.LeagueOverrides(), convey.ShouldBeNil)
		})
	})
}

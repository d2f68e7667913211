package config_test

import (
	"errors"
	"runtime"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/roboscout/internal/config"
	"github.com/okian/roboscout/internal/domain/tuning"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.ChampionshipEvent, convey.ShouldEqual, "MXCMP")
			convey.So(cfg.LoadConcurrency, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.Tuning.Version, convey.ShouldEqual, tuning.Version)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})

	convey.Convey("Given a config with bad fields", t, func() {
		cfg := config.New()

		convey.Convey("When the log format is unknown", func() {
			cfg.LogFormat = "xml"
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When the tuning bounds are inverted", func() {
			cfg.Tuning.Prediction.MinProbability = 0.5
			cfg.Tuning.Prediction.MaxProbability = 0.5
			convey.So(cfg.Validate(), convey.ShouldBeNil)
			cfg.Tuning.Prediction.MaxProbability = 1.5
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When the level uses mixed case", func() {
			cfg.LogLevel = " DEBUG "
			convey.So(cfg.Validate(), convey.ShouldBeNil)
			convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
		})
	})
}

package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/roboscout/internal/config"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		isolate(t)

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldResemble, config.New())
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			t.Setenv("ROBOSCOUT_ADDR", ":8080")
			t.Setenv("ROBOSCOUT_LOG_FORMAT", "json")
			t.Setenv("ROBOSCOUT_CHAMPIONSHIP_EVENT", "USCMP")
			t.Setenv("ROBOSCOUT_LOAD_CONCURRENCY", "3")
			t.Setenv("ROBOSCOUT_FIXTURE_REFRESH", "5m")
			t.Setenv("ROBOSCOUT_TUNING__STRENGTH__FLOOR", "0.7")
			t.Setenv("ROBOSCOUT_TUNING__EVOLUTION__PERFORMANCE_CEILING", "250")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults, nested keys included", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.ChampionshipEvent, convey.ShouldEqual, "USCMP")
				convey.So(cfg.LoadConcurrency, convey.ShouldEqual, 3)
				convey.So(cfg.FixtureRefresh, convey.ShouldEqual, 5*time.Minute)
				convey.So(cfg.Tuning.Strength.Floor, convey.ShouldEqual, 0.7)
				convey.So(cfg.Tuning.Evolution.PerformanceCeiling, convey.ShouldEqual, 250)
				convey.So(cfg.Tuning.Strength.Span, convey.ShouldEqual, config.New().Tuning.Strength.Span)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			path := writeFile(t, "config.yaml", `
addr: ":9090"
season: 2026
max_team_results: 10
tuning:
  version: v2
  prediction:
    spread_fraction: 0.2
`)
			t.Setenv("ROBOSCOUT_CONFIG", path)
			t.Setenv("ROBOSCOUT_ADDR", ":8080")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")                          // env
				convey.So(cfg.Season, convey.ShouldEqual, 2026)                           // file
				convey.So(cfg.MaxTeamResults, convey.ShouldEqual, 10)                     // file
				convey.So(cfg.Tuning.Version, convey.ShouldEqual, "v2")                   // file
				convey.So(cfg.Tuning.Prediction.SpreadFraction, convey.ShouldEqual, 0.2)  // file
				convey.So(cfg.Tuning.Prediction.MaxProbability, convey.ShouldEqual, 0.98) // default
			})
		})

		convey.Convey("When a .env file is present", func() {
			t.Setenv("ROBOSCOUT_ENV_FILE", writeFile(t, "local.env", "ROBOSCOUT_SEASON=2030\nROBOSCOUT_ADDR=:7000\n"))
			t.Setenv("ROBOSCOUT_ADDR", ":6000")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it fills in unset variables only", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Season, convey.ShouldEqual, 2030)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6000")
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			t.Setenv("ROBOSCOUT_CONFIG", writeFile(t, "bad.yaml", `invalid: yaml: content: [`))

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			t.Setenv("ROBOSCOUT_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			t.Setenv("ROBOSCOUT_ADDR", "")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the tuning is out of range", func() {
			t.Setenv("ROBOSCOUT_TUNING__EVOLUTION__AWARD_SHARE", "3")

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			t.Setenv("ROBOSCOUT_SEASON", "not_a_number")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// isolate clears every ROBOSCOUT_ variable left by an earlier path and points
// the .env lookup at a missing file so a local .env never leaks into tests.
func isolate(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		if key, _, _ := strings.Cut(kv, "="); strings.HasPrefix(key, config.EnvPrefix) {
			t.Setenv(key, "")
			_ = os.Unsetenv(key)
		}
	}
	t.Setenv(config.EnvDotFile, filepath.Join(t.TempDir(), "none.env"))
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

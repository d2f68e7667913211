// Package config defines service configuration structures and loading hooks.
//
// Conventions:
//   - Provide New() to build a Config with defaults.
//   - Load layers .env, YAML and environment variables on top of New().
//   - External errors are wrapped with this package's sentinel errors.
package config

import (
	"runtime"
	"time"

	"github.com/okian/roboscout/internal/domain/tuning"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn warning error"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr" validate:"required"`

	// FixtureDir is a season directory preloaded on start. Empty starts with
	// an empty catalog.
	FixtureDir string `koanf:"fixture_dir"`

	// FixtureRefresh reloads FixtureDir on this interval. Zero disables it.
	FixtureRefresh time.Duration `koanf:"fixture_refresh" validate:"min=0"`

	// ChampionshipEvent is the event code whose roster marks advancement.
	ChampionshipEvent string `koanf:"championship_event"`

	// Season is assigned to scouting data recorded without one.
	Season int `koanf:"season" validate:"gt=0"`

	// LoadConcurrency bounds concurrent fixture reads.
	LoadConcurrency int `koanf:"load_concurrency" validate:"gt=0"`

	// MaxTeamResults caps team search results.
	MaxTeamResults int `koanf:"max_team_results" validate:"gt=0"`

	// WriteRateLimit caps state-changing API requests per second, shared
	// across endpoints. Zero disables it.
	WriteRateLimit float64 `koanf:"write_rate_limit" validate:"min=0"`

	// WriteBurst is the number of writes allowed above the rate at once.
	WriteBurst int `koanf:"write_burst" validate:"min=0"`

	// Tuning holds every analytics weight.
	Tuning tuning.Weights `koanf:"tuning" validate:"-"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		ChampionshipEvent: "MXCMP",
		Season:            2025,
		LoadConcurrency:   runtime.NumCPU(),
		MaxTeamResults:    50,
		WriteRateLimit:    50,
		WriteBurst:        100,
		Tuning:            tuning.Default(),
	}
}

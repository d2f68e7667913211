package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	service "github.com/okian/roboscout/internal/app"
	"github.com/okian/roboscout/internal/domain/tuning"
	"github.com/okian/roboscout/pkg/logger"
)

// ErrNoFixtureDir is returned when Run is given no season directory.
var ErrNoFixtureDir = errors.New("fixture directory is required")

// Config drives one offline report.
type Config struct {
	FixtureDir   string
	Championship string
	Events       []string
	Top          int
	JSON         bool
	Tuning       tuning.Weights
}

// Run loads the season directory, analyzes it and writes the report to w.
func Run(ctx context.Context, cfg Config, w io.Writer) error {
	if cfg.FixtureDir == "" {
		return ErrNoFixtureDir
	}

	opts := []service.Option{
		service.WithLogger(logger.Named("report")),
		service.WithFixtureDir(cfg.FixtureDir),
		service.WithTuning(cfg.Tuning),
	}
	if cfg.Championship != "" {
		opts = append(opts, service.WithChampionship(cfg.Championship))
	}
	svc := service.New(opts...)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	defer svc.Stop()

	analysis, err := svc.AnalyzeSeason(ctx, cfg.Events...)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	if cfg.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(analysis)
	}
	return Render(w, analysis, cfg.Top)
}

package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/okian/roboscout/internal/config"
	"github.com/okian/roboscout/internal/report"
	"github.com/okian/roboscout/pkg/logger"
)

const defaultTopN = 25

type options struct {
	dir          string
	events       string
	top          int
	championship string
	json         bool
}

func main() {
	var o options
	flag.StringVar(&o.dir, "dir", "", "Season fixture directory (default: fixture_dir from config)")
	flag.StringVar(&o.events, "events", "", "Comma separated event codes to analyze (default: all)")
	flag.IntVar(&o.top, "top", defaultTopN, "Number of teams in the power ranking, 0 for all")
	flag.StringVar(&o.championship, "championship", "", "Championship event code (default: championship_event from config)")
	flag.BoolVar(&o.json, "json", false, "Print the full analysis as JSON")
	flag.Parse()

	if err := logger.Init(logger.WithWriter(os.Stderr)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, o, os.Stdout)
	stop()
	_ = logger.Sync()
	if err != nil {
		os.Stderr.WriteString("analysis failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// run merges flags over the loaded configuration and prints the report.
func run(ctx context.Context, o options, w io.Writer) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	_ = logger.SetLevelString(cfg.LogLevel)

	rc := report.Config{
		FixtureDir:   cfg.FixtureDir,
		Championship: cfg.ChampionshipEvent,
		Events:       splitCodes(o.events),
		Top:          o.top,
		JSON:         o.json,
		Tuning:       cfg.Tuning,
	}
	if o.dir != "" {
		rc.FixtureDir = o.dir
	}
	if o.championship != "" {
		rc.Championship = o.championship
	}
	return report.Run(ctx, rc, w)
}

func splitCodes(s string) []string {
	var out []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, strings.ToUpper(c))
		}
	}
	return out
}

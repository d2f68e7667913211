// Package source loads season data from a directory of FTC API shaped JSON
// files.
//
// Layout:
//
//	<dir>/events.json   {"events": [RawEvent, ...]}
//	<dir>/<CODE>.json   {"rankings": [...], "matches": [...], "awards": [...]}
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/roboscout/internal/domain/model"
	"github.com/okian/roboscout/internal/domain/normalize"
	"github.com/okian/roboscout/pkg/logger"
	"github.com/okian/roboscout/pkg/metrics"
)

const (
	catalogFile        = "events.json"
	defaultConcurrency = 4
)

type catalog struct {
	Events []normalize.RawEvent `json:"events"`
}

// Fixture reads a season directory.
type Fixture struct {
	dir         string
	concurrency int
	log         logger.Logger
}

// Option configures a Fixture.
type Option func(*Fixture)

// WithConcurrency bounds the number of event files read at once.
func WithConcurrency(n int) Option {
	return func(f *Fixture) {
		if n > 0 {
			f.concurrency = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(f *Fixture) {
		if l != nil {
			f.log = l
		}
	}
}

// NewFixture creates a loader for dir.
func NewFixture(dir string, opts ...Option) *Fixture {
	f := &Fixture{dir: dir, concurrency: defaultConcurrency}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Catalog reads the season event list.
func (f *Fixture) Catalog(ctx context.Context) ([]normalize.RawEvent, error) {
	var c catalog
	if err := readJSON(filepath.Join(f.dir, catalogFile), &c); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return c.Events, nil
}

// Load reads and normalizes every cataloged event concurrently. Events are
// returned in catalog order; callers that fold them must build a
// model.Season. A missing event file yields an event without records.
func (f *Fixture) Load(ctx context.Context) ([]model.EventData, error) {
	start := time.Now()
	entries, err := f.Catalog(ctx)
	if err != nil {
		metrics.RecordErrorByComponent("source", "catalog")
		return nil, err
	}

	out := make([]model.EventData, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)
	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ev, err := f.LoadEvent(gctx, entry)
			if err != nil {
				return err
			}
			out[i] = ev
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		metrics.RecordErrorByComponent("source", "event")
		return nil, err
	}

	metrics.RecordFixtureLoadLatency(float64(time.Since(start).Microseconds()) / 1000)
	if f.log != nil {
		f.log.Info(ctx, "fixture loaded",
			logger.String("dir", f.dir),
			logger.Int("events", len(out)),
			logger.Duration("took", time.Since(start)),
		)
	}
	return out, nil
}

// LoadEvent reads the payload file of one cataloged event.
func (f *Fixture) LoadEvent(ctx context.Context, entry normalize.RawEvent) (model.EventData, error) {
	if entry.Code == "" {
		return model.EventData{}, ErrMissingCode
	}
	var payload normalize.RawEventPayload
	err := readJSON(filepath.Join(f.dir, entry.Code+".json"), &payload)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if f.log != nil {
			f.log.Warn(ctx, "event file missing, using empty event", logger.String("event", entry.Code))
		}
	case err != nil:
		return model.EventData{}, fmt.Errorf("event %s: %w", entry.Code, err)
	}
	payload.Event = entry
	return normalize.Event(payload), nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMalformed, filepath.Base(path), err)
	}
	return nil
}

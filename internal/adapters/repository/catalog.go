// Package repository holds the in-memory catalog of events, observation
// samples and pit inspections.
package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/cases"

	"github.com/okian/roboscout/internal/domain/model"
	"github.com/okian/roboscout/pkg/metrics"
)

type inspectionKey struct {
	season int
	team   int
}

// Catalog is a concurrency-safe, in-memory store.
type Catalog struct {
	mu           sync.RWMutex
	events       map[string]model.EventData
	observations map[string]model.ObservationSample
	inspections  map[inspectionKey]model.Inspection

	now        func() time.Time
	maxResults int
}

// NewCatalog creates an empty catalog.
func NewCatalog(opts ...Option) *Catalog {
	c := &Catalog{
		events:       make(map[string]model.EventData),
		observations: make(map[string]model.ObservationSample),
		inspections:  make(map[inspectionKey]model.Inspection),
		now:          time.Now,
		maxResults:   defaultMaxResults,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PutEvent stores ev under its code and reports whether it replaced one.
func (c *Catalog) PutEvent(ctx context.Context, ev model.EventData) (bool, error) {
	if strings.TrimSpace(ev.Code) == "" {
		metrics.RecordErrorByComponent("repository", "missing_code")
		return false, ErrMissingCode
	}
	c.mu.Lock()
	_, replaced := c.events[ev.Code]
	c.events[ev.Code] = ev
	c.mu.Unlock()
	c.publishSize(ctx)
	return replaced, nil
}

// Event returns the event with the given code.
func (c *Catalog) Event(ctx context.Context, code string) (model.EventData, error) {
	defer c.observeQuery(time.Now())
	c.mu.RLock()
	ev, ok := c.events[code]
	c.mu.RUnlock()
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return model.EventData{}, fmt.Errorf("event %q: %w", code, ErrNotFound)
	}
	return ev, nil
}

// Season returns the requested events in chronological order. No codes
// selects every stored event.
func (c *Catalog) Season(ctx context.Context, codes ...string) (model.Season, error) {
	defer c.observeQuery(time.Now())
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(codes) == 0 {
		all := make([]model.EventData, 0, len(c.events))
		for _, code := range c.sortedCodes() {
			all = append(all, c.events[code])
		}
		return model.NewSeason(all), nil
	}

	selected := make([]model.EventData, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		ev, ok := c.events[code]
		if !ok {
			metrics.RecordErrorByComponent("repository", "not_found")
			return model.Season{}, fmt.Errorf("event %q: %w", code, ErrNotFound)
		}
		selected = append(selected, ev)
	}
	return model.NewSeason(selected), nil
}

// PutObservation upserts s by id and reports whether it replaced a sample.
func (c *Catalog) PutObservation(ctx context.Context, s model.ObservationSample) (bool, error) {
	if s.ID == "" {
		metrics.RecordErrorByComponent("repository", "missing_id")
		return false, ErrMissingID
	}
	if s.RecordedAt.IsZero() {
		s.RecordedAt = c.now()
	}
	c.mu.Lock()
	_, replaced := c.observations[s.ID]
	c.observations[s.ID] = s
	c.mu.Unlock()
	c.publishSize(ctx)
	return replaced, nil
}

// Observations returns the samples of team ordered by recording time. An
// empty events list matches every event.
func (c *Catalog) Observations(ctx context.Context, team int, events ...string) []model.ObservationSample {
	defer c.observeQuery(time.Now())
	filter := make(map[string]struct{}, len(events))
	for _, e := range events {
		filter[e] = struct{}{}
	}

	c.mu.RLock()
	out := make([]model.ObservationSample, 0)
	for _, s := range c.observations {
		if s.TeamNumber != team {
			continue
		}
		if len(filter) > 0 {
			if _, ok := filter[s.EventCode]; !ok {
				continue
			}
		}
		out = append(out, s)
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].RecordedAt.Equal(out[j].RecordedAt) {
			return out[i].RecordedAt.Before(out[j].RecordedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// PutInspection upserts the inspection of a team for a season.
func (c *Catalog) PutInspection(ctx context.Context, in model.Inspection) error {
	if in.TeamNumber <= 0 {
		metrics.RecordErrorByComponent("repository", "invalid_team")
		return ErrInvalidTeam
	}
	if in.UpdatedAt.IsZero() {
		in.UpdatedAt = c.now()
	}
	c.mu.Lock()
	c.inspections[inspectionKey{season: in.Season, team: in.TeamNumber}] = in
	c.mu.Unlock()
	c.publishSize(ctx)
	return nil
}

// Inspection returns the inspection of team for season, if any.
func (c *Catalog) Inspection(ctx context.Context, season, team int) (model.Inspection, bool) {
	defer c.observeQuery(time.Now())
	c.mu.RLock()
	defer c.mu.RUnlock()
	in, ok := c.inspections[inspectionKey{season: season, team: team}]
	return in, ok
}

// Teams lists every team ranked at a stored event, by team number.
func (c *Catalog) Teams(ctx context.Context) []model.TeamRef {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.teams()
}

// FindTeams ranks teams by fuzzy match of query against "number name".
// An empty query returns the first teams by number. limit <= 0 uses the
// configured maximum.
func (c *Catalog) FindTeams(ctx context.Context, query string, limit int) []model.TeamRef {
	defer c.observeQuery(time.Now())
	if limit <= 0 || limit > c.maxResults {
		limit = c.maxResults
	}

	c.mu.RLock()
	teams := c.teams()
	c.mu.RUnlock()

	query = strings.TrimSpace(query)
	if query == "" {
		if len(teams) > limit {
			teams = teams[:limit]
		}
		return teams
	}

	// RankFindFold folds only for matching, not for Distance, so both sides
	// are folded up front to keep the ordering case-insensitive.
	fold := cases.Fold()
	targets := make([]string, len(teams))
	for i, t := range teams {
		targets[i] = fold.String(strconv.Itoa(t.TeamNumber) + " " + t.TeamName)
	}
	ranks := fuzzy.RankFind(fold.String(query), targets)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	out := make([]model.TeamRef, 0, min(limit, len(ranks)))
	for _, r := range ranks {
		if len(out) == limit {
			break
		}
		out = append(out, teams[r.OriginalIndex])
	}
	return out
}

// Counts returns the number of stored events, samples and inspections.
func (c *Catalog) Counts(ctx context.Context) (events, observations, inspections int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.events), len(c.observations), len(c.inspections)
}

// teams must be called with the lock held.
func (c *Catalog) teams() []model.TeamRef {
	names := make(map[int]string)
	for _, code := range c.sortedCodes() {
		for _, r := range c.events[code].Rankings {
			if cur, ok := names[r.TeamNumber]; !ok || (cur == "" && r.TeamName != "") {
				names[r.TeamNumber] = r.TeamName
			}
		}
	}
	out := make([]model.TeamRef, 0, len(names))
	for n, name := range names {
		out = append(out, model.TeamRef{TeamNumber: n, TeamName: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamNumber < out[j].TeamNumber })
	return out
}

// sortedCodes must be called with the lock held.
func (c *Catalog) sortedCodes() []string {
	codes := make([]string, 0, len(c.events))
	for code := range c.events {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func (c *Catalog) publishSize(ctx context.Context) {
	events, observations, inspections := c.Counts(ctx)
	metrics.UpdateCatalogSize(events, observations, inspections)
}

func (c *Catalog) observeQuery(start time.Time) {
	metrics.RecordCatalogQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
}

// Package service provides the analytics service that implements the
// dependencies required by the HTTP API and the report CLI.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/okian/roboscout/internal/adapters/repository"
	"github.com/okian/roboscout/internal/adapters/source"
	"github.com/okian/roboscout/internal/domain/advancement"
	"github.com/okian/roboscout/internal/domain/evolution"
	"github.com/okian/roboscout/internal/domain/model"
	"github.com/okian/roboscout/internal/domain/normalize"
	"github.com/okian/roboscout/internal/domain/prediction"
	"github.com/okian/roboscout/internal/domain/projection"
	"github.com/okian/roboscout/internal/domain/stats"
	"github.com/okian/roboscout/internal/domain/strength"
	"github.com/okian/roboscout/internal/domain/tuning"
	"github.com/okian/roboscout/pkg/logger"
	"github.com/okian/roboscout/pkg/metrics"
)

// Default configuration values.
const (
	DefaultChampionship    = "MXCMP"
	DefaultSeason          = 2025
	defaultLoadConcurrency = 4
	defaultMaxTeamResults  = 50
	allianceSize           = 2
)

var validate = validator.New()

// Service implements the API dependencies for the analytics system.
type Service struct {
	mu sync.RWMutex

	catalog *repository.Catalog

	// Configuration
	weights         tuning.Weights
	championship    string
	season          int
	fixtureDir      string
	loadConcurrency int
	maxTeamResults  int
	now             func() time.Time

	// State
	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTuning sets the weights used by every analytics component.
func WithTuning(w tuning.Weights) Option {
	return func(s *Service) {
		s.weights = w
	}
}

// WithChampionship sets the event code whose roster marks advancement.
func WithChampionship(code string) Option {
	return func(s *Service) {
		s.championship = strings.TrimSpace(code)
	}
}

// WithSeason sets the season assigned to observations and inspections that
// arrive without one.
func WithSeason(season int) Option {
	return func(s *Service) {
		if season > 0 {
			s.season = season
		}
	}
}

// WithFixtureDir preloads the catalog from a fixture directory on Start.
func WithFixtureDir(dir string) Option {
	return func(s *Service) {
		s.fixtureDir = dir
	}
}

// WithLoadConcurrency bounds concurrent fixture reads.
func WithLoadConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.loadConcurrency = n
		}
	}
}

// WithMaxTeamResults caps team search results.
func WithMaxTeamResults(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxTeamResults = n
		}
	}
}

// WithClock sets the clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		weights:         tuning.Default(),
		championship:    DefaultChampionship,
		season:          DefaultSeason,
		loadConcurrency: defaultLoadConcurrency,
		maxTeamResults:  defaultMaxTeamResults,
		now:             time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start validates configuration, creates the catalog and loads fixtures.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	if err := tuning.Validate(s.weights); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTuning, err)
	}

	s.logger.Info(ctx, "starting analytics service...")

	s.catalog = repository.NewCatalog(
		repository.WithClock(s.now),
		repository.WithMaxResults(s.maxTeamResults),
	)

	if _, err := s.loadFixtures(ctx, s.catalog); err != nil {
		return err
	}

	s.started = true
	events, _, _ := s.catalog.Counts(ctx)
	s.logger.Info(ctx, "analytics service started",
		logger.String("tuning", s.weights.Version),
		logger.String("championship", s.championship),
		logger.Int("season", s.season),
		logger.Int("events", events),
	)

	return nil
}

// Stop marks the service stopped. The catalog is kept in memory only.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "analytics service stopped")
}

// Reload re-reads the fixture directory and upserts every event into the
// catalog. It returns the number of events loaded; without a fixture
// directory it is a no-op.
func (s *Service) Reload(ctx context.Context) (int, error) {
	c, err := s.store()
	if err != nil {
		return 0, err
	}
	n, err := s.loadFixtures(ctx, c)
	if err != nil {
		s.logger.Error(ctx, "fixture reload failed", logger.Error(err))
		return 0, err
	}
	if n > 0 {
		s.logger.Info(ctx, "fixtures reloaded", logger.Int("events", n))
	}
	return n, nil
}

// Weights returns the active tuning.
func (s *Service) Weights() tuning.Weights {
	return s.weights
}

// IngestEvent normalizes and stores a raw event payload, replacing any
// event with the same code.
func (s *Service) IngestEvent(ctx context.Context, raw normalize.RawEventPayload) (EventInfo, error) {
	c, err := s.store()
	if err != nil {
		return EventInfo{}, err
	}
	if strings.TrimSpace(raw.Event.Code) == "" {
		return EventInfo{}, fmt.Errorf("%w: event code is required", ErrInvalidRequest)
	}

	ev := normalize.Event(raw)
	replaced, err := c.PutEvent(ctx, ev)
	if err != nil {
		return EventInfo{}, err
	}
	metrics.RecordEventIngested()
	s.logger.Info(ctx, "event ingested",
		logger.String("event", ev.Code),
		logger.Int("rankings", len(ev.Rankings)),
		logger.Int("matches", len(ev.Matches)),
		logger.Bool("replaced", replaced),
	)
	return describe(ev), nil
}

// Events lists stored events chronologically.
func (s *Service) Events(ctx context.Context) ([]EventInfo, error) {
	c, err := s.store()
	if err != nil {
		return nil, err
	}
	season, err := c.Season(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]EventInfo, 0, season.Len())
	for _, ev := range season.Events() {
		out = append(out, describe(ev))
	}
	return out, nil
}

// RecordObservation validates and upserts a scouting sample. A sample
// without id gets a new one.
func (s *Service) RecordObservation(ctx context.Context, sample model.ObservationSample) (model.ObservationSample, error) {
	c, err := s.store()
	if err != nil {
		return model.ObservationSample{}, err
	}
	if err := validate.Struct(sample); err != nil {
		metrics.RecordErrorByComponent("service", "validation")
		return model.ObservationSample{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if sample.ID == "" {
		sample.ID = uuid.NewString()
	}
	if sample.Season == 0 {
		sample.Season = s.season
	}
	if sample.Parking == "" {
		sample.Parking = model.ParkingNone
	}
	if sample.RecordedAt.IsZero() {
		sample.RecordedAt = s.now()
	}

	replaced, err := c.PutObservation(ctx, sample)
	if err != nil {
		return model.ObservationSample{}, err
	}
	metrics.RecordObservation(replaced)
	s.logger.Debug(ctx, "observation recorded",
		logger.String("id", sample.ID),
		logger.Int("team", sample.TeamNumber),
		logger.String("event", sample.EventCode),
		logger.Bool("replaced", replaced),
	)
	return sample, nil
}

// Observations lists the samples of team, optionally limited to events.
func (s *Service) Observations(ctx context.Context, team int, events ...string) ([]model.ObservationSample, error) {
	c, err := s.store()
	if err != nil {
		return nil, err
	}
	if team <= 0 {
		return nil, fmt.Errorf("%w: invalid team %d", ErrInvalidRequest, team)
	}
	return c.Observations(ctx, team, events...), nil
}

// SetInspection upserts a team's pit inspection.
func (s *Service) SetInspection(ctx context.Context, in model.Inspection) (model.Inspection, error) {
	c, err := s.store()
	if err != nil {
		return model.Inspection{}, err
	}
	if err := validate.Struct(in); err != nil {
		metrics.RecordErrorByComponent("service", "validation")
		return model.Inspection{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if in.Season == 0 {
		in.Season = s.season
	}
	in.UpdatedAt = s.now()
	if err := c.PutInspection(ctx, in); err != nil {
		return model.Inspection{}, err
	}
	return in, nil
}

// AnalyzeSeason summarizes the selected events, derives their strength,
// folds every team's season and resolves championship advancement. No
// codes selects every stored event.
func (s *Service) AnalyzeSeason(ctx context.Context, codes ...string) (Analysis, error) {
	start := time.Now()
	c, err := s.store()
	if err != nil {
		return Analysis{}, err
	}
	season, err := c.Season(ctx, codes...)
	if err != nil {
		return Analysis{}, err
	}

	w := s.weights
	summaries := strength.SummarizeSeason(season)
	coefficients := strength.Coefficients(summaries, w.Strength)
	strength.Apply(summaries, coefficients, w.Strength)
	teams := evolution.Aggregate(season, coefficients, w)

	out := Analysis{
		TuningVersion: w.Version,
		Events:        summaries,
	}
	if s.championship != "" {
		if champ, err := c.Event(ctx, s.championship); err == nil {
			teams = advancement.Resolve(teams, advancement.Roster(champ))
			out.Championship = champ.Code
		} else {
			s.logger.Debug(ctx, "championship event not in catalog", logger.String("event", s.championship))
		}
	}
	out.Teams = teams

	advanced := 0
	for _, t := range teams {
		if t.Advanced {
			advanced++
		}
	}
	took := time.Since(start)
	metrics.RecordAnalysis(float64(took.Microseconds())/1000, len(teams), advanced)
	s.logger.Info(ctx, "season analyzed",
		logger.Int("events", season.Len()),
		logger.Int("teams", len(teams)),
		logger.Int("advanced", advanced),
		logger.Duration("took", took),
	)
	return out, nil
}

// TeamStats aggregates season statistics over the selected events and
// applies q's filters and ordering.
func (s *Service) TeamStats(ctx context.Context, q TeamQuery) ([]model.TeamStats, error) {
	c, err := s.store()
	if err != nil {
		return nil, err
	}
	season, err := c.Season(ctx, q.Events...)
	if err != nil {
		return nil, err
	}
	out := stats.Aggregate(season)
	if strings.TrimSpace(q.Query) != "" {
		matches := c.FindTeams(ctx, q.Query, s.maxTeamResults)
		found := make([]model.TeamStats, 0, len(matches))
		for _, m := range matches {
			if st, ok := stats.Find(out, m.TeamNumber); ok {
				found = append(found, st)
			}
		}
		out = found
	}
	if q.AdvancedOnly {
		out = stats.Advanced(out)
	}
	if err := stats.Sort(out, q.SortBy); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return out, nil
}

// SearchTeams fuzzy-matches teams by number and name.
func (s *Service) SearchTeams(ctx context.Context, query string) ([]model.TeamRef, error) {
	c, err := s.store()
	if err != nil {
		return nil, err
	}
	return c.FindTeams(ctx, query, s.maxTeamResults), nil
}

// ProjectTeam estimates team's points in a hypothetical match. Season
// statistics cover every stored event; events limits which observation
// samples count. A team with neither statistics nor samples is not found.
func (s *Service) ProjectTeam(ctx context.Context, team int, events ...string) (model.TeamProjection, error) {
	c, err := s.store()
	if err != nil {
		return model.TeamProjection{}, err
	}
	season, err := c.Season(ctx)
	if err != nil {
		return model.TeamProjection{}, err
	}
	return s.project(ctx, c, stats.Aggregate(season), team, events)
}

// SimulateMatch projects every team and predicts the match. Each alliance
// must field exactly two distinct teams.
func (s *Service) SimulateMatch(ctx context.Context, req SimulationRequest) (model.MatchProjection, error) {
	c, err := s.store()
	if err != nil {
		return model.MatchProjection{}, err
	}
	if err := req.validate(); err != nil {
		metrics.RecordErrorByComponent("service", "validation")
		return model.MatchProjection{}, err
	}

	season, err := c.Season(ctx)
	if err != nil {
		return model.MatchProjection{}, err
	}
	all := stats.Aggregate(season)

	side := func(teams []int) ([]model.TeamProjection, error) {
		out := make([]model.TeamProjection, 0, len(teams))
		for _, n := range teams {
			p, err := s.project(ctx, c, all, n, req.Events)
			if err != nil {
				return nil, err
			}
			if adj, ok := req.Adjustments[n]; ok {
				p.ProjectedPoints = max(0, p.ProjectedPoints+adj)
			}
			out = append(out, p)
		}
		return out, nil
	}
	red, err := side(req.Red)
	if err != nil {
		return model.MatchProjection{}, err
	}
	blue, err := side(req.Blue)
	if err != nil {
		return model.MatchProjection{}, err
	}

	verdict := prediction.Predict(red, blue, s.weights.Prediction)
	metrics.RecordSimulation(verdict.RedWinProbability)
	s.logger.Info(ctx, "match simulated",
		logger.Any("red", req.Red),
		logger.Any("blue", req.Blue),
		logger.Int("red_score", verdict.Red.Score),
		logger.Int("blue_score", verdict.Blue.Score),
		logger.Float64("red_win_probability", verdict.RedWinProbability),
	)
	return verdict, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := map[string]interface{}{
		"started":      s.started,
		"tuning":       s.weights.Version,
		"championship": s.championship,
		"season":       s.season,
	}

	if s.started {
		ctx := context.Background()
		events, observations, inspections := s.catalog.Counts(ctx)
		out["events"] = events
		out["observations"] = observations
		out["inspections"] = inspections
		out["teams"] = len(s.catalog.Teams(ctx))

		metrics.UpdateCatalogSize(events, observations, inspections)
	}

	return out
}

func (s *Service) project(
	ctx context.Context,
	c *repository.Catalog,
	all []model.TeamStats,
	team int,
	events []string,
) (model.TeamProjection, error) {
	samples := c.Observations(ctx, team, events...)
	st, ok := stats.Find(all, team)
	if !ok && len(samples) == 0 {
		metrics.RecordErrorByComponent("service", "not_found")
		return model.TeamProjection{}, fmt.Errorf("team %d: %w", team, ErrNotFound)
	}
	st.TeamNumber = team

	var inspection *model.Inspection
	if in, found := c.Inspection(ctx, s.season, team); found {
		inspection = &in
	}

	p := projection.Estimate(st, samples, inspection, s.weights.Projection, s.weights.Observation)
	metrics.RecordProjection()
	return p, nil
}

func (s *Service) loadFixtures(ctx context.Context, c *repository.Catalog) (int, error) {
	if s.fixtureDir == "" {
		return 0, nil
	}
	fixture := source.NewFixture(s.fixtureDir,
		source.WithConcurrency(s.loadConcurrency),
		source.WithLogger(s.logger.Named("fixture")),
	)
	events, err := fixture.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load fixtures: %w", err)
	}
	for _, ev := range events {
		if _, err := c.PutEvent(ctx, ev); err != nil {
			return 0, fmt.Errorf("store event %s: %w", ev.Code, err)
		}
	}
	return len(events), nil
}

func (s *Service) store() (*repository.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.catalog, nil
}

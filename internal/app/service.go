// Package service provides the core business service that runs the
// advisory pipeline and implements the dependencies required by the
// HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fastbreak/internal/adapters/espn"
	"fastbreak/internal/adapters/notify"
	"fastbreak/internal/adapters/repository"
	"fastbreak/internal/domain/advice"
	"fastbreak/internal/domain/match"
	"fastbreak/internal/domain/model"
	"fastbreak/internal/domain/scoring"
	"fastbreak/internal/domain/types"
	"fastbreak/internal/report"
	"fastbreak/pkg/logger"
	"fastbreak/pkg/metrics"
)

// ProjectionSource supplies the projection table.
type ProjectionSource interface {
	Projections(ctx context.Context) ([]model.ProjectionRow, error)
}

// PlayerListSource supplies an ordered player name list (roster or
// waiver pool).
type PlayerListSource interface {
	Players(ctx context.Context) ([]string, error)
}

// LeagueSource supplies best-effort league data used to fill gaps in
// the spreadsheet inputs.
type LeagueSource interface {
	Configured() bool
	FetchLeague(ctx context.Context) (*espn.League, error)
}

// Service runs the advisory pipeline: load inputs, normalize, match,
// select and report. It keeps the latest snapshot for the HTTP surface.
type Service struct {
	mu sync.Mutex

	// Input sources
	projections  ProjectionSource
	rosterSource PlayerListSource
	waiverSource PlayerListSource
	league       LeagueSource
	leagueTeamID int

	// Core components
	normalizer *scoring.Normalizer
	builder    *report.Builder
	store      repository.Store
	notifier   notify.Notifier

	// State
	runs      int
	lastRunAt time.Time
	lastError error
	stopCh    chan struct{}
	started   bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithProjectionSource sets the projection table source.
func WithProjectionSource(src ProjectionSource) Option {
	return func(s *Service) {
		if src != nil {
			s.projections = src
		}
	}
}

// WithRosterSource sets the roster name list source.
func WithRosterSource(src PlayerListSource) Option {
	return func(s *Service) {
		if src != nil {
			s.rosterSource = src
		}
	}
}

// WithWaiverSource sets the waiver name list source.
func WithWaiverSource(src PlayerListSource) Option {
	return func(s *Service) {
		if src != nil {
			s.waiverSource = src
		}
	}
}

// WithLeagueSource sets the league fetch used as a roster fallback for
// the given team id.
func WithLeagueSource(src LeagueSource, teamID int) Option {
	return func(s *Service) {
		s.league = src
		s.leagueTeamID = teamID
	}
}

// WithNormalizer sets the category normalizer.
func WithNormalizer(n *scoring.Normalizer) Option {
	return func(s *Service) {
		if n != nil {
			s.normalizer = n
		}
	}
}

// WithReportBuilder sets the report builder.
func WithReportBuilder(b *report.Builder) Option {
	return func(s *Service) {
		if b != nil {
			s.builder = b
		}
	}
}

// WithStore sets the snapshot store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithNotifier sets the report delivery channel.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		normalizer: scoring.NewNormalizer(),
		builder:    report.NewBuilder(),
		store:      repository.NewMemStore(context.Background()),
		stopCh:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RunOnce executes one full advisory pass: fetch inputs, score, match,
// select, build and store the report, then deliver it. Data-quality
// problems degrade to warnings inside the report; only I/O failures
// surface as errors.
func (s *Service) RunOnce(ctx context.Context) (*report.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.logger == nil {
		s.logger = logger.Get()
	}
	start := time.Now()

	rows, err := s.loadProjections(ctx)
	if err != nil {
		metrics.RecordRunError()
		return nil, err
	}
	if len(rows) == 0 {
		s.logger.Warn(ctx, "projection table is empty; the run will produce no recommendation")
	}
	metrics.UpdateProjectionRows(len(rows))

	rosterNames := s.loadPlayers(ctx, "roster", s.rosterSource)
	if len(rosterNames) == 0 {
		rosterNames = s.rosterFromLeague(ctx)
	}
	waiverNames := s.loadPlayers(ctx, "waiver", s.waiverSource)
	metrics.UpdateRosterSize(len(rosterNames))
	metrics.UpdateWaiverSize(len(waiverNames))

	scored := s.normalizer.Normalize(rows)
	rosterMatched := match.Players(scored, rosterNames)
	waiverMatched := match.Players(scored, waiverNames)
	countMatches(rosterMatched)
	countMatches(waiverMatched)

	rec := advice.Select(rosterMatched, waiverMatched)
	rosterRanked := advice.RankRoster(rosterMatched)
	waiverRanked := advice.RankWaiver(waiverMatched)

	rep := s.builder.Build(report.Input{
		ProjectionCount: len(rows),
		Roster:          rosterMatched,
		Waiver:          waiverMatched,
		RosterRanked:    rosterRanked,
		WaiverRanked:    waiverRanked,
		Recommendation:  rec,
	})

	s.store.SetSnapshot(ctx, repository.Snapshot{
		Report:       rep,
		RosterRanked: rosterRanked,
		WaiverRanked: waiverRanked,
	})

	outcome := "none"
	if rec != nil {
		outcome = "emitted"
		s.logger.Info(ctx, "recommendation",
			logger.String("add", rec.Add),
			logger.String("drop", rec.Drop),
			logger.Float64("gain", rec.Gain),
		)
	} else {
		s.logger.Info(ctx, "no beneficial move found")
	}
	metrics.RecordRecommendation(outcome)
	metrics.RecordRun(float64(time.Since(start).Milliseconds()))
	s.runs++
	s.lastRunAt = time.Now()
	s.lastError = nil

	if s.notifier != nil {
		if err := s.notifier.Send(ctx, report.FormatSlack(rep)); err != nil {
			s.lastError = err
			return rep, fmt.Errorf("deliver report: %w", err)
		}
		s.logger.Info(ctx, "report delivered", logger.String("run_id", rep.RunID))
	}
	return rep, nil
}

// Start launches the periodic run loop for serve mode. A non-positive
// interval disables the loop.
func (s *Service) Start(ctx context.Context, interval time.Duration) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopCh:
				return
			case <-ticker.C:
				if _, err := s.RunOnce(ctx); err != nil {
					logger.Get().Error(ctx, "advisory run failed", logger.Error(err))
				}
			}
		}
	}()
}

// Stop terminates the periodic run loop.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
	s.started = false
}

func (s *Service) loadProjections(ctx context.Context) ([]model.ProjectionRow, error) {
	if s.projections == nil {
		return nil, nil
	}
	start := time.Now()
	rows, err := s.projections.Projections(ctx)
	metrics.RecordSourceFetchLatency("projections", float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordSourceFetch("projections", "error")
		return nil, fmt.Errorf("load projections: %w", err)
	}
	metrics.RecordSourceFetch("projections", "ok")
	return rows, nil
}

// loadPlayers degrades to an empty list on source failure: a broken
// sheet must not kill the daily run.
func (s *Service) loadPlayers(ctx context.Context, source string, src PlayerListSource) []string {
	if src == nil {
		return nil
	}
	start := time.Now()
	names, err := src.Players(ctx)
	metrics.RecordSourceFetchLatency(source, float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordSourceFetch(source, "error")
		s.logger.Warn(ctx, "player list fetch failed; continuing with empty list",
			logger.String("source", source), logger.Error(err))
		return nil
	}
	metrics.RecordSourceFetch(source, "ok")
	return names
}

// rosterFromLeague pulls the roster from league data when the sheet tab
// was empty. Best effort only.
func (s *Service) rosterFromLeague(ctx context.Context) []string {
	if s.league == nil || !s.league.Configured() || s.leagueTeamID == 0 {
		return nil
	}
	start := time.Now()
	league, err := s.league.FetchLeague(ctx)
	metrics.RecordSourceFetchLatency("league", float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordSourceFetch("league", "error")
		s.logger.Warn(ctx, "league fetch failed; roster stays empty", logger.Error(err))
		return nil
	}
	metrics.RecordSourceFetch("league", "ok")
	names := league.Roster(s.leagueTeamID)
	s.logger.Info(ctx, "roster taken from league data",
		logger.Int("team_id", s.leagueTeamID), logger.Int("players", len(names)))
	return names
}

func countMatches(players []model.MatchedPlayer) {
	for _, p := range players {
		if p.Matched() {
			metrics.RecordPlayerMatched()
		} else {
			metrics.RecordPlayerUnmatched()
		}
	}
}

// Latest returns the newest advisory snapshot.
func (s *Service) Latest(ctx context.Context) (repository.Snapshot, error) {
	return s.store.Latest(ctx)
}

// TopAdds returns up to n waiver entries, strongest first.
func (s *Service) TopAdds(ctx context.Context, n int) ([]types.Entry, error) {
	return s.store.TopAdds(ctx, n)
}

// DropCandidates returns up to n roster entries, weakest first.
func (s *Service) DropCandidates(ctx context.Context, n int) ([]types.Entry, error) {
	return s.store.DropCandidates(ctx, n)
}

// Rank returns the ranked entry for a player on either list.
func (s *Service) Rank(ctx context.Context, player string) (types.Entry, error) {
	return s.store.Rank(ctx, player)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := map[string]interface{}{
		"runs":           s.runs,
		"trackedPlayers": s.store.Count(context.Background()),
	}
	if !s.lastRunAt.IsZero() {
		stats["lastRunAt"] = s.lastRunAt.UTC().Format(time.RFC3339)
	}
	if s.lastError != nil {
		stats["lastError"] = s.lastError.Error()
	}
	return stats
}

package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"league-tracker/internal/config"
	"league-tracker/internal/constants"
	"league-tracker/internal/domain"
	"league-tracker/internal/feed"
	"league-tracker/internal/rank"
	"league-tracker/internal/repository"
	"league-tracker/internal/sheet"
	"league-tracker/internal/view"
)

// LeaderboardService owns the current leaderboard snapshot. A refresh is one
// pure pipeline pass (fetch -> ingest -> rank) producing a fresh snapshot;
// the only shared state is the installed snapshot pointer, swapped under a
// mutex with last-write-wins semantics so an overlapping manual refresh
// cannot be clobbered by a slower scheduled one.
type LeaderboardService struct {
	feed   *feed.Client
	repo   *repository.SnapshotRepository
	cfg    *config.Config
	logger zerolog.Logger

	mu           sync.RWMutex
	current      *domain.Snapshot
	rosters      []domain.MatchRoster
	refreshGen   uint64
	installedGen uint64
}

func NewLeaderboardService(client *feed.Client, repo *repository.SnapshotRepository, cfg *config.Config, logger zerolog.Logger) *LeaderboardService {
	return &LeaderboardService{
		feed:   client,
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}
}

// Refresh rebuilds the snapshot from the live feeds, falling back to the
// last stored feed text when a fetch fails. Both sheets are fetched
// concurrently. Partial success (skipped rows) is not an error; only a feed
// that cannot be read from either source fails the refresh.
func (s *LeaderboardService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.refreshGen++
	gen := s.refreshGen
	s.mu.Unlock()

	var (
		leaderboardText, rosterText     string
		leaderboardSource, rosterSource string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		leaderboardText, leaderboardSource, err = s.fetchWithFallback(gctx, s.cfg.FeedURL, repository.KindLeaderboard)
		return err
	})
	if s.cfg.RosterFeedURL != "" {
		g.Go(func() error {
			var err error
			rosterText, rosterSource, err = s.fetchWithFallback(gctx, s.cfg.RosterFeedURL, repository.KindRoster)
			if err != nil {
				// rosters are auxiliary; log and serve without them
				s.logger.Warn().Err(err).Msg("roster feed unavailable")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	res, err := sheet.IngestLeaderboard(leaderboardText)
	if err != nil {
		return fmt.Errorf("ingest leaderboard: %w", err)
	}

	// Global score ranking is the baseline projection: it assigns the ranks
	// the Apex tier naming depends on and derives missing tiers.
	rank.Assign(res.Players, rank.ByScore)

	snap := &domain.Snapshot{
		Players:   res.Players,
		Cities:    res.Cities,
		Sponsors:  res.Sponsors,
		FetchedAt: time.Now().UTC(),
		Source:    leaderboardSource,
	}

	var rosters []domain.MatchRoster
	if rosterText != "" {
		rosters, err = sheet.IngestRosters(rosterText, snap)
		if err != nil {
			s.logger.Warn().Err(err).Msg("roster feed not tabular, skipping rosters")
			rosters = nil
		}
	}

	s.mu.Lock()
	installed := gen >= s.installedGen
	if installed {
		s.current = snap
		s.rosters = rosters
		s.installedGen = gen
	}
	s.mu.Unlock()

	if !installed {
		s.logger.Debug().Uint64("gen", gen).Msg("refresh superseded by a later one")
		return nil
	}

	if leaderboardSource == domain.SourceFeed {
		s.persist(ctx, repository.KindLeaderboard, leaderboardText, len(res.Players))
	}
	if rosterText != "" && rosterSource == domain.SourceFeed {
		s.persist(ctx, repository.KindRoster, rosterText, len(rosters))
	}

	s.logger.Info().
		Int("players", len(res.Players)).
		Int("cities", len(res.Cities)).
		Int("rosters", len(rosters)).
		Str("source", leaderboardSource).
		Msg("snapshot refreshed")
	return nil
}

// fetchWithFallback tries the live feed first and falls back to the newest
// stored snapshot text. The engine is invoked identically either way.
func (s *LeaderboardService) fetchWithFallback(ctx context.Context, url, kind string) (string, string, error) {
	text, fetchErr := s.feed.Fetch(ctx, url)
	if fetchErr == nil {
		return text, domain.SourceFeed, nil
	}
	s.logger.Warn().Err(fetchErr).Str("kind", kind).Msg("feed fetch failed, trying stored snapshot")

	stored, fetchedAt, err := s.repo.Latest(ctx, kind)
	if err != nil {
		return "", "", fmt.Errorf("feed fetch failed (%w) and no stored snapshot available", fetchErr)
	}
	s.logger.Info().Str("kind", kind).Time("stored_at", fetchedAt).Msg("using stored snapshot")
	return stored, domain.SourceFallback, nil
}

func (s *LeaderboardService) persist(ctx context.Context, kind, text string, rows int) {
	if err := s.repo.Save(ctx, kind, text, rows); err != nil {
		s.logger.Warn().Err(err).Str("kind", kind).Msg("failed to persist feed snapshot")
	}
}

// View computes one leaderboard page. Filtering happens first, then ranks
// are re-derived from scratch over the filtered subset (a city rank is the
// rank within that city, not the global one), then the page is sliced.
func (s *LeaderboardService) View(key rank.SortKey, f view.Filter, page int) view.Page {
	snap := s.Snapshot()
	if snap == nil {
		return view.Build(nil, page, s.cfg.PageSize)
	}

	filtered := view.Apply(snap.Players, f)
	rank.Assign(filtered, key)
	return view.Build(filtered, page, s.cfg.PageSize)
}

// Cities returns the sorted canonical city set of the current snapshot.
func (s *LeaderboardService) Cities() []string {
	if snap := s.Snapshot(); snap != nil {
		return snap.Cities
	}
	return nil
}

// Player looks up one player case-insensitively by username.
func (s *LeaderboardService) Player(username string) (domain.Player, bool) {
	snap := s.Snapshot()
	if snap == nil {
		return domain.Player{}, false
	}
	for _, p := range snap.Players {
		if strings.EqualFold(p.Username, username) {
			return p, true
		}
	}
	return domain.Player{}, false
}

// Rosters returns the upcoming-match rosters of the current snapshot.
func (s *LeaderboardService) Rosters() []domain.MatchRoster {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rosters
}

// Snapshot returns the installed snapshot, or nil before the first refresh.
func (s *LeaderboardService) Snapshot() *domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Run performs an initial refresh and then refreshes on the configured
// interval until the context is cancelled. The initial failure is logged,
// not fatal: the first scheduled tick retries.
func (s *LeaderboardService) Run(ctx context.Context) {
	s.refreshOnce(ctx)

	ticker := time.NewTicker(s.cfg.RefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refreshOnce(ctx)
		}
	}
}

func (s *LeaderboardService) refreshOnce(ctx context.Context) {
	refreshCtx, cancel := context.WithTimeout(ctx, constants.RefreshTimeout)
	defer cancel()
	if err := s.Refresh(refreshCtx); err != nil {
		s.logger.Error().Err(err).Msg("refresh failed")
	}
}

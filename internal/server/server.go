package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"league-tracker/internal/constants"
	"league-tracker/internal/domain"
	"league-tracker/internal/rank"
	"league-tracker/internal/view"
)

// Leaderboard is the service surface the HTTP layer consumes.
type Leaderboard interface {
	View(key rank.SortKey, f view.Filter, page int) view.Page
	Cities() []string
	Player(username string) (domain.Player, bool)
	Rosters() []domain.MatchRoster
	Snapshot() *domain.Snapshot
	Refresh(ctx context.Context) error
}

type Server struct {
	svc    Leaderboard
	logger zerolog.Logger
}

func New(svc Leaderboard, logger zerolog.Logger) *Server {
	return &Server{svc: svc, logger: logger}
}

// Routes builds the API router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/leaderboard", s.handleLeaderboard)
		r.Get("/cities", s.handleCities)
		r.Get("/players/{username}", s.handlePlayer)
		r.Get("/matches/upcoming", s.handleMatches)
		r.Post("/refresh", s.handleRefresh)
	})
	return r
}

// handleLeaderboard serves one ranked page. Filter and sort arrive as query
// parameters; omitting page (or changing the filter client-side) starts at
// page 1.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	key := rank.ParseSortKey(q.Get("sort"))
	filter := view.Filter{
		City:  q.Get("city"),
		Query: q.Get("q"),
	}

	page := 1
	if raw := q.Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page = parsed
		}
	}

	result := s.svc.View(key, filter, page)

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"items":        result.Items,
		"current_page": result.CurrentPage,
		"total_pages":  result.TotalPages,
		"total_items":  result.TotalItems,
		"sort":         string(key),
		"city":         filter.City,
		"query":        filter.Query,
	})
}

func (s *Server) handleCities(w http.ResponseWriter, r *http.Request) {
	cities := s.svc.Cities()
	if cities == nil {
		cities = []string{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"cities": cities})
}

func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	player, ok := s.svc.Player(username)
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "player not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, player)
}

func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	rosters := s.svc.Rosters()
	if rosters == nil {
		rosters = []domain.MatchRoster{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"matches": rosters})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.RefreshTimeout)
	defer cancel()

	if err := s.svc.Refresh(ctx); err != nil {
		s.logger.Error().Err(err).Msg("manual refresh failed")
		s.errorResponse(w, http.StatusBadGateway, "refresh failed")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "refreshed"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	payload := map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	}
	if snap := s.svc.Snapshot(); snap != nil {
		payload["snapshot_at"] = snap.FetchedAt
		payload["snapshot_source"] = snap.Source
		payload["players"] = len(snap.Players)
	}
	s.jsonResponse(w, http.StatusOK, payload)
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// Package view applies display filters and pagination to a ranked snapshot.
// It is pure: the active filter, sort and page arrive as parameters and the
// caller owns resetting the page when the filtered set changes.
package view

import (
	"strings"

	"league-tracker/internal/domain"
)

// Filter is the active leaderboard filter. An empty or "all" city matches
// everyone. A non-empty Query bypasses the city filter entirely: search
// takes precedence.
type Filter struct {
	City  string
	Query string
}

// Page is one fixed-size slice of the filtered set plus pagination metadata.
type Page struct {
	Items       []domain.Player `json:"items"`
	CurrentPage int             `json:"current_page"`
	TotalPages  int             `json:"total_pages"`
	TotalItems  int             `json:"total_items"`
}

// Matches reports whether a player passes the filter.
func (f Filter) Matches(p *domain.Player) bool {
	if q := strings.TrimSpace(f.Query); q != "" {
		q = strings.ToLower(q)
		return strings.Contains(strings.ToLower(p.Username), q) ||
			strings.Contains(strings.ToLower(p.DisplayName), q)
	}
	if f.City == "" || strings.EqualFold(f.City, "all") {
		return true
	}
	for _, c := range p.Cities {
		if strings.EqualFold(c, f.City) {
			return true
		}
	}
	return false
}

// Apply returns the players passing the filter, preserving order.
func Apply(players []domain.Player, f Filter) []domain.Player {
	filtered := make([]domain.Player, 0, len(players))
	for i := range players {
		if f.Matches(&players[i]) {
			filtered = append(filtered, players[i])
		}
	}
	return filtered
}

// Build slices the already-filtered, already-ranked set into one page.
// Requesting a page beyond range yields an empty item list; it is not
// clamped here.
func Build(players []domain.Player, page, pageSize int) Page {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}

	total := len(players)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	end := start + pageSize
	items := []domain.Player{}
	if start < total {
		if end > total {
			end = total
		}
		items = players[start:end]
	}

	return Page{
		Items:       items,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
	}
}

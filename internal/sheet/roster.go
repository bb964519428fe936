package sheet

import (
	"strings"

	"league-tracker/internal/domain"
)

const (
	fieldMatch   = "match"
	fieldKickoff = "kickoff"
)

// RosterFields is the schema of the upcoming-matches sheet: one row per
// (match, player) pair.
func RosterFields() []Field {
	return []Field{
		{Name: fieldMatch, Aliases: []string{"Match", "Fixture", "Game"}, FixedIndex: 0},
		{Name: fieldKickoff, Aliases: []string{"Kickoff", "Date", "Time"}, FixedIndex: NotFound},
		{Name: FieldUsername, Aliases: []string{"PlayerUsername", "Username", "Player"}, FixedIndex: NotFound},
	}
}

// IngestRosters parses the upcoming-matches feed and groups rows into match
// rosters. Within one roster usernames are deduped case-insensitively; the
// first occurrence wins. Stats come from the given leaderboard snapshot,
// joined by lower-cased username.
func IngestRosters(text string, snap *domain.Snapshot) ([]domain.MatchRoster, error) {
	rows, err := tabularRows(text)
	if err != nil {
		return nil, err
	}

	cols := Resolve(rows[0], RosterFields())

	byUsername := make(map[string]domain.Player)
	if snap != nil {
		for _, p := range snap.Players {
			byUsername[strings.ToLower(p.Username)] = p
		}
	}

	var rosters []domain.MatchRoster
	index := make(map[string]int)            // match name -> rosters index
	seen := make(map[string]map[string]bool) // match name -> lowercased usernames
	for _, row := range rows[1:] {
		username := cols.Cell(row, FieldUsername)
		if isAbsent(username) {
			continue
		}
		match := cols.Cell(row, fieldMatch)
		if match == "" {
			continue
		}

		i, ok := index[match]
		if !ok {
			i = len(rosters)
			index[match] = i
			seen[match] = make(map[string]bool)
			rosters = append(rosters, domain.MatchRoster{
				Match:   match,
				Kickoff: cols.Cell(row, fieldKickoff),
			})
		}

		key := strings.ToLower(username)
		if seen[match][key] {
			continue
		}
		seen[match][key] = true

		rp := domain.RosterPlayer{
			Username:    username,
			DisplayName: displayName(username),
		}
		if p, ok := byUsername[key]; ok {
			rp.GlobalScore = p.GlobalScore
			rp.RankTier = p.RankTier
			rp.IsSponsor = p.IsSponsor
		}
		rosters[i].Players = append(rosters[i].Players, rp)
	}

	return rosters, nil
}

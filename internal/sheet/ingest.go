package sheet

import (
	"errors"
	"sort"
	"strings"

	"league-tracker/internal/domain"
)

// ErrNotTabular is the whole-input failure: the payload is recognizably not
// delimited data (an HTML error page, or nothing tabular at all). It is the
// only condition a caller should treat as a hard failure; rows that merely
// fail to normalize are skipped silently.
var ErrNotTabular = errors.New("sheet: input is not delimited data")

// Result is the structured output of one leaderboard ingestion pass.
type Result struct {
	Players  []domain.Player
	Cities   []string
	Sponsors map[string]bool
}

// IngestLeaderboard runs the full pipeline over one feed snapshot: tokenize,
// resolve the schema once against the header row, then normalize every data
// row. Rows with a blank or sentinel username are dropped. A syntactically
// valid but mostly-empty input yields an empty result, not an error.
func IngestLeaderboard(text string) (Result, error) {
	rows, err := tabularRows(text)
	if err != nil {
		return Result{}, err
	}

	cols := Resolve(rows[0], LeaderboardFields())

	res := Result{Sponsors: make(map[string]bool)}
	cities := make(map[string]bool)
	for _, row := range rows[1:] {
		p, ok := NormalizeRow(row, cols)
		if !ok {
			continue
		}
		p.IsSponsor = isYes(cols.Cell(row, FieldSponsor))
		res.Sponsors[strings.ToLower(p.Username)] = p.IsSponsor
		for _, c := range p.Cities {
			cities[c] = true
		}
		res.Players = append(res.Players, p)
	}

	// distinct cities, restricted to the canonical allow-list, sorted
	for _, c := range CanonicalCities {
		if cities[c] {
			res.Cities = append(res.Cities, c)
		}
	}
	sort.Strings(res.Cities)

	return res, nil
}

// tabularRows tokenizes and rejects payloads that are not delimited data.
func tabularRows(text string) ([][]string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || strings.HasPrefix(trimmed, "<") {
		return nil, ErrNotTabular
	}
	rows := Tokenize(text)
	if len(rows) == 0 {
		return nil, ErrNotTabular
	}
	return rows, nil
}

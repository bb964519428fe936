package sheet

import (
	"strconv"
	"strings"

	"league-tracker/internal/domain"
)

// Logical field names used across the leaderboard feed.
const (
	FieldUsername      = "username"
	FieldCity          = "city"
	FieldScore         = "score"
	FieldGames         = "games"
	FieldGoals         = "goals"
	FieldAssists       = "assists"
	FieldTeamWins      = "team_wins"
	FieldAttack        = "attack"
	FieldDefense       = "defense"
	FieldIndividual    = "individual"
	FieldTeam          = "team"
	FieldPoints        = "points"
	FieldMonthlyPoints = "monthly_points"
	FieldRankTier      = "rank_tier"
	FieldLevel         = "level"
	FieldRankLevel     = "rank_level"
	FieldStatus        = "status"
	FieldSponsor       = "sponsor"
)

// LeaderboardFields is the feed schema: per logical field, the ordered header
// aliases tried by the resolver. The sheet has renamed and reordered these
// columns more than once, hence the generous alias lists. The sponsor flag
// lives at a fixed sheet position regardless of header text, so it is
// addressed by column letter and never fuzzy-matched.
func LeaderboardFields() []Field {
	return []Field{
		{Name: FieldUsername, Aliases: []string{"PlayerUsername", "Username", "Player", "Pseudo"}, FixedIndex: NotFound},
		{Name: FieldCity, Aliases: []string{"City", "Ville"}, FixedIndex: NotFound},
		{Name: FieldScore, Aliases: []string{"Global Score", "Score"}, FixedIndex: NotFound},
		{Name: FieldGames, Aliases: []string{"Games Played", "Games", "Matches"}, FixedIndex: NotFound},
		{Name: FieldGoals, Aliases: []string{"Goals", "Buts"}, FixedIndex: NotFound},
		{Name: FieldAssists, Aliases: []string{"Assists", "Passes"}, FixedIndex: NotFound},
		{Name: FieldTeamWins, Aliases: []string{"Team Wins", "Wins"}, FixedIndex: NotFound},
		{Name: FieldAttack, Aliases: []string{"Attack Ratio", "Attack"}, FixedIndex: NotFound},
		{Name: FieldDefense, Aliases: []string{"Defense Ratio", "Defense"}, FixedIndex: NotFound},
		{Name: FieldIndividual, Aliases: []string{"Individual Score", "Individual"}, FixedIndex: NotFound},
		{Name: FieldTeam, Aliases: []string{"Team Score"}, FixedIndex: NotFound},
		{Name: FieldPoints, Aliases: []string{"Points"}, FixedIndex: NotFound},
		{Name: FieldMonthlyPoints, Aliases: []string{"MonthlyPoints", "Monthly Points", "Monthly"}, FixedIndex: NotFound},
		{Name: FieldRankTier, Aliases: []string{"Rank Tier", "Tier"}, FixedIndex: NotFound},
		{Name: FieldLevel, Aliases: []string{"Level", "Niveau"}, FixedIndex: NotFound},
		{Name: FieldRankLevel, Aliases: []string{"Rank Level"}, FixedIndex: NotFound},
		{Name: FieldStatus, Aliases: []string{"Payment Status", "Payment", "Statut"}, FixedIndex: NotFound},
		{Name: FieldSponsor, Letter: "AZ", FixedIndex: NotFound},
	}
}

// sentinels are spreadsheet error markers that stand in for real data. A cell
// holding one of these is absent, not zero and not an error.
var sentinels = map[string]bool{
	"#N/A":    true,
	"#REF!":   true,
	"#VALUE!": true,
	"#ERROR!": true,
}

func isAbsent(cell string) bool {
	return cell == "" || sentinels[cell]
}

// parseInt parses a required base-10 counter, defaulting to 0 on blank,
// sentinel or malformed cells.
func parseInt(cell string) int {
	if isAbsent(cell) {
		return 0
	}
	v, err := strconv.Atoi(cell)
	if err != nil {
		return 0
	}
	return v
}

// parseDecimal normalizes a comma decimal separator to a dot before parsing.
// "1,5" and "1.5" both yield 1.5.
func parseDecimal(cell string) (float64, bool) {
	if isAbsent(cell) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseRequiredFloat is parseDecimal with a zero default for required fields.
func parseRequiredFloat(cell string) float64 {
	v, _ := parseDecimal(cell)
	return v
}

// parseOptionalFloat returns nil when the cell is absent or malformed;
// absent values are excluded from aggregates downstream, zeros are not.
func parseOptionalFloat(cell string) *float64 {
	if v, ok := parseDecimal(cell); ok {
		return &v
	}
	return nil
}

// cityTable maps known feed spellings to canonical city names. Lookup is
// case-sensitive; unmatched names pass through unchanged.
var cityTable = map[string]string{
	"casablanca": "Casablanca",
	"Casa":       "Casablanca",
	"casa":       "Casablanca",
	"rabat":      "Rabat",
	"marrakech":  "Marrakech",
	"Marrakesh":  "Marrakech",
	"tanger":     "Tanger",
	"Tangier":    "Tanger",
	"agadir":     "Agadir",
	"fes":        "Fès",
	"Fes":        "Fès",
	"fès":        "Fès",
	"meknes":     "Meknès",
	"Meknes":     "Meknès",
	"oujda":      "Oujda",
	"kenitra":    "Kénitra",
	"Kenitra":    "Kénitra",
	"tetouan":    "Tétouan",
	"Tetouan":    "Tétouan",
	"el jadida":  "El Jadida",
	"El jadida":  "El Jadida",
}

// CanonicalCities is the allow-list for the derived distinct-city set.
var CanonicalCities = []string{
	"Agadir", "Casablanca", "El Jadida", "Fès", "Kénitra",
	"Marrakech", "Meknès", "Oujda", "Rabat", "Tanger", "Tétouan",
}

// CanonicalCity substitutes the canonical spelling for a known variant.
func CanonicalCity(raw string) string {
	raw = strings.TrimSpace(raw)
	if canonical, ok := cityTable[raw]; ok {
		return canonical
	}
	return raw
}

// splitCities canonicalizes a possibly multi-valued city cell. A player can
// be associated with more than one city; all are kept for filtering.
func splitCities(cell string) []string {
	if isAbsent(cell) {
		return nil
	}
	var cities []string
	for _, part := range strings.Split(cell, ",") {
		if c := CanonicalCity(part); c != "" {
			cities = append(cities, c)
		}
	}
	return cities
}

// derivePaymentStatus matches the lower-cased raw status cell; unmatched
// strings fall back on games played: never-played means a new player,
// anything else counts as unpaid.
func derivePaymentStatus(raw string, gamesPlayed int) domain.PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "sub", "subscription":
		return domain.PaymentSubscription
	case "payé", "paid":
		return domain.PaymentPaid
	case "non payé", "unpaid":
		return domain.PaymentUnpaid
	}
	if gamesPlayed == 0 {
		return domain.PaymentNewPlayer
	}
	return domain.PaymentUnpaid
}

// isYes recognizes the yes/no-like sponsor column values.
func isYes(cell string) bool {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "yes", "y", "oui", "true", "1", "x":
		return true
	}
	return false
}

// displayName is the first whitespace-delimited token of the username.
func displayName(username string) string {
	if fields := strings.Fields(username); len(fields) > 0 {
		return fields[0]
	}
	return username
}

// NormalizeRow converts one raw row into a Player. The second return is
// false when the row must be skipped: blank or sentinel username.
func NormalizeRow(row []string, cols Columns) (domain.Player, bool) {
	username := cols.Cell(row, FieldUsername)
	if isAbsent(username) {
		return domain.Player{}, false
	}

	cityCell := cols.Cell(row, FieldCity)
	games := parseInt(cols.Cell(row, FieldGames))

	p := domain.Player{
		Username:    username,
		DisplayName: displayName(username),
		City:        cityCell,
		Cities:      splitCities(cityCell),

		GlobalScore: parseRequiredFloat(cols.Cell(row, FieldScore)),
		GamesPlayed: games,
		Goals:       parseInt(cols.Cell(row, FieldGoals)),
		Assists:     parseInt(cols.Cell(row, FieldAssists)),
		TeamWins:    parseInt(cols.Cell(row, FieldTeamWins)),

		AttackRatio:     parseOptionalFloat(cols.Cell(row, FieldAttack)),
		DefenseRatio:    parseOptionalFloat(cols.Cell(row, FieldDefense)),
		IndividualScore: parseOptionalFloat(cols.Cell(row, FieldIndividual)),
		TeamScore:       parseOptionalFloat(cols.Cell(row, FieldTeam)),
		Points:          parseOptionalFloat(cols.Cell(row, FieldPoints)),
		MonthlyPoints:   parseOptionalFloat(cols.Cell(row, FieldMonthlyPoints)),

		Level:     cols.Cell(row, FieldLevel),
		RankLevel: cols.Cell(row, FieldRankLevel),
	}

	if tier := cols.Cell(row, FieldRankTier); !isAbsent(tier) {
		p.RankTier = tier
	}

	p.IsNewPlayer = games == 0
	p.PaymentStatus = derivePaymentStatus(cols.Cell(row, FieldStatus), games)

	return p, true
}

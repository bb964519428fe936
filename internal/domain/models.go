package domain

import (
	"time"
)

type PaymentStatus string

const (
	PaymentPaid         PaymentStatus = "paid"
	PaymentUnpaid       PaymentStatus = "unpaid"
	PaymentNewPlayer    PaymentStatus = "new_player"
	PaymentSubscription PaymentStatus = "subscription"
)

// Player is one normalized row of the league feed. Optional numeric fields
// are pointers: nil means the source cell was blank or a sentinel error,
// which is distinct from a real zero.
type Player struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`

	// City keeps the raw (possibly multi-valued, comma separated) cell;
	// Cities holds the canonicalized set used for filtering.
	City   string   `json:"city"`
	Cities []string `json:"cities"`

	GlobalScore float64 `json:"global_score"`
	GamesPlayed int     `json:"games_played"`
	Goals       int     `json:"goals"`
	Assists     int     `json:"assists"`
	TeamWins    int     `json:"team_wins"`

	AttackRatio     *float64 `json:"attack_ratio,omitempty"`
	DefenseRatio    *float64 `json:"defense_ratio,omitempty"`
	IndividualScore *float64 `json:"individual_score,omitempty"`
	TeamScore       *float64 `json:"team_score,omitempty"`

	Points        *float64 `json:"points,omitempty"`
	MonthlyPoints *float64 `json:"monthly_points,omitempty"`

	// Rank is 0 until assigned by the rank engine.
	Rank       int `json:"rank"`
	PointsRank int `json:"points_rank"`

	// RankTier is copied verbatim from the feed when present; computed from
	// GlobalScore and Rank otherwise. Empty means not yet derived.
	RankTier  string `json:"rank_tier,omitempty"`
	Level     string `json:"level,omitempty"`
	RankLevel string `json:"rank_level,omitempty"`

	IsNewPlayer   bool          `json:"is_new_player"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	IsSponsor     bool          `json:"is_sponsor"`
}

// Snapshot is the immutable output of one ingestion pass. A refresh builds a
// whole new Snapshot; nothing is mutated in place across refreshes.
type Snapshot struct {
	Players []Player `json:"players"`

	// Cities is the sorted set of canonical city names seen in the feed.
	Cities []string `json:"cities"`

	// Sponsors maps lower-cased usernames to the sponsor/support flag.
	Sponsors map[string]bool `json:"sponsors"`

	FetchedAt time.Time `json:"fetched_at"`

	// Source is "feed" for a live fetch or "fallback" when the stored
	// feed text was re-ingested after a fetch failure.
	Source string `json:"source"`
}

const (
	SourceFeed     = "feed"
	SourceFallback = "fallback"
)

// RosterPlayer is one deduped entry of an upcoming-match roster, joined
// against the leaderboard snapshot for display stats.
type RosterPlayer struct {
	Username    string  `json:"username"`
	DisplayName string  `json:"display_name"`
	GlobalScore float64 `json:"global_score"`
	RankTier    string  `json:"rank_tier,omitempty"`
	IsSponsor   bool    `json:"is_sponsor"`
}

type MatchRoster struct {
	Match   string         `json:"match"`
	Kickoff string         `json:"kickoff,omitempty"`
	Players []RosterPlayer `json:"players"`
}

package rank

import (
	"math"
	"sort"

	"league-tracker/internal/domain"
)

// SortKey selects the primary ranking axis.
type SortKey string

const (
	ByScore      SortKey = "score"
	ByGoals      SortKey = "goals"
	ByAssists    SortKey = "assists"
	ByAttack     SortKey = "attack"
	ByDefense    SortKey = "defense"
	ByGames      SortKey = "games"
	ByTier       SortKey = "rank"
	ByAverage    SortKey = "average"
	ByPoints     SortKey = "points"
	ByMonthly    SortKey = "monthly"
	ByIndividual SortKey = "individual"
	ByTeam       SortKey = "team"
)

// ParseSortKey validates a caller-supplied key, defaulting to score.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(s); k {
	case ByScore, ByGoals, ByAssists, ByAttack, ByDefense, ByGames,
		ByTier, ByAverage, ByPoints, ByMonthly, ByIndividual, ByTeam:
		return k
	}
	return ByScore
}

// absent sorts optional fields below every real value, including zero.
var absent = math.Inf(-1)

func optional(v *float64) float64 {
	if v == nil {
		return absent
	}
	return *v
}

// keyValue extracts the primary comparison value for a player. The tier key
// ranks by hierarchy value; average is the per-game score (absent for new
// players so they sort last rather than at zero).
func keyValue(p *domain.Player, key SortKey) float64 {
	switch key {
	case ByGoals:
		return float64(p.Goals)
	case ByAssists:
		return float64(p.Assists)
	case ByAttack:
		return optional(p.AttackRatio)
	case ByDefense:
		return optional(p.DefenseRatio)
	case ByGames:
		return float64(p.GamesPlayed)
	case ByTier:
		return float64(HierarchyValue(p.RankTier))
	case ByAverage:
		if p.GamesPlayed == 0 {
			return absent
		}
		return p.GlobalScore / float64(p.GamesPlayed)
	case ByPoints:
		return optional(p.Points)
	case ByMonthly:
		return optional(p.MonthlyPoints)
	case ByIndividual:
		return optional(p.IndividualScore)
	case ByTeam:
		return optional(p.TeamScore)
	default:
		return p.GlobalScore
	}
}

// sortByKey orders players by the key descending. Every non-score key breaks
// ties on global score descending; the sort is stable so equal players keep
// their input order.
func sortByKey(players []domain.Player, key SortKey) {
	sort.SliceStable(players, func(i, j int) bool {
		a, b := keyValue(&players[i], key), keyValue(&players[j], key)
		if a != b {
			return a > b
		}
		if key != ByScore {
			return players[i].GlobalScore > players[j].GlobalScore
		}
		return false
	})
}

// Assign sorts players by the key and assigns competition ranks: tied values
// share a rank and the next distinct value gets its 1-based position, so
// [100, 100, 80] ranks as [1, 1, 3]. It also fills in the tier for players
// whose feed row carried none, and always computes the independent points
// rank. Players are re-ranked from scratch; call this on the exact subset
// (e.g. a city filter) the ranks should be scoped to.
func Assign(players []domain.Player, key SortKey) {
	sortByKey(players, key)
	for i := range players {
		if i > 0 && keyValue(&players[i], key) == keyValue(&players[i-1], key) {
			players[i].Rank = players[i-1].Rank
		} else {
			players[i].Rank = i + 1
		}
	}

	// A feed-supplied tier string is authoritative; only derive the rest.
	for i := range players {
		if players[i].RankTier == "" {
			players[i].RankTier = Classify(players[i].GlobalScore, players[i].Rank)
		}
	}

	assignPointsRank(players)
}

// assignPointsRank computes the secondary points axis with the same
// competition-rank semantics, independent of the active primary key.
func assignPointsRank(players []domain.Player) {
	order := make([]int, len(players))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		pa, pb := optional(players[order[a]].Points), optional(players[order[b]].Points)
		if pa != pb {
			return pa > pb
		}
		return players[order[a]].GlobalScore > players[order[b]].GlobalScore
	})
	for pos, idx := range order {
		if pos > 0 && optional(players[idx].Points) == optional(players[order[pos-1]].Points) {
			players[idx].PointsRank = players[order[pos-1]].PointsRank
		} else {
			players[idx].PointsRank = pos + 1
		}
	}
}

package rank

import (
	"testing"

	"league-tracker/internal/domain"
)

func scores(players []domain.Player) []float64 {
	out := make([]float64, len(players))
	for i, p := range players {
		out[i] = p.GlobalScore
	}
	return out
}

func ranks(players []domain.Player) []int {
	out := make([]int, len(players))
	for i, p := range players {
		out[i] = p.Rank
	}
	return out
}

func TestAssignCompetitionRanking(t *testing.T) {
	players := []domain.Player{
		{Username: "a", GlobalScore: 100},
		{Username: "b", GlobalScore: 100},
		{Username: "c", GlobalScore: 80},
	}

	Assign(players, ByScore)

	want := []int{1, 1, 3}
	for i, r := range ranks(players) {
		if r != want[i] {
			t.Fatalf("ranks = %v, want %v (ties share, next distinct jumps)", ranks(players), want)
		}
	}
}

func TestAssignLongerTieRun(t *testing.T) {
	players := []domain.Player{
		{Username: "a", GlobalScore: 500},
		{Username: "b", GlobalScore: 300},
		{Username: "c", GlobalScore: 300},
		{Username: "d", GlobalScore: 300},
		{Username: "e", GlobalScore: 100},
	}

	Assign(players, ByScore)

	want := []int{1, 2, 2, 2, 5}
	for i, r := range ranks(players) {
		if r != want[i] {
			t.Fatalf("ranks = %v, want %v", ranks(players), want)
		}
	}
}

func TestAssignSortsDescending(t *testing.T) {
	players := []domain.Player{
		{Username: "low", GlobalScore: 10},
		{Username: "high", GlobalScore: 90},
		{Username: "mid", GlobalScore: 50},
	}

	Assign(players, ByScore)

	want := []float64{90, 50, 10}
	got := scores(players)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestAssignTieBreakOnGlobalScore(t *testing.T) {
	// equal goals: the universal tie-break is global score descending
	players := []domain.Player{
		{Username: "a", Goals: 5, GlobalScore: 100},
		{Username: "b", Goals: 5, GlobalScore: 300},
		{Username: "c", Goals: 9, GlobalScore: 50},
	}

	Assign(players, ByGoals)

	if players[0].Username != "c" {
		t.Fatalf("top by goals should be c, got %s", players[0].Username)
	}
	if players[1].Username != "b" || players[2].Username != "a" {
		t.Errorf("tied goals should order by score: got %s, %s", players[1].Username, players[2].Username)
	}
	// ranks still follow the primary key only: a and b are tied on goals
	if players[1].Rank != 2 || players[2].Rank != 2 {
		t.Errorf("tied goals should share rank 2, got %d and %d", players[1].Rank, players[2].Rank)
	}
}

func TestAssignAbsentOptionalSortsLast(t *testing.T) {
	players := []domain.Player{
		{Username: "none", GlobalScore: 999},
		{Username: "zero", AttackRatio: ptr(0)},
		{Username: "some", AttackRatio: ptr(0.4)},
	}

	Assign(players, ByAttack)

	order := []string{"some", "zero", "none"}
	for i, want := range order {
		if players[i].Username != want {
			t.Fatalf("order[%d] = %s, want %s (absent below zero)", i, players[i].Username, want)
		}
	}
}

func TestAssignTierKey(t *testing.T) {
	players := []domain.Player{
		{Username: "rookie", RankTier: "Rookie", GlobalScore: 40},
		{Username: "apex2", RankTier: "Apex #2", GlobalScore: 4100},
		{Username: "apex1", RankTier: "Apex #1", GlobalScore: 4090},
		{Username: "t3", RankTier: "Tier-3a", GlobalScore: 1000},
	}

	Assign(players, ByTier)

	order := []string{"apex1", "apex2", "t3", "rookie"}
	for i, want := range order {
		if players[i].Username != want {
			t.Fatalf("order[%d] = %s, want %s", i, players[i].Username, want)
		}
	}
}

func TestAssignDerivesMissingTiers(t *testing.T) {
	players := []domain.Player{
		{Username: "a", GlobalScore: 1000},
		{Username: "b", GlobalScore: 0},
		{Username: "c", GlobalScore: 700, RankTier: "Custom League Tier"},
	}

	Assign(players, ByScore)

	for _, p := range players {
		switch p.Username {
		case "a":
			if p.RankTier != "Tier-3a" {
				t.Errorf("a tier = %q, want Tier-3a", p.RankTier)
			}
		case "b":
			if p.RankTier != "Unranked" {
				t.Errorf("b tier = %q, want Unranked", p.RankTier)
			}
		case "c":
			// the feed-supplied string is authoritative
			if p.RankTier != "Custom League Tier" {
				t.Errorf("c tier = %q, want the verbatim feed value", p.RankTier)
			}
		}
	}
}

func TestAssignApexNamedFromRank(t *testing.T) {
	players := []domain.Player{
		{Username: "first", GlobalScore: 5000},
		{Username: "second", GlobalScore: 4500},
		{Username: "mortal", GlobalScore: 3000},
	}

	Assign(players, ByScore)

	if players[0].RankTier != "Apex #1" {
		t.Errorf("first tier = %q, want Apex #1", players[0].RankTier)
	}
	if players[1].RankTier != "Apex #2" {
		t.Errorf("second tier = %q, want Apex #2", players[1].RankTier)
	}
}

func TestPointsRankIndependentOfPrimaryKey(t *testing.T) {
	players := []domain.Player{
		{Username: "a", GlobalScore: 10, Points: ptr(50)},
		{Username: "b", GlobalScore: 90, Points: ptr(50)},
		{Username: "c", GlobalScore: 40, Points: ptr(70)},
		{Username: "d", GlobalScore: 99},
	}

	Assign(players, ByScore)

	got := map[string]int{}
	for _, p := range players {
		got[p.Username] = p.PointsRank
	}
	// c first, a and b tied on 50 (competition semantics), d absent last
	want := map[string]int{"c": 1, "a": 2, "b": 2, "d": 4}
	for name, wantRank := range want {
		if got[name] != wantRank {
			t.Errorf("points rank of %s = %d, want %d (full map %v)", name, got[name], wantRank, got)
		}
	}
}

func TestParseSortKey(t *testing.T) {
	if got := ParseSortKey("goals"); got != ByGoals {
		t.Errorf("ParseSortKey(goals) = %q", got)
	}
	if got := ParseSortKey(""); got != ByScore {
		t.Errorf("empty key should default to score, got %q", got)
	}
	if got := ParseSortKey("drop table"); got != ByScore {
		t.Errorf("unknown key should default to score, got %q", got)
	}
}

func TestAverageKey(t *testing.T) {
	players := []domain.Player{
		{Username: "steady", GlobalScore: 900, GamesPlayed: 10}, // 90 per game
		{Username: "burst", GlobalScore: 300, GamesPlayed: 2},   // 150 per game
		{Username: "new", GlobalScore: 0, GamesPlayed: 0},       // absent
	}

	Assign(players, ByAverage)

	order := []string{"burst", "steady", "new"}
	for i, want := range order {
		if players[i].Username != want {
			t.Fatalf("order[%d] = %s, want %s", i, players[i].Username, want)
		}
	}
}

func ptr(v float64) *float64 { return &v }

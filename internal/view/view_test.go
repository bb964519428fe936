package view

import (
	"testing"

	"league-tracker/internal/domain"
)

func testPlayers() []domain.Player {
	return []domain.Player{
		{Username: "alice", DisplayName: "alice", Cities: []string{"Casablanca"}},
		{Username: "bob smith", DisplayName: "bob", Cities: []string{"Rabat"}},
		{Username: "carol", DisplayName: "carol", Cities: []string{"Casablanca", "Rabat"}},
		{Username: "dan", DisplayName: "dan", Cities: nil},
	}
}

func usernames(players []domain.Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.Username
	}
	return out
}

func TestFilterCity(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"no filter", Filter{}, []string{"alice", "bob smith", "carol", "dan"}},
		{"all passes everyone", Filter{City: "all"}, []string{"alice", "bob smith", "carol", "dan"}},
		{"single city", Filter{City: "Rabat"}, []string{"bob smith", "carol"}},
		{"city is case-insensitive", Filter{City: "casablanca"}, []string{"alice", "carol"}},
		{"multi-city membership", Filter{City: "Casablanca"}, []string{"alice", "carol"}},
		{"unknown city matches nothing", Filter{City: "Atlantis"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := usernames(Apply(testPlayers(), tt.filter))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestFilterSearch(t *testing.T) {
	// substring of username or display name, case-insensitive
	got := usernames(Apply(testPlayers(), Filter{Query: "BOB"}))
	if len(got) != 1 || got[0] != "bob smith" {
		t.Fatalf("search BOB = %v, want [bob smith]", got)
	}

	// search matches inside the username too
	got = usernames(Apply(testPlayers(), Filter{Query: "smith"}))
	if len(got) != 1 || got[0] != "bob smith" {
		t.Fatalf("search smith = %v, want [bob smith]", got)
	}
}

func TestSearchBypassesCityFilter(t *testing.T) {
	// bob is in Rabat; an active search ignores the mismatched city filter
	got := usernames(Apply(testPlayers(), Filter{City: "Casablanca", Query: "bob"}))
	if len(got) != 1 || got[0] != "bob smith" {
		t.Fatalf("got %v, want search to take precedence over city", got)
	}
}

func TestBuildPagination(t *testing.T) {
	players := make([]domain.Player, 45)

	tests := []struct {
		name       string
		page       int
		pageSize   int
		wantItems  int
		wantPages  int
		wantPageNo int
	}{
		{"first page", 1, 20, 20, 3, 1},
		{"last partial page", 3, 20, 5, 3, 3},
		{"beyond range is empty, not clamped", 4, 20, 0, 3, 4},
		{"page zero treated as one", 0, 20, 20, 3, 1},
		{"exact division", 1, 45, 45, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Build(players, tt.page, tt.pageSize)
			if len(page.Items) != tt.wantItems {
				t.Errorf("items = %d, want %d", len(page.Items), tt.wantItems)
			}
			if page.TotalPages != tt.wantPages {
				t.Errorf("total pages = %d, want %d", page.TotalPages, tt.wantPages)
			}
			if page.CurrentPage != tt.wantPageNo {
				t.Errorf("current page = %d, want %d", page.CurrentPage, tt.wantPageNo)
			}
			if page.TotalItems != 45 {
				t.Errorf("total items = %d, want 45", page.TotalItems)
			}
		})
	}
}

func TestBuildEmptySet(t *testing.T) {
	page := Build(nil, 1, 20)
	if page.TotalPages != 0 || page.TotalItems != 0 || len(page.Items) != 0 {
		t.Errorf("empty set page = %+v", page)
	}
}

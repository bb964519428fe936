package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"league-tracker/internal/config"
	"league-tracker/internal/constants"
	"league-tracker/internal/database"
)

func newTestRepo(t *testing.T) *SnapshotRepository {
	t.Helper()
	db, err := database.New(&config.Config{DBPath: ":memory:"}, zerolog.Nop())
	if err != nil {
		t.Fatalf("database.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSnapshotRepository(db, zerolog.Nop())
}

func TestSaveAndLatest(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, _, err := repo.Latest(ctx, KindLeaderboard); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("Latest on empty table err = %v, want sql.ErrNoRows", err)
	}

	if err := repo.Save(ctx, KindLeaderboard, "old,text", 1); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Save(ctx, KindLeaderboard, "new,text", 2); err != nil {
		t.Fatalf("Save: %v", err)
	}

	text, fetchedAt, err := repo.Latest(ctx, KindLeaderboard)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if text != "new,text" {
		t.Errorf("Latest text = %q, want the newest snapshot", text)
	}
	if fetchedAt.IsZero() {
		t.Error("fetchedAt should be set")
	}
}

func TestKindsAreIndependent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Save(ctx, KindLeaderboard, "players", 3); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Save(ctx, KindRoster, "rosters", 5); err != nil {
		t.Fatalf("Save: %v", err)
	}

	text, _, err := repo.Latest(ctx, KindRoster)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if text != "rosters" {
		t.Errorf("roster Latest = %q", text)
	}
}

func TestPruneKeepsBoundedHistory(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < constants.SnapshotKeep+5; i++ {
		if err := repo.Save(ctx, KindLeaderboard, fmt.Sprintf("snapshot-%d", i), i); err != nil {
			t.Fatalf("Save %d: %v", i, err)
		}
	}

	var count int
	err := repo.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM feed_snapshots WHERE kind = ?", KindLeaderboard).Scan(&count)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count > constants.SnapshotKeep {
		t.Errorf("kept %d snapshots, want at most %d", count, constants.SnapshotKeep)
	}
}

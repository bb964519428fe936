package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"league-tracker/internal/constants"
)

// Feed kinds stored in feed_snapshots.
const (
	KindLeaderboard = "leaderboard"
	KindRoster      = "roster"
)

// SnapshotRepository persists the last good raw feed text per feed kind.
// The stored text is the secondary source: when a live fetch fails, the
// refresh service re-ingests the newest stored snapshot instead.
type SnapshotRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewSnapshotRepository(db *sql.DB, logger zerolog.Logger) *SnapshotRepository {
	return &SnapshotRepository{db: db, logger: logger}
}

// Save stores one raw feed snapshot and prunes old rows of the same kind.
func (r *SnapshotRepository) Save(ctx context.Context, kind, rawText string, rowCount int) error {
	id, err := gonanoid.New()
	if err != nil {
		return fmt.Errorf("failed to generate snapshot id: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO feed_snapshots (id, kind, raw_text, row_count, fetched_at)
		 VALUES (?, ?, ?, ?, ?)`,
		id, kind, rawText, rowCount, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	if err := r.prune(ctx, kind); err != nil {
		r.logger.Warn().Err(err).Str("kind", kind).Msg("failed to prune old snapshots")
	}

	r.logger.Debug().
		Str("id", id).
		Str("kind", kind).
		Int("row_count", rowCount).
		Msg("feed snapshot saved")
	return nil
}

// Latest returns the newest stored snapshot text for the kind.
// sql.ErrNoRows surfaces when nothing has been stored yet.
func (r *SnapshotRepository) Latest(ctx context.Context, kind string) (string, time.Time, error) {
	var (
		rawText   string
		fetchedAt time.Time
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT raw_text, fetched_at FROM feed_snapshots
		 WHERE kind = ? ORDER BY fetched_at DESC LIMIT 1`,
		kind).Scan(&rawText, &fetchedAt)
	if err != nil {
		return "", time.Time{}, err
	}
	return rawText, fetchedAt, nil
}

func (r *SnapshotRepository) prune(ctx context.Context, kind string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM feed_snapshots
		 WHERE kind = ? AND id NOT IN (
		     SELECT id FROM feed_snapshots
		     WHERE kind = ? ORDER BY fetched_at DESC LIMIT ?
		 )`,
		kind, kind, constants.SnapshotKeep)
	return err
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mlarsden/PocketFarm_Go/internal/domain"
	"github.com/mlarsden/PocketFarm_Go/internal/logger"
	"github.com/mlarsden/PocketFarm_Go/internal/state"
)

// SnapshotRepository implements the snapshot repository for PostgreSQL.
// Snapshots are stored whole as JSONB; the revision column is denormalized
// for staleness inspection on the backend side.
type SnapshotRepository struct {
	db *pgxpool.Pool
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// GetSnapshot retrieves and repairs the stored snapshot for a player.
func (r *SnapshotRepository) GetSnapshot(ctx context.Context, playerID string) (*domain.GameState, error) {
	var raw []byte
	err := r.db.QueryRow(ctx,
		`SELECT state FROM game_snapshots WHERE player_id = $1`,
		playerID,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	// Repair on every load so legacy rows come back schema-complete. An
	// unreadable row still yields a playable state rather than locking the
	// player out of their farm.
	s, err := state.DecodeSnapshot(raw)
	if err != nil {
		logger.FromContext(ctx).Warn("Stored snapshot unreadable, serving repaired state",
			"playerID", playerID, "error", err)
	}
	return &s, nil
}

// SaveSnapshot upserts the full snapshot for a player.
func (r *SnapshotRepository) SaveSnapshot(ctx context.Context, playerID string, s domain.GameState) error {
	raw, err := state.EncodeSnapshot(s)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO game_snapshots (player_id, state, revision, updated_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (player_id)
		 DO UPDATE SET state = EXCLUDED.state, revision = EXCLUDED.revision, updated_at = NOW()`,
		playerID, raw, s.Revision,
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

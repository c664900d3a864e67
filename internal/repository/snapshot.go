package repository

import (
	"context"

	"github.com/mlarsden/PocketFarm_Go/internal/domain"
)

// Snapshot is the persistence contract for full game-state snapshots keyed
// by player identity. Implementations are the authoritative remote copy the
// client reconciles against.
type Snapshot interface {
	// GetSnapshot fetches the current snapshot for a player. Returns
	// domain.ErrSnapshotNotFound when the player has never been saved.
	GetSnapshot(ctx context.Context, playerID string) (*domain.GameState, error)

	// SaveSnapshot stores the full snapshot, replacing any previous one.
	SaveSnapshot(ctx context.Context, playerID string, state domain.GameState) error
}

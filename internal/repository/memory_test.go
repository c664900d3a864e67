package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlarsden/PocketFarm_Go/internal/domain"
	"github.com/mlarsden/PocketFarm_Go/internal/repository"
	"github.com/mlarsden/PocketFarm_Go/internal/state"
)

func TestMemorySnapshots(t *testing.T) {
	ctx := context.Background()

	t.Run("Unknown player", func(t *testing.T) {
		store := repository.NewMemorySnapshots()
		_, err := store.GetSnapshot(ctx, "nobody")
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})

	t.Run("Save then get", func(t *testing.T) {
		store := repository.NewMemorySnapshots()
		s := state.NewGameState()
		s.Resources.Tomato = 3
		s.Revision = 7

		require.NoError(t, store.SaveSnapshot(ctx, "p1", s))

		got, err := store.GetSnapshot(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, s, *got)
	})

	t.Run("Reads go through the repair path", func(t *testing.T) {
		store := repository.NewMemorySnapshots()
		// A partial snapshot with only one slot recorded
		partial := domain.GameState{
			Crops: []domain.Slot{{ID: "crop-1", Type: domain.CropTomato, Level: 5}},
		}
		require.NoError(t, store.SaveSnapshot(ctx, "p1", partial))

		got, err := store.GetSnapshot(ctx, "p1")
		require.NoError(t, err)
		assert.Len(t, got.Crops, 6)
		assert.Equal(t, 5, got.CropSlot("crop-1").Level)
	})

	t.Run("Injected save failures", func(t *testing.T) {
		store := repository.NewMemorySnapshots()
		store.FailSaves = 1

		err := store.SaveSnapshot(ctx, "p1", state.NewGameState())
		assert.ErrorIs(t, err, repository.ErrSaveFailed)

		// Injected failures consumed, next save succeeds
		require.NoError(t, store.SaveSnapshot(ctx, "p1", state.NewGameState()))
		assert.Equal(t, 2, store.SaveCount)
	})
}

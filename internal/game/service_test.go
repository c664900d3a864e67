package game_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlarsden/PocketFarm_Go/internal/domain"
	"github.com/mlarsden/PocketFarm_Go/internal/event"
	"github.com/mlarsden/PocketFarm_Go/internal/game"
	"github.com/mlarsden/PocketFarm_Go/internal/reducer"
	"github.com/mlarsden/PocketFarm_Go/internal/repository"
	"github.com/mlarsden/PocketFarm_Go/internal/state"
)

// newTestService wires a service onto the in-memory store with sync timers
// disabled so tests drive persistence explicitly.
func newTestService() (game.Service, *repository.MemorySnapshots, *event.MemoryBus) {
	store := repository.NewMemorySnapshots()
	bus := event.NewMemoryBus()
	svc := game.NewService(store, reducer.New(nil), bus, game.Options{})
	return svc, store, bus
}

func TestService_GetState(t *testing.T) {
	ctx := context.Background()

	t.Run("New player starts from the template", func(t *testing.T) {
		svc, store, _ := newTestService()
		defer svc.Shutdown(ctx)

		s, err := svc.GetState(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, state.NewGameState(), s)

		// The fresh farm is persisted immediately
		remote, err := store.GetSnapshot(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, state.NewGameState(), *remote)
	})

	t.Run("Returning player resumes the stored snapshot", func(t *testing.T) {
		svc, store, _ := newTestService()
		defer svc.Shutdown(ctx)

		saved := state.NewGameState()
		saved.Resources.Coins = 321
		saved.Revision = 8
		require.NoError(t, store.SaveSnapshot(ctx, "p1", saved))

		s, err := svc.GetState(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, 321, s.Resources.Coins)
		assert.Equal(t, int64(8), s.Revision)
	})
}

func TestService_ActionsMutateSession(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()
	defer svc.Shutdown(ctx)

	next, err := svc.Plant(ctx, "p1", "crop-1")
	require.NoError(t, err)
	require.NotNil(t, next.CropSlot("crop-1").Timer)

	// The session retains the applied action
	s, err := svc.GetState(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, next, s)

	// And rejects a double plant
	_, err = svc.Plant(ctx, "p1", "crop-1")
	assert.ErrorIs(t, err, domain.ErrSlotBusy)
}

func TestService_BoostCost(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()
	defer svc.Shutdown(ctx)

	cost, err := svc.BoostCost(ctx, "p1", "crop-1")
	require.NoError(t, err)
	assert.Equal(t, 0, cost)

	_, err = svc.Plant(ctx, "p1", "crop-1")
	require.NoError(t, err)

	cost, err = svc.BoostCost(ctx, "p1", "crop-1")
	require.NoError(t, err)
	assert.Equal(t, 3, cost) // 3 minute timer just started
}

func TestService_SlotProgress(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()
	defer svc.Shutdown(ctx)

	progress, err := svc.SlotProgress(ctx, "p1", "crop-1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, progress) // idle slot

	_, err = svc.Plant(ctx, "p1", "crop-1")
	require.NoError(t, err)

	// The 3 minute timer just started on the real clock
	progress, err = svc.SlotProgress(ctx, "p1", "crop-1")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, progress, 0.0)
	assert.Less(t, progress, 0.1)

	_, err = svc.SlotProgress(ctx, "p1", "barn-9")
	assert.ErrorIs(t, err, domain.ErrSlotNotFound)
}

func TestService_PublishesActionEvents(t *testing.T) {
	ctx := context.Background()
	svc, _, bus := newTestService()
	defer svc.Shutdown(ctx)

	var applied, rejected atomic.Int64
	bus.Subscribe(event.ActionApplied, func(_ context.Context, evt event.Event) error {
		payload, ok := evt.Payload.(domain.ActionAppliedPayload)
		require.True(t, ok)
		assert.Equal(t, reducer.ActionPlant, payload.Action)
		applied.Add(1)
		return nil
	})
	bus.Subscribe(event.ActionRejected, func(_ context.Context, evt event.Event) error {
		payload, ok := evt.Payload.(domain.ActionRejectedPayload)
		require.True(t, ok)
		assert.Equal(t, domain.ErrMsgSlotBusy, payload.Reason)
		rejected.Add(1)
		return nil
	})

	_, err := svc.Plant(ctx, "p1", "crop-1")
	require.NoError(t, err)
	_, err = svc.Plant(ctx, "p1", "crop-1")
	require.Error(t, err)

	assert.Equal(t, int64(1), applied.Load())
	assert.Equal(t, int64(1), rejected.Load())
}

func TestService_SellAndBuy(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService()
	defer svc.Shutdown(ctx)

	saved := state.NewGameState()
	saved.Resources.Coins = 0
	saved.Resources.Tomato = 10
	saved.Resources.Milk = 2
	require.NoError(t, store.SaveSnapshot(ctx, "p1", saved))

	next, err := svc.SellProduce(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 62, next.Resources.Coins)
	assert.Zero(t, next.Resources.Tomato)

	next, err = svc.BuyFeed(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 42, next.Resources.Coins)
	assert.Equal(t, state.StartingFeed+reducer.FeedPackAmount, next.Resources.Feed)
}

func TestService_ShutdownFlushesSessions(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService()

	_, err := svc.Plant(ctx, "p1", "crop-1")
	require.NoError(t, err)

	require.NoError(t, svc.Shutdown(ctx))

	remote, err := store.GetSnapshot(ctx, "p1")
	require.NoError(t, err)
	assert.NotNil(t, remote.CropSlot("crop-1").Timer)
	assert.Equal(t, int64(1), remote.Revision)
}

func TestService_CorruptStoredSnapshotRepaired(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService()
	defer svc.Shutdown(ctx)

	// Simulate a legacy save missing most of the schema
	partial := domain.GameState{Level: 3}
	require.NoError(t, store.SaveSnapshot(ctx, "p1", partial))

	s, err := svc.GetState(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 3, s.Level)
	assert.Len(t, s.Crops, 6)
	assert.Len(t, s.Animals, 6)
}

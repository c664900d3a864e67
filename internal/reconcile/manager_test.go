package reconcile_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlarsden/PocketFarm_Go/internal/domain"
	"github.com/mlarsden/PocketFarm_Go/internal/event"
	"github.com/mlarsden/PocketFarm_Go/internal/reconcile"
	"github.com/mlarsden/PocketFarm_Go/internal/repository"
	"github.com/mlarsden/PocketFarm_Go/internal/state"
)

const testPlayer = "player-1"

// addCoins is a minimal reducer transition for driving the state machine.
func addCoins(n int) func(domain.GameState) (domain.GameState, error) {
	return func(s domain.GameState) (domain.GameState, error) {
		s.Resources = s.Resources.Add(domain.ResCoins, n)
		s.Revision++
		return s, nil
	}
}

func reject(s domain.GameState) (domain.GameState, error) {
	return s, domain.ErrInsufficientFunds
}

func newTestManager(debounce time.Duration) (*reconcile.Manager, *repository.MemorySnapshots) {
	store := repository.NewMemorySnapshots()
	m := reconcile.NewManager(testPlayer, state.NewGameState(), store, event.NewMemoryBus(), debounce)
	return m, store
}

func TestManager_Dispatch(t *testing.T) {
	t.Run("Applied action dirties the session", func(t *testing.T) {
		m, _ := newTestManager(0)
		assert.Equal(t, reconcile.StatusClean, m.Status())

		next, err := m.Dispatch(addCoins(10))
		require.NoError(t, err)
		assert.Equal(t, state.StartingCoins+10, next.Resources.Coins)
		assert.Equal(t, reconcile.StatusDirty, m.Status())
	})

	t.Run("Rejected action changes nothing", func(t *testing.T) {
		m, store := newTestManager(0)

		next, err := m.Dispatch(reject)
		require.ErrorIs(t, err, domain.ErrInsufficientFunds)
		assert.Equal(t, state.NewGameState(), next)
		assert.Equal(t, reconcile.StatusClean, m.Status())
		assert.Zero(t, store.SaveCount)
	})
}

func TestManager_Flush(t *testing.T) {
	t.Run("Clean session skips the write", func(t *testing.T) {
		m, store := newTestManager(0)
		m.Flush(context.Background())
		assert.Zero(t, store.SaveCount)
	})

	t.Run("Dirty session writes and becomes clean", func(t *testing.T) {
		m, store := newTestManager(0)
		_, err := m.Dispatch(addCoins(10))
		require.NoError(t, err)

		m.Flush(context.Background())
		assert.Equal(t, reconcile.StatusClean, m.Status())
		assert.Equal(t, 1, store.SaveCount)

		remote, err := store.GetSnapshot(context.Background(), testPlayer)
		require.NoError(t, err)
		assert.Equal(t, state.StartingCoins+10, remote.Resources.Coins)
	})

	t.Run("Failed write leaves the session dirty for retry", func(t *testing.T) {
		m, store := newTestManager(0)
		_, err := m.Dispatch(addCoins(10))
		require.NoError(t, err)

		store.FailSaves = 1
		m.Flush(context.Background())
		assert.Equal(t, reconcile.StatusDirty, m.Status())

		// Next attempt succeeds
		m.Flush(context.Background())
		assert.Equal(t, reconcile.StatusClean, m.Status())
		assert.Equal(t, 2, store.SaveCount)
	})
}

func TestManager_FlushEvents(t *testing.T) {
	store := repository.NewMemorySnapshots()
	bus := event.NewMemoryBus()

	var synced, failed atomic.Int64
	bus.Subscribe(event.StateSynced, func(_ context.Context, _ event.Event) error {
		synced.Add(1)
		return nil
	})
	bus.Subscribe(event.SyncFailed, func(_ context.Context, _ event.Event) error {
		failed.Add(1)
		return nil
	})

	m := reconcile.NewManager(testPlayer, state.NewGameState(), store, bus, 0)

	_, err := m.Dispatch(addCoins(1))
	require.NoError(t, err)
	store.FailSaves = 1
	m.Flush(context.Background())
	assert.Equal(t, int64(1), failed.Load())
	assert.Equal(t, int64(0), synced.Load())

	m.Flush(context.Background())
	assert.Equal(t, int64(1), synced.Load())
}

func TestManager_DebounceCollapsesBursts(t *testing.T) {
	m, store := newTestManager(20 * time.Millisecond)

	for i := 0; i < 5; i++ {
		_, err := m.Dispatch(addCoins(1))
		require.NoError(t, err)
	}

	require.Eventually(t, func() bool {
		return m.Status() == reconcile.StatusClean
	}, time.Second, 5*time.Millisecond)

	// Five rapid actions produce exactly one remote write
	assert.Equal(t, 1, store.SaveCount)

	remote, err := store.GetSnapshot(context.Background(), testPlayer)
	require.NoError(t, err)
	assert.Equal(t, int64(5), remote.Revision)
}

func TestManager_Pull(t *testing.T) {
	t.Run("Clean session adopts the remote snapshot", func(t *testing.T) {
		m, store := newTestManager(0)

		remote := state.NewGameState()
		remote.Resources.Coins = 777
		remote.Revision = 42
		require.NoError(t, store.SaveSnapshot(context.Background(), testPlayer, remote))

		m.Pull(context.Background())
		assert.Equal(t, 777, m.Current().Resources.Coins)
		assert.Equal(t, int64(42), m.Current().Revision)
	})

	t.Run("Suppressed while local changes are unsent", func(t *testing.T) {
		m, store := newTestManager(0)

		remote := state.NewGameState()
		remote.Resources.Coins = 777
		require.NoError(t, store.SaveSnapshot(context.Background(), testPlayer, remote))

		_, err := m.Dispatch(addCoins(1))
		require.NoError(t, err)

		m.Pull(context.Background())
		assert.Equal(t, state.StartingCoins+1, m.Current().Resources.Coins)
	})

	t.Run("Missing remote snapshot keeps local state", func(t *testing.T) {
		m, _ := newTestManager(0)
		m.Pull(context.Background())
		assert.Equal(t, state.NewGameState(), m.Current())
	})
}

func TestManager_Stop(t *testing.T) {
	t.Run("Final flush on shutdown", func(t *testing.T) {
		m, store := newTestManager(0)
		m.Start(time.Hour, time.Hour)

		_, err := m.Dispatch(addCoins(10))
		require.NoError(t, err)

		m.Stop(context.Background())
		assert.Equal(t, 1, store.SaveCount)

		remote, err := store.GetSnapshot(context.Background(), testPlayer)
		require.NoError(t, err)
		assert.Equal(t, state.StartingCoins+10, remote.Resources.Coins)
	})

	t.Run("Stop is idempotent", func(t *testing.T) {
		m, _ := newTestManager(0)
		m.Start(time.Hour, time.Hour)
		m.Stop(context.Background())
		m.Stop(context.Background())
	})
}

func TestManager_PeriodicFlush(t *testing.T) {
	m, store := newTestManager(0)
	m.Start(10*time.Millisecond, time.Hour)
	defer m.Stop(context.Background())

	_, err := m.Dispatch(addCoins(1))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return m.Status() == reconcile.StatusClean
	}, time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, store.SaveCount, 1)
}

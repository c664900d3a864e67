package reconcile

import (
	"context"
	"sync"
	"time"

	"github.com/mlarsden/PocketFarm_Go/internal/domain"
	"github.com/mlarsden/PocketFarm_Go/internal/event"
	"github.com/mlarsden/PocketFarm_Go/internal/logger"
	"github.com/mlarsden/PocketFarm_Go/internal/metrics"
	"github.com/mlarsden/PocketFarm_Go/internal/state"
)

// Status is the reconciliation state of a player session relative to the
// remote authoritative copy.
type Status int

const (
	// StatusClean means the remote copy has everything local has.
	StatusClean Status = iota
	// StatusDirty means unsent local changes exist.
	StatusDirty
	// StatusSyncing means a flush is in flight.
	StatusSyncing
)

func (s Status) String() string {
	switch s {
	case StatusClean:
		return "clean"
	case StatusDirty:
		return "dirty"
	case StatusSyncing:
		return "syncing"
	}
	return "unknown"
}

// Store is the remote authority the manager reconciles against.
// repository.Snapshot satisfies it.
type Store interface {
	GetSnapshot(ctx context.Context, playerID string) (*domain.GameState, error)
	SaveSnapshot(ctx context.Context, playerID string, state domain.GameState) error
}

// Manager owns one player's local snapshot and the clean/dirty/syncing
// state machine around it. All dispatches are serialized under one mutex,
// so the reducer output is always applied atomically. Writes to the remote
// store are debounced and carry the latest snapshot, never a queue.
type Manager struct {
	playerID string
	store    Store
	bus      event.Bus
	debounce time.Duration

	mu            sync.Mutex
	state         domain.GameState
	status        Status
	flushedRev    int64
	debounceTimer *time.Timer
	stopped       bool

	quit chan struct{}
	wg   sync.WaitGroup
}

// NewManager creates a manager seeded with an initial snapshot.
func NewManager(playerID string, initial domain.GameState, store Store, bus event.Bus, debounce time.Duration) *Manager {
	return &Manager{
		playerID: playerID,
		store:    store,
		bus:      bus,
		debounce: debounce,
		state:    initial,
		status:   StatusClean,
		quit:     make(chan struct{}),
	}
}

// Current returns the latest local snapshot.
func (m *Manager) Current() domain.GameState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Status returns the reconciliation status.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Dispatch applies a reducer transition to the local snapshot. On success
// the session becomes dirty and a trailing-edge debounced flush is
// scheduled; on rejection nothing changes. The returned state is always
// the current snapshot.
func (m *Manager) Dispatch(apply func(domain.GameState) (domain.GameState, error)) (domain.GameState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := apply(m.state)
	if err != nil {
		return m.state, err
	}

	m.state = next
	if m.status == StatusClean {
		m.status = StatusDirty
	}
	m.scheduleFlushLocked()
	return m.state, nil
}

// scheduleFlushLocked arms (or re-arms) the debounce timer. Bursts of
// rapid actions collapse into a single remote write.
func (m *Manager) scheduleFlushLocked() {
	if m.stopped || m.debounce <= 0 {
		return
	}
	if m.debounceTimer != nil {
		m.debounceTimer.Stop()
	}
	m.debounceTimer = time.AfterFunc(m.debounce, func() {
		m.Flush(context.Background())
	})
}

// Start launches the periodic flush and pull loops.
func (m *Manager) Start(flushInterval, pullInterval time.Duration) {
	m.startLoop(flushInterval, func(ctx context.Context) { m.Flush(ctx) })
	m.startLoop(pullInterval, func(ctx context.Context) { m.Pull(ctx) })
}

func (m *Manager) startLoop(interval time.Duration, tick func(ctx context.Context)) {
	if interval <= 0 {
		return
	}
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				tick(context.Background())
			case <-m.quit:
				return
			}
		}
	}()
}

// Flush pushes the latest snapshot to the remote store when the session is
// dirty. Failure leaves the session dirty so a later periodic attempt
// retries; it is never surfaced to the player.
func (m *Manager) Flush(ctx context.Context) {
	m.mu.Lock()
	if m.status != StatusDirty {
		m.mu.Unlock()
		return
	}
	snapshot := m.state
	m.status = StatusSyncing
	m.flushedRev = snapshot.Revision
	m.mu.Unlock()

	err := m.store.SaveSnapshot(ctx, m.playerID, snapshot)

	m.mu.Lock()
	if err != nil {
		m.status = StatusDirty
	} else if m.state.Revision == m.flushedRev {
		m.status = StatusClean
	} else {
		// A local action landed mid-flight; its changes are still unsent.
		m.status = StatusDirty
	}
	revision := snapshot.Revision
	m.mu.Unlock()

	if err != nil {
		metrics.SyncFlushes.WithLabelValues("failure").Inc()
		logger.FromContext(ctx).Warn("Snapshot flush failed", "playerID", m.playerID, "error", err)
		m.publish(ctx, event.NewSyncFailedEvent(m.playerID, revision, err))
		return
	}
	metrics.SyncFlushes.WithLabelValues("success").Inc()
	m.publish(ctx, event.NewStateSyncedEvent(m.playerID, revision))
}

// Pull replaces the local snapshot with the remote authoritative copy.
// Suppressed entirely while unsent local changes exist, so stale remote
// data can never clobber local progress.
func (m *Manager) Pull(ctx context.Context) {
	m.mu.Lock()
	if m.status != StatusClean {
		m.mu.Unlock()
		metrics.SyncPulls.WithLabelValues("suppressed").Inc()
		return
	}
	m.mu.Unlock()

	remote, err := m.store.GetSnapshot(ctx, m.playerID)
	if err != nil {
		metrics.SyncPulls.WithLabelValues("failure").Inc()
		logger.FromContext(ctx).Warn("Snapshot pull failed", "playerID", m.playerID, "error", err)
		return
	}

	m.mu.Lock()
	// A dispatch may have raced the fetch; keep local progress in that case.
	applied := m.status == StatusClean
	if applied {
		m.state = state.EnsureExtendedState(*remote)
	}
	m.mu.Unlock()

	if applied {
		metrics.SyncPulls.WithLabelValues("applied").Inc()
	} else {
		metrics.SyncPulls.WithLabelValues("suppressed").Inc()
	}
}

// Stop halts the loops and performs a best-effort final flush. The flush is
// fire-and-forget: the transport may fail silently, matching page-unload
// semantics where no retry is possible.
func (m *Manager) Stop(ctx context.Context) {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	m.stopped = true
	if m.debounceTimer != nil {
		m.debounceTimer.Stop()
	}
	m.mu.Unlock()

	close(m.quit)

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		logger.FromContext(ctx).Warn("Reconcile loop shutdown timeout", "playerID", m.playerID)
	}

	m.Flush(ctx)
}

func (m *Manager) publish(ctx context.Context, evt event.Event) {
	if m.bus == nil {
		return
	}
	if err := m.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn("Event publish failed", "type", evt.Type, "error", err)
	}
}

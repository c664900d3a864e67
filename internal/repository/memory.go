package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/mlarsden/PocketFarm_Go/internal/domain"
	"github.com/mlarsden/PocketFarm_Go/internal/state"
)

// ErrSaveFailed is returned by MemorySnapshots when a save failure has been
// injected via FailSaves.
var ErrSaveFailed = errors.New("snapshot save failed")

// MemorySnapshots is an in-memory Snapshot implementation for tests and
// local development. Snapshots are stored encoded so reads observe the same
// decode/repair path as the postgres implementation.
type MemorySnapshots struct {
	mu   sync.RWMutex
	data map[string][]byte

	// FailSaves makes every SaveSnapshot fail while > 0, decrementing per
	// call. Used to exercise flush-failure paths.
	FailSaves int
	// SaveCount counts SaveSnapshot calls, including failed ones.
	SaveCount int
}

// NewMemorySnapshots creates an empty in-memory snapshot store.
func NewMemorySnapshots() *MemorySnapshots {
	return &MemorySnapshots{data: make(map[string][]byte)}
}

// GetSnapshot fetches and repairs the stored snapshot.
func (m *MemorySnapshots) GetSnapshot(_ context.Context, playerID string) (*domain.GameState, error) {
	m.mu.RLock()
	raw, ok := m.data[playerID]
	m.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	// Unreadable data falls back to the repaired state, matching the
	// postgres store.
	s, _ := state.DecodeSnapshot(raw)
	return &s, nil
}

// SaveSnapshot stores the full snapshot.
func (m *MemorySnapshots) SaveSnapshot(_ context.Context, playerID string, s domain.GameState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCount++
	if m.FailSaves > 0 {
		m.FailSaves--
		return ErrSaveFailed
	}
	raw, err := state.EncodeSnapshot(s)
	if err != nil {
		return err
	}
	m.data[playerID] = raw
	return nil
}

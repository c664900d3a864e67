package repository

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/mlarsden/PocketFarm_Go/internal/domain"
)

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// cachedSnapshotEntry wraps a snapshot with version metadata for cache invalidation
type cachedSnapshotEntry struct {
	Version  string
	State    domain.GameState
	CachedAt time.Time
}

// CachedSnapshots is a read-through LRU cache in front of another Snapshot
// store, with time-based expiration and version-based invalidation. Saves
// write through and refresh the cached entry so a player's own writes are
// never served stale.
type CachedSnapshots struct {
	inner Snapshot
	lru   *expirable.LRU[string, *cachedSnapshotEntry]
}

// NewCachedSnapshots wraps inner with an LRU of the given size and TTL.
func NewCachedSnapshots(inner Snapshot, size int, ttl time.Duration) *CachedSnapshots {
	return &CachedSnapshots{
		inner: inner,
		lru:   expirable.NewLRU[string, *cachedSnapshotEntry](size, nil, ttl),
	}
}

// GetSnapshot serves from cache when possible, falling back to the inner store.
func (c *CachedSnapshots) GetSnapshot(ctx context.Context, playerID string) (*domain.GameState, error) {
	if entry, found := c.lru.Get(playerID); found {
		if entry.Version == CacheSchemaVersion {
			s := entry.State
			return &s, nil
		}
		c.lru.Remove(playerID)
	}

	s, err := c.inner.GetSnapshot(ctx, playerID)
	if err != nil {
		return nil, err
	}
	c.set(playerID, *s)
	return s, nil
}

// SaveSnapshot writes through to the inner store and refreshes the cache.
func (c *CachedSnapshots) SaveSnapshot(ctx context.Context, playerID string, s domain.GameState) error {
	if err := c.inner.SaveSnapshot(ctx, playerID, s); err != nil {
		// The inner store may or may not have applied the write; drop the
		// cached entry so the next read goes to the source of truth.
		c.lru.Remove(playerID)
		return err
	}
	c.set(playerID, s)
	return nil
}

func (c *CachedSnapshots) set(playerID string, s domain.GameState) {
	c.lru.Add(playerID, &cachedSnapshotEntry{
		Version:  CacheSchemaVersion,
		State:    s,
		CachedAt: time.Now(),
	})
}

package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mlarsden/PocketFarm_Go/internal/domain"
)

// EventSchemaVersion is the version stamped on every published event.
const EventSchemaVersion = "1.0"

// Type represents the type of an event
type Type string

// Common event types
const (
	ActionApplied  Type = Type(domain.EventTypeActionApplied)
	ActionRejected Type = Type(domain.EventTypeActionRejected)
	StateSynced    Type = Type(domain.EventTypeStateSynced)
	SyncFailed     Type = Type(domain.EventTypeSyncFailed)
)

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// NewActionAppliedEvent creates an action.applied event with a typed payload.
func NewActionAppliedEvent(playerID, action, slotID string, revision int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ActionApplied,
		Payload: domain.ActionAppliedPayload{
			PlayerID:  playerID,
			Action:    action,
			SlotID:    slotID,
			Revision:  revision,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewActionRejectedEvent creates an action.rejected event with a typed payload.
func NewActionRejectedEvent(playerID, action, slotID, reason string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ActionRejected,
		Payload: domain.ActionRejectedPayload{
			PlayerID:  playerID,
			Action:    action,
			SlotID:    slotID,
			Reason:    reason,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewStateSyncedEvent creates a state.synced event.
func NewStateSyncedEvent(playerID string, revision int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    StateSynced,
		Payload: domain.StateSyncedPayload{
			PlayerID:  playerID,
			Revision:  revision,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewSyncFailedEvent creates a state.sync_failed event.
func NewSyncFailedEvent(playerID string, revision int64, err error) Event {
	payload := domain.StateSyncedPayload{
		PlayerID:  playerID,
		Revision:  revision,
		Timestamp: time.Now().Unix(),
	}
	if err != nil {
		payload.Error = err.Error()
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    SyncFailed,
		Payload: payload,
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers synchronously.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d handler(s) failed for %s: %v", len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

package metrics

import (
	"context"

	"github.com/mlarsden/PocketFarm_Go/internal/domain"
	"github.com/mlarsden/PocketFarm_Go/internal/event"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	bus.Subscribe(event.ActionApplied, e.HandleEvent)
	bus.Subscribe(event.ActionRejected, e.HandleEvent)
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(_ context.Context, evt event.Event) error {
	switch payload := evt.Payload.(type) {
	case domain.ActionAppliedPayload:
		ActionsApplied.WithLabelValues(payload.Action).Inc()
	case domain.ActionRejectedPayload:
		ActionsRejected.WithLabelValues(payload.Action).Inc()
	}
	return nil
}

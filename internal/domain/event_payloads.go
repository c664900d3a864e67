package domain

// Event type name constants shared between publishers and subscribers.
const (
	EventTypeActionApplied  = "action.applied"
	EventTypeActionRejected = "action.rejected"
	EventTypeStateSynced    = "state.synced"
	EventTypeSyncFailed     = "state.sync_failed"
)

// ActionAppliedPayload is the event payload for action.applied events
type ActionAppliedPayload struct {
	PlayerID  string `json:"player_id"`
	Action    string `json:"action"`
	SlotID    string `json:"slot_id,omitempty"`
	Revision  int64  `json:"revision"`
	Timestamp int64  `json:"timestamp"`
}

// ActionRejectedPayload is the event payload for action.rejected events
type ActionRejectedPayload struct {
	PlayerID  string `json:"player_id"`
	Action    string `json:"action"`
	SlotID    string `json:"slot_id,omitempty"`
	Reason    string `json:"reason"`
	Timestamp int64  `json:"timestamp"`
}

// StateSyncedPayload is the event payload for state.synced and
// state.sync_failed events
type StateSyncedPayload struct {
	PlayerID  string `json:"player_id"`
	Revision  int64  `json:"revision"`
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

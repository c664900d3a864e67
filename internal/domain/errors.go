package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Slot errors
	ErrMsgSlotNotFound = "slot not found"
	ErrMsgSlotBusy     = "slot is already producing"
	ErrMsgSlotIdle     = "slot has no production in progress"
	ErrMsgSlotNotReady = "production is not ready"
	ErrMsgSlotReady    = "production is already ready"
	ErrMsgSlotLocked   = "slot is locked"
	ErrMsgSlotUnlocked = "slot is already unlocked"
	ErrMsgUnlockGated  = "unlock requirements not met"
	ErrMsgMaxGemLevel  = "gem upgrade already at maximum"

	// Resource errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgNothingToSell     = "nothing to sell"

	// Snapshot errors
	ErrMsgSnapshotNotFound = "snapshot not found"
	ErrMsgStaleSnapshot    = "stale snapshot revision"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Reducer actions return these alongside the unchanged input state so the
// dispatch layer can report why an action was rejected. Wrap with
// fmt.Errorf("%w: ...", domain.ErrXxx) for additional context.
var (
	// Slot errors
	ErrSlotNotFound = errors.New(ErrMsgSlotNotFound)
	ErrSlotBusy     = errors.New(ErrMsgSlotBusy)
	ErrSlotIdle     = errors.New(ErrMsgSlotIdle)
	ErrSlotNotReady = errors.New(ErrMsgSlotNotReady)
	ErrSlotReady    = errors.New(ErrMsgSlotReady)
	ErrSlotLocked   = errors.New(ErrMsgSlotLocked)
	ErrSlotUnlocked = errors.New(ErrMsgSlotUnlocked)
	ErrUnlockGated  = errors.New(ErrMsgUnlockGated)
	ErrMaxGemLevel  = errors.New(ErrMsgMaxGemLevel)

	// Resource errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrNothingToSell     = errors.New(ErrMsgNothingToSell)

	// Snapshot errors
	ErrSnapshotNotFound = errors.New(ErrMsgSnapshotNotFound)
	ErrStaleSnapshot    = errors.New(ErrMsgStaleSnapshot)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

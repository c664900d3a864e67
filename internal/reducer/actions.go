package reducer

import (
	"fmt"

	"github.com/mlarsden/PocketFarm_Go/internal/domain"
	"github.com/mlarsden/PocketFarm_Go/internal/state"
)

// Plant starts production on an idle crop plot, debiting the seed cost.
func (e *Engine) Plant(s domain.GameState, slotID string) (domain.GameState, error) {
	return e.startProduction(s, slotID, state.KindCrop)
}

// Feed starts production on an idle animal pen, debiting one feed.
func (e *Engine) Feed(s domain.GameState, slotID string) (domain.GameState, error) {
	return e.startProduction(s, slotID, state.KindAnimal)
}

func (e *Engine) startProduction(s domain.GameState, slotID string, kind state.SlotKind) (domain.GameState, error) {
	slot, ref, ok := findSlot(s, slotID)
	if !ok {
		return s, fmt.Errorf("%w: %s", domain.ErrSlotNotFound, slotID)
	}
	spec, ok := state.Spec(slot.Type)
	if !ok || spec.Kind != kind {
		return s, fmt.Errorf("%w: %s", domain.ErrSlotNotFound, slotID)
	}
	if !slot.Unlocked {
		return s, domain.ErrSlotLocked
	}
	if slot.Timer != nil {
		return s, domain.ErrSlotBusy
	}
	if !s.Resources.CanAfford(spec.CostResource, spec.StartCost) {
		return s, domain.ErrInsufficientFunds
	}

	slot.Timer = e.newTimer(spec.DurationMinutes, slot.GemUpgradeLevel)
	next := replaceSlot(s, ref, slot)
	next.Resources = s.Resources.Add(spec.CostResource, -spec.StartCost)
	return bump(next), nil
}

// Harvest collects a finished crop plot.
func (e *Engine) Harvest(s domain.GameState, slotID string) (domain.GameState, error) {
	return e.collect(s, slotID, state.KindCrop)
}

// Collect gathers produce from a finished animal pen.
func (e *Engine) Collect(s domain.GameState, slotID string) (domain.GameState, error) {
	return e.collect(s, slotID, state.KindAnimal)
}

func (e *Engine) collect(s domain.GameState, slotID string, kind state.SlotKind) (domain.GameState, error) {
	slot, ref, ok := findSlot(s, slotID)
	if !ok {
		return s, fmt.Errorf("%w: %s", domain.ErrSlotNotFound, slotID)
	}
	spec, ok := state.Spec(slot.Type)
	if !ok || spec.Kind != kind {
		return s, fmt.Errorf("%w: %s", domain.ErrSlotNotFound, slotID)
	}
	if slot.Timer == nil {
		return s, domain.ErrSlotIdle
	}
	if !e.IsTimerReady(slot.Timer) {
		return s, domain.ErrSlotNotReady
	}

	slot.Timer = nil
	total := slot.HarvestsSinceLevel + 1
	slot.Level += total / HarvestsPerLevel
	slot.HarvestsSinceLevel = total % HarvestsPerLevel

	next := replaceSlot(s, ref, slot)
	next.Resources = s.Resources.Add(spec.Yields, effectiveYield(spec, slot.GemUpgradeLevel))
	return bump(next), nil
}

// BoostCost returns the gem price of force-completing the slot's timer:
// one gem per remaining whole minute, minimum one. Zero when the slot has
// no timer or the timer is already ready.
func (e *Engine) BoostCost(s domain.GameState, slotID string) int {
	slot, _, ok := findSlot(s, slotID)
	if !ok || slot.Timer == nil || e.IsTimerReady(slot.Timer) {
		return 0
	}
	return boostPrice(e.remainingMs(slot.Timer))
}

func (e *Engine) remainingMs(t *domain.Timer) int64 {
	return t.StartedAt + t.DurationMs - e.nowMs()
}

func boostPrice(remainingMs int64) int {
	minutes := int((remainingMs + 59_999) / 60_000)
	cost := minutes * BoostGemsPerMinute
	if cost < 1 {
		cost = 1
	}
	return cost
}

// Boost pays gems to finish a running timer immediately.
func (e *Engine) Boost(s domain.GameState, slotID string) (domain.GameState, error) {
	slot, ref, ok := findSlot(s, slotID)
	if !ok {
		return s, fmt.Errorf("%w: %s", domain.ErrSlotNotFound, slotID)
	}
	if slot.Timer == nil {
		return s, domain.ErrSlotIdle
	}
	if e.IsTimerReady(slot.Timer) {
		return s, domain.ErrSlotReady
	}

	cost := boostPrice(e.remainingMs(slot.Timer))
	if !s.Resources.CanAfford(domain.ResGems, cost) {
		return s, domain.ErrInsufficientFunds
	}

	// Rewrite the timer so it reads as elapsed right now. A fresh Timer is
	// allocated because the old one is shared with prior snapshots.
	slot.Timer = &domain.Timer{
		StartedAt:  e.nowMs() - slot.Timer.DurationMs,
		DurationMs: slot.Timer.DurationMs,
	}
	next := replaceSlot(s, ref, slot)
	next.Resources = s.Resources.Add(domain.ResGems, -cost)
	return bump(next), nil
}

// Upgrade is the paid per-slot level-up: level * 50 coins for +1 level.
func (e *Engine) Upgrade(s domain.GameState, slotID string) (domain.GameState, error) {
	slot, ref, ok := findSlot(s, slotID)
	if !ok {
		return s, fmt.Errorf("%w: %s", domain.ErrSlotNotFound, slotID)
	}
	cost := slot.Level * UpgradeCostPerLevel
	if !s.Resources.CanAfford(domain.ResCoins, cost) {
		return s, domain.ErrInsufficientFunds
	}

	slot.Level++
	next := replaceSlot(s, ref, slot)
	next.Resources = s.Resources.Add(domain.ResCoins, -cost)
	return bump(next), nil
}

// GemUpgrade raises the slot's gem-upgrade tier. This is the only lever
// that changes per-cycle speed and yield, both by a factor of two per tier.
func (e *Engine) GemUpgrade(s domain.GameState, slotID string) (domain.GameState, error) {
	slot, ref, ok := findSlot(s, slotID)
	if !ok {
		return s, fmt.Errorf("%w: %s", domain.ErrSlotNotFound, slotID)
	}
	spec, ok := state.Spec(slot.Type)
	if !ok {
		return s, fmt.Errorf("%w: %s", domain.ErrSlotNotFound, slotID)
	}
	if slot.GemUpgradeLevel >= spec.MaxGemLevel {
		return s, domain.ErrMaxGemLevel
	}
	if !s.Resources.CanAfford(domain.ResGems, spec.GemUpgradePrice) {
		return s, domain.ErrInsufficientFunds
	}

	slot.GemUpgradeLevel++
	next := replaceSlot(s, ref, slot)
	next.Resources = s.Resources.Add(domain.ResGems, -spec.GemUpgradePrice)
	return bump(next), nil
}

// UnlockSlot purchases a gated slot once its prerequisite slots have
// reached the required gem-upgrade levels.
func (e *Engine) UnlockSlot(s domain.GameState, slotID string) (domain.GameState, error) {
	slot, ref, ok := findSlot(s, slotID)
	if !ok {
		return s, fmt.Errorf("%w: %s", domain.ErrSlotNotFound, slotID)
	}
	if slot.Unlocked {
		return s, domain.ErrSlotUnlocked
	}
	if !s.Resources.CanAfford(domain.ResGems, UnlockGemCost) {
		return s, domain.ErrInsufficientFunds
	}
	if !state.UnlockRequirementsMet(s, slotID) {
		return s, domain.ErrUnlockGated
	}

	slot.Unlocked = true
	next := replaceSlot(s, ref, slot)
	next.Resources = s.Resources.Add(domain.ResGems, -UnlockGemCost)
	return bump(next), nil
}

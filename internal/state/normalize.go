package state

import (
	"encoding/json"
	"errors"
	"math"

	"github.com/mlarsden/PocketFarm_Go/internal/domain"
)

// resourceDefaults returns the canonical default for each resource field:
// the starting balance for currencies and feed, zero for producible goods.
func resourceDefault(key domain.ResourceKey) int {
	switch key {
	case domain.ResCoins:
		return StartingCoins
	case domain.ResGems:
		return StartingGems
	case domain.ResFeed:
		return StartingFeed
	}
	return 0
}

// allResourceKeys is the full field list of the Resources record.
var allResourceKeys = append(
	[]domain.ResourceKey{domain.ResCoins, domain.ResGems, domain.ResFeed},
	domain.ProducibleResources...,
)

// wellFormedCount extracts a usable counter value from an untrusted JSON
// field. Accepts non-negative finite numbers only.
func wellFormedCount(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
			return 0, false
		}
		return int(n), true
	case int:
		if n < 0 {
			return 0, false
		}
		return n, true
	case int64:
		if n < 0 {
			return 0, false
		}
		return int(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil || f < 0 {
			return 0, false
		}
		return int(f), true
	}
	return 0, false
}

// NormalizeResources repairs a loosely-typed resource record. Each
// recognized field keeps the input value when it is a well-formed number and
// falls back to the canonical default otherwise, so the result always has
// every field.
func NormalizeResources(partial map[string]any) domain.Resources {
	var res domain.Resources
	for _, key := range allResourceKeys {
		value := resourceDefault(key)
		if partial != nil {
			if n, ok := wellFormedCount(partial[string(key)]); ok {
				value = n
			}
		}
		res = res.Add(key, value)
	}
	return res
}

// normalizeResourcesStruct guards the non-negativity invariant on an
// already-typed record.
func normalizeResourcesStruct(r domain.Resources) domain.Resources {
	for _, key := range allResourceKeys {
		if n := r.Get(key); n < 0 {
			r = r.Add(key, -n)
		}
	}
	return r
}

func validTimer(t *domain.Timer) *domain.Timer {
	if t == nil || t.StartedAt <= 0 || t.DurationMs <= 0 {
		return nil
	}
	return t
}

// mergeSlot overlays an existing slot onto its template entry. Identity
// fields always come from the template; progress fields survive when they
// are in range.
func mergeSlot(tmpl domain.Slot, existing *domain.Slot, spec SlotSpec) domain.Slot {
	merged := tmpl
	if existing == nil {
		return merged
	}
	if existing.Level >= 1 {
		merged.Level = existing.Level
	}
	merged.Timer = validTimer(existing.Timer)
	if existing.GemUpgradeLevel > 0 {
		merged.GemUpgradeLevel = existing.GemUpgradeLevel
		if merged.GemUpgradeLevel > spec.MaxGemLevel {
			merged.GemUpgradeLevel = spec.MaxGemLevel
		}
	}
	if existing.Unlocked {
		merged.Unlocked = true
	}
	if existing.HarvestsSinceLevel >= 0 && existing.HarvestsSinceLevel < harvestsPerLevel {
		merged.HarvestsSinceLevel = existing.HarvestsSinceLevel
	}
	return merged
}

// harvestsPerLevel mirrors the leveling cycle length used by the reducer.
const harvestsPerLevel = 5

func mergeCollection(entries []templateEntry, existing []domain.Slot) []domain.Slot {
	byID := make(map[string]*domain.Slot, len(existing))
	for i := range existing {
		if existing[i].ID == "" {
			continue
		}
		byID[existing[i].ID] = &existing[i]
	}

	merged := make([]domain.Slot, 0, len(entries))
	for _, e := range entries {
		spec := Catalog[e.slotType]
		tmpl := domain.Slot{
			ID:        e.id,
			Type:      e.slotType,
			Level:     1,
			BaseYield: spec.BaseYield,
			Unlocked:  e.unlocked,
		}
		merged = append(merged, mergeSlot(tmpl, byID[e.id], spec))
	}
	return merged
}

// EnsureExtendedState repairs a whole state into a schema-complete one:
// slot collections are rebuilt from the template with any matching existing
// slot's progress overlaid, resources are normalized, and every other
// top-level field is preserved. Newly introduced template slots are added to
// legacy states automatically. Idempotent: applying it twice equals once.
func EnsureExtendedState(s domain.GameState) domain.GameState {
	repaired := s
	repaired.Crops = mergeCollection(cropTemplate, s.Crops)
	repaired.Animals = mergeCollection(animalTemplate, s.Animals)
	repaired.Resources = normalizeResourcesStruct(s.Resources)
	if repaired.Level < 1 {
		repaired.Level = 1
	}
	if repaired.Revision < 0 {
		repaired.Revision = 0
	}
	return repaired
}

// rawSnapshot is the tolerant decode target for externally-sourced state.
// Slots are kept raw so one corrupt entry cannot reject the whole snapshot.
type rawSnapshot struct {
	Level            int               `json:"level"`
	Resources        map[string]any    `json:"resources"`
	Crops            []json.RawMessage `json:"crops"`
	Animals          []json.RawMessage `json:"animals"`
	Revision         int64             `json:"revision"`
	ReferrerID       string            `json:"referrer_id"`
	ReferrerUsername string            `json:"referrer_username"`
}

func decodeSlots(raw []json.RawMessage) []domain.Slot {
	slots := make([]domain.Slot, 0, len(raw))
	for _, entry := range raw {
		var slot domain.Slot
		if err := json.Unmarshal(entry, &slot); err != nil {
			continue
		}
		if slot.ID == "" {
			continue
		}
		slots = append(slots, slot)
	}
	return slots
}

// DecodeSnapshot parses a stored or remote snapshot and repairs it into a
// schema-complete state. Malformed input never rejects the load: a
// wrong-typed field is dropped while every field that did parse survives,
// and only input that does not parse at all comes back as a fresh farm,
// with the error reporting what could not be read.
func DecodeSnapshot(data []byte) (domain.GameState, error) {
	var raw rawSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return NewGameState(), err
		}
		// Decoding continues past a wrong-typed field, so raw holds
		// everything else; the repair below rebuilds what was dropped.
	}

	s := domain.GameState{
		Level:            raw.Level,
		Resources:        NormalizeResources(raw.Resources),
		Crops:            decodeSlots(raw.Crops),
		Animals:          decodeSlots(raw.Animals),
		Revision:         raw.Revision,
		ReferrerID:       raw.ReferrerID,
		ReferrerUsername: raw.ReferrerUsername,
	}
	return EnsureExtendedState(s), nil
}

// EncodeSnapshot serializes a state for storage or transmission.
func EncodeSnapshot(s domain.GameState) ([]byte, error) {
	return json.Marshal(s)
}

package state

import "github.com/mlarsden/PocketFarm_Go/internal/domain"

// Starting resources for a fresh farm.
const (
	StartingCoins = 100
	StartingGems  = 5
	StartingFeed  = 5
)

// templateEntry describes one slot of the fixed farm template.
type templateEntry struct {
	id       string
	slotType domain.SlotType
	unlocked bool
}

// The fixed 6-crop/6-animal template. The first three crop plots and the
// first two animal pens start unlocked; the rest are gated behind gem
// upgrades of earlier slots (see unlockRequirements).
var (
	cropTemplate = []templateEntry{
		{id: "crop-1", slotType: domain.CropTomato, unlocked: true},
		{id: "crop-2", slotType: domain.CropCucumber, unlocked: true},
		{id: "crop-3", slotType: domain.CropTomato, unlocked: true},
		{id: "crop-4", slotType: domain.CropCorn, unlocked: false},
		{id: "crop-5", slotType: domain.CropWatermelon, unlocked: false},
		{id: "crop-6", slotType: domain.CropApple, unlocked: false},
	}
	animalTemplate = []templateEntry{
		{id: "animal-1", slotType: domain.AnimalCow, unlocked: true},
		{id: "animal-2", slotType: domain.AnimalChicken, unlocked: true},
		{id: "animal-3", slotType: domain.AnimalGoat, unlocked: false},
		{id: "animal-4", slotType: domain.AnimalSheep, unlocked: false},
		{id: "animal-5", slotType: domain.AnimalPig, unlocked: false},
		{id: "animal-6", slotType: domain.AnimalGoose, unlocked: false},
	}
)

// GemRequirement is one edge of the unlock gating tree: the named slot must
// have reached the given gem-upgrade level.
type GemRequirement struct {
	SlotID      string
	MinGemLevel int
}

// unlockRequirements maps locked template slots to the gem levels other
// slots must reach before they can be purchased.
var unlockRequirements = map[string][]GemRequirement{
	"crop-4": {
		{SlotID: "crop-1", MinGemLevel: 2},
		{SlotID: "crop-2", MinGemLevel: 2},
		{SlotID: "crop-3", MinGemLevel: 2},
	},
	"crop-5": {
		{SlotID: "crop-4", MinGemLevel: 2},
	},
	"crop-6": {
		{SlotID: "crop-5", MinGemLevel: 2},
	},
	"animal-3": {
		{SlotID: "crop-1", MinGemLevel: 2},
		{SlotID: "crop-2", MinGemLevel: 2},
		{SlotID: "crop-3", MinGemLevel: 2},
		{SlotID: "animal-1", MinGemLevel: 1},
		{SlotID: "animal-2", MinGemLevel: 1},
	},
	"animal-4": {
		{SlotID: "animal-3", MinGemLevel: 2},
	},
	"animal-5": {
		{SlotID: "animal-4", MinGemLevel: 2},
	},
	"animal-6": {
		{SlotID: "animal-5", MinGemLevel: 2},
	},
}

// UnlockRequirements returns the gating edges for a slot, nil when the slot
// has no prerequisites.
func UnlockRequirements(slotID string) []GemRequirement {
	return unlockRequirements[slotID]
}

// UnlockRequirementsMet reports whether every prerequisite slot has reached
// the required gem-upgrade level.
func UnlockRequirementsMet(s domain.GameState, slotID string) bool {
	for _, req := range unlockRequirements[slotID] {
		dep := s.FindSlot(req.SlotID)
		if dep == nil || dep.GemUpgradeLevel < req.MinGemLevel {
			return false
		}
	}
	return true
}

func buildSlots(entries []templateEntry) []domain.Slot {
	slots := make([]domain.Slot, 0, len(entries))
	for _, e := range entries {
		spec := Catalog[e.slotType]
		slots = append(slots, domain.Slot{
			ID:        e.id,
			Type:      e.slotType,
			Level:     1,
			BaseYield: spec.BaseYield,
			Unlocked:  e.unlocked,
		})
	}
	return slots
}

// NewGameState is the deterministic factory for a fresh farm: the fixed
// template slots, starting resources, all production counters zero.
func NewGameState() domain.GameState {
	return domain.GameState{
		Level: 1,
		Resources: domain.Resources{
			Coins: StartingCoins,
			Gems:  StartingGems,
			Feed:  StartingFeed,
		},
		Crops:   buildSlots(cropTemplate),
		Animals: buildSlots(animalTemplate),
	}
}

package domain

// SlotType identifies what a production slot grows or raises.
type SlotType string

// Crop types
const (
	CropTomato     SlotType = "tomato"
	CropCucumber   SlotType = "cucumber"
	CropCorn       SlotType = "corn"
	CropWatermelon SlotType = "watermelon"
	CropApple      SlotType = "apple"
)

// Animal types
const (
	AnimalCow     SlotType = "cow"
	AnimalChicken SlotType = "chicken"
	AnimalGoat    SlotType = "goat"
	AnimalSheep   SlotType = "sheep"
	AnimalPig     SlotType = "pig"
	AnimalGoose   SlotType = "goose"
)

// Timer marks a slot as busy producing. StartedAt is unix milliseconds.
// A nil *Timer on a slot means the slot is idle.
type Timer struct {
	StartedAt  int64 `json:"started_at"`
	DurationMs int64 `json:"duration_ms"`
}

// Slot is one farmable production unit (a crop plot or an animal pen).
// ID and Type are assigned by the template and never change.
type Slot struct {
	ID                 string   `json:"id"`
	Type               SlotType `json:"type"`
	Level              int      `json:"level"`
	BaseYield          int      `json:"base_yield"`
	Timer              *Timer   `json:"timer,omitempty"`
	GemUpgradeLevel    int      `json:"gem_upgrade_level"`
	Unlocked           bool     `json:"unlocked"`
	HarvestsSinceLevel int      `json:"harvests_since_level"`
}

// GameState is the aggregate root for a single player's farm.
// Reducer functions never mutate a GameState in place; every action
// produces a new snapshot, sharing unchanged slot slices with the input.
type GameState struct {
	Level            int       `json:"level"`
	Resources        Resources `json:"resources"`
	Crops            []Slot    `json:"crops"`
	Animals          []Slot    `json:"animals"`
	Revision         int64     `json:"revision"`
	ReferrerID       string    `json:"referrer_id,omitempty"`
	ReferrerUsername string    `json:"referrer_username,omitempty"`
}

// CropSlot returns the crop slot with the given ID, or nil.
func (s *GameState) CropSlot(id string) *Slot {
	for i := range s.Crops {
		if s.Crops[i].ID == id {
			return &s.Crops[i]
		}
	}
	return nil
}

// AnimalSlot returns the animal slot with the given ID, or nil.
func (s *GameState) AnimalSlot(id string) *Slot {
	for i := range s.Animals {
		if s.Animals[i].ID == id {
			return &s.Animals[i]
		}
	}
	return nil
}

// FindSlot looks the slot up in both collections.
func (s *GameState) FindSlot(id string) *Slot {
	if slot := s.CropSlot(id); slot != nil {
		return slot
	}
	return s.AnimalSlot(id)
}

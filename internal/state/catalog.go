package state

import "github.com/mlarsden/PocketFarm_Go/internal/domain"

// SlotKind distinguishes crop plots from animal pens.
type SlotKind string

const (
	KindCrop   SlotKind = "crop"
	KindAnimal SlotKind = "animal"
)

// SlotSpec is the per-type rule record: starting cost, base production
// duration, base yield and where it lands, and the gem-upgrade ceiling and
// price. One table instead of per-type switch statements, so adding a type
// cannot silently miss a case.
type SlotSpec struct {
	Kind            SlotKind
	CostResource    domain.ResourceKey
	StartCost       int
	DurationMinutes int
	BaseYield       int
	Yields          domain.ResourceKey
	MaxGemLevel     int
	GemUpgradePrice int
}

// Catalog maps every slot type to its spec.
var Catalog = map[domain.SlotType]SlotSpec{
	domain.CropTomato: {
		Kind: KindCrop, CostResource: domain.ResCoins, StartCost: 5,
		DurationMinutes: 3, BaseYield: 2, Yields: domain.ResTomato,
		MaxGemLevel: 2, GemUpgradePrice: 20,
	},
	domain.CropCucumber: {
		Kind: KindCrop, CostResource: domain.ResCoins, StartCost: 5,
		DurationMinutes: 5, BaseYield: 2, Yields: domain.ResCucumber,
		MaxGemLevel: 2, GemUpgradePrice: 20,
	},
	domain.CropCorn: {
		Kind: KindCrop, CostResource: domain.ResCoins, StartCost: 10,
		DurationMinutes: 6, BaseYield: 3, Yields: domain.ResCorn,
		MaxGemLevel: 2, GemUpgradePrice: 20,
	},
	domain.CropWatermelon: {
		Kind: KindCrop, CostResource: domain.ResCoins, StartCost: 15,
		DurationMinutes: 8, BaseYield: 3, Yields: domain.ResWatermelon,
		MaxGemLevel: 2, GemUpgradePrice: 20,
	},
	domain.CropApple: {
		Kind: KindCrop, CostResource: domain.ResCoins, StartCost: 20,
		DurationMinutes: 10, BaseYield: 4, Yields: domain.ResApple,
		MaxGemLevel: 2, GemUpgradePrice: 20,
	},
	domain.AnimalCow: {
		Kind: KindAnimal, CostResource: domain.ResFeed, StartCost: 1,
		DurationMinutes: 10, BaseYield: 2, Yields: domain.ResMilk,
		MaxGemLevel: 1, GemUpgradePrice: 30,
	},
	domain.AnimalChicken: {
		Kind: KindAnimal, CostResource: domain.ResFeed, StartCost: 1,
		DurationMinutes: 8, BaseYield: 3, Yields: domain.ResEgg,
		MaxGemLevel: 1, GemUpgradePrice: 20,
	},
	domain.AnimalGoat: {
		Kind: KindAnimal, CostResource: domain.ResFeed, StartCost: 1,
		DurationMinutes: 9, BaseYield: 2, Yields: domain.ResCheese,
		MaxGemLevel: 2, GemUpgradePrice: 60,
	},
	domain.AnimalSheep: {
		Kind: KindAnimal, CostResource: domain.ResFeed, StartCost: 1,
		DurationMinutes: 9, BaseYield: 2, Yields: domain.ResWool,
		MaxGemLevel: 2, GemUpgradePrice: 60,
	},
	domain.AnimalPig: {
		Kind: KindAnimal, CostResource: domain.ResFeed, StartCost: 1,
		DurationMinutes: 12, BaseYield: 1, Yields: domain.ResMeat,
		MaxGemLevel: 2, GemUpgradePrice: 60,
	},
	domain.AnimalGoose: {
		Kind: KindAnimal, CostResource: domain.ResFeed, StartCost: 1,
		DurationMinutes: 7, BaseYield: 3, Yields: domain.ResFeathers,
		MaxGemLevel: 2, GemUpgradePrice: 60,
	},
}

// Spec returns the catalog entry for a slot type.
func Spec(t domain.SlotType) (SlotSpec, bool) {
	spec, ok := Catalog[t]
	return spec, ok
}

// SellBasePrices holds the per-unit base price of each producible good.
// Sale income per unit is round(base * SellMarkup).
var SellBasePrices = map[domain.ResourceKey]int{
	domain.ResTomato:     3,
	domain.ResCucumber:   4,
	domain.ResCorn:       5,
	domain.ResWatermelon: 6,
	domain.ResApple:      6,
	domain.ResMilk:       9,
	domain.ResEgg:        6,
	domain.ResCheese:     11,
	domain.ResMeat:       13,
	domain.ResFeathers:   4,
	domain.ResWool:       7,
}

// SellMarkup is the flat markup applied to base prices when selling produce.
const SellMarkup = 1.25

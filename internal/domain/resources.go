package domain

// ResourceKey names one field of the Resources record.
type ResourceKey string

// Resource keys. Coins and gems are currencies, feed is a consumable,
// the rest are producible goods credited by harvest/collect.
const (
	ResCoins      ResourceKey = "coins"
	ResGems       ResourceKey = "gems"
	ResFeed       ResourceKey = "feed"
	ResTomato     ResourceKey = "tomato"
	ResCucumber   ResourceKey = "cucumber"
	ResCorn       ResourceKey = "corn"
	ResWatermelon ResourceKey = "watermelon"
	ResApple      ResourceKey = "apple"
	ResMilk       ResourceKey = "milk"
	ResEgg        ResourceKey = "egg"
	ResCheese     ResourceKey = "cheese"
	ResMeat       ResourceKey = "meat"
	ResFeathers   ResourceKey = "feathers"
	ResWool       ResourceKey = "wool"
)

// ProducibleResources lists the 11 goods that harvest credits and sell drains,
// in canonical order.
var ProducibleResources = []ResourceKey{
	ResTomato, ResCucumber, ResCorn, ResWatermelon, ResApple,
	ResMilk, ResEgg, ResCheese, ResMeat, ResFeathers, ResWool,
}

// Resources is the flat record of named counters. All fields are
// non-negative integers; every mutation goes through affordability checks
// before debiting, so arithmetic never drives a field below zero.
type Resources struct {
	Coins      int `json:"coins"`
	Gems       int `json:"gems"`
	Feed       int `json:"feed"`
	Tomato     int `json:"tomato"`
	Cucumber   int `json:"cucumber"`
	Corn       int `json:"corn"`
	Watermelon int `json:"watermelon"`
	Apple      int `json:"apple"`
	Milk       int `json:"milk"`
	Egg        int `json:"egg"`
	Cheese     int `json:"cheese"`
	Meat       int `json:"meat"`
	Feathers   int `json:"feathers"`
	Wool       int `json:"wool"`
}

// Get returns the counter for the given key, 0 for unknown keys.
func (r Resources) Get(key ResourceKey) int {
	switch key {
	case ResCoins:
		return r.Coins
	case ResGems:
		return r.Gems
	case ResFeed:
		return r.Feed
	case ResTomato:
		return r.Tomato
	case ResCucumber:
		return r.Cucumber
	case ResCorn:
		return r.Corn
	case ResWatermelon:
		return r.Watermelon
	case ResApple:
		return r.Apple
	case ResMilk:
		return r.Milk
	case ResEgg:
		return r.Egg
	case ResCheese:
		return r.Cheese
	case ResMeat:
		return r.Meat
	case ResFeathers:
		return r.Feathers
	case ResWool:
		return r.Wool
	}
	return 0
}

// Add returns a copy of the record with delta applied to the given key.
// Resources is a value type, so the receiver is untouched.
func (r Resources) Add(key ResourceKey, delta int) Resources {
	switch key {
	case ResCoins:
		r.Coins += delta
	case ResGems:
		r.Gems += delta
	case ResFeed:
		r.Feed += delta
	case ResTomato:
		r.Tomato += delta
	case ResCucumber:
		r.Cucumber += delta
	case ResCorn:
		r.Corn += delta
	case ResWatermelon:
		r.Watermelon += delta
	case ResApple:
		r.Apple += delta
	case ResMilk:
		r.Milk += delta
	case ResEgg:
		r.Egg += delta
	case ResCheese:
		r.Cheese += delta
	case ResMeat:
		r.Meat += delta
	case ResFeathers:
		r.Feathers += delta
	case ResWool:
		r.Wool += delta
	}
	return r
}

// CanAfford reports whether the counter for key holds at least cost.
func (r Resources) CanAfford(key ResourceKey, cost int) bool {
	return r.Get(key) >= cost
}

package reducer

// Economy rule constants. Per-type data (costs, durations, yields, gem
// ceilings) lives in the state catalog; these are the flat rules shared by
// every type.
const (
	// HarvestsPerLevel is the number of completed production cycles that
	// grant a slot one automatic level.
	HarvestsPerLevel = 5

	// UnlockGemCost is the flat gem price of unlocking a gated slot.
	UnlockGemCost = 30

	// BoostGemsPerMinute is the gem price per remaining whole minute when
	// force-completing a timer. The minimum boost price is 1 gem.
	BoostGemsPerMinute = 1

	// UpgradeCostPerLevel scales the coin price of a paid level-up:
	// cost = level * UpgradeCostPerLevel.
	UpgradeCostPerLevel = 50

	// Feed pack: coins in, feed out.
	FeedPackCost   = 20
	FeedPackAmount = 5

	// Gems-to-coins exchange.
	GemExchangeCost  = 10
	GemExchangeCoins = 100

	// Coins-to-gems exchange.
	CoinExchangeCost = 100000
	CoinExchangeGems = 10000
)

// Action name constants for events, metrics and dispatch.
const (
	ActionPlant         = "plant"
	ActionFeed          = "feed"
	ActionHarvest       = "harvest"
	ActionCollect       = "collect"
	ActionBoost         = "boost"
	ActionUpgrade       = "upgrade"
	ActionGemUpgrade    = "gem_upgrade"
	ActionUnlock        = "unlock"
	ActionSell          = "sell"
	ActionBuyFeed       = "buy_feed"
	ActionExchangeGems  = "exchange_gems"
	ActionExchangeCoins = "exchange_coins"
)

package reducer

import (
	"math"

	"github.com/mlarsden/PocketFarm_Go/internal/domain"
	"github.com/mlarsden/PocketFarm_Go/internal/state"
)

// SellUnitPrice returns the per-unit sale income for a producible good:
// round(basePrice * markup).
func SellUnitPrice(key domain.ResourceKey) int {
	base, ok := state.SellBasePrices[key]
	if !ok {
		return 0
	}
	return int(math.Round(float64(base) * state.SellMarkup))
}

// SellIncome computes the total coin income of selling every producible
// good currently held, without applying the sale.
func SellIncome(res domain.Resources) int {
	income := 0
	for _, key := range domain.ProducibleResources {
		income += res.Get(key) * SellUnitPrice(key)
	}
	return income
}

// SellProduce sells all producible goods at once, crediting coins and
// zeroing the 11 produce fields. No-op when there is nothing to sell.
func (e *Engine) SellProduce(s domain.GameState) (domain.GameState, error) {
	income := SellIncome(s.Resources)
	if income <= 0 {
		return s, domain.ErrNothingToSell
	}

	res := s.Resources.Add(domain.ResCoins, income)
	for _, key := range domain.ProducibleResources {
		if n := res.Get(key); n > 0 {
			res = res.Add(key, -n)
		}
	}

	next := s
	next.Resources = res
	return bump(next), nil
}

// BuyFeed exchanges coins for a pack of feed.
func (e *Engine) BuyFeed(s domain.GameState) (domain.GameState, error) {
	if !s.Resources.CanAfford(domain.ResCoins, FeedPackCost) {
		return s, domain.ErrInsufficientFunds
	}
	next := s
	next.Resources = s.Resources.
		Add(domain.ResCoins, -FeedPackCost).
		Add(domain.ResFeed, FeedPackAmount)
	return bump(next), nil
}

// ExchangeGemsToCoins trades 10 gems for 100 coins.
func (e *Engine) ExchangeGemsToCoins(s domain.GameState) (domain.GameState, error) {
	if !s.Resources.CanAfford(domain.ResGems, GemExchangeCost) {
		return s, domain.ErrInsufficientFunds
	}
	next := s
	next.Resources = s.Resources.
		Add(domain.ResGems, -GemExchangeCost).
		Add(domain.ResCoins, GemExchangeCoins)
	return bump(next), nil
}

// ExchangeCoinsToGems trades 100,000 coins for 10,000 gems.
func (e *Engine) ExchangeCoinsToGems(s domain.GameState) (domain.GameState, error) {
	if !s.Resources.CanAfford(domain.ResCoins, CoinExchangeCost) {
		return s, domain.ErrInsufficientFunds
	}
	next := s
	next.Resources = s.Resources.
		Add(domain.ResCoins, -CoinExchangeCost).
		Add(domain.ResGems, CoinExchangeGems)
	return bump(next), nil
}

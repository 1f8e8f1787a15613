package economy

import "realm_backend/internal/domain"

const (
	// PriceImpactFactor scales the trade-size/supply ratio into a
	// multiplicative price move.
	PriceImpactFactor = 0.1

	MinPrice = 0.001
	MaxPrice = 1.0
)

// PriceImpact returns the relative price move caused by a trade of the
// given size against the circulating supply.
func PriceImpact(tradeAmount, circulatingSupply float64) float64 {
	if circulatingSupply <= 0 {
		return 0
	}
	return (tradeAmount / circulatingSupply) * PriceImpactFactor
}

// ApplyTrade recomputes the price after a trade. Buys push the price
// up, sells and burns push it down. The result is clamped to
// [MinPrice, MaxPrice].
func ApplyTrade(price, tradeAmount, circulatingSupply float64, side domain.TradeSide) float64 {
	impact := PriceImpact(tradeAmount, circulatingSupply)
	switch side {
	case domain.TradeSideBuy:
		price *= 1 + impact
	case domain.TradeSideSell, domain.TradeSideBurn:
		price *= 1 - impact
	}
	return ClampPrice(price)
}

// BurnAmount is the supply removed by one daily burn.
func BurnAmount(circulatingSupply float64) float64 {
	return circulatingSupply * DailyBurnRate
}

func ClampPrice(price float64) float64 {
	if price < MinPrice {
		return MinPrice
	}
	if price > MaxPrice {
		return MaxPrice
	}
	return price
}

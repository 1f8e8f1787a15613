package domain

import "time"

// Market is the singleton record for the synthetic REALM/USDT market.
type Market struct {
	ID                int64     `db:"id" json:"-"`
	Price             float64   `db:"price" json:"price"`
	CirculatingSupply float64   `db:"circulating_supply" json:"circulating_supply"`
	TotalSupply       float64   `db:"total_supply" json:"total_supply"`
	Volume24h         float64   `db:"volume_24h" json:"volume_24h"`
	PriceChange24h    float64   `db:"price_change_24h" json:"price_change_24h"`
	LastUpdate        time.Time `db:"last_update" json:"last_update"`
	LastBurnTime      time.Time `db:"last_burn_time" json:"last_burn_time"`
}

// TradeSide describes how a trade moves the price.
type TradeSide string

const (
	TradeSideBuy  TradeSide = "buy"
	TradeSideSell TradeSide = "sell"
	TradeSideBurn TradeSide = "burn"
)

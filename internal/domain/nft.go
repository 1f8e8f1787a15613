package domain

import "time"

// NFT is a marketplace item. OwnerID is nil while listed; buying
// assigns the owner and unlocks withdrawals for the buyer.
type NFT struct {
	ID          int64      `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Rarity      string     `db:"rarity" json:"rarity"`
	Price       float64    `db:"price" json:"price"`
	PowerBoost  int        `db:"power_boost" json:"power_boost"`
	EnergyBoost int        `db:"energy_boost" json:"energy_boost"`
	OwnerID     *int64     `db:"owner_id" json:"owner_id,omitempty"`
	PurchasedAt *time.Time `db:"purchased_at" json:"purchased_at,omitempty"`
}

package domain

import "time"

// User is one ledger row per wallet address.
type User struct {
	ID             int64   `db:"id" json:"id"`
	WalletAddress  string  `db:"wallet_address" json:"wallet_address"`
	RealmBalance   float64 `db:"realm_balance" json:"realm_balance"`
	UsdtBalance    float64 `db:"usdt_balance" json:"usdt_balance"`
	StakedAmount   float64 `db:"staked_amount" json:"staked_amount"`
	StakingRewards float64 `db:"staking_rewards" json:"staking_rewards"`

	Level      int `db:"level" json:"level"`
	Experience int `db:"experience" json:"experience"`
	Energy     int `db:"energy" json:"energy"`
	Health     int `db:"health" json:"health"`

	BattlesWon  int `db:"battles_won" json:"battles_won"`
	BattlesLost int `db:"battles_lost" json:"battles_lost"`

	ReferralCode     string  `db:"referral_code" json:"referral_code"`
	ReferredBy       *int64  `db:"referred_by" json:"referred_by,omitempty"`
	ReferralEarnings float64 `db:"referral_earnings" json:"referral_earnings"`

	GuildID     *int64 `db:"guild_id" json:"guild_id,omitempty"`
	CanWithdraw bool   `db:"can_withdraw" json:"can_withdraw"`

	LastCheckin      *time.Time `db:"last_checkin" json:"last_checkin,omitempty"`
	LastStakingClaim *time.Time `db:"last_staking_claim" json:"last_staking_claim,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}

const (
	MaxEnergy = 100
	MaxHealth = 100
)

// CheckedInToday reports whether the user already claimed the daily
// check-in within the current UTC calendar day.
func (u *User) CheckedInToday(now time.Time) bool {
	if u.LastCheckin == nil {
		return false
	}
	last := u.LastCheckin.UTC()
	now = now.UTC()
	return last.Year() == now.Year() && last.YearDay() == now.YearDay()
}

package domain

import "time"

// Transaction types. The log is a write-only audit trail; balances are
// the source of truth and are never rebuilt from it.
const (
	TxTypePresale         = "presale"
	TxTypeDeposit         = "deposit"
	TxTypeCheckin         = "checkin"
	TxTypeStake           = "stake"
	TxTypeUnstake         = "unstake"
	TxTypeReward          = "reward"
	TxTypeNFTPurchase     = "nft_purchase"
	TxTypeBattleWager     = "battle_wager"
	TxTypeBattleWin       = "battle_win"
	TxTypeSwapUsdtToRealm = "swap_usdt_to_realm"
	TxTypeSwapRealmToUsdt = "swap_realm_to_usdt"
	TxTypeReferralBonus   = "referral_bonus"
	TxTypeGuildCreate     = "guild_create"
)

const (
	CurrencyRealm = "REALM"
	CurrencyUsdt  = "USDT"
)

type Transaction struct {
	ID        int64                  `db:"id" json:"id"`
	UserID    int64                  `db:"user_id" json:"user_id"`
	Type      string                 `db:"type" json:"type"`
	Amount    float64                `db:"amount" json:"amount"`
	Currency  string                 `db:"currency" json:"currency"`
	AdminFee  float64                `db:"admin_fee" json:"admin_fee"`
	Status    string                 `db:"status" json:"status"`
	Reference string                 `db:"reference" json:"reference"`
	Meta      map[string]interface{} `db:"meta" json:"meta,omitempty"`
	CreatedAt time.Time              `db:"created_at" json:"created_at"`
}

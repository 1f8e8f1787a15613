package economy

import "time"

// Economy rule set. The constants below are the single authoritative
// set used by every handler and worker.
const (
	SwapFee           = 0.01  // 1% charged in the input currency's equivalent
	StakingDailyRate  = 0.001 // 0.1% of the staked principal per day
	AdminRevenueShare = 0.15  // platform cut on battle pots and NFT sales
	DailyBurnRate     = 0.02  // 2% of circulating supply per 24h window

	ReferralBonus      = 100.0 // flat REALM bonus for the referee
	GuildCreationCost  = 1000.0
	StartingBalance    = 1000.0 // REALM granted at account creation
	CheckinReward      = 10.0   // REALM per daily check-in
	CheckinRewardXP    = 10
	BattleEnergyCost   = 20
	BattleWinXP        = 50
	BattleLoseXP       = 10
	BattleResolveDelay = 30 * time.Second

	// Player1 wins when the roll exceeds this threshold (60/40 bias
	// toward the battle creator).
	BattleWinThreshold = 0.4
)

// SwapUsdtToRealm converts USDT into REALM at the given price.
// The fee is taken from the input before conversion.
func SwapUsdtToRealm(usdtAmount, price float64) (realmOut, fee float64) {
	fee = usdtAmount * SwapFee
	net := usdtAmount - fee
	return net / price, fee
}

// SwapRealmToUsdt converts REALM into USDT at the given price.
// The fee is taken from the USDT output.
func SwapRealmToUsdt(realmAmount, price float64) (usdtOut, fee float64) {
	gross := realmAmount * price
	fee = gross * SwapFee
	return gross - fee, fee
}

// StakingAccrual returns the rewards earned on a staked principal
// between two instants. Days elapsed are fractional.
func StakingAccrual(stakedAmount float64, since, now time.Time) float64 {
	if stakedAmount <= 0 || !now.After(since) {
		return 0
	}
	days := now.Sub(since).Hours() / 24
	return stakedAmount * StakingDailyRate * days
}

// BattlePayout splits a battle pot (2x the wager) between the winner
// and the platform. payout + adminFee always equals the pot.
func BattlePayout(wager float64) (payout, adminFee float64) {
	pot := wager * 2
	adminFee = pot * AdminRevenueShare
	return pot - adminFee, adminFee
}

// NFTAdminFee is the platform share of an NFT sale. Recorded in the
// transaction log only; no admin balance is credited.
func NFTAdminFee(price float64) float64 {
	return price * AdminRevenueShare
}

// WinnerIndex maps a roll in [0,1) to the winning player slot:
// 0 for player1, 1 for player2.
func WinnerIndex(roll float64) int {
	if roll > BattleWinThreshold {
		return 0
	}
	return 1
}

// LevelForExperience derives a level from accumulated experience
// (every 100 XP is one level, starting at 1).
func LevelForExperience(experience int) int {
	if experience < 0 {
		return 1
	}
	return 1 + experience/100
}

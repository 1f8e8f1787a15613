package domain

import "errors"

// Domain errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrBattleNotFound     = errors.New("battle not found")
	ErrGuildNotFound      = errors.New("guild not found")
	ErrNFTNotFound        = errors.New("nft not found")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInsufficientEnergy = errors.New("insufficient energy")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrWithdrawLocked     = errors.New("withdrawals are locked until first purchase or deposit")
	ErrAlreadyCheckedIn   = errors.New("already checked in today")
	ErrAlreadyInGuild     = errors.New("already in a guild")
	ErrNotInGuild         = errors.New("not in a guild")
	ErrGuildFull          = errors.New("guild is full")
	ErrLevelTooLow        = errors.New("level too low")
	ErrNotEnoughNFTs      = errors.New("not enough nfts")
	ErrLeaderCannotLeave  = errors.New("leader must transfer leadership before leaving")
	ErrGuildNameTaken     = errors.New("guild name already taken")
	ErrInvalidName        = errors.New("invalid guild name")
	ErrBattleNotJoinable  = errors.New("battle is not joinable")
	ErrOwnBattle          = errors.New("cannot join your own battle")
	ErrNFTAlreadyOwned    = errors.New("nft already owned")
	ErrReferralUsed       = errors.New("referral code already used")
	ErrSelfReferral       = errors.New("cannot use your own referral code")
	ErrReferralNotFound   = errors.New("referral code not found")
)

// IsNotFound reports whether err is one of the not-found domain errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrBattleNotFound) ||
		errors.Is(err, ErrGuildNotFound) ||
		errors.Is(err, ErrNFTNotFound) ||
		errors.Is(err, ErrReferralNotFound)
}

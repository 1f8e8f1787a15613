package service

import (
	"context"
	"time"

	"realm_backend/internal/domain"
	"realm_backend/internal/economy"
	"realm_backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StakingResult reports balances after a staking operation.
type StakingResult struct {
	RealmBalance   float64 `json:"realm_balance"`
	StakedAmount   float64 `json:"staked_amount"`
	StakingRewards float64 `json:"staking_rewards"`
	Claimed        float64 `json:"claimed,omitempty"`
}

// StakingService moves REALM between the liquid balance and the staked
// principal and settles the 0.1%/day accrual. Pending accrual is
// settled into staking_rewards whenever the principal changes so
// rewards are never lost and never decrease between claims.
type StakingService struct {
	db       *pgxpool.Pool
	userRepo *repository.UserRepository
	ledger   *LedgerService
}

func NewStakingService(db *pgxpool.Pool) *StakingService {
	return &StakingService{
		db:       db,
		userRepo: repository.NewUserRepository(db),
		ledger:   NewLedgerService(db),
	}
}

// PendingRewards computes the unclaimed accrual for display.
func (s *StakingService) PendingRewards(u *domain.User, now time.Time) float64 {
	if u.LastStakingClaim == nil {
		return u.StakingRewards
	}
	return u.StakingRewards + economy.StakingAccrual(u.StakedAmount, *u.LastStakingClaim, now)
}

// settle folds accrual since the last claim into staking_rewards and
// restarts the clock. Must run inside a transaction holding the user
// row lock.
func (s *StakingService) settle(ctx context.Context, tx pgx.Tx, u *domain.User, now time.Time) error {
	accrued := 0.0
	if u.LastStakingClaim != nil {
		accrued = economy.StakingAccrual(u.StakedAmount, *u.LastStakingClaim, now)
	}

	_, err := tx.Exec(ctx,
		`UPDATE users SET staking_rewards = staking_rewards + $1, last_staking_claim = $2 WHERE id = $3`,
		accrued, now, u.ID,
	)
	if err != nil {
		return err
	}
	u.StakingRewards += accrued
	u.LastStakingClaim = &now
	return nil
}

// Stake moves REALM into the staked principal.
func (s *StakingService) Stake(ctx context.Context, userID int64, amount float64) (*StakingResult, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	user, err := s.userRepo.GetByIDForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.settle(ctx, tx, user, now); err != nil {
		return nil, err
	}

	realmBalance, err := s.ledger.DebitRealmWithTx(ctx, tx, userID, amount)
	if err != nil {
		return nil, err
	}

	var staked float64
	if err := tx.QueryRow(ctx,
		`UPDATE users SET staked_amount = staked_amount + $1 WHERE id = $2 RETURNING staked_amount`,
		amount, userID,
	).Scan(&staked); err != nil {
		return nil, err
	}

	if err := s.ledger.LogWithTx(ctx, tx, &domain.Transaction{
		UserID:   userID,
		Type:     domain.TxTypeStake,
		Amount:   amount,
		Currency: domain.CurrencyRealm,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &StakingResult{
		RealmBalance:   realmBalance,
		StakedAmount:   staked,
		StakingRewards: user.StakingRewards,
	}, nil
}

// Unstake moves REALM back out of the staked principal.
func (s *StakingService) Unstake(ctx context.Context, userID int64, amount float64) (*StakingResult, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	user, err := s.userRepo.GetByIDForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if user.StakedAmount < amount {
		return nil, domain.ErrInsufficientFunds
	}

	now := time.Now()
	if err := s.settle(ctx, tx, user, now); err != nil {
		return nil, err
	}

	var staked float64
	if err := tx.QueryRow(ctx,
		`UPDATE users SET staked_amount = staked_amount - $1 WHERE id = $2 AND staked_amount >= $1 RETURNING staked_amount`,
		amount, userID,
	).Scan(&staked); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrInsufficientFunds
		}
		return nil, err
	}

	realmBalance, err := s.ledger.CreditRealmWithTx(ctx, tx, userID, amount)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.LogWithTx(ctx, tx, &domain.Transaction{
		UserID:   userID,
		Type:     domain.TxTypeUnstake,
		Amount:   amount,
		Currency: domain.CurrencyRealm,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &StakingResult{
		RealmBalance:   realmBalance,
		StakedAmount:   staked,
		StakingRewards: user.StakingRewards,
	}, nil
}

// Claim credits all settled and pending rewards to the liquid balance
// and zeroes the accrual clock.
func (s *StakingService) Claim(ctx context.Context, userID int64) (*StakingResult, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	user, err := s.userRepo.GetByIDForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.settle(ctx, tx, user, now); err != nil {
		return nil, err
	}

	claimed := user.StakingRewards
	if claimed <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	realmBalance, err := s.ledger.CreditRealmWithTx(ctx, tx, userID, claimed)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE users SET staking_rewards = 0 WHERE id = $1`, userID); err != nil {
		return nil, err
	}

	if err := s.ledger.LogWithTx(ctx, tx, &domain.Transaction{
		UserID:   userID,
		Type:     domain.TxTypeReward,
		Amount:   claimed,
		Currency: domain.CurrencyRealm,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &StakingResult{
		RealmBalance:   realmBalance,
		StakedAmount:   user.StakedAmount,
		StakingRewards: 0,
		Claimed:        claimed,
	}, nil
}

package service

import (
	"context"

	"realm_backend/internal/domain"
	"realm_backend/internal/economy"
	"realm_backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReferralStats summarises a user's referral activity.
type ReferralStats struct {
	ReferralCode   string  `json:"referral_code"`
	TotalReferrals int     `json:"total_referrals"`
	TotalEarned    float64 `json:"total_earned"`
}

// ReferralService applies referral codes. A code is usable once per
// referee, never their own; the referee gets a flat REALM bonus and
// the referrer's earnings counter tracks it.
type ReferralService struct {
	db       *pgxpool.Pool
	userRepo *repository.UserRepository
	ledger   *LedgerService
}

func NewReferralService(db *pgxpool.Pool) *ReferralService {
	return &ReferralService{
		db:       db,
		userRepo: repository.NewUserRepository(db),
		ledger:   NewLedgerService(db),
	}
}

// Use applies a referral code for the given user.
func (s *ReferralService) Use(ctx context.Context, userID int64, code string) (float64, error) {
	referrer, err := s.userRepo.GetByReferralCode(ctx, code)
	if err != nil {
		return 0, err
	}
	if referrer.ID == userID {
		return 0, domain.ErrSelfReferral
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Both rows get locked here (the referee for the referred_by
	// check, the referrer for the earnings update). Ascending ID order
	// keeps two users applying each other's codes from deadlocking.
	lockIDs := [2]int64{userID, referrer.ID}
	if lockIDs[0] > lockIDs[1] {
		lockIDs[0], lockIDs[1] = lockIDs[1], lockIDs[0]
	}
	var user *domain.User
	for _, id := range lockIDs {
		locked, err := s.userRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return 0, err
		}
		if id == userID {
			user = locked
		}
	}
	if user.ReferredBy != nil {
		return 0, domain.ErrReferralUsed
	}

	// The referred_by guard makes the second concurrent use a no-op.
	tag, err := tx.Exec(ctx,
		`UPDATE users SET referred_by = $1 WHERE id = $2 AND referred_by IS NULL`,
		referrer.ID, userID)
	if err != nil {
		return 0, err
	}
	if tag.RowsAffected() == 0 {
		return 0, domain.ErrReferralUsed
	}

	newBalance, err := s.ledger.CreditRealmWithTx(ctx, tx, userID, economy.ReferralBonus)
	if err != nil {
		return 0, err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE users SET referral_earnings = referral_earnings + $1 WHERE id = $2`,
		economy.ReferralBonus, referrer.ID); err != nil {
		return 0, err
	}

	if err := s.ledger.LogWithTx(ctx, tx, &domain.Transaction{
		UserID:   userID,
		Type:     domain.TxTypeReferralBonus,
		Amount:   economy.ReferralBonus,
		Currency: domain.CurrencyRealm,
		Meta:     map[string]interface{}{"referrer_id": referrer.ID, "code": code},
	}); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return newBalance, nil
}

// Stats returns the user's code, referral count and earnings.
func (s *ReferralService) Stats(ctx context.Context, userID int64) (*ReferralStats, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	count, err := s.userRepo.CountReferred(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ReferralStats{
		ReferralCode:   user.ReferralCode,
		TotalReferrals: count,
		TotalEarned:    user.ReferralEarnings,
	}, nil
}

package service

import (
	"context"
	"errors"

	"realm_backend/internal/domain"
	"realm_backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LedgerService owns balance mutations. Every mutation is a guarded
// UPDATE so a balance can never go negative, and the audit trail row
// is written in the same database transaction.
type LedgerService struct {
	db              *pgxpool.Pool
	transactionRepo *repository.TransactionRepository
}

func NewLedgerService(db *pgxpool.Pool) *LedgerService {
	return &LedgerService{
		db:              db,
		transactionRepo: repository.NewTransactionRepository(db),
	}
}

func (s *LedgerService) balanceOp(ctx context.Context, tx pgx.Tx, column string, userID int64, delta float64) (float64, error) {
	var newBalance float64
	err := tx.QueryRow(ctx,
		`UPDATE users SET `+column+` = `+column+` + $1
		 WHERE id = $2 AND `+column+` + $1 >= 0
		 RETURNING `+column,
		delta, userID,
	).Scan(&newBalance)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			_ = tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
			if !exists {
				return 0, domain.ErrUserNotFound
			}
			return 0, domain.ErrInsufficientFunds
		}
		return 0, err
	}
	return newBalance, nil
}

// DebitRealmWithTx deducts REALM within an existing transaction.
func (s *LedgerService) DebitRealmWithTx(ctx context.Context, tx pgx.Tx, userID int64, amount float64) (float64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	return s.balanceOp(ctx, tx, "realm_balance", userID, -amount)
}

// CreditRealmWithTx adds REALM within an existing transaction.
func (s *LedgerService) CreditRealmWithTx(ctx context.Context, tx pgx.Tx, userID int64, amount float64) (float64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	return s.balanceOp(ctx, tx, "realm_balance", userID, amount)
}

// DebitUsdtWithTx deducts USDT within an existing transaction.
func (s *LedgerService) DebitUsdtWithTx(ctx context.Context, tx pgx.Tx, userID int64, amount float64) (float64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	return s.balanceOp(ctx, tx, "usdt_balance", userID, -amount)
}

// CreditUsdtWithTx adds USDT within an existing transaction.
func (s *LedgerService) CreditUsdtWithTx(ctx context.Context, tx pgx.Tx, userID int64, amount float64) (float64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	return s.balanceOp(ctx, tx, "usdt_balance", userID, amount)
}

// SpendEnergyWithTx deducts energy, rejecting when the user does not
// have enough.
func (s *LedgerService) SpendEnergyWithTx(ctx context.Context, tx pgx.Tx, userID int64, cost int) (int, error) {
	var newEnergy int
	err := tx.QueryRow(ctx,
		`UPDATE users SET energy = energy - $1
		 WHERE id = $2 AND energy >= $1
		 RETURNING energy`,
		cost, userID,
	).Scan(&newEnergy)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			_ = tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
			if !exists {
				return 0, domain.ErrUserNotFound
			}
			return 0, domain.ErrInsufficientEnergy
		}
		return 0, err
	}
	return newEnergy, nil
}

// AddExperienceWithTx credits XP and keeps the derived level in step
// (one level per 100 XP).
func (s *LedgerService) AddExperienceWithTx(ctx context.Context, tx pgx.Tx, userID int64, xp int) error {
	_, err := tx.Exec(ctx,
		`UPDATE users
		 SET experience = experience + $1, level = 1 + (experience + $1) / 100
		 WHERE id = $2`,
		xp, userID,
	)
	return err
}

// Credit adds REALM in its own transaction and logs it.
func (s *LedgerService) Credit(ctx context.Context, userID int64, amount float64, txType string, meta map[string]interface{}) (float64, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	newBalance, err := s.CreditRealmWithTx(ctx, tx, userID, amount)
	if err != nil {
		return 0, err
	}

	record := &domain.Transaction{
		UserID:   userID,
		Type:     txType,
		Amount:   amount,
		Currency: domain.CurrencyRealm,
		Meta:     meta,
	}
	if err := s.transactionRepo.CreateWithTx(ctx, tx, record); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return newBalance, nil
}

// LogWithTx appends an audit record inside an existing transaction.
func (s *LedgerService) LogWithTx(ctx context.Context, tx pgx.Tx, record *domain.Transaction) error {
	return s.transactionRepo.CreateWithTx(ctx, tx, record)
}

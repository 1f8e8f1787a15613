package repository

import (
	"context"
	"errors"
	"strings"

	"realm_backend/internal/domain"
	"realm_backend/internal/economy"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, wallet_address, realm_balance, usdt_balance, staked_amount, staking_rewards,
	level, experience, energy, health, battles_won, battles_lost,
	referral_code, referred_by, referral_earnings, guild_id, can_withdraw,
	last_checkin, last_staking_claim, created_at`

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.WalletAddress,
		&u.RealmBalance,
		&u.UsdtBalance,
		&u.StakedAmount,
		&u.StakingRewards,
		&u.Level,
		&u.Experience,
		&u.Energy,
		&u.Health,
		&u.BattlesWon,
		&u.BattlesLost,
		&u.ReferralCode,
		&u.ReferredBy,
		&u.ReferralEarnings,
		&u.GuildID,
		&u.CanWithdraw,
		&u.LastCheckin,
		&u.LastStakingClaim,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// NewReferralCode generates a short unique referral code.
func NewReferralCode() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
}

func (r *UserRepository) GetByWallet(ctx context.Context, wallet string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE wallet_address = $1`, wallet))
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByIDForUpdate locks the user row inside an existing transaction.
func (r *UserRepository) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.User, error) {
	return scanUser(tx.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id))
}

// GetOrCreate fetches a user by wallet, creating it with the starting
// balance and a fresh referral code on first login.
func (r *UserRepository) GetOrCreate(ctx context.Context, wallet string) (*domain.User, error) {
	u, err := r.GetByWallet(ctx, wallet)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	// Retry on referral code collision
	for i := 0; i < 5; i++ {
		u, err = scanUser(r.db.QueryRow(ctx,
			`INSERT INTO users (wallet_address, realm_balance, energy, health, referral_code)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (wallet_address) DO UPDATE SET wallet_address = EXCLUDED.wallet_address
			 RETURNING `+userColumns,
			wallet, economy.StartingBalance, domain.MaxEnergy, domain.MaxHealth, NewReferralCode(),
		))
		if err == nil {
			return u, nil
		}
	}
	return nil, err
}

func (r *UserRepository) GetByReferralCode(ctx context.Context, code string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE referral_code = $1`, code))
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrReferralNotFound
	}
	return u, err
}

// Regenerate tops up energy and health for every user in one statement.
func (r *UserRepository) Regenerate(ctx context.Context, energyDelta, healthDelta int) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE users
		 SET energy = LEAST($1, energy + $2), health = LEAST($3, health + $4)
		 WHERE energy < $1 OR health < $3`,
		domain.MaxEnergy, energyDelta, domain.MaxHealth, healthDelta,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// TopByBattlesWon is the SQL fallback for the leaderboard when Redis
// is not configured.
func (r *UserRepository) TopByBattlesWon(ctx context.Context, limit int) ([]*domain.User, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+`
		 FROM users
		 ORDER BY battles_won DESC, experience DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	return res, rows.Err()
}

// CountReferred returns how many users were referred by the given user.
func (r *UserRepository) CountReferred(ctx context.Context, userID int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE referred_by = $1`, userID).Scan(&n)
	return n, err
}

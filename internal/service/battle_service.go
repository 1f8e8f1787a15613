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

// BattleOutcome describes a resolved battle for broadcasting and
// leaderboard updates.
type BattleOutcome struct {
	BattleID     int64   `json:"battle_id"`
	WinnerID     int64   `json:"winner_id"`
	LoserID      int64   `json:"loser_id"`
	WinnerWallet string  `json:"winner_wallet"`
	Wager        float64 `json:"wager"`
	Payout       float64 `json:"payout"`
	AdminFee     float64 `json:"admin_fee"`
	WinnerWins   int     `json:"winner_wins"`
}

// BattleService implements the waiting -> active -> completed wager
// match. Wagers are debited at create/join; resolution is a durable
// scheduled job keyed by battle ID.
type BattleService struct {
	db         *pgxpool.Pool
	userRepo   *repository.UserRepository
	battleRepo *repository.BattleRepository
	ledger     *LedgerService

	MinWager float64
	MaxWager float64
}

func NewBattleService(db *pgxpool.Pool, minWager, maxWager float64) *BattleService {
	return &BattleService{
		db:         db,
		userRepo:   repository.NewUserRepository(db),
		battleRepo: repository.NewBattleRepository(db),
		ledger:     NewLedgerService(db),
		MinWager:   minWager,
		MaxWager:   maxWager,
	}
}

func (s *BattleService) validWager(wager float64) bool {
	return wager >= s.MinWager && wager <= s.MaxWager
}

// Create opens a waiting battle. The creator's wager and energy are
// debited immediately.
func (s *BattleService) Create(ctx context.Context, userID int64, wager float64) (*domain.Battle, error) {
	if !s.validWager(wager) {
		return nil, domain.ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := s.userRepo.GetByIDForUpdate(ctx, tx, userID); err != nil {
		return nil, err
	}
	if _, err := s.ledger.DebitRealmWithTx(ctx, tx, userID, wager); err != nil {
		return nil, err
	}
	if _, err := s.ledger.SpendEnergyWithTx(ctx, tx, userID, economy.BattleEnergyCost); err != nil {
		return nil, err
	}

	battle, err := s.battleRepo.CreateWithTx(ctx, tx, userID, wager)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.LogWithTx(ctx, tx, &domain.Transaction{
		UserID:   userID,
		Type:     domain.TxTypeBattleWager,
		Amount:   wager,
		Currency: domain.CurrencyRealm,
		Meta:     map[string]interface{}{"battle_id": battle.ID},
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return battle, nil
}

// Join debits the second player and activates the battle. The
// resolution deadline is persisted so a restart cannot strand the pot.
func (s *BattleService) Join(ctx context.Context, userID, battleID int64) (*domain.Battle, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	battle, err := s.battleRepo.GetByIDForUpdate(ctx, tx, battleID)
	if err != nil {
		return nil, err
	}
	if battle.Status != domain.BattleStatusWaiting {
		return nil, domain.ErrBattleNotJoinable
	}
	if battle.Player1ID == userID {
		return nil, domain.ErrOwnBattle
	}

	if _, err := s.userRepo.GetByIDForUpdate(ctx, tx, userID); err != nil {
		return nil, err
	}
	if _, err := s.ledger.DebitRealmWithTx(ctx, tx, userID, battle.Wager); err != nil {
		return nil, err
	}
	if _, err := s.ledger.SpendEnergyWithTx(ctx, tx, userID, economy.BattleEnergyCost); err != nil {
		return nil, err
	}

	resolveAt := time.Now().Add(economy.BattleResolveDelay)
	battle, err = s.battleRepo.ActivateWithTx(ctx, tx, battleID, userID, resolveAt)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.LogWithTx(ctx, tx, &domain.Transaction{
		UserID:   userID,
		Type:     domain.TxTypeBattleWager,
		Amount:   battle.Wager,
		Currency: domain.CurrencyRealm,
		Meta:     map[string]interface{}{"battle_id": battle.ID},
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return battle, nil
}

// Resolve settles one due battle. The status guard in CompleteWithTx
// makes it a no-op when another resolver got there first, so the job
// is idempotent per battle ID. Returns nil when nothing was resolved.
func (s *BattleService) Resolve(ctx context.Context, battleID int64) (*BattleOutcome, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	battle, err := s.battleRepo.GetByIDForUpdate(ctx, tx, battleID)
	if err != nil {
		return nil, err
	}
	if battle.Status != domain.BattleStatusActive || battle.Player2ID == nil {
		return nil, nil
	}

	// 60/40 coin flip biased toward the creator.
	winnerID := battle.Player1ID
	loserID := *battle.Player2ID
	if economy.WinnerIndex(economy.Roll()) == 1 {
		winnerID, loserID = loserID, winnerID
	}

	completed, err := s.battleRepo.CompleteWithTx(ctx, tx, battle.ID, winnerID)
	if err != nil {
		return nil, err
	}
	if !completed {
		return nil, nil
	}

	payout, adminFee := economy.BattlePayout(battle.Wager)
	if _, err := s.ledger.CreditRealmWithTx(ctx, tx, winnerID, payout); err != nil {
		return nil, err
	}

	var winnerWins int
	var winnerWallet string
	if err := tx.QueryRow(ctx,
		`UPDATE users SET battles_won = battles_won + 1 WHERE id = $1
		 RETURNING battles_won, wallet_address`,
		winnerID,
	).Scan(&winnerWins, &winnerWallet); err != nil {
		return nil, err
	}
	if err := s.ledger.AddExperienceWithTx(ctx, tx, winnerID, economy.BattleWinXP); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE users SET battles_lost = battles_lost + 1 WHERE id = $1`, loserID); err != nil {
		return nil, err
	}
	if err := s.ledger.AddExperienceWithTx(ctx, tx, loserID, economy.BattleLoseXP); err != nil {
		return nil, err
	}

	if err := s.ledger.LogWithTx(ctx, tx, &domain.Transaction{
		UserID:   winnerID,
		Type:     domain.TxTypeBattleWin,
		Amount:   payout,
		Currency: domain.CurrencyRealm,
		AdminFee: adminFee,
		Meta:     map[string]interface{}{"battle_id": battle.ID, "loser_id": loserID},
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &BattleOutcome{
		BattleID:     battle.ID,
		WinnerID:     winnerID,
		LoserID:      loserID,
		WinnerWallet: winnerWallet,
		Wager:        battle.Wager,
		Payout:       payout,
		AdminFee:     adminFee,
		WinnerWins:   winnerWins,
	}, nil
}

// ResolveDue resolves every battle whose deadline has passed.
func (s *BattleService) ResolveDue(ctx context.Context, now time.Time) ([]*BattleOutcome, error) {
	due, err := s.battleRepo.DueForResolution(ctx, now, 100)
	if err != nil {
		return nil, err
	}

	var outcomes []*BattleOutcome
	for _, b := range due {
		outcome, err := s.Resolve(ctx, b.ID)
		if err != nil {
			return outcomes, err
		}
		if outcome != nil {
			outcomes = append(outcomes, outcome)
		}
	}
	return outcomes, nil
}

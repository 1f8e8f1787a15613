package service

import (
	"context"

	"realm_backend/internal/domain"
	"realm_backend/internal/economy"
	"realm_backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SwapResult is returned to the caller after a completed swap.
type SwapResult struct {
	Input        float64 `json:"input"`
	Output       float64 `json:"output"`
	Fee          float64 `json:"fee"`
	Price        float64 `json:"price"`
	RealmBalance float64 `json:"realm_balance"`
	UsdtBalance  float64 `json:"usdt_balance"`
}

// SwapService executes REALM/USDT conversions against the market
// model. Both directions require the can_withdraw gate.
type SwapService struct {
	db       *pgxpool.Pool
	userRepo *repository.UserRepository
	ledger   *LedgerService
	market   *MarketService
}

func NewSwapService(db *pgxpool.Pool) *SwapService {
	return &SwapService{
		db:       db,
		userRepo: repository.NewUserRepository(db),
		ledger:   NewLedgerService(db),
		market:   NewMarketService(db),
	}
}

// UsdtToRealm sells USDT for REALM. The 1% fee comes off the USDT
// input; the conversion uses the price before the trade's own impact.
func (s *SwapService) UsdtToRealm(ctx context.Context, userID int64, amount float64) (*SwapResult, error) {
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
	if !user.CanWithdraw {
		return nil, domain.ErrWithdrawLocked
	}

	market, err := s.market.marketRepo.GetForUpdate(ctx, tx)
	if err != nil {
		return nil, err
	}

	realmOut, fee := economy.SwapUsdtToRealm(amount, market.Price)

	usdtBalance, err := s.ledger.DebitUsdtWithTx(ctx, tx, userID, amount)
	if err != nil {
		return nil, err
	}
	realmBalance, err := s.ledger.CreditRealmWithTx(ctx, tx, userID, realmOut)
	if err != nil {
		return nil, err
	}

	// Buying REALM pushes the price up by the trade's size.
	updated, err := s.market.ApplyTradeWithTx(ctx, tx, realmOut, domain.TradeSideBuy)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.LogWithTx(ctx, tx, &domain.Transaction{
		UserID:   userID,
		Type:     domain.TxTypeSwapUsdtToRealm,
		Amount:   realmOut,
		Currency: domain.CurrencyRealm,
		AdminFee: fee,
		Meta: map[string]interface{}{
			"usdt_in": amount,
			"price":   market.Price,
		},
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &SwapResult{
		Input:        amount,
		Output:       realmOut,
		Fee:          fee,
		Price:        updated.Price,
		RealmBalance: realmBalance,
		UsdtBalance:  usdtBalance,
	}, nil
}

// RealmToUsdt sells REALM for USDT. The 1% fee comes off the USDT
// output.
func (s *SwapService) RealmToUsdt(ctx context.Context, userID int64, amount float64) (*SwapResult, error) {
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
	if !user.CanWithdraw {
		return nil, domain.ErrWithdrawLocked
	}

	market, err := s.market.marketRepo.GetForUpdate(ctx, tx)
	if err != nil {
		return nil, err
	}

	usdtOut, fee := economy.SwapRealmToUsdt(amount, market.Price)

	realmBalance, err := s.ledger.DebitRealmWithTx(ctx, tx, userID, amount)
	if err != nil {
		return nil, err
	}
	usdtBalance, err := s.ledger.CreditUsdtWithTx(ctx, tx, userID, usdtOut)
	if err != nil {
		return nil, err
	}

	updated, err := s.market.ApplyTradeWithTx(ctx, tx, amount, domain.TradeSideSell)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.LogWithTx(ctx, tx, &domain.Transaction{
		UserID:   userID,
		Type:     domain.TxTypeSwapRealmToUsdt,
		Amount:   amount,
		Currency: domain.CurrencyRealm,
		AdminFee: fee,
		Meta: map[string]interface{}{
			"usdt_out": usdtOut,
			"price":    market.Price,
		},
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &SwapResult{
		Input:        amount,
		Output:       usdtOut,
		Fee:          fee,
		Price:        updated.Price,
		RealmBalance: realmBalance,
		UsdtBalance:  usdtBalance,
	}, nil
}

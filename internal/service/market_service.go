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

// MarketService recomputes the synthetic REALM price from trade flow
// and runs the daily deflationary burn.
type MarketService struct {
	db         *pgxpool.Pool
	marketRepo *repository.MarketRepository
}

func NewMarketService(db *pgxpool.Pool) *MarketService {
	return &MarketService{
		db:         db,
		marketRepo: repository.NewMarketRepository(db),
	}
}

func (s *MarketService) Get(ctx context.Context) (*domain.Market, error) {
	return s.marketRepo.Get(ctx)
}

// ApplyTradeWithTx locks the market row, moves the price by the trade's
// impact and accumulates 24h volume. Trade amounts are in REALM units.
func (s *MarketService) ApplyTradeWithTx(ctx context.Context, tx pgx.Tx, tradeAmount float64, side domain.TradeSide) (*domain.Market, error) {
	m, err := s.marketRepo.GetForUpdate(ctx, tx)
	if err != nil {
		return nil, err
	}

	oldPrice := m.Price
	m.Price = economy.ApplyTrade(m.Price, tradeAmount, m.CirculatingSupply, side)
	if side != domain.TradeSideBurn {
		m.Volume24h += tradeAmount
	}
	if oldPrice > 0 {
		m.PriceChange24h += (m.Price - oldPrice) / oldPrice * 100
	}

	if err := s.marketRepo.UpdateWithTx(ctx, tx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Burn removes DailyBurnRate of the circulating supply once per
// elapsed 24h window and feeds the burned amount into the price model
// as a sell-side shock. Returns the burned amount and whether a burn
// actually ran; callers poll more often than the window elapses.
func (s *MarketService) Burn(ctx context.Context, now time.Time) (float64, bool, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	m, err := s.marketRepo.GetForUpdate(ctx, tx)
	if err != nil {
		return 0, false, err
	}

	if now.Sub(m.LastBurnTime) < 24*time.Hour {
		return 0, false, nil
	}

	burned := economy.BurnAmount(m.CirculatingSupply)
	m.CirculatingSupply -= burned
	m.Price = economy.ApplyTrade(m.Price, burned, m.CirculatingSupply, domain.TradeSideBurn)
	m.LastBurnTime = now

	// The burn closes the 24h window; daily aggregates start over.
	m.Volume24h = 0
	m.PriceChange24h = 0

	if err := s.marketRepo.UpdateWithTx(ctx, tx, m); err != nil {
		return 0, false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, false, err
	}
	return burned, true, nil
}

package repository

import (
	"context"

	"realm_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const marketColumns = `id, price, circulating_supply, total_supply, volume_24h, price_change_24h, last_update, last_burn_time`

// MarketRepository manages the singleton market row (id = 1).
type MarketRepository struct {
	db *pgxpool.Pool
}

func NewMarketRepository(db *pgxpool.Pool) *MarketRepository {
	return &MarketRepository{db: db}
}

func scanMarket(row pgx.Row) (*domain.Market, error) {
	var m domain.Market
	err := row.Scan(
		&m.ID,
		&m.Price,
		&m.CirculatingSupply,
		&m.TotalSupply,
		&m.Volume24h,
		&m.PriceChange24h,
		&m.LastUpdate,
		&m.LastBurnTime,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MarketRepository) Get(ctx context.Context) (*domain.Market, error) {
	return scanMarket(r.db.QueryRow(ctx,
		`SELECT `+marketColumns+` FROM market WHERE id = 1`))
}

// GetForUpdate locks the market row inside an existing transaction so
// concurrent trades serialize their price updates.
func (r *MarketRepository) GetForUpdate(ctx context.Context, tx pgx.Tx) (*domain.Market, error) {
	return scanMarket(tx.QueryRow(ctx,
		`SELECT `+marketColumns+` FROM market WHERE id = 1 FOR UPDATE`))
}

// UpdateWithTx writes back price, supply and volume after a trade or burn.
func (r *MarketRepository) UpdateWithTx(ctx context.Context, tx pgx.Tx, m *domain.Market) error {
	_, err := tx.Exec(ctx,
		`UPDATE market
		 SET price = $1, circulating_supply = $2, volume_24h = $3,
		     price_change_24h = $4, last_update = now(), last_burn_time = $5
		 WHERE id = 1`,
		m.Price, m.CirculatingSupply, m.Volume24h, m.PriceChange24h, m.LastBurnTime,
	)
	return err
}

package repository

import (
	"context"
	"errors"

	"realm_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const nftColumns = `id, name, rarity, price, power_boost, energy_boost, owner_id, purchased_at`

type NFTRepository struct {
	db *pgxpool.Pool
}

func NewNFTRepository(db *pgxpool.Pool) *NFTRepository {
	return &NFTRepository{db: db}
}

func scanNFT(row pgx.Row) (*domain.NFT, error) {
	var n domain.NFT
	err := row.Scan(
		&n.ID,
		&n.Name,
		&n.Rarity,
		&n.Price,
		&n.PowerBoost,
		&n.EnergyBoost,
		&n.OwnerID,
		&n.PurchasedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNFTNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *NFTRepository) GetByID(ctx context.Context, id int64) (*domain.NFT, error) {
	return scanNFT(r.db.QueryRow(ctx,
		`SELECT `+nftColumns+` FROM nfts WHERE id = $1`, id))
}

// Marketplace lists unowned NFTs.
func (r *NFTRepository) Marketplace(ctx context.Context) ([]*domain.NFT, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+nftColumns+` FROM nfts WHERE owner_id IS NULL ORDER BY price`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectNFTs(rows)
}

func (r *NFTRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.NFT, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+nftColumns+` FROM nfts WHERE owner_id = $1 ORDER BY purchased_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectNFTs(rows)
}

func (r *NFTRepository) CountByOwner(ctx context.Context, ownerID int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM nfts WHERE owner_id = $1`, ownerID).Scan(&n)
	return n, err
}

// AssignOwnerWithTx claims an unowned NFT for the buyer. The owner
// guard rejects double purchases racing on the same item.
func (r *NFTRepository) AssignOwnerWithTx(ctx context.Context, tx pgx.Tx, nftID, ownerID int64) (bool, error) {
	tag, err := tx.Exec(ctx,
		`UPDATE nfts
		 SET owner_id = $1, purchased_at = now()
		 WHERE id = $2 AND owner_id IS NULL`,
		ownerID, nftID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func collectNFTs(rows pgx.Rows) ([]*domain.NFT, error) {
	var res []*domain.NFT
	for rows.Next() {
		n, err := scanNFT(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, n)
	}
	return res, rows.Err()
}

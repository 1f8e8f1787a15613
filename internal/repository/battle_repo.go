package repository

import (
	"context"
	"errors"
	"time"

	"realm_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const battleColumns = `id, player1_id, player2_id, wager, status, winner_id, resolve_at, created_at, resolved_at`

type BattleRepository struct {
	db *pgxpool.Pool
}

func NewBattleRepository(db *pgxpool.Pool) *BattleRepository {
	return &BattleRepository{db: db}
}

func scanBattle(row pgx.Row) (*domain.Battle, error) {
	var b domain.Battle
	err := row.Scan(
		&b.ID,
		&b.Player1ID,
		&b.Player2ID,
		&b.Wager,
		&b.Status,
		&b.WinnerID,
		&b.ResolveAt,
		&b.CreatedAt,
		&b.ResolvedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBattleNotFound
		}
		return nil, err
	}
	return &b, nil
}

// CreateWithTx inserts a waiting battle inside the same transaction
// that debits the creator's wager.
func (r *BattleRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, player1ID int64, wager float64) (*domain.Battle, error) {
	return scanBattle(tx.QueryRow(ctx,
		`INSERT INTO battles (player1_id, wager, status)
		 VALUES ($1, $2, $3)
		 RETURNING `+battleColumns,
		player1ID, wager, domain.BattleStatusWaiting,
	))
}

func (r *BattleRepository) GetByID(ctx context.Context, id int64) (*domain.Battle, error) {
	return scanBattle(r.db.QueryRow(ctx,
		`SELECT `+battleColumns+` FROM battles WHERE id = $1`, id))
}

func (r *BattleRepository) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.Battle, error) {
	return scanBattle(tx.QueryRow(ctx,
		`SELECT `+battleColumns+` FROM battles WHERE id = $1 FOR UPDATE`, id))
}

// ActivateWithTx transitions a waiting battle to active and persists
// the resolution deadline. Returns ErrBattleNotJoinable when the
// battle was taken by someone else first.
func (r *BattleRepository) ActivateWithTx(ctx context.Context, tx pgx.Tx, battleID, player2ID int64, resolveAt time.Time) (*domain.Battle, error) {
	b, err := scanBattle(tx.QueryRow(ctx,
		`UPDATE battles
		 SET player2_id = $1, status = $2, resolve_at = $3
		 WHERE id = $4 AND status = $5 AND player2_id IS NULL
		 RETURNING `+battleColumns,
		player2ID, domain.BattleStatusActive, resolveAt, battleID, domain.BattleStatusWaiting,
	))
	if errors.Is(err, domain.ErrBattleNotFound) {
		return nil, domain.ErrBattleNotJoinable
	}
	return b, err
}

// CompleteWithTx marks an active battle completed. The status guard
// makes resolution idempotent: a second resolver run matches no row.
func (r *BattleRepository) CompleteWithTx(ctx context.Context, tx pgx.Tx, battleID, winnerID int64) (bool, error) {
	tag, err := tx.Exec(ctx,
		`UPDATE battles
		 SET status = $1, winner_id = $2, resolved_at = now()
		 WHERE id = $3 AND status = $4`,
		domain.BattleStatusCompleted, winnerID, battleID, domain.BattleStatusActive,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListAvailable returns waiting battles open for joining.
func (r *BattleRepository) ListAvailable(ctx context.Context, limit int) ([]*domain.Battle, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+battleColumns+`
		 FROM battles
		 WHERE status = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		domain.BattleStatusWaiting, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBattles(rows)
}

// ListByUser returns battles where the user is either player.
func (r *BattleRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.Battle, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+battleColumns+`
		 FROM battles
		 WHERE player1_id = $1 OR player2_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBattles(rows)
}

// DueForResolution returns active battles whose deadline has passed.
func (r *BattleRepository) DueForResolution(ctx context.Context, now time.Time, limit int) ([]*domain.Battle, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+battleColumns+`
		 FROM battles
		 WHERE status = $1 AND resolve_at <= $2
		 ORDER BY resolve_at
		 LIMIT $3`,
		domain.BattleStatusActive, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBattles(rows)
}

func collectBattles(rows pgx.Rows) ([]*domain.Battle, error) {
	var res []*domain.Battle
	for rows.Next() {
		b, err := scanBattle(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, b)
	}
	return res, rows.Err()
}

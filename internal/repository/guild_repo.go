package repository

import (
	"context"
	"errors"

	"realm_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const guildColumns = `id, name, leader_id, member_count, max_members, level, experience, min_level, min_nfts, treasury, created_at`

type GuildRepository struct {
	db *pgxpool.Pool
}

func NewGuildRepository(db *pgxpool.Pool) *GuildRepository {
	return &GuildRepository{db: db}
}

func scanGuild(row pgx.Row) (*domain.Guild, error) {
	var g domain.Guild
	err := row.Scan(
		&g.ID,
		&g.Name,
		&g.LeaderID,
		&g.MemberCount,
		&g.MaxMembers,
		&g.Level,
		&g.Experience,
		&g.MinLevel,
		&g.MinNFTs,
		&g.Treasury,
		&g.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGuildNotFound
		}
		return nil, err
	}
	return &g, nil
}

// isUniqueViolation reports whether err is a Postgres unique
// constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// CreateWithTx inserts a guild with the founder as sole member. The
// creation cost goes into the treasury. A concurrent create that wins
// the race on the name surfaces as ErrGuildNameTaken, not a raw
// constraint error.
func (r *GuildRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, name string, leaderID int64, maxMembers, minLevel, minNFTs int, treasury float64) (*domain.Guild, error) {
	g, err := scanGuild(tx.QueryRow(ctx,
		`INSERT INTO guilds (name, leader_id, member_count, max_members, min_level, min_nfts, treasury)
		 VALUES ($1, $2, 1, $3, $4, $5, $6)
		 RETURNING `+guildColumns,
		name, leaderID, maxMembers, minLevel, minNFTs, treasury,
	))
	if isUniqueViolation(err) {
		return nil, domain.ErrGuildNameTaken
	}
	return g, err
}

func (r *GuildRepository) GetByID(ctx context.Context, id int64) (*domain.Guild, error) {
	return scanGuild(r.db.QueryRow(ctx,
		`SELECT `+guildColumns+` FROM guilds WHERE id = $1`, id))
}

func (r *GuildRepository) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.Guild, error) {
	return scanGuild(tx.QueryRow(ctx,
		`SELECT `+guildColumns+` FROM guilds WHERE id = $1 FOR UPDATE`, id))
}

func (r *GuildRepository) NameExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM guilds WHERE name = $1)`, name).Scan(&exists)
	return exists, err
}

// AddMemberWithTx bumps the member count; the capacity guard keeps the
// count under max_members even under concurrent joins.
func (r *GuildRepository) AddMemberWithTx(ctx context.Context, tx pgx.Tx, guildID int64) (bool, error) {
	tag, err := tx.Exec(ctx,
		`UPDATE guilds
		 SET member_count = member_count + 1
		 WHERE id = $1 AND member_count < max_members`,
		guildID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *GuildRepository) RemoveMemberWithTx(ctx context.Context, tx pgx.Tx, guildID int64) error {
	_, err := tx.Exec(ctx,
		`UPDATE guilds
		 SET member_count = GREATEST(0, member_count - 1)
		 WHERE id = $1`,
		guildID,
	)
	return err
}

func (r *GuildRepository) List(ctx context.Context, limit int) ([]*domain.Guild, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+guildColumns+`
		 FROM guilds
		 ORDER BY member_count DESC, created_at
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Guild
	for rows.Next() {
		g, err := scanGuild(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, g)
	}
	return res, rows.Err()
}

// Members returns the wallet addresses of guild members.
func (r *GuildRepository) Members(ctx context.Context, guildID int64) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT wallet_address FROM users WHERE guild_id = $1 ORDER BY id`, guildID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []string
	for rows.Next() {
		var addr string
		if err := rows.Scan(&addr); err != nil {
			return nil, err
		}
		res = append(res, addr)
	}
	return res, rows.Err()
}

package service

import (
	"context"

	"realm_backend/internal/domain"
	"realm_backend/internal/economy"
	"realm_backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GuildService handles guild creation and membership bookkeeping.
type GuildService struct {
	db        *pgxpool.Pool
	userRepo  *repository.UserRepository
	guildRepo *repository.GuildRepository
	nftRepo   *repository.NFTRepository
	ledger    *LedgerService
}

func NewGuildService(db *pgxpool.Pool) *GuildService {
	return &GuildService{
		db:        db,
		userRepo:  repository.NewUserRepository(db),
		guildRepo: repository.NewGuildRepository(db),
		nftRepo:   repository.NewNFTRepository(db),
		ledger:    NewLedgerService(db),
	}
}

// Create debits the founder and opens a guild with them as sole
// member and leader. The creation cost seeds the treasury.
func (s *GuildService) Create(ctx context.Context, userID int64, name string, maxMembers, minLevel, minNFTs int) (*domain.Guild, error) {
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if maxMembers <= 0 {
		maxMembers = 20
	}

	taken, err := s.guildRepo.NameExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrGuildNameTaken
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
	if user.GuildID != nil {
		return nil, domain.ErrAlreadyInGuild
	}

	if _, err := s.ledger.DebitRealmWithTx(ctx, tx, userID, economy.GuildCreationCost); err != nil {
		return nil, err
	}

	guild, err := s.guildRepo.CreateWithTx(ctx, tx, name, userID, maxMembers, minLevel, minNFTs, economy.GuildCreationCost)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE users SET guild_id = $1 WHERE id = $2`, guild.ID, userID); err != nil {
		return nil, err
	}

	if err := s.ledger.LogWithTx(ctx, tx, &domain.Transaction{
		UserID:   userID,
		Type:     domain.TxTypeGuildCreate,
		Amount:   economy.GuildCreationCost,
		Currency: domain.CurrencyRealm,
		Meta:     map[string]interface{}{"guild_id": guild.ID, "name": name},
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return guild, nil
}

// Join adds the user to a guild, subject to the level requirement, the
// NFT requirement and capacity.
func (s *GuildService) Join(ctx context.Context, userID, guildID int64) (*domain.Guild, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Lock user before guild; Leave uses the same order.
	user, err := s.userRepo.GetByIDForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if user.GuildID != nil {
		return nil, domain.ErrAlreadyInGuild
	}

	guild, err := s.guildRepo.GetByIDForUpdate(ctx, tx, guildID)
	if err != nil {
		return nil, err
	}
	if user.Level < guild.MinLevel {
		return nil, domain.ErrLevelTooLow
	}
	if guild.MinNFTs > 0 {
		owned, err := s.nftRepo.CountByOwner(ctx, userID)
		if err != nil {
			return nil, err
		}
		if owned < guild.MinNFTs {
			return nil, domain.ErrNotEnoughNFTs
		}
	}

	added, err := s.guildRepo.AddMemberWithTx(ctx, tx, guildID)
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, domain.ErrGuildFull
	}

	if _, err := tx.Exec(ctx,
		`UPDATE users SET guild_id = $1 WHERE id = $2`, guildID, userID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	guild.MemberCount++
	return guild, nil
}

// Leave removes the user from their guild. The leader must transfer
// leadership first.
func (s *GuildService) Leave(ctx context.Context, userID int64) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	user, err := s.userRepo.GetByIDForUpdate(ctx, tx, userID)
	if err != nil {
		return err
	}
	if user.GuildID == nil {
		return domain.ErrNotInGuild
	}

	guild, err := s.guildRepo.GetByIDForUpdate(ctx, tx, *user.GuildID)
	if err != nil {
		return err
	}
	if guild.LeaderID == userID {
		return domain.ErrLeaderCannotLeave
	}

	if err := s.guildRepo.RemoveMemberWithTx(ctx, tx, guild.ID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`UPDATE users SET guild_id = NULL WHERE id = $1`, userID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

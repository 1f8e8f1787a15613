package handlers

import (
	"errors"
	"net/http"

	"realm_backend/internal/domain"
	"realm_backend/internal/leaderboard"
	"realm_backend/internal/repository"
	"realm_backend/internal/service"
	"realm_backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HandlerConfig holds wager limits for battle endpoints.
type HandlerConfig struct {
	MinWager float64
	MaxWager float64
}

type Handler struct {
	DB *pgxpool.Pool

	UserRepo        *repository.UserRepository
	BattleRepo      *repository.BattleRepository
	GuildRepo       *repository.GuildRepository
	NFTRepo         *repository.NFTRepository
	TransactionRepo *repository.TransactionRepository

	Ledger    *service.LedgerService
	Market    *service.MarketService
	Swap      *service.SwapService
	Staking   *service.StakingService
	Battles   *service.BattleService
	Guilds    *service.GuildService
	Referrals *service.ReferralService

	Board *leaderboard.Board
	Hub   *ws.Hub
}

func NewHandler(db *pgxpool.Pool, cfg HandlerConfig, board *leaderboard.Board, hub *ws.Hub) *Handler {
	return &Handler{
		DB:              db,
		UserRepo:        repository.NewUserRepository(db),
		BattleRepo:      repository.NewBattleRepository(db),
		GuildRepo:       repository.NewGuildRepository(db),
		NFTRepo:         repository.NewNFTRepository(db),
		TransactionRepo: repository.NewTransactionRepository(db),
		Ledger:          service.NewLedgerService(db),
		Market:          service.NewMarketService(db),
		Swap:            service.NewSwapService(db),
		Staking:         service.NewStakingService(db),
		Battles:         service.NewBattleService(db, cfg.MinWager, cfg.MaxWager),
		Guilds:          service.NewGuildService(db),
		Referrals:       service.NewReferralService(db),
		Board:           board,
		Hub:             hub,
	}
}

// getUserID извлекает user_id из контекста Gin
func getUserID(c *gin.Context) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

// errStatus maps domain errors onto HTTP status codes.
func errStatus(err error) int {
	switch {
	case domain.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrInsufficientEnergy),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrWithdrawLocked),
		errors.Is(err, domain.ErrAlreadyCheckedIn),
		errors.Is(err, domain.ErrAlreadyInGuild),
		errors.Is(err, domain.ErrNotInGuild),
		errors.Is(err, domain.ErrGuildFull),
		errors.Is(err, domain.ErrLevelTooLow),
		errors.Is(err, domain.ErrNotEnoughNFTs),
		errors.Is(err, domain.ErrLeaderCannotLeave),
		errors.Is(err, domain.ErrGuildNameTaken),
		errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrBattleNotJoinable),
		errors.Is(err, domain.ErrOwnBattle),
		errors.Is(err, domain.ErrNFTAlreadyOwned),
		errors.Is(err, domain.ErrReferralUsed),
		errors.Is(err, domain.ErrSelfReferral):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the uniform {"error": ...} body. Internal errors get a
// generic message so database details never leak.
func fail(c *gin.Context, err error) {
	status := errStatus(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

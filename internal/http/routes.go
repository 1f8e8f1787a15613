package http

import (
	"realm_backend/internal/config"
	"realm_backend/internal/http/handlers"
	"realm_backend/internal/http/middleware"
	"realm_backend/internal/leaderboard"
	"realm_backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, board *leaderboard.Board, hub *ws.Hub, version string) *handlers.Handler {
	h := handlers.NewHandler(db, handlers.HandlerConfig{
		MinWager: cfg.MinWager,
		MaxWager: cfg.MaxWager,
	}, board, hub)
	healthHandler := handlers.NewHealthHandler(db, board, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	api := r.Group("/api")
	api.Use(middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow))

	// Auth
	api.POST("/auth/login", middleware.RedisRateLimit(cfg.AuthRateLimit, cfg.AuthRateWindow), h.Login)

	// Public reads
	api.GET("/user/:address", h.GetUser)
	api.GET("/user/:address/transactions", h.GetUserTransactions)
	api.GET("/market/data", h.MarketData)
	api.GET("/leaderboard", h.Leaderboard)
	api.GET("/nfts/marketplace", h.Marketplace)
	api.GET("/guilds", h.ListGuilds)
	api.GET("/guilds/:id", h.GetGuild)
	api.GET("/battles/available", h.AvailableBattles)
	api.GET("/battles/user/:address", h.UserBattles)

	// Authenticated reads
	api.GET("/me", middleware.JWT(), h.Me)
	api.GET("/nfts/my", middleware.JWT(), h.MyNFTs)
	api.GET("/referral/code", middleware.JWT(), h.MyReferralCode)
	api.GET("/referral/stats", middleware.JWT(), h.ReferralStats)

	// Balance-mutating operations get the per-user limiter on top of
	// the per-IP one.
	econRL := middleware.EconomyRateLimit(cfg.EconomyRateLimit, cfg.EconomyRateWindow)

	api.POST("/checkin", middleware.JWT(), econRL, h.Checkin)
	api.POST("/nft/buy", middleware.JWT(), econRL, h.BuyNFT)
	api.POST("/wallet/deposit", middleware.JWT(), econRL, h.Deposit)

	api.POST("/swap/usdt-to-realm", middleware.JWT(), econRL, h.SwapUsdtToRealm)
	api.POST("/swap/realm-to-usdt", middleware.JWT(), econRL, h.SwapRealmToUsdt)

	api.POST("/staking/stake", middleware.JWT(), econRL, h.Stake)
	api.POST("/staking/unstake", middleware.JWT(), econRL, h.Unstake)
	api.POST("/staking/claim", middleware.JWT(), econRL, h.ClaimRewards)

	api.POST("/battle/create", middleware.JWT(), econRL, h.CreateBattle)
	api.POST("/battle/join", middleware.JWT(), econRL, h.JoinBattle)

	api.POST("/guild/create", middleware.JWT(), econRL, h.CreateGuild)
	api.POST("/guild/join", middleware.JWT(), h.JoinGuild)
	api.POST("/guild/leave", middleware.JWT(), h.LeaveGuild)

	api.POST("/referral/use", middleware.JWT(), econRL, h.UseReferral)

	// Event feed
	r.GET("/ws", h.WS)

	return h
}

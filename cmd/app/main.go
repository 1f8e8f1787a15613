package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"realm_backend/internal/config"
	"realm_backend/internal/db"
	httpServer "realm_backend/internal/http"
	"realm_backend/internal/http/middleware"
	"realm_backend/internal/leaderboard"
	"realm_backend/internal/logger"
	"realm_backend/internal/repository"
	"realm_backend/internal/service"
	"realm_backend/internal/worker"
	"realm_backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var version = "dev"

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	service.InitJWT(cfg.JWTSecret)

	dbPool := db.Connect(cfg.DatabaseURL)
	defer dbPool.Close()

	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	board := leaderboard.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer board.Close()

	hub := ws.NewHub()
	go hub.Run()

	r := gin.Default()

	// CORS for production (frontend on different domain)
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := httpServer.RegisterRoutes(r, dbPool, cfg, board, hub, version)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	regen := worker.NewRegenWorker(repository.NewUserRepository(dbPool), cfg.RegenInterval)
	regen.Start(ctx)

	burn := worker.NewBurnWorker(h.Market, hub, cfg.BurnCheckInterval)
	burn.Start(ctx)

	resolver := worker.NewBattleResolver(h.Battles, board, hub, cfg.ResolverInterval)
	resolver.Start(ctx)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "version", version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	resolver.Stop()
	burn.Stop()
	regen.Stop()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}

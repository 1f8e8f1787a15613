package leaderboard

import (
	"context"
	"fmt"
	"time"

	"realm_backend/internal/logger"

	"github.com/redis/go-redis/v9"
)

const boardKey = "leaderboard:battles_won"

// Entry is one leaderboard row.
type Entry struct {
	Rank   int    `json:"rank"`
	Wallet string `json:"wallet_address"`
	Wins   int    `json:"wins"`
}

// Board keeps the battles-won leaderboard in a Redis sorted set,
// updated at battle resolution. A Board with no Redis configured is
// disabled and callers fall back to SQL.
type Board struct {
	client *redis.Client
}

// New connects to Redis. An empty addr returns a disabled board.
func New(addr, password string, db int) *Board {
	if addr == "" {
		return &Board{}
	}

	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("leaderboard redis unavailable, falling back to sql", "error", err)
		return &Board{}
	}

	return &Board{client: client}
}

func (b *Board) Enabled() bool {
	return b != nil && b.client != nil
}

func (b *Board) Close() error {
	if !b.Enabled() {
		return nil
	}
	return b.client.Close()
}

// RecordWins sets a player's battles-won score.
func (b *Board) RecordWins(ctx context.Context, wallet string, wins int) {
	if !b.Enabled() {
		return
	}
	if err := b.client.ZAdd(ctx, boardKey, redis.Z{
		Score:  float64(wins),
		Member: wallet,
	}).Err(); err != nil {
		logger.Warn("leaderboard update failed", "wallet", wallet, "error", err)
	}
}

// Top returns the highest-scoring players.
func (b *Board) Top(ctx context.Context, limit int) ([]Entry, error) {
	if !b.Enabled() {
		return nil, fmt.Errorf("leaderboard disabled")
	}
	if limit <= 0 {
		limit = 100
	}

	zs, err := b.client.ZRevRangeWithScores(ctx, boardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(zs))
	for i, z := range zs {
		wallet, _ := z.Member.(string)
		entries = append(entries, Entry{
			Rank:   i + 1,
			Wallet: wallet,
			Wins:   int(z.Score),
		})
	}
	return entries, nil
}

package worker

import (
	"context"
	"time"

	"realm_backend/internal/leaderboard"
	"realm_backend/internal/logger"
	"realm_backend/internal/service"
	"realm_backend/internal/ws"
)

// BattleResolver polls for active battles past their persisted
// deadline and settles them. Because the deadline lives in the
// battles table, a process restart picks up where the old one left
// off instead of stranding locked wagers.
type BattleResolver struct {
	battles  *service.BattleService
	board    *leaderboard.Board
	hub      *ws.Hub
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func NewBattleResolver(battles *service.BattleService, board *leaderboard.Board, hub *ws.Hub, interval time.Duration) *BattleResolver {
	return &BattleResolver{
		battles:  battles,
		board:    board,
		hub:      hub,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

func (w *BattleResolver) Start(ctx context.Context) {
	logger.Info("battle resolver started", "interval", w.interval)
	go w.run(ctx)
}

func (w *BattleResolver) Stop() {
	close(w.stopCh)
	<-w.doneCh
	logger.Info("battle resolver stopped")
}

func (w *BattleResolver) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *BattleResolver) tick(ctx context.Context) {
	outcomes, err := w.battles.ResolveDue(ctx, time.Now())
	if err != nil {
		logger.Error("battle resolution failed", "error", err)
	}

	for _, outcome := range outcomes {
		BattlesResolved.Inc()
		logger.Info("battle resolved",
			"battle_id", outcome.BattleID,
			"winner_id", outcome.WinnerID,
			"payout", outcome.Payout,
			"admin_fee", outcome.AdminFee)

		w.board.RecordWins(ctx, outcome.WinnerWallet, outcome.WinnerWins)
		if w.hub != nil {
			w.hub.Broadcast(ws.EventBattleResolved, outcome)
		}
	}
}

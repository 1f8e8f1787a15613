package worker

import (
	"context"
	"time"

	"realm_backend/internal/logger"
	"realm_backend/internal/repository"
)

const (
	energyPerTick = 5
	healthPerTick = 2
)

// RegenWorker tops up energy and health for every user on a fixed
// interval, capped at the maximums.
type RegenWorker struct {
	userRepo *repository.UserRepository
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func NewRegenWorker(userRepo *repository.UserRepository, interval time.Duration) *RegenWorker {
	return &RegenWorker{
		userRepo: userRepo,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

func (w *RegenWorker) Start(ctx context.Context) {
	logger.Info("regen worker started", "interval", w.interval)
	go w.run(ctx)
}

func (w *RegenWorker) Stop() {
	close(w.stopCh)
	<-w.doneCh
	logger.Info("regen worker stopped")
}

func (w *RegenWorker) run(ctx context.Context) {
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
			if _, err := w.userRepo.Regenerate(ctx, energyPerTick, healthPerTick); err != nil {
				logger.Error("regen tick failed", "error", err)
			}
		}
	}
}

package worker

import (
	"context"
	"time"

	"realm_backend/internal/logger"
	"realm_backend/internal/service"
	"realm_backend/internal/ws"
)

// BurnWorker checks on an hourly cadence whether a 24h window has
// elapsed since the last burn and runs at most one burn per window.
type BurnWorker struct {
	market   *service.MarketService
	hub      *ws.Hub
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func NewBurnWorker(market *service.MarketService, hub *ws.Hub, interval time.Duration) *BurnWorker {
	return &BurnWorker{
		market:   market,
		hub:      hub,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

func (w *BurnWorker) Start(ctx context.Context) {
	logger.Info("burn worker started", "interval", w.interval)
	go w.run(ctx)
}

func (w *BurnWorker) Stop() {
	close(w.stopCh)
	<-w.doneCh
	logger.Info("burn worker stopped")
}

func (w *BurnWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Check once at startup so a burn missed during downtime is not
	// delayed by a full interval.
	w.tick(ctx)

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

func (w *BurnWorker) tick(ctx context.Context) {
	burned, executed, err := w.market.Burn(ctx, time.Now())
	if err != nil {
		logger.Error("burn check failed", "error", err)
		return
	}
	if !executed {
		return
	}

	SupplyBurns.Inc()

	market, err := w.market.Get(ctx)
	if err != nil {
		logger.Error("market read after burn failed", "error", err)
		return
	}
	RealmPrice.Set(market.Price)

	logger.Info("daily burn executed", "burned", burned, "price", market.Price,
		"circulating_supply", market.CirculatingSupply)

	if w.hub != nil {
		w.hub.Broadcast(ws.EventSupplyBurn, map[string]interface{}{
			"burned":             burned,
			"price":              market.Price,
			"circulating_supply": market.CirculatingSupply,
		})
	}
}

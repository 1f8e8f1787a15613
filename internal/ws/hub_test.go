package ws

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{hub: hub, send: make(chan []byte, 4)}
	hub.register <- client

	hub.Broadcast(EventMarketTick, map[string]float64{"price": 0.25})

	select {
	case payload := <-client.send:
		var ev Event
		if err := json.Unmarshal(payload, &ev); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		if ev.Type != EventMarketTick {
			t.Fatalf("event type = %s; want %s", ev.Type, EventMarketTick)
		}
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	// Zero-capacity send channel simulates a stuck writer.
	client := &Client{hub: hub, send: make(chan []byte)}
	hub.register <- client

	hub.Broadcast(EventSupplyBurn, nil)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if hub.ClientCount() == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("slow client was not dropped")
}

package economy

import (
	"testing"

	"realm_backend/internal/domain"
)

func TestPriceImpact(t *testing.T) {
	cases := []struct {
		trade, supply float64
		want          float64
	}{
		{1000, 100000, 0.001},
		{0, 100000, 0},
		{1000, 0, 0}, // degenerate supply must not divide by zero
	}

	for _, tc := range cases {
		if got := PriceImpact(tc.trade, tc.supply); !almostEqual(got, tc.want) {
			t.Fatalf("PriceImpact(%v, %v) = %v; want %v", tc.trade, tc.supply, got, tc.want)
		}
	}
}

func TestApplyTrade(t *testing.T) {
	const supply = 100000.0

	up := ApplyTrade(0.1, 1000, supply, domain.TradeSideBuy)
	if !almostEqual(up, 0.1*1.001) {
		t.Fatalf("buy moved price to %v; want %v", up, 0.1*1.001)
	}

	down := ApplyTrade(0.1, 1000, supply, domain.TradeSideSell)
	if !almostEqual(down, 0.1*0.999) {
		t.Fatalf("sell moved price to %v; want %v", down, 0.1*0.999)
	}

	burn := ApplyTrade(0.1, 1000, supply, domain.TradeSideBurn)
	if !almostEqual(burn, down) {
		t.Fatalf("burn should move price like a sell: %v != %v", burn, down)
	}
}

// Price must stay inside [MinPrice, MaxPrice] after any trade sequence.
func TestApplyTradeClamped(t *testing.T) {
	price := 0.5
	for i := 0; i < 500; i++ {
		price = ApplyTrade(price, 50000, 100000, domain.TradeSideBuy)
	}
	if price != MaxPrice {
		t.Fatalf("runaway buys ended at %v; want clamp at %v", price, MaxPrice)
	}

	for i := 0; i < 500; i++ {
		price = ApplyTrade(price, 50000, 100000, domain.TradeSideSell)
	}
	if price != MinPrice {
		t.Fatalf("runaway sells ended at %v; want clamp at %v", price, MinPrice)
	}
}

func TestBurnAmount(t *testing.T) {
	if got := BurnAmount(100000); !almostEqual(got, 2000) {
		t.Fatalf("BurnAmount(100000) = %v; want 2000", got)
	}
}

package economy

import (
	"errors"
	"math"
	"testing"
	"time"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSwapUsdtToRealm(t *testing.T) {
	cases := []struct {
		amount, price float64
		wantOut       float64
		wantFee       float64
	}{
		{100, 0.5, 198, 1},
		{100, 0.01, 9900, 1},
		{50, 0.25, 198, 0.5},
	}

	for _, tc := range cases {
		out, fee := SwapUsdtToRealm(tc.amount, tc.price)
		if !almostEqual(out, tc.wantOut) || !almostEqual(fee, tc.wantFee) {
			t.Fatalf("SwapUsdtToRealm(%v, %v) = (%v, %v); want (%v, %v)",
				tc.amount, tc.price, out, fee, tc.wantOut, tc.wantFee)
		}
	}
}

func TestSwapRealmToUsdt(t *testing.T) {
	cases := []struct {
		amount, price float64
		wantOut       float64
		wantFee       float64
	}{
		{100, 0.5, 49.5, 0.5},
		{1000, 0.01, 9.9, 0.1},
	}

	for _, tc := range cases {
		out, fee := SwapRealmToUsdt(tc.amount, tc.price)
		if !almostEqual(out, tc.wantOut) || !almostEqual(fee, tc.wantFee) {
			t.Fatalf("SwapRealmToUsdt(%v, %v) = (%v, %v); want (%v, %v)",
				tc.amount, tc.price, out, fee, tc.wantOut, tc.wantFee)
		}
	}
}

// Fee must always be 1% of the input, regardless of price.
func TestSwapFeeProperty(t *testing.T) {
	for _, amount := range []float64{1, 10, 123.45, 99999} {
		for _, price := range []float64{0.001, 0.1, 0.5, 1} {
			_, fee := SwapUsdtToRealm(amount, price)
			if !almostEqual(fee, amount*SwapFee) {
				t.Fatalf("usdt->realm fee for amount %v = %v; want %v", amount, fee, amount*SwapFee)
			}
			out, fee2 := SwapRealmToUsdt(amount, price)
			if !almostEqual(out+fee2, amount*price) {
				t.Fatalf("realm->usdt output %v + fee %v != gross %v", out, fee2, amount*price)
			}
		}
	}
}

func TestStakingAccrual(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// 200 staked for 10 days at 0.1%/day yields exactly 2 REALM.
	got := StakingAccrual(200, base, base.Add(10*24*time.Hour))
	if !almostEqual(got, 2) {
		t.Fatalf("StakingAccrual(200, 10d) = %v; want 2", got)
	}

	// Fractional days accrue proportionally.
	got = StakingAccrual(1000, base, base.Add(12*time.Hour))
	if !almostEqual(got, 0.5) {
		t.Fatalf("StakingAccrual(1000, 12h) = %v; want 0.5", got)
	}

	// No principal or no elapsed time means no accrual.
	if got := StakingAccrual(0, base, base.Add(time.Hour)); got != 0 {
		t.Fatalf("zero principal accrued %v", got)
	}
	if got := StakingAccrual(100, base, base); got != 0 {
		t.Fatalf("zero elapsed accrued %v", got)
	}
}

// Accrual is monotonic non-decreasing between claims.
func TestStakingAccrualMonotonic(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	prev := 0.0
	for h := 1; h <= 72; h++ {
		got := StakingAccrual(500, base, base.Add(time.Duration(h)*time.Hour))
		if got < prev {
			t.Fatalf("accrual decreased at hour %d: %v < %v", h, got, prev)
		}
		prev = got
	}
}

func TestBattlePayout(t *testing.T) {
	cases := []struct {
		wager      float64
		wantPayout float64
		wantFee    float64
	}{
		{50, 85, 15},
		{100, 170, 30},
		{1, 1.7, 0.3},
	}

	for _, tc := range cases {
		payout, fee := BattlePayout(tc.wager)
		if !almostEqual(payout, tc.wantPayout) || !almostEqual(fee, tc.wantFee) {
			t.Fatalf("BattlePayout(%v) = (%v, %v); want (%v, %v)",
				tc.wager, payout, fee, tc.wantPayout, tc.wantFee)
		}
		// Conservation: debits from both players equal payout + admin fee.
		if !almostEqual(payout+fee, tc.wager*2) {
			t.Fatalf("pot not conserved for wager %v: %v + %v != %v",
				tc.wager, payout, fee, tc.wager*2)
		}
	}
}

func TestWinnerIndex(t *testing.T) {
	cases := []struct {
		roll float64
		want int
	}{
		{0.0, 1},
		{0.39, 1},
		{0.4, 1},
		{0.41, 0},
		{0.99, 0},
	}

	for _, tc := range cases {
		if got := WinnerIndex(tc.roll); got != tc.want {
			t.Fatalf("WinnerIndex(%v) = %d; want %d", tc.roll, got, tc.want)
		}
	}
}

func TestRollRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		r := Roll()
		if r < 0 || r >= 1 {
			t.Fatalf("Roll() = %v; want [0,1)", r)
		}
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}

func TestRollPanicsOnBrokenRandomSource(t *testing.T) {
	orig := randReader
	randReader = failingReader{}
	defer func() {
		randReader = orig
		if recover() == nil {
			t.Fatalf("Roll() returned instead of panicking on a broken random source")
		}
	}()
	Roll()
}

func TestLevelForExperience(t *testing.T) {
	cases := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{250, 3},
		{-5, 1},
	}

	for _, tc := range cases {
		if got := LevelForExperience(tc.xp); got != tc.want {
			t.Fatalf("LevelForExperience(%d) = %d; want %d", tc.xp, got, tc.want)
		}
	}
}

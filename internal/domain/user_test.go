package domain

import (
	"testing"
	"time"
)

func TestCheckedInToday(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		last *time.Time
		want bool
	}{
		{"never checked in", nil, false},
		{"same day earlier", tp(time.Date(2025, 6, 15, 0, 30, 0, 0, time.UTC)), true},
		{"same instant", tp(now), true},
		{"yesterday just before midnight", tp(time.Date(2025, 6, 14, 23, 59, 59, 0, time.UTC)), false},
		{"same day in another zone", tp(time.Date(2025, 6, 15, 1, 0, 0, 0, time.FixedZone("UTC+3", 3*3600))), false},
		{"same yearday last year", tp(time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)), false},
	}

	for _, tt := range tests {
		u := &User{LastCheckin: tt.last}
		if got := u.CheckedInToday(now); got != tt.want {
			t.Fatalf("%s: CheckedInToday = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func tp(t time.Time) *time.Time { return &t }

package krx

import (
	"testing"
	"time"
)

func TestIsMarketOpen(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"weekday mid-session", time.Date(2026, 8, 25, 11, 0, 0, 0, KST), true}, // Tuesday
		{"open exactly 09:00", time.Date(2026, 8, 25, 9, 0, 0, 0, KST), true},
		{"close exactly 15:30", time.Date(2026, 8, 25, 15, 30, 0, 0, KST), true},
		{"just after close", time.Date(2026, 8, 25, 15, 31, 0, 0, KST), false},
		{"before open", time.Date(2026, 8, 25, 8, 59, 0, 0, KST), false},
		{"saturday", time.Date(2026, 8, 29, 11, 0, 0, 0, KST), false},
		{"sunday", time.Date(2026, 8, 30, 11, 0, 0, 0, KST), false},
		{"utc time converted to kst", time.Date(2026, 8, 25, 2, 0, 0, 0, time.UTC), true}, // 11:00 KST
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsMarketOpen(tt.at); got != tt.want {
				t.Errorf("IsMarketOpen(%s) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

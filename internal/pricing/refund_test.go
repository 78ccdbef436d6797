package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRefundPercent(t *testing.T) {
	checkIn := time.Date(2026, 1, 10, 13, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		hoursBefore float64
		want        int64
	}{
		{"well in advance", 170, 100},
		{"exactly 48 hours", 48, 100},
		{"just under 48 hours", 47.9, 95},
		{"exactly 24 hours", 24, 95},
		{"just under 24 hours", 23.5, 85},
		{"exactly 5 hours", 5, 85},
		{"four hours out", 4, 70},
		{"exactly 3 hours", 3, 70},
		{"two hours out", 2, 50},
		{"exactly 1 hour", 1, 50},
		{"thirty minutes out", 0.5, 25},
		{"check-in already passed", -6, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := checkIn.Add(-time.Duration(tt.hoursBefore * float64(time.Hour)))
			assert.Equal(t, tt.want, RefundPercent(checkIn, now))
		})
	}
}

// Earlier cancellations must never refund less than later ones.
func TestRefundPercentMonotone(t *testing.T) {
	checkIn := time.Date(2026, 1, 10, 13, 0, 0, 0, time.UTC)
	prev := int64(101)
	for h := 72.0; h >= -2; h -= 0.25 {
		now := checkIn.Add(-time.Duration(h * float64(time.Hour)))
		p := RefundPercent(checkIn, now)
		assert.LessOrEqual(t, p, prev, "refund at %.2fh before check-in", h)
		prev = p
	}
}

func TestRefundAmount(t *testing.T) {
	tests := []struct {
		name    string
		total   int64
		percent int64
		want    int64
	}{
		{"full refund", 6000, 100, 6000},
		{"95 percent", 6000, 95, 5700},
		{"rounds to nearest unit", 1999, 85, 1699}, // 1699.15
		{"rounds half away from zero", 1990, 25, 498}, // 497.5
		{"zero total", 0, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RefundAmount(tt.total, tt.percent))
		})
	}
}

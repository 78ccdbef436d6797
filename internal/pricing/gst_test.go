package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGSTPercentSlabBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		want   int64
	}{
		{"zero", 0, 0},
		{"top of zero slab", 999, 0},
		{"bottom of 5% slab", 1000, 5},
		{"mid 5% slab", 6000, 5},
		{"top of 5% slab", 7499, 5},
		{"bottom of 18% slab", 7500, 18},
		{"large amount", 1_000_000, 18},
		{"negative amount", -50, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GSTPercent(tt.amount))
		})
	}
}

func TestGSTAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		want   int64
	}{
		{"below taxable floor", 500, 0},
		{"exactly at 5% floor", 1000, 50},
		{"mid slab", 6000, 300},
		{"rounds half up", 1010, 51}, // 50.5 rounds away from zero
		{"18% slab", 7500, 1350},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GSTAmount(tt.amount))
		})
	}
}

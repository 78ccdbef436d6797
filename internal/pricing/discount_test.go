package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/hotel-booking/internal/model"
)

func percentCoupon(value float64, maxPrice int64) *model.Coupon {
	return &model.Coupon{Type: model.CouponTypePercent, Value: value, MaxPrice: maxPrice}
}

func flatCoupon(value float64, maxPrice int64) *model.Coupon {
	return &model.Coupon{Type: model.CouponTypeFlat, Value: value, MaxPrice: maxPrice}
}

func TestApplyCoupon(t *testing.T) {
	tests := []struct {
		name         string
		basePrice    int64
		coupon       *model.Coupon
		wantDiscount int64
		wantFinal    int64
	}{
		{"nil coupon", 2000, nil, 0, 2000},
		{"percent capped by max price", 2000, percentCoupon(10, 150), 150, 1850},
		{"percent below cap", 2000, percentCoupon(5, 500), 100, 1900},
		{"flat exceeding base clamps to zero", 500, flatCoupon(800, 1000), 500, 0},
		{"flat within base", 2000, flatCoupon(300, 1000), 300, 1700},
		{"percent rounds to nearest unit", 999, percentCoupon(5, 1000), 50, 949}, // 49.95
		{"negative value treated as zero", 2000, flatCoupon(-100, 1000), 0, 2000},
		{"hundred percent", 2000, percentCoupon(100, 5000), 2000, 0},
		{"zero base price", 0, percentCoupon(10, 150), 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ApplyCoupon(tt.basePrice, tt.coupon)
			assert.Equal(t, tt.basePrice, q.BasePrice)
			assert.Equal(t, tt.wantDiscount, q.Discount)
			assert.Equal(t, tt.wantFinal, q.FinalPrice)
		})
	}
}

// Switching coupons must always recompute from the base price, never
// from an already-discounted amount.
func TestApplyCouponDoesNotCompound(t *testing.T) {
	base := int64(2000)
	first := ApplyCoupon(base, percentCoupon(10, 150))
	second := ApplyCoupon(base, flatCoupon(300, 1000))

	assert.Equal(t, int64(1850), first.FinalPrice)
	assert.Equal(t, int64(1700), second.FinalPrice)

	// Re-applying the same coupon is idempotent.
	again := ApplyCoupon(base, percentCoupon(10, 150))
	assert.Equal(t, first, again)
}

func TestEligible(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	valid := &model.Coupon{
		Type:      model.CouponTypePercent,
		Value:     10,
		MinPrice:  1000,
		MaxPrice:  500,
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name      string
		mutate    func(c *model.Coupon)
		basePrice int64
		at        time.Time
		want      bool
	}{
		{"valid window and floor", nil, 2000, now, true},
		{"subtotal below min price", nil, 999, now, false},
		{"subtotal exactly at min price", nil, 1000, now, true},
		{"blocked", func(c *model.Coupon) { c.IsBlocked = true }, 2000, now, false},
		{"before start date", nil, 2000, time.Date(2026, 2, 28, 23, 0, 0, 0, time.UTC), false},
		{"on end date", nil, 2000, time.Date(2026, 3, 31, 23, 59, 0, 0, time.UTC), true},
		{"after end date", nil, 2000, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := *valid
			if tt.mutate != nil {
				tt.mutate(&c)
			}
			assert.Equal(t, tt.want, Eligible(&c, tt.basePrice, tt.at))
		})
	}

	assert.False(t, Eligible(nil, 2000, now))
}

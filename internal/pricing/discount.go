package pricing

import (
	"math"
	"time"

	"github.com/iliyamo/hotel-booking/internal/model"
)

// Quote is the result of applying (or not applying) a coupon to a
// subtotal.  FinalPrice is never negative and Discount never exceeds
// the subtotal.
type Quote struct {
	BasePrice  int64 `json:"base_price"`
	Discount   int64 `json:"discount"`
	FinalPrice int64 `json:"final_price"`
}

// ApplyCoupon computes the discounted price for a subtotal.  It is a
// pure reducer over (basePrice, coupon): passing nil yields a zero
// discount, and re-applying or switching coupons always recomputes
// from the unmodified base price, so discounts never compound.
//
// The raw discount is the coupon value for FLAT coupons and
// basePrice*value/100 for PERCENT coupons.  It is then capped by the
// coupon's MaxPrice and floored so the final price never drops below
// zero, whichever binds first.
func ApplyCoupon(basePrice int64, c *model.Coupon) Quote {
	if c == nil {
		return Quote{BasePrice: basePrice, Discount: 0, FinalPrice: basePrice}
	}
	var raw int64
	switch c.Type {
	case model.CouponTypePercent:
		raw = int64(math.Round(float64(basePrice) * c.Value / 100))
	default: // FLAT
		raw = int64(math.Round(c.Value))
	}
	if raw < 0 {
		raw = 0
	}
	discount := raw
	if discount > c.MaxPrice {
		discount = c.MaxPrice
	}
	if discount > basePrice {
		discount = basePrice
	}
	if discount < 0 {
		discount = 0
	}
	return Quote{BasePrice: basePrice, Discount: discount, FinalPrice: basePrice - discount}
}

// Eligible reports whether a coupon may be offered against the given
// subtotal at the given instant.  Ineligible coupons are silently
// excluded from offer lists rather than surfaced as errors: the
// subtotal must reach the coupon's MinPrice floor, the date must fall
// inside the validity window, and the coupon must not be blocked.
func Eligible(c *model.Coupon, basePrice int64, now time.Time) bool {
	if c == nil || c.IsBlocked {
		return false
	}
	if basePrice < c.MinPrice {
		return false
	}
	if !c.StartDate.IsZero() && now.Before(c.StartDate) {
		return false
	}
	// EndDate is the last valid day, inclusive.
	if !c.EndDate.IsZero() && now.After(c.EndDate.Add(24*time.Hour-time.Nanosecond)) {
		return false
	}
	return true
}

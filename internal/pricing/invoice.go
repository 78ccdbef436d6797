package pricing

import (
	"math"

	"github.com/iliyamo/hotel-booking/internal/model"
)

// Invoice is the deterministic summary re-derived from a persisted
// booking for display and export.  It is consumed by an external
// document renderer; nothing in it is trust-sensitive, and the
// payable amount is always the persisted TotalPrice, never a
// recomputation.
type Invoice struct {
	BookingID      uint64 `json:"booking_id"`
	GSTPercent     int64  `json:"gst_percent"`
	GSTAmount      int64  `json:"gst_amount"`
	OriginalAmount int64  `json:"original_amount"`
	DiscountAmount int64  `json:"discount_amount"`
	TotalPrice     int64  `json:"total_price"`
	PaymentStatus  string `json:"payment_status"`
}

// AssembleInvoice builds the invoice for a booking.  GST is
// re-derived from the persisted total.  When the booking stored its
// original and discount amounts at creation time those are used
// directly; for legacy rows that only stored the total, the original
// amount is reconstructed by inverting the coupon formula (flat:
// total + value; percent: total / (1 - value/100), rounded).  The
// inversion is lossy under rounding by at most one currency unit and
// is acceptable for display only.
func AssembleInvoice(b *model.Booking, c *model.Coupon) Invoice {
	inv := Invoice{
		BookingID:     b.ID,
		GSTPercent:    GSTPercent(b.TotalPrice),
		GSTAmount:     GSTAmount(b.TotalPrice),
		TotalPrice:    b.TotalPrice,
		PaymentStatus: b.PaymentStatus,
	}
	switch {
	case b.OriginalPrice > 0:
		inv.OriginalAmount = b.OriginalPrice
		inv.DiscountAmount = b.Discount
	case c == nil:
		inv.OriginalAmount = b.TotalPrice
	case c.Type == model.CouponTypePercent:
		if c.Value >= 100 {
			// A 100% coupon cannot be inverted from a zero total.
			inv.OriginalAmount = b.TotalPrice
			break
		}
		orig := int64(math.Round(float64(b.TotalPrice) / (1 - c.Value/100)))
		inv.OriginalAmount = orig
		inv.DiscountAmount = orig - b.TotalPrice
	default: // FLAT
		inv.DiscountAmount = int64(math.Round(c.Value))
		inv.OriginalAmount = b.TotalPrice + inv.DiscountAmount
	}
	return inv
}

package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/hotel-booking/internal/model"
)

func TestAssembleInvoiceStoredAmounts(t *testing.T) {
	b := &model.Booking{
		ID:            42,
		OriginalPrice: 2000,
		Discount:      150,
		TotalPrice:    1850,
		PaymentStatus: model.PaymentStatusSuccess,
	}
	inv := AssembleInvoice(b, percentCoupon(10, 150))

	assert.Equal(t, uint64(42), inv.BookingID)
	assert.Equal(t, int64(2000), inv.OriginalAmount)
	assert.Equal(t, int64(150), inv.DiscountAmount)
	assert.Equal(t, int64(1850), inv.TotalPrice)
	assert.Equal(t, int64(5), inv.GSTPercent)
	assert.Equal(t, int64(93), inv.GSTAmount) // 92.5 rounds up
	assert.Equal(t, model.PaymentStatusSuccess, inv.PaymentStatus)
}

func TestAssembleInvoiceNoCoupon(t *testing.T) {
	b := &model.Booking{ID: 7, TotalPrice: 8000, PaymentStatus: model.PaymentStatusPending}
	inv := AssembleInvoice(b, nil)

	assert.Equal(t, int64(8000), inv.OriginalAmount)
	assert.Equal(t, int64(0), inv.DiscountAmount)
	assert.Equal(t, int64(18), inv.GSTPercent)
	assert.Equal(t, int64(1440), inv.GSTAmount)
}

// Legacy rows only persisted the discounted total; the original must
// be reconstructed by inverting the coupon formula.
func TestAssembleInvoiceLegacyInversion(t *testing.T) {
	t.Run("flat", func(t *testing.T) {
		b := &model.Booking{TotalPrice: 1700}
		inv := AssembleInvoice(b, flatCoupon(300, 1000))
		assert.Equal(t, int64(2000), inv.OriginalAmount)
		assert.Equal(t, int64(300), inv.DiscountAmount)
	})

	t.Run("percent", func(t *testing.T) {
		b := &model.Booking{TotalPrice: 1800}
		inv := AssembleInvoice(b, percentCoupon(10, 100_000))
		assert.Equal(t, int64(2000), inv.OriginalAmount)
		assert.Equal(t, int64(200), inv.DiscountAmount)
	})

	t.Run("full percent cannot invert a zero total", func(t *testing.T) {
		b := &model.Booking{TotalPrice: 0}
		inv := AssembleInvoice(b, percentCoupon(100, 100_000))
		assert.Equal(t, int64(0), inv.OriginalAmount)
		assert.Equal(t, int64(0), inv.DiscountAmount)
	})
}

// The inversion is lossy under rounding by at most one currency unit.
func TestAssembleInvoiceInversionError(t *testing.T) {
	for base := int64(1000); base <= 1050; base++ {
		c := percentCoupon(17, 100_000)
		q := ApplyCoupon(base, c)
		b := &model.Booking{TotalPrice: q.FinalPrice}
		inv := AssembleInvoice(b, c)

		diff := inv.OriginalAmount - base
		if diff < 0 {
			diff = -diff
		}
		assert.LessOrEqual(t, diff, int64(1), "base %d", base)
		assert.Equal(t, inv.OriginalAmount-inv.DiscountAmount, inv.TotalPrice)
	}
}

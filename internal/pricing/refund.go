package pricing

import "time"

// RefundTier maps a minimum number of hours until check-in to the
// refund percentage a cancellation earns.
type RefundTier struct {
	ThresholdHours float64
	RefundPercent  int64
}

// refundTiers is the fixed cancellation policy, ordered by descending
// threshold.  The final tier is the catch-all for cancellations less
// than one hour before check-in.
var refundTiers = []RefundTier{
	{ThresholdHours: 48, RefundPercent: 100},
	{ThresholdHours: 24, RefundPercent: 95},
	{ThresholdHours: 5, RefundPercent: 85},
	{ThresholdHours: 3, RefundPercent: 70},
	{ThresholdHours: 1, RefundPercent: 50},
	{ThresholdHours: 0, RefundPercent: 25},
}

// RefundPercent returns the refund percentage for cancelling at now
// with the given check-in instant.  The tiers are inclusive on the
// lower threshold: exactly 48 hours out refunds 100%, exactly 24
// hours refunds 95%, and anything under one hour (including a
// check-in already passed) refunds 25%.  The percentage shown to a
// user before confirming is advisory only; callers must recompute it
// at the instant the cancellation is processed.
func RefundPercent(checkIn, now time.Time) int64 {
	hours := checkIn.Sub(now).Hours()
	for _, t := range refundTiers {
		if hours >= t.ThresholdHours {
			return t.RefundPercent
		}
	}
	return refundTiers[len(refundTiers)-1].RefundPercent
}

// RefundAmount converts a refund percentage into whole currency
// units of the booking's total price, rounded to the nearest unit.
func RefundAmount(totalPrice, refundPercent int64) int64 {
	return roundDiv(totalPrice*refundPercent, 100)
}

// Package pricing implements the booking price engine: stay
// validation and subtotal composition, coupon discounts, GST slabs,
// refund tiers and invoice assembly.  Every function in this package
// is pure and safe for concurrent use; amounts are whole currency
// units (the domain has no sub-unit currency).
package pricing

// Slab maps a contiguous amount range [Min, Max] to a GST rate.  Max
// is inclusive; the last slab is open-ended (Max < 0).
type Slab struct {
	Min     int64
	Max     int64 // inclusive; negative means no upper bound
	Percent int64
}

// gstSlabs is the fixed GST policy.  Slabs are ordered, contiguous
// and exhaustive over the non-negative amounts, so lookup never
// falls through.
var gstSlabs = []Slab{
	{Min: 0, Max: 999, Percent: 0},
	{Min: 1000, Max: 7499, Percent: 5},
	{Min: 7500, Max: -1, Percent: 18},
}

// GSTPercent returns the GST rate for the given amount.  Both slab
// boundaries are inclusive: GSTPercent(999) is 0, GSTPercent(1000)
// is 5, GSTPercent(7499) is 5, GSTPercent(7500) is 18.  Negative
// amounts fall into the first slab.
func GSTPercent(amount int64) int64 {
	for _, s := range gstSlabs {
		if amount <= s.Max || s.Max < 0 {
			return s.Percent
		}
	}
	return gstSlabs[len(gstSlabs)-1].Percent
}

// GSTAmount returns the GST due on the given amount, rounded to the
// nearest whole currency unit.
func GSTAmount(amount int64) int64 {
	return roundDiv(amount*GSTPercent(amount), 100)
}

// roundDiv divides num by den rounding half away from zero.  den
// must be positive.
func roundDiv(num, den int64) int64 {
	if num >= 0 {
		return (num + den/2) / den
	}
	return -((-num + den/2) / den)
}

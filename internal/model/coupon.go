package model

import "time"

// Coupon discount types.  FLAT subtracts Value currency units from
// the subtotal; PERCENT subtracts Value percent of the subtotal.
const (
	CouponTypeFlat    = "FLAT"
	CouponTypePercent = "PERCENT"
)

// Coupon is a vendor-owned discount voucher.  The booking engine only
// reads coupons; creation and blocking belong to the vendor surface.
//
// Fields:
//  ID        – primary key identifier.
//  VendorID  – vendor who issued the coupon.
//  Code      – short display code, unique per vendor.
//  Type      – FLAT or PERCENT.
//  Value     – flat amount in currency units, or percentage.
//  MinPrice  – eligibility floor; the coupon is only offered when the
//              subtotal is at least this amount.
//  MaxPrice  – cap on the computed discount amount.
//  StartDate – first day the coupon is valid (inclusive).
//  EndDate   – last day the coupon is valid (inclusive).
//  IsBlocked – blocked coupons are never offered or applied.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Coupon struct {
	ID        uint64    // coupons.id
	VendorID  uint64    // coupons.vendor_id
	Code      string    // coupons.code
	Type      string    // coupons.type
	Value     float64   // coupons.value
	MinPrice  int64     // coupons.min_price
	MaxPrice  int64     // coupons.max_price
	StartDate time.Time // coupons.start_date
	EndDate   time.Time // coupons.end_date
	IsBlocked bool      // coupons.is_blocked
	CreatedAt time.Time // coupons.created_at
	UpdatedAt time.Time // coupons.updated_at
}

package model

import "time"

// Booking status values.  A booking is never deleted, only
// transitioned: PENDING -> CONFIRMED | CANCELLED, CONFIRMED ->
// CANCELLED.  CANCELLED is terminal.
const (
	BookingStatusPending   = "PENDING"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
)

// Payment status values for a booking.  A wallet debit is treated as
// immediate SUCCESS; the online path moves PENDING -> SUCCESS |
// FAILED once the provider reports, and cancellation moves SUCCESS ->
// REFUNDED.
const (
	PaymentStatusPending  = "PENDING"
	PaymentStatusSuccess  = "SUCCESS"
	PaymentStatusFailed   = "FAILED"
	PaymentStatusRefunded = "REFUNDED"
)

// Booking records a guest's reservation of one or more rooms of a
// single category for a date range.  Prices are stored in whole
// currency units.  OriginalPrice and Discount are persisted at
// creation time so invoices do not have to re-derive them from the
// coupon formula (which is lossy under rounding for percent coupons).
//
// Fields:
//  ID            – primary key identifier.
//  UserID        – guest who made the booking.
//  HotelID       – hotel being booked.
//  RoomID        – room category being booked.
//  CheckIn       – check-in date (date only, inclusive).
//  CheckOut      – check-out date (date only, exclusive).
//  Guests        – number of guests, at least 1.
//  RoomsCount    – number of rooms reserved, at least 1.
//  OriginalPrice – subtotal before discount.
//  Discount      – discount applied at creation, 0 without a coupon.
//  TotalPrice    – final payable amount, OriginalPrice - Discount.
//  CouponID      – coupon applied at creation, if any.
//  Status        – booking lifecycle state.
//  PaymentStatus – payment state.
//  PaymentRef    – external payment-intent id or wallet reference.
//  RefundPercent – refund tier applied at cancellation (nullable).
//  RefundAmount  – amount refunded at cancellation (nullable).
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Booking struct {
	ID            uint64    // bookings.id
	UserID        uint64    // bookings.user_id
	HotelID       uint64    // bookings.hotel_id
	RoomID        uint64    // bookings.room_id
	CheckIn       time.Time // bookings.check_in (date)
	CheckOut      time.Time // bookings.check_out (date)
	Guests        uint32    // bookings.guests
	RoomsCount    uint32    // bookings.rooms_count
	OriginalPrice int64     // bookings.original_price
	Discount      int64     // bookings.discount
	TotalPrice    int64     // bookings.total_price
	CouponID      *uint64   // bookings.coupon_id (nullable)
	Status        string    // bookings.status
	PaymentStatus string    // bookings.payment_status
	PaymentRef    *string   // bookings.payment_ref (nullable, unique)
	RefundPercent *int64    // bookings.refund_percent (nullable)
	RefundAmount  *int64    // bookings.refund_amount (nullable)
	CreatedAt     time.Time // bookings.created_at
	UpdatedAt     time.Time // bookings.updated_at
}

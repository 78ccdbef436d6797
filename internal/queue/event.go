// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a booking is successfully confirmed.
// It contains enough information for downstream consumers to log, notify, or
// trigger analytics without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID   uint64 `json:"booking_id"`
	UserID      uint64 `json:"user_id"`
	HotelID     uint64 `json:"hotel_id"`
	HotelName   string `json:"hotel_name"`
	RoomID      uint64 `json:"room_id"`
	RoomName    string `json:"room_name"`
	CheckIn     string `json:"check_in"`
	CheckOut    string `json:"check_out"`
	Guests      uint32 `json:"guests"`
	RoomsCount  uint32 `json:"rooms_count"`
	TotalPrice  int64  `json:"total_price"`
	ConfirmedAt string `json:"confirmed_at"`
}

// BookingCancelledEvent is published when a booking is cancelled. The refund
// fields carry the tier actually applied at cancellation time, not any
// advisory quote the client may have seen.
type BookingCancelledEvent struct {
	BookingID     uint64 `json:"booking_id"`
	UserID        uint64 `json:"user_id"`
	HotelID       uint64 `json:"hotel_id"`
	RefundPercent int64  `json:"refund_percent"`
	RefundAmount  int64  `json:"refund_amount"`
	CancelledAt   string `json:"cancelled_at"`
}

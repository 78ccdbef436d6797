// Package repository defines error types that are reused across
// multiple repositories. These sentinel values allow higher layers
// such as handlers to distinguish between different failure
// scenarios. For example, ErrForbidden indicates that the current
// user is not authorized to act on a resource owned by someone
// else, while ErrInsufficientFunds signals that a wallet debit
// would push the balance below zero.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an insert or update cannot be
// performed because of conflicting state, such as creating a
// second booking for the same payment reference. Handlers should
// translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrInsufficientFunds is returned when a wallet debit exceeds the
// current balance. The debit is not applied.
var ErrInsufficientFunds = errors.New("insufficient wallet balance")

// ErrHotelNotFound indicates that a hotel was not located in the DB.
var ErrHotelNotFound = errors.New("hotel not found")

// ErrRoomNotFound indicates that a room was not located in the DB.
var ErrRoomNotFound = errors.New("room not found")

// ErrBookingNotFound indicates that a booking was not located in the DB.
var ErrBookingNotFound = errors.New("booking not found")

// ErrCouponNotFound indicates that a coupon was not located in the DB.
var ErrCouponNotFound = errors.New("coupon not found")

package model

import "time"

// Hotel represents a property listed by a vendor.  A hotel owns
// multiple rooms and defines the clock times that bound a stay:
// guests may enter at CheckInTime and must leave by CheckOutTime.
// This struct corresponds to a row in the `hotels` table.
//
// Fields:
//  ID           – primary key identifier.
//  VendorID     – user ID of the vendor who listed the hotel.
//  Name         – unique hotel name per vendor.
//  City         – city used for search and browse.
//  Address      – street address shown to guests.
//  CheckInTime  – daily check-in clock time as "HH:MM" (empty means 13:00).
//  CheckOutTime – daily check-out clock time as "HH:MM" (empty means 12:00).
//  IsActive     – whether the hotel is open for booking.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Hotel struct {
	ID           uint64    // hotels.id
	VendorID     uint64    // hotels.vendor_id
	Name         string    // hotels.name
	City         string    // hotels.city
	Address      string    // hotels.address
	CheckInTime  string    // hotels.check_in_time ("HH:MM", may be empty)
	CheckOutTime string    // hotels.check_out_time ("HH:MM", may be empty)
	IsActive     bool      // hotels.is_active
	CreatedAt    time.Time // hotels.created_at
	UpdatedAt    time.Time // hotels.updated_at
}

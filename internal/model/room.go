package model

import "time"

// Room represents a bookable room category inside a hotel.  A room
// row describes a category (e.g. "Deluxe Twin"), not a physical
// door: TotalRooms is how many identical rooms of this category the
// hotel offers, and a booking reserves one or more of them for a
// date range.  This struct corresponds to a row in the `rooms` table.
//
// Fields:
//  ID            – primary key identifier.
//  HotelID       – hotel this room belongs to.
//  Name          – room category name, unique per hotel.
//  Description   – optional free-text description.
//  PricePerNight – nightly base rate in whole currency units, before
//                  any discount or tax.
//  Capacity      – maximum guests per room.
//  TotalRooms    – number of identical rooms in this category.
//  IsActive      – whether the category is offered for booking.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Room struct {
	ID            uint64    // rooms.id
	HotelID       uint64    // rooms.hotel_id
	Name          string    // rooms.name
	Description   *string   // rooms.description (nullable)
	PricePerNight int64     // rooms.price_per_night
	Capacity      uint32    // rooms.capacity
	TotalRooms    uint32    // rooms.total_rooms
	IsActive      bool      // rooms.is_active
	CreatedAt     time.Time // rooms.created_at
	UpdatedAt     time.Time // rooms.updated_at
}

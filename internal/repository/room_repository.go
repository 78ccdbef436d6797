package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-booking/internal/model"
)

// RoomRepo manages persistence for room categories.  The booking
// engine reads rooms to price a stay; the nightly rate stored here is
// the base price before discount and tax.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

const roomColumns = `id, hotel_id, name, description, price_per_night,
       capacity, total_rooms, is_active, created_at, updated_at`

// GetByID returns a room by id or ErrRoomNotFound.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	const q = `SELECT ` + roomColumns + ` FROM rooms WHERE id = ?`
	var m model.Room
	var desc sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&m.ID, &m.HotelID, &m.Name, &desc, &m.PricePerNight,
		&m.Capacity, &m.TotalRooms, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	if desc.Valid {
		d := desc.String
		m.Description = &d
	}
	return &m, nil
}

// ListByHotel returns the active room categories of a hotel ordered
// by nightly price ascending.
func (r *RoomRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]model.Room, error) {
	const q = `SELECT ` + roomColumns + ` FROM rooms
	           WHERE hotel_id = ? AND is_active = 1
	           ORDER BY price_per_night`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	rooms := make([]model.Room, 0)
	for rows.Next() {
		var m model.Room
		var desc sql.NullString
		if err := rows.Scan(&m.ID, &m.HotelID, &m.Name, &desc, &m.PricePerNight,
			&m.Capacity, &m.TotalRooms, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		if desc.Valid {
			d := desc.String
			m.Description = &d
		}
		rooms = append(rooms, m)
	}
	return rooms, rows.Err()
}

package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-booking/internal/model"
)

// HotelRepo manages persistence for hotels.  Only the read surface
// needed by the booking engine lives here; hotel administration is a
// separate vendor concern.
type HotelRepo struct {
	db *sql.DB
}

// NewHotelRepo returns a new HotelRepo bound to the given database.
func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{db: db} }

const hotelColumns = `id, vendor_id, name, city, address,
       COALESCE(check_in_time, ''), COALESCE(check_out_time, ''),
       is_active, created_at, updated_at`

func scanHotel(row *sql.Row) (*model.Hotel, error) {
	var h model.Hotel
	err := row.Scan(&h.ID, &h.VendorID, &h.Name, &h.City, &h.Address,
		&h.CheckInTime, &h.CheckOutTime, &h.IsActive, &h.CreatedAt, &h.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrHotelNotFound
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// GetByID returns a hotel by id or ErrHotelNotFound.
func (r *HotelRepo) GetByID(ctx context.Context, id uint64) (*model.Hotel, error) {
	const q = `SELECT ` + hotelColumns + ` FROM hotels WHERE id = ?`
	return scanHotel(r.db.QueryRowContext(ctx, q, id))
}

// ListActive returns all hotels open for booking, optionally
// filtered by city.  Results are ordered by name for deterministic
// output.
func (r *HotelRepo) ListActive(ctx context.Context, city string) ([]model.Hotel, error) {
	q := `SELECT ` + hotelColumns + ` FROM hotels WHERE is_active = 1`
	args := []interface{}{}
	if city != "" {
		q += ` AND city = ?`
		args = append(args, city)
	}
	q += ` ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	hotels := make([]model.Hotel, 0)
	for rows.Next() {
		var h model.Hotel
		if err := rows.Scan(&h.ID, &h.VendorID, &h.Name, &h.City, &h.Address,
			&h.CheckInTime, &h.CheckOutTime, &h.IsActive, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		hotels = append(hotels, h)
	}
	return hotels, rows.Err()
}

package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/hotel-booking/internal/model"
)

// CouponRepo manages persistence for vendor coupons.  The engine
// only ever reads coupons when pricing a booking; creation and
// blocking happen through the vendor endpoints.
type CouponRepo struct {
	db *sql.DB
}

// NewCouponRepo returns a new CouponRepo bound to the given database.
func NewCouponRepo(db *sql.DB) *CouponRepo { return &CouponRepo{db: db} }

const couponColumns = `id, vendor_id, code, type, value, min_price, max_price,
       start_date, end_date, is_blocked, created_at, updated_at`

func scanCoupon(scan func(dest ...interface{}) error) (*model.Coupon, error) {
	var c model.Coupon
	err := scan(&c.ID, &c.VendorID, &c.Code, &c.Type, &c.Value, &c.MinPrice, &c.MaxPrice,
		&c.StartDate, &c.EndDate, &c.IsBlocked, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByID returns a coupon by id or ErrCouponNotFound.
func (r *CouponRepo) GetByID(ctx context.Context, id uint64) (*model.Coupon, error) {
	const q = `SELECT ` + couponColumns + ` FROM coupons WHERE id = ?`
	return scanCoupon(r.db.QueryRowContext(ctx, q, id).Scan)
}

// ListEligible returns the coupons of a vendor that may be offered
// against the given subtotal right now: not blocked, inside the
// validity window, and with a min_price at or below the subtotal.
// Ineligible coupons are filtered out here rather than surfaced as
// errors, so the offer list the client renders is already clean.
func (r *CouponRepo) ListEligible(ctx context.Context, vendorID uint64, price int64, now time.Time) ([]model.Coupon, error) {
	const q = `SELECT ` + couponColumns + ` FROM coupons
	           WHERE vendor_id = ? AND is_blocked = 0
	             AND min_price <= ?
	             AND start_date <= ? AND end_date >= ?
	           ORDER BY value DESC`
	day := now.UTC().Format("2006-01-02")
	rows, err := r.db.QueryContext(ctx, q, vendorID, price, day, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	coupons := make([]model.Coupon, 0)
	for rows.Next() {
		var c model.Coupon
		if err := rows.Scan(&c.ID, &c.VendorID, &c.Code, &c.Type, &c.Value, &c.MinPrice, &c.MaxPrice,
			&c.StartDate, &c.EndDate, &c.IsBlocked, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		coupons = append(coupons, c)
	}
	return coupons, rows.Err()
}

// ListByVendor returns every coupon a vendor owns, newest first.
func (r *CouponRepo) ListByVendor(ctx context.Context, vendorID uint64) ([]model.Coupon, error) {
	const q = `SELECT ` + couponColumns + ` FROM coupons WHERE vendor_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	coupons := make([]model.Coupon, 0)
	for rows.Next() {
		var c model.Coupon
		if err := rows.Scan(&c.ID, &c.VendorID, &c.Code, &c.Type, &c.Value, &c.MinPrice, &c.MaxPrice,
			&c.StartDate, &c.EndDate, &c.IsBlocked, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		coupons = append(coupons, c)
	}
	return coupons, rows.Err()
}

// Create inserts a coupon for a vendor and populates the generated
// id.  The (vendor_id, code) pair is unique; a duplicate insert
// returns ErrConflict.
func (r *CouponRepo) Create(ctx context.Context, c *model.Coupon) error {
	const q = `INSERT INTO coupons
	           (vendor_id, code, type, value, min_price, max_price, start_date, end_date, is_blocked)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, c.VendorID, c.Code, c.Type, c.Value,
		c.MinPrice, c.MaxPrice, c.StartDate, c.EndDate, c.IsBlocked)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// SetBlocked flips the blocked flag of a coupon owned by the vendor.
// It returns ErrCouponNotFound when no coupon matches, ErrForbidden
// when the coupon belongs to another vendor.
func (r *CouponRepo) SetBlocked(ctx context.Context, couponID, vendorID uint64, blocked bool) error {
	var owner uint64
	err := r.db.QueryRowContext(ctx, `SELECT vendor_id FROM coupons WHERE id = ?`, couponID).Scan(&owner)
	if err == sql.ErrNoRows {
		return ErrCouponNotFound
	}
	if err != nil {
		return err
	}
	if owner != vendorID {
		return ErrForbidden
	}
	_, err = r.db.ExecContext(ctx, `UPDATE coupons SET is_blocked = ? WHERE id = ?`, blocked, couponID)
	return err
}

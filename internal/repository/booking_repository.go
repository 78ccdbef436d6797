package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/payment"
)

// BookingRepo provides persistence for bookings.  A booking row is
// never deleted; the repository only creates rows and transitions
// their status/payment fields.  The unique payment_ref column is the
// at-most-once boundary per payment intent: a second insert for the
// same reference fails and callers fall back to looking the existing
// row up.
type BookingRepo struct {
	db      *sql.DB
	wallets *WalletRepo
}

// NewBookingRepo returns a new BookingRepo.  The wallet repository
// is required because wallet checkouts and refunds touch the wallet
// inside the same transaction as the booking row.
func NewBookingRepo(db *sql.DB, wallets *WalletRepo) *BookingRepo {
	return &BookingRepo{db: db, wallets: wallets}
}

const bookingColumns = `id, user_id, hotel_id, room_id, check_in, check_out, guests, rooms_count,
       original_price, discount, total_price, coupon_id, status, payment_status,
       payment_ref, refund_percent, refund_amount, created_at, updated_at`

func scanBooking(scan func(dest ...interface{}) error) (*model.Booking, error) {
	var b model.Booking
	var couponID sql.NullInt64
	var payRef sql.NullString
	var refundPct, refundAmt sql.NullInt64
	err := scan(&b.ID, &b.UserID, &b.HotelID, &b.RoomID, &b.CheckIn, &b.CheckOut,
		&b.Guests, &b.RoomsCount, &b.OriginalPrice, &b.Discount, &b.TotalPrice,
		&couponID, &b.Status, &b.PaymentStatus, &payRef, &refundPct, &refundAmt,
		&b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	if couponID.Valid {
		id := uint64(couponID.Int64)
		b.CouponID = &id
	}
	if payRef.Valid {
		ref := payRef.String
		b.PaymentRef = &ref
	}
	if refundPct.Valid {
		p := refundPct.Int64
		b.RefundPercent = &p
	}
	if refundAmt.Valid {
		a := refundAmt.Int64
		b.RefundAmount = &a
	}
	return &b, nil
}

// insertConfirmedTx writes a CONFIRMED/SUCCESS booking row within tx
// and returns the generated id.  A duplicate payment_ref maps to
// ErrConflict.
func (r *BookingRepo) insertConfirmedTx(ctx context.Context, tx *sql.Tx, d payment.Draft, paymentRef string) (uint64, error) {
	const q = `INSERT INTO bookings
	           (user_id, hotel_id, room_id, check_in, check_out, guests, rooms_count,
	            original_price, discount, total_price, coupon_id, status, payment_status, payment_ref)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	var couponID interface{}
	if d.CouponID != nil {
		couponID = *d.CouponID
	}
	res, err := tx.ExecContext(ctx, q,
		d.UserID, d.HotelID, d.RoomID,
		d.CheckIn.Format("2006-01-02"), d.CheckOut.Format("2006-01-02"),
		d.Guests, d.RoomsCount,
		d.OriginalPrice, d.Discount, d.TotalPrice, couponID,
		model.BookingStatusConfirmed, model.PaymentStatusSuccess, paymentRef)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrConflict
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// CreateConfirmed persists a confirmed booking for a settled online
// payment.  The payment reference is the provider's intent id.
func (r *BookingRepo) CreateConfirmed(ctx context.Context, d payment.Draft, paymentRef string) (*model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	id, err := r.insertConfirmedTx(ctx, tx, d, paymentRef)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return r.GetByID(ctx, id)
}

// CreateConfirmedWithWalletDebit debits the user's wallet and
// persists the confirmed booking in one transaction, so a wallet
// checkout is atomic from the caller's perspective: either the
// balance drops and the booking exists, or neither happened.
func (r *BookingRepo) CreateConfirmedWithWalletDebit(ctx context.Context, d payment.Draft, paymentRef string) (*model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := r.wallets.DebitTx(ctx, tx, d.UserID, d.TotalPrice); err != nil {
		return nil, err
	}
	id, err := r.insertConfirmedTx(ctx, tx, d, paymentRef)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return r.GetByID(ctx, id)
}

// FindByPaymentRef returns the booking created for a payment
// reference, or ErrBookingNotFound.  The orchestrator uses this for
// idempotent completion and for reconciliation lookups.
func (r *BookingRepo) FindByPaymentRef(ctx context.Context, paymentRef string) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE payment_ref = ?`
	return scanBooking(r.db.QueryRowContext(ctx, q, paymentRef).Scan)
}

// GetByID returns a booking by id or ErrBookingNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	return scanBooking(r.db.QueryRowContext(ctx, q, id).Scan)
}

// GetByIDForUser returns a booking owned by the given user.  It
// returns ErrBookingNotFound when the id does not exist and
// ErrForbidden when the booking belongs to someone else.
func (r *BookingRepo) GetByIDForUser(ctx context.Context, id, userID uint64) (*model.Booking, error) {
	b, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrForbidden
	}
	return b, nil
}

// ListByUser returns all bookings of a user, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	bookings := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// CancelResult reports the outcome of a cancellation.
type CancelResult struct {
	Booking          *model.Booking
	AlreadyCancelled bool
}

// Cancel transitions a booking to CANCELLED/REFUNDED and credits the
// refund to the user's wallet, all in one transaction.  The refund
// function is evaluated against the booking row read under a row
// lock, so the percentage applied is the one in force at the instant
// the cancellation is processed, not whatever quote the client saw
// earlier.  Cancelling an already-cancelled booking is a no-op, not
// an error, to tolerate client retries.
func (r *BookingRepo) Cancel(ctx context.Context, bookingID, userID uint64,
	refund func(checkIn time.Time, totalPrice int64) (percent, amount int64)) (*CancelResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ? FOR UPDATE`
	b, err := scanBooking(tx.QueryRowContext(ctx, q, bookingID).Scan)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrForbidden
	}
	if b.Status == model.BookingStatusCancelled {
		if err := tx.Commit(); err != nil {
			return nil, err
		}
		committed = true
		return &CancelResult{Booking: b, AlreadyCancelled: true}, nil
	}
	percent, amount := refund(b.CheckIn, b.TotalPrice)
	const upd = `UPDATE bookings
	             SET status = ?, payment_status = ?, refund_percent = ?, refund_amount = ?
	             WHERE id = ?`
	if _, err := tx.ExecContext(ctx, upd,
		model.BookingStatusCancelled, model.PaymentStatusRefunded, percent, amount, bookingID); err != nil {
		return nil, err
	}
	if amount > 0 {
		if err := r.wallets.CreditTx(ctx, tx, userID, amount); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	b.Status = model.BookingStatusCancelled
	b.PaymentStatus = model.PaymentStatusRefunded
	b.RefundPercent = &percent
	b.RefundAmount = &amount
	return &CancelResult{Booking: b, AlreadyCancelled: false}, nil
}

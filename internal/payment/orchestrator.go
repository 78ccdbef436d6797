package payment

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/hotel-booking/internal/model"
)

// Payment methods a checkout may select.
const (
	MethodWallet = "wallet"
	MethodOnline = "online"
)

// Draft carries everything needed to persist a booking once payment
// is settled.  The price fields are computed by the pricing engine
// before the draft is built and are never recomputed afterwards.
type Draft struct {
	UserID        uint64    `json:"user_id"`
	HotelID       uint64    `json:"hotel_id"`
	RoomID        uint64    `json:"room_id"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
	Guests        uint32    `json:"guests"`
	RoomsCount    uint32    `json:"rooms_count"`
	OriginalPrice int64     `json:"original_price"`
	Discount      int64     `json:"discount"`
	TotalPrice    int64     `json:"total_price"`
	CouponID      *uint64   `json:"coupon_id,omitempty"`
}

// BookingStore persists bookings.  CreateConfirmed inserts a
// CONFIRMED/SUCCESS booking keyed by a unique payment reference, so a
// second insert for the same reference fails at the database and the
// existing row is looked up instead: the store is the at-most-once
// boundary per payment intent.  CreateConfirmedWithWalletDebit
// additionally debits the user's wallet in the same transaction.
type BookingStore interface {
	CreateConfirmed(ctx context.Context, d Draft, paymentRef string) (*model.Booking, error)
	CreateConfirmedWithWalletDebit(ctx context.Context, d Draft, paymentRef string) (*model.Booking, error)
	FindByPaymentRef(ctx context.Context, paymentRef string) (*model.Booking, error)
}

// DraftStore keeps checkout drafts between intent creation and
// provider confirmation.  Drafts expire on their own (the user may
// abandon checkout), so Load can legitimately miss.
type DraftStore interface {
	Save(ctx context.Context, intentID string, d Draft) error
	Load(ctx context.Context, intentID string) (Draft, error)
	Delete(ctx context.Context, intentID string) error
}

// Result is the outcome of a checkout step.  Exactly one of Booking
// and Intent is set: wallet checkouts finish immediately with a
// booking, online checkouts hand back the intent for the client to
// complete.
type Result struct {
	Booking *model.Booking
	Intent  *Intent
}

// Orchestrator routes a checkout to the wallet or the online payment
// flow and owns the transition from paid to booked.
type Orchestrator struct {
	Gateway  Gateway
	Bookings BookingStore
	Drafts   DraftStore
}

// NewOrchestrator wires an orchestrator.  All dependencies must be
// non-nil.
func NewOrchestrator(g Gateway, b BookingStore, d DraftStore) *Orchestrator {
	if g == nil || b == nil || d == nil {
		panic("nil dependency passed to NewOrchestrator")
	}
	return &Orchestrator{Gateway: g, Bookings: b, Drafts: d}
}

// Checkout starts a payment for the drafted booking.
//
// wallet – debits the wallet and creates the CONFIRMED booking in a
// single transaction; there is no intermediate pending state visible
// to the caller.
//
// online – registers a payment intent with the provider for the
// final price in minor units (whole units * 100), parks the draft
// under the intent id and returns the client secret.  No booking
// exists until Complete observes a succeeded intent.
//
// An empty or unknown method is rejected before any network call.
func (o *Orchestrator) Checkout(ctx context.Context, method string, d Draft) (*Result, error) {
	switch method {
	case MethodWallet:
		ref := "wallet:" + uuid.NewString()
		b, err := o.Bookings.CreateConfirmedWithWalletDebit(ctx, d, ref)
		if err != nil {
			return nil, err
		}
		return &Result{Booking: b}, nil
	case MethodOnline:
		in, err := o.Gateway.CreateIntent(ctx, d.TotalPrice*100)
		if err != nil {
			return nil, err
		}
		if err := o.Drafts.Save(ctx, in.ID, d); err != nil {
			return nil, err
		}
		return &Result{Intent: &in}, nil
	default:
		return nil, ErrNoPaymentMethod
	}
}

// Complete finishes an online checkout once the user has paid.  It
// is idempotent per intent id: if a booking already exists for the
// intent it is returned as-is.  Otherwise the provider is asked for
// the intent status; anything but succeeded returns
// ErrPaymentNotSucceeded and leaves the draft in place for retry.
// When payment has succeeded but the booking insert fails, the error
// comes back as a *ReconciliationError so callers never confuse it
// with a payment failure: the money has already moved.
func (o *Orchestrator) Complete(ctx context.Context, intentID string) (*model.Booking, error) {
	if b, err := o.Bookings.FindByPaymentRef(ctx, intentID); err == nil {
		return b, nil
	}
	in, err := o.Gateway.ConfirmIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if in.Status != IntentStatusSucceeded {
		return nil, ErrPaymentNotSucceeded
	}
	d, err := o.Drafts.Load(ctx, intentID)
	if err != nil {
		if errors.Is(err, ErrDraftNotFound) {
			// Paid, but nothing left to book from. Escalate, never retry.
			log.Printf("payment-orchestrator: intent %s succeeded but draft is gone", intentID)
			return nil, &ReconciliationError{IntentID: intentID, Err: err}
		}
		return nil, err
	}
	b, err := o.Bookings.CreateConfirmed(ctx, d, intentID)
	if err != nil {
		// The insert may have lost a race with a concurrent Complete
		// for the same intent; the unique payment_ref makes the first
		// writer win, so look the booking up before declaring a hazard.
		if existing, lookupErr := o.Bookings.FindByPaymentRef(ctx, intentID); lookupErr == nil {
			return existing, nil
		}
		log.Printf("payment-orchestrator: intent %s succeeded but booking creation failed: %v", intentID, err)
		return nil, &ReconciliationError{IntentID: intentID, Err: err}
	}
	if err := o.Drafts.Delete(ctx, intentID); err != nil {
		log.Printf("payment-orchestrator: delete draft %s: %v", intentID, err)
	}
	return b, nil
}

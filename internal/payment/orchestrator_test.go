package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-booking/internal/model"
)

// fakeGateway scripts provider behaviour per test.
type fakeGateway struct {
	createErr     error
	confirmErr    error
	confirmStatus string
	created       []int64 // amounts passed to CreateIntent
}

func (g *fakeGateway) CreateIntent(_ context.Context, amount int64) (Intent, error) {
	if g.createErr != nil {
		return Intent{}, g.createErr
	}
	g.created = append(g.created, amount)
	return Intent{ID: "pi_test_1", ClientSecret: "pi_test_1_secret", Status: IntentStatusPending}, nil
}

func (g *fakeGateway) ConfirmIntent(_ context.Context, intentID string) (Intent, error) {
	if g.confirmErr != nil {
		return Intent{}, g.confirmErr
	}
	return Intent{ID: intentID, Status: g.confirmStatus}, nil
}

// memBookings is an in-memory BookingStore with the same unique
// payment_ref semantics as the SQL implementation.
type memBookings struct {
	byRef     map[string]*model.Booking
	nextID    uint64
	insertErr error
	debitErr  error
}

func newMemBookings() *memBookings {
	return &memBookings{byRef: map[string]*model.Booking{}}
}

var errRefTaken = errors.New("duplicate payment ref")

func (s *memBookings) insert(d Draft, ref string) (*model.Booking, error) {
	if _, ok := s.byRef[ref]; ok {
		return nil, errRefTaken
	}
	s.nextID++
	b := &model.Booking{
		ID:            s.nextID,
		UserID:        d.UserID,
		HotelID:       d.HotelID,
		RoomID:        d.RoomID,
		CheckIn:       d.CheckIn,
		CheckOut:      d.CheckOut,
		Guests:        d.Guests,
		RoomsCount:    d.RoomsCount,
		OriginalPrice: d.OriginalPrice,
		Discount:      d.Discount,
		TotalPrice:    d.TotalPrice,
		CouponID:      d.CouponID,
		Status:        model.BookingStatusConfirmed,
		PaymentStatus: model.PaymentStatusSuccess,
		PaymentRef:    &ref,
	}
	s.byRef[ref] = b
	return b, nil
}

func (s *memBookings) CreateConfirmed(_ context.Context, d Draft, ref string) (*model.Booking, error) {
	if s.insertErr != nil {
		return nil, s.insertErr
	}
	return s.insert(d, ref)
}

func (s *memBookings) CreateConfirmedWithWalletDebit(_ context.Context, d Draft, ref string) (*model.Booking, error) {
	if s.debitErr != nil {
		return nil, s.debitErr
	}
	return s.insert(d, ref)
}

func (s *memBookings) FindByPaymentRef(_ context.Context, ref string) (*model.Booking, error) {
	b, ok := s.byRef[ref]
	if !ok {
		return nil, errors.New("not found")
	}
	return b, nil
}

// memDrafts is an in-memory DraftStore.
type memDrafts struct {
	m map[string]Draft
}

func newMemDrafts() *memDrafts { return &memDrafts{m: map[string]Draft{}} }

func (s *memDrafts) Save(_ context.Context, id string, d Draft) error {
	s.m[id] = d
	return nil
}

func (s *memDrafts) Load(_ context.Context, id string) (Draft, error) {
	d, ok := s.m[id]
	if !ok {
		return Draft{}, ErrDraftNotFound
	}
	return d, nil
}

func (s *memDrafts) Delete(_ context.Context, id string) error {
	delete(s.m, id)
	return nil
}

func testDraft() Draft {
	return Draft{
		UserID:        9,
		HotelID:       3,
		RoomID:        5,
		CheckIn:       time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
		Guests:        2,
		RoomsCount:    1,
		OriginalPrice: 2000,
		Discount:      150,
		TotalPrice:    1850,
	}
}

func TestCheckoutRejectsUnknownMethod(t *testing.T) {
	o := NewOrchestrator(&fakeGateway{}, newMemBookings(), newMemDrafts())

	for _, method := range []string{"", "card", "WALLET"} {
		_, err := o.Checkout(context.Background(), method, testDraft())
		assert.ErrorIs(t, err, ErrNoPaymentMethod, "method %q", method)
	}
}

func TestCheckoutWallet(t *testing.T) {
	gw := &fakeGateway{}
	bookings := newMemBookings()
	o := NewOrchestrator(gw, bookings, newMemDrafts())

	res, err := o.Checkout(context.Background(), MethodWallet, testDraft())
	require.NoError(t, err)
	require.NotNil(t, res.Booking)
	assert.Nil(t, res.Intent)
	assert.Equal(t, model.BookingStatusConfirmed, res.Booking.Status)
	assert.Equal(t, model.PaymentStatusSuccess, res.Booking.PaymentStatus)
	require.NotNil(t, res.Booking.PaymentRef)
	assert.Contains(t, *res.Booking.PaymentRef, "wallet:")
	assert.Empty(t, gw.created, "wallet checkout must not touch the provider")
}

func TestCheckoutWalletDebitFailure(t *testing.T) {
	bookings := newMemBookings()
	bookings.debitErr = errors.New("insufficient funds")
	o := NewOrchestrator(&fakeGateway{}, bookings, newMemDrafts())

	_, err := o.Checkout(context.Background(), MethodWallet, testDraft())
	assert.Error(t, err)
	assert.Empty(t, bookings.byRef)
}

func TestCheckoutOnlineParksDraft(t *testing.T) {
	gw := &fakeGateway{}
	bookings := newMemBookings()
	drafts := newMemDrafts()
	o := NewOrchestrator(gw, bookings, drafts)

	res, err := o.Checkout(context.Background(), MethodOnline, testDraft())
	require.NoError(t, err)
	require.NotNil(t, res.Intent)
	assert.Nil(t, res.Booking, "no booking may exist before completion")
	assert.Equal(t, "pi_test_1", res.Intent.ID)
	assert.Equal(t, "pi_test_1_secret", res.Intent.ClientSecret)

	// The provider is charged in minor units.
	require.Len(t, gw.created, 1)
	assert.Equal(t, int64(185000), gw.created[0])

	_, err = drafts.Load(context.Background(), "pi_test_1")
	assert.NoError(t, err)
	assert.Empty(t, bookings.byRef)
}

func TestCompleteHappyPath(t *testing.T) {
	gw := &fakeGateway{confirmStatus: IntentStatusSucceeded}
	bookings := newMemBookings()
	drafts := newMemDrafts()
	o := NewOrchestrator(gw, bookings, drafts)

	_, err := o.Checkout(context.Background(), MethodOnline, testDraft())
	require.NoError(t, err)

	b, err := o.Complete(context.Background(), "pi_test_1")
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusConfirmed, b.Status)
	assert.Equal(t, int64(1850), b.TotalPrice)
	require.NotNil(t, b.PaymentRef)
	assert.Equal(t, "pi_test_1", *b.PaymentRef)

	// The draft is consumed.
	_, err = drafts.Load(context.Background(), "pi_test_1")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestCompleteIsIdempotent(t *testing.T) {
	gw := &fakeGateway{confirmStatus: IntentStatusSucceeded}
	bookings := newMemBookings()
	drafts := newMemDrafts()
	o := NewOrchestrator(gw, bookings, drafts)

	_, err := o.Checkout(context.Background(), MethodOnline, testDraft())
	require.NoError(t, err)

	first, err := o.Complete(context.Background(), "pi_test_1")
	require.NoError(t, err)
	second, err := o.Complete(context.Background(), "pi_test_1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, bookings.byRef, 1, "a retried completion must not create a second booking")
}

func TestCompleteNotSucceededKeepsDraft(t *testing.T) {
	gw := &fakeGateway{confirmStatus: IntentStatusPending}
	drafts := newMemDrafts()
	o := NewOrchestrator(gw, newMemBookings(), drafts)

	_, err := o.Checkout(context.Background(), MethodOnline, testDraft())
	require.NoError(t, err)

	_, err = o.Complete(context.Background(), "pi_test_1")
	assert.ErrorIs(t, err, ErrPaymentNotSucceeded)

	// The draft survives so the user can retry after paying.
	_, err = drafts.Load(context.Background(), "pi_test_1")
	assert.NoError(t, err)
}

func TestCompleteProviderError(t *testing.T) {
	gw := &fakeGateway{confirmErr: &ProviderError{Code: "card_declined", Message: "Your card was declined."}}
	o := NewOrchestrator(gw, newMemBookings(), newMemDrafts())

	_, err := o.Complete(context.Background(), "pi_test_1")
	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "card_declined", perr.Code)
}

func TestCompleteMissingDraftIsReconciliation(t *testing.T) {
	gw := &fakeGateway{confirmStatus: IntentStatusSucceeded}
	o := NewOrchestrator(gw, newMemBookings(), newMemDrafts())

	// Paid intent, but the draft expired before completion.
	_, err := o.Complete(context.Background(), "pi_expired")
	var rerr *ReconciliationError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "pi_expired", rerr.IntentID)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestCompleteInsertFailureIsReconciliation(t *testing.T) {
	gw := &fakeGateway{confirmStatus: IntentStatusSucceeded}
	bookings := newMemBookings()
	drafts := newMemDrafts()
	o := NewOrchestrator(gw, bookings, drafts)

	_, err := o.Checkout(context.Background(), MethodOnline, testDraft())
	require.NoError(t, err)

	bookings.insertErr = errors.New("connection lost")
	_, err = o.Complete(context.Background(), "pi_test_1")
	var rerr *ReconciliationError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "pi_test_1", rerr.IntentID)

	// Once the store recovers, completion settles on the same intent.
	bookings.insertErr = nil
	b, err := o.Complete(context.Background(), "pi_test_1")
	require.NoError(t, err)
	assert.Equal(t, int64(1850), b.TotalPrice)
}

func TestCompleteInsertRaceReturnsWinner(t *testing.T) {
	gw := &fakeGateway{confirmStatus: IntentStatusSucceeded}
	bookings := newMemBookings()
	drafts := newMemDrafts()
	o := NewOrchestrator(gw, bookings, drafts)

	_, err := o.Checkout(context.Background(), MethodOnline, testDraft())
	require.NoError(t, err)

	// A concurrent completion already inserted under this ref. The
	// unique constraint rejects any second insert, and Complete must
	// settle on the existing row rather than report a hazard.
	winner, err := bookings.insert(testDraft(), "pi_test_1")
	require.NoError(t, err)

	b, err := o.Complete(context.Background(), "pi_test_1")
	require.NoError(t, err)
	assert.Equal(t, winner.ID, b.ID)
	assert.Len(t, bookings.byRef, 1)
}

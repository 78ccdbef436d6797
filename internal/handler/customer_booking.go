package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/payment"
	"github.com/iliyamo/hotel-booking/internal/pricing"
	"github.com/iliyamo/hotel-booking/internal/queue"
	"github.com/iliyamo/hotel-booking/internal/repository"
	queuepublisher "github.com/iliyamo/hotel-booking/internal/service"
)

// BookingHandler drives the customer checkout surface: price quotes,
// wallet and online checkouts, payment completion, cancellation with
// refund, and invoices.  All price math is delegated to the pricing
// package; this layer only moves validated data between HTTP, the
// repositories and the payment orchestrator.
type BookingHandler struct {
	HotelRepo    *repository.HotelRepo
	RoomRepo     *repository.RoomRepo
	CouponRepo   *repository.CouponRepo
	BookingRepo  *repository.BookingRepo
	WalletRepo   *repository.WalletRepo
	Orchestrator *payment.Orchestrator
	Gateway      payment.Gateway
}

// NewBookingHandler constructs a BookingHandler with its
// dependencies.  All of them must be non-nil.
func NewBookingHandler(hotelRepo *repository.HotelRepo, roomRepo *repository.RoomRepo,
	couponRepo *repository.CouponRepo, bookingRepo *repository.BookingRepo,
	walletRepo *repository.WalletRepo, orch *payment.Orchestrator, gw payment.Gateway) *BookingHandler {
	if hotelRepo == nil || roomRepo == nil || couponRepo == nil || bookingRepo == nil ||
		walletRepo == nil || orch == nil || gw == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{
		HotelRepo:    hotelRepo,
		RoomRepo:     roomRepo,
		CouponRepo:   couponRepo,
		BookingRepo:  bookingRepo,
		WalletRepo:   walletRepo,
		Orchestrator: orch,
		Gateway:      gw,
	}
}

// stayReq is the shared request shape of quote and checkout.
type stayReq struct {
	RoomID     uint64  `json:"room_id"`
	CheckIn    string  `json:"check_in"`  // "2006-01-02"
	CheckOut   string  `json:"check_out"` // "2006-01-02"
	Guests     uint32  `json:"guests"`
	RoomsCount uint32  `json:"rooms_count"`
	CouponID   *uint64 `json:"coupon_id,omitempty"`
}

// quoteResp is the priced stay returned by Quote and embedded in
// checkout responses.
type quoteResp struct {
	RoomID     uint64 `json:"room_id"`
	HotelID    uint64 `json:"hotel_id"`
	Nights     int    `json:"nights"`
	BasePrice  int64  `json:"base_price"`
	Discount   int64  `json:"discount"`
	FinalPrice int64  `json:"final_price"`
	GSTPercent int64  `json:"gst_percent"`
	GSTAmount  int64  `json:"gst_amount"`
}

// pricedStay bundles everything priceStay derives from a request.
type pricedStay struct {
	hotel *model.Hotel
	room  *model.Room
	quote quoteResp
	draft payment.Draft
}

// httpError pairs a status code with a response body so priceStay
// can hand the full error back to the endpoint handlers.
type httpError struct {
	status int
	body   echo.Map
}

// priceStay validates the stay, loads the room and hotel, and runs
// the pricing pipeline: nights -> subtotal -> coupon -> quote.  The
// coupon, when present, must belong to the hotel's vendor and pass
// the eligibility gate; an inapplicable coupon is a client error at
// apply time even though it is merely filtered at offer time.
func (h *BookingHandler) priceStay(ctx context.Context, userID uint64, req stayReq) (*pricedStay, *httpError) {
	if req.RoomID == 0 {
		return nil, &httpError{http.StatusBadRequest, echo.Map{"error": "room_id is required"}}
	}
	checkIn, err := time.Parse("2006-01-02", req.CheckIn)
	if err != nil {
		return nil, &httpError{http.StatusBadRequest, echo.Map{"error": "invalid check_in", "field": "checkIn"}}
	}
	checkOut, err := time.Parse("2006-01-02", req.CheckOut)
	if err != nil {
		return nil, &httpError{http.StatusBadRequest, echo.Map{"error": "invalid check_out", "field": "checkOut"}}
	}
	room, err := h.RoomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		if err == repository.ErrRoomNotFound {
			return nil, &httpError{http.StatusNotFound, echo.Map{"error": "room not found"}}
		}
		return nil, &httpError{http.StatusInternalServerError, echo.Map{"error": "database error"}}
	}
	hotel, err := h.HotelRepo.GetByID(ctx, room.HotelID)
	if err != nil {
		return nil, &httpError{http.StatusInternalServerError, echo.Map{"error": "database error"}}
	}
	stay := pricing.Stay{CheckIn: checkIn, CheckOut: checkOut, Guests: req.Guests, RoomsCount: req.RoomsCount}
	if err := pricing.ValidateStay(stay, hotel.CheckInTime, hotel.CheckOutTime, time.Now()); err != nil {
		var ve *pricing.ValidationError
		if errors.As(err, &ve) {
			return nil, &httpError{http.StatusBadRequest, echo.Map{"error": ve.Reason, "field": ve.Field}}
		}
		return nil, &httpError{http.StatusBadRequest, echo.Map{"error": err.Error()}}
	}
	if req.Guests > room.Capacity*req.RoomsCount {
		return nil, &httpError{http.StatusBadRequest, echo.Map{"error": "too many guests for the selected rooms", "field": "guests"}}
	}
	nights, err := pricing.Nights(checkIn, checkOut, hotel.CheckInTime, hotel.CheckOutTime)
	if err != nil {
		return nil, &httpError{http.StatusBadRequest, echo.Map{"error": err.Error(), "field": "checkOut"}}
	}
	subtotal := pricing.Subtotal(room.PricePerNight, nights, int(req.RoomsCount))

	var coupon *model.Coupon
	if req.CouponID != nil {
		coupon, err = h.CouponRepo.GetByID(ctx, *req.CouponID)
		if err != nil {
			if err == repository.ErrCouponNotFound {
				return nil, &httpError{http.StatusBadRequest, echo.Map{"error": "coupon not found"}}
			}
			return nil, &httpError{http.StatusInternalServerError, echo.Map{"error": "database error"}}
		}
		if coupon.VendorID != hotel.VendorID || !pricing.Eligible(coupon, subtotal, time.Now().UTC()) {
			return nil, &httpError{http.StatusBadRequest, echo.Map{"error": "coupon not applicable"}}
		}
	}
	q := pricing.ApplyCoupon(subtotal, coupon)

	ps := &pricedStay{
		hotel: hotel,
		room:  room,
		quote: quoteResp{
			RoomID:     room.ID,
			HotelID:    hotel.ID,
			Nights:     nights,
			BasePrice:  q.BasePrice,
			Discount:   q.Discount,
			FinalPrice: q.FinalPrice,
			GSTPercent: pricing.GSTPercent(q.FinalPrice),
			GSTAmount:  pricing.GSTAmount(q.FinalPrice),
		},
		draft: payment.Draft{
			UserID:        userID,
			HotelID:       hotel.ID,
			RoomID:        room.ID,
			CheckIn:       checkIn,
			CheckOut:      checkOut,
			Guests:        req.Guests,
			RoomsCount:    req.RoomsCount,
			OriginalPrice: q.BasePrice,
			Discount:      q.Discount,
			TotalPrice:    q.FinalPrice,
			CouponID:      req.CouponID,
		},
	}
	return ps, nil
}

// Quote handles POST /v1/bookings/quote.  It prices a stay without
// creating anything, so clients can render the breakdown and the
// coupon list before checkout.
func (h *BookingHandler) Quote(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req stayReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ps, herr := h.priceStay(c.Request().Context(), userID, req)
	if herr != nil {
		return c.JSON(herr.status, herr.body)
	}
	return c.JSON(http.StatusOK, ps.quote)
}

// checkoutReq extends the stay request with a payment method.
type checkoutReq struct {
	stayReq
	PaymentMethod string `json:"payment_method"` // wallet | online
}

// Checkout handles POST /v1/bookings.  The price is computed
// server-side from the same inputs as the quote; the client never
// supplies an amount.  A wallet checkout returns the confirmed
// booking immediately; an online checkout returns the payment intent
// for the client to complete.
func (h *BookingHandler) Checkout(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req checkoutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.PaymentMethod == "" {
		// Rejected before any pricing or network work.
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment_method is required", "field": "paymentMethod"})
	}
	if req.PaymentMethod != payment.MethodWallet && req.PaymentMethod != payment.MethodOnline {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment_method must be wallet or online", "field": "paymentMethod"})
	}
	ps, herr := h.priceStay(c.Request().Context(), userID, req.stayReq)
	if herr != nil {
		return c.JSON(herr.status, herr.body)
	}
	res, err := h.Orchestrator.Checkout(c.Request().Context(), req.PaymentMethod, ps.draft)
	if err != nil {
		return h.paymentError(c, err)
	}
	if res.Intent != nil {
		return c.JSON(http.StatusOK, echo.Map{
			"intent_id":     res.Intent.ID,
			"client_secret": res.Intent.ClientSecret,
			"quote":         ps.quote,
		})
	}
	h.publishConfirmed(res.Booking, ps.hotel, ps.room)
	return c.JSON(http.StatusCreated, echo.Map{"booking": res.Booking, "quote": ps.quote})
}

// CreateIntent handles POST /v1/payments/intent.  It is a thin
// delegation to the provider: the amount in minor units comes from
// the client's already-quoted total and is only used by the provider.
func (h *BookingHandler) CreateIntent(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		AmountMinorUnits int64 `json:"amountMinorUnits"`
	}
	if err := c.Bind(&body); err != nil || body.AmountMinorUnits <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amountMinorUnits must be positive"})
	}
	in, err := h.Gateway.CreateIntent(c.Request().Context(), body.AmountMinorUnits)
	if err != nil {
		return h.paymentError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"clientSecret": in.ClientSecret, "intent_id": in.ID})
}

// CompletePayment handles POST /v1/payments/:intentId/complete.  It
// finishes an online checkout once the provider reports the intent
// as succeeded, and is safe to retry: completing the same intent
// twice returns the same booking.
func (h *BookingHandler) CompletePayment(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	intentID := c.Param("intentId")
	if intentID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "intent id is required"})
	}
	b, err := h.Orchestrator.Complete(c.Request().Context(), intentID)
	if err != nil {
		return h.paymentError(c, err)
	}
	if b.UserID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	go func(b model.Booking) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		hotel, herr := h.HotelRepo.GetByID(ctx, b.HotelID)
		room, rerr := h.RoomRepo.GetByID(ctx, b.RoomID)
		if herr != nil || rerr != nil {
			return
		}
		h.publishConfirmedCtx(ctx, &b, hotel, room)
	}(*b)
	return c.JSON(http.StatusCreated, echo.Map{"booking": b})
}

// paymentError translates payment-layer failures to HTTP.  Provider
// failures keep the user's checkout state retryable; a
// reconciliation failure is its own 502 shape so a client can never
// mistake "paid but not booked" for "payment declined" and retry
// into a double charge.
func (h *BookingHandler) paymentError(c echo.Context, err error) error {
	var pe *payment.ProviderError
	var re *payment.ReconciliationError
	switch {
	case errors.Is(err, payment.ErrNoPaymentMethod):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment_method is required", "field": "paymentMethod"})
	case errors.Is(err, repository.ErrInsufficientFunds):
		return c.JSON(http.StatusPaymentRequired, echo.Map{"error": "insufficient wallet balance"})
	case errors.Is(err, payment.ErrPaymentNotSucceeded):
		return c.JSON(http.StatusPaymentRequired, echo.Map{"error": "payment has not succeeded"})
	case errors.As(err, &re):
		log.Printf("booking-checkout: reconciliation required for intent %s: %v", re.IntentID, re.Err)
		return c.JSON(http.StatusBadGateway, echo.Map{
			"error":     "payment succeeded but booking was not created; do not retry payment",
			"intent_id": re.IntentID,
		})
	case errors.As(err, &pe):
		// Provider message goes back verbatim so the user sees what
		// their bank said.
		return c.JSON(http.StatusPaymentRequired, echo.Map{"error": pe.Message})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "checkout failed"})
	}
}

// ListBookings handles GET /v1/my-bookings.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookings, err := h.BookingRepo.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, bookings)
}

// GetBooking handles GET /v1/bookings/:id.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	b, err := h.BookingRepo.GetByIDForUser(c.Request().Context(), id, userID)
	if err != nil {
		return bookingLookupError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

// RefundQuote handles GET /v1/bookings/:id/refund-quote.  The
// returned percentage is advisory: time may cross a tier boundary
// between this quote and the actual cancellation, in which case the
// server-side recomputation at cancel time wins.
func (h *BookingHandler) RefundQuote(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	b, err := h.BookingRepo.GetByIDForUser(c.Request().Context(), id, userID)
	if err != nil {
		return bookingLookupError(c, err)
	}
	if b.Status == model.BookingStatusCancelled {
		return c.JSON(http.StatusOK, echo.Map{
			"refund_percent": b.RefundPercent,
			"refund_amount":  b.RefundAmount,
			"cancelled":      true,
		})
	}
	now := time.Now().UTC()
	pct := pricing.RefundPercent(checkInInstant(b), now)
	return c.JSON(http.StatusOK, echo.Map{
		"refund_percent": pct,
		"refund_amount":  pricing.RefundAmount(b.TotalPrice, pct),
		"quoted_at":      now.Format(time.RFC3339),
		"advisory":       true,
	})
}

// CancelBooking handles DELETE /v1/bookings/:id.  The refund
// percentage is recomputed inside the repository transaction at the
// instant the cancellation is processed; whatever the client was
// shown earlier is ignored.  Repeating the call on an
// already-cancelled booking is a no-op that returns the recorded
// refund.
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	res, err := h.BookingRepo.Cancel(c.Request().Context(), id, userID,
		func(checkIn time.Time, totalPrice int64) (int64, int64) {
			pct := pricing.RefundPercent(checkInAt(checkIn), time.Now().UTC())
			return pct, pricing.RefundAmount(totalPrice, pct)
		})
	if err != nil {
		return bookingLookupError(c, err)
	}
	if !res.AlreadyCancelled {
		h.publishCancelled(res.Booking)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"booking":           res.Booking,
		"already_cancelled": res.AlreadyCancelled,
	})
}

// Invoice handles GET /v1/bookings/:id/invoice.  The summary is
// re-derived deterministically from the persisted booking and its
// coupon; the document renderer consuming it lives outside this
// service.
func (h *BookingHandler) Invoice(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	b, err := h.BookingRepo.GetByIDForUser(c.Request().Context(), id, userID)
	if err != nil {
		return bookingLookupError(c, err)
	}
	var coupon *model.Coupon
	if b.CouponID != nil {
		coupon, err = h.CouponRepo.GetByID(c.Request().Context(), *b.CouponID)
		if err != nil && err != repository.ErrCouponNotFound {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	}
	return c.JSON(http.StatusOK, pricing.AssembleInvoice(b, coupon))
}

// Wallet handles GET /v1/wallet.
func (h *BookingHandler) Wallet(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	w, err := h.WalletRepo.GetByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"balance": w.Balance})
}

// bookingLookupError maps repository lookup failures to HTTP.
func bookingLookupError(c echo.Context, err error) error {
	switch err {
	case repository.ErrBookingNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	case repository.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}

// checkInInstant returns the moment the refund clock measures to:
// the booking's check-in date at the default check-in hour.
func checkInInstant(b *model.Booking) time.Time {
	return checkInAt(b.CheckIn)
}

func checkInAt(checkIn time.Time) time.Time {
	return time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 13, 0, 0, 0, time.UTC)
}

// publishConfirmed emits the booking.confirmed event without
// blocking the response.  Event delivery is best effort; failures
// are logged inside the publisher.
func (h *BookingHandler) publishConfirmed(b *model.Booking, hotel *model.Hotel, room *model.Room) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		h.publishConfirmedCtx(ctx, b, hotel, room)
	}()
}

func (h *BookingHandler) publishConfirmedCtx(ctx context.Context, b *model.Booking, hotel *model.Hotel, room *model.Room) {
	_ = queuepublisher.PublishBookingConfirmed(ctx, queue.BookingConfirmedEvent{
		BookingID:   b.ID,
		UserID:      b.UserID,
		HotelID:     hotel.ID,
		HotelName:   hotel.Name,
		RoomID:      room.ID,
		RoomName:    room.Name,
		CheckIn:     b.CheckIn.Format("2006-01-02"),
		CheckOut:    b.CheckOut.Format("2006-01-02"),
		Guests:      b.Guests,
		RoomsCount:  b.RoomsCount,
		TotalPrice:  b.TotalPrice,
		ConfirmedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// publishCancelled emits the booking.cancelled event with the refund
// actually applied.
func (h *BookingHandler) publishCancelled(b *model.Booking) {
	var pct, amt int64
	if b.RefundPercent != nil {
		pct = *b.RefundPercent
	}
	if b.RefundAmount != nil {
		amt = *b.RefundAmount
	}
	ev := queue.BookingCancelledEvent{
		BookingID:     b.ID,
		UserID:        b.UserID,
		HotelID:       b.HotelID,
		RefundPercent: pct,
		RefundAmount:  amt,
		CancelledAt:   time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queuepublisher.PublishBookingCancelled(ctx, ev)
	}()
}
